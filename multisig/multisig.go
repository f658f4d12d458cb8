// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package multisig implements weighted threshold signing sessions. Callers
// start a session over a fixed payload, registered participants submit typed
// signatures, and the session completes once the submitted weight reaches
// the verifier set's threshold.
package multisig

import (
	"context"
	"fmt"
	"sync"

	"github.com/luxfi/database"
	"github.com/luxfi/log"
)

// Config holds the coordinator's parameters.
type Config struct {
	// BlockExpiry is the number of blocks a session stays open after it is
	// started.
	BlockExpiry uint64 `json:"blockExpiry"`
}

// Multisig coordinates signing sessions against persistent state.
type Multisig struct {
	lock    sync.RWMutex
	cfg     Config
	state   *State
	log     log.Logger
	metrics *metrics

	// sigVerifiers maps verifier names to delegated verification backends.
	sigVerifiers map[string]SignatureVerifier
}

func New(cfg Config, db database.Database, logger log.Logger) *Multisig {
	if logger == nil {
		logger = log.NoLog{}
	}
	return &Multisig{
		cfg:          cfg,
		state:        NewState(db),
		log:          logger,
		metrics:      newMetrics(),
		sigVerifiers: make(map[string]SignatureVerifier),
	}
}

// RegisterSigVerifier makes a delegated verification backend available under
// the given name. Sessions reference backends by name.
func (m *Multisig) RegisterSigVerifier(name string, verifier SignatureVerifier) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.sigVerifiers[name] = verifier
}

// RegisterVerifierSet validates and stores a verifier set, returning its
// content id.
func (m *Multisig) RegisterVerifierSet(vs *VerifierSet) (string, error) {
	if err := vs.Validate(); err != nil {
		return "", err
	}
	m.lock.Lock()
	defer m.lock.Unlock()

	id, err := m.state.PutVerifierSet(vs)
	if err != nil {
		return "", err
	}
	m.log.Info("registered verifier set",
		log.String("id", id),
		log.Int("signers", len(vs.Signers)),
		log.String("threshold", vs.Threshold.String()),
	)
	return id, nil
}

// VerifierSet returns the stored set with the given content id.
func (m *Multisig) VerifierSet(id string) (*VerifierSet, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.state.VerifierSet(id)
}

// RegisterPubKey records a participant's public key for its key type. A key
// held by another participant is rejected.
func (m *Multisig) RegisterPubKey(participant string, pk PublicKey) error {
	if err := pk.Validate(); err != nil {
		return err
	}
	m.lock.Lock()
	defer m.lock.Unlock()

	if err := m.state.RegisterPubKey(participant, pk); err != nil {
		return err
	}
	m.log.Debug("registered public key",
		log.String("participant", participant),
		log.Stringer("keyType", pk.KeyType),
	)
	return nil
}

// PubKey returns the key a participant registered for the given key type.
func (m *Multisig) PubKey(participant string, keyType KeyType) (PublicKey, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.state.PubKey(participant, keyType)
}

// AuthorizeCallers grants the callers permission to start sessions for the
// chain.
func (m *Multisig) AuthorizeCallers(callers []string, chainName string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	for _, caller := range callers {
		if err := m.state.AuthorizeCaller(caller, chainName); err != nil {
			return err
		}
	}
	return nil
}

// UnauthorizeCallers revokes the callers' permission to start sessions for
// the chain.
func (m *Multisig) UnauthorizeCallers(callers []string, chainName string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	for _, caller := range callers {
		if err := m.state.UnauthorizeCaller(caller, chainName); err != nil {
			return err
		}
	}
	return nil
}

// DisableSigning freezes new sessions for the chain. Open sessions keep
// accepting signatures.
func (m *Multisig) DisableSigning(chainName string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.log.Info("signing disabled", log.String("chain", chainName))
	return m.state.DisableSigning(chainName)
}

// EnableSigning lifts a signing freeze for the chain.
func (m *Multisig) EnableSigning(chainName string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.log.Info("signing enabled", log.String("chain", chainName))
	return m.state.EnableSigning(chainName)
}

// StartSigningSession opens a session over msg for the given verifier set.
// The caller must be authorized for the chain and signing must not be frozen.
// An optional sigVerifier name delegates signature checks to a registered
// backend.
func (m *Multisig) StartSigningSession(
	caller string,
	verifierSetID string,
	chainName string,
	msg []byte,
	blockHeight uint64,
	sigVerifier string,
) (uint64, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	authorized, err := m.state.IsCallerAuthorized(caller, chainName)
	if err != nil {
		return 0, err
	}
	if !authorized {
		return 0, fmt.Errorf("caller %s is not authorized for chain %s", caller, chainName)
	}
	enabled, err := m.state.IsSigningEnabled(chainName)
	if err != nil {
		return 0, err
	}
	if !enabled {
		return 0, fmt.Errorf("signing is disabled for chain %s", chainName)
	}
	if _, err := m.state.VerifierSet(verifierSetID); err != nil {
		return 0, err
	}
	if sigVerifier != "" {
		if _, ok := m.sigVerifiers[sigVerifier]; !ok {
			return 0, fmt.Errorf("unknown signature verifier %q", sigVerifier)
		}
	}

	id, err := m.state.NextSessionID()
	if err != nil {
		return 0, err
	}
	session := SigningSession{
		ID:            id,
		VerifierSetID: verifierSetID,
		ChainName:     chainName,
		Msg:           msg,
		State:         Pending,
		ExpiresAt:     blockHeight + m.cfg.BlockExpiry,
		SigVerifier:   sigVerifier,
	}
	if err := m.state.CreateSession(session); err != nil {
		return 0, err
	}

	m.metrics.sessionsStarted.Inc()
	m.log.Info("started signing session",
		log.Uint64("sessionID", id),
		log.String("chain", chainName),
		log.String("verifierSetID", verifierSetID),
		log.Uint64("expiresAt", session.ExpiresAt),
	)
	return id, nil
}

// SubmitSignature records a participant's signature for an open session and
// returns the session state after recalculation. Submitting again replaces
// the signer's previous signature.
func (m *Multisig) SubmitSignature(
	ctx context.Context,
	sessionID uint64,
	signerAddr string,
	sig Signature,
	blockHeight uint64,
) (SessionState, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	session, err := m.state.Session(sessionID)
	if err != nil {
		return Pending, err
	}
	vs, err := m.state.VerifierSet(session.VerifierSetID)
	if err != nil {
		return Pending, err
	}
	signer, ok := vs.Signers[signerAddr]
	if !ok {
		m.metrics.signaturesRejected.Inc()
		return session.State, fmt.Errorf("%w: %s, session %d", ErrNotAParticipant, signerAddr, sessionID)
	}
	if err := sig.Validate(); err != nil {
		m.metrics.signaturesRejected.Inc()
		return session.State, err
	}

	var verifier SignatureVerifier
	if session.SigVerifier != "" {
		verifier, ok = m.sigVerifiers[session.SigVerifier]
		if !ok {
			return session.State, fmt.Errorf("unknown signature verifier %q", session.SigVerifier)
		}
	}
	if err := session.ValidateSignature(ctx, blockHeight, signer, sig, verifier); err != nil {
		m.metrics.signaturesRejected.Inc()
		return session.State, err
	}

	seen, err := m.state.HasSignature(sessionID, signerAddr)
	if err != nil {
		return session.State, err
	}
	if seen {
		m.log.Warn("replacing previously submitted signature",
			log.Uint64("sessionID", sessionID),
			log.String("signer", signerAddr),
		)
	}

	sigs, err := m.state.Signatures(sessionID)
	if err != nil {
		return session.State, err
	}
	sigs[signerAddr] = sig

	wasPending := session.State == Pending
	session.Recalculate(vs, sigs, blockHeight)
	if err := m.state.CommitSignature(session, signerAddr, sig); err != nil {
		return session.State, err
	}

	m.metrics.signaturesSubmitted.Inc()
	if wasPending && session.State == Completed {
		m.metrics.sessionsCompleted.Inc()
		m.log.Info("signing session completed",
			log.Uint64("sessionID", sessionID),
			log.Uint64("completedAt", session.CompletedAt),
		)
	}
	return session.State, nil
}

// Session returns the stored session with the given id.
func (m *Multisig) Session(id uint64) (SigningSession, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.state.Session(id)
}

// SessionSignatures returns a session together with its verifier set and the
// signatures collected so far. Proof construction consumes this snapshot.
func (m *Multisig) SessionSignatures(id uint64) (SigningSession, *VerifierSet, map[string]Signature, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	session, err := m.state.Session(id)
	if err != nil {
		return SigningSession{}, nil, nil, err
	}
	vs, err := m.state.VerifierSet(session.VerifierSetID)
	if err != nil {
		return SigningSession{}, nil, nil, err
	}
	sigs, err := m.state.Signatures(id)
	if err != nil {
		return SigningSession{}, nil, nil, err
	}
	return session, vs, sigs, nil
}
