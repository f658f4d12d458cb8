// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/luxfi/database"
)

var (
	sessionPrefix     = []byte("session:")
	signaturePrefix   = []byte("signature:")
	verifierSetPrefix = []byte("verifierset:")
	pubKeyPrefix      = []byte("pubkey:")
	keyOwnerPrefix    = []byte("keyowner:")
	callerPrefix      = []byte("caller:")
	disabledPrefix    = []byte("signingDisabled:")
	sessionCounterKey = []byte("sessionCounter")
)

// State persists sessions, signatures, verifier sets, registered public keys,
// and caller authorizations.
type State struct {
	db database.Database
}

func NewState(db database.Database) *State {
	return &State{db: db}
}

func sessionKey(id uint64) []byte {
	key := make([]byte, len(sessionPrefix)+8)
	copy(key, sessionPrefix)
	binary.BigEndian.PutUint64(key[len(sessionPrefix):], id)
	return key
}

func signatureSessionPrefix(sessionID uint64) []byte {
	key := make([]byte, len(signaturePrefix)+9)
	copy(key, signaturePrefix)
	binary.BigEndian.PutUint64(key[len(signaturePrefix):], sessionID)
	key[len(signaturePrefix)+8] = ':'
	return key
}

func signatureKey(sessionID uint64, signer string) []byte {
	return append(signatureSessionPrefix(sessionID), []byte(signer)...)
}

func pubKeyKey(participant string, keyType KeyType) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", pubKeyPrefix, participant, keyType))
}

func keyOwnerKey(pk PublicKey) []byte {
	key := make([]byte, 0, len(keyOwnerPrefix)+2+len(pk.Bytes))
	key = append(key, keyOwnerPrefix...)
	key = append(key, byte(pk.KeyType), ':')
	return append(key, pk.Bytes...)
}

func callerKey(caller, chainName string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", callerPrefix, caller, chainName))
}

// NextSessionID returns the id the next session will get, starting from 1.
// Nothing is written; CreateSession commits the allocation.
func (s *State) NextSessionID() (uint64, error) {
	raw, err := s.db.Get(sessionCounterKey)
	switch {
	case err == nil:
		return binary.BigEndian.Uint64(raw) + 1, nil
	case errors.Is(err, database.ErrNotFound):
		return 1, nil
	default:
		return 0, err
	}
}

// CreateSession stores a new session and advances the session counter to its
// id in one atomic batch.
func (s *State) CreateSession(session SigningSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	counter := make([]byte, 8)
	binary.BigEndian.PutUint64(counter, session.ID)

	batch := s.db.NewBatch()
	if err := batch.Put(sessionCounterKey, counter); err != nil {
		return err
	}
	if err := batch.Put(sessionKey(session.ID), raw); err != nil {
		return err
	}
	return batch.Write()
}

// Session loads a signing session by id.
func (s *State) Session(id uint64) (SigningSession, error) {
	raw, err := s.db.Get(sessionKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return SigningSession{}, fmt.Errorf("%w: id %d", ErrSessionNotFound, id)
	}
	if err != nil {
		return SigningSession{}, err
	}
	var session SigningSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return SigningSession{}, err
	}
	return session, nil
}

// PutSession stores a signing session.
func (s *State) PutSession(session SigningSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.db.Put(sessionKey(session.ID), raw)
}

// Signatures loads all signatures collected for a session, keyed by signer.
func (s *State) Signatures(sessionID uint64) (map[string]Signature, error) {
	prefix := signatureSessionPrefix(sessionID)
	iter := s.db.NewIteratorWithPrefix(prefix)
	defer iter.Release()

	sigs := make(map[string]Signature)
	for iter.Next() {
		signer := string(iter.Key()[len(prefix):])
		var sig Signature
		if err := json.Unmarshal(iter.Value(), &sig); err != nil {
			return nil, err
		}
		sigs[signer] = sig
	}
	return sigs, iter.Error()
}

// HasSignature reports whether the signer already submitted for the session.
func (s *State) HasSignature(sessionID uint64, signer string) (bool, error) {
	return s.db.Has(signatureKey(sessionID, signer))
}

// CommitSignature stores a signature and the updated session atomically.
func (s *State) CommitSignature(session SigningSession, signer string, sig Signature) error {
	sigRaw, err := json.Marshal(sig)
	if err != nil {
		return err
	}
	sessionRaw, err := json.Marshal(session)
	if err != nil {
		return err
	}

	batch := s.db.NewBatch()
	if err := batch.Put(signatureKey(session.ID, signer), sigRaw); err != nil {
		return err
	}
	if err := batch.Put(sessionKey(session.ID), sessionRaw); err != nil {
		return err
	}
	return batch.Write()
}

// VerifierSet loads a verifier set by its content id.
func (s *State) VerifierSet(id string) (*VerifierSet, error) {
	raw, err := s.db.Get(append(verifierSetPrefix, []byte(id)...))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: id %s", ErrVerifierSetNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	vs := &VerifierSet{}
	if err := json.Unmarshal(raw, vs); err != nil {
		return nil, err
	}
	return vs, nil
}

// PutVerifierSet stores a verifier set under its content id and returns the id.
func (s *State) PutVerifierSet(vs *VerifierSet) (string, error) {
	raw, err := json.Marshal(vs)
	if err != nil {
		return "", err
	}
	id := vs.ID()
	if err := s.db.Put(append(verifierSetPrefix, []byte(id)...), raw); err != nil {
		return "", err
	}
	return id, nil
}

// PubKey loads the key a participant registered for the given key type.
func (s *State) PubKey(participant string, keyType KeyType) (PublicKey, error) {
	raw, err := s.db.Get(pubKeyKey(participant, keyType))
	if errors.Is(err, database.ErrNotFound) {
		return PublicKey{}, fmt.Errorf("%w: no %s key for %s", ErrInvalidPublicKey, keyType, participant)
	}
	if err != nil {
		return PublicKey{}, err
	}
	var pk PublicKey
	if err := json.Unmarshal(raw, &pk); err != nil {
		return PublicKey{}, err
	}
	return pk, nil
}

// RegisterPubKey records a participant's key for its key type. A key already
// registered by a different participant is rejected; re-registering replaces
// the participant's previous key of that type.
func (s *State) RegisterPubKey(participant string, pk PublicKey) error {
	owner, err := s.db.Get(keyOwnerKey(pk))
	switch {
	case err == nil:
		if string(owner) != participant {
			return fmt.Errorf("%w: key %s already registered by %s", ErrDuplicatePublicKey, pk, owner)
		}
	case errors.Is(err, database.ErrNotFound):
	default:
		return err
	}

	raw, err := json.Marshal(pk)
	if err != nil {
		return err
	}
	batch := s.db.NewBatch()
	if prev, err := s.db.Get(pubKeyKey(participant, pk.KeyType)); err == nil {
		var old PublicKey
		if err := json.Unmarshal(prev, &old); err != nil {
			return err
		}
		if err := batch.Delete(keyOwnerKey(old)); err != nil {
			return err
		}
	} else if !errors.Is(err, database.ErrNotFound) {
		return err
	}
	if err := batch.Put(pubKeyKey(participant, pk.KeyType), raw); err != nil {
		return err
	}
	if err := batch.Put(keyOwnerKey(pk), []byte(participant)); err != nil {
		return err
	}
	return batch.Write()
}

// AuthorizeCaller allows a caller to start sessions for a chain.
func (s *State) AuthorizeCaller(caller, chainName string) error {
	return s.db.Put(callerKey(caller, chainName), []byte{1})
}

// UnauthorizeCaller revokes a caller's authorization for a chain.
func (s *State) UnauthorizeCaller(caller, chainName string) error {
	return s.db.Delete(callerKey(caller, chainName))
}

// IsCallerAuthorized reports whether the caller may start sessions for the
// chain.
func (s *State) IsCallerAuthorized(caller, chainName string) (bool, error) {
	return s.db.Has(callerKey(caller, chainName))
}

// DisableSigning stops new sessions from being started for the chain.
func (s *State) DisableSigning(chainName string) error {
	return s.db.Put(append(disabledPrefix, []byte(chainName)...), []byte{1})
}

// EnableSigning lifts a signing freeze for the chain.
func (s *State) EnableSigning(chainName string) error {
	return s.db.Delete(append(disabledPrefix, []byte(chainName)...))
}

// IsSigningEnabled reports whether new sessions may be started for the chain.
func (s *State) IsSigningEnabled(chainName string) (bool, error) {
	disabled, err := s.db.Has(append(disabledPrefix, []byte(chainName)...))
	return !disabled, err
}
