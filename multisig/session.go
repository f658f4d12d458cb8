// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
)

// SessionState is the lifecycle state of a signing session.
type SessionState uint8

const (
	Pending SessionState = iota
	Completed
)

func (s SessionState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("unknown session state %d", s)
	}
}

func (s SessionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SessionState) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	switch str {
	case "pending":
		*s = Pending
	case "completed":
		*s = Completed
	default:
		return fmt.Errorf("unknown session state %q", str)
	}
	return nil
}

// SigningSession collects weighted signatures over a fixed payload until the
// verifier set's threshold is met or the session expires.
type SigningSession struct {
	ID            uint64       `json:"id"`
	VerifierSetID string       `json:"verifierSetId"`
	ChainName     string       `json:"chainName"`
	Msg           []byte       `json:"msg"`
	State         SessionState `json:"state"`
	// CompletedAt is the height the threshold was first met. Zero while
	// the session is pending.
	CompletedAt uint64 `json:"completedAt"`
	ExpiresAt   uint64 `json:"expiresAt"`
	// SigVerifier optionally names an external verifier that signatures
	// are delegated to instead of local cryptographic checks.
	SigVerifier string `json:"sigVerifier,omitempty"`
}

// SignatureVerifier delegates signature validation to an external party,
// typically the destination chain's gateway contract.
type SignatureVerifier interface {
	VerifySignature(ctx context.Context, signature, message, publicKey []byte, signer string, sessionID uint64) (bool, error)
}

// ValidateSignature checks a submitted signature against the session. The
// signer must already be known to belong to the session's verifier set.
// Completed sessions still accept signatures until expiry; late signatures
// extend the proof without reopening the session.
func (s *SigningSession) ValidateSignature(
	ctx context.Context,
	blockHeight uint64,
	signer Signer,
	sig Signature,
	verifier SignatureVerifier,
) error {
	if s.ExpiresAt < blockHeight {
		return fmt.Errorf("%w: session %d expired at height %d", ErrSigningSessionClosed, s.ID, s.ExpiresAt)
	}

	if verifier != nil {
		ok, err := verifier.VerifySignature(ctx, sig.Bytes, s.Msg, signer.PubKey.Bytes, signer.Address, s.ID)
		// Both a failed query and a negative verdict surface as an
		// invalid signature; callers cannot tell the two apart.
		if err != nil {
			return fmt.Errorf("%w: %w: %s", ErrInvalidSignature, ErrSignatureVerificationFailed, err)
		}
		if !ok {
			return fmt.Errorf("%w: %w: rejected by signature verifier", ErrInvalidSignature, ErrSignatureVerificationFailed)
		}
		return nil
	}

	return sig.Verify(s.Msg, signer.PubKey)
}

// Recalculate transitions the session to completed once the collected
// signatures meet the verifier set's threshold. It is idempotent; a session
// that is already completed keeps its original completion height.
func (s *SigningSession) Recalculate(vs *VerifierSet, signatures map[string]Signature, blockHeight uint64) {
	if s.State == Completed {
		return
	}
	if signersWeight(vs, signatures).Lt(vs.Threshold) {
		return
	}
	s.State = Completed
	s.CompletedAt = blockHeight
}

// signersWeight sums the weights of the signers that have submitted a
// signature. Every signature must belong to a participant; membership is
// enforced before signatures are stored.
func signersWeight(vs *VerifierSet, signatures map[string]Signature) *uint256.Int {
	total := uint256.NewInt(0)
	for addr := range signatures {
		signer, ok := vs.Signers[addr]
		if !ok {
			panic(fmt.Sprintf("violated invariant: signer %s is not a member of the verifier set", addr))
		}
		total.Add(total, signer.Weight)
	}
	return total
}
