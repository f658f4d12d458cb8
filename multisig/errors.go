// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import "errors"

var (
	// ErrSigningSessionClosed is returned when a signature arrives after the
	// session's expiry height.
	ErrSigningSessionClosed = errors.New("signing session closed")

	// ErrNotAParticipant is returned when the submitting signer is not a
	// member of the session's verifier set.
	ErrNotAParticipant = errors.New("not a participant of the signing session")

	// ErrInvalidSignature is returned when a signature fails cryptographic or
	// delegated verification. The underlying diagnostic is attached.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidPublicKey is returned when key bytes do not parse as the
	// claimed key type.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrInvalidVerifierSet is returned when a verifier set violates its
	// construction invariants.
	ErrInvalidVerifierSet = errors.New("invalid verifier set")

	// ErrSignatureVerificationFailed is returned when the external signature
	// verifier rejects a signature or the verification query itself fails.
	ErrSignatureVerificationFailed = errors.New("signature verification failed")

	// ErrDuplicatePublicKey is returned when a participant registers a key
	// that is already registered for the same key type.
	ErrDuplicatePublicKey = errors.New("duplicate public key registered")

	// ErrSessionNotFound is returned when a session id has no record.
	ErrSessionNotFound = errors.New("signing session not found")

	// ErrVerifierSetNotFound is returned when a verifier set id has no record.
	ErrVerifierSetNotFound = errors.New("verifier set not found")

	// ErrKeyTypeMismatch marks the reason a mismatched signature/key pair
	// is invalid. It is always wrapped in ErrInvalidSignature.
	ErrKeyTypeMismatch = errors.New("signature and public key type mismatch")
)
