// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/luxfi/crypto"
)

// KeyType identifies the signature scheme of a public key or signature.
type KeyType uint8

const (
	Ecdsa KeyType = iota
	EcdsaRecoverable
	Ed25519
	Stark
	AleoSchnorr
)

const (
	ecdsaCompressedPubKeyLen   = 33
	ecdsaUncompressedPubKeyLen = 65
	ecdsaSignatureLen          = 64
	ecdsaRecoverableSigLen     = 65
	ed25519PubKeyLen           = 32
	ed25519SignatureLen        = 64
	starkPubKeyLen             = 32
	starkSignatureLen          = 96
	aleoAddressLen             = 63
)

func (t KeyType) String() string {
	switch t {
	case Ecdsa:
		return "ecdsa"
	case EcdsaRecoverable:
		return "ecdsa-recoverable"
	case Ed25519:
		return "ed25519"
	case Stark:
		return "stark"
	case AleoSchnorr:
		return "aleo-schnorr"
	default:
		return fmt.Sprintf("unknown key type %d", t)
	}
}

func (t KeyType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *KeyType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	kt, err := ParseKeyType(s)
	if err != nil {
		return err
	}
	*t = kt
	return nil
}

// ParseKeyType converts the string form back into a KeyType.
func ParseKeyType(s string) (KeyType, error) {
	switch s {
	case "ecdsa":
		return Ecdsa, nil
	case "ecdsa-recoverable":
		return EcdsaRecoverable, nil
	case "ed25519":
		return Ed25519, nil
	case "stark":
		return Stark, nil
	case "aleo-schnorr":
		return AleoSchnorr, nil
	default:
		return 0, fmt.Errorf("unknown key type %q", s)
	}
}

// PublicKey is a typed public key. Bytes hold the raw key material, except
// for AleoSchnorr where they hold the ASCII bech32m address text.
type PublicKey struct {
	KeyType KeyType `json:"keyType"`
	Bytes   []byte  `json:"bytes"`
}

// NewPublicKey validates raw key material against the claimed key type.
func NewPublicKey(keyType KeyType, raw []byte) (PublicKey, error) {
	pk := PublicKey{KeyType: keyType, Bytes: raw}
	if err := pk.Validate(); err != nil {
		return PublicKey{}, err
	}
	return pk, nil
}

// Validate checks that the key bytes parse as the claimed key type.
func (pk PublicKey) Validate() error {
	switch pk.KeyType {
	case Ecdsa, EcdsaRecoverable:
		switch len(pk.Bytes) {
		case ecdsaCompressedPubKeyLen:
			if _, err := crypto.DecompressPubkey(pk.Bytes); err != nil {
				return fmt.Errorf("%w: %s", ErrInvalidPublicKey, err)
			}
		case ecdsaUncompressedPubKeyLen:
			if _, err := crypto.UnmarshalPubkey(pk.Bytes); err != nil {
				return fmt.Errorf("%w: %s", ErrInvalidPublicKey, err)
			}
		default:
			return fmt.Errorf("%w: ecdsa key must be %d or %d bytes, got %d",
				ErrInvalidPublicKey, ecdsaCompressedPubKeyLen, ecdsaUncompressedPubKeyLen, len(pk.Bytes))
		}
	case Ed25519:
		if len(pk.Bytes) != ed25519PubKeyLen {
			return fmt.Errorf("%w: ed25519 key must be %d bytes, got %d",
				ErrInvalidPublicKey, ed25519PubKeyLen, len(pk.Bytes))
		}
	case Stark:
		if len(pk.Bytes) != starkPubKeyLen {
			return fmt.Errorf("%w: stark key must be %d bytes, got %d",
				ErrInvalidPublicKey, starkPubKeyLen, len(pk.Bytes))
		}
		if err := validateStarkPubKey(pk.Bytes); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidPublicKey, err)
		}
	case AleoSchnorr:
		addr := string(pk.Bytes)
		if len(addr) != aleoAddressLen || !strings.HasPrefix(addr, "aleo1") {
			return fmt.Errorf("%w: aleo address must be %d chars starting with aleo1",
				ErrInvalidPublicKey, aleoAddressLen)
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidPublicKey, pk.KeyType)
	}
	return nil
}

// Equal reports whether two public keys have the same type and bytes.
func (pk PublicKey) Equal(other PublicKey) bool {
	return pk.KeyType == other.KeyType && bytes.Equal(pk.Bytes, other.Bytes)
}

func (pk PublicKey) String() string {
	if pk.KeyType == AleoSchnorr {
		return string(pk.Bytes)
	}
	return hex.EncodeToString(pk.Bytes)
}

// Signature is a typed signature over a signing payload. Bytes hold the raw
// signature, except for AleoSchnorr where they hold the ASCII signature text.
type Signature struct {
	KeyType KeyType `json:"keyType"`
	Bytes   []byte  `json:"bytes"`
}

// NewSignature validates raw signature bytes against the claimed key type.
func NewSignature(keyType KeyType, raw []byte) (Signature, error) {
	sig := Signature{KeyType: keyType, Bytes: raw}
	if err := sig.Validate(); err != nil {
		return Signature{}, err
	}
	return sig, nil
}

// Validate checks that the signature bytes have the shape of the claimed
// key type. It does not verify the signature against any message.
func (sig Signature) Validate() error {
	switch sig.KeyType {
	case Ecdsa:
		if len(sig.Bytes) != ecdsaSignatureLen {
			return fmt.Errorf("%w: ecdsa signature must be %d bytes, got %d",
				ErrInvalidSignature, ecdsaSignatureLen, len(sig.Bytes))
		}
	case EcdsaRecoverable:
		if len(sig.Bytes) != ecdsaRecoverableSigLen {
			return fmt.Errorf("%w: recoverable ecdsa signature must be %d bytes, got %d",
				ErrInvalidSignature, ecdsaRecoverableSigLen, len(sig.Bytes))
		}
	case Ed25519:
		if len(sig.Bytes) != ed25519SignatureLen {
			return fmt.Errorf("%w: ed25519 signature must be %d bytes, got %d",
				ErrInvalidSignature, ed25519SignatureLen, len(sig.Bytes))
		}
	case Stark:
		if len(sig.Bytes) != starkSignatureLen {
			return fmt.Errorf("%w: stark signature must be %d bytes, got %d",
				ErrInvalidSignature, starkSignatureLen, len(sig.Bytes))
		}
	case AleoSchnorr:
		if !strings.HasPrefix(string(sig.Bytes), "sign1") {
			return fmt.Errorf("%w: aleo signature must start with sign1", ErrInvalidSignature)
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidSignature, sig.KeyType)
	}
	return nil
}

// Verify checks the signature over msg under the given public key. A type
// mismatch between signature and key never reaches the cryptographic check.
func (sig Signature) Verify(msg []byte, pk PublicKey) error {
	if sig.KeyType != pk.KeyType {
		return fmt.Errorf("%w: %w: signature %s, key %s",
			ErrInvalidSignature, ErrKeyTypeMismatch, sig.KeyType, pk.KeyType)
	}

	var ok bool
	switch sig.KeyType {
	case Ecdsa:
		ok = verifyEcdsa(msg, sig.Bytes, pk.Bytes)
	case EcdsaRecoverable:
		ok = verifyEcdsaRecoverable(msg, sig.Bytes, pk.Bytes)
	case Ed25519:
		ok = ed25519.Verify(ed25519.PublicKey(pk.Bytes), msg, sig.Bytes)
	case Stark:
		ok = verifyStark(msg, sig.Bytes, pk.Bytes)
	case AleoSchnorr:
		// Aleo schnorr signatures are only checkable by the external
		// signature verifier.
		return fmt.Errorf("%w: aleo schnorr requires a delegated verifier", ErrInvalidSignature)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidSignature, sig.KeyType)
	}
	if !ok {
		return fmt.Errorf("%w: %s signature does not match key %s", ErrInvalidSignature, sig.KeyType, pk)
	}
	return nil
}

func verifyEcdsa(msg, sig, pubKey []byte) bool {
	if len(msg) != 32 {
		msg = crypto.Keccak256(msg)
	}
	return crypto.VerifySignature(pubKey, msg, sig)
}

func verifyEcdsaRecoverable(msg, sig, pubKey []byte) bool {
	if len(msg) != 32 {
		msg = crypto.Keccak256(msg)
	}
	normalized := make([]byte, ecdsaRecoverableSigLen)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	if normalized[64] > 1 {
		return false
	}
	recovered, err := crypto.SigToPub(msg, normalized)
	if err != nil {
		return false
	}
	switch len(pubKey) {
	case ecdsaCompressedPubKeyLen:
		return bytes.Equal(crypto.CompressPubkey(recovered), pubKey)
	case ecdsaUncompressedPubKeyLen:
		return bytes.Equal(crypto.FromECDSAPub(recovered), pubKey)
	default:
		return false
	}
}
