// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package encoding produces the chain native signing digests and execute
// data blobs for each supported destination chain family. Every encoder
// implements the same two operations: a digest over
// {domain separator, verifier set, payload} that verifiers sign, and the
// serialization of a {payload, proof} bundle into the destination gateway's
// exact byte format.
package encoding

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/eigerco/axelar-amplifier-sub000/multisig"
	"github.com/eigerco/axelar-amplifier-sub000/prover"
)

var (
	// ErrSerializeData is returned when a payload cannot be serialized in
	// the destination chain's representation.
	ErrSerializeData = errors.New("cannot serialize data")

	// ErrInvalidMessage is returned when a message field cannot be encoded
	// for the target format.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrProof is returned when proof assembly fails, for example a
	// signature variant that does not match the verifier set's key type.
	ErrProof = errors.New("cannot build proof")
)

// Encoder selects a destination chain family's byte format.
type Encoder uint8

const (
	Abi Encoder = iota
	Starknet
	Aleo
)

func (e Encoder) String() string {
	switch e {
	case Abi:
		return "abi"
	case Starknet:
		return "starknet"
	case Aleo:
		return "aleo"
	default:
		return fmt.Sprintf("unknown encoder %d", e)
	}
}

func (e Encoder) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

func (e *Encoder) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	enc, err := ParseEncoder(s)
	if err != nil {
		return err
	}
	*e = enc
	return nil
}

// ParseEncoder converts the string form back into an Encoder.
func ParseEncoder(s string) (Encoder, error) {
	switch s {
	case "abi":
		return Abi, nil
	case "starknet":
		return Starknet, nil
	case "aleo":
		return Aleo, nil
	default:
		return 0, fmt.Errorf("unknown encoder %q", s)
	}
}

// SignerWithSig pairs a verifier set member with its collected signature.
type SignerWithSig struct {
	Signer    multisig.Signer
	Signature multisig.Signature
}

// SignersWithSigs joins collected signatures with their verifier set
// entries, ordered by signer address. Encoders re-derive their own canonical
// order from the public keys.
func SignersWithSigs(vs *multisig.VerifierSet, sigs map[string]multisig.Signature) ([]SignerWithSig, error) {
	out := make([]SignerWithSig, 0, len(sigs))
	for addr, sig := range sigs {
		signer, ok := vs.Signers[addr]
		if !ok {
			return nil, fmt.Errorf("%w: signature from %s who is not in the verifier set", ErrProof, addr)
		}
		if sig.KeyType != signer.PubKey.KeyType {
			return nil, fmt.Errorf("%w: %s signature for %s key of %s",
				ErrProof, sig.KeyType, signer.PubKey.KeyType, addr)
		}
		out = append(out, SignerWithSig{Signer: signer, Signature: sig})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Signer.Address < out[j].Signer.Address
	})
	return out, nil
}

// Digest computes the signing digest for the payload under the given domain
// separator and verifier set.
func (e Encoder) Digest(domainSeparator [32]byte, vs *multisig.VerifierSet, payload prover.Payload) ([32]byte, error) {
	switch e {
	case Abi:
		return abiDigest(domainSeparator, vs, payload)
	case Starknet:
		return starknetDigest(domainSeparator, vs, payload)
	case Aleo:
		return aleoDigest(domainSeparator, vs, payload)
	default:
		return [32]byte{}, fmt.Errorf("%w: %s", ErrSerializeData, e)
	}
}

// ExecuteData serializes the payload together with its proof into the
// destination gateway's native byte format. The domain separator is needed
// to re-derive the signed digest when normalizing recoverable signatures.
func (e Encoder) ExecuteData(
	domainSeparator [32]byte,
	vs *multisig.VerifierSet,
	sigs []SignerWithSig,
	payload prover.Payload,
) ([]byte, error) {
	switch e {
	case Abi:
		return abiExecuteData(domainSeparator, vs, sigs, payload)
	case Starknet:
		return starknetExecuteData(vs, sigs, payload)
	case Aleo:
		return aleoExecuteData(vs, sigs, payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrSerializeData, e)
	}
}
