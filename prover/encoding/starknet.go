// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package encoding

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/NethermindEth/juno/core/crypto"
	"github.com/NethermindEth/juno/core/felt"
	"github.com/holiman/uint256"

	"github.com/eigerco/axelar-amplifier-sub000/multisig"
	"github.com/eigerco/axelar-amplifier-sub000/prover"
)

// Cairo values are native prime field elements. Everything below serializes
// to a felt stream following Cairo's serde rules: arrays carry a length
// prefix, strings are ByteArrays of 31 byte chunks, and u256 values are two
// u128 limbs, low first.

type starkWeightedSigner struct {
	signer *felt.Felt
	weight uint64Pair
}

// uint64Pair holds a u128 as two u64 halves to avoid big.Int churn when
// building felts.
type uint64Pair struct {
	hi, lo uint64
}

func (p uint64Pair) felt() *felt.Felt {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], p.hi)
	binary.BigEndian.PutUint64(b[8:], p.lo)
	return new(felt.Felt).SetBytes(b[:])
}

func u128OrErr(v *uint256.Int, what string) (uint64Pair, error) {
	if v.BitLen() > 128 {
		return uint64Pair{}, fmt.Errorf("%w: %s exceeds u128", ErrSerializeData, what)
	}
	return uint64Pair{hi: v[1], lo: v[0]}, nil
}

type starkWeightedSigners struct {
	signers   []starkWeightedSigner
	threshold uint64Pair
	nonce     [32]byte
}

type starkSignature struct {
	r, s, v *felt.Felt
}

type starkProof struct {
	signers    starkWeightedSigners
	signatures []starkSignature
}

// signerFeltBytes extracts the felt representation of a public key following
// the destination gateway's convention: compressed secp256k1 keys drop the
// parity byte, uncompressed keys keep the x coordinate, 32 byte keys are
// used whole.
func signerFeltBytes(pk multisig.PublicKey) ([]byte, error) {
	switch pk.KeyType {
	case multisig.Ecdsa, multisig.EcdsaRecoverable:
		switch len(pk.Bytes) {
		case 33:
			return pk.Bytes[1:], nil
		case 65:
			return pk.Bytes[1:33], nil
		default:
			return pk.Bytes, nil
		}
	case multisig.Ed25519, multisig.Stark:
		return pk.Bytes, nil
	default:
		return nil, fmt.Errorf("%w: %s keys cannot be represented as a felt",
			multisig.ErrInvalidPublicKey, pk.KeyType)
	}
}

func starkWeightedSignersOf(vs *multisig.VerifierSet) (starkWeightedSigners, error) {
	signers := make([]starkWeightedSigner, 0, len(vs.Signers))
	for _, signer := range vs.Signers {
		keyBytes, err := signerFeltBytes(signer.PubKey)
		if err != nil {
			return starkWeightedSigners{}, err
		}
		if len(keyBytes) > 32 {
			return starkWeightedSigners{}, fmt.Errorf("%w: public key too large for felt conversion",
				multisig.ErrInvalidPublicKey)
		}
		weight, err := u128OrErr(signer.Weight, "signer weight")
		if err != nil {
			return starkWeightedSigners{}, err
		}
		signers = append(signers, starkWeightedSigner{
			signer: new(felt.Felt).SetBytes(keyBytes),
			weight: weight,
		})
	}
	sort.Slice(signers, func(i, j int) bool {
		a, b := signers[i].signer.Bytes(), signers[j].signer.Bytes()
		return bytes.Compare(a[:], b[:]) < 0
	})

	threshold, err := u128OrErr(vs.Threshold, "threshold")
	if err != nil {
		return starkWeightedSigners{}, err
	}
	var nonce [32]byte
	binary.BigEndian.PutUint64(nonce[24:], vs.CreatedAt)
	return starkWeightedSigners{
		signers:   signers,
		threshold: threshold,
		nonce:     nonce,
	}, nil
}

func (s starkWeightedSigners) cairoSerialize() []*felt.Felt {
	felts := make([]*felt.Felt, 0, 2*len(s.signers)+4)
	felts = append(felts, new(felt.Felt).SetUint64(uint64(len(s.signers))))
	for _, signer := range s.signers {
		felts = append(felts, signer.signer, signer.weight.felt())
	}
	felts = append(felts, s.threshold.felt())

	// Nonce is a u256: low limb first, then high.
	low := new(felt.Felt).SetBytes(s.nonce[16:])
	high := new(felt.Felt).SetBytes(s.nonce[:16])
	return append(felts, low, high)
}

func (p starkProof) cairoSerialize() []*felt.Felt {
	felts := p.signers.cairoSerialize()
	felts = append(felts, new(felt.Felt).SetUint64(uint64(len(p.signatures))))
	for _, sig := range p.signatures {
		felts = append(felts, sig.r, sig.s, sig.v)
	}
	return felts
}

// serializeByteArray encodes bytes as a Cairo ByteArray: the count of full
// 31 byte chunks, the chunks themselves right aligned below the felt's top
// byte, the pending word, and the pending word's length.
func serializeByteArray(b []byte) []*felt.Felt {
	fullChunks := len(b) / 31
	felts := make([]*felt.Felt, 0, fullChunks+3)
	felts = append(felts, new(felt.Felt).SetUint64(uint64(fullChunks)))

	for i := 0; i < fullChunks; i++ {
		felts = append(felts, new(felt.Felt).SetBytes(b[i*31:(i+1)*31]))
	}

	remainder := b[fullChunks*31:]
	felts = append(felts, new(felt.Felt).SetBytes(remainder))
	return append(felts, new(felt.Felt).SetUint64(uint64(len(remainder))))
}

func starknetMessageFelts(msg prover.Message) ([]*felt.Felt, error) {
	contractAddr, err := checkedFeltFromHex(msg.DestinationAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: destination address %q is not a starknet address: %s",
			ErrInvalidMessage, msg.DestinationAddress, err)
	}

	var felts []*felt.Felt
	felts = append(felts, serializeByteArray([]byte(msg.CCID.SourceChain))...)
	felts = append(felts, serializeByteArray([]byte(msg.CCID.MessageID))...)
	felts = append(felts, serializeByteArray([]byte(msg.SourceAddress))...)
	felts = append(felts, contractAddr)

	// payload_hash as u256, low limb first.
	low := new(felt.Felt).SetBytes(msg.PayloadHash[16:])
	high := new(felt.Felt).SetBytes(msg.PayloadHash[:16])
	return append(felts, low, high), nil
}

func starknetPayloadFelts(payload prover.Payload) ([]*felt.Felt, error) {
	felts := []*felt.Felt{new(felt.Felt).SetUint64(uint64(payload.Command()))}

	if payload.VerifierSet != nil {
		signers, err := starkWeightedSignersOf(payload.VerifierSet)
		if err != nil {
			return nil, err
		}
		return append(felts, signers.cairoSerialize()...), nil
	}

	felts = append(felts, new(felt.Felt).SetUint64(uint64(len(payload.Messages))))
	for _, msg := range payload.Messages {
		msgFelts, err := starknetMessageFelts(msg)
		if err != nil {
			return nil, err
		}
		felts = append(felts, msgFelts...)
	}
	return felts, nil
}

// starknetDigest is PoseidonArray(domain, signers hash, data hash) rendered
// back into 32 big endian bytes.
func starknetDigest(domainSeparator [32]byte, vs *multisig.VerifierSet, payload prover.Payload) ([32]byte, error) {
	signers, err := starkWeightedSignersOf(vs)
	if err != nil {
		return [32]byte{}, err
	}
	signersHash := crypto.PoseidonArray(signers.cairoSerialize()...)

	payloadFelts, err := starknetPayloadFelts(payload)
	if err != nil {
		return [32]byte{}, err
	}
	dataHash := crypto.PoseidonArray(payloadFelts...)

	domain := new(felt.Felt).SetBytes(domainSeparator[:])
	digest := crypto.PoseidonArray(domain, signersHash, dataHash)
	return digest.Bytes(), nil
}

func starkSignatureOf(s SignerWithSig) (starkSignature, error) {
	raw := s.Signature.Bytes
	if len(raw) < 96 {
		return starkSignature{}, fmt.Errorf("%w: stark signature too short", ErrProof)
	}
	return starkSignature{
		r: new(felt.Felt).SetBytes(raw[0:32]),
		s: new(felt.Felt).SetBytes(raw[32:64]),
		v: new(felt.Felt).SetBytes(raw[64:96]),
	}, nil
}

// starknetExecuteData is the payload felts followed by the proof felts, each
// written as 32 big endian bytes.
func starknetExecuteData(vs *multisig.VerifierSet, sigs []SignerWithSig, payload prover.Payload) ([]byte, error) {
	// Signatures travel in the signers' public key order.
	ordered := make([]SignerWithSig, len(sigs))
	copy(ordered, sigs)
	sort.Slice(ordered, func(i, j int) bool {
		return bytes.Compare(ordered[i].Signer.PubKey.Bytes, ordered[j].Signer.PubKey.Bytes) < 0
	})

	signers, err := starkWeightedSignersOf(vs)
	if err != nil {
		return nil, err
	}
	signatures := make([]starkSignature, 0, len(ordered))
	for _, s := range ordered {
		sig, err := starkSignatureOf(s)
		if err != nil {
			return nil, err
		}
		signatures = append(signatures, sig)
	}
	proof := starkProof{signers: signers, signatures: signatures}

	felts, err := starknetPayloadFelts(payload)
	if err != nil {
		return nil, err
	}
	felts = append(felts, proof.cairoSerialize()...)

	out := make([]byte, 0, 32*len(felts))
	for _, f := range felts {
		b := f.Bytes()
		out = append(out, b[:]...)
	}
	return out, nil
}

// checkedFeltFromHex parses a 0x prefixed hex string, rejecting values that
// do not fit the stark field.
func checkedFeltFromHex(s string) (*felt.Felt, error) {
	f, err := new(felt.Felt).SetString(s)
	if err != nil {
		return nil, err
	}
	return f, nil
}
