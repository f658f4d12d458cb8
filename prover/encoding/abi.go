// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package encoding

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/holiman/uint256"
	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common"

	"github.com/eigerco/axelar-amplifier-sub000/multisig"
	"github.com/eigerco/axelar-amplifier-sub000/prover"
)

// EVM gateway layouts. Signers carry 128 bit weights, the rotation nonce is
// the verifier set's creation height widened to 32 bytes.
const evmGatewayABI = `[
	{
		"type": "function",
		"name": "approveMessages",
		"inputs": [
			{"name": "messages", "type": "tuple[]", "components": [
				{"name": "sourceChain", "type": "string"},
				{"name": "messageId", "type": "string"},
				{"name": "sourceAddress", "type": "string"},
				{"name": "contractAddress", "type": "address"},
				{"name": "payloadHash", "type": "bytes32"}
			]},
			{"name": "proof", "type": "tuple", "components": [
				{"name": "signers", "type": "tuple", "components": [
					{"name": "signers", "type": "tuple[]", "components": [
						{"name": "signer", "type": "address"},
						{"name": "weight", "type": "uint128"}
					]},
					{"name": "threshold", "type": "uint128"},
					{"name": "nonce", "type": "bytes32"}
				]},
				{"name": "signatures", "type": "bytes[]"}
			]}
		]
	},
	{
		"type": "function",
		"name": "rotateSigners",
		"inputs": [
			{"name": "newSigners", "type": "tuple", "components": [
				{"name": "signers", "type": "tuple[]", "components": [
					{"name": "signer", "type": "address"},
					{"name": "weight", "type": "uint128"}
				]},
				{"name": "threshold", "type": "uint128"},
				{"name": "nonce", "type": "bytes32"}
			]},
			{"name": "proof", "type": "tuple", "components": [
				{"name": "signers", "type": "tuple", "components": [
					{"name": "signers", "type": "tuple[]", "components": [
						{"name": "signer", "type": "address"},
						{"name": "weight", "type": "uint128"}
					]},
					{"name": "threshold", "type": "uint128"},
					{"name": "nonce", "type": "bytes32"}
				]},
				{"name": "signatures", "type": "bytes[]"}
			]}
		]
	}
]`

type abiWeightedSigner struct {
	Signer common.Address
	Weight *big.Int
}

type abiWeightedSigners struct {
	Signers   []abiWeightedSigner
	Threshold *big.Int
	Nonce     [32]byte
}

type abiMessage struct {
	SourceChain     string
	MessageId       string
	SourceAddress   string
	ContractAddress common.Address
	PayloadHash     [32]byte
}

type abiProof struct {
	Signers    abiWeightedSigners
	Signatures [][]byte
}

var (
	evmGateway abi.ABI

	abiUint8Type           abi.Type
	abiMessagesType        abi.Type
	abiWeightedSignersType abi.Type
)

func init() {
	var err error
	evmGateway, err = abi.JSON(strings.NewReader(evmGatewayABI))
	if err != nil {
		panic(err)
	}
	abiMessagesType = evmGateway.Methods["approveMessages"].Inputs[0].Type
	abiWeightedSignersType = evmGateway.Methods["rotateSigners"].Inputs[0].Type
	abiUint8Type, err = abi.NewType("uint8", "", nil)
	if err != nil {
		panic(err)
	}
}

// evmAddress derives the 20 byte EVM address behind a secp256k1 public key.
func evmAddress(pk multisig.PublicKey) (common.Address, error) {
	if pk.KeyType != multisig.Ecdsa && pk.KeyType != multisig.EcdsaRecoverable {
		return common.Address{}, fmt.Errorf("%w: %s keys cannot sign for EVM chains",
			multisig.ErrInvalidPublicKey, pk.KeyType)
	}
	var raw []byte
	switch len(pk.Bytes) {
	case 33:
		decompressed, err := crypto.DecompressPubkey(pk.Bytes)
		if err != nil {
			return common.Address{}, fmt.Errorf("%w: %s", multisig.ErrInvalidPublicKey, err)
		}
		return common.BytesToAddress(crypto.PubkeyToAddress(*decompressed).Bytes()), nil
	case 65:
		raw = pk.Bytes
	default:
		return common.Address{}, fmt.Errorf("%w: bad secp256k1 key length %d",
			multisig.ErrInvalidPublicKey, len(pk.Bytes))
	}
	parsed, err := crypto.UnmarshalPubkey(raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %s", multisig.ErrInvalidPublicKey, err)
	}
	return common.BytesToAddress(crypto.PubkeyToAddress(*parsed).Bytes()), nil
}

func uint128OrErr(v *uint256.Int, what string) (*big.Int, error) {
	if v.BitLen() > 128 {
		return nil, fmt.Errorf("%w: %s exceeds uint128", ErrSerializeData, what)
	}
	return v.ToBig(), nil
}

func nonceFromHeight(createdAt uint64) [32]byte {
	var nonce [32]byte
	nonceVal := uint256.NewInt(createdAt).Bytes32()
	copy(nonce[:], nonceVal[:])
	return nonce
}

// abiWeightedSignersOf canonicalizes a verifier set into the gateway's
// WeightedSigners struct, sorted by EVM address ascending.
func abiWeightedSignersOf(vs *multisig.VerifierSet) (abiWeightedSigners, error) {
	signers := make([]abiWeightedSigner, 0, len(vs.Signers))
	for _, signer := range vs.Signers {
		addr, err := evmAddress(signer.PubKey)
		if err != nil {
			return abiWeightedSigners{}, err
		}
		weight, err := uint128OrErr(signer.Weight, "signer weight")
		if err != nil {
			return abiWeightedSigners{}, err
		}
		signers = append(signers, abiWeightedSigner{Signer: addr, Weight: weight})
	}
	sort.Slice(signers, func(i, j int) bool {
		return bytes.Compare(signers[i].Signer[:], signers[j].Signer[:]) < 0
	})

	threshold, err := uint128OrErr(vs.Threshold, "threshold")
	if err != nil {
		return abiWeightedSigners{}, err
	}
	return abiWeightedSigners{
		Signers:   signers,
		Threshold: threshold,
		Nonce:     nonceFromHeight(vs.CreatedAt),
	}, nil
}

func abiMessagesOf(msgs []prover.Message) ([]abiMessage, error) {
	out := make([]abiMessage, 0, len(msgs))
	for _, msg := range msgs {
		if !common.IsHexAddress(msg.DestinationAddress) {
			return nil, fmt.Errorf("%w: destination address %q is not an EVM address",
				ErrInvalidMessage, msg.DestinationAddress)
		}
		out = append(out, abiMessage{
			SourceChain:     msg.CCID.SourceChain,
			MessageId:       msg.CCID.MessageID,
			SourceAddress:   msg.SourceAddress,
			ContractAddress: common.HexToAddress(msg.DestinationAddress),
			PayloadHash:     msg.PayloadHash,
		})
	}
	return out, nil
}

func abiSignersHash(vs *multisig.VerifierSet) ([32]byte, error) {
	signers, err := abiWeightedSignersOf(vs)
	if err != nil {
		return [32]byte{}, err
	}
	packed, err := abi.Arguments{{Type: abiWeightedSignersType}}.Pack(signers)
	if err != nil {
		return [32]byte{}, fmt.Errorf("%w: %s", ErrSerializeData, err)
	}
	return crypto.Keccak256Hash(packed), nil
}

func abiDataHash(payload prover.Payload) ([32]byte, error) {
	command := uint8(payload.Command())
	var (
		packed []byte
		err    error
	)
	if payload.VerifierSet != nil {
		newSigners, convErr := abiWeightedSignersOf(payload.VerifierSet)
		if convErr != nil {
			return [32]byte{}, convErr
		}
		packed, err = abi.Arguments{
			{Type: abiUint8Type},
			{Type: abiWeightedSignersType},
		}.Pack(command, newSigners)
	} else {
		msgs, convErr := abiMessagesOf(payload.Messages)
		if convErr != nil {
			return [32]byte{}, convErr
		}
		packed, err = abi.Arguments{
			{Type: abiUint8Type},
			{Type: abiMessagesType},
		}.Pack(command, msgs)
	}
	if err != nil {
		return [32]byte{}, fmt.Errorf("%w: %s", ErrSerializeData, err)
	}
	return crypto.Keccak256Hash(packed), nil
}

// abiDigest is keccak256(domain separator ‖ signers hash ‖ data hash).
func abiDigest(domainSeparator [32]byte, vs *multisig.VerifierSet, payload prover.Payload) ([32]byte, error) {
	signersHash, err := abiSignersHash(vs)
	if err != nil {
		return [32]byte{}, err
	}
	dataHash, err := abiDataHash(payload)
	if err != nil {
		return [32]byte{}, err
	}
	return crypto.Keccak256Hash(domainSeparator[:], signersHash[:], dataHash[:]), nil
}

// abiRecoverableSignature converts a collected signature into the 65 byte
// ethereum form with v in {27, 28}. Plain 64 byte signatures get their
// recovery id found by recovering against the signer's address.
func abiRecoverableSignature(s SignerWithSig, digest [32]byte) ([]byte, error) {
	signerAddr, err := evmAddress(s.Signer.PubKey)
	if err != nil {
		return nil, err
	}

	raw := s.Signature.Bytes
	switch len(raw) {
	case 65:
		sig := make([]byte, 65)
		copy(sig, raw)
		if sig[64] >= 27 {
			sig[64] -= 27
		}
		if sig[64] > 1 {
			return nil, fmt.Errorf("%w: recovery id %d out of range", ErrProof, raw[64])
		}
		sig[64] += 27
		return sig, nil
	case 64:
		for v := byte(0); v <= 1; v++ {
			sig := make([]byte, 65)
			copy(sig, raw)
			sig[64] = v
			recovered, err := crypto.SigToPub(digest[:], sig)
			if err != nil {
				continue
			}
			if common.BytesToAddress(crypto.PubkeyToAddress(*recovered).Bytes()) == signerAddr {
				sig[64] = v + 27
				return sig, nil
			}
		}
		return nil, fmt.Errorf("%w: cannot recover id for signer %s", ErrProof, s.Signer.Address)
	default:
		return nil, fmt.Errorf("%w: unexpected signature length %d", ErrProof, len(raw))
	}
}

// abiProofOf orders the collected signatures by the signers' EVM addresses
// and normalizes them to the gateway's recoverable form.
func abiProofOf(vs *multisig.VerifierSet, sigs []SignerWithSig, digest [32]byte) (abiProof, error) {
	signers, err := abiWeightedSignersOf(vs)
	if err != nil {
		return abiProof{}, err
	}

	type addressedSig struct {
		addr common.Address
		sig  []byte
	}
	ordered := make([]addressedSig, 0, len(sigs))
	for _, s := range sigs {
		addr, err := evmAddress(s.Signer.PubKey)
		if err != nil {
			return abiProof{}, err
		}
		sig, err := abiRecoverableSignature(s, digest)
		if err != nil {
			return abiProof{}, err
		}
		ordered = append(ordered, addressedSig{addr: addr, sig: sig})
	}
	sort.Slice(ordered, func(i, j int) bool {
		return bytes.Compare(ordered[i].addr[:], ordered[j].addr[:]) < 0
	})

	signatures := make([][]byte, len(ordered))
	for i, s := range ordered {
		signatures[i] = s.sig
	}
	return abiProof{Signers: signers, Signatures: signatures}, nil
}

// abiExecuteData builds the gateway calldata, selector included.
func abiExecuteData(
	domainSeparator [32]byte,
	vs *multisig.VerifierSet,
	sigs []SignerWithSig,
	payload prover.Payload,
) ([]byte, error) {
	// The signatures are over this digest; recovery id detection needs it.
	digest, err := abiDigest(domainSeparator, vs, payload)
	if err != nil {
		return nil, err
	}
	proof, err := abiProofOf(vs, sigs, digest)
	if err != nil {
		return nil, err
	}

	if payload.VerifierSet != nil {
		newSigners, err := abiWeightedSignersOf(payload.VerifierSet)
		if err != nil {
			return nil, err
		}
		data, err := evmGateway.Pack("rotateSigners", newSigners, proof)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSerializeData, err)
		}
		return data, nil
	}

	msgs, err := abiMessagesOf(payload.Messages)
	if err != nil {
		return nil, err
	}
	data, err := evmGateway.Pack("approveMessages", msgs, proof)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSerializeData, err)
	}
	return data, nil
}
