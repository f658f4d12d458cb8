// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package encoding

import (
	"fmt"
	"sort"
	"strings"

	"github.com/holiman/uint256"
	"github.com/luxfi/crypto"

	"github.com/eigerco/axelar-amplifier-sub000/multisig"
	"github.com/eigerco/axelar-amplifier-sub000/prover"
)

// The Aleo gateway consumes canonical Aleo plaintext, not raw bytes. Structs
// render as `{ field: value, ... }` text, strings as u128 word arrays, and
// 32 byte hashes as group elements. Fixed capacity groups are zero padded.

const (
	// AleoZeroAddress pads the fixed signer groups.
	AleoZeroAddress = "aleo1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq3ljyzc"

	aleoSignerGroupSize = 32
	aleoSignerGroups    = 2

	aleoMessageGroupSize = 16
	aleoMessageGroups    = 3

	aleoSourceChainWords     = 2
	aleoMessageIDWords       = 8
	aleoSourceAddressWords   = 4
	aleoContractAddressWords = 4
)

// GroupHasher renders a 32 byte hash as an Aleo group element string. The
// gateway's native form is a snarkVM BHP-256 hash to group, which the host
// cannot compute; deployments plug in a backend the same way signature
// verification is delegated.
type GroupHasher func(hash [32]byte) (string, error)

// LittleEndianGroupText is the default GroupHasher: the hash interpreted as
// a little endian 256 bit integer, rendered in decimal with the group
// suffix.
func LittleEndianGroupText(hash [32]byte) (string, error) {
	var reversed [32]byte
	for i, b := range hash {
		reversed[31-i] = b
	}
	return new(uint256.Int).SetBytes(reversed[:]).Dec() + "group", nil
}

// AleoGroupHasher is the group rendering used by the Aleo encoder.
var AleoGroupHasher GroupHasher = LittleEndianGroupText

func aleoAddressOf(pk multisig.PublicKey) (string, error) {
	if pk.KeyType != multisig.AleoSchnorr {
		return "", fmt.Errorf("%w: %s keys cannot sign for Aleo", multisig.ErrInvalidPublicKey, pk.KeyType)
	}
	return string(pk.Bytes), nil
}

func aleoMessageText(msg prover.Message) (string, error) {
	sourceChain, err := aleoWordList(msg.CCID.SourceChain, aleoSourceChainWords, "source chain")
	if err != nil {
		return "", err
	}
	messageID, err := aleoWordList(msg.CCID.MessageID, aleoMessageIDWords, "message id")
	if err != nil {
		return "", err
	}
	sourceAddress, err := aleoWordList(msg.SourceAddress, aleoSourceAddressWords, "source address")
	if err != nil {
		return "", err
	}
	contractAddress, err := aleoWordList(msg.DestinationAddress, aleoContractAddressWords, "contract address")
	if err != nil {
		return "", err
	}
	payloadHash, err := AleoGroupHasher(msg.PayloadHash)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSerializeData, err)
	}

	return fmt.Sprintf(
		"{source_chain: [%s], message_id: [%s], source_address: [%s], contract_address: [%s], payload_hash: %s }",
		sourceChain, messageID, sourceAddress, contractAddress, payloadHash,
	), nil
}

func aleoMessagesText(msgs []prover.Message) (string, error) {
	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		text, err := aleoMessageText(msg)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return fmt.Sprintf("{ messages: [%s] }", strings.Join(parts, ", ")), nil
}

type aleoWeightedSigner struct {
	address string
	weight  *uint256.Int
}

// aleoSortedSigners canonicalizes a verifier set into the two fixed signer
// groups: real signers sorted by address ascending, the zero address filling
// the tail.
func aleoSortedSigners(vs *multisig.VerifierSet) ([]aleoWeightedSigner, error) {
	capacity := aleoSignerGroupSize * aleoSignerGroups
	if len(vs.Signers) > capacity {
		return nil, fmt.Errorf("%w: %d signers exceed the %d slot capacity",
			multisig.ErrInvalidVerifierSet, len(vs.Signers), capacity)
	}

	signers := make([]aleoWeightedSigner, 0, capacity)
	for _, signer := range vs.Signers {
		addr, err := aleoAddressOf(signer.PubKey)
		if err != nil {
			return nil, err
		}
		if signer.Weight.BitLen() > 128 {
			return nil, fmt.Errorf("%w: signer weight exceeds u128", ErrSerializeData)
		}
		signers = append(signers, aleoWeightedSigner{address: addr, weight: signer.Weight})
	}
	sort.Slice(signers, func(i, j int) bool {
		return signers[i].address < signers[j].address
	})
	for len(signers) < capacity {
		signers = append(signers, aleoWeightedSigner{
			address: AleoZeroAddress,
			weight:  uint256.NewInt(0),
		})
	}
	return signers, nil
}

func aleoWeightedSignersText(vs *multisig.VerifierSet) (string, error) {
	signers, err := aleoSortedSigners(vs)
	if err != nil {
		return "", err
	}
	if vs.Threshold.BitLen() > 128 {
		return "", fmt.Errorf("%w: threshold exceeds u128", ErrSerializeData)
	}

	parts := make([]string, len(signers))
	for i, s := range signers {
		parts[i] = fmt.Sprintf("{signer: %s, weight: %su128}", s.address, s.weight.Dec())
	}
	return fmt.Sprintf("{ signers: [ %s ], threshold: %su128 }",
		strings.Join(parts, ", "), vs.Threshold.Dec()), nil
}

// AleoMessageGroupText packs message hashes into the gateway's fixed 3x16
// group slots, zero group padded, capacity checked.
func AleoMessageGroupText(msgs []prover.Message) (string, error) {
	capacity := aleoMessageGroupSize * aleoMessageGroups
	if len(msgs) > capacity {
		return "", fmt.Errorf("%w: %d messages exceed the %d slot capacity",
			ErrSerializeData, len(msgs), capacity)
	}

	groups := make([]string, 0, capacity)
	for _, msg := range msgs {
		text, err := aleoMessageText(msg)
		if err != nil {
			return "", err
		}
		group, err := AleoGroupHasher(crypto.Keccak256Hash([]byte(text)))
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrSerializeData, err)
		}
		groups = append(groups, group)
	}
	for len(groups) < capacity {
		groups = append(groups, "0group")
	}

	rendered := make([]string, aleoMessageGroups)
	for i := range rendered {
		rendered[i] = "[" + strings.Join(groups[i*aleoMessageGroupSize:(i+1)*aleoMessageGroupSize], ", ") + "]"
	}
	return "[" + strings.Join(rendered, ", ") + "]", nil
}

func aleoPayloadText(payload prover.Payload) (string, error) {
	if payload.VerifierSet != nil {
		return aleoWeightedSignersText(payload.VerifierSet)
	}
	return aleoMessagesText(payload.Messages)
}

// aleoDigest binds the domain separator, the first signer of the set, and
// the payload's data hash into one canonical struct and hashes its text.
// Unlike the ABI and Starknet digests there is no signers hash; the digest
// commits to the set through its first member only.
func aleoDigest(domainSeparator [32]byte, vs *multisig.VerifierSet, payload prover.Payload) ([32]byte, error) {
	if len(vs.Signers) == 0 {
		return [32]byte{}, fmt.Errorf("%w: no signers", multisig.ErrInvalidVerifierSet)
	}
	signers, err := aleoSortedSigners(vs)
	if err != nil {
		return [32]byte{}, err
	}
	firstSigner := signers[0].address

	payloadText, err := aleoPayloadText(payload)
	if err != nil {
		return [32]byte{}, err
	}
	dataHash, err := AleoGroupHasher(crypto.Keccak256Hash([]byte(payloadText)))
	if err != nil {
		return [32]byte{}, fmt.Errorf("%w: %s", ErrSerializeData, err)
	}

	// Domain separator as two u128 limbs, big endian halves in order.
	hi := new(uint256.Int).SetBytes(domainSeparator[:16])
	lo := new(uint256.Int).SetBytes(domainSeparator[16:])

	text := fmt.Sprintf("{ domain_separator: [%su128, %su128], signer: %s, data_hash: %s }",
		hi.Dec(), lo.Dec(), firstSigner, dataHash)
	return crypto.Keccak256Hash([]byte(text)), nil
}

func aleoProofText(vs *multisig.VerifierSet, sigs []SignerWithSig) (string, error) {
	signersText, err := aleoWeightedSignersText(vs)
	if err != nil {
		return "", err
	}

	ordered := make([]SignerWithSig, len(sigs))
	copy(ordered, sigs)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Signer.Address < ordered[j].Signer.Address
	})

	rendered := make([]string, 0, len(ordered))
	for _, s := range ordered {
		if s.Signature.KeyType != multisig.AleoSchnorr {
			return "", fmt.Errorf("%w: %s signature cannot prove for Aleo", ErrProof, s.Signature.KeyType)
		}
		rendered = append(rendered, string(s.Signature.Bytes))
	}
	return fmt.Sprintf("{ weighted_signers: [%s], signatures: [%s] }",
		signersText, strings.Join(rendered, ", ")), nil
}

// aleoExecuteData is the canonical text of {proof, payload} as bytes. Only
// message payloads are supported; the gateway has no rotate signers entry
// point yet.
func aleoExecuteData(vs *multisig.VerifierSet, sigs []SignerWithSig, payload prover.Payload) ([]byte, error) {
	if payload.VerifierSet != nil {
		return nil, fmt.Errorf("%w: aleo execute data for verifier set rotation is not supported", ErrSerializeData)
	}

	payloadText, err := aleoMessagesText(payload.Messages)
	if err != nil {
		return nil, err
	}
	proofText, err := aleoProofText(vs, sigs)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("{ proof: %s, payload: %s }", proofText, payloadText)), nil
}
