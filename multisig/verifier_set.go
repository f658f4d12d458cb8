// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/holiman/uint256"
	"github.com/luxfi/crypto"
)

// Signer is one weighted participant of a verifier set.
type Signer struct {
	Address string       `json:"address"`
	Weight  *uint256.Int `json:"weight"`
	PubKey  PublicKey    `json:"pubKey"`
}

// VerifierSet is a snapshot of weighted signers with a quorum threshold.
// Sets are immutable once created; rotation replaces the whole set.
type VerifierSet struct {
	// Signers is keyed by participant address.
	Signers   map[string]Signer `json:"signers"`
	Threshold *uint256.Int      `json:"threshold"`
	// CreatedAt is the block height the set was created at. It
	// disambiguates sets with identical membership.
	CreatedAt uint64 `json:"createdAt"`
}

// Validate checks the construction invariants of the set.
func (vs *VerifierSet) Validate() error {
	if len(vs.Signers) == 0 {
		return fmt.Errorf("%w: no signers", ErrInvalidVerifierSet)
	}
	if vs.Threshold == nil || vs.Threshold.IsZero() {
		return fmt.Errorf("%w: threshold must be positive", ErrInvalidVerifierSet)
	}
	total := uint256.NewInt(0)
	for addr, signer := range vs.Signers {
		if signer.Address != addr {
			return fmt.Errorf("%w: signer keyed by %q has address %q", ErrInvalidVerifierSet, addr, signer.Address)
		}
		if signer.Weight == nil || signer.Weight.IsZero() {
			return fmt.Errorf("%w: signer %s has zero weight", ErrInvalidVerifierSet, addr)
		}
		if err := signer.PubKey.Validate(); err != nil {
			return fmt.Errorf("%w: signer %s: %s", ErrInvalidVerifierSet, addr, err)
		}
		var overflow bool
		total, overflow = new(uint256.Int).AddOverflow(total, signer.Weight)
		if overflow {
			return fmt.Errorf("%w: total weight overflows", ErrInvalidVerifierSet)
		}
	}
	if vs.Threshold.Gt(total) {
		return fmt.Errorf("%w: threshold %s exceeds total weight %s", ErrInvalidVerifierSet, vs.Threshold, total)
	}
	return nil
}

// TotalWeight sums the weights of all signers.
func (vs *VerifierSet) TotalWeight() *uint256.Int {
	total := uint256.NewInt(0)
	for _, signer := range vs.Signers {
		total.Add(total, signer.Weight)
	}
	return total
}

// SortedSigners returns the signers ordered by ascending address.
func (vs *VerifierSet) SortedSigners() []Signer {
	signers := make([]Signer, 0, len(vs.Signers))
	for _, signer := range vs.Signers {
		signers = append(signers, signer)
	}
	sort.Slice(signers, func(i, j int) bool {
		return signers[i].Address < signers[j].Address
	})
	return signers
}

// ID derives a content id for the set. Two sets with the same signers,
// weights, threshold, and creation height share an id.
func (vs *VerifierSet) ID() string {
	h := make([]byte, 0, 64*len(vs.Signers))
	for _, signer := range vs.SortedSigners() {
		h = append(h, []byte(signer.Address)...)
		h = append(h, byte(signer.PubKey.KeyType))
		h = append(h, signer.PubKey.Bytes...)
		weight := signer.Weight.Bytes32()
		h = append(h, weight[:]...)
	}
	threshold := vs.Threshold.Bytes32()
	h = append(h, threshold[:]...)
	h = binary.BigEndian.AppendUint64(h, vs.CreatedAt)
	return hex.EncodeToString(crypto.Keccak256(h))
}
