// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"errors"
	"math/big"

	"github.com/NethermindEth/starknet.go/curve"
)

// Stark signatures are r || s || v, each component 32 bytes. The public key
// is the 32-byte x coordinate of a point on the stark curve; v selects the y
// parity but we accept either root, matching starknet's account checks.

func validateStarkPubKey(b []byte) error {
	x := new(big.Int).SetBytes(b)
	if x.Sign() == 0 {
		return errors.New("stark key is zero")
	}
	if x.Cmp(curve.Curve.P) >= 0 {
		return errors.New("stark key exceeds field modulus")
	}
	if curve.Curve.GetYCoordinate(x) == nil {
		return errors.New("stark key is not on the curve")
	}
	return nil
}

func verifyStark(msg, sig, pubKey []byte) bool {
	if len(msg) != 32 || len(sig) != starkSignatureLen {
		return false
	}
	// Message digests are interpreted as field elements.
	msgHash := new(big.Int).SetBytes(msg)
	msgHash.Mod(msgHash, curve.Curve.P)
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])

	x := new(big.Int).SetBytes(pubKey)
	y := curve.Curve.GetYCoordinate(x)
	if y == nil {
		return false
	}
	if curve.Curve.Verify(msgHash, r, s, x, y) {
		return true
	}
	negY := new(big.Int).Sub(curve.Curve.P, y)
	return curve.Curve.Verify(msgHash, r, s, x, negY)
}
