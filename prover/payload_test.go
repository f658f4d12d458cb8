// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prover

import (
	"crypto/ed25519"
	"fmt"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/axelar-amplifier-sub000/multisig"
)

func testMessages(n int) []Message {
	msgs := make([]Message, n)
	for i := range msgs {
		msgs[i] = Message{
			CCID: CrossChainID{
				SourceChain: "ethereum",
				MessageID:   fmt.Sprintf("tx%d-0", i),
			},
			SourceAddress:      "0x52444f1835Adc02086c37Cb226561605e2E1699b",
			DestinationChain:   "ganache-0",
			DestinationAddress: "0xA4f10f76B86E01B98daF66A3d02a65e14adb0767",
			PayloadHash:        [32]byte{byte(i + 1)},
		}
	}
	return msgs
}

func testSet(t *testing.T) *multisig.VerifierSet {
	t.Helper()
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = 7
	pub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	return &multisig.VerifierSet{
		Signers: map[string]multisig.Signer{
			"verifier1": {
				Address: "verifier1",
				Weight:  uint256.NewInt(1),
				PubKey:  multisig.PublicKey{KeyType: multisig.Ed25519, Bytes: pub},
			},
		},
		Threshold: uint256.NewInt(1),
		CreatedAt: 5,
	}
}

func TestPayloadCommand(t *testing.T) {
	require := require.New(t)

	messages, err := NewMessagesPayload(testMessages(2))
	require.NoError(err)
	require.Equal(ApproveMessages, messages.Command())

	rotation, err := NewVerifierSetPayload(testSet(t))
	require.NoError(err)
	require.Equal(RotateSigners, rotation.Command())
}

func TestPayloadConstructors(t *testing.T) {
	require := require.New(t)

	_, err := NewMessagesPayload(nil)
	require.Error(err)

	_, err = NewVerifierSetPayload(nil)
	require.Error(err)

	invalid := testSet(t)
	invalid.Threshold = uint256.NewInt(0)
	_, err = NewVerifierSetPayload(invalid)
	require.ErrorIs(err, multisig.ErrInvalidVerifierSet)
}

func TestPayloadID(t *testing.T) {
	require := require.New(t)

	a, err := NewMessagesPayload(testMessages(2))
	require.NoError(err)
	b, err := NewMessagesPayload(testMessages(2))
	require.NoError(err)
	require.Equal(a.ID(), b.ID())

	c, err := NewMessagesPayload(testMessages(3))
	require.NoError(err)
	require.NotEqual(a.ID(), c.ID())

	rotation, err := NewVerifierSetPayload(testSet(t))
	require.NoError(err)
	require.NotEqual(a.ID(), rotation.ID())
}
