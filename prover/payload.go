// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package prover models the payloads that verifier sets attest to: batches
// of cross chain messages, or the rotation to a new verifier set.
package prover

import (
	"fmt"

	"github.com/luxfi/crypto"
	"github.com/luxfi/ids"

	"github.com/eigerco/axelar-amplifier-sub000/multisig"
)

// Command is the payload kind discriminant shared by all chain encoders.
type Command uint8

const (
	ApproveMessages Command = 0
	RotateSigners   Command = 1
)

func (c Command) String() string {
	switch c {
	case ApproveMessages:
		return "approve-messages"
	case RotateSigners:
		return "rotate-signers"
	default:
		return fmt.Sprintf("unknown command %d", c)
	}
}

// CrossChainID uniquely identifies a message across chains.
type CrossChainID struct {
	SourceChain string `json:"sourceChain"`
	MessageID   string `json:"messageId"`
}

func (id CrossChainID) String() string {
	return id.SourceChain + "_" + id.MessageID
}

// Message is one cross chain message awaiting approval on the destination
// chain. PayloadHash commits to the message body, which never passes through
// this engine.
type Message struct {
	CCID               CrossChainID `json:"ccId"`
	SourceAddress      string       `json:"sourceAddress"`
	DestinationChain   string       `json:"destinationChain"`
	DestinationAddress string       `json:"destinationAddress"`
	PayloadHash        [32]byte     `json:"payloadHash"`
}

// Payload is what a signing session attests to. Exactly one of Messages or
// VerifierSet is set.
type Payload struct {
	Messages    []Message             `json:"messages,omitempty"`
	VerifierSet *multisig.VerifierSet `json:"verifierSet,omitempty"`
}

// NewMessagesPayload wraps a message batch for approval.
func NewMessagesPayload(msgs []Message) (Payload, error) {
	if len(msgs) == 0 {
		return Payload{}, fmt.Errorf("message payload must not be empty")
	}
	return Payload{Messages: msgs}, nil
}

// NewVerifierSetPayload wraps a rotation to a new verifier set.
func NewVerifierSetPayload(vs *multisig.VerifierSet) (Payload, error) {
	if vs == nil {
		return Payload{}, fmt.Errorf("verifier set payload must not be nil")
	}
	if err := vs.Validate(); err != nil {
		return Payload{}, err
	}
	return Payload{VerifierSet: vs}, nil
}

// Command returns the discriminant for the payload kind.
func (p Payload) Command() Command {
	if p.VerifierSet != nil {
		return RotateSigners
	}
	return ApproveMessages
}

// ID derives the payload's content identity, used to correlate signing
// sessions to what is being signed.
func (p Payload) ID() ids.ID {
	if p.VerifierSet != nil {
		return ids.ID(crypto.Keccak256Hash([]byte(p.VerifierSet.ID())))
	}
	h := make([]byte, 0, 64*len(p.Messages))
	for _, msg := range p.Messages {
		h = append(h, []byte(msg.CCID.String())...)
		h = append(h, 0)
	}
	return ids.ID(crypto.Keccak256Hash(h))
}
