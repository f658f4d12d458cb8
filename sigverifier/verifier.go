// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sigverifier delegates signature verification to an external
// service over JSON-RPC. Key schemes the engine cannot check natively, such
// as Aleo's snarkVM Schnorr signatures, are verified out of process and the
// boolean verdict folded back into the signing session.
package sigverifier

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/luxfi/log"

	"github.com/eigerco/axelar-amplifier-sub000/multisig"
)

const defaultTimeout = 30 * time.Second

var _ multisig.SignatureVerifier = (*Client)(nil)

// Client calls a remote verifier endpoint. It implements
// multisig.SignatureVerifier.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        log.Logger
}

type Option func(*Client)

// WithHTTPClient overrides the default transport.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithLogger attaches a logger to the client.
func WithLogger(l log.Logger) Option {
	return func(client *Client) {
		client.log = l
	}
}

// NewClient creates a verifier client for the given endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		log: log.NoLog{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// verifyParams is the wire form of a verification request. Byte fields
// travel hex encoded.
type verifyParams struct {
	Signature string `json:"signature"`
	Message   string `json:"message"`
	PublicKey string `json:"publicKey"`
	Signer    string `json:"signer"`
	SessionID uint64 `json:"sessionId"`
}

type verifyResult struct {
	Valid bool `json:"valid"`
}

func (c *Client) call(ctx context.Context, method string, params interface{}, result interface{}) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("RPC error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	if result != nil && len(rpcResp.Result) > 0 {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("failed to unmarshal result: %w", err)
		}
	}
	return nil
}

// VerifySignature asks the remote service whether the signature over the
// message is valid for the public key. Transport and service errors are
// returned as errors, a clean negative verdict as false with a nil error.
func (c *Client) VerifySignature(
	ctx context.Context,
	signature []byte,
	message []byte,
	publicKey []byte,
	signer string,
	sessionID uint64,
) (bool, error) {
	params := verifyParams{
		Signature: hex.EncodeToString(signature),
		Message:   hex.EncodeToString(message),
		PublicKey: hex.EncodeToString(publicKey),
		Signer:    signer,
		SessionID: sessionID,
	}

	var result verifyResult
	if err := c.call(ctx, "verify_signature", params, &result); err != nil {
		c.log.Debug("signature verification call failed",
			log.String("signer", signer),
			log.Uint64("sessionID", sessionID),
		)
		return false, err
	}
	return result.Valid, nil
}
