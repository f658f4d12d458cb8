// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"
)

const (
	testChain  = "ganache-0"
	testProver = "prover"
)

type testEnv struct {
	ms      *Multisig
	vsID    string
	privs   map[string]ed25519.PrivateKey
	digest  []byte
	height  uint64
	session uint64
}

// newTestEnv starts a session over a 5 signer, weight 1 each, threshold 4
// verifier set.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	require := require.New(t)

	ms := New(Config{BlockExpiry: 10}, memdb.New(), log.NoLog{})

	signers := make(map[string]Signer, 5)
	privs := make(map[string]ed25519.PrivateKey, 5)
	for i := 1; i <= 5; i++ {
		seed := make([]byte, ed25519.SeedSize)
		seed[0] = byte(i)
		priv := ed25519.NewKeyFromSeed(seed)
		addr := fmt.Sprintf("verifier%d", i)
		privs[addr] = priv
		signers[addr] = Signer{
			Address: addr,
			Weight:  uint256.NewInt(1),
			PubKey:  PublicKey{KeyType: Ed25519, Bytes: priv.Public().(ed25519.PublicKey)},
		}
	}
	vsID, err := ms.RegisterVerifierSet(&VerifierSet{
		Signers:   signers,
		Threshold: uint256.NewInt(4),
		CreatedAt: 90,
	})
	require.NoError(err)
	require.NoError(ms.AuthorizeCallers([]string{testProver}, testChain))

	digest := hexBytes(t, testDigestHex)
	sessionID, err := ms.StartSigningSession(testProver, vsID, testChain, digest, 100, "")
	require.NoError(err)

	return &testEnv{
		ms:      ms,
		vsID:    vsID,
		privs:   privs,
		digest:  digest,
		height:  100,
		session: sessionID,
	}
}

func (e *testEnv) sign(addr string) Signature {
	return Signature{KeyType: Ed25519, Bytes: ed25519.Sign(e.privs[addr], e.digest)}
}

func TestStartSigningSession(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	session, err := env.ms.Session(env.session)
	require.NoError(err)
	require.Equal(Pending, session.State)
	require.Equal(env.vsID, session.VerifierSetID)
	require.Equal(testChain, session.ChainName)
	require.Equal(env.digest, session.Msg)
	require.Equal(uint64(110), session.ExpiresAt)

	// Ids are sequential.
	next, err := env.ms.StartSigningSession(testProver, env.vsID, testChain, env.digest, 100, "")
	require.NoError(err)
	require.Equal(env.session+1, next)
}

func TestStartSigningSessionUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.ms.StartSigningSession("rando", env.vsID, testChain, env.digest, 100, "")
	require.Error(t, err)
}

func TestStartSigningSessionUnknownVerifierSet(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.ms.StartSigningSession(testProver, "missing", testChain, env.digest, 100, "")
	require.ErrorIs(t, err, ErrVerifierSetNotFound)
}

func TestStartSigningSessionFrozenChain(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	require.NoError(env.ms.DisableSigning(testChain))
	_, err := env.ms.StartSigningSession(testProver, env.vsID, testChain, env.digest, 100, "")
	require.Error(err)

	require.NoError(env.ms.EnableSigning(testChain))
	_, err = env.ms.StartSigningSession(testProver, env.vsID, testChain, env.digest, 100, "")
	require.NoError(err)
}

func TestSubmitSignatureQuorum(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		addr := fmt.Sprintf("verifier%d", i)
		state, err := env.ms.SubmitSignature(ctx, env.session, addr, env.sign(addr), env.height+uint64(i))
		require.NoError(err)
		if i < 4 {
			require.Equal(Pending, state, "after %d signatures", i)
		} else {
			require.Equal(Completed, state, "after %d signatures", i)
		}
	}

	session, _, sigs, err := env.ms.SessionSignatures(env.session)
	require.NoError(err)
	require.Equal(Completed, session.State)
	require.Equal(uint64(104), session.CompletedAt)
	require.Len(sigs, 5)
}

func TestSubmitSignatureNotAParticipant(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.ms.SubmitSignature(context.Background(), env.session, "intruder", env.sign("verifier1"), env.height)
	require.ErrorIs(t, err, ErrNotAParticipant)
}

func TestSubmitSignatureWrongPayload(t *testing.T) {
	env := newTestEnv(t)
	sig := Signature{KeyType: Ed25519, Bytes: ed25519.Sign(env.privs["verifier1"], []byte("other"))}
	_, err := env.ms.SubmitSignature(context.Background(), env.session, "verifier1", sig, env.height)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSubmitSignatureAfterExpiry(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.ms.SubmitSignature(context.Background(), env.session, "verifier1", env.sign("verifier1"), env.height+11)
	require.ErrorIs(t, err, ErrSigningSessionClosed)
}

func TestSubmitSignatureReplacement(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ms.SubmitSignature(ctx, env.session, "verifier1", env.sign("verifier1"), env.height)
	require.NoError(err)

	// A second submission from the same signer replaces the first and does
	// not double count its weight.
	_, err = env.ms.SubmitSignature(ctx, env.session, "verifier1", env.sign("verifier1"), env.height+1)
	require.NoError(err)

	_, _, sigs, err := env.ms.SessionSignatures(env.session)
	require.NoError(err)
	require.Len(sigs, 1)

	session, err := env.ms.Session(env.session)
	require.NoError(err)
	require.Equal(Pending, session.State)
}

func TestSubmitSignatureGracePeriod(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		addr := fmt.Sprintf("verifier%d", i)
		_, err := env.ms.SubmitSignature(ctx, env.session, addr, env.sign(addr), env.height)
		require.NoError(err)
	}
	session, err := env.ms.Session(env.session)
	require.NoError(err)
	require.Equal(Completed, session.State)
	completedAt := session.CompletedAt

	// A late signature before expiry still lands, and completion metadata
	// is untouched.
	state, err := env.ms.SubmitSignature(ctx, env.session, "verifier5", env.sign("verifier5"), env.height+5)
	require.NoError(err)
	require.Equal(Completed, state)

	session, err = env.ms.Session(env.session)
	require.NoError(err)
	require.Equal(completedAt, session.CompletedAt)

	_, _, sigs, err := env.ms.SessionSignatures(env.session)
	require.NoError(err)
	require.Len(sigs, 5)
}

func TestSubmitSignatureDelegatedVerifier(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	verifier := &stubVerifier{result: true}
	env.ms.RegisterSigVerifier("gateway", verifier)

	sessionID, err := env.ms.StartSigningSession(testProver, env.vsID, testChain, env.digest, env.height, "gateway")
	require.NoError(err)

	// Payload bytes the local schemes would reject; the delegated backend
	// is the authority.
	junk := Signature{KeyType: Ed25519, Bytes: make([]byte, 64)}
	_, err = env.ms.SubmitSignature(ctx, sessionID, "verifier1", junk, env.height)
	require.NoError(err)
	require.Equal(uint64(sessionID), verifier.gotSessionID)
	require.Equal("verifier1", verifier.gotSigner)

	verifier.result = false
	_, err = env.ms.SubmitSignature(ctx, sessionID, "verifier2", junk, env.height)
	require.ErrorIs(err, ErrInvalidSignature)
}

func TestStartSigningSessionUnknownVerifier(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.ms.StartSigningSession(testProver, env.vsID, testChain, env.digest, env.height, "missing")
	require.Error(t, err)
}

func TestRegisterPubKey(t *testing.T) {
	require := require.New(t)
	ms := New(Config{BlockExpiry: 10}, memdb.New(), log.NoLog{})

	pk := PublicKey{KeyType: Ecdsa, Bytes: hexBytes(t, ecdsaPubKeyHex)}
	require.NoError(ms.RegisterPubKey("verifier1", pk))

	got, err := ms.PubKey("verifier1", Ecdsa)
	require.NoError(err)
	require.True(pk.Equal(got))

	require.ErrorIs(ms.RegisterPubKey("verifier2", pk), ErrDuplicatePublicKey)

	bad := PublicKey{KeyType: Ecdsa, Bytes: []byte{1, 2, 3}}
	require.ErrorIs(ms.RegisterPubKey("verifier3", bad), ErrInvalidPublicKey)
}
