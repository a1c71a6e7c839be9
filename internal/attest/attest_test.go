package attest

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() Record {
	return Record{
		Version:       1,
		Contract:      "Counter",
		Function:      "test_increment_never_overflows",
		Verdict:       "PASS",
		PathsExplored: 4,
		MaxDepth:      256,
		LoopBound:     16,
	}
}

func TestSignAndVerify(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	signed, err := Sign(testRecord(), key)
	require.NoError(t, err)
	assert.NotEmpty(t, signed.Hash)
	assert.NotEmpty(t, signed.Signature)

	signer := crypto.PubkeyToAddress(key.PublicKey)
	ok, err := Verify(signed, signer)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejectsWrongSigner(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	other, err := crypto.GenerateKey()
	require.NoError(t, err)

	signed, err := Sign(testRecord(), key)
	require.NoError(t, err)

	ok, err := Verify(signed, crypto.PubkeyToAddress(other.PublicKey))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyRejectsTamperedRecord(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	signed, err := Sign(testRecord(), key)
	require.NoError(t, err)

	signed.Record.Verdict = "FAIL"
	ok, err := Verify(signed, crypto.PubkeyToAddress(key.PublicKey))
	require.NoError(t, err)
	assert.False(t, ok)
}
