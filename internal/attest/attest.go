// Package attest signs a property-function verdict so it can be checked
// by a third party without re-running the prover: the verdict record is
// hashed with Keccak256 and signed with an ECDSA key the same way a
// transaction is, using go-ethereum's crypto package.
package attest

import (
	"crypto/ecdsa"
	"encoding/hex"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Record is the canonical statement being attested to: that Function on
// Contract was proven to Verdict while exploring PathsExplored feasible
// paths within the given bounds. Field order is part of the canonical
// encoding, so it must not change without also revving Version.
type Record struct {
	Version       int    `json:"version"`
	Contract      string `json:"contract"`
	Function      string `json:"function"`
	Verdict       string `json:"verdict"`
	PathsExplored int    `json:"paths_explored"`
	MaxDepth      int    `json:"max_depth"`
	LoopBound     int    `json:"loop_bound"`
}

// Attestation is a Record together with the signature over its canonical
// hash.
type Attestation struct {
	Record    Record `json:"record"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
}

func (r Record) canonicalHash() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "Marshal")
	}
	return crypto.Keccak256(data), nil
}

// Sign produces an Attestation for record under key.
func Sign(record Record, key *ecdsa.PrivateKey) (*Attestation, error) {
	hash, err := record.canonicalHash()
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(hash, key)
	if err != nil {
		return nil, errors.Wrap(err, "crypto.Sign")
	}
	return &Attestation{
		Record:    record,
		Hash:      hex.EncodeToString(hash),
		Signature: hex.EncodeToString(sig),
	}, nil
}

// Verify reports whether att.Signature recovers to signer.
func Verify(att *Attestation, signer common.Address) (bool, error) {
	hash, err := att.Record.canonicalHash()
	if err != nil {
		return false, err
	}
	sig, err := hex.DecodeString(att.Signature)
	if err != nil {
		return false, errors.Wrap(err, "DecodeString signature")
	}
	pubKey, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return false, errors.Wrap(err, "SigToPub")
	}
	return crypto.PubkeyToAddress(*pubKey) == signer, nil
}
