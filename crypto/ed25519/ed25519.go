// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/ed25519"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/hdevalence/ed25519consensus"

	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/crypto"
)

type Signature [ed25519.SignatureSize]byte

// Signatures are checked under ZIP-215 (https://zips.z.cash/zip-0215) so
// that single and batch verification accept exactly the same set.
const (
	PublicKeyLen  = ed25519.PublicKeySize
	PrivateKeyLen = ed25519.PrivateKeySize
	SignatureLen  = ed25519.SignatureSize

	MinBatchSize = 4
)

var EmptySignature = Signature{}

// Sign returns a valid signature for msg using the key of [acct].
func Sign(msg []byte, acct types.Account) (Signature, error) {
	if len(acct.PrivateKey) != PrivateKeyLen {
		return EmptySignature, crypto.ErrInvalidPrivateKey
	}
	return Signature(ed25519.Sign(acct.PrivateKey, msg)), nil
}

// Verify returns whether s is a valid signature of msg by p.
func Verify(msg []byte, p codec.Address, s Signature) bool {
	return ed25519consensus.Verify(p[:], msg, s[:])
}

type Batch struct {
	bv ed25519consensus.BatchVerifier
	n  int
}

func NewBatch(size int) *Batch {
	return &Batch{bv: ed25519consensus.NewPreallocatedBatchVerifier(size)}
}

func (b *Batch) Add(msg []byte, p codec.Address, s Signature) {
	b.bv.Add(p[:], msg, s[:])
	b.n++
}

func (b *Batch) Len() int {
	return b.n
}

func (b *Batch) Verify() bool {
	return b.bv.Verify()
}

func (b *Batch) VerifyAsync() func() error {
	return func() error {
		if !b.Verify() {
			return crypto.ErrInvalidSignature
		}
		return nil
	}
}
