// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"crypto/sha256"
	"fmt"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
	"github.com/near/borsh-go"

	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/crypto/ed25519"
	"github.com/ava-labs/storymint/state"
	"github.com/ava-labs/storymint/storage"
)

// Message is the signed body of a [Transaction]. [Nonce] lets a client send
// the same instructions twice without the copies sharing an ID.
type Message struct {
	FeePayer     codec.Address
	Nonce        uint64
	Instructions []types.Instruction
}

// Digest is the payload every signer signs.
func (m *Message) Digest() ([]byte, error) {
	b, err := borsh.Serialize(*m)
	if err != nil {
		return nil, err
	}
	h := sha256.Sum256(b)
	return h[:], nil
}

type Signature struct {
	PubKey    codec.Address
	Signature ed25519.Signature
}

type Transaction struct {
	Message    Message
	Signatures []Signature

	digest []byte
	id     string
}

func NewTransaction(feePayer codec.Address, nonce uint64, instructions ...types.Instruction) *Transaction {
	return &Transaction{
		Message: Message{
			FeePayer:     feePayer,
			Nonce:        nonce,
			Instructions: instructions,
		},
	}
}

func (t *Transaction) Digest() ([]byte, error) {
	if len(t.digest) > 0 {
		return t.digest, nil
	}
	d, err := t.Message.Digest()
	if err != nil {
		return nil, err
	}
	t.digest = d
	return d, nil
}

// Sign replaces the signatures of t with one from each of [accounts]. The
// fee payer's signature is always placed first.
func (t *Transaction) Sign(accounts ...types.Account) error {
	digest, err := t.Digest()
	if err != nil {
		return err
	}
	sigs := make([]Signature, 0, len(accounts))
	for _, acct := range accounts {
		sig, err := ed25519.Sign(digest, acct)
		if err != nil {
			return err
		}
		s := Signature{PubKey: acct.PublicKey, Signature: sig}
		if acct.PublicKey == t.Message.FeePayer {
			sigs = append([]Signature{s}, sigs...)
			continue
		}
		sigs = append(sigs, s)
	}
	t.Signatures = sigs
	t.id = ""
	return nil
}

// ID is the base58 fee payer signature, which is how Solana names
// transactions.
func (t *Transaction) ID() string {
	if len(t.id) > 0 {
		return t.id
	}
	if len(t.Signatures) == 0 {
		return ""
	}
	t.id = base58.Encode(t.Signatures[0].Signature[:])
	return t.id
}

// Signers returns every account that must sign t, fee payer first.
func (t *Transaction) Signers() []codec.Address {
	seen := map[codec.Address]struct{}{t.Message.FeePayer: {}}
	signers := []codec.Address{t.Message.FeePayer}
	for _, ix := range t.Message.Instructions {
		for _, meta := range ix.Accounts {
			if !meta.IsSigner {
				continue
			}
			if _, ok := seen[meta.PubKey]; ok {
				continue
			}
			seen[meta.PubKey] = struct{}{}
			signers = append(signers, meta.PubKey)
		}
	}
	return signers
}

// StateKeys is the set of account keys t may touch. The fee payer and
// writable accounts may be created, modified or deleted; everything else is
// only read.
func (t *Transaction) StateKeys() state.Keys {
	keys := state.Keys{}
	keys.Add(string(storage.AccountKey(t.Message.FeePayer)), state.All)
	for _, ix := range t.Message.Instructions {
		keys.Add(string(storage.AccountKey(ix.ProgramID)), state.Read)
		for _, meta := range ix.Accounts {
			perm := state.Read
			if meta.IsWritable {
				perm = state.All
			}
			keys.Add(string(storage.AccountKey(meta.PubKey)), perm)
		}
	}
	return keys
}

// Verify performs every check on t that does not need state or signature
// verification.
func (t *Transaction) Verify(r Rules) error {
	if len(t.Message.Instructions) == 0 {
		return ErrNoInstructions
	}
	if len(t.Message.Instructions) > r.GetMaxInstructions() {
		return fmt.Errorf("%w: %d > %d", ErrTooManyInstructions, len(t.Message.Instructions), r.GetMaxInstructions())
	}
	if len(t.Signatures) > r.GetMaxSignatures() {
		return fmt.Errorf("%w: %d > %d", ErrTooManySignatures, len(t.Signatures), r.GetMaxSignatures())
	}
	if len(t.Signatures) == 0 || t.Signatures[0].PubKey != t.Message.FeePayer {
		return fmt.Errorf("%w: fee payer %s", ErrMissingSignature, t.Message.FeePayer.ToBase58())
	}

	required := map[codec.Address]bool{}
	for _, signer := range t.Signers() {
		required[signer] = false
	}
	for _, sig := range t.Signatures {
		signed, ok := required[sig.PubKey]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnexpectedSignature, sig.PubKey.ToBase58())
		}
		if signed {
			return fmt.Errorf("%w: %s", ErrDuplicateSignature, sig.PubKey.ToBase58())
		}
		required[sig.PubKey] = true
	}
	for signer, signed := range required {
		if !signed {
			return fmt.Errorf("%w: %s", ErrMissingSignature, signer.ToBase58())
		}
	}
	return nil
}

// VerifySignatures checks every signature of t against its digest.
func (t *Transaction) VerifySignatures() error {
	digest, err := t.Digest()
	if err != nil {
		return err
	}
	for _, sig := range t.Signatures {
		if !ed25519.Verify(digest, sig.PubKey, sig.Signature) {
			return fmt.Errorf("%w: %s", ErrInvalidSignature, sig.PubKey.ToBase58())
		}
	}
	return nil
}

type transactionRecord struct {
	Message    Message
	Signatures []Signature
}

func (t *Transaction) Marshal() ([]byte, error) {
	return borsh.Serialize(transactionRecord{
		Message:    t.Message,
		Signatures: t.Signatures,
	})
}

func UnmarshalTransaction(b []byte) (*Transaction, error) {
	var rec transactionRecord
	if err := borsh.Deserialize(&rec, b); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransaction, err)
	}
	return &Transaction{Message: rec.Message, Signatures: rec.Signatures}, nil
}
