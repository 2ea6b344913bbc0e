// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/blocto/solana-go-sdk/types"

	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/state"
)

// Program executes the instructions addressed to [ID].
//
// Execute may leave partial changes behind when it returns an error: the
// runtime rolls the transaction back to its post-fee checkpoint.
type Program interface {
	ID() codec.Address
	Name() string
	Execute(ctx context.Context, inv *Invocation) error
}

// Invocation is one instruction being executed.
type Invocation struct {
	ProgramID codec.Address
	Accounts  []types.AccountMeta
	Data      []byte
	State     state.Mutable
	Rules     Rules

	logs *[]string
}

// NewInvocation returns an invocation of [ix] against [mu]. [logs] collects
// the program's log lines.
func NewInvocation(ix types.Instruction, mu state.Mutable, r Rules, logs *[]string) *Invocation {
	return &Invocation{
		ProgramID: ix.ProgramID,
		Accounts:  ix.Accounts,
		Data:      ix.Data,
		State:     mu,
		Rules:     r,
		logs:      logs,
	}
}

// Expect returns an error unless at least [n] accounts were passed.
func (inv *Invocation) Expect(n int) error {
	if len(inv.Accounts) < n {
		return fmt.Errorf("%w: expected %d but got %d", ErrNotEnoughAccounts, n, len(inv.Accounts))
	}
	return nil
}

// Account returns the address of the [i]th account.
func (inv *Invocation) Account(i int) codec.Address {
	return inv.Accounts[i].PubKey
}

// IsSigner returns true if the [i]th account signed the transaction.
func (inv *Invocation) IsSigner(i int) bool {
	return inv.Accounts[i].IsSigner
}

// RequireSigner fails unless the [i]th account signed.
func (inv *Invocation) RequireSigner(i int) error {
	if !inv.IsSigner(i) {
		return fmt.Errorf("%w: %s", ErrMissingRequiredSignature, inv.Account(i).ToBase58())
	}
	return nil
}

// RequireWritable fails unless the [i]th account was passed as writable.
func (inv *Invocation) RequireWritable(i int) error {
	if !inv.Accounts[i].IsWritable {
		return fmt.Errorf("%w: %s", ErrAccountNotWritable, inv.Account(i).ToBase58())
	}
	return nil
}

// Logf records a "Program log:" line.
func (inv *Invocation) Logf(format string, args ...any) {
	if inv.logs == nil {
		return
	}
	*inv.logs = append(*inv.logs, "Program log: "+fmt.Sprintf(format, args...))
}

// Rent is the one time charge for creating an account holding [dataLen]
// bytes.
func (inv *Invocation) Rent(dataLen int) uint64 {
	return inv.Rules.Rent(dataLen)
}
