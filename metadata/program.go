// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metadata

import (
	"context"
	"fmt"

	"github.com/ava-labs/storymint/chain"
	"github.com/ava-labs/storymint/codec"
)

// TransferDiscriminator is the one byte tag of the transfer instruction.
const TransferDiscriminator byte = 14

var _ chain.Program = (*Core)(nil)

func (c *Core) ID() codec.Address {
	return c.id
}

func (*Core) Name() string {
	return "mpl-core"
}

// Execute handles the instructions clients send to the asset program
// directly. Only transfer is supported.
//
// Accounts: asset(w), collection, payer(w,s), authority(s), new owner.
// Passing the program ID as the authority makes the payer the authority.
func (c *Core) Execute(ctx context.Context, inv *chain.Invocation) error {
	if len(inv.Data) == 0 {
		return fmt.Errorf("%w: empty", chain.ErrInvalidInstructionData)
	}
	if inv.Data[0] != TransferDiscriminator {
		return fmt.Errorf("%w: asset instruction %d", chain.ErrUnsupportedInstruction, inv.Data[0])
	}
	if err := inv.Expect(5); err != nil {
		return err
	}
	if err := inv.RequireWritable(0); err != nil {
		return err
	}
	if err := inv.RequireSigner(2); err != nil {
		return err
	}
	authority := 3
	if inv.Account(authority) == c.id {
		authority = 2
	}
	if err := inv.RequireSigner(authority); err != nil {
		return err
	}
	newOwner := inv.Account(4)
	if newOwner == c.id {
		return ErrMissingNewOwner
	}
	inv.Logf("Instruction: Transfer")
	return c.Transfer(ctx, inv.State, inv.Account(0), inv.Account(1), inv.Account(authority), newOwner)
}
