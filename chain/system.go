// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/system"

	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/consts"
	"github.com/ava-labs/storymint/storage"
)

var _ Program = (*SystemProgram)(nil)

// SystemProgram implements the lamport transfer of the Solana system
// program. Accounts are created by the programs that own them.
type SystemProgram struct{}

func (*SystemProgram) ID() codec.Address {
	return common.SystemProgramID
}

func (*SystemProgram) Name() string {
	return "system"
}

func (*SystemProgram) Execute(ctx context.Context, inv *Invocation) error {
	if len(inv.Data) < consts.Uint32Len {
		return fmt.Errorf("%w: missing instruction index", ErrInvalidInstructionData)
	}
	index := binary.LittleEndian.Uint32(inv.Data)
	if index != uint32(system.InstructionTransfer) {
		return fmt.Errorf("%w: system instruction %d", ErrUnsupportedInstruction, index)
	}
	if len(inv.Data) != consts.Uint32Len+consts.Uint64Len {
		return fmt.Errorf("%w: transfer is %d bytes", ErrInvalidInstructionData, len(inv.Data))
	}
	if err := inv.Expect(2); err != nil {
		return err
	}
	if err := inv.RequireSigner(0); err != nil {
		return err
	}
	if err := inv.RequireWritable(0); err != nil {
		return err
	}
	if err := inv.RequireWritable(1); err != nil {
		return err
	}
	lamports := binary.LittleEndian.Uint64(inv.Data[consts.Uint32Len:])
	from := inv.Account(0)
	a, _, err := storage.GetAccount(ctx, inv.State, from)
	if err != nil {
		return err
	}
	if !a.SystemOwned() || len(a.Data) > 0 {
		return fmt.Errorf("%w: from must not carry data", storage.ErrInvalidOwner)
	}
	inv.Logf("transfer %d lamports", lamports)
	return storage.Transfer(ctx, inv.State, from, inv.Account(1), lamports)
}
