// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/storymint/chain"
	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/storage"
)

// Accounts: owner(w,s), asset(w), collection(w), master_state(w),
// vault(w), system_program, mpl_core.
//
// The registry's total minted is left unchanged: it counts every mint ever
// made, not live supply.
func (p *Program) burn(ctx context.Context, inv *chain.Invocation, _ []byte) error {
	if err := inv.Expect(burnAccounts); err != nil {
		return err
	}
	var (
		owner       = inv.Account(0)
		asset       = inv.Account(1)
		collection  = inv.Account(2)
		masterState = inv.Account(3)
		vault       = inv.Account(4)
	)
	if err := p.checkPrograms(inv, 5, 6); err != nil {
		return err
	}
	if !inv.IsSigner(0) {
		return fmt.Errorf("%w: %s", ErrInvalidOwner, owner.ToBase58())
	}
	if err := p.expectPDA(masterState, func() (codec.Address, uint8, error) {
		return p.deriver.Registry(collection)
	}); err != nil {
		return err
	}
	if _, err := p.registry(ctx, inv, masterState, collection); err != nil {
		return err
	}
	if err := p.expectPDA(vault, func() (codec.Address, uint8, error) {
		return p.deriver.Vault(asset)
	}); err != nil {
		return err
	}
	v, lamports, err := storage.GetVault(ctx, inv.State, vault, p.config.ProgramID)
	if errors.Is(err, storage.ErrAccountNotFound) {
		return fmt.Errorf("%w: vault %s", ErrAccountNotFound, vault.ToBase58())
	}
	if err != nil {
		return err
	}
	if v.Asset != asset {
		return fmt.Errorf("%w: vault holds %s", ErrInvalidVaultInit, v.Asset.ToBase58())
	}
	// Lamports sent to the vault after mint are released with the lock.
	if lamports < v.LockedAmount {
		return fmt.Errorf("%w: %d < %d", ErrInvalidVaultBalance, lamports, v.LockedAmount)
	}

	inv.Logf("Instruction: BurnAndWithdraw")
	if err := p.backend.Burn(ctx, inv.State, asset, collection, owner); err != nil {
		return err
	}
	released, err := storage.CloseAccount(ctx, inv.State, vault, owner)
	if err != nil {
		return err
	}
	inv.Logf("released %d lamports to %s", released, owner.ToBase58())
	return nil
}
