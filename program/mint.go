// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"context"
	"fmt"

	"github.com/ava-labs/storymint/chain"
	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/metadata"
	"github.com/ava-labs/storymint/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// Accounts: payer(w,s), vault(w), asset(w,s), master_state(w),
// collection(w), mint_authority, owner, system_program, mpl_core.
func (p *Program) mint(ctx context.Context, inv *chain.Invocation, _ []byte) error {
	if err := inv.Expect(mintAccounts); err != nil {
		return err
	}
	var (
		payer         = inv.Account(0)
		vault         = inv.Account(1)
		asset         = inv.Account(2)
		masterState   = inv.Account(3)
		collection    = inv.Account(4)
		mintAuthority = inv.Account(5)
		owner         = inv.Account(6)
	)
	if err := p.checkPrograms(inv, 7, 8); err != nil {
		return err
	}
	for _, i := range []int{0, 2} {
		if err := inv.RequireSigner(i); err != nil {
			return err
		}
	}
	if err := p.expectPDA(masterState, func() (codec.Address, uint8, error) {
		return p.deriver.Registry(collection)
	}); err != nil {
		return err
	}
	reg, err := p.registry(ctx, inv, masterState, collection)
	if err != nil {
		return err
	}
	if reg.TotalMinted >= p.config.MaxSupply {
		return fmt.Errorf("%w: %d", ErrMaxSupplyReached, reg.TotalMinted)
	}
	if err := p.checkMintAuthority(reg, collection, mintAuthority); err != nil {
		return err
	}
	if err := p.expectPDA(vault, func() (codec.Address, uint8, error) {
		return p.deriver.Vault(asset)
	}); err != nil {
		return err
	}
	if _, exists, err := storage.GetAccount(ctx, inv.State, vault); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("%w: vault %s", storage.ErrAccountAlreadyInUse, vault.ToBase58())
	}

	col, err := p.backend.Collection(ctx, inv.State, collection)
	if err != nil {
		return err
	}
	vaultData, err := (&storage.Vault{Asset: asset, LockedAmount: p.config.LockAmount}).Marshal()
	if err != nil {
		return err
	}
	vaultRent := inv.Rent(len(vaultData))
	assetRent, err := p.assetRent(inv, owner, collection, col)
	if err != nil {
		return err
	}
	required, err := smath.Add(p.config.LockAmount, vaultRent)
	if err != nil {
		return ErrOverflow
	}
	if required, err = smath.Add(required, assetRent); err != nil {
		return ErrOverflow
	}
	balance, err := storage.GetLamports(ctx, inv.State, payer)
	if err != nil {
		return err
	}
	if balance < required {
		return fmt.Errorf("%w: need %d lamports but have %d", ErrInsufficientFunds, required, balance)
	}

	inv.Logf("Instruction: MintAsset")
	if err := p.backend.Create(ctx, inv.State, &metadata.CreateArgs{
		Payer:      payer,
		Asset:      asset,
		Collection: collection,
		Authority:  mintAuthority,
		Owner:      owner,
		Name:       col.Name,
		URI:        col.URI,
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrAssetCreationFailed, err)
	}
	if err := p.backend.VerifyCollection(ctx, inv.State, asset, collection, mintAuthority); err != nil {
		return err
	}
	if err := storage.CreateAccount(ctx, inv.State, payer, vault, p.config.ProgramID, p.config.LockAmount, vaultRent, vaultData); err != nil {
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	if reg.TotalMinted, err = smath.Add(reg.TotalMinted, 1); err != nil {
		return ErrOverflow
	}
	if err := storage.PutRegistry(ctx, inv.State, masterState, reg); err != nil {
		return fmt.Errorf("%w: %w", ErrStateUpdateFailed, err)
	}
	inv.Logf("minted %s to %s, total minted %d", asset.ToBase58(), owner.ToBase58(), reg.TotalMinted)
	return nil
}

// checkMintAuthority requires [mintAuthority] to be the delegate recorded in
// [reg], or the derived mint authority when none is recorded.
func (p *Program) checkMintAuthority(reg *storage.Registry, collection, mintAuthority codec.Address) error {
	var want codec.Address
	if reg.Delegation != nil {
		want = reg.Delegation.DelegateAuthority
	} else {
		derived, _, err := p.deriver.MintAuthority(collection)
		if err != nil {
			return err
		}
		want = derived
	}
	if mintAuthority != want {
		return fmt.Errorf("%w: %s", ErrInvalidCollectionAuthority, mintAuthority.ToBase58())
	}
	return nil
}

func (*Program) assetRent(inv *chain.Invocation, owner, collection codec.Address, col *metadata.Collection) (uint64, error) {
	data, err := (&metadata.Asset{
		Owner:      owner,
		Collection: collection,
		Name:       col.Name,
		URI:        col.URI,
	}).Marshal()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRentCalculation, err)
	}
	return inv.Rent(len(data)), nil
}
