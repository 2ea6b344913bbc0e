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
)

// Accounts: payer(w,s), master_state(w), mint_authority(w), collection(w,s),
// update_authority(w,s), system_program, mpl_core.
func (p *Program) initialize(ctx context.Context, inv *chain.Invocation, data []byte) error {
	if err := inv.Expect(initializeAccounts); err != nil {
		return err
	}
	var args CollectionArgs
	if err := codec.DecodeArgs(data, &args); err != nil {
		return fmt.Errorf("%w: %w", chain.ErrInvalidInstructionData, err)
	}
	var (
		payer           = inv.Account(0)
		masterState     = inv.Account(1)
		mintAuthority   = inv.Account(2)
		collection      = inv.Account(3)
		updateAuthority = inv.Account(4)
	)
	if err := p.checkPrograms(inv, 5, 6); err != nil {
		return err
	}
	for _, i := range []int{0, 3} {
		if err := inv.RequireSigner(i); err != nil {
			return err
		}
	}
	if err := p.expectPDA(masterState, func() (codec.Address, uint8, error) {
		return p.deriver.Registry(collection)
	}); err != nil {
		return err
	}
	if _, exists, err := storage.GetAccount(ctx, inv.State, masterState); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, masterState.ToBase58())
	}
	if !inv.IsSigner(4) || !equal(updateAuthority, p.config.UpdateAuthority) {
		return fmt.Errorf("%w: %s", ErrInvalidUpdateAuthority, updateAuthority.ToBase58())
	}
	delegate := p.deriver.MintAuthority
	if p.config.RecordDelegation {
		delegate = p.deriver.CollectionDelegate
	}
	if err := p.expectPDA(mintAuthority, func() (codec.Address, uint8, error) {
		return delegate(collection)
	}); err != nil {
		return err
	}
	if len(args.Name) == 0 || len(args.Name) > metadata.MaxNameLen || len(args.URI) == 0 || len(args.URI) > metadata.MaxURILen {
		return fmt.Errorf("%w: name is %d bytes and uri is %d bytes", ErrInvalidMetadataParams, len(args.Name), len(args.URI))
	}

	inv.Logf("Instruction: InitializeCollection")
	if err := p.backend.CreateCollection(ctx, inv.State, &metadata.CreateCollectionArgs{
		Payer:           payer,
		Collection:      collection,
		UpdateAuthority: updateAuthority,
		UpdateDelegates: []codec.Address{mintAuthority, p.config.ServerAuthority},
		Name:            args.Name,
		URI:             args.URI,
	}); err != nil {
		return err
	}

	reg := &storage.Registry{Collection: collection}
	if p.config.RecordDelegation {
		record, _, err := p.deriver.CollectionAuthority(collection, mintAuthority)
		if err != nil {
			return err
		}
		reg.Delegation = &storage.Delegation{
			DelegateAuthority:         mintAuthority,
			CollectionAuthorityRecord: record,
		}
	}
	regData, err := reg.Marshal()
	if err != nil {
		return err
	}
	if err := storage.CreateAccount(ctx, inv.State, payer, masterState, p.config.ProgramID, 0, inv.Rent(len(regData)), regData); err != nil {
		return err
	}
	inv.Logf("initialized collection %s", collection.ToBase58())
	return nil
}
