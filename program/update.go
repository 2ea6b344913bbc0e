// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"context"
	"fmt"

	"github.com/ava-labs/storymint/chain"
	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/metadata"
)

// Accounts: asset(w), collection(w), authority(w,s), payer(w,s),
// system_program, mpl_core. Passing the program ID as the collection
// leaves it unset.
func (p *Program) update(ctx context.Context, inv *chain.Invocation, data []byte) error {
	if err := inv.Expect(updateAccounts); err != nil {
		return err
	}
	var args UpdateMetadataArgs
	if err := codec.DecodeArgs(data, &args); err != nil {
		return fmt.Errorf("%w: %w", chain.ErrInvalidInstructionData, err)
	}
	var (
		asset      = inv.Account(0)
		collection = inv.Account(1)
		authority  = inv.Account(2)
	)
	if err := p.checkPrograms(inv, 4, 5); err != nil {
		return err
	}
	if !inv.IsSigner(2) || !equal(authority, p.config.ServerAuthority) {
		return fmt.Errorf("%w: %s", ErrUnauthorizedMetadataUpdate, authority.ToBase58())
	}
	if err := inv.RequireSigner(3); err != nil {
		return err
	}
	if len(args.URI) == 0 || len(args.URI) > metadata.MaxURILen {
		return fmt.Errorf("%w: uri is %d bytes", ErrInvalidMetadataParams, len(args.URI))
	}
	if args.Name != nil && (len(*args.Name) == 0 || len(*args.Name) > metadata.MaxNameLen) {
		return fmt.Errorf("%w: name is %d bytes", ErrInvalidMetadataParams, len(*args.Name))
	}
	if collection == p.config.ProgramID {
		collection = codec.EmptyAddress
	}

	inv.Logf("Instruction: UpdateMetadata")
	return p.backend.Update(ctx, inv.State, &metadata.UpdateArgs{
		Asset:      asset,
		Collection: collection,
		Authority:  authority,
		Name:       args.Name,
		URI:        &args.URI,
	})
}
