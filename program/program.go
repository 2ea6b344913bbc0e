// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"

	"github.com/ava-labs/storymint/chain"
	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/metadata"
	"github.com/ava-labs/storymint/pda"
	"github.com/ava-labs/storymint/storage"
)

var _ chain.Program = (*Program)(nil)

type handler func(ctx context.Context, inv *chain.Invocation, args []byte) error

// Program escrows [Config.LockAmount] lamports in a vault for every asset
// it mints and releases them to the asset's owner when it is burned.
type Program struct {
	config   Config
	backend  metadata.Backend
	deriver  pda.Deriver
	handlers map[string]handler
}

func New(config Config, backend metadata.Backend) (*Program, error) {
	if err := config.Verify(); err != nil {
		return nil, err
	}
	p := &Program{
		config:  config,
		backend: backend,
		deriver: pda.New(config.ProgramID),
	}
	p.handlers = map[string]handler{
		InitializeCollection: p.initialize,
		MintAsset:            p.mint,
		UpdateMetadata:       p.update,
		BurnAndWithdraw:      p.burn,
	}
	return p, nil
}

func (p *Program) ID() codec.Address {
	return p.config.ProgramID
}

func (*Program) Name() string {
	return Name
}

func (p *Program) Config() Config {
	return p.config
}

func (p *Program) Deriver() pda.Deriver {
	return p.deriver
}

func (p *Program) Execute(ctx context.Context, inv *chain.Invocation) error {
	tag, args, err := codec.SplitInstruction(inv.Data)
	if err != nil {
		return fmt.Errorf("%w: %w", chain.ErrInvalidInstructionData, err)
	}
	name, ok := Discriminators[tag]
	if !ok {
		return fmt.Errorf("%w: %x", chain.ErrUnsupportedInstruction, tag[:])
	}
	return p.handlers[name](ctx, inv, args)
}

// checkPrograms verifies the system and asset program accounts.
func (p *Program) checkPrograms(inv *chain.Invocation, system, core int) error {
	if inv.Account(system) != common.SystemProgramID {
		return fmt.Errorf("%w: system program %s", ErrInvalidProgramID, inv.Account(system).ToBase58())
	}
	if inv.Account(core) != p.backend.ProgramID() {
		return fmt.Errorf("%w: %s", ErrInvalidMplCoreProgram, inv.Account(core).ToBase58())
	}
	return nil
}

func (p *Program) expectPDA(got codec.Address, derive func() (codec.Address, uint8, error)) error {
	want, _, err := derive()
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: expected %s but got %s", ErrInvalidPdaDerivation, want.ToBase58(), got.ToBase58())
	}
	return nil
}

// registry loads the registry of [collection] from [addr], mapping a missing
// account to [ErrAccountNotFound].
func (p *Program) registry(ctx context.Context, inv *chain.Invocation, addr, collection codec.Address) (*storage.Registry, error) {
	reg, err := storage.GetRegistry(ctx, inv.State, addr, p.config.ProgramID)
	if errors.Is(err, storage.ErrAccountNotFound) {
		return nil, fmt.Errorf("%w: registry %s", ErrAccountNotFound, addr.ToBase58())
	}
	if err != nil {
		return nil, err
	}
	if reg.Collection != collection {
		return nil, fmt.Errorf("%w: registry is for %s", ErrInvalidCollection, reg.Collection.ToBase58())
	}
	return reg, nil
}

func equal(a, b codec.Address) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
