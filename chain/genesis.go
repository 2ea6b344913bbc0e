// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/ava-labs/storymint/codec"
)

type Allocation struct {
	Address  string `yaml:"address" json:"address"`
	Lamports uint64 `yaml:"lamports" json:"lamports"`
}

type Genesis struct {
	Allocations []*Allocation `yaml:"allocations" json:"allocations"`
}

// ApplyGenesis credits every allocation of [g] the first time it is called
// on a database. It returns false if genesis was already applied.
func (p *Processor) ApplyGenesis(ctx context.Context, g *Genesis) (bool, error) {
	db := p.db.Inner()
	applied, err := db.Has(genesisKey)
	if err != nil {
		return false, err
	}
	if applied {
		return false, nil
	}
	for _, alloc := range g.Allocations {
		addr, err := codec.ParseAddress(alloc.Address)
		if err != nil {
			return false, fmt.Errorf("%w: genesis allocation %s", err, alloc.Address)
		}
		if _, err := p.Airdrop(ctx, addr, alloc.Lamports); err != nil {
			return false, err
		}
	}
	return true, db.Put(genesisKey, nil)
}
