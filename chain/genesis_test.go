// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"testing"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/require"
)

func TestApplyGenesis(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	h := newHarness(t)
	a, b := types.NewAccount().PublicKey, types.NewAccount().PublicKey
	g := &Genesis{Allocations: []*Allocation{
		{Address: a.ToBase58(), Lamports: 10},
		{Address: b.ToBase58(), Lamports: 20},
		{Address: a.ToBase58(), Lamports: 5},
	}}

	applied, err := h.p.ApplyGenesis(ctx, g)
	require.NoError(err)
	require.True(applied)
	require.Equal(uint64(15), h.balance(t, a))
	require.Equal(uint64(20), h.balance(t, b))

	applied, err = h.p.ApplyGenesis(ctx, g)
	require.NoError(err)
	require.False(applied)
	require.Equal(uint64(15), h.balance(t, a))
}

func TestApplyGenesisInvalidAddress(t *testing.T) {
	require := require.New(t)

	h := newHarness(t)
	_, err := h.p.ApplyGenesis(context.Background(), &Genesis{Allocations: []*Allocation{
		{Address: "not base58!", Lamports: 1},
	}})
	require.Error(err)
}
