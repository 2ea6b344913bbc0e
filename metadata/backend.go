// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metadata implements the asset program that owns the NFTs the
// storymint program mints. The storymint handlers only reach it through
// [Backend].
package metadata

import (
	"context"

	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/state"
)

//go:generate go run go.uber.org/mock/mockgen -package=metadata -destination=mock_backend.go . Backend

// Backend is the set of asset operations the storymint program invokes.
// Callers are responsible for checking that every authority passed in
// signed the transaction.
type Backend interface {
	ProgramID() codec.Address

	CreateCollection(ctx context.Context, mu state.Mutable, args *CreateCollectionArgs) error
	Create(ctx context.Context, mu state.Mutable, args *CreateArgs) error
	VerifyCollection(ctx context.Context, mu state.Mutable, asset, collection, authority codec.Address) error
	Update(ctx context.Context, mu state.Mutable, args *UpdateArgs) error
	Burn(ctx context.Context, mu state.Mutable, asset, collection, authority codec.Address) error
	Transfer(ctx context.Context, mu state.Mutable, asset, collection, authority, newOwner codec.Address) error

	Asset(ctx context.Context, im state.Immutable, asset codec.Address) (*Asset, error)
	Collection(ctx context.Context, im state.Immutable, collection codec.Address) (*Collection, error)
}

type CreateCollectionArgs struct {
	Payer           codec.Address
	Collection      codec.Address
	UpdateAuthority codec.Address
	UpdateDelegates []codec.Address
	Name            string
	URI             string
}

type CreateArgs struct {
	Payer      codec.Address
	Asset      codec.Address
	Collection codec.Address
	// Authority must be approved by the collection.
	Authority codec.Address
	Owner     codec.Address
	Name      string
	URI       string
}

// UpdateArgs leaves every nil field unchanged.
type UpdateArgs struct {
	Asset      codec.Address
	Collection codec.Address
	Authority  codec.Address
	Name       *string
	URI        *string
}
