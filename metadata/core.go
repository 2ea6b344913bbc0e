// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metadata

import (
	"context"
	"fmt"

	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/state"
	"github.com/ava-labs/storymint/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// ProgramID is the address the asset program is deployed at.
var ProgramID = codec.MustParseAddress("CoREENxT6tW1HoK8ypY1SxRMZTcVPm7R94rH4PZNhX7d")

// Rent prices account creation.
type Rent interface {
	Rent(dataLen int) uint64
}

var _ Backend = (*Core)(nil)

// Core keeps assets and collections as accounts owned by its program ID.
type Core struct {
	id   codec.Address
	rent Rent
}

func NewCore(id codec.Address, rent Rent) *Core {
	return &Core{id: id, rent: rent}
}

func (c *Core) ProgramID() codec.Address {
	return c.id
}

func checkStrings(name, uri string) error {
	if len(name) > MaxNameLen {
		return fmt.Errorf("%w: %d > %d", ErrNameTooLong, len(name), MaxNameLen)
	}
	if len(uri) > MaxURILen {
		return fmt.Errorf("%w: %d > %d", ErrURITooLong, len(uri), MaxURILen)
	}
	return nil
}

func (c *Core) create(ctx context.Context, mu state.Mutable, payer, addr codec.Address, data []byte) error {
	return storage.CreateAccount(ctx, mu, payer, addr, c.id, 0, c.rent.Rent(len(data)), data)
}

func (c *Core) CreateCollection(ctx context.Context, mu state.Mutable, args *CreateCollectionArgs) error {
	if err := checkStrings(args.Name, args.URI); err != nil {
		return err
	}
	col := &Collection{
		UpdateAuthority: args.UpdateAuthority,
		Name:            args.Name,
		URI:             args.URI,
		UpdateDelegates: args.UpdateDelegates,
	}
	data, err := col.Marshal()
	if err != nil {
		return err
	}
	return c.create(ctx, mu, args.Payer, args.Collection, data)
}

func (c *Core) Create(ctx context.Context, mu state.Mutable, args *CreateArgs) error {
	if err := checkStrings(args.Name, args.URI); err != nil {
		return err
	}
	col, err := c.Collection(ctx, mu, args.Collection)
	if err != nil {
		return err
	}
	if !col.Approves(args.Authority) {
		return ErrNotApproved
	}
	if _, exists, err := storage.GetAccount(ctx, mu, args.Asset); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("%w: %s", ErrAssetAlreadyExists, args.Asset.ToBase58())
	}
	// Membership is not verified until [VerifyCollection].
	asset := &Asset{
		Owner:      args.Owner,
		Collection: args.Collection,
		Name:       args.Name,
		URI:        args.URI,
		Mutable:    true,
	}
	data, err := asset.Marshal()
	if err != nil {
		return err
	}
	if err := c.create(ctx, mu, args.Payer, args.Asset, data); err != nil {
		return err
	}
	if col.NumMinted, err = smath.Add(col.NumMinted, 1); err != nil {
		return ErrCollectionSizeLimit
	}
	if col.CurrentSize, err = smath.Add(col.CurrentSize, 1); err != nil {
		return ErrCollectionSizeLimit
	}
	return c.putCollection(ctx, mu, args.Collection, col)
}

func (c *Core) VerifyCollection(ctx context.Context, mu state.Mutable, addr, collection, authority codec.Address) error {
	asset, col, err := c.member(ctx, mu, addr, collection)
	if err != nil {
		return err
	}
	if !col.Approves(authority) {
		return ErrNotApproved
	}
	asset.Verified = true
	return c.putAsset(ctx, mu, addr, asset)
}

func (c *Core) Update(ctx context.Context, mu state.Mutable, args *UpdateArgs) error {
	asset, col, err := c.member(ctx, mu, args.Asset, args.Collection)
	if err != nil {
		return err
	}
	if !col.Approves(args.Authority) {
		return ErrNotApproved
	}
	if !asset.Mutable {
		return ErrImmutable
	}
	if args.Name != nil {
		asset.Name = *args.Name
	}
	if args.URI != nil {
		asset.URI = *args.URI
	}
	if err := checkStrings(asset.Name, asset.URI); err != nil {
		return err
	}
	return c.putAsset(ctx, mu, args.Asset, asset)
}

func (c *Core) Burn(ctx context.Context, mu state.Mutable, addr, collection, authority codec.Address) error {
	asset, col, err := c.member(ctx, mu, addr, collection)
	if err != nil {
		return err
	}
	if asset.Owner != authority {
		return ErrNotApproved
	}
	if _, err := storage.CloseAccount(ctx, mu, addr, authority); err != nil {
		return err
	}
	if col.CurrentSize > 0 {
		col.CurrentSize--
	}
	return c.putCollection(ctx, mu, collection, col)
}

func (c *Core) Transfer(ctx context.Context, mu state.Mutable, addr, collection, authority, newOwner codec.Address) error {
	asset, _, err := c.member(ctx, mu, addr, collection)
	if err != nil {
		return err
	}
	if asset.Owner != authority {
		return ErrNotApproved
	}
	asset.Owner = newOwner
	return c.putAsset(ctx, mu, addr, asset)
}

func (c *Core) Asset(ctx context.Context, im state.Immutable, addr codec.Address) (*Asset, error) {
	a, err := storage.GetOwnedAccount(ctx, im, addr, c.id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetNotFound, err)
	}
	return UnmarshalAsset(a.Data)
}

func (c *Core) Collection(ctx context.Context, im state.Immutable, addr codec.Address) (*Collection, error) {
	a, err := storage.GetOwnedAccount(ctx, im, addr, c.id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCollectionNotFound, err)
	}
	return UnmarshalCollection(a.Data)
}

// member loads [addr] and its collection, which must be [collection].
func (c *Core) member(ctx context.Context, im state.Immutable, addr, collection codec.Address) (*Asset, *Collection, error) {
	asset, err := c.Asset(ctx, im, addr)
	if err != nil {
		return nil, nil, err
	}
	if asset.Collection != collection {
		return nil, nil, fmt.Errorf("%w: %s", ErrCollectionMismatch, collection.ToBase58())
	}
	col, err := c.Collection(ctx, im, collection)
	if err != nil {
		return nil, nil, err
	}
	return asset, col, nil
}

func (*Core) putAsset(ctx context.Context, mu state.Mutable, addr codec.Address, a *Asset) error {
	data, err := a.Marshal()
	if err != nil {
		return err
	}
	return storage.SetData(ctx, mu, addr, data)
}

func (*Core) putCollection(ctx context.Context, mu state.Mutable, addr codec.Address, col *Collection) error {
	data, err := col.Marshal()
	if err != nil {
		return err
	}
	return storage.SetData(ctx, mu, addr, data)
}
