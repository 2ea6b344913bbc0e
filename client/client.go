// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"fmt"
	"time"

	"github.com/blocto/solana-go-sdk/types"
	"go.uber.org/atomic"

	"github.com/ava-labs/storymint/chain"
	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/metadata"
	"github.com/ava-labs/storymint/storage"
)

// Executor runs transactions. It is implemented by [chain.Processor] and by
// the JSON-RPC client of a node.
type Executor interface {
	Execute(ctx context.Context, tx *chain.Transaction) (*chain.Result, error)
	Simulate(ctx context.Context, tx *chain.Transaction) (*chain.Result, error)
	GetAccount(ctx context.Context, addr codec.Address) (*storage.Account, bool, error)
}

var _ Executor = (*chain.Processor)(nil)

// Client drives the protocol against an [Executor].
type Client struct {
	exec    Executor
	builder *Builder
	nonce   atomic.Uint64
}

func New(exec Executor, builder *Builder) *Client {
	c := &Client{exec: exec, builder: builder}
	// Transactions signed by separate clients must not collide.
	c.nonce.Store(uint64(time.Now().UnixNano()))
	return c
}

func (c *Client) Builder() *Builder {
	return c.builder
}

// Transaction returns [ixs] signed by [payer] and [signers].
func (c *Client) Transaction(payer types.Account, ixs []types.Instruction, signers ...types.Account) (*chain.Transaction, error) {
	tx := chain.NewTransaction(payer.PublicKey, c.nonce.Inc(), ixs...)
	if err := tx.Sign(append([]types.Account{payer}, signers...)...); err != nil {
		return nil, err
	}
	return tx, nil
}

// Send executes [ixs]. If the transaction pays its fee but an instruction
// fails, the result is returned alongside an [ErrTransactionFailed] error.
func (c *Client) Send(ctx context.Context, payer types.Account, ixs []types.Instruction, signers ...types.Account) (*chain.Result, error) {
	tx, err := c.Transaction(payer, ixs, signers...)
	if err != nil {
		return nil, err
	}
	result, err := c.exec.Execute(ctx, tx)
	if err != nil {
		return nil, err
	}
	return result, checkResult(result)
}

// Simulate runs [ixs] without committing them.
func (c *Client) Simulate(ctx context.Context, payer types.Account, ixs []types.Instruction, signers ...types.Account) (*chain.Result, error) {
	tx, err := c.Transaction(payer, ixs, signers...)
	if err != nil {
		return nil, err
	}
	result, err := c.exec.Simulate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return result, checkResult(result)
}

func checkResult(r *chain.Result) error {
	if r.Success {
		return nil
	}
	if r.Err != nil {
		return fmt.Errorf("%w: %w", ErrTransactionFailed, r.Err)
	}
	return fmt.Errorf("%w: %s", ErrTransactionFailed, r.Error)
}

// InitializeCollection creates [collection] and its registry. [payer],
// [collection] and [updateAuthority] sign.
func (c *Client) InitializeCollection(
	ctx context.Context,
	payer types.Account,
	collection types.Account,
	updateAuthority types.Account,
	name string,
	uri string,
) (*chain.Result, error) {
	ix, err := c.builder.InitializeCollection(payer.PublicKey, collection.PublicKey, updateAuthority.PublicKey, name, uri)
	if err != nil {
		return nil, err
	}
	return c.Send(ctx, payer, []types.Instruction{ix}, signersOf(payer, collection, updateAuthority)...)
}

// MintAsset mints a fresh asset of [collection] to [owner] and returns its
// address.
func (c *Client) MintAsset(ctx context.Context, payer types.Account, collection, owner codec.Address) (codec.Address, *chain.Result, error) {
	asset := types.NewAccount()
	ix, err := c.builder.MintAsset(payer.PublicKey, collection, asset.PublicKey, owner)
	if err != nil {
		return codec.EmptyAddress, nil, err
	}
	result, err := c.Send(ctx, payer, []types.Instruction{ix}, asset)
	return asset.PublicKey, result, err
}

func (c *Client) UpdateMetadata(
	ctx context.Context,
	authority types.Account,
	payer types.Account,
	asset codec.Address,
	collection codec.Address,
	name *string,
	uri string,
) (*chain.Result, error) {
	ix, err := c.builder.UpdateMetadata(asset, collection, authority.PublicKey, payer.PublicKey, name, uri)
	if err != nil {
		return nil, err
	}
	return c.Send(ctx, payer, []types.Instruction{ix}, signersOf(payer, authority)...)
}

func (c *Client) BurnAndWithdraw(ctx context.Context, owner types.Account, asset, collection codec.Address) (*chain.Result, error) {
	ix, err := c.builder.BurnAndWithdraw(owner.PublicKey, asset, collection)
	if err != nil {
		return nil, err
	}
	return c.Send(ctx, owner, []types.Instruction{ix})
}

func (c *Client) Transfer(ctx context.Context, owner types.Account, asset, collection, newOwner codec.Address) (*chain.Result, error) {
	return c.Send(ctx, owner, []types.Instruction{c.builder.Transfer(asset, collection, owner.PublicKey, newOwner)})
}

func (c *Client) account(ctx context.Context, addr codec.Address) (*storage.Account, error) {
	a, exists, err := c.exec.GetAccount(ctx, addr)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, addr.ToBase58())
	}
	return a, nil
}

func (c *Client) Registry(ctx context.Context, collection codec.Address) (*storage.Registry, error) {
	addr, _, err := c.builder.deriver.Registry(collection)
	if err != nil {
		return nil, err
	}
	a, err := c.account(ctx, addr)
	if err != nil {
		return nil, err
	}
	return storage.UnmarshalRegistry(a.Data)
}

// Vault returns the vault of [asset] and the lamports it holds.
func (c *Client) Vault(ctx context.Context, asset codec.Address) (*storage.Vault, uint64, error) {
	addr, _, err := c.builder.deriver.Vault(asset)
	if err != nil {
		return nil, 0, err
	}
	a, err := c.account(ctx, addr)
	if err != nil {
		return nil, 0, err
	}
	v, err := storage.UnmarshalVault(a.Data)
	if err != nil {
		return nil, 0, err
	}
	return v, a.Lamports, nil
}

func (c *Client) Asset(ctx context.Context, asset codec.Address) (*metadata.Asset, error) {
	a, err := c.account(ctx, asset)
	if err != nil {
		return nil, err
	}
	return metadata.UnmarshalAsset(a.Data)
}

func (c *Client) Collection(ctx context.Context, collection codec.Address) (*metadata.Collection, error) {
	a, err := c.account(ctx, collection)
	if err != nil {
		return nil, err
	}
	return metadata.UnmarshalCollection(a.Data)
}

func (c *Client) Balance(ctx context.Context, addr codec.Address) (uint64, error) {
	a, _, err := c.exec.GetAccount(ctx, addr)
	if err != nil {
		return 0, err
	}
	return a.Lamports, nil
}

// signersOf drops [payer] from [accounts], deduplicating the rest.
func signersOf(payer types.Account, accounts ...types.Account) []types.Account {
	seen := map[codec.Address]struct{}{payer.PublicKey: {}}
	out := make([]types.Account, 0, len(accounts))
	for _, a := range accounts {
		if _, ok := seen[a.PublicKey]; ok {
			continue
		}
		seen[a.PublicKey] = struct{}{}
		out = append(out, a)
	}
	return out
}
