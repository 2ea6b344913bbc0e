// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"fmt"

	solclient "github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"

	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/storage"
)

// Remote submits storymint instructions to a Solana cluster where the
// program is deployed. Transactions there are confirmed asynchronously, so
// only the signature is returned.
type Remote struct {
	rpc     *solclient.Client
	builder *Builder
}

// NewRemote connects to [endpoint]. An empty [endpoint] targets devnet.
func NewRemote(endpoint string, builder *Builder) *Remote {
	if endpoint == "" {
		endpoint = rpc.DevnetRPCEndpoint
	}
	return &Remote{rpc: solclient.NewClient(endpoint), builder: builder}
}

func (r *Remote) Builder() *Builder {
	return r.builder
}

// Send signs [ixs] with [payer] and [signers] against the latest blockhash
// and returns the transaction signature.
func (r *Remote) Send(ctx context.Context, payer types.Account, ixs []types.Instruction, signers ...types.Account) (string, error) {
	latest, err := r.rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return "", fmt.Errorf("latest blockhash: %w", err)
	}
	tx, err := types.NewTransaction(types.NewTransactionParam{
		Signers: append([]types.Account{payer}, signersOf(payer, signers...)...),
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        payer.PublicKey,
			RecentBlockhash: latest.Blockhash,
			Instructions:    ixs,
		}),
	})
	if err != nil {
		return "", err
	}
	return r.rpc.SendTransaction(ctx, tx)
}

// GetAccount reads [addr] from the cluster. A missing account is reported
// with [exists] false.
func (r *Remote) GetAccount(ctx context.Context, addr codec.Address) (*storage.Account, bool, error) {
	info, err := r.rpc.GetAccountInfo(ctx, addr.ToBase58())
	if err != nil {
		return nil, false, err
	}
	if info.Owner == codec.EmptyAddress {
		return &storage.Account{}, false, nil
	}
	return &storage.Account{
		Lamports: info.Lamports,
		Owner:    info.Owner,
		Data:     info.Data,
	}, true, nil
}

func (r *Remote) Registry(ctx context.Context, collection codec.Address) (*storage.Registry, error) {
	addr, _, err := r.builder.deriver.Registry(collection)
	if err != nil {
		return nil, err
	}
	a, exists, err := r.GetAccount(ctx, addr)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, addr.ToBase58())
	}
	return storage.UnmarshalRegistry(a.Data)
}
