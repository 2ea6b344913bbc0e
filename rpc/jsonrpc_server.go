// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/storymint/chain"
	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/metadata"
	"github.com/ava-labs/storymint/pda"
	"github.com/ava-labs/storymint/storage"
)

// Node is the runtime served over JSON-RPC.
type Node interface {
	Logger() logging.Logger
	Tracer() trace.Tracer
	Deriver() pda.Deriver
	AirdropEnabled() bool

	Execute(ctx context.Context, tx *chain.Transaction) (*chain.Result, error)
	Simulate(ctx context.Context, tx *chain.Transaction) (*chain.Result, error)
	GetAccount(ctx context.Context, addr codec.Address) (*storage.Account, bool, error)
	GetResult(id string) (*chain.Result, bool, error)
	Airdrop(ctx context.Context, addr codec.Address, lamports uint64) (uint64, error)
}

type JSONRPCServer struct {
	node Node
}

func NewJSONRPCServer(node Node) *JSONRPCServer {
	return &JSONRPCServer{node}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.node.Logger().Info("ping")
	reply.Success = true
	return nil
}

type TransactionArgs struct {
	Tx []byte `json:"tx"`
}

type TransactionReply struct {
	ID      string   `json:"id"`
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Logs    []string `json:"logs"`
	Fee     uint64   `json:"fee"`
	Changes int      `json:"changes"`
}

func (r *TransactionReply) fill(res *chain.Result) {
	r.ID = res.ID
	r.Success = res.Success
	r.Error = res.Error
	r.Logs = res.Logs
	r.Fee = res.Fee
	r.Changes = res.Changes
}

func (j *JSONRPCServer) SendTransaction(req *http.Request, args *TransactionArgs, reply *TransactionReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.SendTransaction")
	defer span.End()

	tx, err := chain.UnmarshalTransaction(args.Tx)
	if err != nil {
		return fmt.Errorf("%w: unable to unmarshal on public service", err)
	}
	res, err := j.node.Execute(ctx, tx)
	if err != nil {
		return err
	}
	reply.fill(res)
	return nil
}

func (j *JSONRPCServer) SimulateTransaction(req *http.Request, args *TransactionArgs, reply *TransactionReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.SimulateTransaction")
	defer span.End()

	tx, err := chain.UnmarshalTransaction(args.Tx)
	if err != nil {
		return fmt.Errorf("%w: unable to unmarshal on public service", err)
	}
	res, err := j.node.Simulate(ctx, tx)
	if err != nil {
		return err
	}
	reply.fill(res)
	return nil
}

type GetTransactionArgs struct {
	ID string `json:"id"`
}

func (j *JSONRPCServer) GetTransaction(_ *http.Request, args *GetTransactionArgs, reply *TransactionReply) error {
	res, found, err := j.node.GetResult(args.ID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrTransactionMissing, args.ID)
	}
	reply.fill(res)
	return nil
}

type AddressArgs struct {
	Address string `json:"address"`
}

type AccountReply struct {
	Exists   bool   `json:"exists"`
	Lamports uint64 `json:"lamports"`
	Owner    string `json:"owner"`
	Data     []byte `json:"data"`
}

func (j *JSONRPCServer) account(ctx context.Context, address string) (*storage.Account, bool, error) {
	addr, err := codec.ParseAddress(address)
	if err != nil {
		return nil, false, err
	}
	return j.node.GetAccount(ctx, addr)
}

func (j *JSONRPCServer) GetAccount(req *http.Request, args *AddressArgs, reply *AccountReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.GetAccount")
	defer span.End()

	a, exists, err := j.account(ctx, args.Address)
	if err != nil {
		return err
	}
	reply.Exists = exists
	reply.Lamports = a.Lamports
	reply.Owner = a.Owner.ToBase58()
	reply.Data = a.Data
	return nil
}

type BalanceReply struct {
	Lamports uint64 `json:"lamports"`
}

func (j *JSONRPCServer) GetBalance(req *http.Request, args *AddressArgs, reply *BalanceReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.GetBalance")
	defer span.End()

	a, _, err := j.account(ctx, args.Address)
	if err != nil {
		return err
	}
	reply.Lamports = a.Lamports
	return nil
}

// record loads the program account at the address [derive] returns.
func (j *JSONRPCServer) record(
	ctx context.Context,
	address string,
	derive func(codec.Address) (codec.Address, uint8, error),
) (codec.Address, *storage.Account, error) {
	key, err := codec.ParseAddress(address)
	if err != nil {
		return codec.EmptyAddress, nil, err
	}
	addr, _, err := derive(key)
	if err != nil {
		return codec.EmptyAddress, nil, err
	}
	a, exists, err := j.node.GetAccount(ctx, addr)
	if err != nil {
		return codec.EmptyAddress, nil, err
	}
	if !exists {
		return codec.EmptyAddress, nil, fmt.Errorf("%w: %s", storage.ErrAccountNotFound, addr.ToBase58())
	}
	return addr, a, nil
}

type RegistryReply struct {
	Address                   string `json:"address"`
	Collection                string `json:"collection"`
	TotalMinted               uint64 `json:"totalMinted"`
	DelegateAuthority         string `json:"delegateAuthority,omitempty"`
	CollectionAuthorityRecord string `json:"collectionAuthorityRecord,omitempty"`
}

// GetRegistry takes the address of a collection.
func (j *JSONRPCServer) GetRegistry(req *http.Request, args *AddressArgs, reply *RegistryReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.GetRegistry")
	defer span.End()

	addr, a, err := j.record(ctx, args.Address, j.node.Deriver().Registry)
	if err != nil {
		return err
	}
	reg, err := storage.UnmarshalRegistry(a.Data)
	if err != nil {
		return err
	}
	reply.Address = addr.ToBase58()
	reply.Collection = reg.Collection.ToBase58()
	reply.TotalMinted = reg.TotalMinted
	if reg.Delegation != nil {
		reply.DelegateAuthority = reg.Delegation.DelegateAuthority.ToBase58()
		reply.CollectionAuthorityRecord = reg.Delegation.CollectionAuthorityRecord.ToBase58()
	}
	return nil
}

type VaultReply struct {
	Address      string `json:"address"`
	Asset        string `json:"asset"`
	LockedAmount uint64 `json:"lockedAmount"`
	Lamports     uint64 `json:"lamports"`
}

// GetVault takes the address of an asset.
func (j *JSONRPCServer) GetVault(req *http.Request, args *AddressArgs, reply *VaultReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.GetVault")
	defer span.End()

	addr, a, err := j.record(ctx, args.Address, j.node.Deriver().Vault)
	if err != nil {
		return err
	}
	v, err := storage.UnmarshalVault(a.Data)
	if err != nil {
		return err
	}
	reply.Address = addr.ToBase58()
	reply.Asset = v.Asset.ToBase58()
	reply.LockedAmount = v.LockedAmount
	reply.Lamports = a.Lamports
	return nil
}

type AssetReply struct {
	Owner      string `json:"owner"`
	Collection string `json:"collection"`
	Name       string `json:"name"`
	URI        string `json:"uri"`
	Verified   bool   `json:"verified"`
}

func (j *JSONRPCServer) GetAsset(req *http.Request, args *AddressArgs, reply *AssetReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.GetAsset")
	defer span.End()

	a, exists, err := j.account(ctx, args.Address)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", metadata.ErrAssetNotFound, args.Address)
	}
	asset, err := metadata.UnmarshalAsset(a.Data)
	if err != nil {
		return err
	}
	reply.Owner = asset.Owner.ToBase58()
	reply.Collection = asset.Collection.ToBase58()
	reply.Name = asset.Name
	reply.URI = asset.URI
	reply.Verified = asset.Verified
	return nil
}

type AirdropArgs struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
}

func (j *JSONRPCServer) RequestAirdrop(req *http.Request, args *AirdropArgs, reply *BalanceReply) error {
	if !j.node.AirdropEnabled() {
		return ErrAirdropDisabled
	}
	if args.Lamports > MaxAirdrop {
		return fmt.Errorf("%w: %d > %d", ErrAirdropTooLarge, args.Lamports, MaxAirdrop)
	}
	addr, err := codec.ParseAddress(args.Address)
	if err != nil {
		return err
	}
	bal, err := j.node.Airdrop(req.Context(), addr, args.Lamports)
	if err != nil {
		return err
	}
	j.node.Logger().Info("airdrop served",
		zap.String("address", args.Address),
		zap.Uint64("lamports", args.Lamports),
	)
	reply.Lamports = bal
	return nil
}
