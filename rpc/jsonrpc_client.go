// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/ava-labs/storymint/chain"
	"github.com/ava-labs/storymint/client"
	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/metadata"
	"github.com/ava-labs/storymint/program"
	"github.com/ava-labs/storymint/storage"

	avarpc "github.com/ava-labs/avalanchego/utils/rpc"
)

var errorNumber = regexp.MustCompile(`Error Number: (\d+)\.`)

var _ client.Executor = (*JSONRPCClient)(nil)

type JSONRPCClient struct {
	requester avarpc.EndpointRequester
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	return &JSONRPCClient{requester: avarpc.NewEndpointRequester(uri)}
}

func (cli *JSONRPCClient) send(ctx context.Context, method string, args any, reply any) error {
	return cli.requester.SendRequest(ctx, Name+"."+method, args, reply)
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.send(ctx, "ping", nil, resp)
	return resp.Success, err
}

func (cli *JSONRPCClient) transaction(ctx context.Context, method string, tx *chain.Transaction) (*chain.Result, error) {
	b, err := tx.Marshal()
	if err != nil {
		return nil, err
	}
	resp := new(TransactionReply)
	if err := cli.send(ctx, method, &TransactionArgs{Tx: b}, resp); err != nil {
		return nil, err
	}
	return toResult(resp), nil
}

func (cli *JSONRPCClient) Execute(ctx context.Context, tx *chain.Transaction) (*chain.Result, error) {
	return cli.transaction(ctx, "sendTransaction", tx)
}

func (cli *JSONRPCClient) Simulate(ctx context.Context, tx *chain.Transaction) (*chain.Result, error) {
	return cli.transaction(ctx, "simulateTransaction", tx)
}

func (cli *JSONRPCClient) GetTransaction(ctx context.Context, id string) (*chain.Result, error) {
	resp := new(TransactionReply)
	if err := cli.send(ctx, "getTransaction", &GetTransactionArgs{ID: id}, resp); err != nil {
		return nil, err
	}
	return toResult(resp), nil
}

func (cli *JSONRPCClient) GetAccount(ctx context.Context, addr codec.Address) (*storage.Account, bool, error) {
	resp := new(AccountReply)
	if err := cli.send(ctx, "getAccount", &AddressArgs{Address: addr.ToBase58()}, resp); err != nil {
		return nil, false, err
	}
	owner, err := codec.ParseAddress(resp.Owner)
	if err != nil {
		return nil, false, err
	}
	return &storage.Account{Lamports: resp.Lamports, Owner: owner, Data: resp.Data}, resp.Exists, nil
}

func (cli *JSONRPCClient) Balance(ctx context.Context, addr codec.Address) (uint64, error) {
	resp := new(BalanceReply)
	err := cli.send(ctx, "getBalance", &AddressArgs{Address: addr.ToBase58()}, resp)
	return resp.Lamports, err
}

func (cli *JSONRPCClient) Registry(ctx context.Context, collection codec.Address) (*RegistryReply, error) {
	resp := new(RegistryReply)
	err := cli.send(ctx, "getRegistry", &AddressArgs{Address: collection.ToBase58()}, resp)
	return resp, err
}

func (cli *JSONRPCClient) Vault(ctx context.Context, asset codec.Address) (*VaultReply, error) {
	resp := new(VaultReply)
	err := cli.send(ctx, "getVault", &AddressArgs{Address: asset.ToBase58()}, resp)
	return resp, err
}

func (cli *JSONRPCClient) Asset(ctx context.Context, asset codec.Address) (*AssetReply, error) {
	resp := new(AssetReply)
	err := cli.send(ctx, "getAsset", &AddressArgs{Address: asset.ToBase58()}, resp)
	return resp, err
}

func (cli *JSONRPCClient) Airdrop(ctx context.Context, addr codec.Address, lamports uint64) (uint64, error) {
	resp := new(BalanceReply)
	err := cli.send(ctx, "requestAirdrop", &AirdropArgs{Address: addr.ToBase58(), Lamports: lamports}, resp)
	return resp.Lamports, err
}

func toResult(r *TransactionReply) *chain.Result {
	res := &chain.Result{
		ID:      r.ID,
		Success: r.Success,
		Error:   r.Error,
		Logs:    r.Logs,
		Fee:     r.Fee,
		Changes: r.Changes,
	}
	if !r.Success {
		res.Err = decodeError(r.Error)
	}
	return res
}

// sentinels are the non-program errors a failure message may carry. They
// cross the wire as text and are matched by message.
var sentinels = []error{
	chain.ErrInsufficientFee,
	chain.ErrMissingRequiredSignature,
	chain.ErrAccountNotWritable,
	chain.ErrNotEnoughAccounts,
	chain.ErrInvalidInstructionData,
	chain.ErrUnsupportedInstruction,
	metadata.ErrNotApproved,
	metadata.ErrAssetAlreadyExists,
	metadata.ErrAssetNotFound,
	metadata.ErrCollectionNotFound,
	metadata.ErrCollectionMismatch,
	metadata.ErrImmutable,
	storage.ErrAccountAlreadyInUse,
	storage.ErrAccountNotFound,
	storage.ErrInsufficientLamports,
	storage.ErrInvalidOwner,
}

// decodeError restores the program error and any sentinel errors a failure
// message names so callers can match them with errors.Is.
func decodeError(msg string) error {
	var errs []error
	if m := errorNumber.FindStringSubmatch(msg); m != nil {
		if code, err := strconv.ParseUint(m[1], 10, 32); err == nil {
			if perr, ok := program.ErrorByCode(uint32(code)); ok {
				errs = append(errs, perr)
			}
		}
	}
	for _, sentinel := range sentinels {
		if strings.Contains(msg, sentinel.Error()) {
			errs = append(errs, sentinel)
		}
	}
	if len(errs) == 0 {
		return errors.New(msg)
	}
	return &remoteError{msg: msg, errs: errs}
}

// remoteError carries a failure message received over the wire.
type remoteError struct {
	msg  string
	errs []error
}

func (e *remoteError) Error() string { return e.msg }

func (e *remoteError) Unwrap() []error { return e.errs }
