// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/storymint/chain"
	"github.com/ava-labs/storymint/client"
	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/metadata"
	"github.com/ava-labs/storymint/program"
	"github.com/ava-labs/storymint/storage"
)

const (
	airdrop        = 100_000_000_000
	collectionName = "Stories"
	collectionURI  = "https://example.com/stories.json"
)

type env struct {
	proc    *chain.Processor
	cli     *client.Client
	builder *client.Builder
	cfg     program.Config

	server          types.Account
	updateAuthority types.Account
	payer           types.Account
}

func newEnv(t *testing.T, modify func(*program.Config)) *env {
	require := require.New(t)

	proc, _, err := chain.New(logging.NoLog{}, trace.Noop, chain.NewDefaultRules(), chain.NewDefaultConfig(), memdb.New())
	require.NoError(err)
	core := metadata.NewCore(metadata.ProgramID, proc.Rules())
	require.NoError(proc.Register(core))

	e := &env{
		proc:            proc,
		server:          types.NewAccount(),
		updateAuthority: types.NewAccount(),
	}
	e.cfg = program.NewDefaultConfig()
	e.cfg.ServerAuthority = e.server.PublicKey
	e.cfg.UpdateAuthority = e.updateAuthority.PublicKey
	if modify != nil {
		modify(&e.cfg)
	}
	prog, err := program.New(e.cfg, core)
	require.NoError(err)
	require.NoError(proc.Register(prog))

	e.builder = client.NewBuilder(e.cfg.ProgramID, metadata.ProgramID, e.cfg.RecordDelegation)
	e.cli = client.New(proc, e.builder)
	e.payer = e.fund(t)
	return e
}

func (e *env) fund(t *testing.T) types.Account {
	acct := types.NewAccount()
	_, err := e.proc.Airdrop(context.Background(), acct.PublicKey, airdrop)
	require.NoError(t, err)
	return acct
}

func (e *env) fee(signatures int) uint64 {
	return chain.Fee(e.proc.Rules(), signatures)
}

func (e *env) balance(t *testing.T, addr codec.Address) uint64 {
	bal, err := e.cli.Balance(context.Background(), addr)
	require.NoError(t, err)
	return bal
}

func (e *env) exists(t *testing.T, addr codec.Address) bool {
	_, exists, err := e.proc.GetAccount(context.Background(), addr)
	require.NoError(t, err)
	return exists
}

func (e *env) initialize(t *testing.T) codec.Address {
	collection := types.NewAccount()
	_, err := e.cli.InitializeCollection(context.Background(), e.payer, collection, e.updateAuthority, collectionName, collectionURI)
	require.NoError(t, err)
	return collection.PublicKey
}

func (e *env) mint(t *testing.T, collection, owner codec.Address) codec.Address {
	asset, _, err := e.cli.MintAsset(context.Background(), e.payer, collection, owner)
	require.NoError(t, err)
	return asset
}

func (e *env) totalMinted(t *testing.T, collection codec.Address) uint64 {
	reg, err := e.cli.Registry(context.Background(), collection)
	require.NoError(t, err)
	return reg.TotalMinted
}

func logs(r *chain.Result) string {
	return strings.Join(r.Logs, "\n")
}

func TestInitialize(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t, nil)

	collection := types.NewAccount()
	result, err := e.cli.InitializeCollection(ctx, e.payer, collection, e.updateAuthority, collectionName, collectionURI)
	require.NoError(err)
	require.Contains(logs(result), "Program log: Instruction: InitializeCollection")

	reg, err := e.cli.Registry(ctx, collection.PublicKey)
	require.NoError(err)
	require.Equal(collection.PublicKey, reg.Collection)
	require.Zero(reg.TotalMinted)
	require.Nil(reg.Delegation)

	addr, _, err := e.builder.Deriver().Registry(collection.PublicKey)
	require.NoError(err)
	a, exists, err := e.proc.GetAccount(ctx, addr)
	require.NoError(err)
	require.True(exists)
	require.Len(a.Data, storage.RegistrySize)
	require.Equal(48, storage.RegistrySize)
	require.Equal(e.cfg.ProgramID, a.Owner)

	col, err := e.cli.Collection(ctx, collection.PublicKey)
	require.NoError(err)
	require.Equal(collectionName, col.Name)
	require.Equal(e.updateAuthority.PublicKey, col.UpdateAuthority)
	mintAuthority, _, err := e.builder.Deriver().MintAuthority(collection.PublicKey)
	require.NoError(err)
	require.True(col.Approves(mintAuthority))
	require.True(col.Approves(e.server.PublicKey))

	result, err = e.cli.InitializeCollection(ctx, e.payer, collection, e.updateAuthority, collectionName, collectionURI)
	require.ErrorIs(err, client.ErrTransactionFailed)
	require.ErrorIs(err, program.ErrAlreadyInitialized)
	require.Contains(logs(result), "Error Code: AlreadyInitialized. Error Number: 6019.")
}

func TestInitializeChecks(t *testing.T) {
	tests := []struct {
		name      string
		authority func(*env) types.Account
		colName   string
		uri       string
		err       error
	}{
		{
			name:      "stranger as update authority",
			authority: func(*env) types.Account { return types.NewAccount() },
			colName:   collectionName,
			uri:       collectionURI,
			err:       program.ErrInvalidUpdateAuthority,
		},
		{
			name:      "server as update authority",
			authority: func(e *env) types.Account { return e.server },
			colName:   collectionName,
			uri:       collectionURI,
			err:       program.ErrInvalidUpdateAuthority,
		},
		{
			name:      "long name",
			authority: func(e *env) types.Account { return e.updateAuthority },
			colName:   strings.Repeat("n", metadata.MaxNameLen+1),
			uri:       collectionURI,
			err:       program.ErrInvalidMetadataParams,
		},
		{
			name:      "empty uri",
			authority: func(e *env) types.Account { return e.updateAuthority },
			colName:   collectionName,
			err:       program.ErrInvalidMetadataParams,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			e := newEnv(t, nil)

			collection := types.NewAccount()
			_, err := e.cli.InitializeCollection(ctx, e.payer, collection, tt.authority(e), tt.colName, tt.uri)
			require.ErrorIs(err, tt.err)
			require.False(e.exists(t, collection.PublicKey))
		})
	}
}

func TestInitializeRecordDelegation(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t, func(c *program.Config) { c.RecordDelegation = true })

	collection := e.initialize(t)
	reg, err := e.cli.Registry(ctx, collection)
	require.NoError(err)
	require.NotNil(reg.Delegation)

	delegate, _, err := e.builder.Deriver().CollectionDelegate(collection)
	require.NoError(err)
	record, _, err := e.builder.Deriver().CollectionAuthority(collection, delegate)
	require.NoError(err)
	require.Equal(delegate, reg.Delegation.DelegateAuthority)
	require.Equal(record, reg.Delegation.CollectionAuthorityRecord)

	addr, _, err := e.builder.Deriver().Registry(collection)
	require.NoError(err)
	a, _, err := e.proc.GetAccount(ctx, addr)
	require.NoError(err)
	require.Len(a.Data, storage.DelegatedRegistrySize)
	require.Equal(112, storage.DelegatedRegistrySize)

	owner := types.NewAccount().PublicKey
	asset := e.mint(t, collection, owner)
	require.Equal(uint64(1), e.totalMinted(t, collection))
	got, err := e.cli.Asset(ctx, asset)
	require.NoError(err)
	require.True(got.Verified)
}

func TestMintAndBurn(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t, nil)
	collection := e.initialize(t)

	owner := e.fund(t)
	asset, result, err := e.cli.MintAsset(ctx, e.payer, collection, owner.PublicKey)
	require.NoError(err)
	require.Contains(logs(result), "Program log: Instruction: MintAsset")
	require.Equal(uint64(1), e.totalMinted(t, collection))

	got, err := e.cli.Asset(ctx, asset)
	require.NoError(err)
	require.Equal(owner.PublicKey, got.Owner)
	require.Equal(collection, got.Collection)
	require.Equal(collectionName, got.Name)
	require.Equal(collectionURI, got.URI)
	require.True(got.Verified)

	vault, lamports, err := e.cli.Vault(ctx, asset)
	require.NoError(err)
	require.Equal(asset, vault.Asset)
	require.Equal(e.cfg.LockAmount, vault.LockedAmount)
	require.Equal(e.cfg.LockAmount, lamports)

	before := e.balance(t, owner.PublicKey)
	result, err = e.cli.BurnAndWithdraw(ctx, owner, asset, collection)
	require.NoError(err)
	require.Contains(logs(result), "Program log: Instruction: BurnAndWithdraw")

	after := e.balance(t, owner.PublicKey)
	gained := after - before
	require.Equal(e.cfg.LockAmount-e.fee(1), gained)
	require.Greater(gained, e.cfg.LockAmount*99/100)
	require.Less(gained, e.cfg.LockAmount)

	vaultAddr, _, err := e.builder.Deriver().Vault(asset)
	require.NoError(err)
	require.False(e.exists(t, vaultAddr))
	require.False(e.exists(t, asset))
	// Burns never lower the mint count.
	require.Equal(uint64(1), e.totalMinted(t, collection))

	col, err := e.cli.Collection(ctx, collection)
	require.NoError(err)
	require.Equal(uint32(1), col.NumMinted)
	require.Zero(col.CurrentSize)

	// The second burn finds no vault and releases nothing.
	_, err = e.cli.BurnAndWithdraw(ctx, owner, asset, collection)
	require.ErrorIs(err, program.ErrAccountNotFound)
	require.Equal(after-e.fee(1), e.balance(t, owner.PublicKey))
}

func TestBurnReleasesToppedUpVault(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t, nil)
	collection := e.initialize(t)

	owner := e.fund(t)
	asset := e.mint(t, collection, owner.PublicKey)
	vault, _, err := e.builder.Deriver().Vault(asset)
	require.NoError(err)

	// Anyone may send lamports to the vault; the lock must stay withdrawable.
	stranger := e.fund(t)
	_, err = e.cli.Send(ctx, stranger, []types.Instruction{system.Transfer(system.TransferParam{
		From:   stranger.PublicKey,
		To:     vault,
		Amount: 1,
	})})
	require.NoError(err)
	_, err = e.proc.Airdrop(ctx, vault, 2)
	require.NoError(err)
	require.Equal(e.cfg.LockAmount+3, e.balance(t, vault))

	before := e.balance(t, owner.PublicKey)
	_, err = e.cli.BurnAndWithdraw(ctx, owner, asset, collection)
	require.NoError(err)
	gained := e.balance(t, owner.PublicKey) - before
	require.Equal(e.cfg.LockAmount+3-e.fee(1), gained)
	require.False(e.exists(t, vault))
}

func TestMintCountsAcrossBurns(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t, nil)
	collection := e.initialize(t)

	owner := e.fund(t)
	var assets []codec.Address
	for i := 0; i < 3; i++ {
		assets = append(assets, e.mint(t, collection, owner.PublicKey))
	}
	_, err := e.cli.BurnAndWithdraw(ctx, owner, assets[1], collection)
	require.NoError(err)
	for i := 0; i < 2; i++ {
		e.mint(t, collection, owner.PublicKey)
	}
	require.Equal(uint64(5), e.totalMinted(t, collection))
}

func TestMintInsufficientFunds(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t, nil)
	collection := e.initialize(t)

	poor := types.NewAccount()
	_, err := e.proc.Airdrop(ctx, poor.PublicKey, e.cfg.LockAmount/2)
	require.NoError(err)

	asset, result, err := e.cli.MintAsset(ctx, poor, collection, poor.PublicKey)
	require.ErrorIs(err, program.ErrInsufficientFunds)
	require.False(result.Success)
	require.Equal(e.cfg.LockAmount/2-e.fee(2), e.balance(t, poor.PublicKey))
	require.False(e.exists(t, asset))
	require.Zero(e.totalMinted(t, collection))
}

func TestMaxSupply(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t, func(c *program.Config) { c.MaxSupply = 2 })
	collection := e.initialize(t)

	owner := e.fund(t)
	first := e.mint(t, collection, owner.PublicKey)
	e.mint(t, collection, owner.PublicKey)

	_, result, err := e.cli.MintAsset(ctx, e.payer, collection, owner.PublicKey)
	require.ErrorIs(err, program.ErrMaxSupplyReached)
	require.Contains(logs(result), "Error Code: MaxSupplyReached")

	// Burning frees no supply.
	_, err = e.cli.BurnAndWithdraw(ctx, owner, first, collection)
	require.NoError(err)
	_, _, err = e.cli.MintAsset(ctx, e.payer, collection, owner.PublicKey)
	require.ErrorIs(err, program.ErrMaxSupplyReached)
	require.Equal(uint64(2), e.totalMinted(t, collection))
}

func TestMintChecks(t *testing.T) {
	stranger := types.NewAccount().PublicKey
	tests := []struct {
		name   string
		modify func(ix *types.Instruction)
		err    error
	}{
		{
			name:   "wrong system program",
			modify: func(ix *types.Instruction) { ix.Accounts[7].PubKey = stranger },
			err:    program.ErrInvalidProgramID,
		},
		{
			name:   "wrong core program",
			modify: func(ix *types.Instruction) { ix.Accounts[8].PubKey = stranger },
			err:    program.ErrInvalidMplCoreProgram,
		},
		{
			name:   "wrong mint authority",
			modify: func(ix *types.Instruction) { ix.Accounts[5].PubKey = stranger },
			err:    program.ErrInvalidCollectionAuthority,
		},
		{
			name:   "wrong vault",
			modify: func(ix *types.Instruction) { ix.Accounts[1].PubKey = stranger },
			err:    program.ErrInvalidPdaDerivation,
		},
		{
			name:   "wrong registry",
			modify: func(ix *types.Instruction) { ix.Accounts[3].PubKey = stranger },
			err:    program.ErrInvalidPdaDerivation,
		},
		{
			name:   "too few accounts",
			modify: func(ix *types.Instruction) { ix.Accounts = ix.Accounts[:8] },
			err:    chain.ErrNotEnoughAccounts,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			e := newEnv(t, nil)
			collection := e.initialize(t)

			asset := types.NewAccount()
			ix, err := e.builder.MintAsset(e.payer.PublicKey, collection, asset.PublicKey, e.payer.PublicKey)
			require.NoError(err)
			tt.modify(&ix)
			_, err = e.cli.Send(ctx, e.payer, []types.Instruction{ix}, asset)
			require.ErrorIs(err, tt.err)
			require.False(e.exists(t, asset.PublicKey))
			require.Zero(e.totalMinted(t, collection))
		})
	}

	t.Run("uninitialized collection", func(t *testing.T) {
		e := newEnv(t, nil)
		_, _, err := e.cli.MintAsset(context.Background(), e.payer, types.NewAccount().PublicKey, e.payer.PublicKey)
		require.ErrorIs(t, err, program.ErrAccountNotFound)
	})

	t.Run("legacy discriminator", func(t *testing.T) {
		require := require.New(t)
		e := newEnv(t, nil)
		collection := e.initialize(t)

		asset := types.NewAccount()
		ix, err := e.builder.MintAsset(e.payer.PublicKey, collection, asset.PublicKey, e.payer.PublicKey)
		require.NoError(err)
		d := codec.InstructionDiscriminator(program.MintPNFT)
		ix.Data = d[:]
		_, err = e.cli.Send(context.Background(), e.payer, []types.Instruction{ix}, asset)
		require.NoError(err)
		require.Equal(uint64(1), e.totalMinted(t, collection))
	})
}

func TestFailedInstructionLeavesNoPartialState(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t, nil)
	collection := e.initialize(t)

	first, second := types.NewAccount(), types.NewAccount()
	ok, err := e.builder.MintAsset(e.payer.PublicKey, collection, first.PublicKey, e.payer.PublicKey)
	require.NoError(err)
	bad, err := e.builder.MintAsset(e.payer.PublicKey, collection, second.PublicKey, e.payer.PublicKey)
	require.NoError(err)
	bad.Accounts[5].PubKey = types.NewAccount().PublicKey

	before := e.balance(t, e.payer.PublicKey)
	result, err := e.cli.Send(ctx, e.payer, []types.Instruction{ok, bad}, first, second)
	require.ErrorIs(err, program.ErrInvalidCollectionAuthority)
	require.Contains(result.Error, "instruction 1")

	require.False(e.exists(t, first.PublicKey))
	vault, _, err := e.builder.Deriver().Vault(first.PublicKey)
	require.NoError(err)
	require.False(e.exists(t, vault))
	require.Zero(e.totalMinted(t, collection))
	require.Equal(before-e.fee(3), e.balance(t, e.payer.PublicKey))
}

func TestUpdateMetadata(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t, nil)
	collection := e.initialize(t)
	asset := e.mint(t, collection, e.payer.PublicKey)

	name := "Chapter Two"
	uri := "https://example.com/2.json"
	_, err := e.cli.UpdateMetadata(ctx, e.server, e.payer, asset, collection, &name, uri)
	require.NoError(err)
	got, err := e.cli.Asset(ctx, asset)
	require.NoError(err)
	require.Equal(name, got.Name)
	require.Equal(uri, got.URI)
	require.True(got.Verified)
	require.Equal(e.payer.PublicKey, got.Owner)

	// Without a name only the uri changes.
	uri = "https://example.com/3.json"
	_, err = e.cli.UpdateMetadata(ctx, e.server, e.payer, asset, collection, nil, uri)
	require.NoError(err)
	got, err = e.cli.Asset(ctx, asset)
	require.NoError(err)
	require.Equal(name, got.Name)
	require.Equal(uri, got.URI)

	vault, lamports, err := e.cli.Vault(ctx, asset)
	require.NoError(err)
	require.Equal(e.cfg.LockAmount, vault.LockedAmount)
	require.Equal(e.cfg.LockAmount, lamports)
	require.Equal(uint64(1), e.totalMinted(t, collection))

	for _, authority := range []types.Account{e.updateAuthority, e.payer, types.NewAccount()} {
		_, err = e.cli.UpdateMetadata(ctx, authority, e.payer, asset, collection, &name, "https://example.com/4.json")
		require.ErrorIs(err, program.ErrUnauthorizedMetadataUpdate)
	}

	// An asset in a collection cannot be updated as if it had none.
	_, err = e.cli.UpdateMetadata(ctx, e.server, e.payer, asset, e.cfg.ProgramID, nil, "https://example.com/5.json")
	require.ErrorIs(err, metadata.ErrCollectionMismatch)

	got, err = e.cli.Asset(ctx, asset)
	require.NoError(err)
	require.Equal(uri, got.URI)
}

func TestBurnAfterTransfer(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t, nil)
	collection := e.initialize(t)

	alice, bob := e.fund(t), e.fund(t)
	asset := e.mint(t, collection, alice.PublicKey)

	_, err := e.cli.Transfer(ctx, alice, asset, collection, bob.PublicKey)
	require.NoError(err)
	got, err := e.cli.Asset(ctx, asset)
	require.NoError(err)
	require.Equal(bob.PublicKey, got.Owner)

	// Only the current owner may burn.
	for _, acct := range []types.Account{alice, e.payer, e.updateAuthority, e.server} {
		if acct.PublicKey != e.payer.PublicKey {
			_, err := e.proc.Airdrop(ctx, acct.PublicKey, airdrop)
			require.NoError(err)
		}
		_, err = e.cli.BurnAndWithdraw(ctx, acct, asset, collection)
		require.ErrorIs(err, metadata.ErrNotApproved)
	}
	_, lamports, err := e.cli.Vault(ctx, asset)
	require.NoError(err)
	require.Equal(e.cfg.LockAmount, lamports)

	before := e.balance(t, bob.PublicKey)
	_, err = e.cli.BurnAndWithdraw(ctx, bob, asset, collection)
	require.NoError(err)
	require.Equal(before+e.cfg.LockAmount-e.fee(1), e.balance(t, bob.PublicKey))
}

func TestConcurrentMints(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t, nil)
	collection := e.initialize(t)

	const minters = 16
	payers := make([]types.Account, minters)
	for i := range payers {
		payers[i] = e.fund(t)
	}
	assets := make([]codec.Address, minters)
	g, gctx := errgroup.WithContext(ctx)
	for i := range payers {
		i := i
		g.Go(func() error {
			asset, _, err := e.cli.MintAsset(gctx, payers[i], collection, payers[i].PublicKey)
			assets[i] = asset
			return err
		})
	}
	require.NoError(g.Wait())
	require.Equal(uint64(minters), e.totalMinted(t, collection))

	for i, asset := range assets {
		_, lamports, err := e.cli.Vault(ctx, asset)
		require.NoError(err)
		require.Equal(e.cfg.LockAmount, lamports)
		got, err := e.cli.Asset(ctx, asset)
		require.NoError(err)
		require.Equal(payers[i].PublicKey, got.Owner)
	}
}

func TestExecuteBatchMints(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t, nil)
	collection := e.initialize(t)

	const count = 8
	txs := make([]*chain.Transaction, 0, count)
	for i := 0; i < count; i++ {
		payer := e.fund(t)
		asset := types.NewAccount()
		ix, err := e.builder.MintAsset(payer.PublicKey, collection, asset.PublicKey, payer.PublicKey)
		require.NoError(err)
		tx, err := e.cli.Transaction(payer, []types.Instruction{ix}, asset)
		require.NoError(err)
		txs = append(txs, tx)
	}
	results, errs, err := e.proc.ExecuteBatch(ctx, txs)
	require.NoError(err)
	for i := range txs {
		require.NoError(errs[i])
		require.True(results[i].Success, results[i].Error)
	}
	require.Equal(uint64(count), e.totalMinted(t, collection))
}

func TestBuilderAccounts(t *testing.T) {
	require := require.New(t)
	b := client.NewDefaultBuilder()

	var (
		payer      = types.NewAccount().PublicKey
		collection = types.NewAccount().PublicKey
		asset      = types.NewAccount().PublicKey
	)
	ix, err := b.MintAsset(payer, collection, asset, payer)
	require.NoError(err)
	require.Equal(program.ID, ix.ProgramID)
	require.Len(ix.Accounts, 9)
	d := codec.InstructionDiscriminator(program.MintAsset)
	require.Equal(d[:], ix.Data)
	require.Equal(common.SystemProgramID, ix.Accounts[7].PubKey)
	require.Equal(metadata.ProgramID, ix.Accounts[8].PubKey)
	require.True(ix.Accounts[2].IsSigner)
	require.False(ix.Accounts[6].IsSigner)
}
