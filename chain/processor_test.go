// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/storage"
)

const airdrop = 10_000_000_000

var errCounterFailed = errors.New("counter asked to fail")

// counterProgram bumps a counter stored in its first account and fails
// after doing so when the instruction data is [1].
type counterProgram struct {
	id codec.Address
}

func (c *counterProgram) ID() codec.Address { return c.id }

func (*counterProgram) Name() string { return "counter" }

func (c *counterProgram) Execute(ctx context.Context, inv *Invocation) error {
	if err := inv.Expect(1); err != nil {
		return err
	}
	a, _, err := storage.GetAccount(ctx, inv.State, inv.Account(0))
	if err != nil {
		return err
	}
	if len(a.Data) == 0 {
		a.Data = []byte{0}
	}
	a.Owner = c.id
	a.Data[0]++
	if err := storage.SetAccount(ctx, inv.State, inv.Account(0), a); err != nil {
		return err
	}
	inv.Logf("count %d", a.Data[0])
	if len(inv.Data) > 0 && inv.Data[0] == 1 {
		return errCounterFailed
	}
	return nil
}

type harness struct {
	p       *Processor
	counter *counterProgram
}

func newHarness(t *testing.T) *harness {
	require := require.New(t)

	p, _, err := New(logging.NoLog{}, trace.Noop, NewDefaultRules(), NewDefaultConfig(), memdb.New())
	require.NoError(err)
	counter := &counterProgram{id: types.NewAccount().PublicKey}
	require.NoError(p.Register(counter))
	return &harness{p: p, counter: counter}
}

func (h *harness) fund(t *testing.T) types.Account {
	acct := types.NewAccount()
	_, err := h.p.Airdrop(context.Background(), acct.PublicKey, airdrop)
	require.NoError(t, err)
	return acct
}

func (h *harness) balance(t *testing.T, addr codec.Address) uint64 {
	a, _, err := h.p.GetAccount(context.Background(), addr)
	require.NoError(t, err)
	return a.Lamports
}

func (h *harness) count(target codec.Address, fail bool) types.Instruction {
	data := []byte{0}
	if fail {
		data[0] = 1
	}
	return types.Instruction{
		ProgramID: h.counter.id,
		Accounts: []types.AccountMeta{
			{PubKey: target, IsWritable: true},
		},
		Data: data,
	}
}

func signed(t *testing.T, payer types.Account, nonce uint64, ixs []types.Instruction, signers ...types.Account) *Transaction {
	tx := NewTransaction(payer.PublicKey, nonce, ixs...)
	require.NoError(t, tx.Sign(append([]types.Account{payer}, signers...)...))
	return tx
}

func TestTransfer(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	h := newHarness(t)

	from := h.fund(t)
	to := types.NewAccount()
	tx := signed(t, from, 0, []types.Instruction{
		system.Transfer(system.TransferParam{
			From:   from.PublicKey,
			To:     to.PublicKey,
			Amount: 1_000,
		}),
	})
	result, err := h.p.Execute(ctx, tx)
	require.NoError(err)
	require.True(result.Success)
	require.Equal(uint64(5_000), result.Fee)
	require.Equal(uint64(airdrop-1_000-5_000), h.balance(t, from.PublicKey))
	require.Equal(uint64(1_000), h.balance(t, to.PublicKey))

	stored, ok, err := h.p.GetResult(tx.ID())
	require.NoError(err)
	require.True(ok)
	require.Equal(result.ID, stored.ID)

	_, err = h.p.Execute(ctx, tx)
	require.ErrorIs(err, ErrDuplicateTransaction)
	require.Equal(uint64(1_000), h.balance(t, to.PublicKey))
}

func TestRejected(t *testing.T) {
	h := newHarness(t)
	payer := h.fund(t)
	other := types.NewAccount()
	target := types.NewAccount().PublicKey

	tests := []struct {
		name  string
		tx    func() *Transaction
		err   error
		payer codec.Address
	}{
		{
			name:  "no instructions",
			tx:    func() *Transaction { return signed(t, payer, 0, nil) },
			err:   ErrNoInstructions,
			payer: payer.PublicKey,
		},
		{
			name: "unsigned fee payer",
			tx: func() *Transaction {
				return NewTransaction(payer.PublicKey, 0, h.count(target, false))
			},
			err:   ErrMissingSignature,
			payer: payer.PublicKey,
		},
		{
			name: "signer flag without signature",
			tx: func() *Transaction {
				ix := h.count(target, false)
				ix.Accounts = append(ix.Accounts, types.AccountMeta{PubKey: other.PublicKey, IsSigner: true})
				return signed(t, payer, 0, []types.Instruction{ix})
			},
			err:   ErrMissingSignature,
			payer: payer.PublicKey,
		},
		{
			name: "signature from non signer",
			tx: func() *Transaction {
				return signed(t, payer, 0, []types.Instruction{h.count(target, false)}, other)
			},
			err:   ErrUnexpectedSignature,
			payer: payer.PublicKey,
		},
		{
			name: "duplicate signature",
			tx: func() *Transaction {
				return signed(t, payer, 0, []types.Instruction{h.count(target, false)}, payer)
			},
			err:   ErrDuplicateSignature,
			payer: payer.PublicKey,
		},
		{
			name: "tampered message",
			tx: func() *Transaction {
				tx := signed(t, payer, 0, []types.Instruction{h.count(target, false)})
				return &Transaction{
					Message:    Message{FeePayer: tx.Message.FeePayer, Nonce: 1, Instructions: tx.Message.Instructions},
					Signatures: tx.Signatures,
				}
			},
			err:   ErrInvalidSignature,
			payer: payer.PublicKey,
		},
		{
			name: "unknown program",
			tx: func() *Transaction {
				ix := h.count(target, false)
				ix.ProgramID = types.NewAccount().PublicKey
				return signed(t, payer, 0, []types.Instruction{ix})
			},
			err:   ErrUnknownProgram,
			payer: payer.PublicKey,
		},
		{
			name: "fee payer cannot pay",
			tx: func() *Transaction {
				return signed(t, other, 0, []types.Instruction{h.count(target, false)})
			},
			err:   ErrInsufficientFee,
			payer: other.PublicKey,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			before := h.balance(t, tt.payer)
			_, err := h.p.Execute(context.Background(), tt.tx())
			require.ErrorIs(err, tt.err)
			require.Equal(before, h.balance(t, tt.payer))
			_, exists, err := h.p.GetAccount(context.Background(), target)
			require.NoError(err)
			require.False(exists)
		})
	}
}

func TestFailedInstructionRollsBack(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	h := newHarness(t)

	payer := h.fund(t)
	target := types.NewAccount().PublicKey
	result, err := h.p.Execute(ctx, signed(t, payer, 0, []types.Instruction{
		h.count(target, false),
		h.count(target, true),
	}))
	require.NoError(err)
	require.False(result.Success)
	require.ErrorIs(result.Err, errCounterFailed)
	require.Contains(result.Logs, "Program log: count 2")
	require.True(strings.HasPrefix(result.Logs[len(result.Logs)-1], "Program "+h.counter.id.ToBase58()+" failed:"))

	// The fee is kept but neither increment landed.
	require.Equal(uint64(airdrop-5_000), h.balance(t, payer.PublicKey))
	_, exists, err := h.p.GetAccount(ctx, target)
	require.NoError(err)
	require.False(exists)

	result, err = h.p.Execute(ctx, signed(t, payer, 1, []types.Instruction{
		h.count(target, false),
		h.count(target, false),
	}))
	require.NoError(err)
	require.True(result.Success)
	a, exists, err := h.p.GetAccount(ctx, target)
	require.NoError(err)
	require.True(exists)
	require.Equal([]byte{2}, a.Data)
}

func TestSimulate(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	h := newHarness(t)

	payer := h.fund(t)
	target := types.NewAccount().PublicKey
	tx := signed(t, payer, 0, []types.Instruction{h.count(target, false)})
	result, err := h.p.Simulate(ctx, tx)
	require.NoError(err)
	require.True(result.Success)
	require.Equal(uint64(airdrop), h.balance(t, payer.PublicKey))

	_, ok, err := h.p.GetResult(tx.ID())
	require.NoError(err)
	require.False(ok)

	// A simulated transaction can still be executed.
	result, err = h.p.Execute(ctx, tx)
	require.NoError(err)
	require.True(result.Success)
}

func TestExecuteBatch(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	h := newHarness(t)

	const n = 24
	target := types.NewAccount().PublicKey
	txs := make([]*Transaction, 0, n+2)
	for i := 0; i < n; i++ {
		payer := h.fund(t)
		txs = append(txs, signed(t, payer, 0, []types.Instruction{h.count(target, false)}))
	}
	broke := types.NewAccount()
	txs = append(txs,
		signed(t, broke, 0, []types.Instruction{h.count(target, false)}),
		txs[0],
	)

	results, errs, err := h.p.ExecuteBatch(ctx, txs)
	require.NoError(err)
	for i := 0; i < n; i++ {
		require.NoError(errs[i])
		require.True(results[i].Success)
	}
	require.ErrorIs(errs[n], ErrInsufficientFee)
	require.Nil(results[n])
	require.ErrorIs(errs[n+1], ErrDuplicateTransaction)

	a, _, err := h.p.GetAccount(ctx, target)
	require.NoError(err)
	require.Equal([]byte{n}, a.Data)
}

func TestMetricsRegistered(t *testing.T) {
	require := require.New(t)

	_, reg, err := New(logging.NoLog{}, trace.Noop, NewDefaultRules(), NewDefaultConfig(), memdb.New())
	require.NoError(err)
	families, err := reg.Gather()
	require.NoError(err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, name := range []string{
		"chain_tx_execute_count",
		"chain_tx_execute_sum",
		"chain_batch_size_count",
		"chain_batch_size_sum",
		"chain_txs_executed",
	} {
		require.True(names[name], name)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	h := newHarness(t)
	require.ErrorIs(t, h.p.Register(h.counter), ErrDuplicateProgram)
}

func TestTransactionMarshal(t *testing.T) {
	require := require.New(t)

	payer := types.NewAccount()
	tx := signed(t, payer, 7, []types.Instruction{
		system.Transfer(system.TransferParam{
			From:   payer.PublicKey,
			To:     types.NewAccount().PublicKey,
			Amount: 42,
		}),
	})
	b, err := tx.Marshal()
	require.NoError(err)
	parsed, err := UnmarshalTransaction(b)
	require.NoError(err)
	require.Equal(tx.ID(), parsed.ID())
	require.NoError(parsed.VerifySignatures())

	_, err = UnmarshalTransaction([]byte{1, 2, 3})
	require.ErrorIs(err, ErrInvalidTransaction)
}
