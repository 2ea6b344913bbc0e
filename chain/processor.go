// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/storymint/cache"
	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/crypto/ed25519"
	"github.com/ava-labs/storymint/executor"
	"github.com/ava-labs/storymint/lockmap"
	"github.com/ava-labs/storymint/state"
	"github.com/ava-labs/storymint/storage"
	"github.com/ava-labs/storymint/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Processor executes signed transactions atomically against a database.
//
// Transactions lock every account they name for their whole execution:
// writable accounts exclusively, the rest shared. Transactions over
// disjoint accounts run in parallel.
type Processor struct {
	log    logging.Logger
	tracer trace.Tracer
	rules  Rules
	config Config

	db       *state.Database
	programs map[codec.Address]Program
	locks    *lockmap.Lockmap
	results  *cache.FIFO[string, *Result]

	metrics *Metrics
}

func New(
	log logging.Logger,
	tracer trace.Tracer,
	rules Rules,
	config Config,
	db database.Database,
) (*Processor, *prometheus.Registry, error) {
	results, err := cache.NewFIFO[string, *Result](config.ResultCacheSize)
	if err != nil {
		return nil, nil, err
	}
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	p := &Processor{
		log:      log,
		tracer:   tracer,
		rules:    rules,
		config:   config,
		db:       state.NewDatabase(db),
		programs: map[codec.Address]Program{},
		locks:    lockmap.New(1_024),
		results:  results,
		metrics:  metrics,
	}
	if err := p.Register(&SystemProgram{}); err != nil {
		return nil, nil, err
	}
	return p, registry, nil
}

// Register makes [prog] callable. It must be called before any transaction
// is executed.
func (p *Processor) Register(prog Program) error {
	if _, ok := p.programs[prog.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProgram, prog.ID().ToBase58())
	}
	p.programs[prog.ID()] = prog
	p.log.Info("registered program",
		zap.String("name", prog.Name()),
		zap.Stringer("id", prog.ID()),
	)
	return nil
}

func (p *Processor) Rules() Rules {
	return p.rules
}

func (p *Processor) verify(tx *Transaction) error {
	if err := tx.Verify(p.rules); err != nil {
		return err
	}
	for _, ix := range tx.Message.Instructions {
		if _, ok := p.programs[ix.ProgramID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownProgram, ix.ProgramID.ToBase58())
		}
	}
	return nil
}

// Execute runs [tx] and persists its effects. A transaction that cannot pay
// its fee, or fails verification, is rejected with an error and changes
// nothing. Otherwise the fee is kept and the returned [Result] reports
// whether the instructions succeeded.
func (p *Processor) Execute(ctx context.Context, tx *Transaction) (*Result, error) {
	return p.execute(ctx, tx, true)
}

// Simulate runs [tx] without persisting anything.
func (p *Processor) Simulate(ctx context.Context, tx *Transaction) (*Result, error) {
	return p.execute(ctx, tx, false)
}

func (p *Processor) execute(ctx context.Context, tx *Transaction, commit bool) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "Processor.Execute", oteltrace.WithAttributes(
		attribute.String("id", tx.ID()),
		attribute.Int("instructions", len(tx.Message.Instructions)),
		attribute.Bool("commit", commit),
	))
	defer span.End()

	start := time.Now()
	result, err := p.innerExecute(ctx, tx, commit)
	if err != nil {
		p.metrics.txsRejected.Inc()
		p.log.Debug("rejected transaction",
			zap.String("id", tx.ID()),
			zap.Error(err),
		)
		return nil, err
	}
	p.metrics.txExecute.Observe(float64(time.Since(start)))
	p.record(result)
	return result, nil
}

func (p *Processor) innerExecute(ctx context.Context, tx *Transaction, commit bool) (*Result, error) {
	if err := p.verify(tx); err != nil {
		return nil, err
	}
	if err := tx.VerifySignatures(); err != nil {
		return nil, err
	}

	stateKeys := tx.StateKeys()
	unlock := p.locks.LockKeys(stateKeys)
	defer unlock()

	if commit {
		// The fee payer is write locked so no copy of tx can land between
		// this check and the write below.
		exists, err := hasResult(p.db.Inner(), tx.ID())
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTransaction, tx.ID())
		}
	}

	scopeStorage, err := p.db.Fetch(stateKeys)
	if err != nil {
		return nil, err
	}
	ts := tstate.New(len(stateKeys))
	result, err := p.run(ctx, ts, tx, stateKeys, scopeStorage)
	if err != nil {
		return nil, err
	}
	if !commit {
		return result, nil
	}
	if err := p.write(ctx, ts, result); err != nil {
		return nil, err
	}
	return result, nil
}

// run charges the fee of [tx] and executes its instructions on a view of
// [ts]. Instruction failures are rolled back to the post-fee checkpoint.
func (p *Processor) run(
	ctx context.Context,
	ts *tstate.TState,
	tx *Transaction,
	stateKeys state.Keys,
	scopeStorage map[string][]byte,
) (*Result, error) {
	view := ts.NewView(stateKeys, scopeStorage)
	fee := Fee(p.rules, len(tx.Signatures))
	if _, err := storage.SubLamports(ctx, view, tx.Message.FeePayer, fee); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInsufficientFee, err)
	}
	checkpoint := view.OpIndex()

	result := &Result{ID: tx.ID(), Fee: fee}
	for i, ix := range tx.Message.Instructions {
		prog := p.programs[ix.ProgramID]
		id := ix.ProgramID.ToBase58()
		result.Logs = append(result.Logs, fmt.Sprintf("Program %s invoke [1]", id))
		if err := prog.Execute(ctx, NewInvocation(ix, view, p.rules, &result.Logs)); err != nil {
			p.metrics.instructions.WithLabelValues(prog.Name(), "failed").Inc()
			result.Logs = append(result.Logs, fmt.Sprintf("Program %s failed: %v", id, err))
			view.Rollback(ctx, checkpoint)
			result.Err = fmt.Errorf("instruction %d: %w", i, err)
			result.Error = result.Err.Error()
			break
		}
		p.metrics.instructions.WithLabelValues(prog.Name(), "success").Inc()
		result.Logs = append(result.Logs, fmt.Sprintf("Program %s success", id))
	}
	result.Success = result.Err == nil
	result.Changes = view.PendingChanges()
	view.Commit()
	return result, nil
}

func (p *Processor) write(ctx context.Context, ts *tstate.TState, results ...*Result) error {
	batch := p.db.Inner().NewBatch()
	changes, err := ts.WriteChanges(ctx, p.tracer, batch)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r == nil {
			continue
		}
		if err := putResult(batch, r); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	p.metrics.stateChanges.Add(float64(changes))
	for _, r := range results {
		if r != nil {
			p.results.Put(r.ID, r)
		}
	}
	return nil
}

func (p *Processor) record(r *Result) {
	if r.Success {
		p.metrics.txsExecuted.Inc()
	} else {
		p.metrics.txsFailed.Inc()
	}
	p.log.Debug("executed transaction",
		zap.String("id", r.ID),
		zap.Bool("success", r.Success),
		zap.Uint64("fee", r.Fee),
		zap.Int("changes", r.Changes),
		zap.String("error", r.Error),
	)
}

// ExecuteBatch runs [txs] with the parallelism their accounts allow and
// persists every effect in one database batch. Conflicting transactions run
// in the order given. The i-th result and error belong to the i-th
// transaction: exactly one of them is non-nil.
func (p *Processor) ExecuteBatch(ctx context.Context, txs []*Transaction) ([]*Result, []error, error) {
	ctx, span := p.tracer.Start(ctx, "Processor.ExecuteBatch", oteltrace.WithAttributes(
		attribute.Int("txs", len(txs)),
	))
	defer span.End()

	var (
		results = make([]*Result, len(txs))
		errs    = make([]error, len(txs))
		valid   = p.verifyBatch(txs, errs)
	)

	seen := make(map[string]struct{}, len(txs))
	allKeys := state.Keys{}
	txKeys := make([]state.Keys, len(txs))
	for _, i := range valid {
		id := txs[i].ID()
		if _, ok := seen[id]; ok {
			errs[i] = fmt.Errorf("%w: %s", ErrDuplicateTransaction, id)
			continue
		}
		seen[id] = struct{}{}
		txKeys[i] = txs[i].StateKeys()
		for k, perm := range txKeys[i] {
			allKeys.Add(k, perm)
		}
	}

	unlock := p.locks.LockKeys(allKeys)
	defer unlock()

	for _, i := range valid {
		if errs[i] != nil {
			continue
		}
		exists, err := hasResult(p.db.Inner(), txs[i].ID())
		if err != nil {
			return nil, nil, err
		}
		if exists {
			errs[i] = fmt.Errorf("%w: %s", ErrDuplicateTransaction, txs[i].ID())
		}
	}

	scopeStorage, err := p.db.Fetch(allKeys)
	if err != nil {
		return nil, nil, err
	}
	ts := tstate.New(len(allKeys))
	e := executor.New(len(txs), p.config.Concurrency, p.metrics.executorRecorder)
	for _, i := range valid {
		if errs[i] != nil {
			continue
		}
		i := i
		e.Run(txKeys[i], func() error {
			start := time.Now()
			results[i], errs[i] = p.run(ctx, ts, txs[i], txKeys[i], scopeStorage)
			p.metrics.txExecute.Observe(float64(time.Since(start)))
			return nil
		})
	}
	if err := e.Wait(); err != nil {
		return nil, nil, err
	}
	if err := p.write(ctx, ts, results...); err != nil {
		return nil, nil, err
	}
	for i := range txs {
		if errs[i] != nil {
			p.metrics.txsRejected.Inc()
			continue
		}
		p.record(results[i])
	}
	p.metrics.batchSize.Observe(float64(len(txs)))
	return results, errs, nil
}

// verifyBatch records a verification error for every invalid transaction of
// [txs] in [errs] and returns the indices of the rest. Signatures are
// verified together and only checked one transaction at a time if the
// batch fails.
func (p *Processor) verifyBatch(txs []*Transaction, errs []error) []int {
	var (
		valid = make([]int, 0, len(txs))
		batch = ed25519.NewBatch(len(txs))
	)
	for i, tx := range txs {
		if err := p.verify(tx); err != nil {
			errs[i] = err
			continue
		}
		digest, err := tx.Digest()
		if err != nil {
			errs[i] = err
			continue
		}
		for _, sig := range tx.Signatures {
			batch.Add(digest, sig.PubKey, sig.Signature)
		}
		valid = append(valid, i)
	}
	if batch.Len() == 0 || batch.Verify() {
		return valid
	}
	filtered := valid[:0]
	for _, i := range valid {
		if err := txs[i].VerifySignatures(); err != nil {
			errs[i] = err
			continue
		}
		filtered = append(filtered, i)
	}
	return filtered
}

// Airdrop credits [lamports] to [addr] outside of any transaction and
// returns the new balance.
func (p *Processor) Airdrop(ctx context.Context, addr codec.Address, lamports uint64) (uint64, error) {
	k := string(storage.AccountKey(addr))
	p.locks.Lock(k)
	defer p.locks.Unlock(k)

	bal, err := storage.AddLamports(ctx, p.db, addr, lamports)
	if err != nil {
		return 0, err
	}
	p.log.Info("airdropped lamports",
		zap.Stringer("address", addr),
		zap.Uint64("lamports", lamports),
		zap.Uint64("balance", bal),
	)
	return bal, nil
}

// GetAccount returns the committed account at [addr].
func (p *Processor) GetAccount(ctx context.Context, addr codec.Address) (*storage.Account, bool, error) {
	k := string(storage.AccountKey(addr))
	p.locks.RLock(k)
	defer p.locks.RUnlock(k)

	return storage.GetAccount(ctx, p.db, addr)
}

// ReadState returns a read-only view of committed state. Reads through it
// take no locks.
func (p *Processor) ReadState() state.Immutable {
	return p.db
}

// GetResult returns the result of the transaction with [id].
func (p *Processor) GetResult(id string) (*Result, bool, error) {
	if r, ok := p.results.Get(id); ok {
		return r, true, nil
	}
	return getResult(p.db.Inner(), id)
}
