// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/storymint/executor"
)

type executorMetrics struct {
	blocked    prometheus.Counter
	executable prometheus.Counter
}

func (em *executorMetrics) RecordBlocked() {
	em.blocked.Inc()
}

func (em *executorMetrics) RecordExecutable() {
	em.executable.Inc()
}

type Metrics struct {
	txsExecuted        prometheus.Counter
	txsFailed          prometheus.Counter
	txsRejected        prometheus.Counter
	stateChanges       prometheus.Counter
	executorBlocked    prometheus.Counter
	executorExecutable prometheus.Counter
	instructions       *prometheus.CounterVec

	txExecute metric.Averager
	batchSize metric.Averager

	executorRecorder executor.Metrics
}

func newMetrics() (*prometheus.Registry, *Metrics, error) {
	r := prometheus.NewRegistry()

	txExecute, err := metric.NewAverager(
		"chain_tx_execute",
		"time spent executing a transaction",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	batchSize, err := metric.NewAverager(
		"chain_batch_size",
		"number of transactions executed per batch",
		r,
	)
	if err != nil {
		return nil, nil, err
	}

	m := &Metrics{
		txsExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_executed",
			Help:      "number of transactions whose instructions all succeeded",
		}),
		txsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_failed",
			Help:      "number of transactions that paid fees but whose instructions failed",
		}),
		txsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_rejected",
			Help:      "number of transactions rejected before execution",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_changes",
			Help:      "number of state keys written to disk",
		}),
		executorBlocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "executor_blocked",
			Help:      "number of batch transactions that waited on a conflict",
		}),
		executorExecutable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "executor_executable",
			Help:      "number of batch transactions that ran without waiting",
		}),
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "instructions",
			Help:      "number of instructions executed per program",
		}, []string{"program", "status"}),
		txExecute: txExecute,
		batchSize: batchSize,
	}
	m.executorRecorder = &executorMetrics{blocked: m.executorBlocked, executable: m.executorExecutable}

	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsExecuted),
		r.Register(m.txsFailed),
		r.Register(m.txsRejected),
		r.Register(m.stateChanges),
		r.Register(m.executorBlocked),
		r.Register(m.executorExecutable),
		r.Register(m.instructions),
	)
	return r, m, errs.Err
}
