// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package node assembles the local runtime: the account database, the
// transaction processor, and the asset and storymint programs.
package node

import (
	"context"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/storymint/chain"
	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/config"
	"github.com/ava-labs/storymint/metadata"
	"github.com/ava-labs/storymint/pda"
	"github.com/ava-labs/storymint/program"
	"github.com/ava-labs/storymint/rpc"
	"github.com/ava-labs/storymint/storage"

	smtrace "github.com/ava-labs/storymint/trace"
)

const (
	accountsNamespace = "accounts"
	chainNamespace    = "chain"
)

var _ rpc.Node = (*Node)(nil)

type Node struct {
	*chain.Processor

	log      logging.Logger
	tracer   trace.Tracer
	db       database.Database
	metrics  metrics.MultiGatherer
	core     *metadata.Core
	program  *program.Program
	airdrops bool
}

func New(ctx context.Context, log logging.Logger, cfg *config.Config) (*Node, error) {
	progCfg, err := cfg.ProgramConfig()
	if err != nil {
		return nil, err
	}
	coreID, err := cfg.CoreID()
	if err != nil {
		return nil, err
	}
	tracer, err := smtrace.New(&cfg.Trace)
	if err != nil {
		return nil, err
	}

	gatherer := metrics.NewPrefixGatherer()
	db, err := storage.New(cfg.Pebble, cfg.DataDir, accountsNamespace, gatherer)
	if err != nil {
		_ = tracer.Close()
		return nil, err
	}
	n := &Node{
		log:      log,
		tracer:   tracer,
		db:       db,
		metrics:  gatherer,
		airdrops: cfg.Airdrop,
	}
	if err := n.init(ctx, cfg, progCfg, coreID); err != nil {
		_ = n.Close()
		return nil, err
	}
	return n, nil
}

func (n *Node) init(ctx context.Context, cfg *config.Config, progCfg program.Config, coreID codec.Address) error {
	proc, registry, err := chain.New(n.log, n.tracer, &cfg.Rules, cfg.Chain, n.db)
	if err != nil {
		return err
	}
	if err := n.metrics.Register(chainNamespace, registry); err != nil {
		return err
	}
	n.Processor = proc
	n.core = metadata.NewCore(coreID, proc.Rules())
	if err := proc.Register(n.core); err != nil {
		return err
	}
	if n.program, err = program.New(progCfg, n.core); err != nil {
		return err
	}
	if err := proc.Register(n.program); err != nil {
		return err
	}

	applied, err := proc.ApplyGenesis(ctx, &cfg.Genesis)
	if err != nil {
		return err
	}
	n.log.Info("node initialized",
		zap.Stringer("program", progCfg.ProgramID),
		zap.Stringer("core", coreID),
		zap.Stringer("serverAuthority", progCfg.ServerAuthority),
		zap.Uint64("lockAmount", progCfg.LockAmount),
		zap.Uint64("maxSupply", progCfg.MaxSupply),
		zap.Bool("recordDelegation", progCfg.RecordDelegation),
		zap.Bool("genesisApplied", applied),
		zap.Bool("persistent", len(cfg.DataDir) > 0),
	)
	return nil
}

func (n *Node) Logger() logging.Logger {
	return n.log
}

func (n *Node) Tracer() trace.Tracer {
	return n.tracer
}

func (n *Node) Deriver() pda.Deriver {
	return n.program.Deriver()
}

func (n *Node) Program() *program.Program {
	return n.program
}

func (n *Node) Core() *metadata.Core {
	return n.core
}

func (n *Node) AirdropEnabled() bool {
	return n.airdrops
}

// Gatherer exposes the metrics of the database and processor.
func (n *Node) Gatherer() prometheus.Gatherer {
	return n.metrics
}

func (n *Node) Close() error {
	errs := wrappers.Errs{}
	errs.Add(
		n.db.Close(),
		n.tracer.Close(),
	)
	return errs.Err
}
