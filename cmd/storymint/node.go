// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/storymint/config"
	"github.com/ava-labs/storymint/node"
	"github.com/ava-labs/storymint/rpc"
	"github.com/ava-labs/storymint/server"
	"github.com/ava-labs/storymint/utils"
)

const metricsEndpoint = "/metrics"

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Run a local runtime and serve it over JSON-RPC",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if err := applyNodeFlags(cmd, cfg); err != nil {
			return err
		}
		return runNode(cfg)
	},
}

func applyNodeFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("listen") {
		cfg.HTTP.ListenAddress, _ = flags.GetString("listen")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
		cfg.Log.DisplayLevel = cfg.Log.Level
	}
	return cfg.Verify()
}

func runNode(cfg *config.Config) error {
	factory, err := newLogFactory(cfg.Log)
	if err != nil {
		return err
	}
	defer factory.Close()
	log, err := factory.Make("node")
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	n, err := node.New(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("failed to start node: %w", err)
	}
	defer func() {
		if err := n.Close(); err != nil {
			log.Error("failed to close node", zap.Error(err))
		}
	}()

	listener, err := net.Listen("tcp", cfg.HTTP.ListenAddress)
	if err != nil {
		return err
	}
	srv := server.New(log, listener, cfg.HTTP, server.NewRequestLogger(log))
	handler, err := server.NewJSONRPCHandler(rpc.Name, rpc.NewJSONRPCServer(n))
	if err != nil {
		return err
	}
	if err := srv.AddRoute(handler, rpc.JSONRPCEndpoint); err != nil {
		return err
	}
	if err := srv.AddRoute(promhttp.HandlerFor(n.Gatherer(), promhttp.HandlerOpts{}), metricsEndpoint); err != nil {
		return err
	}

	errs := make(chan error, 1)
	go func() { errs <- srv.Dispatch() }()
	utils.Outf("{{green}}serving:{{/}} http://%s%s\n", srv.Addr(), rpc.JSONRPCEndpoint)

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		return srv.Shutdown()
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func init() {
	nodeCmd.Flags().String("config", "", "YAML config file")
	nodeCmd.Flags().String("data-dir", "", "account database directory (in memory when empty)")
	nodeCmd.Flags().String("listen", "", "JSON-RPC listen address")
	nodeCmd.Flags().String("log-level", "", "log and display level")
	rootCmd.AddCommand(nodeCmd)
}
