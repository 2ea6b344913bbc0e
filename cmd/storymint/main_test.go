// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/storymint/config"
	"github.com/ava-labs/storymint/crypto/ed25519"
)

func TestKeyGenerate(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "id.json")
	rootCmd.SetArgs([]string{"key", "generate", path})
	require.NoError(rootCmd.Execute())

	acct, err := ed25519.LoadKeypair(path)
	require.NoError(err)
	require.Len(acct.PrivateKey, ed25519.PrivateKeyLen)

	// Refuses to overwrite without --force.
	rootCmd.SetArgs([]string{"key", "generate", path})
	require.Error(rootCmd.Execute())
}

func TestApplyNodeFlags(t *testing.T) {
	require := require.New(t)

	cmd := &cobra.Command{}
	cmd.Flags().String("data-dir", "", "")
	cmd.Flags().String("listen", "", "")
	cmd.Flags().String("log-level", "", "")
	require.NoError(cmd.Flags().Parse([]string{"--data-dir", "/tmp/db", "--log-level", "debug"}))

	cfg := config.NewDefaultConfig()
	require.NoError(applyNodeFlags(cmd, cfg))
	require.Equal("/tmp/db", cfg.DataDir)
	require.Equal("debug", cfg.Log.Level)
	require.Equal("debug", cfg.Log.DisplayLevel)
	// Unset flags keep the loaded value.
	require.Equal(config.NewDefaultConfig().HTTP.ListenAddress, cfg.HTTP.ListenAddress)

	require.NoError(cmd.Flags().Set("log-level", "loud"))
	require.ErrorIs(applyNodeFlags(cmd, cfg), config.ErrInvalidConfig)
}

func TestLogFactoryRejectsDuplicateNames(t *testing.T) {
	require := require.New(t)

	cfg := config.NewDefaultConfig().Log
	cfg.Directory = t.TempDir()
	f, err := newLogFactory(cfg)
	require.NoError(err)
	defer f.Close()

	_, err = f.Make("node")
	require.NoError(err)
	_, err = f.Make("node")
	require.Error(err)
}
