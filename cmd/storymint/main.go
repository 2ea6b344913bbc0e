// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storymint",
	Short: "Run and interact with a storymint runtime",
	Long: `A CLI for running a local storymint node and for minting, updating,
burning, and transferring locked-SOL assets against it or a Solana cluster.`,
	SilenceUsage: true,
}

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.DisableAutoGenTag = true

	rootCmd.PersistentFlags().String("endpoint", defaultEndpoint, "node JSON-RPC endpoint")
	rootCmd.PersistentFlags().String("cluster", "", "send transactions to this Solana RPC endpoint instead of the node")
	rootCmd.PersistentFlags().String("keypair", defaultKeypairPath(), "payer keypair file")
	rootCmd.PersistentFlags().String("program", defaultProgramID, "storymint program id")
	rootCmd.PersistentFlags().String("core", defaultCoreID, "asset program id")
	rootCmd.PersistentFlags().Bool("record-delegation", false, "deployment records the collection delegate")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}
