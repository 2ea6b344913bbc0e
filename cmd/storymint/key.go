// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/spf13/cobra"

	"github.com/ava-labs/storymint/crypto/ed25519"
	"github.com/ava-labs/storymint/utils"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage keypair files",
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Write a new keypair in solana-keygen format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			return err
		}
		if _, err := os.Stat(args[0]); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", args[0])
		}
		acct := types.NewAccount()
		if err := ed25519.SaveKeypair(args[0], acct); err != nil {
			return err
		}
		utils.Outf("{{green}}created:{{/}} %s\n", args[0])
		utils.Outf("{{yellow}}address:{{/}} %s\n", acct.PublicKey.ToBase58())
		return nil
	},
}

var keyAddressCmd = &cobra.Command{
	Use:   "address [path]",
	Short: "Print the address of a keypair file (defaults to --keypair)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			acct types.Account
			err  error
		)
		if len(args) == 1 {
			acct, err = ed25519.LoadKeypair(args[0])
		} else {
			acct, err = loadPayer(cmd)
		}
		if err != nil {
			return err
		}
		fmt.Println(acct.PublicKey.ToBase58())
		return nil
	},
}

func init() {
	keyGenerateCmd.Flags().Bool("force", false, "overwrite an existing file")
	keyCmd.AddCommand(keyGenerateCmd, keyAddressCmd)
	rootCmd.AddCommand(keyCmd)
}
