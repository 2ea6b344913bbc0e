// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/storymint/utils"
)

var airdropCmd = &cobra.Command{
	Use:   "airdrop [amount]",
	Short: "Request SOL from the node faucet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := utils.ParseBalance(args[0])
		if err != nil {
			return err
		}
		to, err := loadPayer(cmd)
		if err != nil {
			return err
		}
		addr := to.PublicKey
		if cmd.Flags().Changed("to") {
			if addr, err = addressFlag(cmd, "to"); err != nil {
				return err
			}
		}
		cli, err := nodeClient(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := requestContext()
		defer cancel()
		bal, err := cli.Airdrop(ctx, addr, amount)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}airdropped:{{/}} %s SOL to %s\n", args[0], addr.ToBase58())
		utils.Outf("{{yellow}}balance:{{/}}    %s SOL\n", utils.FormatBalance(bal))
		return nil
	},
}

func init() {
	airdropCmd.Flags().String("to", "", "recipient (defaults to the payer)")
	rootCmd.AddCommand(airdropCmd)
}
