// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/spf13/cobra"

	"github.com/ava-labs/storymint/utils"
)

var burnCmd = &cobra.Command{
	Use:   "burn",
	Short: "Burn an asset and withdraw the SOL locked in its vault",
	RunE: func(cmd *cobra.Command, _ []string) error {
		owner, err := loadPayer(cmd)
		if err != nil {
			return err
		}
		asset, err := addressFlag(cmd, "asset")
		if err != nil {
			return err
		}
		collection, err := addressFlag(cmd, "collection")
		if err != nil {
			return err
		}
		if err := confirm(cmd, fmt.Sprintf("burn %s", asset.ToBase58())); err != nil {
			return err
		}

		s, err := newSubmitter(cmd)
		if err != nil {
			return err
		}
		ix, err := s.Builder().BurnAndWithdraw(owner.PublicKey, asset, collection)
		if err != nil {
			return err
		}
		ctx, cancel := requestContext()
		defer cancel()
		id, err := s.Submit(ctx, owner, []types.Instruction{ix})
		if err != nil {
			return err
		}
		printTx(id)
		utils.Outf("{{green}}burned:{{/}} %s\n", asset.ToBase58())
		return nil
	},
}

func init() {
	burnCmd.Flags().String("asset", "", "asset address")
	burnCmd.Flags().String("collection", "", "collection address")
	burnCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(burnCmd)
}
