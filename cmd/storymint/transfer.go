// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/blocto/solana-go-sdk/types"
	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer an asset owned by the payer",
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
		to, err := addressFlag(cmd, "to")
		if err != nil {
			return err
		}

		s, err := newSubmitter(cmd)
		if err != nil {
			return err
		}
		ix := s.Builder().Transfer(asset, collection, owner.PublicKey, to)
		ctx, cancel := requestContext()
		defer cancel()
		id, err := s.Submit(ctx, owner, []types.Instruction{ix})
		if err != nil {
			return err
		}
		printTx(id)
		return nil
	},
}

func init() {
	transferCmd.Flags().String("asset", "", "asset address")
	transferCmd.Flags().String("collection", "", "collection address")
	transferCmd.Flags().String("to", "", "new owner")
	rootCmd.AddCommand(transferCmd)
}
