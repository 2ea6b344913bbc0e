// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/blocto/solana-go-sdk/types"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the uri, and optionally the name, of an asset as the server authority",
	RunE: func(cmd *cobra.Command, _ []string) error {
		payer, err := loadPayer(cmd)
		if err != nil {
			return err
		}
		authority, err := keypairFlag(cmd, "authority")
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
		uri, _ := cmd.Flags().GetString("uri")
		var name *string
		if cmd.Flags().Changed("name") {
			n, _ := cmd.Flags().GetString("name")
			name = &n
		}

		s, err := newSubmitter(cmd)
		if err != nil {
			return err
		}
		ix, err := s.Builder().UpdateMetadata(asset, collection, authority.PublicKey, payer.PublicKey, name, uri)
		if err != nil {
			return err
		}
		ctx, cancel := requestContext()
		defer cancel()
		id, err := s.Submit(ctx, payer, []types.Instruction{ix}, authority)
		if err != nil {
			return err
		}
		printTx(id)
		return nil
	},
}

func init() {
	updateCmd.Flags().String("asset", "", "asset address")
	updateCmd.Flags().String("collection", "", "collection address, or the program id to clear it")
	updateCmd.Flags().String("authority", "", "server authority keypair (defaults to the payer)")
	updateCmd.Flags().String("name", "", "new name (unchanged when unset)")
	updateCmd.Flags().String("uri", "", "new metadata uri")
	rootCmd.AddCommand(updateCmd)
}
