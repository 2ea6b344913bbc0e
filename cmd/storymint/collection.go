// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/blocto/solana-go-sdk/types"
	"github.com/spf13/cobra"

	"github.com/ava-labs/storymint/crypto/ed25519"
	"github.com/ava-labs/storymint/utils"
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Manage collections",
}

var collectionInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a collection and its registry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		payer, err := loadPayer(cmd)
		if err != nil {
			return err
		}
		updateAuthority, err := keypairFlag(cmd, "update-authority")
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		uri, _ := cmd.Flags().GetString("uri")

		collection := types.NewAccount()
		if out, _ := cmd.Flags().GetString("save"); len(out) > 0 {
			if err := ed25519.SaveKeypair(out, collection); err != nil {
				return err
			}
		}

		s, err := newSubmitter(cmd)
		if err != nil {
			return err
		}
		ix, err := s.Builder().InitializeCollection(payer.PublicKey, collection.PublicKey, updateAuthority.PublicKey, name, uri)
		if err != nil {
			return err
		}
		ctx, cancel := requestContext()
		defer cancel()
		id, err := s.Submit(ctx, payer, []types.Instruction{ix}, collection, updateAuthority)
		if err != nil {
			return err
		}
		printTx(id)
		utils.Outf("{{green}}collection:{{/}} %s\n", collection.PublicKey.ToBase58())
		return nil
	},
}

func init() {
	collectionInitCmd.Flags().String("name", "", "collection name")
	collectionInitCmd.Flags().String("uri", "", "collection metadata uri")
	collectionInitCmd.Flags().String("update-authority", "", "update authority keypair (defaults to the payer)")
	collectionInitCmd.Flags().String("save", "", "write the collection keypair to this file")
	collectionCmd.AddCommand(collectionInitCmd)
	rootCmd.AddCommand(collectionCmd)
}
