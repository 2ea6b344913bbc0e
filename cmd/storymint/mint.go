// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"runtime"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/neilotoole/errgroup"
	"github.com/spf13/cobra"

	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/utils"
)

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint assets into a collection, locking SOL in a vault per asset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		payer, err := loadPayer(cmd)
		if err != nil {
			return err
		}
		collection, err := addressFlag(cmd, "collection")
		if err != nil {
			return err
		}
		owner := payer.PublicKey
		if cmd.Flags().Changed("owner") {
			if owner, err = addressFlag(cmd, "owner"); err != nil {
				return err
			}
		}
		count, err := cmd.Flags().GetInt("count")
		if err != nil {
			return err
		}
		s, err := newSubmitter(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := requestContext()
		defer cancel()
		if count <= 1 {
			return mintOne(ctx, s, payer, collection, owner)
		}
		// Mints serialize on the registry; the group only bounds in-flight
		// requests.
		g, gctx := errgroup.WithContextN(ctx, runtime.NumCPU(), count)
		for i := 0; i < count; i++ {
			g.Go(func() error {
				return mintOne(gctx, s, payer, collection, owner)
			})
		}
		return g.Wait()
	},
}

func mintOne(ctx context.Context, s submitter, payer types.Account, collection, owner codec.Address) error {
	asset := types.NewAccount()
	ix, err := s.Builder().MintAsset(payer.PublicKey, collection, asset.PublicKey, owner)
	if err != nil {
		return err
	}
	id, err := s.Submit(ctx, payer, []types.Instruction{ix}, asset)
	if err != nil {
		return err
	}
	utils.Outf("{{green}}minted:{{/}} %s {{faint}}(%s){{/}}\n", asset.PublicKey.ToBase58(), id)
	return nil
}

func init() {
	mintCmd.Flags().String("collection", "", "collection address")
	mintCmd.Flags().String("owner", "", "asset owner (defaults to the payer)")
	mintCmd.Flags().Int("count", 1, "number of assets to mint")
	rootCmd.AddCommand(mintCmd)
}
