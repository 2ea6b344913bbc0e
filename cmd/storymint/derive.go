// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/utils"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Print the program derived addresses of a collection and asset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		builder, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		collection, err := addressFlag(cmd, "collection")
		if err != nil {
			return err
		}
		var asset *codec.Address
		if cmd.Flags().Changed("asset") {
			a, err := addressFlag(cmd, "asset")
			if err != nil {
				return err
			}
			asset = &a
		}

		d := builder.Deriver()
		addrs, err := d.All(collection, asset)
		if err != nil {
			return err
		}
		master, _, err := d.MasterMint()
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}registry:{{/}}             %s\n", addrs.Registry.ToBase58())
		utils.Outf("{{yellow}}mint authority:{{/}}       %s\n", addrs.MintAuthority.ToBase58())
		utils.Outf("{{yellow}}collection delegate:{{/}}  %s\n", addrs.CollectionDelegate.ToBase58())
		utils.Outf("{{yellow}}collection authority:{{/}} %s\n", addrs.CollectionAuthority.ToBase58())
		utils.Outf("{{yellow}}master mint:{{/}}          %s\n", master.ToBase58())
		if addrs.Vault != nil {
			utils.Outf("{{yellow}}vault:{{/}}                %s\n", addrs.Vault.ToBase58())
		}
		return nil
	},
}

func init() {
	deriveCmd.Flags().String("collection", "", "collection address")
	deriveCmd.Flags().String("asset", "", "asset address")
	rootCmd.AddCommand(deriveCmd)
}
