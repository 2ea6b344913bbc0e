// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/storymint/utils"
)

var registryCmd = &cobra.Command{
	Use:   "registry [collection]",
	Short: "Print the registry of a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := nodeClient(cmd)
		if err != nil {
			return err
		}
		collection, err := parseArg(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext()
		defer cancel()
		reg, err := cli.Registry(ctx, collection)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}registry:{{/}}     %s\n", reg.Address)
		utils.Outf("{{yellow}}collection:{{/}}   %s\n", reg.Collection)
		utils.Outf("{{yellow}}total minted:{{/}} %d\n", reg.TotalMinted)
		if len(reg.DelegateAuthority) > 0 {
			utils.Outf("{{yellow}}delegate:{{/}}     %s\n", reg.DelegateAuthority)
			utils.Outf("{{yellow}}record:{{/}}       %s\n", reg.CollectionAuthorityRecord)
		}
		return nil
	},
}

var vaultCmd = &cobra.Command{
	Use:   "vault [asset]",
	Short: "Print the vault of an asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := nodeClient(cmd)
		if err != nil {
			return err
		}
		asset, err := parseArg(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext()
		defer cancel()
		v, err := cli.Vault(ctx, asset)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}vault:{{/}}   %s\n", v.Address)
		utils.Outf("{{yellow}}asset:{{/}}   %s\n", v.Asset)
		utils.Outf("{{yellow}}locked:{{/}}  %s SOL\n", utils.FormatBalance(v.LockedAmount))
		utils.Outf("{{yellow}}balance:{{/}} %s SOL\n", utils.FormatBalance(v.Lamports))
		return nil
	},
}

var assetCmd = &cobra.Command{
	Use:   "asset [asset]",
	Short: "Print an asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := nodeClient(cmd)
		if err != nil {
			return err
		}
		asset, err := parseArg(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext()
		defer cancel()
		a, err := cli.Asset(ctx, asset)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}owner:{{/}}      %s\n", a.Owner)
		utils.Outf("{{yellow}}collection:{{/}} %s {{faint}}(verified=%t){{/}}\n", a.Collection, a.Verified)
		utils.Outf("{{yellow}}name:{{/}}       %s\n", a.Name)
		utils.Outf("{{yellow}}uri:{{/}}        %s\n", a.URI)
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Print the balance of an address (defaults to the payer)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := nodeClient(cmd)
		if err != nil {
			return err
		}
		var addrArg string
		if len(args) == 1 {
			addrArg = args[0]
		} else {
			payer, err := loadPayer(cmd)
			if err != nil {
				return err
			}
			addrArg = payer.PublicKey.ToBase58()
		}
		addr, err := parseArg(addrArg)
		if err != nil {
			return err
		}
		ctx, cancel := requestContext()
		defer cancel()
		bal, err := cli.Balance(ctx, addr)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}balance:{{/}} %s SOL\n", utils.FormatBalance(bal))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registryCmd, vaultCmd, assetCmd, balanceCmd)
}
