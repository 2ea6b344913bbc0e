// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import "github.com/ava-labs/storymint/codec"

const (
	Name = "storymint"

	// DefaultLockAmount is one SOL.
	DefaultLockAmount uint64 = 1_000_000_000
	DefaultMaxSupply  uint64 = 10_000
)

var (
	ID                     = codec.MustParseAddress("3kLyy6249ZFsZyG74b6eSwuvDUVndkFM54cvK8gnietr")
	DefaultServerAuthority = codec.MustParseAddress("EiLANmnffXVXczyimnGEKSZpzwQ4TyuQXVAviqBji8TF")
	DefaultUpdateAuthority = codec.MustParseAddress("3tLnhFgmcdFA4j5rmt7AZixdPtwdrtpKwdwKFCzhmNz7")
)

// Instruction names. The legacy names of the master edition deployment are
// accepted as aliases.
const (
	InitializeCollection = "initialize_collection"
	MintAsset            = "mint_asset"
	UpdateMetadata       = "update_metadata"
	BurnAndWithdraw      = "burn_and_withdraw"

	InitializeMasterEdition = "initialize_master_edition"
	MintPNFT                = "mint_pnft"
)

const (
	// Account counts per instruction.
	initializeAccounts = 7
	mintAccounts       = 9
	updateAccounts     = 6
	burnAccounts       = 7
)
