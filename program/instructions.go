// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"github.com/ava-labs/storymint/codec"
)

// CollectionArgs are the arguments of [InitializeCollection].
type CollectionArgs struct {
	Name string
	URI  string
}

// UpdateMetadataArgs are the arguments of [UpdateMetadata]. A nil name
// leaves the asset's name unchanged.
type UpdateMetadataArgs struct {
	Name *string
	URI  string
}

// Discriminators maps every accepted instruction discriminator to the
// canonical instruction name.
var Discriminators = map[codec.Discriminator]string{
	codec.InstructionDiscriminator(InitializeCollection):    InitializeCollection,
	codec.InstructionDiscriminator(InitializeMasterEdition): InitializeCollection,
	codec.InstructionDiscriminator(MintAsset):               MintAsset,
	codec.InstructionDiscriminator(MintPNFT):                MintAsset,
	codec.InstructionDiscriminator(UpdateMetadata):          UpdateMetadata,
	codec.InstructionDiscriminator(BurnAndWithdraw):         BurnAndWithdraw,
}
