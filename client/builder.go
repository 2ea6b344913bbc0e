// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package client builds storymint instructions and sends them to a local
// node or a Solana cluster.
package client

import (
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"

	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/metadata"
	"github.com/ava-labs/storymint/pda"
	"github.com/ava-labs/storymint/program"
)

// Builder assembles the wire instructions of the storymint program. Every
// program-derived account is computed with the same [pda.Deriver] the
// program checks against.
type Builder struct {
	deriver          pda.Deriver
	coreID           codec.Address
	recordDelegation bool
}

func NewBuilder(programID, coreID codec.Address, recordDelegation bool) *Builder {
	return &Builder{
		deriver:          pda.New(programID),
		coreID:           coreID,
		recordDelegation: recordDelegation,
	}
}

// NewDefaultBuilder targets the default deployment.
func NewDefaultBuilder() *Builder {
	return NewBuilder(program.ID, metadata.ProgramID, false)
}

func (b *Builder) ProgramID() codec.Address {
	return b.deriver.ProgramID
}

func (b *Builder) CoreID() codec.Address {
	return b.coreID
}

func (b *Builder) Deriver() pda.Deriver {
	return b.deriver
}

func (b *Builder) instruction(name string, args any, accounts ...types.AccountMeta) (types.Instruction, error) {
	data, err := codec.EncodeInstruction(name, args)
	if err != nil {
		return types.Instruction{}, err
	}
	return types.Instruction{
		ProgramID: b.deriver.ProgramID,
		Accounts:  accounts,
		Data:      data,
	}, nil
}

func (b *Builder) programs() []types.AccountMeta {
	return []types.AccountMeta{
		{PubKey: common.SystemProgramID},
		{PubKey: b.coreID},
	}
}

func (b *Builder) delegate(collection codec.Address) (codec.Address, error) {
	if b.recordDelegation {
		addr, _, err := b.deriver.CollectionDelegate(collection)
		return addr, err
	}
	addr, _, err := b.deriver.MintAuthority(collection)
	return addr, err
}

func (b *Builder) InitializeCollection(payer, collection, updateAuthority codec.Address, name, uri string) (types.Instruction, error) {
	registry, _, err := b.deriver.Registry(collection)
	if err != nil {
		return types.Instruction{}, err
	}
	delegate, err := b.delegate(collection)
	if err != nil {
		return types.Instruction{}, err
	}
	return b.instruction(program.InitializeCollection, program.CollectionArgs{Name: name, URI: uri}, append([]types.AccountMeta{
		{PubKey: payer, IsSigner: true, IsWritable: true},
		{PubKey: registry, IsWritable: true},
		{PubKey: delegate, IsWritable: true},
		{PubKey: collection, IsSigner: true, IsWritable: true},
		{PubKey: updateAuthority, IsSigner: true, IsWritable: true},
	}, b.programs()...)...)
}

func (b *Builder) MintAsset(payer, collection, asset, owner codec.Address) (types.Instruction, error) {
	addrs, err := b.deriver.All(collection, &asset)
	if err != nil {
		return types.Instruction{}, err
	}
	delegate := addrs.MintAuthority
	if b.recordDelegation {
		delegate = addrs.CollectionDelegate
	}
	return b.instruction(program.MintAsset, nil, append([]types.AccountMeta{
		{PubKey: payer, IsSigner: true, IsWritable: true},
		{PubKey: *addrs.Vault, IsWritable: true},
		{PubKey: asset, IsSigner: true, IsWritable: true},
		{PubKey: addrs.Registry, IsWritable: true},
		{PubKey: collection, IsWritable: true},
		{PubKey: delegate},
		{PubKey: owner},
	}, b.programs()...)...)
}

// UpdateMetadata leaves the name unchanged when [name] is nil.
func (b *Builder) UpdateMetadata(asset, collection, authority, payer codec.Address, name *string, uri string) (types.Instruction, error) {
	return b.instruction(program.UpdateMetadata, program.UpdateMetadataArgs{Name: name, URI: uri}, append([]types.AccountMeta{
		{PubKey: asset, IsWritable: true},
		{PubKey: collection, IsWritable: true},
		{PubKey: authority, IsSigner: true, IsWritable: true},
		{PubKey: payer, IsSigner: true, IsWritable: true},
	}, b.programs()...)...)
}

func (b *Builder) BurnAndWithdraw(owner, asset, collection codec.Address) (types.Instruction, error) {
	addrs, err := b.deriver.All(collection, &asset)
	if err != nil {
		return types.Instruction{}, err
	}
	return b.instruction(program.BurnAndWithdraw, nil, append([]types.AccountMeta{
		{PubKey: owner, IsSigner: true, IsWritable: true},
		{PubKey: asset, IsWritable: true},
		{PubKey: collection, IsWritable: true},
		{PubKey: addrs.Registry, IsWritable: true},
		{PubKey: *addrs.Vault, IsWritable: true},
	}, b.programs()...)...)
}

// Transfer moves [asset] from [owner], who also pays, to [newOwner].
func (b *Builder) Transfer(asset, collection, owner, newOwner codec.Address) types.Instruction {
	return types.Instruction{
		ProgramID: b.coreID,
		Accounts: []types.AccountMeta{
			{PubKey: asset, IsWritable: true},
			{PubKey: collection},
			{PubKey: owner, IsSigner: true, IsWritable: true},
			{PubKey: b.coreID},
			{PubKey: newOwner},
			{PubKey: common.SystemProgramID},
		},
		// Transfer tag followed by an absent compression proof.
		Data: []byte{metadata.TransferDiscriminator, 0},
	}
}
