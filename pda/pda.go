// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pda derives every program-derived address the protocol touches.
// The program handlers and the instruction builder share this package so the
// addresses a client predicts are always the ones the program enforces.
package pda

import (
	"errors"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"

	"github.com/ava-labs/storymint/codec"
)

// Seed is the leading tag of a derivation.
type Seed string

const (
	// Derived under the protocol program.
	MasterMint         Seed = "master_mint"
	Master             Seed = "master"
	Vault              Seed = "vault"
	MintAuthority      Seed = "mint_authority"
	CollectionDelegate Seed = "collection_delegate"

	// Derived under the token metadata program.
	Metadata            Seed = "metadata"
	Edition             Seed = "edition"
	CollectionAuthority Seed = "collection_authority"
	TokenRecord         Seed = "token_record"
)

var ErrNoViableBump = errors.New("no viable bump")

// Derive finds the canonical program-derived address of [seeds] under
// [programID].
func Derive(programID codec.Address, seeds ...[]byte) (codec.Address, uint8, error) {
	addr, bump, err := common.FindProgramAddress(seeds, programID)
	if err != nil {
		return codec.EmptyAddress, 0, fmt.Errorf("%w: %s", ErrNoViableBump, err)
	}
	return addr, bump, nil
}

// Deriver binds the program identities derivations are performed under.
type Deriver struct {
	ProgramID         codec.Address
	MetadataProgramID codec.Address
}

// New returns a Deriver for [programID] whose collaborator-owned addresses
// are derived under the token metadata program.
func New(programID codec.Address) Deriver {
	return Deriver{
		ProgramID:         programID,
		MetadataProgramID: common.MetaplexTokenMetaProgramID,
	}
}

func (d Deriver) program(seed Seed, keys ...codec.Address) (codec.Address, uint8, error) {
	seeds := make([][]byte, 0, len(keys)+1)
	seeds = append(seeds, []byte(seed))
	for i := range keys {
		seeds = append(seeds, keys[i].Bytes())
	}
	return Derive(d.ProgramID, seeds...)
}

func (d Deriver) MasterMint() (codec.Address, uint8, error) {
	return d.program(MasterMint)
}

// Registry is the address of the collection's registry record.
func (d Deriver) Registry(collection codec.Address) (codec.Address, uint8, error) {
	return d.program(Master, collection)
}

// Vault is the address that escrows the lock for [asset].
func (d Deriver) Vault(asset codec.Address) (codec.Address, uint8, error) {
	return d.program(Vault, asset)
}

func (d Deriver) MintAuthority(collection codec.Address) (codec.Address, uint8, error) {
	return d.program(MintAuthority, collection)
}

func (d Deriver) CollectionDelegate(collection codec.Address) (codec.Address, uint8, error) {
	return d.program(CollectionDelegate, collection)
}

func (d Deriver) metadata(mint codec.Address, suffix ...[]byte) (codec.Address, uint8, error) {
	seeds := [][]byte{[]byte(Metadata), d.MetadataProgramID.Bytes(), mint.Bytes()}
	seeds = append(seeds, suffix...)
	return Derive(d.MetadataProgramID, seeds...)
}

func (d Deriver) Metadata(mint codec.Address) (codec.Address, uint8, error) {
	return d.metadata(mint)
}

func (d Deriver) Edition(mint codec.Address) (codec.Address, uint8, error) {
	return d.metadata(mint, []byte(Edition))
}

// CollectionAuthority is the record that grants [delegate] authority to
// verify items into the [mint] collection.
func (d Deriver) CollectionAuthority(mint, delegate codec.Address) (codec.Address, uint8, error) {
	return d.metadata(mint, []byte(CollectionAuthority), delegate.Bytes())
}

func (d Deriver) TokenRecord(mint, token codec.Address) (codec.Address, uint8, error) {
	return d.metadata(mint, []byte(TokenRecord), token.Bytes())
}

// Addresses is every derived address relevant to one collection and
// (optionally) one asset.
type Addresses struct {
	Registry            codec.Address
	MintAuthority       codec.Address
	CollectionDelegate  codec.Address
	CollectionAuthority codec.Address
	Vault               *codec.Address
}

// All computes the collection addresses and, when [asset] is non-nil, the
// asset's vault.
func (d Deriver) All(collection codec.Address, asset *codec.Address) (*Addresses, error) {
	var (
		out Addresses
		err error
	)
	if out.Registry, _, err = d.Registry(collection); err != nil {
		return nil, err
	}
	if out.MintAuthority, _, err = d.MintAuthority(collection); err != nil {
		return nil, err
	}
	if out.CollectionDelegate, _, err = d.CollectionDelegate(collection); err != nil {
		return nil, err
	}
	if out.CollectionAuthority, _, err = d.CollectionAuthority(collection, out.CollectionDelegate); err != nil {
		return nil, err
	}
	if asset != nil {
		vault, _, err := d.Vault(*asset)
		if err != nil {
			return nil, err
		}
		out.Vault = &vault
	}
	return &out, nil
}
