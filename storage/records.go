// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"fmt"

	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/consts"
	"github.com/ava-labs/storymint/state"
)

const (
	RegistryAccountName = "MasterState"
	VaultAccountName    = "TokenVault"

	// RegistrySize is discriminator + collection + total minted.
	RegistrySize = consts.DiscriminatorLen + consts.AddressLen + consts.Uint64Len
	// DelegatedRegistrySize adds the delegate authority and the collection
	// authority record.
	DelegatedRegistrySize = RegistrySize + 2*consts.AddressLen
	// VaultSize is discriminator + asset + locked amount.
	VaultSize = consts.DiscriminatorLen + consts.AddressLen + consts.Uint64Len
)

// Registry is the per-collection record tracking how many assets have ever
// been minted.
type Registry struct {
	Collection  codec.Address
	TotalMinted uint64

	// Delegation is only recorded by deployments that verify collection
	// membership through an explicit authority record.
	Delegation *Delegation
}

type Delegation struct {
	DelegateAuthority         codec.Address
	CollectionAuthorityRecord codec.Address
}

type registryRecord struct {
	Collection  codec.Address
	TotalMinted uint64
}

type delegatedRegistryRecord struct {
	Collection                codec.Address
	TotalMinted               uint64
	DelegateAuthority         codec.Address
	CollectionAuthorityRecord codec.Address
}

func (r *Registry) Marshal() ([]byte, error) {
	if r.Delegation == nil {
		return codec.EncodeAccount(RegistryAccountName, registryRecord{
			Collection:  r.Collection,
			TotalMinted: r.TotalMinted,
		})
	}
	return codec.EncodeAccount(RegistryAccountName, delegatedRegistryRecord{
		Collection:                r.Collection,
		TotalMinted:               r.TotalMinted,
		DelegateAuthority:         r.Delegation.DelegateAuthority,
		CollectionAuthorityRecord: r.Delegation.CollectionAuthorityRecord,
	})
}

func UnmarshalRegistry(data []byte) (*Registry, error) {
	switch len(data) {
	case RegistrySize:
		var rec registryRecord
		if err := codec.DecodeAccount(RegistryAccountName, data, &rec); err != nil {
			return nil, err
		}
		return &Registry{Collection: rec.Collection, TotalMinted: rec.TotalMinted}, nil
	case DelegatedRegistrySize:
		var rec delegatedRegistryRecord
		if err := codec.DecodeAccount(RegistryAccountName, data, &rec); err != nil {
			return nil, err
		}
		return &Registry{
			Collection:  rec.Collection,
			TotalMinted: rec.TotalMinted,
			Delegation: &Delegation{
				DelegateAuthority:         rec.DelegateAuthority,
				CollectionAuthorityRecord: rec.CollectionAuthorityRecord,
			},
		}, nil
	default:
		return nil, fmt.Errorf("%w: registry is %d bytes", codec.ErrInvalidSize, len(data))
	}
}

// Vault is the escrow record of one asset. The vault account's own lamport
// balance is the escrowed amount.
type Vault struct {
	Asset        codec.Address
	LockedAmount uint64
}

func (v *Vault) Marshal() ([]byte, error) {
	return codec.EncodeAccount(VaultAccountName, *v)
}

func UnmarshalVault(data []byte) (*Vault, error) {
	if len(data) != VaultSize {
		return nil, fmt.Errorf("%w: vault is %d bytes", codec.ErrInvalidSize, len(data))
	}
	var v Vault
	if err := codec.DecodeAccount(VaultAccountName, data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetRegistry reads the registry at [addr], which must be owned by
// [programID].
func GetRegistry(ctx context.Context, im state.Immutable, addr, programID codec.Address) (*Registry, error) {
	a, err := GetOwnedAccount(ctx, im, addr, programID)
	if err != nil {
		return nil, err
	}
	return UnmarshalRegistry(a.Data)
}

// PutRegistry overwrites the data of the existing registry at [addr].
func PutRegistry(ctx context.Context, mu state.Mutable, addr codec.Address, r *Registry) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	return SetData(ctx, mu, addr, data)
}

// GetVault returns the vault record at [addr] along with its lamport
// balance.
func GetVault(ctx context.Context, im state.Immutable, addr, programID codec.Address) (*Vault, uint64, error) {
	a, err := GetOwnedAccount(ctx, im, addr, programID)
	if err != nil {
		return nil, 0, err
	}
	v, err := UnmarshalVault(a.Data)
	if err != nil {
		return nil, 0, err
	}
	return v, a.Lamports, nil
}
