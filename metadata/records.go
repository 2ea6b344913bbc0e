// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metadata

import (
	"fmt"

	"github.com/near/borsh-go"

	"github.com/ava-labs/storymint/codec"
)

// Key is the leading byte of every collaborator account.
type Key uint8

const (
	KeyUninitialized Key = 0
	KeyAsset         Key = 1
	KeyCollection    Key = 5
)

const (
	MaxNameLen = 32
	MaxURILen  = 200
)

// Asset is one non-fungible asset. Its update authority is the collection
// it belongs to.
type Asset struct {
	Key        uint8
	Owner      codec.Address
	Collection codec.Address
	Name       string
	URI        string
	Verified   bool
	Mutable    bool
}

// Collection groups assets under one update authority. Update delegates may
// act with the update authority's rights.
type Collection struct {
	Key             uint8
	UpdateAuthority codec.Address
	Name            string
	URI             string
	NumMinted       uint32
	CurrentSize     uint32
	UpdateDelegates []codec.Address
}

// Approves returns true if [authority] is the update authority or one of
// its delegates.
func (c *Collection) Approves(authority codec.Address) bool {
	if authority == c.UpdateAuthority {
		return true
	}
	for _, d := range c.UpdateDelegates {
		if d == authority {
			return true
		}
	}
	return false
}

func encode(v any) ([]byte, error) {
	return borsh.Serialize(v)
}

func decode(data []byte, want Key, out any) error {
	if len(data) == 0 || Key(data[0]) != want {
		return fmt.Errorf("%w: wanted %d", ErrInvalidAccountKey, want)
	}
	if err := borsh.Deserialize(out, data); err != nil {
		return fmt.Errorf("%w: %s", codec.ErrInvalidSize, err)
	}
	return nil
}

func (a *Asset) Marshal() ([]byte, error) {
	a.Key = uint8(KeyAsset)
	return encode(*a)
}

func UnmarshalAsset(data []byte) (*Asset, error) {
	var a Asset
	if err := decode(data, KeyAsset, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Collection) Marshal() ([]byte, error) {
	c.Key = uint8(KeyCollection)
	return encode(*c)
}

func UnmarshalCollection(data []byte) (*Collection, error) {
	var c Collection
	if err := decode(data, KeyCollection, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
