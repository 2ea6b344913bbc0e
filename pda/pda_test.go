// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pda

import (
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/storymint/codec"
)

var programID = codec.MustParseAddress("3kLyy6249ZFsZyG74b6eSwuvDUVndkFM54cvK8gnietr")

func TestDeriveDeterministic(t *testing.T) {
	require := require.New(t)
	d := New(programID)
	collection := types.NewAccount().PublicKey

	a1, b1, err := d.Registry(collection)
	require.NoError(err)
	a2, b2, err := d.Registry(collection)
	require.NoError(err)
	require.Equal(a1, a2)
	require.Equal(b1, b2)

	// Derived addresses have no private key.
	require.False(common.IsOnCurve(a1))

	// Different tags never collide.
	v, _, err := d.Vault(collection)
	require.NoError(err)
	require.NotEqual(a1, v)
}

func TestDeriveMatchesSeeds(t *testing.T) {
	require := require.New(t)
	d := New(programID)
	asset := types.NewAccount().PublicKey

	expected, bump, err := common.FindProgramAddress([][]byte{[]byte("vault"), asset.Bytes()}, programID)
	require.NoError(err)
	actual, actualBump, err := d.Vault(asset)
	require.NoError(err)
	require.Equal(expected, actual)
	require.Equal(bump, actualBump)
}

func TestMetadataAddressesMatchSDK(t *testing.T) {
	require := require.New(t)
	d := New(programID)
	mint := types.NewAccount().PublicKey

	expected, err := token_metadata.GetTokenMetaPubkey(mint)
	require.NoError(err)
	actual, _, err := d.Metadata(mint)
	require.NoError(err)
	require.Equal(expected, actual)

	expected, err = token_metadata.GetMasterEdition(mint)
	require.NoError(err)
	actual, _, err = d.Edition(mint)
	require.NoError(err)
	require.Equal(expected, actual)
}

func TestAll(t *testing.T) {
	require := require.New(t)
	d := New(programID)
	collection := types.NewAccount().PublicKey
	asset := types.NewAccount().PublicKey

	addrs, err := d.All(collection, nil)
	require.NoError(err)
	require.Nil(addrs.Vault)

	addrs, err = d.All(collection, &asset)
	require.NoError(err)
	require.NotNil(addrs.Vault)

	record, _, err := d.CollectionAuthority(collection, addrs.CollectionDelegate)
	require.NoError(err)
	require.Equal(record, addrs.CollectionAuthority)
}
