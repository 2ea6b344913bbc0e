// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBalance(t *testing.T) {
	require := require.New(t)

	require.Equal("1.000000000", FormatBalance(1_000_000_000))
	require.Equal("0.000005000", FormatBalance(5_000))

	bal, err := ParseBalance("1.5")
	require.NoError(err)
	require.Equal(uint64(1_500_000_000), bal)

	_, err = ParseBalance("-1")
	require.ErrorIs(err, ErrNegativeBalance)
	_, err = ParseBalance("lots")
	require.Error(err)
}

func TestInitSubDirectory(t *testing.T) {
	require := require.New(t)

	p, err := InitSubDirectory(t.TempDir(), "db")
	require.NoError(err)
	require.DirExists(p)
	require.Equal("db", filepath.Base(p))
}
