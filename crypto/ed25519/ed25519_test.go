// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/storymint/crypto"
)

func TestSignVerify(t *testing.T) {
	require := require.New(t)
	acct := types.NewAccount()
	msg := []byte("msg")

	sig, err := Sign(msg, acct)
	require.NoError(err)
	require.True(Verify(msg, acct.PublicKey, sig))
	require.False(Verify([]byte("other"), acct.PublicKey, sig))
	require.False(Verify(msg, types.NewAccount().PublicKey, sig))

	_, err = Sign(msg, types.Account{})
	require.ErrorIs(err, crypto.ErrInvalidPrivateKey)
}

func TestBatch(t *testing.T) {
	for _, n := range []int{1, MinBatchSize, 16} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			require := require.New(t)
			b := NewBatch(n)
			for i := 0; i < n; i++ {
				acct := types.NewAccount()
				msg := []byte(strconv.Itoa(i))
				sig, err := Sign(msg, acct)
				require.NoError(err)
				b.Add(msg, acct.PublicKey, sig)
			}
			require.Equal(n, b.Len())
			require.NoError(b.VerifyAsync()())
		})
	}
}

func TestBatchInvalid(t *testing.T) {
	require := require.New(t)
	b := NewBatch(2)
	acct := types.NewAccount()
	sig, err := Sign([]byte("a"), acct)
	require.NoError(err)
	b.Add([]byte("a"), acct.PublicKey, sig)
	b.Add([]byte("b"), acct.PublicKey, sig)
	require.ErrorIs(b.VerifyAsync()(), crypto.ErrInvalidSignature)
}

func TestKeypairRoundTrip(t *testing.T) {
	require := require.New(t)
	acct := types.NewAccount()
	path := filepath.Join(t.TempDir(), "id.json")

	require.NoError(SaveKeypair(path, acct))
	loaded, err := LoadKeypair(path)
	require.NoError(err)
	require.Equal(acct.PublicKey, loaded.PublicKey)
	require.Equal(acct.PrivateKey, loaded.PrivateKey)
}

func TestParseKeypairInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "nope"},
		{"short", "[1,2,3]"},
		{"out of range", "[" + strings.Repeat("300,", 63) + "300]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKeypair([]byte(tt.input))
			require.ErrorIs(t, err, crypto.ErrInvalidKeypair)
		})
	}
}
