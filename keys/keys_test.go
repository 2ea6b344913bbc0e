// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeChunks(t *testing.T) {
	require := require.New(t)

	k := EncodeChunks([]byte("acct"), 3)
	require.True(Valid(k))
	chunks, ok := MaxChunks(k)
	require.True(ok)
	require.Equal(uint16(3), chunks)

	_, ok = MaxChunks([]byte{1})
	require.False(ok)
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		maxSize int
		chunks  uint16
	}{
		{"empty", 0, 0},
		{"one byte", 1, 1},
		{"exact chunk", 64, 1},
		{"chunk plus one", 65, 2},
		{"registry", 296, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			k, ok := Encode([]byte("k"), tt.maxSize)
			require.True(ok)
			chunks, ok := MaxChunks(k)
			require.True(ok)
			require.Equal(tt.chunks, chunks)
		})
	}
}

func TestVerifyValue(t *testing.T) {
	require := require.New(t)

	k := EncodeChunks([]byte("k"), 1)
	require.True(VerifyValue(k, nil))
	require.True(VerifyValue(k, make([]byte, 64)))
	require.False(VerifyValue(k, make([]byte, 65)))
	require.False(VerifyValue([]byte{0}, []byte{1}))
}
