// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/storymint/chain"
	"github.com/ava-labs/storymint/metadata"
	"github.com/ava-labs/storymint/program"
	"github.com/ava-labs/storymint/storage"
)

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		is   []error
	}{
		{
			name: "program error",
			msg:  "instruction 0: " + program.ErrAlreadyInitialized.Error(),
			is:   []error{program.ErrAlreadyInitialized},
		},
		{
			name: "not approved",
			msg:  "instruction 0: " + metadata.ErrNotApproved.Error(),
			is:   []error{metadata.ErrNotApproved},
		},
		{
			name: "account in use",
			msg:  "instruction 0: create vault: " + storage.ErrAccountAlreadyInUse.Error(),
			is:   []error{storage.ErrAccountAlreadyInUse},
		},
		{
			name: "fee",
			msg:  chain.ErrInsufficientFee.Error(),
			is:   []error{chain.ErrInsufficientFee},
		},
		{
			name: "program error carrying a sentinel",
			msg:  program.ErrInvalidVaultBalance.Error() + ": " + storage.ErrInsufficientLamports.Error(),
			is:   []error{program.ErrInvalidVaultBalance, storage.ErrInsufficientLamports},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			err := decodeError(tt.msg)
			require.EqualError(err, tt.msg)
			for _, want := range tt.is {
				require.ErrorIs(err, want)
			}
		})
	}
}

func TestDecodeErrorUnknown(t *testing.T) {
	require := require.New(t)

	for _, msg := range []string{
		"something broke",
		"Error Code: Unknown. Error Number: 1. Error Message: nope.",
	} {
		err := decodeError(msg)
		require.EqualError(err, msg)
		require.Nil(errors.Unwrap(err))
		require.NotErrorIs(err, program.ErrAlreadyInitialized)
	}
}
