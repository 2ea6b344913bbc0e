// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyInUse  = errors.New("account already in use")
	ErrInsufficientLamports = errors.New("insufficient lamports")
	ErrInvalidBalance       = errors.New("invalid balance")
	ErrInvalidOwner         = errors.New("account is not owned by the expected program")
	ErrInvalidAccountData   = errors.New("invalid account data")
	ErrDataTooLarge         = errors.New("account data too large")
)
