// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import "errors"

var (
	ErrTransactionFailed = errors.New("transaction failed")
	ErrAccountNotFound   = errors.New("account not found")
)
