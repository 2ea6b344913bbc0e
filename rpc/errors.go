// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import "errors"

var (
	ErrTransactionMissing = errors.New("transaction missing")
	ErrAirdropTooLarge    = errors.New("airdrop too large")
	ErrAirdropDisabled    = errors.New("airdrop disabled")
)
