// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

const (
	Name            = "storymint"
	JSONRPCEndpoint = "/rpc"

	// MaxAirdrop bounds a single faucet request.
	MaxAirdrop uint64 = 1_000 * 1_000_000_000
)
