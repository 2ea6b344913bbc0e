// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// AddressLen is the length of an ed25519 public key, which is also the
	// length of every account address and program-derived address.
	AddressLen = 32
	// DiscriminatorLen is the length of an account or instruction tag.
	DiscriminatorLen = 8
	SignatureLen     = 64
	PrivateKeyLen    = 64

	ByteLen   = 1
	BoolLen   = 1
	Uint16Len = 2
	IntLen    = 4
	Uint32Len = 4
	Uint64Len = 8

	MaxUint8  = ^uint8(0)
	MaxUint16 = ^uint16(0)
	MaxUint   = ^uint(0)
	MaxInt    = int(MaxUint >> 1)
	MaxUint64 = ^uint64(0)
)
