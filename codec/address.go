// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/mr-tron/base58"

	"github.com/ava-labs/storymint/consts"
)

// Address is the 32 byte key of an account. It is the same type the Solana
// SDK uses so instructions built here can be sent to a real cluster.
type Address = common.PublicKey

var EmptyAddress = Address{}

// ParseAddress decodes a base58 address, rejecting anything that is not
// exactly [consts.AddressLen] bytes.
func ParseAddress(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return EmptyAddress, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	if len(b) != consts.AddressLen {
		return EmptyAddress, fmt.Errorf("%w: expected %d bytes but got %d", ErrInvalidAddress, consts.AddressLen, len(b))
	}
	return common.PublicKeyFromBytes(b), nil
}

// MustParseAddress is ParseAddress for compile-time constants.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AddressFromBytes copies [b] into an Address.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != consts.AddressLen {
		return EmptyAddress, fmt.Errorf("%w: expected %d bytes but got %d", ErrInsufficientLength, consts.AddressLen, len(b))
	}
	return common.PublicKeyFromBytes(b), nil
}
