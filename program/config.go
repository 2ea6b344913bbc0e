// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"errors"

	"github.com/ava-labs/storymint/codec"
)

var (
	errZeroLockAmount  = errors.New("lock amount must be greater than 0")
	errZeroMaxSupply   = errors.New("max supply must be greater than 0")
	errNoProgramID     = errors.New("program id is required")
	errNoAuthority     = errors.New("server and update authority are required")
	errSharedAuthority = errors.New("server and update authority must differ")
)

// Config holds the constants a deployment is built with. They never change
// while the program runs.
type Config struct {
	ProgramID codec.Address

	// ServerAuthority is the only key allowed to update asset metadata.
	ServerAuthority codec.Address
	// UpdateAuthority must sign collection initialization and becomes the
	// collection's update authority.
	UpdateAuthority codec.Address

	LockAmount uint64
	MaxSupply  uint64

	// RecordDelegation stores the collection delegate and its authority
	// record in the registry and checks mints against them.
	RecordDelegation bool
}

func NewDefaultConfig() Config {
	return Config{
		ProgramID:       ID,
		ServerAuthority: DefaultServerAuthority,
		UpdateAuthority: DefaultUpdateAuthority,
		LockAmount:      DefaultLockAmount,
		MaxSupply:       DefaultMaxSupply,
	}
}

func (c *Config) Verify() error {
	switch {
	case c.ProgramID == codec.EmptyAddress:
		return errNoProgramID
	case c.ServerAuthority == codec.EmptyAddress, c.UpdateAuthority == codec.EmptyAddress:
		return errNoAuthority
	case c.ServerAuthority == c.UpdateAuthority:
		return errSharedAuthority
	case c.LockAmount == 0:
		return errZeroLockAmount
	case c.MaxSupply == 0:
		return errZeroMaxSupply
	default:
		return nil
	}
}
