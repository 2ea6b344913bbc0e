// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/near/borsh-go"

	"github.com/ava-labs/storymint/consts"
)

// Discriminator tags account data and instruction data so that one record
// type can never be decoded as another.
type Discriminator [consts.DiscriminatorLen]byte

func discriminator(namespace, name string) Discriminator {
	h := sha256.Sum256([]byte(namespace + ":" + name))
	var d Discriminator
	copy(d[:], h[:consts.DiscriminatorLen])
	return d
}

// AccountDiscriminator returns sha256("account:"+name)[:8].
func AccountDiscriminator(name string) Discriminator {
	return discriminator("account", name)
}

// InstructionDiscriminator returns sha256("global:"+name)[:8].
func InstructionDiscriminator(name string) Discriminator {
	return discriminator("global", name)
}

// EncodeAccount prefixes the borsh encoding of [v] with the discriminator for
// [name].
func EncodeAccount(name string, v any) ([]byte, error) {
	d := AccountDiscriminator(name)
	return encodeTagged(d[:], v)
}

// DecodeAccount checks [data] carries the [name] discriminator and decodes the
// remainder into [out], which must be a pointer.
func DecodeAccount(name string, data []byte, out any) error {
	if len(data) < consts.DiscriminatorLen {
		return fmt.Errorf("%w: account data is %d bytes", ErrInsufficientLength, len(data))
	}
	d := AccountDiscriminator(name)
	if !bytes.Equal(d[:], data[:consts.DiscriminatorLen]) {
		return fmt.Errorf("%w: not a %s account", ErrInvalidDiscriminator, name)
	}
	if err := borsh.Deserialize(out, data[consts.DiscriminatorLen:]); err != nil {
		return fmt.Errorf("%w: %s", ErrInsufficientLength, err)
	}
	return nil
}

// EncodeInstruction prefixes the borsh encoding of [args] with the
// instruction discriminator for [name]. A nil [args] yields only the tag.
func EncodeInstruction(name string, args any) ([]byte, error) {
	d := InstructionDiscriminator(name)
	return encodeTagged(d[:], args)
}

// SplitInstruction returns the discriminator and argument bytes of [data].
func SplitInstruction(data []byte) (Discriminator, []byte, error) {
	var d Discriminator
	if len(data) < consts.DiscriminatorLen {
		return d, nil, fmt.Errorf("%w: instruction data is %d bytes", ErrInsufficientLength, len(data))
	}
	copy(d[:], data)
	return d, data[consts.DiscriminatorLen:], nil
}

// DecodeArgs decodes borsh encoded instruction arguments into [out].
func DecodeArgs(args []byte, out any) error {
	if err := borsh.Deserialize(out, args); err != nil {
		return fmt.Errorf("%w: %s", ErrInsufficientLength, err)
	}
	return nil
}

func encodeTagged(tag []byte, v any) ([]byte, error) {
	if v == nil {
		return append([]byte{}, tag...), nil
	}
	body, err := borsh.Serialize(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(tag)+len(body))
	out = append(out, tag...)
	return append(out, body...), nil
}
