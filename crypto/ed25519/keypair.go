// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/blocto/solana-go-sdk/types"

	"github.com/ava-labs/storymint/crypto"
)

// ParseKeypair decodes a solana-keygen keypair: a JSON array of the 64
// private key bytes.
func ParseKeypair(b []byte) (types.Account, error) {
	var raw []int
	if err := json.Unmarshal(b, &raw); err != nil {
		return types.Account{}, fmt.Errorf("%w: %s", crypto.ErrInvalidKeypair, err)
	}
	if len(raw) != PrivateKeyLen {
		return types.Account{}, fmt.Errorf("%w: want %d bytes, got %d", crypto.ErrInvalidKeypair, PrivateKeyLen, len(raw))
	}
	key := make([]byte, PrivateKeyLen)
	for i, v := range raw {
		if v < 0 || v > 255 {
			return types.Account{}, fmt.Errorf("%w: byte out of range at %d: %d", crypto.ErrInvalidKeypair, i, v)
		}
		key[i] = byte(v)
	}
	acct, err := types.AccountFromBytes(key)
	if err != nil {
		return types.Account{}, fmt.Errorf("%w: %s", crypto.ErrInvalidPrivateKey, err)
	}
	return acct, nil
}

// MarshalKeypair encodes [acct] in the solana-keygen format.
func MarshalKeypair(acct types.Account) ([]byte, error) {
	raw := make([]int, len(acct.PrivateKey))
	for i, v := range acct.PrivateKey {
		raw[i] = int(v)
	}
	return json.Marshal(raw)
}

func LoadKeypair(path string) (types.Account, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return types.Account{}, err
	}
	return ParseKeypair(b)
}

func SaveKeypair(path string, acct types.Account) error {
	b, err := MarshalKeypair(acct)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, perms.ReadWrite)
}
