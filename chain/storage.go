// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/mr-tron/base58"

	"github.com/ava-labs/storymint/consts"
)

// State
// 0x0/ (account) is owned by [storage]
// 0x1/ (result)
//   -> [signature] => result
// 0x2/ (genesis)
//   -> nil => applied

const (
	resultPrefix  byte = 0x1
	genesisPrefix byte = 0x2
)

var genesisKey = []byte{genesisPrefix}

func ResultKey(id string) ([]byte, error) {
	sig, err := base58.Decode(id)
	if err != nil {
		return nil, err
	}
	k := make([]byte, 0, consts.ByteLen+len(sig))
	k = append(k, resultPrefix)
	return append(k, sig...), nil
}

func getResult(db database.KeyValueReader, id string) (*Result, bool, error) {
	k, err := ResultKey(id)
	if err != nil {
		return nil, false, err
	}
	v, err := db.Get(k)
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	r, err := UnmarshalResult(v)
	if err != nil {
		return nil, false, err
	}
	return r, true, nil
}

func hasResult(db database.KeyValueReader, id string) (bool, error) {
	k, err := ResultKey(id)
	if err != nil {
		return false, err
	}
	return db.Has(k)
}

func putResult(w database.KeyValueWriter, r *Result) error {
	k, err := ResultKey(r.ID)
	if err != nil {
		return err
	}
	v, err := r.Marshal()
	if err != nil {
		return err
	}
	return w.Put(k, v)
}
