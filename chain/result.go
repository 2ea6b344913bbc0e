// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"

	"github.com/near/borsh-go"
)

// Result is the outcome of a transaction that paid its fee. A transaction
// whose instructions failed still has a Result with [Success] false.
type Result struct {
	ID      string
	Success bool
	Error   string
	Logs    []string
	Fee     uint64
	Changes int

	// Err is the instruction error. It is not persisted: results read back
	// from disk only carry [Error].
	Err error
}

type resultRecord struct {
	ID      string
	Success bool
	Error   string
	Logs    []string
	Fee     uint64
	Changes uint32
}

func (r *Result) Marshal() ([]byte, error) {
	return borsh.Serialize(resultRecord{
		ID:      r.ID,
		Success: r.Success,
		Error:   r.Error,
		Logs:    r.Logs,
		Fee:     r.Fee,
		Changes: uint32(r.Changes),
	})
}

func UnmarshalResult(b []byte) (*Result, error) {
	var rec resultRecord
	if err := borsh.Deserialize(&rec, b); err != nil {
		return nil, err
	}
	r := &Result{
		ID:      rec.ID,
		Success: rec.Success,
		Error:   rec.Error,
		Logs:    rec.Logs,
		Fee:     rec.Fee,
		Changes: int(rec.Changes),
	}
	if len(r.Error) > 0 {
		r.Err = errors.New(r.Error)
	}
	return r, nil
}
