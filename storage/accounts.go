// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/blocto/solana-go-sdk/common"
	"github.com/near/borsh-go"

	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/consts"
	"github.com/ava-labs/storymint/keys"
	"github.com/ava-labs/storymint/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// State
// 0x0/ (account)
//   -> [address] => {lamports, owner, data}

const accountPrefix byte = 0x0

// MaxAccountDataLen bounds the data any single account may hold.
const MaxAccountDataLen = 10 * 1024

// accountValueOverhead is lamports + owner + data length prefix.
const accountValueOverhead = consts.Uint64Len + consts.AddressLen + consts.Uint32Len

var accountChunks = mustChunks(accountValueOverhead + MaxAccountDataLen)

func mustChunks(size int) uint16 {
	k, ok := keys.Encode(nil, size)
	if !ok {
		panic("account size overflows chunks")
	}
	chunks, _ := keys.MaxChunks(k)
	return chunks
}

// Account is the record stored for every address.
type Account struct {
	Lamports uint64
	Owner    codec.Address
	Data     []byte
}

// SystemOwned returns true if the account holds no program data.
func (a *Account) SystemOwned() bool {
	return a.Owner == common.SystemProgramID
}

// [accountPrefix] + [address]
func AccountKey(addr codec.Address) []byte {
	k := make([]byte, 0, consts.ByteLen+consts.AddressLen)
	k = append(k, accountPrefix)
	k = append(k, addr.Bytes()...)
	return keys.EncodeChunks(k, accountChunks)
}

func ParseAccount(v []byte) (*Account, error) {
	var a Account
	if err := borsh.Deserialize(&a, v); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccountData, err)
	}
	return &a, nil
}

// GetAccount returns the account at [addr]. Missing accounts are returned as
// an empty system account with [exists] false.
func GetAccount(ctx context.Context, im state.Immutable, addr codec.Address) (*Account, bool, error) {
	return innerGetAccount(im.GetValue(ctx, AccountKey(addr)))
}

func innerGetAccount(v []byte, err error) (*Account, bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return &Account{Owner: common.SystemProgramID}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	a, err := ParseAccount(v)
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

// SetAccount stores [a] at [addr]. An empty system account is deleted.
func SetAccount(ctx context.Context, mu state.Mutable, addr codec.Address, a *Account) error {
	if len(a.Data) > MaxAccountDataLen {
		return fmt.Errorf("%w: %d bytes", ErrDataTooLarge, len(a.Data))
	}
	if a.Lamports == 0 && len(a.Data) == 0 && a.SystemOwned() {
		return DeleteAccount(ctx, mu, addr)
	}
	v, err := borsh.Serialize(*a)
	if err != nil {
		return err
	}
	return mu.Insert(ctx, AccountKey(addr), v)
}

func DeleteAccount(ctx context.Context, mu state.Mutable, addr codec.Address) error {
	return mu.Remove(ctx, AccountKey(addr))
}

// CreateAccount debits [lamports] plus [rent] from [payer] and creates an
// account at [addr] owned by [owner] holding [lamports] and [data]. [rent]
// leaves circulation.
func CreateAccount(
	ctx context.Context,
	mu state.Mutable,
	payer codec.Address,
	addr codec.Address,
	owner codec.Address,
	lamports uint64,
	rent uint64,
	data []byte,
) error {
	_, exists, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAccountAlreadyInUse, addr.ToBase58())
	}
	cost, err := smath.Add(lamports, rent)
	if err != nil {
		return fmt.Errorf("%w: cost overflows", ErrInvalidBalance)
	}
	if _, err := SubLamports(ctx, mu, payer, cost); err != nil {
		return err
	}
	return SetAccount(ctx, mu, addr, &Account{Lamports: lamports, Owner: owner, Data: data})
}

// CloseAccount deletes [addr] and credits its lamports to [to].
func CloseAccount(ctx context.Context, mu state.Mutable, addr codec.Address, to codec.Address) (uint64, error) {
	a, exists, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrAccountNotFound, addr.ToBase58())
	}
	if err := DeleteAccount(ctx, mu, addr); err != nil {
		return 0, err
	}
	if _, err := AddLamports(ctx, mu, to, a.Lamports); err != nil {
		return 0, err
	}
	return a.Lamports, nil
}

func GetLamports(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error) {
	a, _, err := GetAccount(ctx, im, addr)
	if err != nil {
		return 0, err
	}
	return a.Lamports, nil
}

func AddLamports(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) (uint64, error) {
	a, _, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Add(a.Lamports, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add lamports (bal=%d, addr=%s, amount=%d)",
			ErrInvalidBalance,
			a.Lamports,
			addr.ToBase58(),
			amount,
		)
	}
	a.Lamports = nbal
	return nbal, SetAccount(ctx, mu, addr, a)
}

func SubLamports(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) (uint64, error) {
	a, _, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Sub(a.Lamports, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not subtract lamports (bal=%d, addr=%s, amount=%d)",
			ErrInsufficientLamports,
			a.Lamports,
			addr.ToBase58(),
			amount,
		)
	}
	a.Lamports = nbal
	return nbal, SetAccount(ctx, mu, addr, a)
}

// Transfer moves [amount] lamports from [from] to [to].
func Transfer(ctx context.Context, mu state.Mutable, from, to codec.Address, amount uint64) error {
	if _, err := SubLamports(ctx, mu, from, amount); err != nil {
		return err
	}
	_, err := AddLamports(ctx, mu, to, amount)
	return err
}

// GetOwnedAccount returns the account at [addr], requiring it to exist and
// be owned by [owner].
func GetOwnedAccount(ctx context.Context, im state.Immutable, addr, owner codec.Address) (*Account, error) {
	a, exists, err := GetAccount(ctx, im, addr)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, addr.ToBase58())
	}
	if a.Owner != owner {
		return nil, fmt.Errorf("%w: %s is owned by %s", ErrInvalidOwner, addr.ToBase58(), a.Owner.ToBase58())
	}
	return a, nil
}

// SetData replaces the data of an existing account, keeping its lamports
// and owner.
func SetData(ctx context.Context, mu state.Mutable, addr codec.Address, data []byte) error {
	a, exists, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, addr.ToBase58())
	}
	a.Data = data
	return SetAccount(ctx, mu, addr, a)
}
