// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// Transaction is rejected and no fee is charged.
	ErrNoInstructions       = errors.New("transaction has no instructions")
	ErrTooManyInstructions  = errors.New("too many instructions")
	ErrTooManySignatures    = errors.New("too many signatures")
	ErrMissingSignature     = errors.New("missing signature")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrDuplicateSignature   = errors.New("duplicate signature")
	ErrUnexpectedSignature  = errors.New("signature from account that is not a signer")
	ErrUnknownProgram       = errors.New("unknown program")
	ErrInsufficientFee      = errors.New("insufficient funds for fee")
	ErrDuplicateTransaction = errors.New("transaction already processed")
	ErrInvalidTransaction   = errors.New("invalid transaction")
	ErrDuplicateProgram     = errors.New("program already registered")

	// Instruction failed: the fee is kept and state is rolled back.
	ErrNotEnoughAccounts        = errors.New("not enough account keys given to the instruction")
	ErrInvalidInstructionData   = errors.New("invalid instruction data")
	ErrUnsupportedInstruction   = errors.New("unsupported instruction")
	ErrMissingRequiredSignature = errors.New("missing required signature for instruction")
	ErrAccountNotWritable       = errors.New("account is not writable")
)
