// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import "fmt"

// Error is a program failure carrying the numeric code clients match on.
type Error struct {
	Code uint32
	Name string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Error Code: %s. Error Number: %d. Error Message: %s.", e.Name, e.Code, e.Msg)
}

var (
	ErrInvalidAuthority           = &Error{6000, "InvalidAuthority", "Invalid authority"}
	ErrInvalidVaultBalance        = &Error{6001, "InvalidVaultBalance", "Invalid vault balance"}
	ErrUnauthorizedMetadataUpdate = &Error{6002, "UnauthorizedMetadataUpdate", "Unauthorized metadata update"}
	ErrMaxSupplyReached           = &Error{6003, "MaxSupplyReached", "Maximum supply reached"}
	ErrInvalidCollection          = &Error{6004, "InvalidCollection", "Invalid collection data"}
	ErrOverflow                   = &Error{6005, "Overflow", "Arithmetic overflow"}
	ErrUnderflow                  = &Error{6006, "Underflow", "Arithmetic underflow"}
	ErrInvalidUpdateAuthority     = &Error{6007, "InvalidUpdateAuthority", "Invalid update authority"}
	ErrInvalidMetadataUpdate      = &Error{6008, "InvalidMetadataUpdate", "Invalid metadata update"}
	ErrInsufficientFunds          = &Error{6009, "InsufficientFunds", "Insufficient funds for minting"}
	ErrInvalidMplCoreProgram      = &Error{6010, "InvalidMplCoreProgram", "Invalid MPL Core program address"}
	ErrInvalidOwner               = &Error{6011, "InvalidOwner", "Invalid owner signature"}
	ErrRentCalculation            = &Error{6012, "RentCalculationError", "Rent calculation failed"}
	ErrInvalidVaultInit           = &Error{6013, "InvalidVaultInit", "Invalid token vault initialization"}
	ErrTransferFailed             = &Error{6014, "TransferFailed", "System transfer failed"}
	ErrInvalidMetadataParams      = &Error{6015, "InvalidMetadataParams", "Invalid metadata parameters"}
	ErrAssetCreationFailed        = &Error{6016, "AssetCreationFailed", "Asset creation failed"}
	ErrInvalidPdaDerivation       = &Error{6017, "InvalidPdaDerivation", "Invalid PDA derivation"}
	ErrStateUpdateFailed          = &Error{6018, "StateUpdateFailed", "State update failed"}
	ErrAlreadyInitialized         = &Error{6019, "AlreadyInitialized", "Collection registry already initialized"}
	ErrInvalidCollectionAuthority = &Error{6020, "InvalidCollectionAuthority", "Invalid collection authority"}
	ErrAccountNotFound            = &Error{6021, "AccountNotFound", "Account not found"}
	ErrInvalidProgramID           = &Error{6022, "InvalidProgramID", "Invalid program id"}
)

// Errors lists every program error by code.
var Errors = []*Error{
	ErrInvalidAuthority,
	ErrInvalidVaultBalance,
	ErrUnauthorizedMetadataUpdate,
	ErrMaxSupplyReached,
	ErrInvalidCollection,
	ErrOverflow,
	ErrUnderflow,
	ErrInvalidUpdateAuthority,
	ErrInvalidMetadataUpdate,
	ErrInsufficientFunds,
	ErrInvalidMplCoreProgram,
	ErrInvalidOwner,
	ErrRentCalculation,
	ErrInvalidVaultInit,
	ErrTransferFailed,
	ErrInvalidMetadataParams,
	ErrAssetCreationFailed,
	ErrInvalidPdaDerivation,
	ErrStateUpdateFailed,
	ErrAlreadyInitialized,
	ErrInvalidCollectionAuthority,
	ErrAccountNotFound,
	ErrInvalidProgramID,
}

// ErrorByCode returns the program error with [code].
func ErrorByCode(code uint32) (*Error, bool) {
	for _, e := range Errors {
		if e.Code == code {
			return e, true
		}
	}
	return nil, false
}
