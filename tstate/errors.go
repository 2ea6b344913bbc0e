// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import "errors"

var (
	ErrInvalidKeyOrPermission = errors.New("key is not in scope or does not have required permission")
	ErrInvalidKeyValue        = errors.New("value is too large for key")
	ErrAllocationDisabled     = errors.New("allocation is disabled")
)
