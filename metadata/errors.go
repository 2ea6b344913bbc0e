// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metadata

import "errors"

var (
	ErrNotApproved         = errors.New("Neither the asset or any plugins have approved this operation") //nolint:stylecheck
	ErrAssetAlreadyExists  = errors.New("asset already exists")
	ErrAssetNotFound       = errors.New("asset not found")
	ErrCollectionNotFound  = errors.New("collection not found")
	ErrCollectionMismatch  = errors.New("asset is not a member of the collection")
	ErrImmutable           = errors.New("asset is immutable")
	ErrInvalidAccountKey   = errors.New("account is not of the expected kind")
	ErrNameTooLong         = errors.New("name too long")
	ErrURITooLong          = errors.New("uri too long")
	ErrMissingNewOwner     = errors.New("new owner is required")
	ErrCollectionSizeLimit = errors.New("collection size overflows")
)
