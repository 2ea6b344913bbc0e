// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

// Rules are the economic and size parameters of the runtime.
type Rules interface {
	GetLamportsPerSignature() uint64
	GetMaxInstructions() int
	GetMaxSignatures() int

	// Rent returns the one time, non-refundable charge for creating an
	// account holding [dataLen] bytes.
	Rent(dataLen int) uint64
}

// DefaultRules mirror the rent exemption parameters of a Solana cluster.
type DefaultRules struct {
	LamportsPerSignature uint64 `yaml:"lamportsPerSignature"`
	LamportsPerByteYear  uint64 `yaml:"lamportsPerByteYear"`
	ExemptionYears       uint64 `yaml:"exemptionYears"`
	AccountOverhead      uint64 `yaml:"accountOverhead"`
	MaxInstructions      int    `yaml:"maxInstructions"`
	MaxSignatures        int    `yaml:"maxSignatures"`
}

var _ Rules = (*DefaultRules)(nil)

func NewDefaultRules() *DefaultRules {
	return &DefaultRules{
		LamportsPerSignature: 5_000,
		LamportsPerByteYear:  3_480,
		ExemptionYears:       2,
		AccountOverhead:      128,
		MaxInstructions:      16,
		MaxSignatures:        8,
	}
}

func (r *DefaultRules) GetLamportsPerSignature() uint64 {
	return r.LamportsPerSignature
}

func (r *DefaultRules) GetMaxInstructions() int {
	return r.MaxInstructions
}

func (r *DefaultRules) GetMaxSignatures() int {
	return r.MaxSignatures
}

func (r *DefaultRules) Rent(dataLen int) uint64 {
	return (r.AccountOverhead + uint64(dataLen)) * r.LamportsPerByteYear * r.ExemptionYears
}

// Fee is the fee charged for a transaction carrying [signatures].
func Fee(r Rules, signatures int) uint64 {
	return r.GetLamportsPerSignature() * uint64(signatures)
}
