// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "runtime"

type Config struct {
	// Concurrency bounds how many transactions of a batch execute at once.
	Concurrency int `yaml:"concurrency"`

	// ResultCacheSize is the number of recent results kept in memory.
	ResultCacheSize int `yaml:"resultCacheSize"`
}

func NewDefaultConfig() Config {
	return Config{
		Concurrency:     runtime.NumCPU(),
		ResultCacheSize: 4_096,
	}
}
