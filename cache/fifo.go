// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cache

import (
	"errors"
	"sync"

	"github.com/ava-labs/avalanchego/utils/buffer"
)

var errInvalidMaxSize = errors.New("maxSize must be greater than 0")

// FIFO is a bounded cache that evicts the oldest inserted key once full.
type FIFO[K comparable, V any] struct {
	l sync.RWMutex

	buffer buffer.Deque[K]
	m      map[K]V
	limit  int
}

// NewFIFO creates a new FIFO cache of [limit] elements.
func NewFIFO[K comparable, V any](limit int) (*FIFO[K, V], error) {
	if limit <= 0 {
		return nil, errInvalidMaxSize
	}
	return &FIFO[K, V]{
		buffer: buffer.NewUnboundedDeque[K](limit + 1),
		m:      make(map[K]V, limit),
		limit:  limit,
	}, nil
}

// Put stores [val] under [key] and returns true if [key] was already
// present. Overwriting a key does not change its eviction order.
func (f *FIFO[K, V]) Put(key K, val V) bool {
	f.l.Lock()
	defer f.l.Unlock()

	_, exists := f.m[key]
	if !exists {
		if f.buffer.Len() >= f.limit {
			oldest, _ := f.buffer.PopLeft()
			delete(f.m, oldest)
		}
		f.buffer.PushRight(key)
	}
	f.m[key] = val
	return exists
}

func (f *FIFO[K, V]) Get(key K) (V, bool) {
	f.l.RLock()
	defer f.l.RUnlock()

	v, ok := f.m[key]
	return v, ok
}

func (f *FIFO[K, V]) Len() int {
	f.l.RLock()
	defer f.l.RUnlock()

	return len(f.m)
}
