// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lockmap

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/storymint/state"
)

func TestLockReleasesEntries(t *testing.T) {
	require := require.New(t)
	l := New(4)

	l.Lock("a")
	l.RLock("b")
	l.RLock("b")
	require.Equal(2, l.Locks())

	l.Unlock("a")
	l.RUnlock("b")
	require.Equal(1, l.Locks())
	l.RUnlock("b")
	require.Zero(l.Locks())
}

func TestWriterExcludesWriter(t *testing.T) {
	require := require.New(t)
	l := New(1)

	var (
		mu      sync.Mutex
		counter int
		g       errgroup.Group
	)
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			l.Lock("registry")
			defer l.Unlock("registry")

			mu.Lock()
			v := counter
			mu.Unlock()
			time.Sleep(time.Microsecond)
			mu.Lock()
			counter = v + 1
			mu.Unlock()
			return nil
		})
	}
	require.NoError(g.Wait())
	require.Equal(50, counter)
	require.Zero(l.Locks())
}

func TestReadersShare(t *testing.T) {
	require := require.New(t)
	l := New(1)

	l.RLock("k")
	done := make(chan struct{})
	go func() {
		l.RLock("k")
		l.RUnlock("k")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		require.FailNow("second reader blocked")
	}
	l.RUnlock("k")
	require.Zero(l.Locks())
}

func TestLockKeys(t *testing.T) {
	require := require.New(t)
	l := New(4)

	keys := state.Keys{"a": state.Write, "b": state.Read, "c": state.Allocate}
	unlock := l.LockKeys(keys)
	require.Equal(3, l.Locks())

	// A second reader of "b" is not blocked.
	l.RLock("b")
	l.RUnlock("b")

	acquired := make(chan struct{})
	go func() {
		release := l.LockKeys(state.Keys{"c": state.Write})
		close(acquired)
		release()
	}()
	select {
	case <-acquired:
		require.FailNow("writer acquired a held key")
	case <-time.After(10 * time.Millisecond):
	}
	unlock()
	<-acquired
}
