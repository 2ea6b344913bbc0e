// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"sync"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/ava-labs/storymint/state"
)

// Run several times to catch non-determinism
const numIterations = 10

type countingMetrics struct {
	blocked    atomic.Int64
	executable atomic.Int64
}

func (m *countingMetrics) RecordBlocked()    { m.blocked.Inc() }
func (m *countingMetrics) RecordExecutable() { m.executable.Inc() }

// uniqueKeys returns [n] keys no other task uses.
func uniqueKeys(n int, perm state.Permissions) state.Keys {
	s := make(state.Keys, n+1)
	for k := 0; k < n; k++ {
		s.Add(ids.GenerateTestID().String(), perm)
	}
	return s
}

type recorder struct {
	l         sync.Mutex
	completed []int
}

func (r *recorder) add(i int) int {
	r.l.Lock()
	defer r.l.Unlock()
	r.completed = append(r.completed, i)
	return len(r.completed)
}

func TestNoConflicts(t *testing.T) {
	var (
		require = require.New(t)
		r       = &recorder{}
		m       = &countingMetrics{}
		e       = New(100, 4, m)
		slow    = make(chan struct{})
	)
	for i := 0; i < 100; i++ {
		ti := i
		e.Run(uniqueKeys(i+1, state.All), func() error {
			if ti == 0 {
				<-slow
			}
			if r.add(ti) == 99 {
				close(slow)
			}
			return nil
		})
	}
	require.NoError(e.Wait())
	require.Len(r.completed, 100)
	require.Equal(0, r.completed[99])
	require.Equal(int64(100), m.executable.Load())
	require.Zero(m.blocked.Load())
}

// W->W->W->...
func TestWritesSerialize(t *testing.T) {
	for j := 0; j < numIterations; j++ {
		var (
			require  = require.New(t)
			registry = ids.GenerateTestID().String()
			r        = &recorder{}
			answer   = make([]int, 0, 50)
			e        = New(50, 4, nil)
			slow     = make(chan struct{})
		)
		for i := 0; i < 50; i++ {
			answer = append(answer, i)
			s := uniqueKeys(3, state.Write)
			s.Add(registry, state.Write)
			ti := i
			e.Run(s, func() error {
				if ti == 0 {
					<-slow
				}
				r.add(ti)
				return nil
			})
		}
		close(slow)
		require.NoError(e.Wait())
		require.Equal(answer, r.completed)
	}
}

// R->R->R->...
func TestReadsRunInParallel(t *testing.T) {
	var (
		require = require.New(t)
		shared  = ids.GenerateTestID().String()
		r       = &recorder{}
		e       = New(10, 4, nil)
		started sync.WaitGroup
		release = make(chan struct{})
	)
	// All four readers must be running at once to get past [started].
	started.Add(4)
	for i := 0; i < 4; i++ {
		ti := i
		e.Run(state.Keys{shared: state.Read}, func() error {
			started.Done()
			<-release
			r.add(ti)
			return nil
		})
	}
	started.Wait()
	close(release)
	require.NoError(e.Wait())
	require.Len(r.completed, 4)
}

// W->R->R->W
func TestWriteReadWrite(t *testing.T) {
	for j := 0; j < numIterations; j++ {
		var (
			require = require.New(t)
			shared  = ids.GenerateTestID().String()
			r       = &recorder{}
			e       = New(20, 4, nil)
			slow    = make(chan struct{})
		)
		for i := 0; i < 20; i++ {
			perm := state.Read
			if i == 0 || i == 10 {
				perm = state.Write
			}
			s := uniqueKeys(2, state.Write)
			s.Add(shared, perm)
			ti := i
			e.Run(s, func() error {
				if ti == 0 || ti == 9 {
					<-slow
				}
				r.add(ti)
				return nil
			})
		}
		close(slow)
		require.NoError(e.Wait())
		require.Equal(0, r.completed[0])
		// The second write waits on every read enqueued before it.
		require.Equal(10, r.completed[10])
		require.Len(r.completed, 20)
	}
}

func TestSharedDependencyCountedOnce(t *testing.T) {
	require := require.New(t)
	e := New(2, 2, nil)
	a, b := ids.GenerateTestID().String(), ids.GenerateTestID().String()
	r := &recorder{}

	e.Run(state.Keys{a: state.Write, b: state.Write}, func() error {
		r.add(0)
		return nil
	})
	e.Run(state.Keys{a: state.Write, b: state.Write}, func() error {
		r.add(1)
		return nil
	})
	require.NoError(e.Wait())
	require.Equal([]int{0, 1}, r.completed)
}

func TestEarlyExit(t *testing.T) {
	var (
		require = require.New(t)
		r       = &recorder{}
		e       = New(500, 4, nil)
		terr    = errors.New("uh oh")
	)
	for i := 0; i < 500; i++ {
		ti := i
		e.Run(uniqueKeys(1, state.All), func() error {
			r.add(ti)
			if ti == 200 {
				return terr
			}
			return nil
		})
	}
	require.ErrorIs(e.Wait(), terr)
	require.Less(len(r.completed), 500)
}

func TestStop(t *testing.T) {
	var (
		require = require.New(t)
		r       = &recorder{}
		e       = New(500, 4, nil)
	)
	for i := 0; i < 500; i++ {
		ti := i
		e.Run(uniqueKeys(1, state.All), func() error {
			r.add(ti)
			if ti == 200 {
				e.Stop()
			}
			return nil
		})
	}
	require.ErrorIs(e.Wait(), ErrStopped)
	require.Less(len(r.completed), 500)
}

func TestTooManyTasks(t *testing.T) {
	require := require.New(t)
	e := New(1, 1, nil)
	e.Run(state.Keys{}, func() error { return nil })
	e.Run(state.Keys{}, func() error { return nil })
	require.ErrorIs(e.Wait(), errTooManyTasks)
}
