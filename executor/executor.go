// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"sync"

	"go.uber.org/atomic"

	"github.com/ava-labs/storymint/state"
)

var errTooManyTasks = errors.New("too many transactions created")

// Metrics observes how often tasks had to wait on a conflict.
type Metrics interface {
	RecordBlocked()
	RecordExecutable()
}

// Executor sequences the concurrent execution of
// tasks with arbitrary conflicts on-the-fly.
//
// Executor ensures that conflicting tasks
// are executed in the order they were queued.
// Tasks with no conflicts are executed immediately.
// Two tasks conflict when they share a key that
// at least one of them may write.
type Executor struct {
	metrics Metrics

	added int
	tasks []*task
	nodes map[string]*keyNode
	slots chan struct{}

	outstanding sync.WaitGroup

	err atomic.Error
}

// keyNode tracks the last writer of a key and the readers enqueued since.
type keyNode struct {
	writer  int
	readers []int
}

// New creates a new [Executor] that accepts up to [items] tasks and runs at
// most [concurrency] at once.
func New(items, concurrency int, metrics Metrics) *Executor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Executor{
		metrics: metrics,
		tasks:   make([]*task, items),
		nodes:   make(map[string]*keyNode, items*2),
		slots:   make(chan struct{}, concurrency),
	}
}

type task struct {
	f func() error

	l        sync.Mutex
	waiters  []*sync.WaitGroup
	executed bool
}

// Run executes [f] after all previously enqueued [f] with
// conflicting [conflicts] are executed.
//
// Run is not safe to call concurrently.
func (e *Executor) Run(conflicts state.Keys, f func() error) {
	if e.added >= len(e.tasks) {
		e.err.CompareAndSwap(nil, errTooManyTasks)
		return
	}

	id := e.added
	e.added++
	t := &task{f: f}
	e.tasks[id] = t
	e.outstanding.Add(1)

	// Collect the distinct tasks we depend on.
	deps := make(map[int]struct{})
	for k, perm := range conflicts {
		n, ok := e.nodes[k]
		if !ok {
			n = &keyNode{writer: -1}
			e.nodes[k] = n
		}
		if n.writer >= 0 {
			deps[n.writer] = struct{}{}
		}
		if !perm.Writes() {
			n.readers = append(n.readers, id)
			continue
		}
		for _, r := range n.readers {
			deps[r] = struct{}{}
		}
		n.writer = id
		n.readers = nil
	}

	wg := &sync.WaitGroup{}
	for dep := range deps {
		dt := e.tasks[dep]
		dt.l.Lock()
		if !dt.executed {
			wg.Add(1)
			dt.waiters = append(dt.waiters, wg)
		}
		dt.l.Unlock()
	}
	if e.metrics != nil {
		if len(deps) > 0 {
			e.metrics.RecordBlocked()
		} else {
			e.metrics.RecordExecutable()
		}
	}

	go func() {
		// Block until our dependencies have been executed
		wg.Wait()

		// Ensure we unblock our dependents
		defer func() {
			t.l.Lock()
			for _, w := range t.waiters {
				w.Done()
			}
			t.waiters = nil
			t.executed = true
			t.f = nil
			t.l.Unlock()
			e.outstanding.Done()
		}()

		// Stop early if executor is stopped
		if e.err.Load() != nil {
			return
		}

		e.slots <- struct{}{}
		defer func() { <-e.slots }()
		if e.err.Load() != nil {
			return
		}

		if err := t.f(); err != nil {
			e.err.CompareAndSwap(nil, err)
		}
	}()
}

func (e *Executor) Stop() {
	e.err.CompareAndSwap(nil, ErrStopped)
}

// Wait returns as soon as all enqueued [f] are executed.
//
// You should not call [Run] after [Wait] is called.
func (e *Executor) Wait() error {
	e.outstanding.Wait()
	return e.err.Load()
}
