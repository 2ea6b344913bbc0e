// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	_ database.Database = (*Database)(nil)
	_ database.Batch    = (*batch)(nil)
	_ database.Iterator = (*iterator)(nil)
)

type Config struct {
	CacheSize                   int64 `yaml:"cacheSize"`
	BytesPerSync                int   `yaml:"bytesPerSync"`
	WALBytesPerSync             int   `yaml:"walBytesPerSync"`
	MemTableStopWritesThreshold int   `yaml:"memTableStopWritesThreshold"`
	MemTableSize                int   `yaml:"memTableSize"`
	MaxOpenFiles                int   `yaml:"maxOpenFiles"`
	ConcurrentCompactions       int   `yaml:"concurrentCompactions"`
	Sync                        bool  `yaml:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   64 * 1024 * 1024,
		BytesPerSync:                1024 * 1024,
		WALBytesPerSync:             1024 * 1024,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                16 * 1024 * 1024,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database is an on-disk key-value store. Account records are written
// through it when the node is configured with a data directory.
type Database struct {
	db      *pebble.DB
	metrics *metrics
	writeOp *pebble.WriteOptions

	closing chan struct{}
	closed  sync.Once
	wg      sync.WaitGroup
}

// New opens (or creates) the database at [file]. The returned registry
// holds the database's metrics.
func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d := &Database{
		metrics: metrics,
		writeOp: &pebble.WriteOptions{Sync: cfg.Sync},
		closing: make(chan struct{}),
	}
	cache := pebble.NewCache(cfg.CacheSize)
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:                       cache,
		BytesPerSync:                cfg.BytesPerSync,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                uint64(cfg.MemTableSize),
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
		EventListener: &pebble.EventListener{
			CompactionBegin: d.onCompactionBegin,
			CompactionEnd:   d.onCompactionEnd,
			WriteStallBegin: d.onWriteStallBegin,
			WriteStallEnd:   d.onWriteStallEnd,
		},
	}
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.collectMetrics()
	}()
	return d, registry, nil
}

func (db *Database) isClosed() bool {
	select {
	case <-db.closing:
		return true
	default:
		return false
	}
}

func (db *Database) Close() error {
	err := database.ErrClosed
	db.closed.Do(func() {
		close(db.closing)
		db.wg.Wait()
		err = db.db.Close()
	})
	return err
}

func (db *Database) HealthCheck(context.Context) (interface{}, error) {
	if db.isClosed() {
		return nil, database.ErrClosed
	}
	return nil, nil
}

func (db *Database) Has(key []byte) (bool, error) {
	_, err := db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (db *Database) Get(key []byte) ([]byte, error) {
	if db.isClosed() {
		return nil, database.ErrClosed
	}
	start := time.Now()
	data, closer, err := db.db.Get(key)
	db.metrics.getLatency.Observe(float64(time.Since(start)))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return slices.Clone(data), nil
}

func (db *Database) Put(key []byte, value []byte) error {
	if db.isClosed() {
		return database.ErrClosed
	}
	db.metrics.puts.Inc()
	return db.db.Set(key, value, db.writeOp)
}

func (db *Database) Delete(key []byte) error {
	if db.isClosed() {
		return database.ErrClosed
	}
	db.metrics.deletes.Inc()
	return db.db.Delete(key, db.writeOp)
}

func (db *Database) Compact(start []byte, limit []byte) error {
	if db.isClosed() {
		return database.ErrClosed
	}
	if limit == nil {
		iter, err := db.db.NewIter(&pebble.IterOptions{})
		if err != nil {
			return err
		}
		if iter.Last() {
			limit = append(slices.Clone(iter.Key()), 0)
		}
		if err := iter.Close(); err != nil {
			return err
		}
		if limit == nil {
			return nil
		}
	}
	return db.db.Compact(start, limit, true)
}

func (db *Database) NewBatch() database.Batch {
	return &batch{db: db, b: db.db.NewBatch()}
}

func (db *Database) NewIterator() database.Iterator {
	return db.NewIteratorWithStartAndPrefix(nil, nil)
}

func (db *Database) NewIteratorWithStart(start []byte) database.Iterator {
	return db.NewIteratorWithStartAndPrefix(start, nil)
}

func (db *Database) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	return db.NewIteratorWithStartAndPrefix(nil, prefix)
}

func (db *Database) NewIteratorWithStartAndPrefix(start, prefix []byte) database.Iterator {
	if db.isClosed() {
		return &database.IteratorError{Err: database.ErrClosed}
	}
	lower := prefix
	if len(start) > 0 && (lower == nil || string(start) > string(lower)) {
		lower = start
	}
	iter, err := db.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return &database.IteratorError{Err: err}
	}
	return &iterator{i: iter}
}

// prefixUpperBound returns the smallest key greater than every key with
// [prefix], or nil if there is none.
func prefixUpperBound(prefix []byte) []byte {
	upper := slices.Clone(prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		upper[i]++
		if upper[i] != 0 {
			return upper[:i+1]
		}
	}
	return nil
}

type op struct {
	key    []byte
	value  []byte
	delete bool
}

type batch struct {
	db   *Database
	b    *pebble.Batch
	ops  []op
	size int
}

func (b *batch) Put(key, value []byte) error {
	b.ops = append(b.ops, op{key: slices.Clone(key), value: slices.Clone(value)})
	b.size += len(key) + len(value)
	return b.b.Set(key, value, nil)
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, op{key: slices.Clone(key), delete: true})
	b.size += len(key)
	return b.b.Delete(key, nil)
}

func (b *batch) Size() int {
	return b.size
}

func (b *batch) Write() error {
	if b.db.isClosed() {
		return database.ErrClosed
	}
	b.db.metrics.batchWrites.Inc()
	b.db.metrics.batchedBytes.Add(float64(b.size))
	return b.b.Commit(b.db.writeOp)
}

func (b *batch) Reset() {
	b.b.Reset()
	b.ops = b.ops[:0]
	b.size = 0
}

func (b *batch) Replay(w database.KeyValueWriterDeleter) error {
	for _, o := range b.ops {
		var err error
		if o.delete {
			err = w.Delete(o.key)
		} else {
			err = w.Put(o.key, o.value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *batch) Inner() database.Batch {
	return b
}

type iterator struct {
	i           *pebble.Iterator
	initialized bool
	released    bool
	err         error

	key   []byte
	value []byte
}

func (it *iterator) Next() bool {
	if it.released || it.err != nil {
		return false
	}
	var valid bool
	if !it.initialized {
		valid = it.i.First()
		it.initialized = true
	} else {
		valid = it.i.Next()
	}
	if !valid {
		it.key, it.value = nil, nil
		it.err = it.i.Error()
		return false
	}
	it.key = slices.Clone(it.i.Key())
	it.value = slices.Clone(it.i.Value())
	return true
}

func (it *iterator) Error() error {
	if it.released {
		return database.ErrClosed
	}
	return it.err
}

func (it *iterator) Key() []byte {
	return it.key
}

func (it *iterator) Value() []byte {
	return it.value
}

func (it *iterator) Release() {
	if it.released {
		return
	}
	it.released = true
	_ = it.i.Close()
}
