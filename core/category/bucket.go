package category

import (
	"sync"

	"pak-index/core/archive"
)

// Bucket is the materialized collection of records of one category.
// Records keep their insertion order.
type Bucket struct {
	name string

	mu      sync.RWMutex
	keys    []string
	records map[string]*archive.Record
}

func newBucket(name string) *Bucket {
	return &Bucket{name: name, records: make(map[string]*archive.Record)}
}

// Name returns the category name.
func (b *Bucket) Name() string {
	return b.name
}

// Get returns the record stored under key, or nil.
func (b *Bucket) Get(key string) *archive.Record {
	if b == nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.records[key]
}

// Len returns the number of records in the bucket.
func (b *Bucket) Len() int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.keys)
}

// Keys returns the bucket keys in insertion order.
func (b *Bucket) Keys() []string {
	if b == nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.keys...)
}

// Records returns the records in insertion order.
func (b *Bucket) Records() []*archive.Record {
	if b == nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*archive.Record, 0, len(b.keys))
	for _, k := range b.keys {
		out = append(out, b.records[k])
	}
	return out
}

// put stores record under key unless the key is taken. It reports whether the record was stored.
func (b *Bucket) put(key string, record *archive.Record) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, taken := b.records[key]; taken {
		return false
	}
	b.keys = append(b.keys, key)
	b.records[key] = record
	return true
}
