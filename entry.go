package memocache

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	uncomputed int32 = iota
	computed
)

// entry is one key's slot. Its linkage in the age list doubles as the handle
// for O(1) removal on overwrite or purge.
type entry struct {
	key string
	// expiresAt is fixed at insert or Set time. Zero means never expires.
	expiresAt time.Time

	prev, next *entry

	// mu serializes the first computation only.
	// It is never taken while the cache lock is held.
	mu sync.Mutex
	// state flips from uncomputed to computed exactly once. The plain
	// write to value happens-before the atomic store to state, and the
	// atomic load in done happens-before any read of value, so computed
	// values are readable without locks.
	state int32
	value interface{}
}

func newEntry(key string, expiresAt time.Time) *entry {
	return &entry{key: key, expiresAt: expiresAt}
}

func (e *entry) done() bool { return atomic.LoadInt32(&e.state) == computed }

// finish publishes v as the final value. Caller must hold e.mu or be the sole
// owner of a not yet published entry.
func (e *entry) finish(v interface{}) {
	e.value = v
	atomic.StoreInt32(&e.state, computed)
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && e.expiresAt.Before(now)
}
