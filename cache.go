package memocache

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultPurgePeriod is the sweep period used when Config.PurgePeriod is unset.
const DefaultPurgePeriod = 30 * time.Second

// LoaderFunc computes the value for a key on cache miss. It must be safe for
// concurrent calls with different keys; the cache never calls it concurrently
// for the same key. A nil value with nil error is a legitimate result and is
// cached like any other.
type LoaderFunc func(key string) (interface{}, error)

type Config struct {
	// Expiration is how long an entry lives after insert or Set.
	// Zero or negative means entries never expire and no sweeper runs.
	Expiration time.Duration
	// PurgePeriod is the pause between background sweeps.
	// Zero or negative means DefaultPurgePeriod.
	PurgePeriod time.Duration
}

// Cache is a read-through memoizing cache, safe for concurrent use.
// The embedded lock covers table and ages. Entry locks are taken only after
// the cache lock has been released, so the two levels cannot deadlock.
type Cache struct {
	sync.RWMutex
	table map[string]*entry
	// ages orders entries by insert/Set time, oldest first,
	// so a sweep inspects only a prefix.
	ages   *queue
	loader LoaderFunc
	conf   Config
	log    *zap.SugaredLogger
	closed bool
}

func New(l *zap.SugaredLogger, loader LoaderFunc, conf Config) *Cache {
	if loader == nil {
		panic("nil loader")
	}
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	if conf.PurgePeriod <= 0 {
		conf.PurgePeriod = DefaultPurgePeriod
	}
	c := &Cache{
		log:    l,
		loader: loader,
		conf:   conf,
		table:  make(map[string]*entry),
		ages:   newQueue(),
	}
	if conf.Expiration > 0 {
		c.startSweeper()
	}
	return c
}

// Get returns the cached value for key, computing it via the loader on first
// request. Concurrent Gets for the same uncomputed key block until the single
// loader call finishes and then share its result; Gets for other keys do not
// wait. A loader error is returned as is and nothing is memoized, so the next
// Get for that key retries the computation.
func (c *Cache) Get(key string) (interface{}, error) {
	c.RLock()
	e, ok := c.table[key]
	c.RUnlock()
	if ok && e.done() {
		// Fast path. The value write happens-before the atomic state
		// store, so reading it without a lock is safe here.
		return e.value, nil
	}
	if !ok {
		e = c.reserve(key)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done() { // Computed while we waited for the entry lock.
		return e.value, nil
	}
	v, err := c.loader(key)
	if err != nil {
		return nil, err
	}
	e.finish(v)
	c.log.Debugf("Computed entry %s.", key)
	return v, nil
}

// reserve adds an uncomputed placeholder for key, or returns the entry some
// other goroutine inserted between our read-locked lookup and here.
func (c *Cache) reserve(key string) *entry {
	c.Lock()
	defer c.Unlock()
	defer c.checkInvariants()
	if e, ok := c.table[key]; ok {
		return e
	}
	c.log.Debugf("Add entry %s.", key)
	e := newEntry(key, c.deadline())
	c.table[key] = e
	c.ages.push(e)
	return e
}

// Set unconditionally overwrites key with value and restarts its expiry
// clock. The new entry is born computed and fully constructed before being
// published under the write lock, so no reader can observe it
// half-initialized.
func (c *Cache) Set(key string, value interface{}) {
	e := newEntry(key, c.deadline())
	e.finish(value)
	c.Lock()
	defer c.Unlock()
	defer c.checkInvariants()
	if old, ok := c.table[key]; ok {
		c.log.Debugf("Replace entry %s.", key)
		old.detach()
	}
	c.table[key] = e
	c.ages.push(e)
}

// Close stops the background sweeper. It is idempotent and safe to call
// concurrently with Get and Set, which stay usable after close. The sweeper
// notices the close on its next wake; Close does not wait for it, nor for
// in-flight computations.
func (c *Cache) Close() {
	c.Lock()
	defer c.Unlock()
	c.closed = true
}

func (c *Cache) deadline() time.Time {
	if c.conf.Expiration <= 0 {
		return time.Time{}
	}
	return time.Now().Add(c.conf.Expiration)
}

func (c *Cache) startSweeper() {
	go func() {
		ticker := time.NewTicker(c.conf.PurgePeriod)
		defer ticker.Stop()
		for range ticker.C {
			if !c.sweep() {
				return
			}
		}
	}()
}

// sweep removes expired entries from the front of the age list, stopping at
// the first unexpired one, and reports whether the sweeper should keep
// running. A panic is contained to its pass, so one bad sweep cannot silently
// disable expiry.
func (c *Cache) sweep() (alive bool) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("Sweep pass panic: %v", r)
			alive = true
		}
	}()
	c.Lock()
	defer c.Unlock()
	if c.closed {
		return false
	}
	defer c.checkInvariants()
	now := time.Now()
	for e := c.ages.head(); !c.ages.end(e) && e.expired(now); e = c.ages.head() {
		c.log.Debugf("Purge expired entry %s.", e.key)
		e.detach()
		delete(c.table, e.key)
	}
	return true
}
