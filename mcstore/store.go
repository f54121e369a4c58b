// Package mcstore adapts a memcached cluster as the backing store behind a
// memocache.Cache.
package mcstore

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/facebookgo/stackerr"
	"go.uber.org/zap"
)

// Store reads and writes values through a memcached client.
// Store.Load satisfies memocache.LoaderFunc.
type Store struct {
	client *memcache.Client
	log    *zap.SugaredLogger
}

func New(l *zap.SugaredLogger, servers ...string) *Store {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	return &Store{
		client: memcache.New(servers...),
		log:    l,
	}
}

// Load fetches key from memcached. A miss is returned as a nil value with nil
// error: absence is a legitimate cacheable result, and caching it shields the
// backing store from repeated lookups of keys that do not exist.
func (s *Store) Load(key string) (interface{}, error) {
	it, err := s.client.Get(key)
	if err == memcache.ErrCacheMiss {
		s.log.Debugf("Miss for key %s.", key)
		return nil, nil
	}
	if err != nil {
		return nil, stackerr.Wrap(err)
	}
	return it.Value, nil
}

// Put writes key through to memcached.
func (s *Store) Put(key string, value []byte) error {
	return stackerr.Wrap(s.client.Set(&memcache.Item{Key: key, Value: value}))
}
