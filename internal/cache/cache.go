// Package cache wraps a process-wide TTL store for rendered list
// responses. Invalidation is deliberately coarse: any write that can
// change a cached list flushes the whole store. Stale reads are never
// acceptable; false cache misses are.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/alucardavid/samplemed-blog/internal/metrics"
)

// Flusher is the write-side view of the store. Services depend on this
// instead of the full store so they can only invalidate, never read.
type Flusher interface {
	Flush()
}

// Store is an explicitly injected cache handle with process-wide
// lifetime. It is initialized at startup and never torn down mid-process.
type Store struct {
	c   *gocache.Cache
	ttl time.Duration
}

// New creates a Store whose entries expire after ttl.
func New(ttl time.Duration) *Store {
	return &Store{
		c:   gocache.New(ttl, 2*ttl),
		ttl: ttl,
	}
}

// Get returns the cached bytes for key, if present and unexpired.
func (s *Store) Get(key string) ([]byte, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// Set stores value under key with the default TTL.
func (s *Store) Set(key string, value []byte) {
	s.c.Set(key, value, s.ttl)
}

// Flush drops every entry. Called after any successful write so list
// reads are never stale.
func (s *Store) Flush() {
	s.c.Flush()
	metrics.CacheFlushesTotal.Inc()
}

// TTL reports the store's expiration window.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
