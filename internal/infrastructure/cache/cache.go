// Package cache holds the in-process resource cache. Entries are keyed by
// (resource, user, shape) strings built in the domain package; values are
// the raw JSON last returned by the upstream backend.
package cache

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/siteflow/dashboard-gateway/internal/api/metrics"
)

const (
	defaultTTL       = 30 * time.Second
	defaultRetention = 10 * time.Minute
	janitorInterval  = time.Minute
)

// entry is one cached slot. seq numbers implement per-key issue ordering:
// nextSeq counts issued fetches, appliedSeq the newest applied response,
// and barrier the issue counter at the last invalidation — responses for
// fetches begun before an invalidation are discarded on completion.
type entry struct {
	value      json.RawMessage
	fetchedAt  time.Time
	lastAccess time.Time
	fresh      bool
	nextSeq    uint64
	appliedSeq uint64
	barrier    uint64
}

// Store is a key-addressed cache with TTL freshness, stale-while-revalidate
// retention, per-key issue-order application and prefix invalidation.
// Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
	stopCh  chan struct{}
	stopped sync.Once
}

// Options tunes the store. Zero values pick the defaults.
type Options struct {
	// TTL is how long an applied value counts as fresh.
	TTL time.Duration
	// Retention is how long an untouched entry survives before the janitor
	// evicts it.
	Retention time.Duration
}

// New creates a Store and starts its janitor goroutine. Call Close to stop
// it.
func New(opts Options) *Store {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	retention := opts.Retention
	if retention <= 0 {
		retention = defaultRetention
	}

	s := &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	go s.janitor(retention)
	return s
}

// Close stops the janitor. Idempotent.
func (s *Store) Close() {
	s.stopped.Do(func() { close(s.stopCh) })
}

// Fresh returns the cached value when it is applied, unexpired and not
// invalidated.
func (s *Store) Fresh(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	e.lastAccess = s.now()
	if !e.fresh || s.now().Sub(e.fetchedAt) >= s.ttl {
		return nil, false
	}
	return e.value, true
}

// Stale returns the last applied value regardless of freshness. Used to
// serve stale-while-revalidate when a refetch fails.
func (s *Store) Stale(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.value == nil {
		return nil, false
	}
	e.lastAccess = s.now()
	return e.value, true
}

// Begin registers an outgoing fetch for the key and returns its sequence
// number, which must be handed back to Complete.
func (s *Store) Begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.ensure(key)
	e.nextSeq++
	return e.nextSeq
}

// Complete applies a fetch response. It reports false — and leaves the
// entry untouched — when a newer response has already been applied or when
// the fetch was issued before the last invalidation. The discarded
// response stays valid for the caller that fetched it; it just must not
// become the cache's view of the key.
func (s *Store) Complete(key string, seq uint64, value json.RawMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.ensure(key)
	if seq <= e.appliedSeq || seq <= e.barrier {
		return false
	}
	e.value = value
	e.appliedSeq = seq
	e.fetchedAt = s.now()
	e.lastAccess = e.fetchedAt
	e.fresh = true
	return true
}

// Invalidate marks every entry under the prefix stale and fences off all
// in-flight fetches issued before this call.
func (s *Store) Invalidate(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if strings.HasPrefix(key, prefix) {
			e.fresh = false
			e.barrier = e.nextSeq
		}
	}
}

// Len reports the current entry count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) ensure(key string) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{lastAccess: s.now()}
		s.entries[key] = e
		metrics.CacheEntries.Set(float64(len(s.entries)))
	}
	return e
}

// janitor evicts entries untouched for longer than the retention window.
func (s *Store) janitor(retention time.Duration) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			cutoff := s.now().Add(-retention)
			s.mu.Lock()
			for key, e := range s.entries {
				if e.lastAccess.Before(cutoff) {
					delete(s.entries, key)
				}
			}
			metrics.CacheEntries.Set(float64(len(s.entries)))
			s.mu.Unlock()
		}
	}
}
