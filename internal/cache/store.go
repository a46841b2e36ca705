package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the entry lifetime used when Set is called without an
// explicit TTL.
const DefaultTTL = 5 * time.Minute

// entry is a stored value with its expiry metadata.
type entry[V any] struct {
	value     V
	createdAt time.Time
	ttl       time.Duration
}

// expired reports whether the entry has outlived its TTL at time now.
// Expiry is strict: an entry is live until now-createdAt exceeds ttl.
func (e entry[V]) expired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

// Store is an in-memory TTL cache. The zero value is not usable; construct
// with NewStore.
type Store[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	defaultTTL time.Duration

	// now is the clock source, replaceable in tests.
	now func() time.Time
}

// NewStore creates a store with the given default TTL. A non-positive
// defaultTTL falls back to DefaultTTL.
func NewStore[V any](defaultTTL time.Duration) *Store[V] {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Store[V]{
		entries:    make(map[string]entry[V]),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Get returns the value stored under key. An expired entry is deleted before
// reporting absence.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if e.expired(s.now()) {
		delete(s.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the store's default TTL, overwriting any
// existing entry.
func (s *Store[V]) Set(key string, value V) {
	s.SetWithTTL(key, value, s.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL. A non-positive ttl
// falls back to the store default.
func (s *Store[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[V]{value: value, createdAt: s.now(), ttl: ttl}
}

// Has reports whether a live entry exists for key, with the same lazy-expiry
// side effect as Get.
func (s *Store[V]) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Delete removes the entry for key. Returns true if an entry existed,
// whether or not it had already expired.
func (s *Store[V]) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	delete(s.entries, key)
	return ok
}

// Clear drops all entries.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry[V])
}

// Cleanup evicts every currently-expired entry and returns the number
// removed. Get and Has self-evict, so this is maintenance, not correctness.
func (s *Store[V]) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries currently held, including any that have
// expired but not yet been evicted.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// DefaultTTL returns the store's default entry lifetime.
func (s *Store[V]) DefaultTTL() time.Duration {
	return s.defaultTTL
}
