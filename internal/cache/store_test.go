package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration) (*Store[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore[string](ttl)
	s.now = clock.Now
	return s, clock
}

func TestStoreGetSet(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("k", "v")
	got, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
	assert.True(t, s.Has("k"))

	t.Run("Overwrite", func(t *testing.T) {
		s.Set("k", "v2")
		got, ok := s.Get("k")
		require.True(t, ok)
		assert.Equal(t, "v2", got)
	})
}

func TestStoreLazyExpiry(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	s.Set("k", "v")

	// At exactly the TTL boundary the entry is still live (strict >).
	clock.Advance(time.Minute)
	assert.True(t, s.Has("k"))

	clock.Advance(time.Nanosecond)
	_, ok := s.Get("k")
	assert.False(t, ok)

	// The expired entry was evicted by the read, not merely hidden.
	assert.Equal(t, 0, s.Len())
}

func TestStoreHasEvictsExpired(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	s.Set("k", "v")
	clock.Advance(2 * time.Minute)

	assert.False(t, s.Has("k"))
	assert.Equal(t, 0, s.Len())
}

func TestStorePerEntryTTL(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	s.Set("short", "a")
	s.SetWithTTL("long", "b", time.Hour)

	clock.Advance(10 * time.Minute)
	assert.False(t, s.Has("short"))
	assert.True(t, s.Has("long"))
}

func TestStoreDelete(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	s.Set("k", "v")

	assert.True(t, s.Delete("k"))
	assert.False(t, s.Delete("k"))
	assert.False(t, s.Has("k"))
}

func TestStoreClear(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	s.Set("a", "1")
	s.Set("b", "2")

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("a"))
}

func TestStoreCleanup(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	s.Set("old", "1")
	clock.Advance(2 * time.Minute)
	s.Set("fresh", "2")

	removed := s.Cleanup()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Has("fresh"))
}

func TestStoreDefaultTTLFallback(t *testing.T) {
	s := NewStore[int](0)
	assert.Equal(t, DefaultTTL, s.DefaultTTL())

	t.Run("NonPositiveSetTTL", func(t *testing.T) {
		s, clock := newTestStore(time.Minute)
		s.SetWithTTL("k", "v", -1)
		clock.Advance(30 * time.Second)
		assert.True(t, s.Has("k"))
		clock.Advance(31 * time.Second)
		assert.False(t, s.Has("k"))
	})
}
