package cache

import (
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"
)

// Stats are cumulative counters since the cache was created.
type Stats struct {
	Keys   int   `json:"keys"`
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache is an in-memory TTL store. Values are copied on the way in and out,
// so callers never share the stored bytes.
type Cache struct {
	mu         sync.Mutex
	items      map[string]entry
	defaultTTL time.Duration
	hits       int64
	misses     int64
	now        func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a cache whose entries live for defaultTTL unless Set says otherwise.
func New(defaultTTL time.Duration, opts ...Option) *Cache {
	c := &Cache{
		items:      make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultTTL returns the TTL applied when Set is called with ttl <= 0.
func (c *Cache) DefaultTTL() time.Duration { return c.defaultTTL }

// Get returns a copy of the value stored under key. Missing and expired keys
// count as misses.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.items, key)
		c.misses++
		return nil, false
	}
	c.hits++
	return clone(e.value), true
}

// Set stores value under key, replacing any existing entry.
func (c *Cache) Set(key string, value []byte, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	c.items[key] = entry{value: clone(value), expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return true
}

// Delete removes the given keys and returns how many were present.
func (c *Cache) Delete(keys ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, k := range keys {
		if _, ok := c.items[k]; ok {
			delete(c.items, k)
			n++
		}
	}
	return n
}

// Flush drops every entry. Hit and miss counters are kept.
func (c *Cache) Flush() {
	c.mu.Lock()
	c.items = make(map[string]entry)
	c.mu.Unlock()
}

// Keys returns the unexpired keys in sorted order.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	now := c.now()
	keys := make([]string, 0, len(c.items))
	for k, e := range c.items {
		if now.Before(e.expiresAt) {
			keys = append(keys, k)
		}
	}
	c.mu.Unlock()
	sort.Strings(keys)
	return keys
}

// Purge removes expired entries and returns how many were dropped.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := 0
	for k, e := range c.items {
		if !now.Before(e.expiresAt) {
			delete(c.items, k)
			n++
		}
	}
	return n
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	keys := 0
	for _, e := range c.items {
		if now.Before(e.expiresAt) {
			keys++
		}
	}
	return Stats{Keys: keys, Hits: c.hits, Misses: c.misses}
}

// LogStats writes a stats line when the cache holds anything and reports
// whether it did.
func (c *Cache) LogStats() bool {
	s := c.Stats()
	if s.Keys == 0 {
		return false
	}
	log.Printf("[INFO] cache stats: keys=%d hits=%d misses=%d hitRate=%.1f%%",
		s.Keys, s.Hits, s.Misses, s.HitRate()*100)
	return true
}

// GetJSON decodes the value under key into dst. A value that no longer
// decodes is treated as a miss.
func GetJSON(c *Cache, key string, dst any) bool {
	data, ok := c.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("[WARN] cache decode %s: %v", key, err)
		return false
	}
	return true
}

// SetJSON encodes v and stores it under key.
func SetJSON(c *Cache, key string, v any, ttl time.Duration) bool {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARN] cache encode %s: %v", key, err)
		return false
	}
	return c.Set(key, data, ttl)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
