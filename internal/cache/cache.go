// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/foodgram/internal/logging"
)

// DefaultSweepInterval is how often Serve removes expired entries.
const DefaultSweepInterval = 5 * time.Minute

var (
	lookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_cache_lookups_total",
			Help: "Cache lookups by cache name and result (hit or miss)",
		},
		[]string{"cache", "result"},
	)

	entriesGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "foodgram_cache_entries",
			Help: "Entries currently held by each cache",
		},
		[]string{"cache"},
	)
)

// Entry is a cached value with its expiry.
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Stats is a point in time copy of cache counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Cache is a thread-safe in-memory map with per-entry TTL.
//
// Expired entries are dropped lazily on Get and in bulk by Serve, which
// lets the cache run as a supervised service.
type Cache struct {
	name    string
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time

	statsMu sync.Mutex
	stats   Stats
}

// New creates a cache whose entries live for ttl.
//
//	tags := cache.New("tags", 10*time.Minute)
//	tags.Set("tags:all", list)
func New(name string, ttl time.Duration) *Cache {
	return &Cache{
		name:    name,
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
		stats:   Stats{LastCleanup: time.Now()},
	}
}

// Get returns the value for key if present and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.record(false, 0)
		return nil, false
	}

	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.record(false, 1)
		return nil, false
	}

	c.record(true, 0)
	return entry.Data, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with a custom TTL.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = Entry{Data: value, ExpiresAt: c.now().Add(ttl)}
	n := len(c.entries)
	c.mu.Unlock()

	c.setSize(n)
}

// Delete removes one key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	n := len(c.entries)
	c.mu.Unlock()

	if existed {
		c.evicted(1)
	}
	c.setSize(n)
}

// DeletePrefix removes every key starting with prefix and returns how many
// were removed. Writers use it to invalidate a family of query results.
func (c *Cache) DeletePrefix(prefix string) int {
	c.mu.Lock()
	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	n := len(c.entries)
	c.mu.Unlock()

	c.evicted(int64(removed))
	c.setSize(n)
	return removed
}

// GetStats returns a copy of the counters.
func (c *Cache) GetStats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// HitRate returns hits as a percentage of lookups.
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Serve sweeps expired entries until ctx is done. It satisfies
// suture.Service.
func (c *Cache) Serve(ctx context.Context) error {
	ticker := time.NewTicker(DefaultSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// String names the service in supervisor logs.
func (c *Cache) String() string {
	return "cache:" + c.name
}

func (c *Cache) cleanup() {
	now := c.now()
	c.mu.Lock()
	var removed int64
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	n := len(c.entries)
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.Evictions += removed
	c.stats.TotalKeys = int64(n)
	c.stats.LastCleanup = now
	c.statsMu.Unlock()
	entriesGauge.WithLabelValues(c.name).Set(float64(n))

	logging.Debug().
		Str("cache", c.name).
		Int64("expired", removed).
		Int("entries", n).
		Float64("hit_rate", c.HitRate()).
		Msg("Cache sweep")
}

func (c *Cache) record(hit bool, evictions int64) {
	c.statsMu.Lock()
	if hit {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.stats.Evictions += evictions
	c.statsMu.Unlock()

	if hit {
		lookupsTotal.WithLabelValues(c.name, "hit").Inc()
	} else {
		lookupsTotal.WithLabelValues(c.name, "miss").Inc()
	}
}

func (c *Cache) evicted(n int64) {
	if n == 0 {
		return
	}
	c.statsMu.Lock()
	c.stats.Evictions += n
	c.statsMu.Unlock()
}

func (c *Cache) setSize(n int) {
	c.statsMu.Lock()
	c.stats.TotalKeys = int64(n)
	c.statsMu.Unlock()
	entriesGauge.WithLabelValues(c.name).Set(float64(n))
}

// GenerateKey builds a compact key from a method name and its parameters.
//
//	key := cache.GenerateKey("ingredients", map[string]string{"name": "mil"})
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
