package engine

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// metaCache holds video metadata in two tiers: L1 in process memory, L2 in
// Redis when configured. Transcripts and summaries are never cached.
var metaCache *tieredCache

var (
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
)

type tieredCache struct {
	l1         sync.Map      // key → *cacheEntry
	rdb        *redis.Client // nil when L2 is disabled
	ttl        time.Duration
	maxEntries int
	stop       chan struct{}
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e *cacheEntry) live(now time.Time) bool { return now.Before(e.expiresAt) }

// InitCache sets up the metadata cache. An empty redisURL disables L2.
// Calling it again replaces the previous cache.
func InitCache(redisURL string, ttl time.Duration, maxEntries int, cleanupInterval time.Duration) {
	c := &tieredCache{ttl: ttl, maxEntries: maxEntries, stop: make(chan struct{})}
	if redisURL != "" {
		c.rdb = dialRedis(redisURL)
	}

	if prev := metaCache; prev != nil {
		close(prev.stop)
	}
	metaCache = c
	slog.Info("cache: initialized",
		slog.Duration("ttl", ttl),
		slog.Bool("redis", c.rdb != nil),
		slog.Int("max_entries", maxEntries),
	)

	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	go c.cleanupLoop(cleanupInterval)
}

func dialRedis(url string) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		slog.Warn("cache: invalid redis URL, L2 disabled", slog.Any("error", err))
		return nil
	}
	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("cache: redis unreachable, L2 disabled", slog.Any("error", err))
		_ = rdb.Close()
		return nil
	}
	slog.Info("cache: L2 redis connected", slog.String("addr", opts.Addr))
	return rdb
}

// CacheKey builds a deterministic cache key from parts.
func CacheKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("tldr:%x", sum[:12])
}

// cacheGet tries L1, then L2. An L2 hit is copied into L1.
func cacheGet(ctx context.Context, key string) ([]byte, bool) {
	c := metaCache
	if c == nil {
		cacheMisses.Add(1)
		return nil, false
	}

	if v, ok := c.l1.Load(key); ok {
		e := v.(*cacheEntry)
		if e.live(time.Now()) {
			cacheHits.Add(1)
			return e.data, true
		}
		c.l1.Delete(key)
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil {
			cacheHits.Add(1)
			c.l1.Store(key, &cacheEntry{data: data, expiresAt: time.Now().Add(c.ttl)})
			return data, true
		}
		if err != redis.Nil {
			slog.Debug("cache: L2 get failed", slog.Any("error", err))
		}
	}

	cacheMisses.Add(1)
	return nil, false
}

func cacheSet(ctx context.Context, key string, data []byte) {
	c := metaCache
	if c == nil {
		return
	}
	c.evictIfNeeded()
	c.l1.Store(key, &cacheEntry{data: data, expiresAt: time.Now().Add(c.ttl)})

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Debug("cache: L2 set failed", slog.Any("error", err))
		}
	}
}

// CacheLoadJSON returns the cached value of type T under key.
// A decode error counts as a miss.
func CacheLoadJSON[T any](ctx context.Context, key string) (T, bool) {
	var out T
	data, ok := cacheGet(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

// CacheStoreJSON marshals v and stores it under key.
func CacheStoreJSON[T any](ctx context.Context, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	cacheSet(ctx, key, data)
}

// CacheStats returns current cache hit/miss counters.
func CacheStats() (hits, misses int64) {
	return cacheHits.Load(), cacheMisses.Load()
}

func (c *tieredCache) size() int {
	n := 0
	c.l1.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// evictIfNeeded drops expired entries, then the entries closest to expiry,
// until L1 has room for one more.
func (c *tieredCache) evictIfNeeded() {
	if c.maxEntries <= 0 {
		return
	}
	n := c.size()
	if n < c.maxEntries {
		return
	}

	now := time.Now()
	c.l1.Range(func(k, v any) bool {
		if !v.(*cacheEntry).live(now) {
			c.l1.Delete(k)
			n--
		}
		return n >= c.maxEntries
	})

	for n >= c.maxEntries {
		var victim any
		var at time.Time
		c.l1.Range(func(k, v any) bool {
			e := v.(*cacheEntry)
			if victim == nil || e.expiresAt.Before(at) {
				victim, at = k, e.expiresAt
			}
			return true
		})
		if victim == nil {
			return
		}
		c.l1.Delete(victim)
		n--
	}
}

func (c *tieredCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.l1.Range(func(k, v any) bool {
				if !v.(*cacheEntry).live(now) {
					c.l1.Delete(k)
				}
				return true
			})
		}
	}
}
