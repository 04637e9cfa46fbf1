package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// CacheMetrics tracks cache performance
type CacheMetrics struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// VisitorCache holds per-visitor client storage, keyed by the visitor cookie id.
// Entries expire after ttl without writes.
type VisitorCache struct {
	items  *gocache.Cache
	ttl    time.Duration
	logger *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

func NewVisitorCache(ttl time.Duration, logger *zap.Logger) *VisitorCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	cleanup := ttl / 2
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	return &VisitorCache{
		items:  gocache.New(ttl, cleanup),
		ttl:    ttl,
		logger: logger,
	}
}

// For returns the storage namespace of one visitor.
func (c *VisitorCache) For(visitorID string) *VisitorStorage {
	return &VisitorStorage{cache: c, visitorID: visitorID}
}

func (c *VisitorCache) GetMetrics() CacheMetrics {
	return CacheMetrics{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Sets:   c.sets.Load(),
	}
}

// Clear removes every visitor's entries.
func (c *VisitorCache) Clear() {
	c.items.Flush()
}

func (c *VisitorCache) get(key string) (string, bool) {
	v, found := c.items.Get(key)
	if !found {
		c.misses.Add(1)
		c.logger.Debug("Cache miss", zap.String("key", key))
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		c.misses.Add(1)
		return "", false
	}
	c.hits.Add(1)
	return s, true
}

func (c *VisitorCache) set(key, value string) {
	c.items.Set(key, value, gocache.DefaultExpiration)
	c.sets.Add(1)
	c.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", c.ttl))
}

// VisitorStorage exposes GetItem/SetItem over one visitor's namespace.
type VisitorStorage struct {
	cache     *VisitorCache
	visitorID string
}

func (s *VisitorStorage) GetItem(key string) (string, bool) {
	return s.cache.get(s.key(key))
}

func (s *VisitorStorage) SetItem(key, value string) error {
	s.cache.set(s.key(key), value)
	return nil
}

func (s *VisitorStorage) key(k string) string {
	return s.visitorID + ":" + k
}
