package overpass

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/golang/groupcache/lru"
)

// responseCache is an in-process LRU of decoded query-service responses,
// keyed by (region code, query text). groupcache/lru is not safe for
// concurrent use on its own, so access is serialized with a mutex — the
// manifest driver's region worker pool (§5) may share one Client across
// goroutines even though each region owns its own pipeline frames.
type responseCache struct {
	mu  sync.Mutex
	lru *lru.Cache

	hits   int64
	misses int64
}

func newResponseCache(maxEntries int) *responseCache {
	if maxEntries <= 0 {
		return &responseCache{}
	}
	return &responseCache{lru: lru.New(maxEntries)}
}

func cacheKeyFor(regionCode, queryText string) string {
	sum := sha256.Sum256([]byte(queryText))
	return regionCode + ":" + hex.EncodeToString(sum[:])
}

func (c *responseCache) get(regionCode, queryText string) ([]byte, bool) {
	if c.lru == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lru.Get(cacheKeyFor(regionCode, queryText))
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	body, _ := v.([]byte)
	return body, true
}

func (c *responseCache) set(regionCode, queryText string, body []byte) {
	if c.lru == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(cacheKeyFor(regionCode, queryText), body)
}

// Stats reports cache hit/miss counters, mirroring the kind of cache
// telemetry this codebase already surfaces for its own in-process caches.
type Stats struct {
	Hits   int64
	Misses int64
}

// Stats returns the client's cache hit/miss counters.
func (c *Client) Stats() Stats {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()
	return Stats{Hits: c.cache.hits, Misses: c.cache.misses}
}
