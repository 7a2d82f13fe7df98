package client

import (
	"encoding/json"
	"strings"
	"sync"
)

// QueryCache holds raw GET responses keyed by request path (with query
// string). Invalidating a path drops the path itself and everything below it.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewQueryCache creates an empty cache.
func NewQueryCache() *QueryCache {
	return &QueryCache{entries: make(map[string][]byte)}
}

// Load decodes the cached response for key into dst and reports a hit.
func (q *QueryCache) Load(key string, dst interface{}) bool {
	q.mu.RLock()
	raw, ok := q.entries[key]
	q.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// Store records the response for key.
func (q *QueryCache) Store(key string, raw []byte) {
	q.mu.Lock()
	q.entries[key] = raw
	q.mu.Unlock()
}

// Invalidate drops every entry whose key is one of prefixes or lies below it.
func (q *QueryCache) Invalidate(prefixes ...string) {
	if len(prefixes) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for key := range q.entries {
		for _, p := range prefixes {
			if key == p || strings.HasPrefix(key, p+"/") || strings.HasPrefix(key, p+"?") {
				delete(q.entries, key)
				break
			}
		}
	}
}

// Clear empties the cache.
func (q *QueryCache) Clear() {
	q.mu.Lock()
	q.entries = make(map[string][]byte)
	q.mu.Unlock()
}

// Len returns the number of cached queries.
func (q *QueryCache) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.entries)
}
