// ABOUTME: In-memory cache for rendered lattice output, keyed by the sha256 of the
// ABOUTME: DOT text plus format, with TTL expiry for the viewer server.
package render

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// RenderFunc is the rendering function a Cache wraps.
type RenderFunc func(ctx context.Context, dotText string, format string) ([]byte, error)

type cacheEntry struct {
	data      []byte
	createdAt time.Time
}

// Cache memoizes rendered output so the viewer server does not invoke
// graphviz on every request for an unchanged lattice. Errors are never
// cached. Safe for concurrent use.
type Cache struct {
	renderFn RenderFunc
	ttl      time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCache wraps renderFn with a TTL-expiring cache.
func NewCache(renderFn RenderFunc, ttl time.Duration) *Cache {
	return &Cache{
		renderFn: renderFn,
		ttl:      ttl,
		entries:  make(map[string]cacheEntry),
	}
}

// RenderDOTSource renders DOT text to the given format, serving a cached
// result when one exists and has not expired.
func (c *Cache) RenderDOTSource(ctx context.Context, dotText string, format string) ([]byte, error) {
	key := cacheKey(dotText, format)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && time.Since(entry.createdAt) < c.ttl {
		return entry.data, nil
	}

	data, err := c.renderFn(ctx, dotText, format)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{data: data, createdAt: time.Now()}
	c.mu.Unlock()
	return data, nil
}

// Len returns the number of entries currently held, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

func cacheKey(dotText, format string) string {
	sum := sha256.Sum256([]byte(dotText))
	return fmt.Sprintf("%x-%s", sum, format)
}
