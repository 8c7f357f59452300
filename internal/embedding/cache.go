package embedding

import (
	"container/list"
	"context"
	"fmt"
	"sync"

	"github.com/hyperjump/embedkit/internal/vector"
)

// EmbeddingCache is an LRU cache for vectors keyed by model and text.
type EmbeddingCache struct {
	capacity int
	cache    map[string]*list.Element
	lru      *list.List
	mu       sync.Mutex
}

type cacheEntry struct {
	key   string
	value vector.Vector
}

// NewEmbeddingCache creates a new cache with the given capacity.
func NewEmbeddingCache(capacity int) *EmbeddingCache {
	return &EmbeddingCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

func cacheKey(model, text string) string {
	return model + "\x00" + text
}

// Get returns a copy of the cached vector if present.
func (c *EmbeddingCache) Get(model, text string) (vector.Vector, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[cacheKey(model, text)]; ok {
		c.lru.MoveToFront(elem)
		return elem.Value.(*cacheEntry).value.Clone(), true
	}
	return nil, false
}

// Set stores the vector, evicting the least recently used entry if at capacity.
func (c *EmbeddingCache) Set(model, text string, value vector.Vector) {
	if c.capacity <= 0 {
		return
	}
	key := cacheKey(model, text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).value = value.Clone()
		return
	}

	entry := &cacheEntry{key: key, value: value.Clone()}
	elem := c.lru.PushFront(entry)
	c.cache[key] = elem

	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.cache, oldest.Value.(*cacheEntry).key)
		}
	}
}

// Len returns the number of cached vectors.
func (c *EmbeddingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// CachingGenerator serves repeated (model, text) pairs from an EmbeddingCache and sends
// only the misses to the wrapped generator, in a single call.
type CachingGenerator struct {
	next  Generator
	cache *EmbeddingCache
}

// NewCachingGenerator wraps next with an LRU cache of the given capacity.
func NewCachingGenerator(next Generator, capacity int) *CachingGenerator {
	return &CachingGenerator{next: next, cache: NewEmbeddingCache(capacity)}
}

// Cache exposes the underlying cache.
func (g *CachingGenerator) Cache() *EmbeddingCache {
	return g.cache
}

// Generate returns cached vectors where possible.
func (g *CachingGenerator) Generate(ctx context.Context, texts []string, model string) ([]vector.Vector, error) {
	out := make([]vector.Vector, len(texts))
	var missing []string
	var missingAt []int
	for i, text := range texts {
		if v, ok := g.cache.Get(model, text); ok {
			out[i] = v
			continue
		}
		missing = append(missing, text)
		missingAt = append(missingAt, i)
	}
	if len(missing) == 0 {
		return out, nil
	}
	vecs, err := g.next.Generate(ctx, missing, model)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missing) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVectorCountMismatch, len(vecs), len(missing))
	}
	for j, i := range missingAt {
		out[i] = vecs[j]
		g.cache.Set(model, missing[j], vecs[j])
	}
	return out, nil
}
