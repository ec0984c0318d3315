package calc

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cachedResult struct {
	text string
	err  error
}

// ResultCache memoises evaluation results by expression text.
type ResultCache struct {
	cache   *lru.Cache[string, cachedResult]
	maxSize int
	hits    int64
	misses  int64
	mu      sync.RWMutex
}

// CacheStats holds cache statistics
type CacheStats struct {
	Size    int     `json:"size"`
	MaxSize int     `json:"max_size"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// NewResultCache creates a cache holding at most maxSize expressions.
func NewResultCache(maxSize int) (*ResultCache, error) {
	if maxSize <= 0 {
		maxSize = 128
	}

	cache, err := lru.New[string, cachedResult](maxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}

	return &ResultCache{
		cache:   cache,
		maxSize: maxSize,
	}, nil
}

func (c *ResultCache) get(expr string) (cachedResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, found := c.cache.Get(expr)
	if found {
		atomic.AddInt64(&c.hits, 1)
		return r, true
	}
	atomic.AddInt64(&c.misses, 1)
	return cachedResult{}, false
}

func (c *ResultCache) put(expr string, r cachedResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if evicted := c.cache.Add(expr, r); evicted {
		log.Printf("[RESULT-CACHE] evicted oldest entry, size=%d", c.cache.Len())
	}
}

// Purge drops every cached result and resets the counters.
func (c *ResultCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
}

// Stats returns current cache statistics
func (c *ResultCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	hitRate := float64(0)
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Size:    c.cache.Len(),
		MaxSize: c.maxSize,
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate,
	}
}

// CachedEvaluator consults a ResultCache before evaluating.
type CachedEvaluator struct {
	cache *ResultCache
	next  Evaluator
}

// NewCachedEvaluator wraps next, or Evaluate when next is nil.
func NewCachedEvaluator(cache *ResultCache, next Evaluator) *CachedEvaluator {
	if next == nil {
		next = EvaluatorFunc(Evaluate)
	}
	return &CachedEvaluator{cache: cache, next: next}
}

func (e *CachedEvaluator) Evaluate(expr string) (string, error) {
	if r, ok := e.cache.get(expr); ok {
		return r.text, r.err
	}
	text, err := e.next.Evaluate(expr)
	e.cache.put(expr, cachedResult{text: text, err: err})
	return text, err
}
