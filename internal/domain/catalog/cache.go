package catalog

import (
	"context"
	"sync"
	"time"
)

// Cache keeps the last successful response of each collection for a TTL.
// Failures and cancellations are never cached.
type Cache struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	mu         sync.RWMutex
	products   cacheEntry[[]Product]
	categories cacheEntry[[]Category]
	articles   cacheEntry[[]Article]
}

type cacheEntry[T any] struct {
	data      T
	fetchedAt time.Time
	ok        bool
}

// NewCache wraps source. A zero ttl disables caching.
func NewCache(source Source, ttl time.Duration) *Cache {
	return &Cache{source: source, ttl: ttl, now: time.Now}
}

func (c *Cache) Products(ctx context.Context) ([]Product, error) {
	return cached(ctx, c, &c.products, c.source.Products)
}

func (c *Cache) Categories(ctx context.Context) ([]Category, error) {
	return cached(ctx, c, &c.categories, c.source.Categories)
}

func (c *Cache) Articles(ctx context.Context) ([]Article, error) {
	return cached(ctx, c, &c.articles, c.source.Articles)
}

func cached[T any](ctx context.Context, c *Cache, entry *cacheEntry[T], load func(context.Context) (T, error)) (T, error) {
	if c.ttl > 0 {
		c.mu.RLock()
		hit := entry.ok && c.now().Sub(entry.fetchedAt) < c.ttl
		data := entry.data
		c.mu.RUnlock()
		if hit {
			return data, nil
		}
	}

	data, err := load(ctx)
	if err != nil {
		return data, err
	}

	if c.ttl > 0 {
		c.mu.Lock()
		*entry = cacheEntry[T]{data: data, fetchedAt: c.now(), ok: true}
		c.mu.Unlock()
	}
	return data, nil
}
