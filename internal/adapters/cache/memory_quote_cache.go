package cache

import (
	"context"
	"time"
	"warehouse-cost-service/internal/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultMemoryEntries = 10000

// In-process quote cache used when no Redis is configured.
// Bounded LRU; entries also expire after TTL (no expiry when TTL <= 0).
type MemoryQuoteCache struct {
	lru *expirable.LRU[string, domain.Quote]
}

func NewMemoryQuoteCache(ttl time.Duration, maxEntries int) *MemoryQuoteCache {
	if maxEntries <= 0 {
		maxEntries = defaultMemoryEntries
	}
	return &MemoryQuoteCache{
		lru: expirable.NewLRU[string, domain.Quote](maxEntries, nil, ttl),
	}
}

func (c *MemoryQuoteCache) Get(_ context.Context, key string) (*domain.Quote, bool, error) {
	stored, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}

	q := cloneQuote(stored)
	return &q, true, nil
}

func (c *MemoryQuoteCache) Put(_ context.Context, key string, q *domain.Quote) error {
	if q == nil {
		return nil
	}

	c.lru.Add(key, cloneQuote(*q))
	return nil
}

// Callers may mutate returned quotes; keep stored slices private.
func cloneQuote(q domain.Quote) domain.Quote {
	out := q
	out.Legs = append([]domain.Leg(nil), q.Legs...)
	out.Unsourced = append([]string(nil), q.Unsourced...)
	return out
}
