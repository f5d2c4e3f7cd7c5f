package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"warehouse-cost-service/internal/domain"
	"warehouse-cost-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

// Redis-backed cache for computed quotes.
// Values are stored as JSON under Prefix+key and expire after TTL (0 means no expiry).
type RedisQuoteCache struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewRedisQuoteCache(client *redis.Client, ttl time.Duration) *RedisQuoteCache {
	return &RedisQuoteCache{Client: client, TTL: ttl, Prefix: "quote:"}
}

// Get fetches a cached quote. A missing key is not an error.
func (c *RedisQuoteCache) Get(ctx context.Context, key string) (_ *domain.Quote, _ bool, err error) {
	defer obs.Time(ctx, "quote.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("redis quote cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, c.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get quote cache: key=%q: %w", key, err)
	}

	var q domain.Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, false, fmt.Errorf("get quote cache: decode key=%q: %w", key, err)
	}

	return &q, true, nil
}

// Put stores a quote.
func (c *RedisQuoteCache) Put(ctx context.Context, key string, q *domain.Quote) (err error) {
	defer obs.Time(ctx, "quote.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("redis quote cache: client is nil")
	}
	if q == nil {
		return errors.New("put quote cache: quote is nil")
	}

	raw, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("put quote cache: encode key=%q: %w", key, err)
	}

	if err := c.Client.Set(ctx, c.Prefix+key, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("put quote cache: key=%q: %w", key, err)
	}

	return nil
}
