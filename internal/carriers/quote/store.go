package quote

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"carrier-simulator/internal/carriers/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by CacheStore.Get when no entry exists for a key.
var ErrCacheMiss = errors.New("quote cache miss")

// CacheStore is the content-addressable store of full quote responses keyed
// by cache key. The in-memory backend is the default; the Redis backend keeps
// the cache warm across restarts.
type CacheStore interface {
	Get(ctx context.Context, key string) (*models.QuoteResponse, error)
	Set(ctx context.Context, key string, resp *models.QuoteResponse) error
	Keys(ctx context.Context) ([]string, error)
	Len(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

// MemoryCache is a process-local CacheStore.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]models.QuoteResponse
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]models.QuoteResponse)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*models.QuoteResponse, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	resp, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return &resp, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, resp *models.QuoteResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = *resp
	return nil
}

func (c *MemoryCache) Keys(_ context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys, nil
}

func (c *MemoryCache) Len(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries), nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]models.QuoteResponse)
	return nil
}

const redisKeyPrefix = "carrier:quote:"

// RedisCache stores quote responses as JSON values in Redis. A zero TTL means
// entries never expire; expiry only evicts cache entries, it never re-stamps
// the validity window inside a stored response.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.QuoteResponse, error) {
	val, err := c.client.Get(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	var resp models.QuoteResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, resp *models.QuoteResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err()
}

func (c *RedisCache) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := c.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val()[len(redisKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (c *RedisCache) Len(ctx context.Context) (int, error) {
	keys, err := c.Keys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (c *RedisCache) Clear(ctx context.Context) error {
	keys, err := c.Keys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := c.client.Del(ctx, redisKeyPrefix+k).Err(); err != nil {
			return err
		}
	}
	return nil
}

// quoteIndex maps quote ids (umbrella and per-coverage) to full records for
// later lookup during binding. Always in-memory: clearing the cache must not
// invalidate previously issued quote ids.
type quoteIndex struct {
	mu      sync.RWMutex
	records map[string]models.QuoteRecord
}

func newQuoteIndex() *quoteIndex {
	return &quoteIndex{records: make(map[string]models.QuoteRecord)}
}

func (i *quoteIndex) put(id string, rec models.QuoteRecord) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.records[id] = rec
}

func (i *quoteIndex) get(id string) (models.QuoteRecord, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	rec, ok := i.records[id]
	return rec, ok
}

func (i *quoteIndex) size() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.records)
}
