package quote

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrier-simulator/internal/carriers/models"
)

// ==========================
// Test Helper Functions
// ==========================

func sampleResponse() *models.QuoteResponse {
	return &models.QuoteResponse{
		Success:        true,
		CarrierID:      "reliable_insurance",
		CarrierName:    "Reliable Insurance Co.",
		CarrierQuoteID: "RIC-Q-2026-123456-XX",
		Timestamp:      "2026-08-30T12:00:00Z",
		ValidUntil:     "2026-09-29T12:00:00Z",
		Quotes: []models.Quote{
			{
				QuoteID:      "RIC-Q-2026-654321-GL",
				CoverageType: "general_liability",
				Status:       "quoted",
				Premium:      models.Premium{Annual: 1400, Monthly: 117, Quarterly: 350, PaymentInFullDiscount: 70},
			},
		},
		BindEligibility: "eligible_immediate",
	}
}

func setupMiniredis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// ==========================
// MemoryCache Tests
// ==========================

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	_, err := cache.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "key-1", sampleResponse()))

	got, err := cache.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "RIC-Q-2026-123456-XX", got.CarrierQuoteID)
	assert.Equal(t, "2026-09-29T12:00:00Z", got.ValidUntil)
}

func TestMemoryCache_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	require.NoError(t, cache.Set(ctx, "key-1", sampleResponse()))

	first, err := cache.Get(ctx, "key-1")
	require.NoError(t, err)
	first.Cached = true
	first.CacheKey = "mutated"

	second, err := cache.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, second.Cached, "mutating a returned response must not touch the stored entry")
	assert.Empty(t, second.CacheKey)
}

func TestMemoryCache_KeysLenClear(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	require.NoError(t, cache.Set(ctx, "a", sampleResponse()))
	require.NoError(t, cache.Set(ctx, "b", sampleResponse()))

	keys, err := cache.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, cache.Clear(ctx))
	n, err = cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

// ==========================
// RedisCache Tests
// ==========================

func TestRedisCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewRedisCache(setupMiniredis(t), 0)

	_, err := cache.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "key-1", sampleResponse()))

	got, err := cache.Get(ctx, "key-1")
	require.NoError(t, err)
	// The stored validity window survives marshalling untouched.
	assert.Equal(t, "2026-09-29T12:00:00Z", got.ValidUntil)
	assert.Equal(t, "2026-08-30T12:00:00Z", got.Timestamp)
	require.Len(t, got.Quotes, 1)
	assert.Equal(t, "RIC-Q-2026-654321-GL", got.Quotes[0].QuoteID)
	assert.Equal(t, 1400, got.Quotes[0].Premium.Annual)
}

func TestRedisCache_KeysAndClear(t *testing.T) {
	ctx := context.Background()
	client := setupMiniredis(t)
	cache := NewRedisCache(client, 0)

	require.NoError(t, cache.Set(ctx, "aaa", sampleResponse()))
	require.NoError(t, cache.Set(ctx, "bbb", sampleResponse()))
	// Unrelated keys in the same database are left alone.
	require.NoError(t, client.Set(ctx, "other:namespace:key", "x", 0).Err())

	keys, err := cache.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"aaa", "bbb"}, keys)

	require.NoError(t, cache.Clear(ctx))

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	val, err := client.Get(ctx, "other:namespace:key").Result()
	require.NoError(t, err)
	assert.Equal(t, "x", val)
}

func TestRedisCache_TTL(t *testing.T) {
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cache := NewRedisCache(client, 60*time.Second)
	require.NoError(t, cache.Set(ctx, "key-1", sampleResponse()))

	mr.FastForward(61 * time.Second)

	_, err = cache.Get(ctx, "key-1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_GetError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet(redisKeyPrefix + "key-1").SetErr(assert.AnError)

	cache := NewRedisCache(client, 0)
	_, err := cache.Get(context.Background(), "key-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss, "transport failures must not look like misses")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Quote Index Tests
// ==========================

func TestQuoteIndex(t *testing.T) {
	idx := newQuoteIndex()
	assert.Equal(t, 0, idx.size())

	rec := models.QuoteRecord{Response: *sampleResponse(), CreatedAt: "2026-08-30T12:00:00Z"}
	idx.put("RIC-Q-2026-123456-XX", rec)
	idx.put("RIC-Q-2026-654321-GL", rec)
	assert.Equal(t, 2, idx.size())

	got, ok := idx.get("RIC-Q-2026-654321-GL")
	require.True(t, ok)
	assert.Equal(t, "reliable_insurance", got.Response.CarrierID)

	_, ok = idx.get("nope")
	assert.False(t, ok)
}
