package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// El nivel L2 requiere un Redis real; estos tests ejercitan el L1 con
// redisClient nil, que es el modo degradado soportado.

func newL1Cache(maxSize int, ttl time.Duration) *QueryCache {
	return NewQueryCache(nil, maxSize, ttl, zap.NewNop())
}

func TestGetSetRoundTrip(t *testing.T) {
	qc := newL1Cache(10, time.Minute)
	ctx := context.Background()

	qc.Set(ctx, "inventory:summary", map[string]int{"out_of_stock": 3})

	var out map[string]int
	require.True(t, qc.Get(ctx, "inventory:summary", &out))
	assert.Equal(t, 3, out["out_of_stock"])
}

func TestGetMissOnUnknownKey(t *testing.T) {
	qc := newL1Cache(10, time.Minute)

	var out map[string]int
	assert.False(t, qc.Get(context.Background(), "inventory:nope", &out))

	stats := qc.GetStats()
	assert.Equal(t, int64(0), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestEntriesExpire(t *testing.T) {
	qc := newL1Cache(10, time.Minute)
	ctx := context.Background()

	qc.SetWithTTL(ctx, "search:kb", []string{"KB-01"}, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	var out []string
	assert.False(t, qc.Get(ctx, "search:kb", &out))
}

func TestInvalidateGroupOnlyTouchesPrefix(t *testing.T) {
	qc := newL1Cache(10, time.Minute)
	ctx := context.Background()

	qc.Set(ctx, "inventory:summary", 1)
	qc.Set(ctx, "inventory:skus:p1", 2)
	qc.Set(ctx, "transactions:list:p1", 3)

	qc.InvalidateGroup(ctx, "inventory")

	var out int
	assert.False(t, qc.Get(ctx, "inventory:summary", &out))
	assert.False(t, qc.Get(ctx, "inventory:skus:p1", &out))
	require.True(t, qc.Get(ctx, "transactions:list:p1", &out))
	assert.Equal(t, 3, out)
}

func TestL1Eviction(t *testing.T) {
	qc := newL1Cache(2, time.Minute)
	ctx := context.Background()

	qc.Set(ctx, "inventory:a", 1)
	qc.Set(ctx, "inventory:b", 2)
	qc.Set(ctx, "inventory:c", 3)

	assert.Equal(t, 2, qc.GetStats().TotalKeys)
}

func TestStatsHitRate(t *testing.T) {
	qc := newL1Cache(10, time.Minute)
	ctx := context.Background()

	qc.Set(ctx, "inventory:summary", 1)

	var out int
	qc.Get(ctx, "inventory:summary", &out)
	qc.Get(ctx, "inventory:missing", &out)

	stats := qc.Stats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.InDelta(t, 0.5, stats["hit_rate"], 0.001)
}
