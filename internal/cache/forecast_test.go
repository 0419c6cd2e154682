package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/analytics"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastKey(t *testing.T) {
	assert.Equal(t, "forecast:innovate-inc:7:60", forecastKey("innovate-inc", 7, 60))
	assert.NotEqual(t, forecastKey("innovate-inc", 7, 60), forecastKey("innovate-inc", 8, 60))
	assert.Equal(t, "forecast:innovate-inc:", companyPrefix("innovate-inc"))
}

func TestBuildRedisOptions(t *testing.T) {
	opts, err := buildRedisOptions(config.CacheConfig{})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)

	opts, err = buildRedisOptions(config.CacheConfig{RedisHost: "cache", RedisPort: "6380", RedisDB: 2, RedisPassword: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "pw", opts.Password)

	opts, err = buildRedisOptions(config.CacheConfig{RedisURL: "redis://:secret@redis.internal:6390/3"})
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6390", opts.Addr)
	assert.Equal(t, 3, opts.DB)

	_, err = buildRedisOptions(config.CacheConfig{RedisURL: "http://nope"})
	assert.Error(t, err)
}

func TestCacheTTL(t *testing.T) {
	assert.Equal(t, defaultCacheTTL, cacheTTL(config.CacheConfig{}))
	assert.Equal(t, 30*time.Second, cacheTTL(config.CacheConfig{ForecastTTLSeconds: 30}))
}

func TestDisabledCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	c, err := NewForecastCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "a", 1, 60, []analytics.WarehouseForecast{{WarehouseID: "wh"}}))
	got, ok, err := c.Get(ctx, "a", 1, 60)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, c.Invalidate(ctx, "a"))
	assert.NoError(t, c.InvalidateAll(ctx))
}

// Runs against a real redis when REDIS_TEST_URL is set
func TestRedisForecastCache(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	ctx := context.Background()
	c, err := NewForecastCache(config.CacheConfig{Enabled: true, RedisURL: url, ForecastTTLSeconds: 30})
	require.NoError(t, err)
	require.NoError(t, c.InvalidateAll(ctx))

	forecast := []analytics.WarehouseForecast{{WarehouseID: "wh-1", WarehouseName: "One"}}
	require.NoError(t, c.Set(ctx, "co", 1, 60, forecast))
	require.NoError(t, c.Set(ctx, "other", 1, 60, forecast))

	got, ok, err := c.Get(ctx, "co", 1, 60)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "wh-1", got[0].WarehouseID)

	_, ok, err = c.Get(ctx, "co", 2, 60)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Invalidate(ctx, "co"))
	_, ok, err = c.Get(ctx, "co", 1, 60)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Get(ctx, "other", 1, 60)
	require.NoError(t, err)
	assert.True(t, ok)
}
