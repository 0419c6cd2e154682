package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/analytics"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/config"
	"github.com/redis/go-redis/v9"
)

const forecastKeyPrefix = "forecast"

// ForecastCache stores inventory forecasts per company revision and horizon.
// A write for an old revision is never read back by a newer one.
type ForecastCache interface {
	Get(ctx context.Context, companyID string, revision uint64, days int) ([]analytics.WarehouseForecast, bool, error)
	Set(ctx context.Context, companyID string, revision uint64, days int, forecast []analytics.WarehouseForecast) error
	Invalidate(ctx context.Context, companyID string) error
	InvalidateAll(ctx context.Context) error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopForecastCache struct{}

// NewForecastCache connects to redis when caching is enabled and falls back
// to a no-op cache otherwise
func NewForecastCache(cfg config.CacheConfig) (ForecastCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisForecastCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopForecastCache() ForecastCache {
	return &noopForecastCache{}
}

func (c *redisForecastCache) Get(ctx context.Context, companyID string, revision uint64, days int) ([]analytics.WarehouseForecast, bool, error) {
	payload, err := c.client.Get(ctx, forecastKey(companyID, revision, days)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var forecast []analytics.WarehouseForecast
	if err := json.Unmarshal(payload, &forecast); err != nil {
		return nil, false, fmt.Errorf("decode cached forecast: %w", err)
	}

	return forecast, true, nil
}

func (c *redisForecastCache) Set(ctx context.Context, companyID string, revision uint64, days int, forecast []analytics.WarehouseForecast) error {
	payload, err := json.Marshal(forecast)
	if err != nil {
		return fmt.Errorf("encode forecast: %w", err)
	}

	if err := c.client.Set(ctx, forecastKey(companyID, revision, days), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisForecastCache) Invalidate(ctx context.Context, companyID string) error {
	return deleteKeysWithPrefix(ctx, c.client, companyPrefix(companyID), scanBatchSize)
}

func (c *redisForecastCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, forecastKeyPrefix+":", scanBatchSize)
}

func (noopForecastCache) Get(context.Context, string, uint64, int) ([]analytics.WarehouseForecast, bool, error) {
	return nil, false, nil
}

func (noopForecastCache) Set(context.Context, string, uint64, int, []analytics.WarehouseForecast) error {
	return nil
}

func (noopForecastCache) Invalidate(context.Context, string) error { return nil }
func (noopForecastCache) InvalidateAll(context.Context) error      { return nil }

func companyPrefix(companyID string) string {
	return fmt.Sprintf("%s:%s:", forecastKeyPrefix, companyID)
}

func forecastKey(companyID string, revision uint64, days int) string {
	return fmt.Sprintf("%s%d:%d", companyPrefix(companyID), revision, days)
}
