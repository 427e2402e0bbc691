package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/derekschultz/lol-dfs-optimizer/internal/optimizer"
	"github.com/derekschultz/lol-dfs-optimizer/internal/types"
)

// ValuationCacheService handles caching of lineup valuations and
// optimization results.
type ValuationCacheService struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewValuationCacheService creates a new valuation cache service
func NewValuationCacheService(client *redis.Client, logger *logrus.Logger) *ValuationCacheService {
	return &ValuationCacheService{
		client: client,
		logger: logger,
	}
}

// SetValuation stores a lineup valuation in cache
func (c *ValuationCacheService) SetValuation(ctx context.Context, key string, valuation *types.Valuation, expiration time.Duration) error {
	data, err := json.Marshal(valuation)
	if err != nil {
		return fmt.Errorf("failed to marshal valuation: %w", err)
	}

	fullKey := fmt.Sprintf("valuation:%s", key)
	if err := c.client.Set(ctx, fullKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set valuation in cache: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key":  fullKey,
		"expiration": expiration,
	}).Debug("Cached lineup valuation")

	return nil
}

// GetValuation retrieves a lineup valuation from cache
func (c *ValuationCacheService) GetValuation(ctx context.Context, key string) (*types.Valuation, error) {
	fullKey := fmt.Sprintf("valuation:%s", key)
	data, err := c.client.Get(ctx, fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("valuation not found in cache")
		}
		return nil, fmt.Errorf("failed to get valuation from cache: %w", err)
	}

	var valuation types.Valuation
	if err := json.Unmarshal([]byte(data), &valuation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal valuation: %w", err)
	}

	c.logger.WithField("cache_key", fullKey).Debug("Retrieved valuation from cache")
	return &valuation, nil
}

// SetOptimizationResult stores an optimization result in cache
func (c *ValuationCacheService) SetOptimizationResult(ctx context.Context, key string, result *optimizer.Result, expiration time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal optimization result: %w", err)
	}

	fullKey := fmt.Sprintf("optimization:%s", key)
	if err := c.client.Set(ctx, fullKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set optimization result in cache: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key":     fullKey,
		"expiration":    expiration,
		"lineups_count": len(result.Lineups),
	}).Debug("Cached optimization result")

	return nil
}

// GetOptimizationResult retrieves an optimization result from cache
func (c *ValuationCacheService) GetOptimizationResult(ctx context.Context, key string) (*optimizer.Result, error) {
	fullKey := fmt.Sprintf("optimization:%s", key)
	data, err := c.client.Get(ctx, fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("optimization result not found in cache")
		}
		return nil, fmt.Errorf("failed to get optimization result from cache: %w", err)
	}

	var result optimizer.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal optimization result: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key":     fullKey,
		"lineups_count": len(result.Lineups),
	}).Debug("Retrieved optimization result from cache")

	return &result, nil
}

// GetStatus returns cache statistics
func (c *ValuationCacheService) GetStatus(ctx context.Context) map[string]interface{} {
	dbSize := c.client.DBSize(ctx)

	status := map[string]interface{}{
		"service":   "valuation-cache",
		"timestamp": time.Now(),
		"connected": true,
	}

	if dbSize.Err() == nil {
		status["db_size"] = dbSize.Val()
	}

	valuationKeys, err := c.client.Keys(ctx, "valuation:*").Result()
	if err == nil {
		status["valuation_keys"] = len(valuationKeys)
	}

	optimizationKeys, err := c.client.Keys(ctx, "optimization:*").Result()
	if err == nil {
		status["optimization_keys"] = len(optimizationKeys)
	}

	return status
}

// FlushValuationCache clears all cached valuations
func (c *ValuationCacheService) FlushValuationCache(ctx context.Context) error {
	keys, err := c.client.Keys(ctx, "valuation:*").Result()
	if err != nil {
		return fmt.Errorf("failed to get valuation keys: %w", err)
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete valuation keys: %w", err)
		}
	}

	c.logger.WithField("deleted_keys", len(keys)).Info("Flushed valuation cache")
	return nil
}
