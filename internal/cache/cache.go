package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aurelle-jewellery/aurelle-backend/config"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent or caching is disabled
var ErrCacheMiss = errors.New("cache miss")

var client *redis.Client

// Init initializes the Redis connection. When cfg.Enabled is false the
// package stays in pass-through mode: every read misses, every write is a no-op.
func Init(cfg *config.RedisConfig) error {
	if !cfg.Enabled {
		logger.Info("Redis cache disabled, running in pass-through mode", nil)
		return nil
	}

	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		client = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// GetJSON reads a key and unmarshals it into dest
func GetJSON(ctx context.Context, key string, dest interface{}) error {
	if client == nil {
		return ErrCacheMiss
	}

	val, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		logger.Error("Failed to read from cache", err, map[string]interface{}{
			"key": key,
		})
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// SetJSON marshals value and stores it under key with a TTL
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Error("Failed to write to cache", err, map[string]interface{}{
			"key": key,
		})
		return err
	}

	logger.Debug("Cache entry written", map[string]interface{}{
		"key": key,
		"ttl": ttl.String(),
	})
	return nil
}

// Delete removes keys from the cache
func Delete(ctx context.Context, keys ...string) error {
	if client == nil || len(keys) == 0 {
		return nil
	}

	if err := client.Del(ctx, keys...).Err(); err != nil {
		logger.Error("Failed to invalidate cache keys", err, map[string]interface{}{
			"keys": keys,
		})
		return err
	}

	logger.Debug("Cache keys invalidated", map[string]interface{}{
		"keys": keys,
	})
	return nil
}
