package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/gercamp/internal/config"
)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
}

// Ping checks the connection, retrying like the database connect does.
func Ping(ctx context.Context, client *redis.Client, retries int, log *zap.Logger) error {
	if retries < 1 {
		retries = 1
	}

	var err error
	for i := 1; i <= retries; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			return nil
		}
		log.Warn("redis not ready", zap.Int("attempt", i), zap.Int("max_attempts", retries), zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}

	return fmt.Errorf("failed to ping redis: %w", err)
}
