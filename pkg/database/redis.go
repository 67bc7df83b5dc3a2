package database

import (
	"context"
	"fmt"
	"lingua_backend/internal/config"
	"lingua_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const defaultRedisDialTimeout = 3 * time.Second

// redisOptions 零值字段回落到 go-redis 的默认值，只有拨号超时给一个较短的上限
func redisOptions(cfg *config.RedisConfig) *redis.Options {
	opts := &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultRedisDialTimeout
	}
	return opts
}

func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	opts := redisOptions(cfg)
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}

	logger.Log.Info("Redis connection established",
		zap.String("addr", opts.Addr),
		zap.Int("db", opts.DB),
		zap.Int("pool_size", opts.PoolSize),
	)
	return rdb, nil
}
