package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanRulev/flashquiz/internal/config"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

func InitRedis(ctx context.Context, cfg config.RedisConfig) (redis.UniversalClient, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("redis: no addresses configured")
	}

	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        cfg.Addrs,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed redis ping: %w", err)
	}

	return rdb, nil
}
