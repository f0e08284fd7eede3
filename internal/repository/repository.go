package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go

type QueryI interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// RedisCmdI is the subset of redis.UniversalClient the session repository uses.
type RedisCmdI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}
