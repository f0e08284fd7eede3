package storage

import (
	"context"
	"fmt"

	"github.com/DanRulev/flashquiz/internal/config"
	"github.com/DanRulev/flashquiz/internal/repository"
	"github.com/DanRulev/flashquiz/internal/service"
	"github.com/DanRulev/flashquiz/internal/storage/cache"
	"github.com/DanRulev/flashquiz/internal/storage/db"
	"github.com/DanRulev/flashquiz/internal/storage/kv"
	"go.uber.org/zap"
)

// NewSessionStore opens the session backend named by cfg.Store.Driver. The
// returned close function releases its connections.
func NewSessionStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (service.SessionStore, func() error, error) {
	switch cfg.Store.Driver {
	case "", "memory":
		log.Info("using in-memory session store", zap.Duration("ttl", cfg.Store.TTL))
		return cache.NewCache(cfg.Store.TTL), func() error { return nil }, nil

	case "postgres":
		conn, err := db.InitDB(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}

		repo := repository.NewSessionRepository(conn, cfg.Store.TTL)
		if err := repo.Migrate(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}
		if err := repo.Purge(ctx); err != nil {
			log.Warn("failed to purge expired sessions", zap.Error(err))
		}

		log.Info("using postgres session store", zap.String("host", cfg.DB.Conn.Host), zap.Duration("ttl", cfg.Store.TTL))
		return repo, conn.Close, nil

	case "redis":
		rdb, err := kv.InitRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}

		log.Info("using redis session store", zap.Strings("addrs", cfg.Redis.Addrs), zap.Duration("ttl", cfg.Store.TTL))
		return repository.NewRedisSessionRepository(rdb, cfg.Store.TTL), rdb.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Store.Driver)
	}
}
