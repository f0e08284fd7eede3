package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DanRulev/flashquiz/internal/config"
	_ "github.com/lib/pq"

	"github.com/jmoiron/sqlx"
)

const pingTimeout = 5 * time.Second

// dsn builds a lib/pq key=value connection string. Values are quoted so
// passwords may contain spaces or quotes. Empty values are left out.
func dsn(conn config.DBConn) string {
	pairs := []struct{ key, value string }{
		{"host", conn.Host},
		{"port", conn.Port},
		{"dbname", conn.Name},
		{"user", conn.User},
		{"password", conn.Password},
		{"sslmode", conn.SSL},
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		v := strings.ReplaceAll(p.value, `\`, `\\`)
		v = strings.ReplaceAll(v, `'`, `\'`)
		parts = append(parts, fmt.Sprintf("%s='%s'", p.key, v))
	}

	return strings.Join(parts, " ")
}

func InitDB(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn(cfg.Conn))
	if err != nil {
		return nil, fmt.Errorf("failed open db connect: %w", err)
	}

	db.SetMaxOpenConns(cfg.Cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Cfg.ConnMaxLifeTime)
	db.SetConnMaxIdleTime(cfg.Cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed db ping: %w", err)
	}

	return db, nil
}
