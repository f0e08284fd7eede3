package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DanRulev/flashquiz/internal/models"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "flashquiz:session:"

type RedisSessionR struct {
	rdb RedisCmdI
	ttl time.Duration
}

// NewRedisSessionRepository stores sessions as JSON values. A ttl of zero
// keeps them until deleted.
func NewRedisSessionRepository(rdb RedisCmdI, ttl time.Duration) *RedisSessionR {
	return &RedisSessionR{
		rdb: rdb,
		ttl: ttl,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *RedisSessionR) SaveSession(ctx context.Context, id string, state models.QuizState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", id, err)
	}

	if err := r.rdb.Set(ctx, sessionKey(id), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", id, err)
	}

	return nil
}

func (r *RedisSessionR) Session(ctx context.Context, id string) (models.QuizState, error) {
	data, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.QuizState{}, models.ErrSessionNotFound
		}
		return models.QuizState{}, fmt.Errorf("failed to get session %s: %w", id, err)
	}

	var state models.QuizState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.QuizState{}, fmt.Errorf("failed to decode session %s: %w", id, err)
	}

	return state, nil
}

func (r *RedisSessionR) DeleteSession(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}
