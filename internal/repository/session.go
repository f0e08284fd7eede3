package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DanRulev/flashquiz/internal/models"
)

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS quiz_sessions (
	id         TEXT PRIMARY KEY,
	state      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

type SessionR struct {
	db QueryI
	// ttl of zero keeps sessions until they are deleted.
	ttl time.Duration
}

func NewSessionRepository(db QueryI, ttl time.Duration) *SessionR {
	return &SessionR{
		db:  db,
		ttl: ttl,
	}
}

// Migrate creates the sessions table when it does not exist yet.
func (s *SessionR) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSessionsTable); err != nil {
		return fmt.Errorf("failed to create quiz_sessions: %w", err)
	}
	return nil
}

func (s *SessionR) SaveSession(ctx context.Context, id string, state models.QuizState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", id, err)
	}

	query := `
		INSERT INTO quiz_sessions (id, state, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, id, data); err != nil {
		return fmt.Errorf("failed to save session %s: %w", id, err)
	}

	return nil
}

// Purge removes sessions not saved within the ttl.
func (s *SessionR) Purge(ctx context.Context) error {
	if s.ttl <= 0 {
		return nil
	}

	query := `DELETE FROM quiz_sessions WHERE updated_at <= NOW() - make_interval(secs => $1)`

	if _, err := s.db.ExecContext(ctx, query, s.ttl.Seconds()); err != nil {
		return fmt.Errorf("failed to purge expired sessions: %w", err)
	}

	return nil
}

// Session loads the state saved under id. A session older than the ttl is
// reported as not found.
func (s *SessionR) Session(ctx context.Context, id string) (models.QuizState, error) {
	query := `SELECT state FROM quiz_sessions WHERE id = $1`
	args := []any{id}
	if s.ttl > 0 {
		query += ` AND updated_at > NOW() - make_interval(secs => $2)`
		args = append(args, s.ttl.Seconds())
	}

	var data []byte
	if err := s.db.GetContext(ctx, &data, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

func (s *SessionR) DeleteSession(ctx context.Context, id string) error {
	query := `DELETE FROM quiz_sessions WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}

	return nil
}
