package cache

import (
	"context"
	"sync"
	"time"

	"github.com/DanRulev/flashquiz/internal/models"
)

type entry struct {
	state     models.QuizState
	expiresAt time.Time
}

// Cache keeps quiz sessions in process memory. It satisfies the session
// store used by the service layer.
type Cache struct {
	mu       sync.Mutex
	sessions map[string]entry
	// ttl of zero keeps sessions until they are deleted.
	ttl time.Duration
	now func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// SaveSession stores state and restarts its ttl. Expired sessions are
// dropped on the way.
func (c *Cache) SaveSession(_ context.Context, id string, state models.QuizState) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweep(now)

	e := entry{state: state}
	if c.ttl > 0 {
		e.expiresAt = now.Add(c.ttl)
	}
	c.sessions[id] = e
	return nil
}

func (c *Cache) Session(_ context.Context, id string) (models.QuizState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, exists := c.sessions[id]
	if !exists {
		return models.QuizState{}, models.ErrSessionNotFound
	}
	if c.expired(e, c.now()) {
		delete(c.sessions, id)
		return models.QuizState{}, models.ErrSessionNotFound
	}
	return e.state, nil
}

func (c *Cache) DeleteSession(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, id)
	return nil
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

func (c *Cache) sweep(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for id, e := range c.sessions {
		if c.expired(e, now) {
			delete(c.sessions, id)
		}
	}
}

func (c *Cache) expired(e entry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}
