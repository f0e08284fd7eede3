package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/DanRulev/flashquiz/internal/models"
	"github.com/DanRulev/flashquiz/internal/quiz"
	"go.uber.org/zap"
)

type QuizS struct {
	engine *quiz.Engine
	store  SessionStore
	log    *zap.Logger

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is shared by every caller holding or waiting on one id. refs
// counts them so the entry lives exactly as long as someone needs it.
type sessionLock struct {
	sync.Mutex
	refs int
}

func NewQuizService(engine *quiz.Engine, store SessionStore, log *zap.Logger) *QuizS {
	return &QuizS{
		engine: engine,
		store:  store,
		log:    log,
		locks:  make(map[string]*sessionLock),
	}
}

// lock serializes load-transition-save cycles on one session id. The
// returned func releases the lock and drops the entry once nobody else holds
// or waits on it.
func (q *QuizS) lock(id string) func() {
	q.mu.Lock()
	l, ok := q.locks[id]
	if !ok {
		l = &sessionLock{}
		q.locks[id] = l
	}
	l.refs++
	q.mu.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		q.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(q.locks, id)
		}
		q.mu.Unlock()
	}
}

// StartSession begins a quiz over cards under id, replacing any session
// already stored there, and returns the first question. The question is
// valid even when the error wraps quiz.ErrInsufficientDistractors.
func (q *QuizS) StartSession(ctx context.Context, id string, cards []models.Flashcard) (models.Question, error) {
	unlock := q.lock(id)
	defer unlock()

	state, err := q.engine.Start(cards)
	if err != nil {
		return models.Question{}, err
	}

	if err := q.store.SaveSession(ctx, id, state); err != nil {
		q.log.Error("failed to save new session", zap.String("session", id), zap.Error(err))
		return models.Question{}, fmt.Errorf("failed to start session: %w", err)
	}

	q.log.Info("session started", zap.String("session", id), zap.Int("flashcards", len(cards)))

	return q.engine.Current(state)
}

// CurrentQuestion returns the pending question without changing state.
func (q *QuizS) CurrentQuestion(ctx context.Context, id string) (models.Question, error) {
	state, err := q.store.Session(ctx, id)
	if err != nil {
		return models.Question{}, err
	}

	return q.engine.Current(state)
}

// SubmitAnswer applies one answer and reports the outcome together with the
// status the session is left in.
func (q *QuizS) SubmitAnswer(ctx context.Context, id, input string) (models.AnswerOutcome, models.SessionStatus, error) {
	unlock := q.lock(id)
	defer unlock()

	state, err := q.store.Session(ctx, id)
	if err != nil {
		return models.AnswerOutcome{}, "", err
	}

	next, outcome, err := q.engine.Submit(state, input)
	if err != nil {
		return models.AnswerOutcome{}, state.Status, err
	}

	if err := q.store.SaveSession(ctx, id, next); err != nil {
		q.log.Error("failed to save session", zap.String("session", id), zap.Error(err))
		return models.AnswerOutcome{}, state.Status, fmt.Errorf("failed to save answer: %w", err)
	}

	fields := []zap.Field{
		zap.String("session", id),
		zap.String("outcome", string(outcome.Kind)),
		zap.Int("turn", next.CurrentIndex),
	}
	if outcome.Reason != nil {
		fields = append(fields, zap.NamedError("reason", outcome.Reason))
	}
	q.log.Debug("answer submitted", fields...)

	return outcome, next.Status, nil
}

// Results summarizes a finished session.
func (q *QuizS) Results(ctx context.Context, id string) (models.ResultSummary, error) {
	state, err := q.store.Session(ctx, id)
	if err != nil {
		return models.ResultSummary{}, err
	}

	return quiz.Finalize(state)
}

// DeleteSession forgets id. Deleting an unknown session is not an error.
func (q *QuizS) DeleteSession(ctx context.Context, id string) error {
	unlock := q.lock(id)
	defer unlock()

	err := q.store.DeleteSession(ctx, id)
	if err != nil && !errors.Is(err, models.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
