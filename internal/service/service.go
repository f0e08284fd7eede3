package service

import (
	"context"

	"github.com/DanRulev/flashquiz/internal/models"
	"github.com/DanRulev/flashquiz/internal/quiz"
	"go.uber.org/zap"
)

//go:generate mockgen -source=service.go -destination=mock/service_mock.go

// SessionStore persists quiz state between requests. Session returns
// models.ErrSessionNotFound for unknown ids.
type SessionStore interface {
	SaveSession(ctx context.Context, id string, state models.QuizState) error
	Session(ctx context.Context, id string) (models.QuizState, error)
	DeleteSession(ctx context.Context, id string) error
}

type Service struct {
	*QuizS
}

func InitServices(engine *quiz.Engine, store SessionStore, log *zap.Logger) *Service {
	return &Service{
		QuizS: NewQuizService(engine, store, log),
	}
}
