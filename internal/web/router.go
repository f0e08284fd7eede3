package web

import (
	"time"

	"github.com/DanRulev/flashquiz/internal/config"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func GetRouter(group fiber.Router, svc QuizServiceI, log *zap.Logger) {
	sessions := group.Group("/sessions")
	sessions.Post("", NewStartSessionHandler(svc, log))
	sessions.Get("/:id/question", NewCurrentQuestionHandler(svc, log))
	sessions.Post("/:id/answers", NewSubmitAnswerHandler(svc, log))
	sessions.Get("/:id/results", NewResultsHandler(svc, log))
	sessions.Delete("/:id", NewDeleteSessionHandler(svc, log))
}

func NewApp(cfg config.WebConfig, svc QuizServiceI, log *zap.Logger) *fiber.App {
	app := fiber.New(
		fiber.Config{
			BodyLimit:             cfg.UploadMaxSize,
			ReadTimeout:           cfg.ReadTimeout,
			WriteTimeout:          cfg.WriteTimeout,
			IdleTimeout:           30 * time.Second,
			DisableStartupMessage: true,
			CaseSensitive:         true,
			StrictRouting:         true,
		},
	)

	app.Use(SetHeaderID())
	app.Use(AuditLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return Ok(c, "ok")
	})

	GetRouter(app.Group("/api/v1"), svc, log)

	return app
}
