package web

import (
	"context"
	"errors"
	"strings"

	"github.com/DanRulev/flashquiz/internal/flashcards"
	"github.com/DanRulev/flashquiz/internal/models"
	"github.com/DanRulev/flashquiz/internal/quiz"
	"github.com/DanRulev/flashquiz/internal/report"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type QuizServiceI interface {
	StartSession(ctx context.Context, id string, cards []models.Flashcard) (models.Question, error)
	CurrentQuestion(ctx context.Context, id string) (models.Question, error)
	SubmitAnswer(ctx context.Context, id, input string) (models.AnswerOutcome, models.SessionStatus, error)
	Results(ctx context.Context, id string) (models.ResultSummary, error)
	DeleteSession(ctx context.Context, id string) error
}

// respondError maps service and loader errors onto HTTP statuses.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var (
		loadErr   *flashcards.LoadError
		schemaErr *flashcards.SchemaError
	)

	switch {
	case errors.As(err, &schemaErr), errors.As(err, &loadErr), errors.Is(err, quiz.ErrEmptySet):
		return BadRequest(c, err.Error())
	case errors.Is(err, models.ErrSessionNotFound):
		return NotFound(c, MsgSessionNotFound)
	case errors.Is(err, quiz.ErrSessionNotInProgress), errors.Is(err, quiz.ErrSessionNotFinished):
		return Conflict(c, err.Error())
	default:
		log.Error("request failed",
			zap.String("requestId", c.Get(HeaderRequestID)),
			zap.String("path", c.OriginalURL()),
			zap.Error(err))
		return InternalError(c, SomeThingWentWrong)
	}
}

// questionResponse tolerates a question whose choices could not be built.
func questionResponse(q models.Question, err error) (QuestionResponse, error) {
	if err != nil && !errors.Is(err, quiz.ErrInsufficientDistractors) {
		return QuestionResponse{}, err
	}

	resp := QuestionResponse{
		Number:  q.Number,
		Total:   q.Total,
		Text:    q.Text,
		Choices: q.Choices,
	}
	if resp.Choices == nil {
		resp.Choices = []string{}
	}
	if err != nil {
		resp.Note = report.MsgNotEnoughAnswers
	}

	return resp, nil
}

func NewStartSessionHandler(svc QuizServiceI, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return BadRequest(c, MsgFileRequired)
		}

		format, err := flashcards.FormatFromName(fh.Filename)
		if err != nil {
			return respondError(c, log, &flashcards.LoadError{Source: fh.Filename, Err: err})
		}

		f, err := fh.Open()
		if err != nil {
			return respondError(c, log, &flashcards.LoadError{Source: fh.Filename, Err: err})
		}
		defer f.Close()

		cards, err := flashcards.Load(f, format, fh.Filename)
		if err != nil {
			return respondError(c, log, err)
		}

		id := uuid.NewString()

		q, err := questionResponse(svc.StartSession(c.UserContext(), id, cards))
		if err != nil {
			return respondError(c, log, err)
		}

		return Created(c, StartSessionResponse{
			SessionID: id,
			Question:  q,
		})
	}
}

func NewCurrentQuestionHandler(svc QuizServiceI, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := questionResponse(svc.CurrentQuestion(c.UserContext(), c.Params("id")))
		if err != nil {
			return respondError(c, log, err)
		}

		return Ok(c, q)
	}
}

func NewSubmitAnswerHandler(svc QuizServiceI, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req AnswerRequest
		if err := c.BodyParser(&req); err != nil {
			log.Debug("body parse error", zap.String("requestId", c.Get(HeaderRequestID)), zap.Error(err))
			return BadRequest(c, MsgInvalidBody)
		}

		id := c.Params("id")
		ctx := c.UserContext()

		outcome, status, err := svc.SubmitAnswer(ctx, id, req.Answer)
		if err != nil {
			return respondError(c, log, err)
		}

		resp := AnswerResponse{
			Outcome:       outcome.Kind,
			Message:       report.Feedback(outcome),
			Selected:      outcome.Selected,
			CorrectAnswer: outcome.CorrectAnswer,
			Finished:      status == models.StatusFinished,
		}

		if !resp.Finished {
			next, err := questionResponse(svc.CurrentQuestion(ctx, id))
			if err != nil {
				return respondError(c, log, err)
			}
			resp.Next = &next
		}

		return Ok(c, resp)
	}
}

func NewResultsHandler(svc QuizServiceI, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := svc.Results(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, log, err)
		}

		resp := ResultsResponse{
			ResultSummary: summary,
			Report:        report.Render(summary),
		}
		if pct, ok := report.Percentage(summary); ok {
			resp.Percentage = pct.StringFixed(1)
		}

		return Ok(c, resp)
	}
}

func NewDeleteSessionHandler(svc QuizServiceI, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteSession(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, log, err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}
