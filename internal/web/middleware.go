package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const HeaderRequestID = "requestId"

// SetHeaderID makes sure every request carries a request id.
func SetHeaderID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
			c.Request().Header.Set(HeaderRequestID, reqID)
		}
		c.Set(HeaderRequestID, reqID)
		return c.Next()
	}
}

// AuditLogger logs every request once it has been handled.
func AuditLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := []zap.Field{
			zap.String("requestId", c.Get(HeaderRequestID)),
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if isMultipart(c) {
			fields = append(fields, zap.Int("contentLength", len(c.Body())))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		log.Info("request", fields...)

		return err
	}
}
