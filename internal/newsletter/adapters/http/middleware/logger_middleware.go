package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"go.uber.org/zap"

	"newsletter/pkg/logger"
)

// NewLoggerMiddleware кладет в контекст запроса логгер и идентификатор корреляции
// и журналирует начало и завершение запроса.
// Должно подключаться после NewRequestIDMiddleware.
func NewLoggerMiddleware(base *logger.Logger) fiber.Handler {
	if base == nil {
		base = logger.Nop()
	}

	return func(ctx fiber.Ctx) error {
		start := time.Now()

		requestCtx := logger.NewRequestContext(ctx.Context(), base, requestid.FromContext(ctx))
		ctx.SetContext(requestCtx)

		log := base.With(
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()),
		)

		log.Debug(requestCtx, "Request started")

		err := ctx.Next()

		logFields := []zap.Field{
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}

		if err != nil {
			log.Error(requestCtx, "Request failed", append(logFields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(requestCtx, "Request completed", logFields...)
		return nil
	}
}
