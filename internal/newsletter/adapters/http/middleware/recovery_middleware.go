package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"newsletter/pkg/logger"
)

// ErrMsgInternal - тело ответа для непредвиденных ошибок сервера.
const ErrMsgInternal = "internal server error"

// NewRecoveryMiddleware создает новое промежуточное ПО для восстановления после паники.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			requestCtx := ctx.Context()
			logger.Log(requestCtx).Error(requestCtx, "Server panic",
				zap.String("error", fmt.Sprintf("%v", r)),
				zap.String("stack", string(debug.Stack())),
			)

			err = ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": ErrMsgInternal,
			})
		}()

		return ctx.Next()
	}
}
