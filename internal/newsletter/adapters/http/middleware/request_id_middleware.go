// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"newsletter/pkg/logger"
)

// NewRequestIDMiddleware присваивает запросу идентификатор корреляции.
// Входящий заголовок X-Request-ID сохраняется, иначе генерируется UUID.
// Идентификатор возвращается клиенту в том же заголовке.
func NewRequestIDMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: logger.GenerateRequestID,
	})
}
