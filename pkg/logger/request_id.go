package logger

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NewRequestIDContext кладет в контекст идентификатор корреляции запроса.
// Пустой идентификатор заменяется сгенерированным.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// GenerateRequestID генерирует новый идентификатор запроса (UUID v4).
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID создает копию логгера с полем request_id, если оно есть в контексте.
// Без идентификатора возвращается тот же логгер.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	if id, ok := GetRequestID(ctx); ok {
		return l.With(zap.String(RequestID, id))
	}
	return l
}

// NewRequestContext связывает с контекстом и логгер, и идентификатор запроса.
func NewRequestContext(ctx context.Context, log *Logger, requestID string) context.Context {
	return NewContext(NewRequestIDContext(ctx, requestID), log)
}
