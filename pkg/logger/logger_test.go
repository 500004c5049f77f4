package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"newsletter/pkg/logger"
)

func newObserved(level zapcore.Level) (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return logger.Wrap(zap.New(core)), logs
}

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		env   logger.Environment
		level string
	}{
		{logger.Development, "debug"},
		{logger.Development, "info"},
		{logger.Development, "warning"},
		{logger.Production, "error"},
		{logger.Production, "invalid"},
		{logger.Production, ""},
	}

	for _, tc := range testCases {
		t.Run(string(tc.env)+"/level="+tc.level, func(t *testing.T) {
			log, err := logger.NewLogger(tc.env, tc.level)
			require.NoError(t, err)
			require.NotNil(t, log)
			assert.NotNil(t, log.Zap())
		})
	}
}

func TestLoggerAddsRequestID(t *testing.T) {
	t.Run("context with request ID adds field to logs", func(t *testing.T) {
		log, logs := newObserved(zapcore.DebugLevel)
		ctx := logger.NewRequestIDContext(context.Background(), "req-42")

		log.Info(ctx, "hello", zap.String("custom", "value"))

		entries := logs.All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-42", fields[logger.RequestID])
		assert.Equal(t, "value", fields["custom"])
	})

	t.Run("context without request ID doesn't add field", func(t *testing.T) {
		log, logs := newObserved(zapcore.DebugLevel)

		log.Warn(context.Background(), "hello")

		entries := logs.All()
		require.Len(t, entries, 1)
		_, found := entries[0].ContextMap()[logger.RequestID]
		assert.False(t, found)
	})

	t.Run("level filtering is respected", func(t *testing.T) {
		log, logs := newObserved(zapcore.InfoLevel)

		log.Debug(context.Background(), "hidden")
		log.Error(context.Background(), "shown")

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "shown", logs.All()[0].Message)
	})
}

func TestWithRequestID(t *testing.T) {
	log, logs := newObserved(zapcore.DebugLevel)

	t.Run("returns same logger when no request ID exists", func(t *testing.T) {
		assert.Same(t, log, log.WithRequestID(context.Background()))
	})

	t.Run("returns enriched logger when request ID exists", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "abc")
		enriched := log.WithRequestID(ctx)
		assert.NotSame(t, log, enriched)

		enriched.Info(context.Background(), "message")
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "abc", logs.All()[0].ContextMap()[logger.RequestID])
	})
}

func TestRequestIDContext(t *testing.T) {
	t.Run("stores provided request ID", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "provided")
		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "provided", id)
	})

	t.Run("generates new request ID when empty string provided", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "  ")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("returns false when no request ID in context", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})

	t.Run("generates unique IDs", func(t *testing.T) {
		assert.NotEqual(t, logger.GenerateRequestID(), logger.GenerateRequestID())
	})

	t.Run("request context carries both values", func(t *testing.T) {
		log := logger.Nop()
		ctx := logger.NewRequestContext(context.Background(), log, "rid")

		fromCtx, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, log, fromCtx)

		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "rid", id)
	})
}

func TestFromContext(t *testing.T) {
	t.Run("success when logger exists in context", func(t *testing.T) {
		log := logger.Nop()
		ctx := logger.NewContext(context.Background(), log)

		retrieved, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, log, retrieved)
	})

	t.Run("error when no logger in context", func(t *testing.T) {
		retrieved, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, retrieved)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestGlobalLogger(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	t.Run("returns fallback logger when no context or global logger", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		first := logger.Log(context.Background())
		second := logger.Log(context.Background())
		require.NotNil(t, first)
		assert.Same(t, first, second)
	})

	t.Run("re-initialization is a no-op", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Production, "info"))
		first := logger.Log(context.Background())

		require.NoError(t, logger.InitGlobalLogger(logger.Development))
		second := logger.Log(context.Background())

		assert.Same(t, first, second)
	})

	t.Run("logger from context has priority over global logger", func(t *testing.T) {
		logger.SetGlobalLogger(logger.Nop())
		scoped := logger.Nop()
		ctx := logger.NewContext(context.Background(), scoped)

		assert.Same(t, scoped, logger.Log(ctx))
	})
}
