// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"
)

// ErrTimeout возвращается, если хуки не уложились в отведенное время.
var ErrTimeout = errors.New("shutdown timed out")

// Hook - шаг завершения работы, например остановка сервера или закрытие пула.
type Hook struct {
	Name string
	Fn   func(context.Context) error
}

// Wait блокирует выполнение до получения SIGINT или SIGTERM либо отмены ctx,
// затем по порядку выполняет хуки в рамках заданного timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	<-sigCtx.Done()
	stop()

	return Run(timeout, hooks...)
}

// Run выполняет хуки по порядку. Ошибка одного хука не останавливает остальные.
func Run(timeout time.Duration, hooks ...Hook) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		var errs []error
		for _, hook := range hooks {
			if err := hook.Fn(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", hook.Name, err))
			}
		}
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ErrTimeout
	}
}
