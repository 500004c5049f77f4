package http

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"newsletter/pkg/logger"
)

// Константы сообщений сервера.
const (
	ErrBindAddress  = "failed to bind HTTP listener"
	ErrServe        = "HTTP server stopped with error"
	LogServing      = "HTTP server listening"
	LogShuttingDown = "stopping HTTP server"
)

// Server связывает fiber приложение с заранее открытым сокетом.
type Server struct {
	app      *fiber.App
	listener net.Listener
}

// Listen открывает сокет на addr. Ошибка привязки возвращается сразу,
// до запуска обслуживания запросов.
func Listen(addr string, app *fiber.App) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrBindAddress, addr, err)
	}
	return &Server{app: app, listener: ln}, nil
}

// Addr возвращает фактический адрес сокета, в том числе выбранный ОС порт.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Port возвращает фактический порт сокета.
func (s *Server) Port() int {
	if tcp, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}

// Serve обслуживает запросы до вызова Shutdown.
func (s *Server) Serve(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogServing, zap.String("address", s.Addr()))

	err := s.app.Listener(s.listener, fiber.ListenConfig{DisableStartupMessage: true})
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("%s: %w", ErrServe, err)
	}
	return nil
}

// Start запускает Serve в отдельной горутине. Ошибка обслуживания журналируется.
func (s *Server) Start(ctx context.Context) {
	go func() {
		if err := s.Serve(ctx); err != nil {
			logger.Log(ctx).Error(ctx, ErrServe, zap.Error(err))
		}
	}()
}

// Shutdown останавливает прием соединений и дожидается активных запросов.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogShuttingDown)
	return s.app.ShutdownWithContext(ctx)
}

// Close закрывает сокет, если сервер не был запущен.
func (s *Server) Close() error {
	return s.listener.Close()
}
