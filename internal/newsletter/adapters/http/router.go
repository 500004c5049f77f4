// Package http содержит компоненты HTTP сервера сервиса подписок.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"newsletter/internal/newsletter/adapters/http/middleware"
	"newsletter/internal/newsletter/config"
	"newsletter/internal/newsletter/ports/services"
	"newsletter/pkg/logger"
)

// Маршруты сервиса.
const (
	RouteHealthCheck   = "/health_check"
	RouteSubscriptions = "/subscriptions"
	RouteMetrics       = "/metrics"
)

// Dependencies - зависимости, внедряемые в HTTP слой.
type Dependencies struct {
	Logger        *logger.Logger
	Subscriptions services.SubscriptionService
	Tracer        trace.Tracer
	// Gatherer включает GET /metrics, если задан.
	Gatherer prometheus.Gatherer
}

// NewApp создает fiber приложение с таймаутами из настроек и подключенными маршрутами.
func NewApp(settings config.ApplicationSettings, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "newsletter",
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
		ErrorHandler: ErrorHandler,
	})
	SetupRouter(app, deps)
	return app
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	handler := NewHandler(deps.Subscriptions, deps.Tracer)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware(deps.Logger))
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get(RouteHealthCheck, handler.HealthCheck)
	app.Post(RouteSubscriptions, handler.Subscribe)

	if deps.Gatherer != nil {
		app.Get(RouteMetrics, adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}

// ErrorHandler отвечает JSON с текстом ошибки fiber либо общим сообщением,
// не раскрывая внутренние ошибки клиенту.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := ErrMsgInternal

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}
