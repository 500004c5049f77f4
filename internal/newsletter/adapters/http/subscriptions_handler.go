package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"newsletter/internal/newsletter/domain/entities"
	"newsletter/internal/newsletter/ports/services"
	"newsletter/pkg/logger"
	"newsletter/pkg/telemetry"
)

// Константы ошибок и сообщений для логирования.
const (
	SpanAddSubscriber = "Adding a new subscriber"

	LogHandlerSubscribe = "handling subscribe request"

	ErrMsgInvalidForm = "invalid form data"
	ErrMsgInternal    = "internal server error"
)

// SubscribeForm - данные формы POST /subscriptions.
type SubscribeForm struct {
	Name  string `form:"name"`
	Email string `form:"email"`
}

// Handler обработчик HTTP-запросов приема подписок.
type Handler struct {
	subscriptions services.SubscriptionService
	tracer        trace.Tracer
}

// NewHandler создает новый экземпляр обработчика подписок.
func NewHandler(subscriptions services.SubscriptionService, tracer trace.Tracer) *Handler {
	if tracer == nil {
		tracer = telemetry.Tracer(nil)
	}
	return &Handler{
		subscriptions: subscriptions,
		tracer:        tracer,
	}
}

// HealthCheck отвечает 200 с пустым телом и не проверяет зависимости.
func (h *Handler) HealthCheck(ctx fiber.Ctx) error {
	ctx.Status(fiber.StatusOK)
	return nil
}

// Subscribe обрабатывает форму подписки.
func (h *Handler) Subscribe(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	var form SubscribeForm
	if err := ctx.Bind().WithoutAutoHandling().Form(&form); err != nil {
		logger.Log(requestCtx).Info(requestCtx, ErrMsgInvalidForm, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidForm)
	}

	requestID, _ := logger.GetRequestID(requestCtx)
	spanCtx, span := h.tracer.Start(requestCtx, SpanAddSubscriber, trace.WithAttributes(
		attribute.String("request_id", requestID),
		attribute.String("subscriber_email", form.Email),
		attribute.String("subscriber_name", form.Name),
	))
	defer span.End()

	log := logger.Log(requestCtx).With(
		zap.String("subscriber_email", form.Email),
		zap.String("subscriber_name", form.Name),
	)
	spanCtx = logger.NewContext(spanCtx, log)
	log.Debug(spanCtx, LogHandlerSubscribe)

	_, err := h.subscriptions.Subscribe(spanCtx, form.Name, form.Email)
	if err != nil {
		var ve *entities.ValidationError
		if errors.As(err, &ve) {
			span.SetStatus(codes.Error, ve.Reason.Error())
			return sendError(ctx, fiber.StatusBadRequest, ve.Reason.Error())
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, ErrMsgInternal)
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}

	ctx.Status(fiber.StatusOK)
	return nil
}

func sendError(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(fiber.Map{"error": message}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}
	return nil
}
