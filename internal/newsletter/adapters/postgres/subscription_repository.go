// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"newsletter/internal/newsletter/domain/entities"
	"newsletter/internal/newsletter/metrics"
	"newsletter/internal/newsletter/ports/repositories"
	"newsletter/pkg/logger"
	"newsletter/pkg/telemetry"
)

// Сообщения журнала и ошибок репозитория.
const (
	SpanSaveSubscriber     = "Saving new subscriber details in the database"
	ErrCreatingSubscriber  = "failed to create subscriber"
	LogSavingSubscriber    = "saving new subscriber"
	LogSubscriberSaved     = "new subscriber details saved"
	LogFailedExecuteInsert = "failed to execute query"
)

const insertSubscriberQuery = `INSERT INTO subscriptions (id, email, name, subscribed_at) VALUES ($1, $2, $3, $4)`

// PgxPoolInterface - часть pgxpool.Pool, используемая репозиторием.
type PgxPoolInterface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// SubscriptionRepository реализует repositories.SubscriptionRepository поверх Postgres.
type SubscriptionRepository struct {
	pool    PgxPoolInterface
	timeout time.Duration
	tracer  trace.Tracer
	metrics *metrics.Metrics
}

// Option настраивает SubscriptionRepository.
type Option func(*SubscriptionRepository)

// WithTimeout ограничивает время ожидания соединения и выполнения вставки.
func WithTimeout(d time.Duration) Option {
	return func(r *SubscriptionRepository) {
		r.timeout = d
	}
}

// WithTracer задает трассировщик для спанов запросов.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *SubscriptionRepository) {
		r.tracer = tracer
	}
}

// WithMetrics задает метрики длительности вставки.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *SubscriptionRepository) {
		r.metrics = m
	}
}

// NewSubscriptionRepository создает новый репозиторий подписчиков.
func NewSubscriptionRepository(pool PgxPoolInterface, opts ...Option) repositories.SubscriptionRepository {
	r := &SubscriptionRepository{
		pool:   pool,
		tracer: telemetry.Tracer(nil),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create сохраняет нового подписчика.
func (r *SubscriptionRepository) Create(ctx context.Context, subscriber *entities.Subscriber) error {
	requestID, _ := logger.GetRequestID(ctx)
	ctx, span := r.tracer.Start(ctx, SpanSaveSubscriber, trace.WithAttributes(
		attribute.String("request_id", requestID),
		attribute.String("subscriber_email", subscriber.Email.String()),
		attribute.String("subscriber_name", subscriber.Name.String()),
	))
	defer span.End()

	log := logger.Log(ctx).With(zap.String("repository", "subscription"), zap.String("method", "Create"))
	log.Debug(ctx, LogSavingSubscriber, zap.String("subscriber_id", subscriber.ID.String()))

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	_, err := r.pool.Exec(ctx, insertSubscriberQuery,
		subscriber.ID,
		subscriber.Email.String(),
		subscriber.Name.String(),
		subscriber.SubscribedAt,
	)
	r.metrics.ObservePersist(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, ErrCreatingSubscriber)
		log.Error(ctx, LogFailedExecuteInsert, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreatingSubscriber, err)
	}

	log.Info(ctx, LogSubscriberSaved, zap.String("subscriber_id", subscriber.ID.String()))
	return nil
}
