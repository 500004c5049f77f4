// Package app implements application business logic for the newsletter service.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"newsletter/internal/newsletter/domain/entities"
	"newsletter/internal/newsletter/metrics"
	"newsletter/internal/newsletter/ports/repositories"
	"newsletter/pkg/logger"
)

// ErrPersistence возвращается, когда проверенного подписчика не удалось сохранить.
var ErrPersistence = errors.New("failed to persist subscriber")

// Сообщения журнала.
const (
	LogSubscriptionRejected = "subscription request rejected"
	LogSubscriptionFailed   = "failed to save subscriber"
	LogSubscriptionAccepted = "new subscriber accepted"
)

// SubscriptionUseCase проверяет данные формы и сохраняет подписчика.
type SubscriptionUseCase struct {
	repo    repositories.SubscriptionRepository
	metrics *metrics.Metrics
}

// NewSubscriptionUseCase создает новый экземпляр SubscriptionUseCase.
// metrics может быть nil.
func NewSubscriptionUseCase(repo repositories.SubscriptionRepository, m *metrics.Metrics) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		repo:    repo,
		metrics: m,
	}
}

// Subscribe проверяет имя и адрес и сохраняет нового подписчика.
// Ошибка проверки возвращается как *entities.ValidationError, ошибка записи - как ErrPersistence.
// Повторная подписка с тем же адресом создает новую запись.
func (uc *SubscriptionUseCase) Subscribe(ctx context.Context, name, email string) (*entities.Subscriber, error) {
	log := logger.Log(ctx)

	subscriber, err := entities.NewSubscriber(name, email)
	if err != nil {
		uc.metrics.IncrementRequests(metrics.OutcomeRejected)
		log.Info(ctx, LogSubscriptionRejected, zap.Error(err))
		return nil, err
	}

	if err := uc.repo.Create(ctx, subscriber); err != nil {
		uc.metrics.IncrementRequests(metrics.OutcomeFailed)
		log.Error(ctx, LogSubscriptionFailed, zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	uc.metrics.IncrementRequests(metrics.OutcomeAccepted)
	log.Info(ctx, LogSubscriptionAccepted, zap.String("subscriber_id", subscriber.ID.String()))
	return subscriber, nil
}
