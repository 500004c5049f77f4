// Package repositories defines repository interfaces for the newsletter service.
package repositories

import (
	"context"

	"newsletter/internal/newsletter/domain/entities"
)

// SubscriptionRepository определяет интерфейс хранилища подписчиков.
// Записи только добавляются: обновления и удаления не предусмотрены.
type SubscriptionRepository interface {
	Create(ctx context.Context, subscriber *entities.Subscriber) error
}
