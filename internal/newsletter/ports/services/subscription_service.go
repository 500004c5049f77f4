// Package services defines service interfaces used by the newsletter adapters.
package services

import (
	"context"

	"newsletter/internal/newsletter/domain/entities"
)

// SubscriptionService определяет интерфейс приема новых подписчиков.
type SubscriptionService interface {
	// Subscribe проверяет данные формы и сохраняет подписчика
	Subscribe(ctx context.Context, name, email string) (*entities.Subscriber, error)
}
