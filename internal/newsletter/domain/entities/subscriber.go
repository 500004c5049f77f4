// Package entities defines the domain entities for the newsletter service.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber представляет собой подписчика рассылки.
type Subscriber struct {
	ID           uuid.UUID       `json:"id"`
	Email        SubscriberEmail `json:"email"`
	Name         SubscriberName  `json:"name"`
	SubscribedAt time.Time       `json:"subscribed_at"`
}

// NewSubscriber проверяет имя, затем адрес, и создает подписчика с новым
// идентификатором и текущим временем в UTC.
func NewSubscriber(name, email string) (*Subscriber, error) {
	subscriberName, err := ParseSubscriberName(name)
	if err != nil {
		return nil, err
	}

	subscriberEmail, err := ParseSubscriberEmail(email)
	if err != nil {
		return nil, err
	}

	return &Subscriber{
		ID:           uuid.New(),
		Email:        subscriberEmail,
		Name:         subscriberName,
		SubscribedAt: time.Now().UTC(),
	}, nil
}
