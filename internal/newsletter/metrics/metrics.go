// Package metrics provides Prometheus collectors for the newsletter service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы обработки запроса на подписку.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics отслеживает поток подписок и длительность записи в базу.
type Metrics struct {
	SubscriptionRequests *prometheus.CounterVec
	PersistDuration      prometheus.Histogram
}

// New регистрирует метрики сервиса в reg.
// Каждый экземпляр приложения и каждый тест передают собственный реестр.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SubscriptionRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "newsletter_subscription_requests_total",
			Help: "Total number of subscription requests by outcome",
		}, []string{"outcome"}),
		PersistDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "newsletter_subscription_persist_duration_seconds",
			Help:    "Duration of inserting a subscriber into the database",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// NewNop создает метрики, не привязанные к реестру.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// IncrementRequests учитывает обработанный запрос с указанным исходом.
func (m *Metrics) IncrementRequests(outcome string) {
	if m == nil {
		return
	}
	m.SubscriptionRequests.WithLabelValues(outcome).Inc()
}

// ObservePersist записывает длительность вставки, start - момент ее начала.
func (m *Metrics) ObservePersist(start time.Time) {
	if m == nil {
		return
	}
	m.PersistDuration.Observe(time.Since(start).Seconds())
}
