package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"newsletter/internal/newsletter/app"
	"newsletter/internal/newsletter/domain/entities"
	"newsletter/internal/newsletter/metrics"
	"newsletter/pkg/logger"
)

var ErrDatabaseOperation = errors.New("database error")

type mockSubscriptionRepository struct {
	mock.Mock
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, subscriber *entities.Subscriber) error {
	return m.Called(ctx, subscriber).Error(0)
}

func TestNewSubscriptionUseCase(t *testing.T) {
	useCase := app.NewSubscriptionUseCase(new(mockSubscriptionRepository), nil)

	assert.NotNil(t, useCase, "NewSubscriptionUseCase should return a non-nil object")
}

func TestSubscribe(t *testing.T) {
	tests := []struct {
		name            string
		inputName       string
		inputEmail      string
		repoErr         error
		expectRepoCall  bool
		expectedErr     error
		expectedOutcome string
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name:            "valid subscriber is saved",
			inputName:       "le guin",
			inputEmail:      "ursula_le_guin@gmail.com",
			expectRepoCall:  true,
			expectedOutcome: metrics.OutcomeAccepted,
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: app.LogSubscriptionAccepted,
		},
		{
			name:            "empty name is rejected without insert",
			inputName:       "",
			inputEmail:      "ursula_le_guin@gmail.com",
			expectedErr:     entities.ErrNameEmpty,
			expectedOutcome: metrics.OutcomeRejected,
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: app.LogSubscriptionRejected,
		},
		{
			name:            "invalid email is rejected without insert",
			inputName:       "Ursula",
			inputEmail:      "definitely-not-an-email",
			expectedErr:     entities.ErrInvalidEmail,
			expectedOutcome: metrics.OutcomeRejected,
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: app.LogSubscriptionRejected,
		},
		{
			name:            "repository failure is a persistence error",
			inputName:       "le guin",
			inputEmail:      "ursula_le_guin@gmail.com",
			repoErr:         ErrDatabaseOperation,
			expectRepoCall:  true,
			expectedErr:     app.ErrPersistence,
			expectedOutcome: metrics.OutcomeFailed,
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: app.LogSubscriptionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			ctx := logger.NewContext(context.Background(), logger.Wrap(zap.New(core)))
			ctx = logger.NewRequestIDContext(ctx, "req-1")

			repo := new(mockSubscriptionRepository)
			if tt.expectRepoCall {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(s *entities.Subscriber) bool {
					return s.Name.String() == tt.inputName && s.Email.String() == tt.inputEmail
				})).Return(tt.repoErr)
			}

			m := metrics.New(prometheus.NewRegistry())
			useCase := app.NewSubscriptionUseCase(repo, m)

			subscriber, err := useCase.Subscribe(ctx, tt.inputName, tt.inputEmail)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, subscriber)
			} else {
				require.NoError(t, err)
				require.NotNil(t, subscriber)
				assert.Equal(t, tt.inputName, subscriber.Name.String())
			}

			if tt.repoErr != nil {
				assert.ErrorIs(t, err, tt.repoErr)
			}

			repo.AssertExpectations(t)
			if !tt.expectRepoCall {
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}

			assert.InDelta(t, 1, testutil.ToFloat64(m.SubscriptionRequests.WithLabelValues(tt.expectedOutcome)), 0)

			entries := logs.FilterMessage(tt.expectedMessage).All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.expectedLevel, entries[0].Level)
			assert.Equal(t, "req-1", entries[0].ContextMap()[logger.RequestID])
		})
	}
}

func TestSubscribeDuplicatesCreateDistinctRecords(t *testing.T) {
	ctx := logger.NewContext(context.Background(), logger.Nop())

	var saved []*entities.Subscriber
	repo := new(mockSubscriptionRepository)
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = append(saved, args.Get(1).(*entities.Subscriber))
		}).
		Return(nil).
		Twice()

	useCase := app.NewSubscriptionUseCase(repo, nil)

	_, err := useCase.Subscribe(ctx, "le guin", "ursula_le_guin@gmail.com")
	require.NoError(t, err)
	_, err = useCase.Subscribe(ctx, "le guin", "ursula_le_guin@gmail.com")
	require.NoError(t, err)

	require.Len(t, saved, 2)
	assert.NotEqual(t, saved[0].ID, saved[1].ID)
	repo.AssertExpectations(t)
}
