package mocks

import (
	"context"

	"github.com/joshu-sajeev/jobboard/internal/models"
	"github.com/stretchr/testify/mock"
)

type SubscriptionRepoMock struct {
	mock.Mock
}

func (m *SubscriptionRepoMock) Upsert(ctx context.Context, s *models.EmailSubscription) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
