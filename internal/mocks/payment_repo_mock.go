package mocks

import (
	"context"

	"github.com/joshu-sajeev/jobboard/internal/models"
	"github.com/stretchr/testify/mock"
)

type PaymentRepoMock struct {
	mock.Mock
}

func (m *PaymentRepoMock) Create(ctx context.Context, p *models.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PaymentRepoMock) GetBySessionID(ctx context.Context, sessionID string) (*models.Payment, error) {
	args := m.Called(ctx, sessionID)

	p, _ := args.Get(0).(*models.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) MarkCompleted(ctx context.Context, sessionID, paymentIntentID string) (bool, error) {
	args := m.Called(ctx, sessionID, paymentIntentID)
	return args.Bool(0), args.Error(1)
}
