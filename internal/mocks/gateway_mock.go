package mocks

import (
	"context"

	"github.com/joshu-sajeev/jobboard/internal/payment"
	"github.com/stretchr/testify/mock"
)

type GatewayMock struct {
	mock.Mock
}

func (m *GatewayMock) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, req)

	sess, _ := args.Get(0).(*payment.CheckoutSession)
	return sess, args.Error(1)
}

func (m *GatewayMock) VerifyEvent(payload []byte, signature string) (*payment.Event, error) {
	args := m.Called(payload, signature)

	evt, _ := args.Get(0).(*payment.Event)
	return evt, args.Error(1)
}
