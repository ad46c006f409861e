package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type InvalidatorMock struct {
	mock.Mock
}

func (m *InvalidatorMock) Invalidate(ctx context.Context, paths ...string) error {
	args := m.Called(ctx, paths)
	return args.Error(0)
}
