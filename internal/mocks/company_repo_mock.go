package mocks

import (
	"context"

	"github.com/joshu-sajeev/jobboard/internal/models"
	"github.com/stretchr/testify/mock"
)

type CompanyRepoMock struct {
	mock.Mock
}

func (m *CompanyRepoMock) GetByID(ctx context.Context, id string) (*models.Company, error) {
	args := m.Called(ctx, id)

	c, _ := args.Get(0).(*models.Company)
	return c, args.Error(1)
}

func (m *CompanyRepoMock) GetBySlug(ctx context.Context, slug string) (*models.Company, error) {
	args := m.Called(ctx, slug)

	c, _ := args.Get(0).(*models.Company)
	return c, args.Error(1)
}

func (m *CompanyRepoMock) List(ctx context.Context) ([]models.Company, error) {
	args := m.Called(ctx)

	companies, _ := args.Get(0).([]models.Company)
	return companies, args.Error(1)
}

func (m *CompanyRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}
