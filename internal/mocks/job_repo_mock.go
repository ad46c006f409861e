package mocks

import (
	"context"
	"time"

	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/joshu-sajeev/jobboard/internal/dto"
	"github.com/joshu-sajeev/jobboard/internal/lifecycle"
	"github.com/joshu-sajeev/jobboard/internal/models"
	"github.com/stretchr/testify/mock"
)

type JobRepoMock struct {
	mock.Mock
}

func (m *JobRepoMock) Create(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *JobRepoMock) GetByID(ctx context.Context, id string) (*models.Job, error) {
	args := m.Called(ctx, id)

	job, _ := args.Get(0).(*models.Job)
	return job, args.Error(1)
}

func (m *JobRepoMock) GetActiveBySlug(ctx context.Context, slug string) (*models.Job, error) {
	args := m.Called(ctx, slug)

	job, _ := args.Get(0).(*models.Job)
	return job, args.Error(1)
}

func (m *JobRepoMock) ListActive(ctx context.Context, q dto.JobListQuery, perPage int) ([]models.Job, int64, error) {
	args := m.Called(ctx, q, perPage)

	jobs, _ := args.Get(0).([]models.Job)
	total, _ := args.Get(1).(int64)
	return jobs, total, args.Error(2)
}

func (m *JobRepoMock) Latest(ctx context.Context, limit int) ([]models.Job, error) {
	args := m.Called(ctx, limit)

	jobs, _ := args.Get(0).([]models.Job)
	return jobs, args.Error(1)
}

func (m *JobRepoMock) ListActiveByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	args := m.Called(ctx, companyID)

	jobs, _ := args.Get(0).([]models.Job)
	return jobs, args.Error(1)
}

func (m *JobRepoMock) ListByStatus(ctx context.Context, status config.JobStatus) ([]models.Job, error) {
	args := m.Called(ctx, status)

	jobs, _ := args.Get(0).([]models.Job)
	return jobs, args.Error(1)
}

func (m *JobRepoMock) CountByStatus(ctx context.Context, status config.JobStatus) (int64, error) {
	args := m.Called(ctx, status)

	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *JobRepoMock) TransitionStatus(
	ctx context.Context,
	id string,
	from, to config.JobStatus,
	fx lifecycle.SideEffects,
) (bool, error) {
	args := m.Called(ctx, id, from, to, fx)
	return args.Bool(0), args.Error(1)
}

func (m *JobRepoMock) ListDueForExpiry(ctx context.Context, now time.Time) ([]models.Job, error) {
	args := m.Called(ctx, now)

	jobs, _ := args.Get(0).([]models.Job)
	return jobs, args.Error(1)
}
