package mocks

import (
	"context"
	"time"

	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/joshu-sajeev/jobboard/internal/dto"
	"github.com/joshu-sajeev/jobboard/internal/payment"
	"github.com/stretchr/testify/mock"
)

type JobServiceMock struct {
	mock.Mock
}

func (m *JobServiceMock) PostJob(ctx context.Context, req *dto.JobCreateDTO) (*dto.JobCreatedDTO, error) {
	args := m.Called(ctx, req)

	out, _ := args.Get(0).(*dto.JobCreatedDTO)
	return out, args.Error(1)
}

func (m *JobServiceMock) ListJobs(ctx context.Context, q dto.JobListQuery) (*dto.JobPageDTO, error) {
	args := m.Called(ctx, q)

	out, _ := args.Get(0).(*dto.JobPageDTO)
	return out, args.Error(1)
}

func (m *JobServiceMock) LatestJobs(ctx context.Context, limit int) ([]dto.JobResponseDTO, error) {
	args := m.Called(ctx, limit)

	out, _ := args.Get(0).([]dto.JobResponseDTO)
	return out, args.Error(1)
}

func (m *JobServiceMock) GetJobBySlug(ctx context.Context, slug string) (*dto.JobResponseDTO, error) {
	args := m.Called(ctx, slug)

	out, _ := args.Get(0).(*dto.JobResponseDTO)
	return out, args.Error(1)
}

func (m *JobServiceMock) ListCompanies(ctx context.Context) ([]dto.CompanyResponseDTO, error) {
	args := m.Called(ctx)

	out, _ := args.Get(0).([]dto.CompanyResponseDTO)
	return out, args.Error(1)
}

func (m *JobServiceMock) GetCompanyBySlug(ctx context.Context, slug string) (*dto.CompanyResponseDTO, error) {
	args := m.Called(ctx, slug)

	out, _ := args.Get(0).(*dto.CompanyResponseDTO)
	return out, args.Error(1)
}

func (m *JobServiceMock) Stats(ctx context.Context) (*dto.StatsDTO, error) {
	args := m.Called(ctx)

	out, _ := args.Get(0).(*dto.StatsDTO)
	return out, args.Error(1)
}

type ModerationServiceMock struct {
	mock.Mock
}

func (m *ModerationServiceMock) UpdateStatus(ctx context.Context, jobID string, target config.JobStatus) (*dto.AdminJobDTO, error) {
	args := m.Called(ctx, jobID, target)

	out, _ := args.Get(0).(*dto.AdminJobDTO)
	return out, args.Error(1)
}

func (m *ModerationServiceMock) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *ModerationServiceMock) ListJobs(ctx context.Context, status config.JobStatus) ([]dto.AdminJobDTO, error) {
	args := m.Called(ctx, status)

	out, _ := args.Get(0).([]dto.AdminJobDTO)
	return out, args.Error(1)
}

func (m *ModerationServiceMock) Stats(ctx context.Context) (*dto.AdminStatsDTO, error) {
	args := m.Called(ctx)

	out, _ := args.Get(0).(*dto.AdminStatsDTO)
	return out, args.Error(1)
}

type SubscriptionServiceMock struct {
	mock.Mock
}

func (m *SubscriptionServiceMock) Subscribe(ctx context.Context, req *dto.SubscribeDTO) (*dto.SubscribedDTO, error) {
	args := m.Called(ctx, req)

	out, _ := args.Get(0).(*dto.SubscribedDTO)
	return out, args.Error(1)
}

type ReconcilerMock struct {
	mock.Mock
}

func (m *ReconcilerMock) HandleEvent(ctx context.Context, payload []byte, signature string) (*payment.Outcome, error) {
	args := m.Called(ctx, payload, signature)

	out, _ := args.Get(0).(*payment.Outcome)
	return out, args.Error(1)
}
