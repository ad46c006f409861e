package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/joshu-sajeev/jobboard/common"
	"github.com/joshu-sajeev/jobboard/internal/cache"
	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/joshu-sajeev/jobboard/internal/dto"
	"github.com/joshu-sajeev/jobboard/internal/lifecycle"
	"github.com/joshu-sajeev/jobboard/internal/models"
)

type ModerationService struct {
	jobs        JobRepoInterface
	companies   CompanyRepoInterface
	invalidator cache.Invalidator
	log         *slog.Logger
	now         func() time.Time
}

func NewModerationService(
	jobs JobRepoInterface,
	companies CompanyRepoInterface,
	invalidator cache.Invalidator,
	log *slog.Logger,
) *ModerationService {
	return &ModerationService{
		jobs:        jobs,
		companies:   companies,
		invalidator: invalidator,
		log:         log.With(slog.String("component", "moderation")),
		now:         time.Now,
	}
}

var _ ModerationServiceInterface = (*ModerationService)(nil)

// UpdateStatus applies an admin decision to a job. Requests for the status
// the job already holds succeed without writing anything.
func (s *ModerationService) UpdateStatus(ctx context.Context, jobID string, target config.JobStatus) (*dto.AdminJobDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Wrap(http.StatusNotFound, err, "job not found")
		}
		return nil, common.FromStoreError(err, "load job")
	}

	changed, err := s.transition(ctx, job, target)
	if err != nil {
		return nil, err
	}
	if changed {
		s.invalidate(ctx, job.Slug)
	}

	out := toAdminJob(*job)
	return &out, nil
}

// ExpireDue expires every active job whose publication period has ended.
// It keeps going past individual failures and reports how many jobs it
// expired together with the joined errors. A job that changed status since
// it was listed is skipped.
func (s *ModerationService) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.jobs.ListDueForExpiry(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list due jobs: %w", err)
	}

	var (
		expired []string
		errs    []error
	)
	for i := range due {
		job := &due[i]
		changed, err := s.transition(ctx, job, config.JobStatusExpired)
		if errors.Is(err, common.ErrConflict) {
			s.log.Debug("job changed before expiry", slog.String("job_id", job.ID))
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("expire job %s: %w", job.ID, err))
			continue
		}
		if changed {
			expired = append(expired, job.Slug)
		}
	}

	if len(expired) > 0 {
		s.invalidate(ctx, expired...)
	}
	return len(expired), errors.Join(errs...)
}

func (s *ModerationService) ListJobs(ctx context.Context, status config.JobStatus) ([]dto.AdminJobDTO, error) {
	jobs, err := s.jobs.ListByStatus(ctx, status)
	if err != nil {
		return nil, common.FromStoreError(err, "list jobs")
	}

	out := make([]dto.AdminJobDTO, len(jobs))
	for i, j := range jobs {
		out[i] = toAdminJob(j)
	}
	return out, nil
}

func (s *ModerationService) Stats(ctx context.Context) (*dto.AdminStatsDTO, error) {
	var stats dto.AdminStatsDTO

	counts := []struct {
		status config.JobStatus
		dst    *int64
	}{
		{config.JobStatusPending, &stats.Pending},
		{config.JobStatusActive, &stats.Active},
		{"", &stats.Total},
	}
	for _, c := range counts {
		n, err := s.jobs.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, common.FromStoreError(err, "count jobs")
		}
		*c.dst = n
	}

	companies, err := s.companies.Count(ctx)
	if err != nil {
		return nil, common.FromStoreError(err, "count companies")
	}
	stats.Companies = companies

	return &stats, nil
}

// transition runs target through the lifecycle and persists the result
// with a compare-and-swap on the status the job was loaded with. On success
// job reflects the stored row.
func (s *ModerationService) transition(ctx context.Context, job *models.Job, target config.JobStatus) (bool, error) {
	res, err := lifecycle.ApplyTransition(job.Status, target, s.now())
	if err != nil {
		return false, common.APIError{
			Status:  http.StatusConflict,
			Message: err.Error(),
			Fields:  map[string]any{"current": job.Status, "requested": target},
			Err:     err,
		}
	}
	if !res.Changed {
		return false, nil
	}

	ok, err := s.jobs.TransitionStatus(ctx, job.ID, job.Status, res.Status, res.SideEffects)
	if err != nil {
		return false, common.FromStoreError(err, "update job status")
	}
	if !ok {
		return false, common.Wrap(http.StatusConflict, common.ErrConflict, "job status changed concurrently, reload and retry")
	}

	s.log.Info("job status changed",
		slog.String("job_id", job.ID),
		slog.String("from", job.Status.String()),
		slog.String("to", res.Status.String()),
	)

	job.Status = res.Status
	if res.SideEffects.PublishedAt != nil {
		job.PublishedAt = res.SideEffects.PublishedAt
	}
	if res.SideEffects.ExpiresAt != nil {
		job.ExpiresAt = res.SideEffects.ExpiresAt
	}
	return true, nil
}

// invalidate is best effort: the status change is already committed and a
// stale page heals on the next render cycle.
func (s *ModerationService) invalidate(ctx context.Context, slugs ...string) {
	if err := s.invalidator.Invalidate(ctx, cache.JobPaths(slugs...)...); err != nil {
		s.log.Warn("page invalidation failed", slog.Any("error", err))
	}
}

func toAdminJob(j models.Job) dto.AdminJobDTO {
	out := dto.AdminJobDTO{
		ID:          j.ID,
		Title:       j.Title,
		Slug:        j.Slug,
		CompanyID:   j.CompanyID,
		Status:      j.Status,
		Featured:    j.Featured,
		PublishedAt: j.PublishedAt,
		ExpiresAt:   j.ExpiresAt,
		CreatedAt:   j.CreatedAt,
	}
	if j.Company != nil {
		out.CompanyName = j.Company.Name
	}
	return out
}
