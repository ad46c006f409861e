package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/joshu-sajeev/jobboard/common"
	"github.com/joshu-sajeev/jobboard/internal/admin"
	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/joshu-sajeev/jobboard/internal/dto"
	"github.com/joshu-sajeev/jobboard/internal/job"
	"github.com/joshu-sajeev/jobboard/internal/lifecycle"
	"github.com/joshu-sajeev/jobboard/internal/models"
	"github.com/joshu-sajeev/jobboard/internal/payment"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

var (
	_ job.JobRepoInterface     = (*JobRepository)(nil)
	_ payment.JobRepoInterface = (*JobRepository)(nil)
	_ admin.JobRepoInterface   = (*JobRepository)(nil)
)

// Create inserts a new job record into the database.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// GetByID retrieves a job with its company regardless of status.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).Preload("Company").First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get job %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

// GetActiveBySlug retrieves a publicly visible job.
func (r *JobRepository) GetActiveBySlug(ctx context.Context, slug string) (*models.Job, error) {
	var job models.Job
	err := r.visible(ctx).
		Preload("Company").
		Where("jobs.slug = ?", slug).
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get job by slug %s: %w", slug, common.ErrNotFound)
		}
		return nil, fmt.Errorf("get job by slug: %w", err)
	}
	return &job, nil
}

// ListActive returns one page of visible jobs matching the filters together
// with the total number of matches.
func (r *JobRepository) ListActive(ctx context.Context, q dto.JobListQuery, perPage int) ([]models.Job, int64, error) {
	var total int64
	if err := r.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	page := max(q.Page, 1)

	var jobs []models.Job
	err := r.filtered(ctx, q).
		Preload("Company").
		Order("jobs.featured DESC").
		Order("jobs.published_at DESC").
		Order("jobs.id").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, total, nil
}

// Latest returns the most recently published visible jobs.
func (r *JobRepository) Latest(ctx context.Context, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.visible(ctx).
		Preload("Company").
		Order("jobs.published_at DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("latest jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) ListActiveByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.visible(ctx).
		Where("jobs.company_id = ?", companyID).
		Order("jobs.published_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("list company jobs: %w", err)
	}
	return jobs, nil
}

// ListByStatus returns jobs newest first. An empty status lists every job.
func (r *JobRepository) ListByStatus(ctx context.Context, status config.JobStatus) ([]models.Job, error) {
	query := r.db.WithContext(ctx).Preload("Company").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs by status: %w", err)
	}
	return jobs, nil
}

// CountByStatus counts jobs in status. An empty status counts every job.
func (r *JobRepository) CountByStatus(ctx context.Context, status config.JobStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Job{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var n int64
	if err := query.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

// TransitionStatus moves a job from one status to another only if it still
// holds from. It reports whether the row was changed; false means the job
// is missing or another writer got there first.
func (r *JobRepository) TransitionStatus(
	ctx context.Context,
	id string,
	from, to config.JobStatus,
	fx lifecycle.SideEffects,
) (bool, error) {
	updates := map[string]any{"status": to}
	if fx.PublishedAt != nil {
		updates["published_at"] = *fx.PublishedAt
	}
	if fx.ExpiresAt != nil {
		updates["expires_at"] = *fx.ExpiresAt
	}

	res := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("transition job status: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// ListDueForExpiry returns active jobs whose publication period ended at
// or before now.
func (r *JobRepository) ListDueForExpiry(ctx context.Context, now time.Time) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", config.JobStatusActive, now.UTC()).
		Order("expires_at").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("list jobs due for expiry: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) visible(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Job{}).
		Where("jobs.status = ?", config.JobStatusActive).
		Where("(jobs.expires_at IS NULL OR jobs.expires_at > ?)", time.Now().UTC())
}

func (r *JobRepository) filtered(ctx context.Context, q dto.JobListQuery) *gorm.DB {
	query := r.visible(ctx)

	if q.JobType != "" {
		query = query.Where("jobs.job_type = ?", q.JobType)
	}
	if q.LocationType != "" {
		query = query.Where("jobs.location_type = ?", q.LocationType)
	}
	if q.Tag != "" {
		query = r.withTag(query, q.Tag)
	}
	return query
}

// withTag filters on membership in the JSON tags column. The query differs
// between postgres (jsonb containment) and sqlite (json_each).
func (r *JobRepository) withTag(query *gorm.DB, tag string) *gorm.DB {
	if r.db.Dialector.Name() == "sqlite" {
		return query.Where("EXISTS (SELECT 1 FROM json_each(jobs.tags) WHERE json_each.value = ?)", tag)
	}

	needle, _ := json.Marshal([]string{tag})
	return query.Where("jobs.tags @> ?::jsonb", string(needle))
}
