package admin

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/joshu-sajeev/jobboard/internal/dto"
	"github.com/joshu-sajeev/jobboard/internal/lifecycle"
	"github.com/joshu-sajeev/jobboard/internal/models"
)

type JobRepoInterface interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
	TransitionStatus(ctx context.Context, id string, from, to config.JobStatus, fx lifecycle.SideEffects) (bool, error)
	ListByStatus(ctx context.Context, status config.JobStatus) ([]models.Job, error)
	CountByStatus(ctx context.Context, status config.JobStatus) (int64, error)
	ListDueForExpiry(ctx context.Context, now time.Time) ([]models.Job, error)
}

type CompanyRepoInterface interface {
	Count(ctx context.Context) (int64, error)
}

type ModerationServiceInterface interface {
	UpdateStatus(ctx context.Context, jobID string, target config.JobStatus) (*dto.AdminJobDTO, error)
	ExpireDue(ctx context.Context, now time.Time) (int, error)
	ListJobs(ctx context.Context, status config.JobStatus) ([]dto.AdminJobDTO, error)
	Stats(ctx context.Context) (*dto.AdminStatsDTO, error)
}

type AdminHandlerInterface interface {
	ListJobs(c *gin.Context)
	Stats(c *gin.Context)
	UpdateStatus(c *gin.Context)
}
