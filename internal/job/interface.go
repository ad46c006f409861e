package job

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/joshu-sajeev/jobboard/internal/dto"
	"github.com/joshu-sajeev/jobboard/internal/models"
)

// JobRepoInterface defines the job store operations the public API needs.
type JobRepoInterface interface {
	Create(ctx context.Context, job *models.Job) error
	GetActiveBySlug(ctx context.Context, slug string) (*models.Job, error)
	ListActive(ctx context.Context, q dto.JobListQuery, perPage int) ([]models.Job, int64, error)
	Latest(ctx context.Context, limit int) ([]models.Job, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]models.Job, error)
	CountByStatus(ctx context.Context, status config.JobStatus) (int64, error)
}

type CompanyRepoInterface interface {
	GetByID(ctx context.Context, id string) (*models.Company, error)
	GetBySlug(ctx context.Context, slug string) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	Count(ctx context.Context) (int64, error)
}

type PaymentRepoInterface interface {
	Create(ctx context.Context, p *models.Payment) error
}

// JobServiceInterface defines the contract for the public job board operations.
type JobServiceInterface interface {
	PostJob(ctx context.Context, req *dto.JobCreateDTO) (*dto.JobCreatedDTO, error)
	ListJobs(ctx context.Context, q dto.JobListQuery) (*dto.JobPageDTO, error)
	LatestJobs(ctx context.Context, limit int) ([]dto.JobResponseDTO, error)
	GetJobBySlug(ctx context.Context, slug string) (*dto.JobResponseDTO, error)
	ListCompanies(ctx context.Context) ([]dto.CompanyResponseDTO, error)
	GetCompanyBySlug(ctx context.Context, slug string) (*dto.CompanyResponseDTO, error)
	Stats(ctx context.Context) (*dto.StatsDTO, error)
}

// JobHandlerInterface defines the contract for HTTP request handlers.
type JobHandlerInterface interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Latest(c *gin.Context)
	Get(c *gin.Context)
	ListCompanies(c *gin.Context)
	GetCompany(c *gin.Context)
	Stats(c *gin.Context)
}
