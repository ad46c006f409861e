package job

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joshu-sajeev/jobboard/common"
	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/joshu-sajeev/jobboard/internal/dto"
	"github.com/joshu-sajeev/jobboard/internal/models"
	"github.com/joshu-sajeev/jobboard/internal/payment"
	"github.com/joshu-sajeev/jobboard/internal/sanitize"
)

type JobService struct {
	jobs      JobRepoInterface
	companies CompanyRepoInterface
	payments  PaymentRepoInterface
	gateway   payment.Gateway
	price     config.StripeConfig
	log       *slog.Logger
	now       func() time.Time
}

func NewJobService(
	jobs JobRepoInterface,
	companies CompanyRepoInterface,
	payments PaymentRepoInterface,
	gateway payment.Gateway,
	price config.StripeConfig,
	log *slog.Logger,
) *JobService {
	return &JobService{
		jobs:      jobs,
		companies: companies,
		payments:  payments,
		gateway:   gateway,
		price:     price,
		log:       log.With(slog.String("component", "jobs")),
		now:       time.Now,
	}
}

var _ JobServiceInterface = (*JobService)(nil)

// PostJob stores a draft job, opens a checkout session for it and records
// the pending payment. The job only becomes visible after the payment is
// reconciled and an admin approves it.
func (s *JobService) PostJob(ctx context.Context, req *dto.JobCreateDTO) (*dto.JobCreatedDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request canceled or timed out")
	}

	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMax < *req.SalaryMin {
		return nil, common.NewAPIError(
			http.StatusBadRequest,
			"salary_max must be greater than or equal to salary_min",
			map[string]any{"salary_min": *req.SalaryMin, "salary_max": *req.SalaryMax},
		)
	}

	if _, err := s.companies.GetByID(ctx, req.CompanyID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewAPIError(
				http.StatusBadRequest,
				"unknown company",
				map[string]any{"company_id": req.CompanyID},
			)
		}
		return nil, common.FromStoreError(err, "load company")
	}

	job := models.Job{
		CompanyID:      req.CompanyID,
		Title:          req.Title,
		Slug:           NewSlug(req.Title, s.now()),
		Description:    req.Description,
		JobType:        req.JobType,
		LocationType:   req.LocationType,
		Location:       req.Location,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		SalaryCurrency: config.DefaultCurrency,
		ApplyURL:       req.ApplyURL,
		Tags:           ParseTags(req.Tags),
		Status:         config.JobStatusDraft,
	}

	if err := s.jobs.Create(ctx, &job); err != nil {
		s.log.Error("job insert failed", slog.Any("error", err))
		return nil, common.FromStoreError(err, "create job")
	}
	log := s.log.With(slog.String("job_id", job.ID))

	session, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		JobID:    job.ID,
		JobTitle: job.Title,
	})
	if err != nil {
		// The draft stays behind; drafts are never listed.
		log.Error("checkout session failed", slog.Any("error", err))
		return nil, common.Wrap(http.StatusBadGateway, err, "failed to create checkout session")
	}

	p := models.Payment{
		JobID:           job.ID,
		Status:          config.PaymentStatusPending,
		StripeSessionID: session.ID,
		Amount:          s.price.PriceAmount,
		Currency:        strings.ToUpper(s.price.Currency),
	}
	if err := s.payments.Create(ctx, &p); err != nil {
		log.Error("payment insert failed", slog.String("session_id", session.ID), slog.Any("error", err))
		return nil, common.FromStoreError(err, "create payment")
	}

	log.Info("job posted", slog.String("slug", job.Slug), slog.String("session_id", session.ID))

	return &dto.JobCreatedDTO{
		JobID:       job.ID,
		Slug:        job.Slug,
		CheckoutURL: session.URL,
		SessionID:   session.ID,
	}, nil
}

func (s *JobService) ListJobs(ctx context.Context, q dto.JobListQuery) (*dto.JobPageDTO, error) {
	q.Page = max(q.Page, 1)
	q.Tag = strings.ToLower(strings.TrimSpace(q.Tag))

	jobs, total, err := s.jobs.ListActive(ctx, q, config.JobsPerPage)
	if err != nil {
		return nil, common.FromStoreError(err, "list jobs")
	}

	return &dto.JobPageDTO{
		Jobs:       toJobResponses(jobs),
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(config.JobsPerPage))),
		Page:       q.Page,
	}, nil
}

// LatestJobs returns the newest visible jobs. A non-positive limit uses
// the default.
func (s *JobService) LatestJobs(ctx context.Context, limit int) ([]dto.JobResponseDTO, error) {
	if limit <= 0 {
		limit = config.LatestJobsLimit
	}
	limit = min(limit, config.JobsPerPage*5)

	jobs, err := s.jobs.Latest(ctx, limit)
	if err != nil {
		return nil, common.FromStoreError(err, "list jobs")
	}
	return toJobResponses(jobs), nil
}

func (s *JobService) GetJobBySlug(ctx context.Context, slug string) (*dto.JobResponseDTO, error) {
	job, err := s.jobs.GetActiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Wrap(http.StatusNotFound, err, "job not found")
		}
		return nil, common.FromStoreError(err, "get job")
	}

	out := toJobResponse(*job)
	desc := sanitize.Render(job.Description)
	out.Description = &desc
	return &out, nil
}

func (s *JobService) ListCompanies(ctx context.Context) ([]dto.CompanyResponseDTO, error) {
	companies, err := s.companies.List(ctx)
	if err != nil {
		return nil, common.FromStoreError(err, "list companies")
	}

	out := make([]dto.CompanyResponseDTO, 0, len(companies))
	for _, c := range companies {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

// GetCompanyBySlug returns the company together with its visible jobs.
func (s *JobService) GetCompanyBySlug(ctx context.Context, slug string) (*dto.CompanyResponseDTO, error) {
	company, err := s.companies.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Wrap(http.StatusNotFound, err, "company not found")
		}
		return nil, common.FromStoreError(err, "get company")
	}

	jobs, err := s.jobs.ListActiveByCompany(ctx, company.ID)
	if err != nil {
		return nil, common.FromStoreError(err, "list company jobs")
	}

	out := toCompanyResponse(*company)
	out.Jobs = toJobResponses(jobs)
	return &out, nil
}

func (s *JobService) Stats(ctx context.Context) (*dto.StatsDTO, error) {
	active, err := s.jobs.CountByStatus(ctx, config.JobStatusActive)
	if err != nil {
		return nil, common.FromStoreError(err, "count jobs")
	}

	companies, err := s.companies.Count(ctx)
	if err != nil {
		return nil, common.FromStoreError(err, "count companies")
	}

	return &dto.StatsDTO{ActiveJobs: active, Companies: companies}, nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// NewSlug builds a URL slug from title with a base36 millisecond suffix,
// e.g. "senior-go-engineer-m8x2k1qz".
func NewSlug(title string, now time.Time) string {
	base := strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if len(base) > 80 {
		base = strings.TrimRight(base[:80], "-")
	}

	suffix := strconv.FormatInt(now.UnixMilli(), 36)
	if base == "" {
		return "job-" + suffix
	}
	return base + "-" + suffix
}

// ParseTags splits a comma separated tag list into trimmed, lower-cased,
// de-duplicated tags.
func ParseTags(raw string) []string {
	tags := []string{}
	seen := map[string]bool{}

	for _, t := range strings.Split(raw, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

func toJobResponses(jobs []models.Job) []dto.JobResponseDTO {
	out := make([]dto.JobResponseDTO, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	return out
}

func toJobResponse(j models.Job) dto.JobResponseDTO {
	resp := dto.JobResponseDTO{
		ID:             j.ID,
		Title:          j.Title,
		Slug:           j.Slug,
		JobType:        j.JobType,
		LocationType:   j.LocationType,
		Location:       j.Location,
		SalaryMin:      j.SalaryMin,
		SalaryMax:      j.SalaryMax,
		SalaryCurrency: j.SalaryCurrency,
		ApplyURL:       j.ApplyURL,
		Tags:           []string(j.Tags),
		Featured:       j.Featured,
		PublishedAt:    j.PublishedAt,
		ExpiresAt:      j.ExpiresAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if j.Company != nil {
		resp.Company = &dto.CompanySummaryDTO{
			ID:      j.Company.ID,
			Name:    j.Company.Name,
			Slug:    j.Company.Slug,
			LogoURL: j.Company.LogoURL,
		}
	}
	return resp
}

func toCompanyResponse(c models.Company) dto.CompanyResponseDTO {
	return dto.CompanyResponseDTO{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		LogoURL:     c.LogoURL,
		Website:     c.Website,
		Description: c.Description,
		Location:    c.Location,
	}
}
