package job

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/jobboard/common"
	"github.com/joshu-sajeev/jobboard/internal/dto"
	"github.com/joshu-sajeev/jobboard/middleware"
)

type JobHandler struct {
	service JobServiceInterface
}

func NewJobHandler(s JobServiceInterface) *JobHandler {
	return &JobHandler{service: s}
}

var _ JobHandlerInterface = (*JobHandler)(nil)

// Create handles POST /jobs. It stores the posting as a draft and returns
// the checkout URL the poster pays through.
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.JobCreateDTO

	if !middleware.Bind(c, &req) {
		c.Abort()
		return
	}

	created, err := h.service.PostJob(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List handles GET /jobs with optional job_type, location_type, tag and
// page filters.
func (h *JobHandler) List(c *gin.Context) {
	var q dto.JobListQuery
	if !middleware.BindQuery(c, &q) {
		return
	}

	page, err := h.service.ListJobs(c.Request.Context(), q)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *JobHandler) Latest(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.Error(common.Errf(http.StatusBadRequest, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	jobs, err := h.service.LatestJobs(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// Get handles GET /jobs/:slug. Only visible jobs are found.
func (h *JobHandler) Get(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		c.Error(common.Errf(http.StatusBadRequest, "invalid slug"))
		return
	}

	job, err := h.service.GetJobBySlug(c.Request.Context(), slug)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListCompanies(c *gin.Context) {
	companies, err := h.service.ListCompanies(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, companies)
}

func (h *JobHandler) GetCompany(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		c.Error(common.Errf(http.StatusBadRequest, "invalid slug"))
		return
	}

	company, err := h.service.GetCompanyBySlug(c.Request.Context(), slug)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *JobHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
