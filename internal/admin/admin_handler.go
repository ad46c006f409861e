package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/jobboard/common"
	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/joshu-sajeev/jobboard/internal/dto"
	"github.com/joshu-sajeev/jobboard/middleware"
)

type AdminHandler struct {
	service ModerationServiceInterface
}

func NewAdminHandler(s ModerationServiceInterface) *AdminHandler {
	return &AdminHandler{service: s}
}

var _ AdminHandlerInterface = (*AdminHandler)(nil)

// ListJobs handles GET /admin/jobs with an optional status filter.
func (h *AdminHandler) ListJobs(c *gin.Context) {
	var q dto.AdminJobListQuery
	if !middleware.BindQuery(c, &q) {
		return
	}

	jobs, err := h.service.ListJobs(c.Request.Context(), config.JobStatus(q.Status))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// UpdateStatus handles PATCH /admin/jobs/:id/status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.Error(common.Errf(http.StatusBadRequest, "invalid ID"))
		return
	}

	var body dto.StatusUpdateDTO
	if !middleware.Bind(c, &body) {
		return
	}

	job, err := h.service.UpdateStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, job)
}
