package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/jobboard/internal/admin"
	"github.com/joshu-sajeev/jobboard/internal/job"
	"github.com/joshu-sajeev/jobboard/internal/payment"
	"github.com/joshu-sajeev/jobboard/internal/subscription"
	"github.com/joshu-sajeev/jobboard/middleware"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Jobs          job.JobHandlerInterface
	Admin         admin.AdminHandlerInterface
	Webhooks      payment.WebhookHandlerInterface
	Subscriptions subscription.SubscriptionHandlerInterface
}

type RouterConfig struct {
	RequestTimeout time.Duration
	AdminToken     string
	Logger         *slog.Logger
}

func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(cfg.Logger),
		middleware.CORSMiddleware(),
		middleware.TimeoutMiddleware(cfg.RequestTimeout),
		middleware.ErrorHandler(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	jobs := api.Group("/jobs")
	jobs.GET("", h.Jobs.List)
	jobs.POST("", h.Jobs.Create)
	jobs.GET("/latest", h.Jobs.Latest)
	jobs.GET("/:slug", h.Jobs.Get)

	api.GET("/companies", h.Jobs.ListCompanies)
	api.GET("/companies/:slug", h.Jobs.GetCompany)
	api.GET("/stats", h.Jobs.Stats)

	api.POST("/subscribe", h.Subscriptions.Subscribe)
	api.POST("/webhooks/stripe", h.Webhooks.Stripe)

	adm := api.Group("/admin", middleware.AdminAuth(cfg.AdminToken))
	adm.GET("/jobs", h.Admin.ListJobs)
	adm.GET("/stats", h.Admin.Stats)
	adm.PATCH("/jobs/:id/status", h.Admin.UpdateStatus)

	return r
}
