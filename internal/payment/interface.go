package payment

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/joshu-sajeev/jobboard/internal/lifecycle"
	"github.com/joshu-sajeev/jobboard/internal/models"
)

type PaymentRepoInterface interface {
	GetBySessionID(ctx context.Context, sessionID string) (*models.Payment, error)
	MarkCompleted(ctx context.Context, sessionID, paymentIntentID string) (bool, error)
}

type JobRepoInterface interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
	TransitionStatus(ctx context.Context, id string, from, to config.JobStatus, fx lifecycle.SideEffects) (bool, error)
}

type ReconcilerInterface interface {
	HandleEvent(ctx context.Context, payload []byte, signature string) (*Outcome, error)
}

type WebhookHandlerInterface interface {
	Stripe(c *gin.Context)
}
