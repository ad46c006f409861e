package subscription

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/jobboard/internal/dto"
	"github.com/joshu-sajeev/jobboard/internal/models"
)

type SubscriptionRepoInterface interface {
	Upsert(ctx context.Context, s *models.EmailSubscription) error
}

type SubscriptionServiceInterface interface {
	Subscribe(ctx context.Context, req *dto.SubscribeDTO) (*dto.SubscribedDTO, error)
}

type SubscriptionHandlerInterface interface {
	Subscribe(c *gin.Context)
}
