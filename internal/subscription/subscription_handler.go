package subscription

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/jobboard/internal/dto"
	"github.com/joshu-sajeev/jobboard/middleware"
)

type SubscriptionHandler struct {
	service SubscriptionServiceInterface
}

func NewSubscriptionHandler(s SubscriptionServiceInterface) *SubscriptionHandler {
	return &SubscriptionHandler{service: s}
}

var _ SubscriptionHandlerInterface = (*SubscriptionHandler)(nil)

// Subscribe handles POST /subscribe.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeDTO
	if !middleware.Bind(c, &req) {
		return
	}

	out, err := h.service.Subscribe(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, out)
}
