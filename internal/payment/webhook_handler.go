package payment

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/jobboard/common"
	"github.com/joshu-sajeev/jobboard/internal/dto"
)

// maxPayloadBytes caps webhook bodies. Stripe events are far smaller.
const maxPayloadBytes = 64 << 10

type WebhookHandler struct {
	service ReconcilerInterface
}

func NewWebhookHandler(s ReconcilerInterface) *WebhookHandler {
	return &WebhookHandler{service: s}
}

var _ WebhookHandlerInterface = (*WebhookHandler)(nil)

// Stripe receives gateway events. The raw body is passed on untouched
// because the signature covers its exact bytes.
func (h *WebhookHandler) Stripe(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPayloadBytes+1))
	if err != nil {
		c.Error(common.Errf(http.StatusBadRequest, "failed to read request body"))
		return
	}
	if len(payload) > maxPayloadBytes {
		c.Error(common.Errf(http.StatusRequestEntityTooLarge, "payload too large"))
		return
	}

	if _, err := h.service.HandleEvent(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookAckDTO{Received: true})
}
