package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tradux/backend/internal/domain/errors"
	"github.com/tradux/backend/internal/server/http/dto"
)

// signatureHeader carries the webhook HMAC signature.
const signatureHeader = "Stripe-Signature"

// PaymentHandler ingests payment provider webhooks.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Webhook handles POST /api/webhook/payments. The raw body is verified
// against the signature header before any JSON parsing happens.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil || len(payload) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	outcome, _, err := h.facade.IngestWebhook(c.Request.Context(), payload, c.GetHeader(signatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrSignatureInvalid):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{Received: true, Outcome: string(outcome)})
}
