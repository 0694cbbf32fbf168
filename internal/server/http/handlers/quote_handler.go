package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradux/backend/internal/server/http/dto"
	"github.com/tradux/backend/internal/usecase"
)

// QuoteHandler manages quote creation, retrieval and checkout.
type QuoteHandler struct {
	facade QuoteFacade
}

// NewQuoteHandler constructs QuoteHandler.
func NewQuoteHandler(facade QuoteFacade) *QuoteHandler {
	return &QuoteHandler{facade: facade}
}

// Create handles POST /api/quote.
func (h *QuoteHandler) Create(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.CustomerEmail == "" || req.SourceLanguage == "" || req.TargetLanguage == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	quote, err := h.facade.CreateQuote(c.Request.Context(), usecase.CreateQuoteInput{
		ServiceTier:    req.ServiceTier,
		CertType:       req.CertType,
		DeliverySpeed:  req.DeliverySpeed,
		DeliveryMethod: req.DeliveryMethod,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		DocumentType:   req.DocumentType,
		Purpose:        req.Purpose,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		Notes:          req.Notes,
		PageCount:      req.PageCount,
		DocumentIDs:    req.DocumentIDs,
	})
	if err != nil {
		abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toQuoteResponse(quote))
}

// Get handles GET /api/quote/:id.
func (h *QuoteHandler) Get(c *gin.Context) {
	quote, err := h.facade.Quote(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// Checkout handles POST /api/quote/:id/checkout.
func (h *QuoteHandler) Checkout(c *gin.Context) {
	session, err := h.facade.CreateCheckout(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CheckoutResponse{
		SessionID:   session.SessionID,
		CheckoutURL: session.CheckoutURL,
	})
}
