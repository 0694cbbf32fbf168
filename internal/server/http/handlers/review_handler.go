package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradux/backend/internal/domain/model"
	"github.com/tradux/backend/internal/server/http/dto"
)

// ReviewHandler serves the token-gated client review endpoints. The token
// travels in the "token" query parameter on every request.
type ReviewHandler struct {
	facade ReviewFacade
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(facade ReviewFacade) *ReviewHandler {
	return &ReviewHandler{facade: facade}
}

// Get handles GET /api/review/:id.
func (h *ReviewHandler) Get(c *gin.Context) {
	order, err := h.facade.Review(c.Request.Context(), c.Param("id"), c.Query("token"))
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(order))
}

// Approve handles POST /api/review/:id/approve.
func (h *ReviewHandler) Approve(c *gin.Context) {
	if err := h.facade.ApproveReview(c.Request.Context(), c.Param("id"), c.Query("token")); err != nil {
		abortDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// RequestCorrections handles POST /api/review/:id/corrections.
func (h *ReviewHandler) RequestCorrections(c *gin.Context) {
	var req dto.CorrectionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
	}

	if err := h.facade.RequestCorrections(c.Request.Context(), c.Param("id"), c.Query("token"), req.Notes); err != nil {
		abortDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func toReviewResponse(o *model.Order) dto.ReviewResponse {
	return dto.ReviewResponse{
		OrderNumber:     o.OrderNumber,
		Status:          string(o.Status),
		SourceLanguage:  o.SourceLanguage,
		TargetLanguage:  o.TargetLanguage,
		DocumentType:    o.DocumentType,
		OriginalText:    o.OriginalText,
		ProofreadText:   o.ProofreadText,
		PMNotes:         o.PMNotes,
		ClientApproved:  o.ClientApproved,
		CorrectionNotes: o.CorrectionNotes,
	}
}
