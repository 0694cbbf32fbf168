package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tradux/backend/internal/domain/model"
	"github.com/tradux/backend/internal/server/http/dto"
)

// OrderHandler manages the operator-side order endpoints.
type OrderHandler struct {
	facade        OrderFacade
	reviewBaseURL string
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, reviewBaseURL string) *OrderHandler {
	return &OrderHandler{facade: facade, reviewBaseURL: reviewBaseURL}
}

// List handles GET /api/admin/orders.
func (h *OrderHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	orders, total, err := h.facade.Orders(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := dto.OrderListResponse{
		Orders: make([]dto.OrderResponse, 0, len(orders)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, o := range orders {
		response.Orders = append(response.Orders, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/admin/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Documents handles GET /api/admin/orders/:id/documents.
func (h *OrderHandler) Documents(c *gin.Context) {
	docs, err := h.facade.OrderDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortDomainError(c, err)
		return
	}

	response := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		response = append(response, toDocumentResponse(&docs[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Stats handles GET /api/admin/stats.
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.facade.Stats(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		TotalOrders:          stats.TotalOrders,
		Completed:            stats.Completed,
		InProgress:           stats.InProgress,
		PendingPMReview:      stats.PendingPMReview,
		CorrectionsRequested: stats.CorrectionsRequested,
		TotalRevenue:         stats.TotalRevenue,
	})
}

// Start handles POST /api/admin/orders/:id/start. The body is optional.
func (h *OrderHandler) Start(c *gin.Context) {
	var req dto.StartTranslationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
	}

	if err := h.facade.StartTranslation(c.Request.Context(), c.Param("id"), req.Text, req.Instructions); err != nil {
		abortDomainError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// Approve handles POST /api/admin/orders/:id/approve.
func (h *OrderHandler) Approve(c *gin.Context) {
	var req dto.ApproveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
	}

	token, err := h.facade.ApprovePM(c.Request.Context(), c.Param("id"), req.Notes)
	if err != nil {
		abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ApproveResponse{
		ReviewToken: token,
		ReviewURL:   h.reviewURL(c.Param("id"), token),
	})
}

// Complete handles POST /api/admin/orders/:id/complete.
func (h *OrderHandler) Complete(c *gin.Context) {
	if err := h.facade.MarkCompleted(c.Request.Context(), c.Param("id")); err != nil {
		abortDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// UpdateText handles PUT /api/admin/orders/:id/proofread-text.
func (h *OrderHandler) UpdateText(c *gin.Context) {
	var req dto.UpdateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.UpdateProofreadText(c.Request.Context(), c.Param("id"), req.Text); err != nil {
		abortDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Upload handles POST /api/admin/orders/:id/upload (multipart, field "file").
func (h *OrderHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	upload := model.PMUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Data:        data,
	}
	if err := h.facade.AttachPMUpload(c.Request.Context(), c.Param("id"), upload); err != nil {
		abortDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Finalize handles POST /api/admin/orders/:id/finalize.
func (h *OrderHandler) Finalize(c *gin.Context) {
	if err := h.facade.FinalizeUpload(c.Request.Context(), c.Param("id")); err != nil {
		abortDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Download handles GET /api/admin/orders/:id/upload.
func (h *OrderHandler) Download(c *gin.Context) {
	upload, err := h.facade.PMUpload(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortDomainError(c, err)
		return
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", upload.Filename))
	c.Data(http.StatusOK, contentType, upload.Data)
}

// ReissueToken handles POST /api/admin/orders/:id/reissue-token.
func (h *OrderHandler) ReissueToken(c *gin.Context) {
	token, err := h.facade.ReissueReviewToken(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ApproveResponse{
		ReviewToken: token,
		ReviewURL:   h.reviewURL(c.Param("id"), token),
	})
}

func (h *OrderHandler) reviewURL(orderID, token string) string {
	return fmt.Sprintf("%s/review/%s?token=%s", h.reviewBaseURL, orderID, token)
}
