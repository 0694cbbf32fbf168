package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DocumentHandler manages document upload and metadata retrieval.
type DocumentHandler struct {
	facade DocumentFacade
}

// NewDocumentHandler constructs DocumentHandler.
func NewDocumentHandler(facade DocumentFacade) *DocumentHandler {
	return &DocumentHandler{facade: facade}
}

// Upload handles POST /api/documents (multipart, field "file").
func (h *DocumentHandler) Upload(c *gin.Context) {
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

	doc, err := h.facade.UploadDocument(c.Request.Context(),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toDocumentResponse(doc))
}

// Get handles GET /api/documents/:id.
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.facade.Document(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponse(doc))
}
