package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tradux/backend/internal/domain/errors"
	"github.com/tradux/backend/internal/domain/model"
	"github.com/tradux/backend/internal/server/http/dto"
)

// abortDomainError maps domain errors onto HTTP statuses shared across
// handlers. Errors without a dedicated mapping become 500.
func abortDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrNotFoundOrForbidden):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrStatusConflict),
		errors.Is(err, domainErrors.ErrInvalidTransition),
		errors.Is(err, domainErrors.ErrPipelineRunning):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrMissingExtraction):
		c.Status(http.StatusUnprocessableEntity)
	case errors.Is(err, domainErrors.ErrFileTooLarge):
		c.Status(http.StatusRequestEntityTooLarge)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toQuoteResponse(q *model.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		ID:             q.ID,
		Reference:      q.Reference,
		ServiceTier:    q.ServiceTier,
		CertType:       q.CertType,
		DeliverySpeed:  q.DeliverySpeed,
		DeliveryMethod: q.DeliveryMethod,
		SourceLanguage: q.SourceLanguage,
		TargetLanguage: q.TargetLanguage,
		DocumentType:   q.DocumentType,
		CustomerEmail:  q.CustomerEmail,
		DocumentIDs:    q.DocumentIDs,
		Breakdown: dto.BreakdownResponse{
			PerPage:         q.Breakdown.PerPage,
			PageCount:       q.Breakdown.PageCount,
			BasePrice:       q.Breakdown.BasePrice,
			SpeedMultiplier: q.Breakdown.SpeedMultiplier,
			TranslationCost: q.Breakdown.TranslationCost,
			CertFee:         q.Breakdown.CertFee,
			DeliveryFee:     q.Breakdown.DeliveryFee,
			TotalPrice:      q.Breakdown.TotalPrice,
		},
		Status:      string(q.Status),
		OrderID:     q.OrderID,
		OrderNumber: q.OrderNumber,
		CreatedAt:   q.CreatedAt,
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		QuoteID:         o.QuoteID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		ServiceTier:     o.ServiceTier,
		CertType:        o.CertType,
		DeliverySpeed:   o.DeliverySpeed,
		DeliveryMethod:  o.DeliveryMethod,
		SourceLanguage:  o.SourceLanguage,
		TargetLanguage:  o.TargetLanguage,
		DocumentType:    o.DocumentType,
		PageCount:       o.PageCount,
		Notes:           o.Notes,
		DocumentIDs:     o.DocumentIDs,
		TotalPrice:      o.TotalPrice,
		Status:          string(o.Status),
		OriginalText:    o.OriginalText,
		TranslatedText:  o.TranslatedText,
		ProofreadText:   o.ProofreadText,
		AICorrections:   o.AICorrections,
		AIInstructions:  o.AIInstructions,
		ErrorMessage:    o.ErrorMessage,
		PMApproved:      o.PMApproved,
		PMNotes:         o.PMNotes,
		ClientApproved:  o.ClientApproved,
		CorrectionNotes: o.CorrectionNotes,
		UploadFilename:  o.UploadFilename,
		UploadSize:      o.UploadSize,
		UploadedAt:      o.UploadedAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		ApprovedAt:      o.ApprovedAt,
		CompletedAt:     o.CompletedAt,
	}
}

func toDocumentResponse(d *model.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:               d.ID,
		Filename:         d.Filename,
		ContentType:      d.ContentType,
		FileSize:         d.FileSize,
		WordCount:        d.WordCount,
		PageCount:        d.PageCount,
		ExtractionMethod: d.ExtractionMethod,
		ExtractedText:    d.ExtractedText,
		UploadedAt:       d.UploadedAt,
	}
}
