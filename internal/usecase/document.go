package usecase

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tradux/backend/internal/adapter/extraction"
	domainErrors "github.com/tradux/backend/internal/domain/errors"
	"github.com/tradux/backend/internal/domain/model"
	"github.com/tradux/backend/internal/domain/repository"
)

// Extracted text is capped so a pathological upload cannot blow up quote
// rows or AI prompts.
const maxExtractedChars = 10000

// DocumentUseCase handles uploads and their text extraction.
type DocumentUseCase struct {
	documents repository.DocumentRepository
	extractor extraction.Client
	logger    *slog.Logger
	maxBytes  int64
}

// NewDocumentUseCase constructs DocumentUseCase.
func NewDocumentUseCase(documents repository.DocumentRepository, extractor extraction.Client, maxBytes int64, logger *slog.Logger) *DocumentUseCase {
	return &DocumentUseCase{documents: documents, extractor: extractor, maxBytes: maxBytes, logger: logger}
}

// Upload extracts text from the file and stores the write-once record plus
// the raw bytes.
func (u *DocumentUseCase) Upload(ctx context.Context, filename, contentType string, data []byte) (*model.Document, error) {
	if int64(len(data)) > u.maxBytes {
		return nil, domainErrors.ErrFileTooLarge
	}

	result, err := u.extractor.Extract(ctx, data, filename, contentType)
	if err != nil {
		return nil, err
	}

	text := truncateText(result.Text, maxExtractedChars)

	doc := &model.Document{
		ID:               uuid.NewString(),
		Filename:         filename,
		ContentType:      contentType,
		FileSize:         int64(len(data)),
		WordCount:        result.WordCount,
		PageCount:        result.PageCount,
		ExtractionMethod: result.Method,
		ExtractedText:    text,
	}
	if err := u.documents.Create(ctx, doc, data); err != nil {
		return nil, err
	}

	u.logger.Info("document uploaded",
		slog.String("document_id", doc.ID),
		slog.String("filename", filename),
		slog.Int("pages", doc.PageCount),
		slog.String("method", doc.ExtractionMethod))
	return doc, nil
}

// Get returns an extraction record.
func (u *DocumentUseCase) Get(ctx context.Context, id string) (*model.Document, error) {
	return u.documents.GetByID(ctx, id)
}

// truncateText cuts s to at most max bytes without splitting a UTF-8 rune.
func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
