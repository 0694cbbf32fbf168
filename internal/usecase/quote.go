package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tradux/backend/internal/domain/model"
	"github.com/tradux/backend/internal/domain/repository"
	"github.com/tradux/backend/internal/pricing"
)

// CreateQuoteInput carries the client-supplied quote request. Unknown tier,
// certification, speed or delivery values are allowed and priced at the
// standard fallbacks.
type CreateQuoteInput struct {
	ServiceTier    string
	CertType       string
	DeliverySpeed  string
	DeliveryMethod string
	SourceLanguage string
	TargetLanguage string
	DocumentType   string
	Purpose        string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	Notes          string
	PageCount      int
	DocumentIDs    []string
}

// QuoteUseCase encapsulates quote creation and pricing.
type QuoteUseCase struct {
	quotes    repository.QuoteRepository
	documents repository.DocumentRepository
	refPrefix string
}

// NewQuoteUseCase constructs QuoteUseCase.
func NewQuoteUseCase(quotes repository.QuoteRepository, documents repository.DocumentRepository, refPrefix string) *QuoteUseCase {
	return &QuoteUseCase{quotes: quotes, documents: documents, refPrefix: refPrefix}
}

// Create prices the request and stores an immutable quote. When documents
// are referenced their page counts override the client-supplied one.
func (u *QuoteUseCase) Create(ctx context.Context, input CreateQuoteInput) (*model.Quote, error) {
	pages := input.PageCount
	if len(input.DocumentIDs) > 0 {
		docs, err := u.documents.ListByIDs(ctx, input.DocumentIDs)
		if err != nil {
			return nil, fmt.Errorf("load quote documents: %w", err)
		}
		total := 0
		for _, d := range docs {
			total += d.PageCount
		}
		if total > 0 {
			pages = total
		}
	}
	if pages < 1 {
		pages = 1
	}

	quote := &model.Quote{
		ID:             uuid.NewString(),
		Reference:      u.newReference(),
		ServiceTier:    input.ServiceTier,
		CertType:       input.CertType,
		DeliverySpeed:  input.DeliverySpeed,
		DeliveryMethod: input.DeliveryMethod,
		SourceLanguage: input.SourceLanguage,
		TargetLanguage: input.TargetLanguage,
		DocumentType:   input.DocumentType,
		Purpose:        input.Purpose,
		CustomerName:   input.CustomerName,
		CustomerEmail:  input.CustomerEmail,
		CustomerPhone:  input.CustomerPhone,
		Notes:          input.Notes,
		DocumentIDs:    input.DocumentIDs,
		Breakdown:      pricing.Calculate(pages, input.ServiceTier, input.CertType, input.DeliverySpeed, input.DeliveryMethod),
		Status:         model.QuoteStatusPendingPayment,
	}

	if err := u.quotes.Create(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// Get returns a quote by id.
func (u *QuoteUseCase) Get(ctx context.Context, id string) (*model.Quote, error) {
	return u.quotes.GetByID(ctx, id)
}

func (u *QuoteUseCase) newReference() string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", u.refPrefix, time.Now().UTC().Format("20060102"), random)
}
