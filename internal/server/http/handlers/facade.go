package handlers

import (
	"context"

	"github.com/tradux/backend/internal/domain/model"
	"github.com/tradux/backend/internal/usecase"
)

// AuthFacade describes operator authentication capabilities required by handlers.
type AuthFacade interface {
	Login(password string) (string, error)
	ParseToken(token string) error
}

// QuoteFacade encapsulates quote and checkout operations exposed via HTTP.
type QuoteFacade interface {
	CreateQuote(ctx context.Context, input usecase.CreateQuoteInput) (*model.Quote, error)
	Quote(ctx context.Context, id string) (*model.Quote, error)
	CreateCheckout(ctx context.Context, quoteID string) (*model.CheckoutSession, error)
}

// PaymentFacade ingests payment provider webhooks.
type PaymentFacade interface {
	IngestWebhook(ctx context.Context, payload []byte, signature string) (usecase.IngestOutcome, *model.Order, error)
}

// DocumentFacade handles document upload and retrieval.
type DocumentFacade interface {
	UploadDocument(ctx context.Context, filename, contentType string, data []byte) (*model.Document, error)
	Document(ctx context.Context, id string) (*model.Document, error)
}

// OrderFacade provides the operator-side order operations.
type OrderFacade interface {
	Order(ctx context.Context, id string) (*model.Order, error)
	Orders(ctx context.Context, status string, limit, offset int) ([]model.Order, int, error)
	OrderDocuments(ctx context.Context, id string) ([]model.Document, error)
	Stats(ctx context.Context) (*model.Stats, error)
	StartTranslation(ctx context.Context, id, overrideText, instructions string) error
	ApprovePM(ctx context.Context, id, notes string) (string, error)
	MarkCompleted(ctx context.Context, id string) error
	UpdateProofreadText(ctx context.Context, id, text string) error
	AttachPMUpload(ctx context.Context, id string, upload model.PMUpload) error
	FinalizeUpload(ctx context.Context, id string) error
	PMUpload(ctx context.Context, id string) (*model.PMUpload, error)
	ReissueReviewToken(ctx context.Context, id string) (string, error)
}

// ReviewFacade provides the token-gated client review operations.
type ReviewFacade interface {
	Review(ctx context.Context, orderID, token string) (*model.Order, error)
	ApproveReview(ctx context.Context, orderID, token string) error
	RequestCorrections(ctx context.Context, orderID, token, notes string) error
}

// TranslationFacade aggregates the full set of operations used across handlers.
type TranslationFacade interface {
	AuthFacade
	QuoteFacade
	PaymentFacade
	DocumentFacade
	OrderFacade
	ReviewFacade
}
