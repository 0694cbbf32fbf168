package repository

import (
	"context"

	"github.com/tradux/backend/internal/domain/model"
)

// OrderCreation carries everything the store needs to build an order from a
// paid quote inside a single transaction.
type OrderCreation struct {
	OrderID     string
	SessionID   string
	QuoteID     string
	ReviewToken string
}

// OrderRepository describes persistence operations with orders. Every status
// mutation is a compare-and-set: the UPDATE is conditioned on the expected
// current status and reports ErrStatusConflict when zero rows match.
type OrderRepository interface {
	// CreateFromPayment atomically records the payment event, allocates the
	// next order number, creates the order from the referenced quote and
	// marks the quote paid. created is false when the session id was already
	// processed; the order slot is nil in that case.
	CreateFromPayment(ctx context.Context, c OrderCreation) (*model.Order, bool, error)

	GetByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, status string, limit, offset int) ([]model.Order, int, error)
	SelectForTranslation(ctx context.Context, limit int) ([]model.Order, error)
	Stats(ctx context.Context) (*model.Stats, error)

	StartTranslation(ctx context.Context, id string, from model.TranslationStatus, originalText, instructions string) error
	SetTranslated(ctx context.Context, id, text string) error
	SetProofread(ctx context.Context, id, text, corrections string) error
	SetTranslationError(ctx context.Context, id string, from model.TranslationStatus, message string) error
	ApprovePM(ctx context.Context, id, notes, reviewToken string) error
	ClientApprove(ctx context.Context, id string) error
	RequestCorrections(ctx context.Context, id, notes string) error
	MarkCompleted(ctx context.Context, id string) error
	UpdateProofreadText(ctx context.Context, id, text string) error
	AttachPMUpload(ctx context.Context, id string, from model.TranslationStatus, upload model.PMUpload) error
	Finalize(ctx context.Context, id string) error
	GetPMUpload(ctx context.Context, id string) (*model.PMUpload, error)
	SetReviewToken(ctx context.Context, id, token string) error
}
