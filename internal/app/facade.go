package app

import (
	"context"

	"github.com/tradux/backend/internal/domain/model"
	"github.com/tradux/backend/internal/usecase"
)

// TranslationFacade aggregates the use cases behind a single surface for the
// HTTP handlers and the pipeline worker.
type TranslationFacade struct {
	auth      *usecase.AuthUseCase
	quotes    *usecase.QuoteUseCase
	payments  *usecase.PaymentUseCase
	orders    *usecase.OrderUseCase
	reviews   *usecase.ReviewUseCase
	documents *usecase.DocumentUseCase
}

// NewTranslationFacade constructs the facade.
func NewTranslationFacade(
	auth *usecase.AuthUseCase,
	quotes *usecase.QuoteUseCase,
	payments *usecase.PaymentUseCase,
	orders *usecase.OrderUseCase,
	reviews *usecase.ReviewUseCase,
	documents *usecase.DocumentUseCase,
) *TranslationFacade {
	return &TranslationFacade{
		auth:      auth,
		quotes:    quotes,
		payments:  payments,
		orders:    orders,
		reviews:   reviews,
		documents: documents,
	}
}

// --- operator auth ---

func (f *TranslationFacade) Login(password string) (string, error) {
	return f.auth.Login(password)
}

func (f *TranslationFacade) ParseToken(token string) error {
	return f.auth.ParseToken(token)
}

// --- quotes and checkout ---

func (f *TranslationFacade) CreateQuote(ctx context.Context, input usecase.CreateQuoteInput) (*model.Quote, error) {
	return f.quotes.Create(ctx, input)
}

func (f *TranslationFacade) Quote(ctx context.Context, id string) (*model.Quote, error) {
	return f.quotes.Get(ctx, id)
}

func (f *TranslationFacade) CreateCheckout(ctx context.Context, quoteID string) (*model.CheckoutSession, error) {
	return f.payments.CreateCheckout(ctx, quoteID)
}

func (f *TranslationFacade) IngestWebhook(ctx context.Context, payload []byte, signature string) (usecase.IngestOutcome, *model.Order, error) {
	return f.payments.IngestWebhook(ctx, payload, signature)
}

// --- documents ---

func (f *TranslationFacade) UploadDocument(ctx context.Context, filename, contentType string, data []byte) (*model.Document, error) {
	return f.documents.Upload(ctx, filename, contentType, data)
}

func (f *TranslationFacade) Document(ctx context.Context, id string) (*model.Document, error) {
	return f.documents.Get(ctx, id)
}

// --- orders ---

func (f *TranslationFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *TranslationFacade) Orders(ctx context.Context, status string, limit, offset int) ([]model.Order, int, error) {
	return f.orders.List(ctx, status, limit, offset)
}

func (f *TranslationFacade) OrderDocuments(ctx context.Context, id string) ([]model.Document, error) {
	return f.orders.Documents(ctx, id)
}

func (f *TranslationFacade) Stats(ctx context.Context) (*model.Stats, error) {
	return f.orders.Stats(ctx)
}

func (f *TranslationFacade) StartTranslation(ctx context.Context, id, overrideText, instructions string) error {
	return f.orders.StartTranslation(ctx, id, overrideText, instructions)
}

func (f *TranslationFacade) ApprovePM(ctx context.Context, id, notes string) (string, error) {
	return f.orders.ApprovePM(ctx, id, notes)
}

func (f *TranslationFacade) MarkCompleted(ctx context.Context, id string) error {
	return f.orders.MarkCompleted(ctx, id)
}

func (f *TranslationFacade) UpdateProofreadText(ctx context.Context, id, text string) error {
	return f.orders.UpdateProofreadText(ctx, id, text)
}

func (f *TranslationFacade) AttachPMUpload(ctx context.Context, id string, upload model.PMUpload) error {
	return f.orders.AttachPMUpload(ctx, id, upload)
}

func (f *TranslationFacade) FinalizeUpload(ctx context.Context, id string) error {
	return f.orders.Finalize(ctx, id)
}

func (f *TranslationFacade) PMUpload(ctx context.Context, id string) (*model.PMUpload, error) {
	return f.orders.GetPMUpload(ctx, id)
}

func (f *TranslationFacade) ReissueReviewToken(ctx context.Context, id string) (string, error) {
	return f.orders.ReissueReviewToken(ctx, id)
}

// --- pipeline worker surface ---

func (f *TranslationFacade) OrdersForTranslation(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.SelectForTranslation(ctx, limit)
}

func (f *TranslationFacade) RunTranslation(ctx context.Context, orderID string) error {
	return f.orders.RunForReceived(ctx, orderID)
}

// --- client review ---

func (f *TranslationFacade) Review(ctx context.Context, orderID, token string) (*model.Order, error) {
	return f.reviews.Get(ctx, orderID, token)
}

func (f *TranslationFacade) ApproveReview(ctx context.Context, orderID, token string) error {
	return f.reviews.Approve(ctx, orderID, token)
}

func (f *TranslationFacade) RequestCorrections(ctx context.Context, orderID, token, notes string) error {
	return f.reviews.RequestCorrections(ctx, orderID, token, notes)
}
