package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tradux/backend/internal/adapter/ai"
	domainErrors "github.com/tradux/backend/internal/domain/errors"
	"github.com/tradux/backend/internal/domain/model"
	"github.com/tradux/backend/internal/domain/repository"
	"github.com/tradux/backend/internal/pkg/token"
)

// OrderUseCase encapsulates the order lifecycle: the AI pipeline stages, PM
// review actions and manual-upload delivery.
type OrderUseCase struct {
	orders    repository.OrderRepository
	documents repository.DocumentRepository
	ai        ai.Client
	notifier  Notifier
	logger    *slog.Logger

	mu     sync.Mutex
	active map[string]struct{}
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	documents repository.DocumentRepository,
	aiClient ai.Client,
	notifier Notifier,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		documents: documents,
		ai:        aiClient,
		notifier:  notifier,
		logger:    logger,
		active:    make(map[string]struct{}),
	}
}

// Get returns an order by id.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// List returns orders filtered by status, newest first, with the total count
// for pagination.
func (u *OrderUseCase) List(ctx context.Context, status string, limit, offset int) ([]model.Order, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return u.orders.List(ctx, status, limit, offset)
}

// Stats returns dashboard aggregates.
func (u *OrderUseCase) Stats(ctx context.Context) (*model.Stats, error) {
	return u.orders.Stats(ctx)
}

// Documents returns the extraction records behind an order.
func (u *OrderUseCase) Documents(ctx context.Context, id string) ([]model.Document, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.documents.ListByIDs(ctx, order.DocumentIDs)
}

// SelectForTranslation returns received orders ready for the pipeline.
func (u *OrderUseCase) SelectForTranslation(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectForTranslation(ctx, limit)
}

// StartTranslation moves a startable order into translating and dispatches
// the two AI stages as a background run, returning as soon as the order is
// committed. overrideText replaces the stored source text, used after manual
// OCR; instructions are extra directives for the translator, used on
// correction reruns.
func (u *OrderUseCase) StartTranslation(ctx context.Context, id, overrideText, instructions string) error {
	if !u.acquire(id) {
		return domainErrors.ErrPipelineRunning
	}
	dispatched := false
	defer func() {
		if !dispatched {
			u.release(id)
		}
	}()

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !model.Startable(order.Status) {
		return fmt.Errorf("%w: cannot start from %s", domainErrors.ErrInvalidTransition, order.Status)
	}

	text := order.OriginalText
	if overrideText != "" {
		text = overrideText
	}
	if text == "" {
		return domainErrors.ErrMissingExtraction
	}
	if order.Status == model.StatusCorrections && instructions == "" && order.CorrectionNotes != "" {
		instructions = "The client requested corrections: " + order.CorrectionNotes
	}

	if err := u.orders.StartTranslation(ctx, id, order.Status, text, instructions); err != nil {
		return err
	}
	order.OriginalText = text
	order.AIInstructions = instructions

	// The run outlives the request: a client disconnect must not abort work
	// already committed to translating.
	runCtx := context.WithoutCancel(ctx)
	dispatched = true
	go func() {
		defer u.release(id)
		if err := u.runPipeline(runCtx, order); err != nil {
			u.logger.Error("pipeline run aborted",
				slog.String("order_id", order.ID), slog.String("error", err.Error()))
		}
	}()
	return nil
}

// RunForReceived is the poll entry point: it starts the pipeline for an
// order picked up in received state. Concurrent pickups of the same order
// lose either the in-process guard or the status compare-and-set.
func (u *OrderUseCase) RunForReceived(ctx context.Context, id string) error {
	err := u.StartTranslation(ctx, id, "", "")
	if errors.Is(err, domainErrors.ErrPipelineRunning) || errors.Is(err, domainErrors.ErrStatusConflict) {
		return nil
	}
	return err
}

func (u *OrderUseCase) runPipeline(ctx context.Context, order *model.Order) error {
	translated, err := u.ai.Translate(ctx, ai.TranslateRequest{
		Text:              order.OriginalText,
		SourceLanguage:    order.SourceLanguage,
		TargetLanguage:    order.TargetLanguage,
		DocumentType:      order.DocumentType,
		ServiceTier:       order.ServiceTier,
		ExtraInstructions: order.AIInstructions,
	})
	if err != nil {
		return u.failPipeline(ctx, order, model.StatusTranslating, fmt.Errorf("translation failed: %w", err))
	}
	if err := u.orders.SetTranslated(ctx, order.ID, translated); err != nil {
		return err
	}

	result, err := u.ai.Proofread(ctx, ai.ProofreadRequest{
		OriginalText:   order.OriginalText,
		TranslatedText: translated,
		SourceLanguage: order.SourceLanguage,
		TargetLanguage: order.TargetLanguage,
		DocumentType:   order.DocumentType,
	})
	if err != nil {
		return u.failPipeline(ctx, order, model.StatusProofreading, fmt.Errorf("proofreading failed: %w", err))
	}
	if err := u.orders.SetProofread(ctx, order.ID, result.Text, result.Corrections); err != nil {
		return err
	}

	u.notifier.PMReviewReady(order)
	u.logger.Info("pipeline finished, awaiting PM review",
		slog.String("order_id", order.ID), slog.String("order_number", order.OrderNumber))
	return nil
}

// failPipeline records the failure on the order. The cause is fully handled
// here; the returned error is only a persistence failure.
func (u *OrderUseCase) failPipeline(ctx context.Context, order *model.Order, from model.TranslationStatus, cause error) error {
	u.logger.Error("pipeline failed",
		slog.String("order_id", order.ID), slog.String("error", cause.Error()))
	if err := u.orders.SetTranslationError(ctx, order.ID, from, cause.Error()); err != nil {
		return err
	}
	u.notifier.PipelineFailed(order, cause.Error())
	return nil
}

// ApprovePM signs off the proofread text and opens client review. The token
// minted at order creation stays valid across correction reruns; rotation is
// an explicit operator action via ReissueReviewToken.
func (u *OrderUseCase) ApprovePM(ctx context.Context, id, notes string) (string, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	reviewToken := order.ReviewToken
	if reviewToken == "" {
		if reviewToken, err = token.NewReviewToken(); err != nil {
			return "", err
		}
	}
	if err := u.orders.ApprovePM(ctx, id, notes, reviewToken); err != nil {
		return "", err
	}

	order, err = u.orders.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	u.notifier.TranslationReady(order, reviewToken)
	return reviewToken, nil
}

// MarkCompleted closes an approved order and triggers delivery.
func (u *OrderUseCase) MarkCompleted(ctx context.Context, id string) error {
	if err := u.orders.MarkCompleted(ctx, id); err != nil {
		return err
	}
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.notifier.OrderDelivered(order, nil)
	return nil
}

// UpdateProofreadText lets the PM edit the working text before approval.
func (u *OrderUseCase) UpdateProofreadText(ctx context.Context, id, text string) error {
	return u.orders.UpdateProofreadText(ctx, id, text)
}

// AttachPMUpload attaches an externally produced final document, bypassing
// the remaining AI stages.
func (u *OrderUseCase) AttachPMUpload(ctx context.Context, id string, upload model.PMUpload) error {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !model.CanTransition(order.Status, model.StatusPMUploadReady) {
		return fmt.Errorf("%w: cannot attach upload in %s", domainErrors.ErrInvalidTransition, order.Status)
	}
	return u.orders.AttachPMUpload(ctx, id, order.Status, upload)
}

// Finalize delivers the attached document and closes the order.
func (u *OrderUseCase) Finalize(ctx context.Context, id string) error {
	if err := u.orders.Finalize(ctx, id); err != nil {
		return err
	}
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	upload, err := u.orders.GetPMUpload(ctx, id)
	if err != nil {
		return err
	}
	u.notifier.OrderDelivered(order, upload)
	return nil
}

// GetPMUpload returns the attached document for download.
func (u *OrderUseCase) GetPMUpload(ctx context.Context, id string) (*model.PMUpload, error) {
	return u.orders.GetPMUpload(ctx, id)
}

// ReissueReviewToken rotates the client review link for an order.
func (u *OrderUseCase) ReissueReviewToken(ctx context.Context, id string) (string, error) {
	reviewToken, err := token.NewReviewToken()
	if err != nil {
		return "", err
	}
	if err := u.orders.SetReviewToken(ctx, id, reviewToken); err != nil {
		return "", err
	}
	return reviewToken, nil
}

func (u *OrderUseCase) acquire(id string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, running := u.active[id]; running {
		return false
	}
	u.active[id] = struct{}{}
	return true
}

func (u *OrderUseCase) release(id string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.active, id)
}
