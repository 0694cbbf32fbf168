package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/tradux/backend/internal/adapter/payments"
	domainErrors "github.com/tradux/backend/internal/domain/errors"
	"github.com/tradux/backend/internal/domain/model"
	"github.com/tradux/backend/internal/domain/repository"
	"github.com/tradux/backend/internal/pkg/token"
	"github.com/tradux/backend/internal/pricing"
)

// IngestOutcome classifies the handling of one webhook delivery.
type IngestOutcome string

const (
	// OutcomeCreated means a new order was created from the event.
	OutcomeCreated IngestOutcome = "created"
	// OutcomeAlreadyProcessed means the session id was seen before.
	OutcomeAlreadyProcessed IngestOutcome = "already_processed"
	// OutcomeIgnored means the event is not a completed checkout or does not
	// carry our brand tag. The shared webhook endpoint receives traffic for
	// other storefronts too.
	OutcomeIgnored IngestOutcome = "ignored"
	// OutcomeSkipped means the event is ours but unusable, for example a
	// completed checkout without a quote id in its metadata.
	OutcomeSkipped IngestOutcome = "skipped"
)

// PaymentOptions configures the intake.
type PaymentOptions struct {
	BrandTag   string
	SuccessURL string
	CancelURL  string
}

// PaymentUseCase creates checkout sessions and turns verified webhook events
// into orders exactly once.
type PaymentUseCase struct {
	quotes   repository.QuoteRepository
	orders   repository.OrderRepository
	sessions repository.PaymentRepository
	provider payments.Client
	verifier *payments.Verifier
	notifier Notifier
	logger   *slog.Logger
	opts     PaymentOptions
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	quotes repository.QuoteRepository,
	orders repository.OrderRepository,
	sessions repository.PaymentRepository,
	provider payments.Client,
	verifier *payments.Verifier,
	notifier Notifier,
	logger *slog.Logger,
	opts PaymentOptions,
) *PaymentUseCase {
	return &PaymentUseCase{
		quotes:   quotes,
		orders:   orders,
		sessions: sessions,
		provider: provider,
		verifier: verifier,
		notifier: notifier,
		logger:   logger,
		opts:     opts,
	}
}

// CreateCheckout creates a hosted checkout session for an unpaid quote.
func (u *PaymentUseCase) CreateCheckout(ctx context.Context, quoteID string) (*model.CheckoutSession, error) {
	quote, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status == model.QuoteStatusPaid {
		return nil, domainErrors.ErrAlreadyExists
	}

	description := fmt.Sprintf("%s translation, %d page(s)",
		pricing.TierName(quote.ServiceTier), quote.Breakdown.PageCount)

	session, err := u.provider.CreateCheckoutSession(ctx, payments.CheckoutParams{
		QuoteID:       quote.ID,
		Brand:         u.opts.BrandTag,
		Description:   description,
		AmountCents:   int64(math.Round(quote.Breakdown.TotalPrice * 100)),
		Currency:      "usd",
		CustomerEmail: quote.CustomerEmail,
		SuccessURL:    u.opts.SuccessURL,
		CancelURL:     u.opts.CancelURL,
	})
	if err != nil {
		return nil, err
	}

	session.Amount = quote.Breakdown.TotalPrice
	session.Currency = "usd"
	if err := u.sessions.CreateCheckoutSession(ctx, session); err != nil {
		u.logger.Error("failed to record checkout session",
			slog.String("session_id", session.SessionID), slog.String("error", err.Error()))
	}
	return session, nil
}

// IngestWebhook verifies, filters and applies one webhook delivery. Replays
// and provider retries of the same session resolve to AlreadyProcessed
// without side effects.
func (u *PaymentUseCase) IngestWebhook(ctx context.Context, payload []byte, signature string) (IngestOutcome, *model.Order, error) {
	if err := u.verifier.VerifySignature(payload, signature); err != nil {
		return "", nil, err
	}

	event, err := u.verifier.ParseEvent(payload)
	if err != nil {
		return "", nil, err
	}

	if event.Type != payments.EventTypeCheckoutCompleted {
		return OutcomeIgnored, nil, nil
	}
	if event.Brand() != u.opts.BrandTag {
		u.logger.Info("ignoring webhook for foreign brand",
			slog.String("brand", event.Brand()), slog.String("session_id", event.SessionID))
		return OutcomeIgnored, nil, nil
	}
	if event.QuoteID() == "" || event.SessionID == "" {
		u.logger.Warn("completed checkout without quote metadata",
			slog.String("event_id", event.ID))
		return OutcomeSkipped, nil, nil
	}

	reviewToken, err := token.NewReviewToken()
	if err != nil {
		return "", nil, err
	}

	order, created, err := u.orders.CreateFromPayment(ctx, repository.OrderCreation{
		OrderID:     uuid.NewString(),
		SessionID:   event.SessionID,
		QuoteID:     event.QuoteID(),
		ReviewToken: reviewToken,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			// The quote referenced by the session does not exist. Acknowledge
			// the delivery anyway, otherwise the provider retries it forever.
			u.logger.Error("paid session references unknown quote",
				slog.String("quote_id", event.QuoteID()),
				slog.String("session_id", event.SessionID))
			return OutcomeSkipped, nil, nil
		}
		return "", nil, err
	}
	if !created {
		return OutcomeAlreadyProcessed, nil, nil
	}

	if err := u.sessions.MarkSessionPaid(ctx, event.SessionID); err != nil {
		u.logger.Error("failed to mark checkout session paid",
			slog.String("session_id", event.SessionID), slog.String("error", err.Error()))
	}

	u.logger.Info("order created from payment",
		slog.String("order_id", order.ID),
		slog.String("order_number", order.OrderNumber),
		slog.String("session_id", event.SessionID))

	u.notifier.OrderCreated(order)
	return OutcomeCreated, order, nil
}
