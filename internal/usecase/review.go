package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/tradux/backend/internal/domain/errors"
	"github.com/tradux/backend/internal/domain/model"
	"github.com/tradux/backend/internal/domain/repository"
	"github.com/tradux/backend/internal/pkg/token"
)

const defaultCorrectionNotes = "No specific notes provided"

// ReviewUseCase handles the token-gated client review surface. Lookup
// failures and token mismatches are indistinguishable to the caller so the
// review endpoint does not leak which order ids exist.
type ReviewUseCase struct {
	orders   repository.OrderRepository
	notifier Notifier
	logger   *slog.Logger
}

// NewReviewUseCase constructs ReviewUseCase.
func NewReviewUseCase(orders repository.OrderRepository, notifier Notifier, logger *slog.Logger) *ReviewUseCase {
	return &ReviewUseCase{orders: orders, notifier: notifier, logger: logger}
}

func (u *ReviewUseCase) authorize(ctx context.Context, orderID, presented string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotFoundOrForbidden
		}
		return nil, err
	}
	if !token.Equal(order.ReviewToken, presented) {
		return nil, domainErrors.ErrNotFoundOrForbidden
	}
	return order, nil
}

// Get returns the order behind a review link.
func (u *ReviewUseCase) Get(ctx context.Context, orderID, presented string) (*model.Order, error) {
	return u.authorize(ctx, orderID, presented)
}

// Approve records the client's sign-off. Approving an already-approved order
// is a no-op so double-submitted forms and refreshed pages stay harmless.
func (u *ReviewUseCase) Approve(ctx context.Context, orderID, presented string) error {
	order, err := u.authorize(ctx, orderID, presented)
	if err != nil {
		return err
	}

	if order.ClientApproved && order.Status != model.StatusClientReview {
		return nil
	}
	if order.Status != model.StatusClientReview {
		return fmt.Errorf("%w: cannot approve in %s", domainErrors.ErrInvalidTransition, order.Status)
	}

	if err := u.orders.ClientApprove(ctx, orderID); err != nil {
		if errors.Is(err, domainErrors.ErrStatusConflict) {
			// Lost a race against another submit of the same form.
			current, getErr := u.orders.GetByID(ctx, orderID)
			if getErr == nil && current.ClientApproved {
				return nil
			}
		}
		return err
	}

	u.logger.Info("client approved order",
		slog.String("order_id", orderID), slog.String("order_number", order.OrderNumber))
	u.notifier.ClientApproved(order, order.PMNotes)
	return nil
}

// RequestCorrections records the client's change request and parks the order
// for an operator-triggered rerun.
func (u *ReviewUseCase) RequestCorrections(ctx context.Context, orderID, presented, notes string) error {
	order, err := u.authorize(ctx, orderID, presented)
	if err != nil {
		return err
	}
	if order.Status != model.StatusClientReview {
		return fmt.Errorf("%w: cannot request corrections in %s", domainErrors.ErrInvalidTransition, order.Status)
	}

	if notes == "" {
		notes = defaultCorrectionNotes
	}
	if err := u.orders.RequestCorrections(ctx, orderID, notes); err != nil {
		return err
	}

	u.logger.Info("client requested corrections",
		slog.String("order_id", orderID), slog.String("order_number", order.OrderNumber))
	u.notifier.CorrectionsRequested(order, notes)
	return nil
}
