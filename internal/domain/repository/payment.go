package repository

import (
	"context"

	"github.com/tradux/backend/internal/domain/model"
)

// PaymentRepository records checkout sessions created with the provider.
// Webhook deduplication lives inside OrderRepository.CreateFromPayment so the
// event insert and the order insert share one transaction.
type PaymentRepository interface {
	CreateCheckoutSession(ctx context.Context, session *model.CheckoutSession) error
	MarkSessionPaid(ctx context.Context, sessionID string) error
}
