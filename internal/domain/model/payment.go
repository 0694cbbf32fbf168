package model

import "time"

// PaymentEvent records one webhook delivery from the payment provider,
// keyed by the provider session identifier. It exists purely so the intake
// can deduplicate redelivered events.
type PaymentEvent struct {
	SessionID string
	QuoteID   string
	EventType string
	Brand     string
	Processed bool
	CreatedAt time.Time
}

// CheckoutSession records a checkout created with the payment provider,
// kept for reconciliation against incoming webhook events.
type CheckoutSession struct {
	ID          string
	SessionID   string
	QuoteID     string
	CheckoutURL string
	Amount      float64
	Currency    string
	Status      string
	CreatedAt   time.Time
}
