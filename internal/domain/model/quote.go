package model

import "time"

// QuoteStatus tracks whether a quote has been paid for.
type QuoteStatus string

const (
	QuoteStatusPendingPayment QuoteStatus = "pending_payment"
	QuoteStatusPaid           QuoteStatus = "paid"
)

// Breakdown is the deterministic price decomposition of a quote. All values
// are computed once at quote creation and never recomputed.
type Breakdown struct {
	PerPage         float64
	PageCount       int
	BasePrice       float64
	SpeedMultiplier float64
	TranslationCost float64
	CertFee         float64
	DeliveryFee     float64
	TotalPrice      float64
}

// Quote is a priced, unpaid order proposal. It becomes immutable except for
// the single pending_payment -> paid flip performed during order creation.
type Quote struct {
	ID             string
	Reference      string
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
	DocumentIDs    []string
	Breakdown      Breakdown
	Status         QuoteStatus
	OrderID        string
	OrderNumber    string
	CreatedAt      time.Time
}
