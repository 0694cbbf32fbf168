package dto

import "time"

// QuoteRequest describes the quote creation payload.
type QuoteRequest struct {
	ServiceTier    string   `json:"service_tier"`
	CertType       string   `json:"cert_type"`
	DeliverySpeed  string   `json:"delivery_speed"`
	DeliveryMethod string   `json:"delivery_method"`
	SourceLanguage string   `json:"source_language"`
	TargetLanguage string   `json:"target_language"`
	DocumentType   string   `json:"document_type"`
	Purpose        string   `json:"purpose"`
	CustomerName   string   `json:"customer_name"`
	CustomerEmail  string   `json:"customer_email"`
	CustomerPhone  string   `json:"customer_phone"`
	Notes          string   `json:"notes"`
	PageCount      int      `json:"page_count"`
	DocumentIDs    []string `json:"document_ids"`
}

// BreakdownResponse mirrors the stored price decomposition.
type BreakdownResponse struct {
	PerPage         float64 `json:"per_page"`
	PageCount       int     `json:"page_count"`
	BasePrice       float64 `json:"base_price"`
	SpeedMultiplier float64 `json:"speed_multiplier"`
	TranslationCost float64 `json:"translation_cost"`
	CertFee         float64 `json:"cert_fee"`
	DeliveryFee     float64 `json:"delivery_fee"`
	TotalPrice      float64 `json:"total_price"`
}

// QuoteResponse describes a stored quote.
type QuoteResponse struct {
	ID             string            `json:"id"`
	Reference      string            `json:"reference"`
	ServiceTier    string            `json:"service_tier"`
	CertType       string            `json:"cert_type"`
	DeliverySpeed  string            `json:"delivery_speed"`
	DeliveryMethod string            `json:"delivery_method"`
	SourceLanguage string            `json:"source_language"`
	TargetLanguage string            `json:"target_language"`
	DocumentType   string            `json:"document_type"`
	CustomerEmail  string            `json:"customer_email"`
	DocumentIDs    []string          `json:"document_ids,omitempty"`
	Breakdown      BreakdownResponse `json:"breakdown"`
	Status         string            `json:"status"`
	OrderID        string            `json:"order_id,omitempty"`
	OrderNumber    string            `json:"order_number,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// CheckoutResponse carries the hosted checkout page location.
type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}
