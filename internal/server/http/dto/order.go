package dto

import "time"

// OrderResponse is the full operator view of an order.
type OrderResponse struct {
	ID             string   `json:"id"`
	OrderNumber    string   `json:"order_number"`
	QuoteID        string   `json:"quote_id"`
	CustomerName   string   `json:"customer_name"`
	CustomerEmail  string   `json:"customer_email"`
	CustomerPhone  string   `json:"customer_phone,omitempty"`
	ServiceTier    string   `json:"service_tier"`
	CertType       string   `json:"cert_type"`
	DeliverySpeed  string   `json:"delivery_speed"`
	DeliveryMethod string   `json:"delivery_method"`
	SourceLanguage string   `json:"source_language"`
	TargetLanguage string   `json:"target_language"`
	DocumentType   string   `json:"document_type,omitempty"`
	PageCount      int      `json:"page_count"`
	Notes          string   `json:"notes,omitempty"`
	DocumentIDs    []string `json:"document_ids,omitempty"`
	TotalPrice     float64  `json:"total_price"`

	Status          string `json:"status"`
	OriginalText    string `json:"original_text,omitempty"`
	TranslatedText  string `json:"translated_text,omitempty"`
	ProofreadText   string `json:"proofread_text,omitempty"`
	AICorrections   string `json:"ai_corrections,omitempty"`
	AIInstructions  string `json:"ai_instructions,omitempty"`
	ErrorMessage    string `json:"error_message,omitempty"`
	PMApproved      bool   `json:"pm_approved"`
	PMNotes         string `json:"pm_notes,omitempty"`
	ClientApproved  bool   `json:"client_approved"`
	CorrectionNotes string `json:"correction_notes,omitempty"`

	UploadFilename string     `json:"upload_filename,omitempty"`
	UploadSize     int64      `json:"upload_size,omitempty"`
	UploadedAt     *time.Time `json:"uploaded_at,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// OrderListResponse is a paginated order listing.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// StatsResponse aggregates dashboard counters.
type StatsResponse struct {
	TotalOrders          int     `json:"total_orders"`
	Completed            int     `json:"completed"`
	InProgress           int     `json:"in_progress"`
	PendingPMReview      int     `json:"pending_pm_review"`
	CorrectionsRequested int     `json:"corrections_requested"`
	TotalRevenue         float64 `json:"total_revenue"`
}

// StartTranslationRequest optionally overrides the source text and adds
// operator instructions before (re)starting the pipeline.
type StartTranslationRequest struct {
	Text         string `json:"text"`
	Instructions string `json:"instructions"`
}

// ApproveRequest carries optional PM notes.
type ApproveRequest struct {
	Notes string `json:"notes"`
}

// ApproveResponse returns the review link material issued on PM approval.
type ApproveResponse struct {
	ReviewToken string `json:"review_token"`
	ReviewURL   string `json:"review_url"`
}

// UpdateTextRequest replaces the proofread text during PM review.
type UpdateTextRequest struct {
	Text string `json:"text"`
}
