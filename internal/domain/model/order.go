package model

import "time"

// TranslationStatus describes the order pipeline lifecycle.
type TranslationStatus string

const (
	StatusReceived         TranslationStatus = "received"
	StatusOCRPending       TranslationStatus = "ocr_pending"
	StatusTranslating      TranslationStatus = "translating"
	StatusProofreading     TranslationStatus = "proofreading"
	StatusPMReview         TranslationStatus = "pm_review"
	StatusClientReview     TranslationStatus = "client_review"
	StatusApproved         TranslationStatus = "approved"
	StatusCompleted        TranslationStatus = "completed"
	StatusCorrections      TranslationStatus = "corrections"
	StatusPMUploadReady    TranslationStatus = "pm_upload_ready"
	StatusFinal            TranslationStatus = "final"
	StatusTranslationError TranslationStatus = "translation_error"
)

// transitions is the single source of truth for legal status moves.
// Handlers and use cases never hardcode edges; they ask CanTransition.
var transitions = map[TranslationStatus][]TranslationStatus{
	StatusReceived:         {StatusOCRPending, StatusTranslating},
	StatusOCRPending:       {StatusTranslating},
	StatusTranslating:      {StatusProofreading, StatusTranslationError},
	StatusProofreading:     {StatusPMReview, StatusTranslationError},
	StatusPMReview:         {StatusClientReview},
	StatusClientReview:     {StatusApproved, StatusCorrections},
	StatusApproved:         {StatusCompleted},
	StatusCorrections:      {StatusTranslating, StatusPMReview},
	StatusTranslationError: {StatusTranslating},
	StatusPMUploadReady:    {StatusFinal},
	StatusCompleted:        nil,
	StatusFinal:            nil,
}

// CanTransition reports whether moving from one status to another is legal.
// The manual upload path (any non-terminal status -> pm_upload_ready) is the
// only edge not listed per-status: it bypasses the AI stages entirely.
func CanTransition(from, to TranslationStatus) bool {
	if to == StatusPMUploadReady {
		return !IsTerminal(from) && from != StatusPMUploadReady
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist for the status.
func IsTerminal(s TranslationStatus) bool {
	return s == StatusCompleted || s == StatusFinal
}

// Startable reports whether the translation pipeline may be (re)started
// from the status. Corrections and translation_error re-enter translating
// through an explicit operator action.
func Startable(s TranslationStatus) bool {
	switch s {
	case StatusReceived, StatusOCRPending, StatusCorrections, StatusTranslationError:
		return true
	}
	return false
}

// PMUpload holds an externally produced translation attached by the PM.
type PMUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
	UploadedAt  time.Time
}

// Order is the paid, stateful unit of translation work. Pipeline parameters
// are copied from the quote at creation time and never change afterwards.
type Order struct {
	ID             string
	OrderNumber    string
	QuoteID        string
	SessionID      string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	ServiceTier    string
	CertType       string
	DeliverySpeed  string
	DeliveryMethod string
	SourceLanguage string
	TargetLanguage string
	DocumentType   string
	Purpose        string
	PageCount      int
	Notes          string
	DocumentIDs    []string
	BasePrice      float64
	TotalPrice     float64

	Status          TranslationStatus
	OriginalText    string
	TranslatedText  string
	ProofreadText   string
	AICorrections   string
	AIInstructions  string
	ErrorMessage    string
	PMApproved      bool
	PMNotes         string
	ClientApproved  bool
	CorrectionNotes string
	ReviewToken     string

	UploadFilename    string
	UploadContentType string
	UploadSize        int64
	UploadedAt        *time.Time

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ApprovedAt  *time.Time
	CompletedAt *time.Time
}

// Stats aggregates order counts for the operator dashboard.
type Stats struct {
	TotalOrders          int
	Completed            int
	InProgress           int
	PendingPMReview      int
	CorrectionsRequested int
	TotalRevenue         float64
}
