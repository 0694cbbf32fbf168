package dto

import "time"

// DocumentResponse describes an uploaded document and its extraction result.
type DocumentResponse struct {
	ID               string    `json:"id"`
	Filename         string    `json:"filename"`
	ContentType      string    `json:"content_type"`
	FileSize         int64     `json:"file_size"`
	WordCount        int       `json:"word_count"`
	PageCount        int       `json:"page_count"`
	ExtractionMethod string    `json:"extraction_method"`
	ExtractedText    string    `json:"extracted_text,omitempty"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// WebhookResponse acknowledges a payment webhook delivery.
type WebhookResponse struct {
	Received bool   `json:"received"`
	Outcome  string `json:"outcome"`
}
