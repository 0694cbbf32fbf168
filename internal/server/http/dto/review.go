package dto

// ReviewResponse is the client-facing view of an order under review. It
// exposes only what the client needs to read and approve the translation.
type ReviewResponse struct {
	OrderNumber     string `json:"order_number"`
	Status          string `json:"status"`
	SourceLanguage  string `json:"source_language"`
	TargetLanguage  string `json:"target_language"`
	DocumentType    string `json:"document_type,omitempty"`
	OriginalText    string `json:"original_text"`
	ProofreadText   string `json:"proofread_text"`
	PMNotes         string `json:"pm_notes,omitempty"`
	ClientApproved  bool   `json:"client_approved"`
	CorrectionNotes string `json:"correction_notes,omitempty"`
}

// CorrectionRequest carries the client's change notes.
type CorrectionRequest struct {
	Notes string `json:"notes"`
}
