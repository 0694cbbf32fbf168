package errors

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrStatusConflict      = errors.New("order status changed concurrently")
	ErrInvalidTransition   = errors.New("illegal status transition")
	ErrMissingExtraction   = errors.New("no extracted text for order documents")
	ErrPipelineRunning     = errors.New("pipeline already running for order")
	ErrSignatureInvalid    = errors.New("webhook signature invalid")
	ErrFileTooLarge        = errors.New("uploaded file exceeds size limit")
	ErrNotFoundOrForbidden = errors.New("order not found or token mismatch")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
