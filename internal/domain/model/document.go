package model

import "time"

// Document is an extracted-text record for one uploaded file. It is written
// once at upload and read-only afterwards.
type Document struct {
	ID               string
	Filename         string
	ContentType      string
	FileSize         int64
	WordCount        int
	PageCount        int
	ExtractionMethod string
	ExtractedText    string
	UploadedAt       time.Time
}
