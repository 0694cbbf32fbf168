// Package extraction implements the client for the document text-extraction
// collaborator (OCR/PDF/DOCX parsing). Extraction is best-effort: an empty
// text result means the document needs manual OCR.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

const wordsPerPage = 250

// Result mirrors the extraction service response.
type Result struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	PageCount int    `json:"page_count"`
	Method    string `json:"method"`
}

// Client extracts text from an uploaded file.
type Client interface {
	Extract(ctx context.Context, data []byte, filename, contentType string) (*Result, error)
}

// HTTPClient calls a remote extraction service. When no service address is
// configured it degrades to a size-based estimate so uploads keep working.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates the extraction client. baseURL may be empty.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	c := &HTTPClient{
		logger: logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	if baseURL == "" {
		return c, nil
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse extraction url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("extraction url must be absolute")
	}
	c.baseURL = parsed
	return c, nil
}

// Extract sends the file to the extraction service. Any failure falls back
// to Estimate: upload must not break because OCR is down.
func (c *HTTPClient) Extract(ctx context.Context, data []byte, filename, contentType string) (*Result, error) {
	if c.baseURL == nil {
		return Estimate(len(data)), nil
	}

	result, err := c.remoteExtract(ctx, data, filename, contentType)
	if err != nil {
		c.logger.Error("extraction request failed, using estimate",
			slog.String("filename", filename), slog.String("error", err.Error()))
		return Estimate(len(data)), nil
	}
	if result.WordCount == 0 {
		est := Estimate(len(data))
		est.Text = result.Text
		return est, nil
	}
	if result.PageCount < 1 {
		result.PageCount = 1
	}
	return result, nil
}

func (c *HTTPClient) remoteExtract(ctx context.Context, data []byte, filename, contentType string) (*Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.WriteField("content_type", contentType); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	endpoint := *c.baseURL
	endpoint.Path = "/extract"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("extraction error: %s: %s", resp.Status, raw)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode extraction response: %w", err)
	}
	return &result, nil
}

// Estimate derives word and page counts from the file size alone, used when
// no text could be extracted. Roughly 10 words per KB, 250 words per page.
func Estimate(sizeBytes int) *Result {
	words := int(float64(sizeBytes) / 1024 * 10)
	if words < 250 {
		words = 250
	}
	pages := int(math.Ceil(float64(words) / wordsPerPage))
	if pages < 1 {
		pages = 1
	}
	return &Result{
		WordCount: words,
		PageCount: pages,
		Method:    "estimate",
	}
}
