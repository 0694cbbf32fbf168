// Package ai implements the client for the AI translate/proofread
// collaborator. The service speaks a messages API: one system prompt, one
// user turn, text content back.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured indicates the AI collaborator has no API key set.
var ErrNotConfigured = errors.New("ai service not configured")

// correctionsMarker separates the corrected text from the change list in the
// proofread response.
const correctionsMarker = "---CORRECTIONS---"

const maxResponseTokens = 8000

// TranslateRequest carries the full source text plus pipeline context.
type TranslateRequest struct {
	Text              string
	SourceLanguage    string
	TargetLanguage    string
	DocumentType      string
	ServiceTier       string
	ExtraInstructions string
}

// ProofreadRequest carries both texts for the review pass.
type ProofreadRequest struct {
	OriginalText   string
	TranslatedText string
	SourceLanguage string
	TargetLanguage string
	DocumentType   string
}

// ProofreadResult is the corrected text plus a free-text change note.
type ProofreadResult struct {
	Text        string
	Corrections string
}

// Client exposes the two AI pipeline stages.
type Client interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
	Proofread(ctx context.Context, req ProofreadRequest) (*ProofreadResult, error)
}

// HTTPClient implements Client against the messages API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

type messagesRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system"`
	Messages  []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewHTTPClient creates the AI client. An empty apiKey produces a client
// whose calls fail with ErrNotConfigured, matching the degraded mode the
// rest of the pipeline expects.
func NewHTTPClient(baseURL, apiKey, model string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse ai url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("ai url must be absolute")
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		model:   model,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Translate runs the first AI stage and returns the translated text.
func (c *HTTPClient) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	system := translateSystemPrompt(req)
	user := fmt.Sprintf("Translate the following document:\n\n%s", req.Text)

	text, err := c.complete(ctx, system, user)
	if err != nil {
		return "", err
	}
	return text, nil
}

// Proofread runs the review stage; the corrections note is whatever follows
// the marker in the model output.
func (c *HTTPClient) Proofread(ctx context.Context, req ProofreadRequest) (*ProofreadResult, error) {
	system := proofreadSystemPrompt(req)
	user := fmt.Sprintf("ORIGINAL (%s):\n%s\n\nTRANSLATION (%s):\n%s",
		req.SourceLanguage, req.OriginalText, req.TargetLanguage, req.TranslatedText)

	text, err := c.complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	result := &ProofreadResult{Corrections: "No corrections needed."}
	if idx := strings.Index(text, correctionsMarker); idx >= 0 {
		result.Text = strings.TrimSpace(text[:idx])
		result.Corrections = strings.TrimSpace(text[idx+len(correctionsMarker):])
	} else {
		result.Text = strings.TrimSpace(text)
	}
	return result, nil
}

func (c *HTTPClient) complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	endpoint := *c.baseURL
	endpoint.Path = "/v1/messages"

	payload, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: maxResponseTokens,
		System:    system,
		Messages:  []chatMessage{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var data messagesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("decode ai response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if data.Error != nil && data.Error.Message != "" {
			msg = data.Error.Message
		}
		c.logger.Error("ai request failed", slog.Int("status", resp.StatusCode), slog.String("error", msg))
		return "", fmt.Errorf("ai error: %s", msg)
	}

	if len(data.Content) == 0 || data.Content[0].Text == "" {
		return "", fmt.Errorf("ai returned empty response")
	}
	return data.Content[0].Text, nil
}

func translateSystemPrompt(req TranslateRequest) string {
	docType := req.DocumentType
	if docType == "" {
		docType = "general document"
	}
	var b strings.Builder
	fmt.Fprintf(&b, `You are a professional certified translator working for TRADUX,
a certified translation service. You provide accurate, official translations that are
accepted by USCIS, courts, universities, and government agencies.

TRANSLATION REQUIREMENTS:
- Translate from %s to %s
- Document type: %s
- Service level: %s
- Maintain the original document's formatting and structure
- Preserve all names, dates, numbers, and addresses exactly
- Use proper legal/official terminology
- Do NOT add any notes or commentary — output ONLY the translation`,
		req.SourceLanguage, req.TargetLanguage, docType, req.ServiceTier)
	if req.ExtraInstructions != "" {
		fmt.Fprintf(&b, "\n- Additional instructions: %s", req.ExtraInstructions)
	}
	return b.String()
}

func proofreadSystemPrompt(req ProofreadRequest) string {
	docType := req.DocumentType
	if docType == "" {
		docType = "official documents"
	}
	return fmt.Sprintf(`You are a senior proofreader at TRADUX certified translation service.
Your job is to review a translation from %s to %s and correct any errors.

PROOFREADING REQUIREMENTS:
- Check accuracy against the original text
- Fix grammar, spelling, and punctuation errors
- Ensure proper terminology for %s
- Verify all names, dates, and numbers are correctly translated
- Ensure the translation reads naturally in %s
- Output the corrected translation text
- After the corrected text, add a section "%s" listing what you changed (if anything)`,
		req.SourceLanguage, req.TargetLanguage, docType, req.TargetLanguage, correctionsMarker)
}
