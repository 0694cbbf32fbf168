// Package mailer implements the transactional e-mail client. Delivery is
// best-effort everywhere it is used: a failed notification never fails the
// business operation that triggered it.
package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("mailer: api key not configured")

// Attachment is a file attached to an outgoing message.
type Attachment struct {
	Filename string
	Data     []byte
}

// Message is one outgoing e-mail.
type Message struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Client sends transactional e-mail.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

type sendRequest struct {
	From        string           `json:"from"`
	To          []string         `json:"to"`
	Subject     string           `json:"subject"`
	HTML        string           `json:"html"`
	Attachments []attachmentBody `json:"attachments,omitempty"`
}

type attachmentBody struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// HTTPClient sends mail through a Resend-compatible HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	sender     string
	httpClient *http.Client
}

// NewHTTPClient creates the mail client. An empty apiKey is allowed, Send
// then returns ErrNotConfigured.
func NewHTTPClient(baseURL, apiKey, sender string, timeout time.Duration) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse mailer url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("mailer url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		sender:  sender,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Send posts the message to the provider.
func (c *HTTPClient) Send(ctx context.Context, msg Message) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}
	if len(msg.To) == 0 {
		return errors.New("mailer: no recipients")
	}

	payload := sendRequest{
		From:    c.sender,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	}
	for _, att := range msg.Attachments {
		payload.Attachments = append(payload.Attachments, attachmentBody{
			Filename: att.Filename,
			Content:  base64.StdEncoding.EncodeToString(att.Data),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mail request: %w", err)
	}

	endpoint := *c.baseURL
	endpoint.Path = "/emails"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mailer error: %s: %s", resp.Status, raw)
	}
	return nil
}
