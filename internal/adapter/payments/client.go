// Package payments implements the checkout-provider client and the webhook
// event verification for incoming payment notifications.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tradux/backend/internal/domain/model"
)

// ErrNotConfigured is returned when no provider API key is set.
var ErrNotConfigured = errors.New("payments: api key not configured")

// CheckoutParams describes the hosted checkout page to create for a quote.
type CheckoutParams struct {
	QuoteID       string
	Brand         string
	Description   string
	AmountCents   int64
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// Client creates hosted checkout sessions with the payment provider.
type Client interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*model.CheckoutSession, error)
}

// HTTPClient talks to a Stripe-compatible checkout API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient creates the provider client. An empty apiKey is allowed,
// CreateCheckoutSession then returns ErrNotConfigured.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payments url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payments url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type checkoutResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession creates a hosted checkout page and returns its id
// and redirect URL. The quote id and brand tag travel in session metadata so
// the webhook handler can route the completed event back to the right quote.
func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*model.CheckoutSession, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.Description)
	form.Set("metadata[brand]", params.Brand)
	form.Set("metadata[quote_id]", params.QuoteID)
	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}

	endpoint := *c.baseURL
	endpoint.Path = "/v1/checkout/sessions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payments error: %s: %s", resp.Status, raw)
	}

	var result checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode checkout response: %w", err)
	}
	if result.ID == "" {
		return nil, errors.New("payments: checkout response without session id")
	}

	return &model.CheckoutSession{
		SessionID:   result.ID,
		QuoteID:     params.QuoteID,
		CheckoutURL: result.URL,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
