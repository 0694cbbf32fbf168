package payments

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_InvalidURL(t *testing.T) {
	_, err := NewHTTPClient("://", "sk", time.Second)
	assert.Error(t, err)

	_, err = NewHTTPClient("relative", "sk", time.Second)
	assert.Error(t, err)
}

func TestCreateCheckoutSession_NotConfigured(t *testing.T) {
	c, err := NewHTTPClient("https://api.stripe.com", "", time.Second)
	require.NoError(t, err)

	_, err = c.CreateCheckoutSession(context.Background(), CheckoutParams{QuoteID: "q_1"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCreateCheckoutSession_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "tradux", r.PostForm.Get("metadata[brand]"))
		assert.Equal(t, "q_42", r.PostForm.Get("metadata[quote_id]"))
		assert.Equal(t, "8625", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "client@example.com", r.PostForm.Get("customer_email"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"cs_test_abc","url":"https://checkout.example/cs_test_abc"}`)
	}))
	defer server.Close()

	c, err := NewHTTPClient(server.URL, "sk_test", time.Second)
	require.NoError(t, err)

	session, err := c.CreateCheckoutSession(context.Background(), CheckoutParams{
		QuoteID:       "q_42",
		Brand:         "tradux",
		Description:   "Certified translation, 3 pages",
		AmountCents:   8625,
		Currency:      "usd",
		CustomerEmail: "client@example.com",
		SuccessURL:    "https://tradux.online/success",
		CancelURL:     "https://tradux.online/cancel",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_abc", session.SessionID)
	assert.Equal(t, "q_42", session.QuoteID)
	assert.Equal(t, "https://checkout.example/cs_test_abc", session.CheckoutURL)
}

func TestCreateCheckoutSession_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid amount"}}`, http.StatusBadRequest)
	}))
	defer server.Close()

	c, err := NewHTTPClient(server.URL, "sk_test", time.Second)
	require.NoError(t, err)

	_, err = c.CreateCheckoutSession(context.Background(), CheckoutParams{QuoteID: "q_1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")
}

func TestCreateCheckoutSession_MissingSessionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"url":"https://checkout.example/x"}`)
	}))
	defer server.Close()

	c, err := NewHTTPClient(server.URL, "sk_test", time.Second)
	require.NoError(t, err)

	_, err = c.CreateCheckoutSession(context.Background(), CheckoutParams{QuoteID: "q_1"})
	assert.Error(t, err)
}
