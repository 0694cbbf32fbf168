package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradux/backend/internal/domain/errors"
)

const completedPayload = `{
	"id": "evt_123",
	"type": "checkout.session.completed",
	"data": {
		"object": {
			"id": "cs_test_abc",
			"amount_total": 8625,
			"metadata": {"brand": "tradux", "quote_id": "q_42"},
			"customer_details": {"email": "client@example.com"}
		}
	}
}`

func fixedVerifier(secret string, at time.Time) *Verifier {
	v := NewVerifier(secret)
	v.now = func() time.Time { return at }
	return v
}

func TestVerifySignature_Valid(t *testing.T) {
	now := time.Unix(1700000000, 0)
	v := fixedVerifier("whsec_test", now)

	header := v.Sign([]byte(completedPayload), now)
	assert.NoError(t, v.VerifySignature([]byte(completedPayload), header))
}

func TestVerifySignature_TamperedPayload(t *testing.T) {
	now := time.Unix(1700000000, 0)
	v := fixedVerifier("whsec_test", now)

	header := v.Sign([]byte(completedPayload), now)
	err := v.VerifySignature([]byte(completedPayload+" "), header)
	assert.ErrorIs(t, err, errors.ErrSignatureInvalid)
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)
	signer := fixedVerifier("whsec_other", now)
	v := fixedVerifier("whsec_test", now)

	header := signer.Sign([]byte(completedPayload), now)
	err := v.VerifySignature([]byte(completedPayload), header)
	assert.ErrorIs(t, err, errors.ErrSignatureInvalid)
}

func TestVerifySignature_StaleTimestamp(t *testing.T) {
	signedAt := time.Unix(1700000000, 0)
	v := fixedVerifier("whsec_test", signedAt.Add(10*time.Minute))

	header := v.Sign([]byte(completedPayload), signedAt)
	err := v.VerifySignature([]byte(completedPayload), header)
	assert.ErrorIs(t, err, errors.ErrSignatureInvalid)
}

func TestVerifySignature_MalformedHeader(t *testing.T) {
	v := NewVerifier("whsec_test")

	for _, header := range []string{"", "t=abc,v1=00", "v1=00", "t=1700000000", "garbage"} {
		err := v.VerifySignature([]byte(completedPayload), header)
		assert.ErrorIs(t, err, errors.ErrSignatureInvalid, "header %q", header)
	}
}

func TestVerifySignature_NoSecretAcceptsAll(t *testing.T) {
	v := NewVerifier("")
	assert.NoError(t, v.VerifySignature([]byte(completedPayload), "t=1,v1=00"))
	assert.NoError(t, v.VerifySignature([]byte(completedPayload), ""))
}

func TestVerifySignature_MultipleSignatures(t *testing.T) {
	now := time.Unix(1700000000, 0)
	v := fixedVerifier("whsec_test", now)

	good := v.Sign([]byte(completedPayload), now)
	header := good + ",v1=deadbeef"
	assert.NoError(t, v.VerifySignature([]byte(completedPayload), header))
}

func TestParseEvent(t *testing.T) {
	v := NewVerifier("whsec_test")

	event, err := v.ParseEvent([]byte(completedPayload))
	require.NoError(t, err)
	assert.Equal(t, "evt_123", event.ID)
	assert.Equal(t, EventTypeCheckoutCompleted, event.Type)
	assert.Equal(t, "cs_test_abc", event.SessionID)
	assert.Equal(t, "client@example.com", event.CustomerEmail)
	assert.Equal(t, int64(8625), event.AmountTotal)
	assert.Equal(t, "tradux", event.Brand())
	assert.Equal(t, "q_42", event.QuoteID())
}

func TestParseEvent_NoMetadata(t *testing.T) {
	v := NewVerifier("whsec_test")

	event, err := v.ParseEvent([]byte(`{"id":"evt_1","type":"charge.refunded","data":{"object":{"id":"ch_1"}}}`))
	require.NoError(t, err)
	assert.Empty(t, event.Brand())
	assert.Empty(t, event.QuoteID())
}

func TestParseEvent_BadJSON(t *testing.T) {
	v := NewVerifier("whsec_test")

	_, err := v.ParseEvent([]byte("{"))
	assert.Error(t, err)
}
