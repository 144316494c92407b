package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	s := &PaymentService{WebhookSecret: "whsec_test"}
	body := []byte(`{"event":"payment_link.paid"}`)

	assert.True(t, s.VerifyWebhookSignature(body, sign("whsec_test", body)))
	assert.False(t, s.VerifyWebhookSignature(body, sign("wrong_secret", body)))
	assert.False(t, s.VerifyWebhookSignature([]byte(`tampered`), sign("whsec_test", body)))
	assert.False(t, s.VerifyWebhookSignature(body, ""))
}

func TestHandleWebhookMalformedBody(t *testing.T) {
	s := &PaymentService{WebhookSecret: "whsec_test"}
	err := s.HandleWebhook(context.Background(), []byte(`{not json`))
	require.Error(t, err)
}

// Events other than payment_link.paid are acknowledged without touching
// storage; the repo being nil proves nothing was queried.
func TestHandleWebhookIgnoresOtherEvents(t *testing.T) {
	s := &PaymentService{WebhookSecret: "whsec_test"}
	err := s.HandleWebhook(context.Background(), []byte(`{"event":"payment.captured","payload":{}}`))
	require.NoError(t, err)
}
