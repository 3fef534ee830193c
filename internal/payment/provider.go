// Package payment models the result contracts of the external payment
// collaborators (Stripe, PayPal).  The provider SDK calls themselves
// live outside this system; what is consumed here is a session
// reference handed to the client at checkout and a signed capture
// callback that flips the reservation to paid.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Provider names accepted in checkout and webhook routes.
const (
	ProviderStripe = "stripe"
	ProviderPayPal = "paypal"
)

// ErrUnknownProvider is returned for a provider name outside the
// accepted set.
var ErrUnknownProvider = errors.New("unknown payment provider")

// CaptureEvent is the payload a provider posts when a payment is
// captured.  Ref must match the payment_ref stored at checkout.
type CaptureEvent struct {
	Type        string `json:"type"`         // e.g. "payment.captured"
	Ref         string `json:"ref"`          // provider session/charge reference
	AmountCents int64  `json:"amount_cents"` // captured amount, informational
	Currency    string `json:"currency"`     // ISO currency code
}

// Registry resolves provider names to their webhook signing secrets.
// A provider with an empty secret is treated as disabled and rejects
// every callback.
type Registry struct {
	secrets map[string]string
}

// NewRegistry builds a Registry for the two supported providers.
func NewRegistry(stripeSecret, paypalSecret string) *Registry {
	return &Registry{secrets: map[string]string{
		ProviderStripe: stripeSecret,
		ProviderPayPal: paypalSecret,
	}}
}

// NewSessionRef mints an opaque checkout session reference for the
// given provider.  The reference is what the capture webhook later
// matches the reservation by.
func (r *Registry) NewSessionRef(provider string) (string, error) {
	provider = strings.ToLower(provider)
	if _, ok := r.secrets[provider]; !ok {
		return "", ErrUnknownProvider
	}
	return provider + "_" + uuid.NewString(), nil
}

// VerifySignature checks the hex HMAC-SHA256 signature a provider sent
// over the raw webhook body.  It returns false for unknown or disabled
// providers and for any signature mismatch.  Comparison is constant
// time.
func (r *Registry) VerifySignature(provider string, body []byte, signature string) bool {
	secret, ok := r.secrets[strings.ToLower(provider)]
	if !ok || secret == "" {
		return false
	}
	expected := Sign(secret, body)
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(signature)))
}

// Sign computes the hex HMAC-SHA256 of body under secret.  Exported so
// tests and provider simulators can produce valid signatures.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
