package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionRef(t *testing.T) {
	reg := NewRegistry("whsec_stripe", "whsec_paypal")

	ref, err := reg.NewSessionRef("stripe")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "stripe_"))

	other, err := reg.NewSessionRef("stripe")
	require.NoError(t, err)
	assert.NotEqual(t, ref, other)

	_, err = reg.NewSessionRef("venmo")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestVerifySignature(t *testing.T) {
	reg := NewRegistry("whsec_stripe", "")
	body := []byte(`{"type":"payment.captured","ref":"stripe_abc","amount_cents":15000,"currency":"MXN"}`)

	sig := Sign("whsec_stripe", body)
	assert.True(t, reg.VerifySignature("stripe", body, sig))
	assert.True(t, reg.VerifySignature("STRIPE", body, " "+sig+" "), "provider case and padding are tolerated")

	assert.False(t, reg.VerifySignature("stripe", body, Sign("wrong-secret", body)))
	assert.False(t, reg.VerifySignature("stripe", []byte(`{}`), sig), "signature is over the exact body")
	assert.False(t, reg.VerifySignature("paypal", body, Sign("", body)), "disabled provider rejects everything")
	assert.False(t, reg.VerifySignature("venmo", body, sig))
}
