package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripeProcessorRequiresConfiguration(t *testing.T) {
	p := NewStripeProcessor("", 0.10)

	_, err := p.CreateCheckoutSession(context.Background(), "https://api.test/ok", "https://api.test/cancel", 100)
	assert.ErrorIs(t, err, ErrPaymentNotConfigured)

	_, err = p.VerifySession(context.Background(), "cs_test_123")
	assert.ErrorIs(t, err, ErrPaymentNotConfigured)
}

func TestCheckoutUnitAmount(t *testing.T) {
	cases := []struct {
		name  string
		price float64
		want  int64
	}{
		{"default price", 0.10, 1},
		{"dollar per verification", 1.00, 10},
		{"rounds to nearest cent", 0.25, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewStripeProcessor("sk_test_key", tc.price)
			assert.Equal(t, tc.want, p.checkoutUnitAmount())
		})
	}
}
