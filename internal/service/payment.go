package service

import (
	"context"
	"math"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
)

const (
	checkoutProductName        = "Company Verification API Credits"
	checkoutProductDescription = "Credits for company verification operations"
	checkoutMetadataCredits    = "credits"
)

var (
	// ErrPaymentNotConfigured is returned when no Stripe secret key is set.
	ErrPaymentNotConfigured = eris.New("payment: stripe is not configured")
	// ErrPaymentIncomplete is returned when a checkout session was not paid.
	ErrPaymentIncomplete = eris.New("payment: session not paid")
)

// CheckoutSession describes a freshly created Stripe checkout.
type CheckoutSession struct {
	ID          string
	URL         string
	AmountTotal float64
	Credits     int
}

// PaymentSession describes a completed checkout retrieved from Stripe.
type PaymentSession struct {
	ID            string
	CustomerEmail string
	AmountTotal   float64
	Credits       int
}

// PaymentProcessor abstracts the payment provider so handlers can be tested
// without talking to Stripe.
type PaymentProcessor interface {
	CreateCheckoutSession(ctx context.Context, successURL, cancelURL string, credits int) (*CheckoutSession, error)
	VerifySession(ctx context.Context, sessionID string) (*PaymentSession, error)
}

// StripeProcessor sells verification credits through Stripe Checkout.
type StripeProcessor struct {
	secretKey            string
	pricePerVerification float64
}

// NewStripeProcessor configures the Stripe client. An empty secret key
// leaves the processor in place but makes every call fail with
// ErrPaymentNotConfigured.
func NewStripeProcessor(secretKey string, pricePerVerification float64) *StripeProcessor {
	stripe.Key = secretKey
	return &StripeProcessor{
		secretKey:            secretKey,
		pricePerVerification: pricePerVerification,
	}
}

// CreateCheckoutSession opens a checkout for the given number of credits and
// returns the hosted payment URL.
func (p *StripeProcessor) CreateCheckoutSession(ctx context.Context, successURL, cancelURL string, credits int) (*CheckoutSession, error) {
	if p.secretKey == "" {
		return nil, ErrPaymentNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(checkoutProductName),
						Description: stripe.String(checkoutProductDescription),
					},
					UnitAmount: stripe.Int64(p.checkoutUnitAmount()),
				},
				Quantity: stripe.Int64(int64(credits)),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.Context = ctx
	params.AddMetadata(checkoutMetadataCredits, strconv.Itoa(credits))

	sess, err := session.New(params)
	if err != nil {
		return nil, eris.Wrap(err, "payment: create checkout session")
	}

	return &CheckoutSession{
		ID:          sess.ID,
		URL:         sess.URL,
		AmountTotal: float64(sess.AmountTotal) / 100,
		Credits:     credits,
	}, nil
}

// VerifySession retrieves a checkout session and confirms it was paid.
func (p *StripeProcessor) VerifySession(ctx context.Context, sessionID string) (*PaymentSession, error) {
	if p.secretKey == "" {
		return nil, ErrPaymentNotConfigured
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, eris.Wrap(err, "payment: retrieve checkout session")
	}
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil, ErrPaymentIncomplete
	}

	credits, _ := strconv.Atoi(sess.Metadata[checkoutMetadataCredits])
	customerEmail := ""
	if sess.CustomerDetails != nil {
		customerEmail = sess.CustomerDetails.Email
	}

	return &PaymentSession{
		ID:            sess.ID,
		CustomerEmail: customerEmail,
		AmountTotal:   float64(sess.AmountTotal) / 100,
		Credits:       credits,
	}, nil
}

// checkoutUnitAmount converts the per-verification price into the Stripe
// unit amount in cents for a single credit.
func (p *StripeProcessor) checkoutUnitAmount() int64 {
	return int64(math.Round(p.pricePerVerification * 100 / CreditsPerVerification))
}
