package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trustlens/verification-api/internal/service"
)

const (
	minPurchaseCredits = 10
	maxPurchaseCredits = 10000
)

// PaymentHandler sells verification credits through a checkout provider and
// redeems completed sessions for API keys.
type PaymentHandler struct {
	payments service.PaymentProcessor
	keys     APIKeyIssuer
	baseURL  string
}

// NewPaymentHandler constructs a payment handler.
func NewPaymentHandler(payments service.PaymentProcessor, keys APIKeyIssuer, baseURL string) *PaymentHandler {
	return &PaymentHandler{payments: payments, keys: keys, baseURL: baseURL}
}

// Purchase handles POST /purchase and opens a checkout session.
func (h *PaymentHandler) Purchase(c echo.Context) error {
	credits := parseIntDefault(c.QueryParam("credits"), defaultKeyCredits)
	if credits < minPurchaseCredits || credits > maxPurchaseCredits {
		return Error(c, http.StatusBadRequest, "Credits must be between 10 and 10,000")
	}

	successURL := h.baseURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := h.baseURL + "/payment/cancel"

	sess, err := h.payments.CreateCheckoutSession(c.Request().Context(), successURL, cancelURL, credits)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotConfigured) {
			return Error(c, http.StatusServiceUnavailable, "Payments are not configured")
		}
		return Error(c, http.StatusBadRequest, "Checkout error: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"checkout_url":  sess.URL,
		"session_id":    sess.ID,
		"total_amount":  sess.AmountTotal,
		"credits":       credits,
		"verifications": credits / service.CreditsPerVerification,
	})
}

// Success handles GET /payment/success. It confirms the session was paid,
// mints an API key for the buyer and shows it exactly once.
func (h *PaymentHandler) Success(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return Error(c, http.StatusBadRequest, "session_id is required")
	}

	info, err := h.payments.VerifySession(c.Request().Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentIncomplete):
			return Error(c, http.StatusBadRequest, "Payment not completed")
		case errors.Is(err, service.ErrPaymentNotConfigured):
			return Error(c, http.StatusServiceUnavailable, "Payments are not configured")
		default:
			return Error(c, http.StatusBadRequest, "Session verification failed: "+err.Error())
		}
	}

	userEmail := info.CustomerEmail
	if userEmail == "" {
		userEmail = fallbackCustomerEmail(sessionID)
	}

	apiKey, err := h.keys.CreateKey(c.Request().Context(), userEmail, info.Credits)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "Payment processing failed: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":                  "success",
		"message":                 "SAVE THIS API KEY! It will not be shown again.",
		"api_key":                 apiKey,
		"credits":                 info.Credits,
		"verifications_available": info.Credits / service.CreditsPerVerification,
		"user_email":              userEmail,
		"amount_paid":             fmt.Sprintf("$%.2f", info.AmountTotal),
		"instructions": map[string]string{
			"step_1":  "Copy the api_key above",
			"step_2":  "Use it in Authorization header",
			"example": "Authorization: Bearer " + apiKey,
		},
		"docs": h.baseURL + "/",
	})
}

// Cancel handles GET /payment/cancel.
func (h *PaymentHandler) Cancel(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "cancelled",
		"message": "Payment cancelled",
	})
}

// fallbackCustomerEmail labels buyers whose checkout carried no email.
func fallbackCustomerEmail(sessionID string) string {
	prefix := sessionID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return "user_" + prefix + "@stripe.customer"
}
