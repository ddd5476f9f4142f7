package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// APIVersion is reported by the metadata endpoints.
const APIVersion = "2.0.0"

// MetaHandler serves the service metadata, health, pricing and payment
// discovery endpoints.
type MetaHandler struct {
	baseURL              string
	pricePerVerification float64
}

// NewMetaHandler constructs a metadata handler.
func NewMetaHandler(baseURL string, pricePerVerification float64) *MetaHandler {
	return &MetaHandler{
		baseURL:              baseURL,
		pricePerVerification: pricePerVerification,
	}
}

// Root handles GET / with the service banner and endpoint index.
func (h *MetaHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Company Verification API",
		"version": APIVersion,
		"endpoints": map[string]string{
			"verify":   "POST /verify",
			"batch":    "POST /verify/batch",
			"health":   "GET /health",
			"credits":  "GET /credits/check",
			"purchase": "POST /purchase",
		},
	})
}

// Health handles GET /health.
func (h *MetaHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   APIVersion,
	})
}

// Pricing handles GET /pricing with the static price sheet.
func (h *MetaHandler) Pricing(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"single_verification": "$0.10 (10 credits)",
		"batch_verification":  "$0.10 per company",
		"bulk_pricing": map[string]string{
			"100_credits":   "$1.00",
			"1000_credits":  "$10.00",
			"10000_credits": "$100.00",
		},
		"payment_methods": []string{"stripe"},
	})
}

// X402Discovery handles GET /.well-known/x402. It always answers 402 so
// machine clients can discover how to buy access.
func (h *MetaHandler) X402Discovery(c echo.Context) error {
	return c.JSON(http.StatusPaymentRequired, map[string]any{
		"version": "1.0.0",
		"accepts": []string{"stripe"},
		"price": map[string]string{
			"amount":   fmt.Sprintf("%.2f", h.pricePerVerification),
			"currency": "USD",
		},
		"purchase_url": h.baseURL + "/purchase",
	})
}
