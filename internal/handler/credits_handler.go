package handler

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trustlens/verification-api/internal/service"
)

const defaultKeyCredits = 100

// APIKeyIssuer abstracts the API key service for handler tests.
type APIKeyIssuer interface {
	CreateKey(ctx context.Context, userEmail string, credits int) (string, error)
	Credits(ctx context.Context, apiKey string) (*int, error)
}

// CreditsHandler serves credit balance checks and admin key issuance.
type CreditsHandler struct {
	keys        APIKeyIssuer
	adminSecret string
}

// NewCreditsHandler constructs a credits handler.
func NewCreditsHandler(keys APIKeyIssuer, adminSecret string) *CreditsHandler {
	return &CreditsHandler{keys: keys, adminSecret: adminSecret}
}

// Check handles GET /credits/check for a bearer API key.
func (h *CreditsHandler) Check(c echo.Context) error {
	apiKey, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		return Error(c, http.StatusUnauthorized, "Invalid authorization header")
	}

	credits, err := h.keys.Credits(c.Request().Context(), apiKey)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "Credit lookup failed")
	}
	if credits == nil {
		return Error(c, http.StatusUnauthorized, "Invalid API key")
	}

	status := "active"
	if *credits < service.CreditsPerVerification {
		status = "low_credits"
	}
	return c.JSON(http.StatusOK, map[string]any{
		"credits_remaining":       *credits,
		"verifications_available": *credits / service.CreditsPerVerification,
		"status":                  status,
	})
}

// CreateAPIKey handles POST /admin/create-api-key, gated by the
// X-Admin-Secret header. The raw key appears only in this response.
func (h *CreditsHandler) CreateAPIKey(c echo.Context) error {
	if !h.authorizedAdmin(c.Request().Header.Get("X-Admin-Secret")) {
		return Error(c, http.StatusForbidden, "Forbidden")
	}

	userEmail := strings.TrimSpace(c.QueryParam("user_email"))
	if userEmail == "" {
		return Error(c, http.StatusBadRequest, "user_email is required")
	}
	credits := parseIntDefault(c.QueryParam("credits"), defaultKeyCredits)

	apiKey, err := h.keys.CreateKey(c.Request().Context(), userEmail, credits)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "Failed to create API key")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":        "success",
		"api_key":       apiKey,
		"user_email":    userEmail,
		"credits":       credits,
		"verifications": credits / service.CreditsPerVerification,
		"message":       "SAVE THIS KEY!",
	})
}

// authorizedAdmin compares the provided secret in constant time. An unset
// admin secret locks the endpoint.
func (h *CreditsHandler) authorizedAdmin(provided string) bool {
	if h.adminSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.adminSecret)) == 1
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")), true
}

func parseIntDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}
