package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trustlens/verification-api/internal/dto"
	"github.com/trustlens/verification-api/internal/entity"
)

const batchLimitMessage = "Maximum 10 companies per batch request"

// CompanyVerifier abstracts the verification service for handler tests.
type CompanyVerifier interface {
	Verify(ctx context.Context, req dto.VerifyRequest) (*entity.VerificationResult, error)
	VerifyBatch(ctx context.Context, companies []dto.VerifyRequest) []dto.BatchVerifyItem
}

// VerifyHandler serves the single and batch verification endpoints.
type VerifyHandler struct {
	verifier CompanyVerifier
}

// NewVerifyHandler constructs a verification handler.
func NewVerifyHandler(verifier CompanyVerifier) *VerifyHandler {
	return &VerifyHandler{verifier: verifier}
}

// Verify handles POST /verify. An Authorization header is accepted but not
// enforced.
func (h *VerifyHandler) Verify(c echo.Context) error {
	var req dto.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	result, err := h.verifier.Verify(c.Request().Context(), req)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "Verification failed: "+err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// VerifyBatch handles POST /verify/batch. The body is a bare JSON array of
// verification requests, capped at ten companies per call. Items are
// processed in order and per-item failures are reported inline.
func (h *VerifyHandler) VerifyBatch(c echo.Context) error {
	var companies []dto.VerifyRequest
	if err := c.Bind(&companies); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if len(companies) > dto.MaxBatchCompanies {
		return Error(c, http.StatusBadRequest, batchLimitMessage)
	}

	results := h.verifier.VerifyBatch(c.Request().Context(), companies)
	return c.JSON(http.StatusOK, dto.BatchVerifyResponse{Results: results})
}
