package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the error envelope returned by every failing endpoint.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Error sends an error response with the shared detail envelope.
func Error(c echo.Context, status int, detail string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, ErrorResponse{Detail: detail})
}

// HTTPErrorHandler renders framework-level errors (unknown routes, method
// mismatches, failed binds) with the same detail envelope handlers use.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	detail := http.StatusText(status)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			detail = msg
		} else {
			detail = http.StatusText(status)
		}
	}

	if writeErr := Error(c, status, detail); writeErr != nil {
		zap.L().Error("write error response", zap.Error(writeErr))
	}
}
