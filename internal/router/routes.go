package router

import (
	"github.com/labstack/echo/v4"

	"github.com/trustlens/verification-api/internal/handler"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Verify  *handler.VerifyHandler
	Meta    *handler.MetaHandler
	Credits *handler.CreditsHandler
	Payment *handler.PaymentHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, handlers Handlers) {
	e.GET("/", handlers.Meta.Root)
	e.GET("/health", handlers.Meta.Health)
	e.GET("/pricing", handlers.Meta.Pricing)
	e.GET("/.well-known/x402", handlers.Meta.X402Discovery)

	e.POST("/verify", handlers.Verify.Verify)
	e.POST("/verify/batch", handlers.Verify.VerifyBatch)

	e.GET("/credits/check", handlers.Credits.Check)
	e.POST("/admin/create-api-key", handlers.Credits.CreateAPIKey)

	e.POST("/purchase", handlers.Payment.Purchase)
	e.GET("/payment/success", handlers.Payment.Success)
	e.GET("/payment/cancel", handlers.Payment.Cancel)
}
