package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/trustlens/verification-api/internal/config"
	"github.com/trustlens/verification-api/internal/database"
	"github.com/trustlens/verification-api/internal/handler"
	middlewarepkg "github.com/trustlens/verification-api/internal/middleware"
	"github.com/trustlens/verification-api/internal/repository"
	"github.com/trustlens/verification-api/internal/router"
	"github.com/trustlens/verification-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := config.InitLogger(cfg); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zap.L().Sync() }()

	keys, closeKeys, err := newKeyStore(cfg)
	if err != nil {
		log.Fatalf("failed to open key store: %v", err)
	}
	defer closeKeys()

	prober := service.NewWebsiteProber()
	verification := service.NewVerificationService(prober)
	apiKeys := service.NewAPIKeyService(keys)
	payments := service.NewStripeProcessor(cfg.StripeSecretKey, cfg.PricePerVerification)

	handlers := router.Handlers{
		Verify:  handler.NewVerifyHandler(verification),
		Meta:    handler.NewMetaHandler(cfg.BaseURL, cfg.PricePerVerification),
		Credits: handler.NewCreditsHandler(apiKeys, cfg.AdminSecret),
		Payment: handler.NewPaymentHandler(payments, apiKeys, cfg.BaseURL),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	router.Register(e, handlers)

	zap.L().Info("starting server", zap.String("port", cfg.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("graceful shutdown failed", zap.Error(err))
	}
}

// newKeyStore selects the API key backend: Postgres when DATABASE_URL is
// set, a local JSON file otherwise.
func newKeyStore(cfg *config.Config) (repository.APIKeysRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		repo, err := repository.NewFileAPIKeysRepository(cfg.APIKeysFile)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewPGXAPIKeysRepository(pool), pool.Close, nil
}
