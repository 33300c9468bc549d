// Package main is the entry point for the Evenfolio equal-value rebalancer.
// The service connects to the Kite Connect brokerage API, aggregates current
// holdings with same-day trades, allocates buy orders so every eligible
// holding reaches a common target value, and executes them on request.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkartik/evenfolio/internal/clients/kite"
	"github.com/mkartik/evenfolio/internal/config"
	"github.com/mkartik/evenfolio/internal/modules/rebalance"
	"github.com/mkartik/evenfolio/internal/server"
	"github.com/mkartik/evenfolio/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("exchange", cfg.Exchange).
		Int("port", cfg.Port).
		Bool("dev_mode", cfg.DevMode).
		Msg("Starting Evenfolio")

	// Broker client. A pre-issued access token (daily Kite tokens) can be
	// supplied via the environment; otherwise the session is established
	// through the /api/login browser flow.
	broker := kite.NewBrokerAdapter(cfg.APIKey, cfg.APISecret, log)
	defer broker.Client().Close()

	if cfg.AccessToken != "" {
		broker.Client().SetAccessToken(cfg.AccessToken)
		log.Info().Msg("Session installed from environment")
	} else {
		log.Info().Str("login_url", broker.Client().LoginURL()).Msg("No access token configured; complete the login flow to start a session")
	}

	rebalanceService := rebalance.NewService(broker, cfg.Exchange, cfg.TargetValue, log)

	srv := server.New(server.Config{
		Log:              log,
		Port:             cfg.Port,
		DevMode:          cfg.DevMode,
		Broker:           broker,
		RebalanceService: rebalanceService,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
