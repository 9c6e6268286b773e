package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"portfolio/app/config"
	"portfolio/app/mailer"
	"portfolio/app/routes"
)

// RunAppServer opens the store, seeds it when configured to and serves the
// site until ctx is cancelled.
func RunAppServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if err := cfg.CheckServe(); err != nil {
		return err
	}
	if cfg.DefaultSessionKeyInUse() {
		logger.Warn("Using the built-in session key; set PORTFOLIO_SESSION_KEY before deploying")
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close store", zap.Error(err))
		}
	}()

	if cfg.Storage.Seed {
		seeded, err := store.Seed()
		if err != nil {
			return fmt.Errorf("failed to seed store: %w", err)
		}
		if seeded {
			logger.Info("Loaded seed data")
		}
	}
	logger.Info("Store ready",
		zap.Bool("in_memory", store.InMemory()),
		zap.String("path", store.Path()))

	handler, err := routes.SetupRoutes(cfg, store, mailer.NewEmailJS(cfg.Email, logger), logger)
	if err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}
	return routes.StartServer(ctx, cfg.Server.Addr, handler, cfg.Server.ShutdownTimeout, logger)
}
