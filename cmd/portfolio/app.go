package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/17okk-xie/portfolio/internal/auth"
	"github.com/17okk-xie/portfolio/internal/catalog"
	"github.com/17okk-xie/portfolio/internal/config"
	"github.com/17okk-xie/portfolio/internal/db"
	"github.com/17okk-xie/portfolio/internal/logging"
	"github.com/17okk-xie/portfolio/internal/media"
	"github.com/17okk-xie/portfolio/internal/store"
)

// app bundles the resources every command needs.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *db.DB
	media   *media.LocalStore
	catalog *catalog.Store

	closeLog func()
}

func openApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	database, err := db.Open(db.Driver(cfg.DBDriver), cfg.DSN())
	if err != nil {
		closeLog()
		return nil, err
	}

	// Migrations are idempotent.
	if err := db.Migrate(database); err != nil {
		database.Close()
		closeLog()
		return nil, err
	}
	logger.Info("database ready", "driver", cfg.DBDriver)

	mediaStore, err := media.NewLocalStore(cfg.MediaDir, logger)
	if err != nil {
		database.Close()
		closeLog()
		return nil, err
	}

	cat := catalog.New(store.NewKV(database),
		catalog.WithMediaReleaser(mediaStore),
		catalog.WithLogger(logger),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       database,
		media:    mediaStore,
		catalog:  cat,
		closeLog: closeLog,
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", "error", err)
	}
	a.closeLog()
}

// jwtSecret returns the configured secret or the one persisted in the
// database, generating it on first run.
func (a *app) jwtSecret(ctx context.Context) (string, error) {
	if a.cfg.JWTSecret != "" {
		return a.cfg.JWTSecret, nil
	}
	secret, err := store.GetJWTSecret(ctx, a.db)
	if err != nil {
		return "", fmt.Errorf("loading JWT secret: %w", err)
	}
	return secret, nil
}

func (a *app) pin() (*auth.PIN, error) {
	if a.cfg.PINHash != "" {
		return auth.PINFromHash(a.cfg.PINHash)
	}
	if a.cfg.PIN == config.DefaultPIN {
		a.logger.Warn("upload page uses the default PIN; set pin_hash or PORTFOLIO_PIN")
	}
	return auth.NewPIN(a.cfg.PIN)
}
