package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/17okk-xie/portfolio/internal/api"
	"github.com/17okk-xie/portfolio/internal/contact"
	"github.com/17okk-xie/portfolio/internal/store"
	"github.com/17okk-xie/portfolio/internal/web"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts.configPath, addr)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides listen_addr)")

	return cmd
}

func serve(ctx context.Context, configPath, addr string) error {
	a, err := openApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if addr == "" {
		addr = a.cfg.ListenAddr
	}

	secret, err := a.jwtSecret(ctx)
	if err != nil {
		return err
	}
	pin, err := a.pin()
	if err != nil {
		return fmt.Errorf("loading PIN: %w", err)
	}

	revocations := store.Revocations{DB: a.db}
	contactSvc := contact.NewService(store.Messages{DB: a.db}, a.logger)

	apiRouter := api.NewRouter(api.Deps{
		Catalog:     a.catalog,
		Contact:     contactSvc,
		PIN:         pin,
		JWTSecret:   secret,
		Revocations: revocations,
	})
	webRouter, err := web.NewRouter(web.Deps{
		Catalog:        a.catalog,
		Media:          a.media,
		Contact:        contactSvc,
		PIN:            pin,
		JWTSecret:      secret,
		Revocations:    revocations,
		MaxUploadBytes: a.cfg.MaxUploadBytes,
		SecureCookies:  a.cfg.SecureCookies,
		Logger:         a.logger,
	})
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	// Uploads and video streams are long-lived, so only header reads and
	// idle connections are bounded.
	server := &http.Server{
		Addr:              addr,
		Handler:           newHandler(apiRouter, webRouter),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server started", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		a.logger.Error("server stopped", "error", err)
		return err
	}
	a.logger.Info("server stopped, closing database")
	return nil
}

// newHandler combines the routers: API routes take priority, web routes
// handle the rest. Every response is logged and carries the security headers.
func newHandler(apiRouter, webRouter http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", web.SecurityHeaders(apiRouter))
	mux.Handle("/", webRouter)
	return api.LoggingMiddleware(mux)
}
