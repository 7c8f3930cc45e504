package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sitecms/internal/auth"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/handler"
	"github.com/sitecms/internal/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	cfg, log := current.cfg, current.log
	gin.SetMode(cfg.Server.GinMode)

	if weak := cfg.DefaultSecrets(); len(weak) > 0 {
		if cfg.Server.GinMode == gin.ReleaseMode {
			return fmt.Errorf("refusing to start in release mode with development secrets, set %s", strings.Join(weak, " and "))
		}
		log.Warn().Strs("unset", weak).Msg("using development secrets")
	}

	if cfg.HasBootstrapAdmin() {
		created, err := db.EnsureAdmin(db.DB, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
		if created {
			log.Info().Str("email", db.NormalizeEmail(cfg.Admin.Email)).Msg("bootstrap admin created")
		}
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenIssuer, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	api := handler.NewAPI(db.DB, handler.Options{
		Tokens:       tokens,
		UploadDir:    cfg.Upload.Dir,
		UploadURL:    cfg.Upload.URLPath,
		UploadMax:    cfg.Upload.MaxBytes,
		CookieSecure: cfg.Auth.CookieSecure,
	})

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           router.SetupRouter(api, cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("server stopped gracefully")
	return nil
}
