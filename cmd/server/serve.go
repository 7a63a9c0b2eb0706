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
	"go.uber.org/zap"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/api"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/ingest"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/scheduler"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/service"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/statetoken"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, catalog, err := openCatalog(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	// Seed an empty database from the configured CSV.
	if catalog.Snapshot().Source == "" && cfg.Data.CSVPath != "" {
		if _, statErr := os.Stat(cfg.Data.CSVPath); statErr == nil {
			if _, err := catalog.ImportFile(ctx, cfg.Data.CSVPath); err != nil {
				logger.Warn("initial import failed", zap.String("path", cfg.Data.CSVPath), zap.Error(err))
			}
		}
	}

	if cfg.Sessions.TokenKey == "" {
		logger.Warn("SESSION_TOKEN_KEY not set, share tokens will not survive a restart (see keygen)")
	}
	tokens, err := statetoken.NewCodec(cfg.Sessions.TokenKey, cfg.Sessions.TokenTTL)
	if err != nil {
		return err
	}

	// Create services
	sessionService := service.NewSessionService(catalog, tokens, logger)
	systemService := service.NewSystemService(db, catalog, map[string]bool{
		"live_sessions":     true,
		"share_tokens":      true,
		"data_reload":       cfg.Auth.InternalAPIKey != "",
		"scheduled_refresh": cfg.Data.RefreshSchedule != "",
		"file_watch":        cfg.Data.Watch,
	})

	// Background jobs
	sched, err := scheduler.New(catalog, sessionService, scheduler.Options{
		CSVPath:         cfg.Data.CSVPath,
		RefreshSchedule: cfg.Data.RefreshSchedule,
		IdleTTL:         cfg.Sessions.IdleTTL,
	}, logger)
	if err != nil {
		return err
	}
	sched.Start(ctx)

	if cfg.Data.Watch {
		watcher := ingest.NewWatcher(cfg.Data.CSVPath, cfg.Data.WatchDebounce, logger, func(ctx context.Context) {
			if _, err := catalog.ImportFile(ctx, cfg.Data.CSVPath); err != nil {
				logger.Error("reload after file change failed", zap.Error(err))
			}
		})
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("file watcher stopped", zap.Error(err))
			}
		}()
	}

	router := api.NewRouter(systemService, catalog, sessionService, cfg, logger)

	// WriteTimeout is left unset so live WebSocket connections are not cut.
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}
