// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/halvard/mnemo/internal/ankiconnect"
	"github.com/halvard/mnemo/internal/catalog"
	"github.com/halvard/mnemo/internal/mcpserver"
	"github.com/halvard/mnemo/internal/syncgate"
	"github.com/halvard/mnemo/internal/toolgen"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Structured JSON logger on stderr; stdout carries the stdio transport.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("transport", cfg.App.Transport),
		slog.String("anki_url", cfg.Anki.URL),
		slog.String("catalog_path", cfg.Catalog.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Load and validate the tool catalog.
	var cat *catalog.Catalog
	if cfg.Catalog.Path != "" {
		var err error
		cat, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
	} else {
		cat = catalog.Default()
		if err := cat.Validate(); err != nil {
			return fmt.Errorf("validate built-in catalog: %w", err)
		}
	}

	backend := app.backend
	if backend == nil {
		backend = ankiconnect.New(cfg.Anki.URL, cfg.Anki.Version)
	}

	gate := syncgate.New(backend, time.Duration(cfg.Anki.SyncIntervalSeconds)*time.Second, logger)

	srv := mcpserver.New("Mnemo", "1.0.0", toolgen.New(cat, backend, gate).Tools())

	logger.Info("Tools generated",
		slog.Int("presets", len(cat.Presets)),
		slog.Int("templates", len(cat.Templates)))

	g, gCtx := errgroup.WithContext(ctx)

	// Hot-reload the catalog file, swapping the tool fleet on change.
	if cfg.Catalog.Path != "" {
		g.Go(func() error {
			return catalog.Watch(gCtx, cfg.Catalog.Path, logger, func(c *catalog.Catalog) {
				srv.ReplaceTools(toolgen.New(c, backend, gate).Tools())
			})
		})
	}

	switch cfg.App.Transport {
	case TransportStdio:
		g.Go(func() error {
			logger.Info("Serving MCP on stdio")
			if err := srv.ServeStdio(gCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("stdio server error: %w", err)
			}
			// Clean stdin EOF: unwind the whole run group.
			return context.Canceled
		})
		g.Go(func() error {
			waitForShutdown(gCtx, logger)
			return context.Canceled
		})
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Application error", slog.String("error", err.Error()))
			return err
		}

	case TransportHTTP:
		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.RealIP)
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		// Health check endpoints (unauthenticated).
		r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})

		r.Group(func(r chi.Router) {
			r.Use(bearerAuth(cfg.Auth.AuthEnabled(), cfg.Auth.Token))
			r.Mount("/mcp", srv.HTTPHandler())
		})

		httpServer := &http.Server{
			Addr:    cfg.App.HTTP.Address(),
			Handler: r,
		}

		g.Go(func() error {
			logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server error: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			waitForShutdown(gCtx, logger)

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
			}
			// Cancel the group so the catalog watcher unwinds too.
			return context.Canceled
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Application error", slog.String("error", err.Error()))
			return err
		}

	default:
		return fmt.Errorf("unknown transport: %s", cfg.App.Transport)
	}

	logger.Info("Server stopped successfully")
	return nil
}

// waitForShutdown blocks until a termination signal arrives or the run
// context is cancelled.
func waitForShutdown(ctx context.Context, logger *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("Context cancelled, initiating shutdown")
	}
}

// bearerAuth validates a Bearer token when enabled; disabled mode passes
// every request through.
func bearerAuth(enabled bool, token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != token {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
