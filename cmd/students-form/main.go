// main is the entry point of the Students form.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file, environment, or built-in defaults)
//  2. Initialise the logger
//  3. Build the record store for the configured database driver
//  4. Load the table once
//  5. Serve the window on the configured address
//  6. Block until an OS signal (Ctrl+C / kill) arrives, then shut down
//
// RUNNING:
//
//	go run ./cmd/students-form --config=config/local.yaml
//
// then open http://localhost:8082 in a browser.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/students-form/internal/config"
	"github.com/aanand-mishra/students-form/internal/form"
	"github.com/aanand-mishra/students-form/internal/http/handlers/window"
	"github.com/aanand-mishra/students-form/internal/storage/backend"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// The handlers and the controller log through the package-level slog
	// functions, so the configured logger becomes the default.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting students-form",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// Nothing is dialed here for MySQL and PostgreSQL: every store
	// operation opens and closes a connection of its own.
	storage, err := backend.Open(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised",
		slog.String("driver", cfg.Database.Driver))

	// ── 4. Initial Load ───────────────────────────────────────────────────
	// A failure here is not fatal: it shows up as the first dialog and the
	// table stays empty until the next successful reload.
	ctrl := form.NewController(storage)
	ctrl.Load(context.Background())

	// ── 5. Serve the Window ───────────────────────────────────────────────
	router := http.NewServeMux()
	window.Register(router, ctrl)

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("window available", slog.String("url", "http://"+cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, closing window...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("window closed")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
