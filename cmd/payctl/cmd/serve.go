package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/payment-instructions/internal/api"
	"github.com/pigeonworks-llc/payment-instructions/pkg/processor"
)

const shutdownTimeout = 10 * time.Second

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the payment instruction HTTP server",
	Long: `Start an HTTP server exposing:

  POST /payment-instructions  process one instruction
  GET  /health                liveness check
  GET  /metrics               Prometheus metrics (PAYMENT_METRICS=true)

The server listens on PAYMENT_PORT and shuts down gracefully on SIGINT or
SIGTERM.

Example:
  PAYMENT_PORT=9090 payctl serve`,
	RunE:         runServe,
	SilenceUsage: true,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, _ := loadConfig([]string{"server", "port"})

	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	server := api.NewServer(processor.New(processor.WithLogger(logger)))
	if cfg.Server.MetricsEnabled {
		server.EnableMetrics()
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting payment instruction server",
		"addr", addr,
		"env", cfg.AppEnv,
		"metrics", cfg.Server.MetricsEnabled)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
