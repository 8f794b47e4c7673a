package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/riandyrn/otelchi"

	"github.com/hearthside/leaseiq/internal/adapter/fsm"
	"github.com/hearthside/leaseiq/internal/adapter/otel"
	"github.com/hearthside/leaseiq/internal/adapter/river"
	"github.com/hearthside/leaseiq/internal/adapter/sqlite"
	"github.com/hearthside/leaseiq/internal/app"

	handler "github.com/hearthside/leaseiq/internal/adapter/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("leaseiq: %v", err)
	}
}

func run() error {
	// Missing .env is fine; environment variables take precedence anyway.
	_ = godotenv.Load()

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "leaseiq.db")

	ctx := context.Background()

	// --- Observability ---
	providers, err := otel.Setup(ctx, otel.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}

	// --- Adapters (out) ---
	db, err := otel.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	store, err := sqlite.NewFromDB(db)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer store.Close()

	riverClient, err := river.Setup(ctx, db)
	if err != nil {
		return fmt.Errorf("river setup: %w", err)
	}
	if err := riverClient.Start(ctx); err != nil {
		return fmt.Errorf("river start: %w", err)
	}

	applications := otel.NewTracingRepository(store.Applications())
	publisher := otel.NewTracingPublisher(river.NewPublisher(riverClient))

	// --- Application ---
	applicationSvc := app.NewApplicationService(
		applications, store.Properties(), store.Tenants(), publisher, fsm.New(),
	)
	propertySvc := app.NewPropertyService(store.Properties())
	tenantSvc := app.NewTenantService(store.Tenants())

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(otelchi.Middleware("leaseiq", otelchi.WithChiRoutes(router)))

	api := humachi.New(router, huma.DefaultConfig("leaseiq", "0.1.0"))
	handler.Register(api, applicationSvc, propertySvc, tenantSvc)

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("leaseiq listening", "port", port, "docs", fmt.Sprintf("http://localhost:%s/docs", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case <-done:
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}
	if err := riverClient.Stop(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("river stop: %w", err))
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("otel shutdown: %w", err))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	slog.Info("stopped")
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
