package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/nova-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nova-backend/internal/config"
	"github.com/heartmarshall/nova-backend/internal/inference"
	"github.com/heartmarshall/nova-backend/internal/observability"
)

// Run is the application entry point. It loads configuration, connects to
// the database, loads the classifiers and serves HTTP until ctx is
// cancelled, then drains in-flight requests.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("auth_mode", cfg.Auth.Mode),
		slog.String("llm_provider", cfg.LLM.Provider),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	verifier, err := NewVerifier(cfg.Auth)
	if err != nil {
		return err
	}

	maternal, err := inference.LoadPipeline(cfg.Models.MaternalPath, inference.MaternalV1)
	if err != nil {
		return err
	}
	fetal, err := inference.LoadPipeline(cfg.Models.FetalPath, inference.FetalV1)
	if err != nil {
		return err
	}
	logger.Info("classifiers loaded",
		slog.String("maternal", inference.MaternalV1.ID()),
		slog.String("fetal", inference.FetalV1.ID()),
	)

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics("nova")
	}

	handler, stop := NewHandler(cfg, logger, Dependencies{
		DB:        pool,
		Verifier:  verifier,
		Generator: NewGenerator(cfg.LLM),
		Maternal:  maternal,
		Fetal:     fetal,
		Metrics:   metrics,
	})
	defer stop()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
