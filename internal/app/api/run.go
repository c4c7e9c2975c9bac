package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Apurer/coffee-admin/internal/fakeapi"
	"github.com/Apurer/coffee-admin/internal/platform/blob"
	platformobservability "github.com/Apurer/coffee-admin/internal/platform/observability"
)

// Run boots the in-memory coffee shop API until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Config{
		ServiceName: fakeapi.ServiceName,
		LogLevel:    cfg.LogLevel,
		Exporter:    cfg.Exporter,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	uploads, err := buildUploadStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	backend := fakeapi.NewBackend(uploads, time.Now)
	if cfg.Seed {
		if err := fakeapi.SeedDefault(ctx, backend); err != nil {
			return fmt.Errorf("seed fake api: %w", err)
		}
		logger.Info("seeded demo catalog")
	}

	router := fakeapi.NewRouter(backend, fakeapi.WithLogger(logger), fakeapi.WithTracing())
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("coffee fake API listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("coffee fake API exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down coffee fake API")
	return srv.Shutdown(shutdownCtx)
}

func buildUploadStore(ctx context.Context, cfg Config, logger *slog.Logger) (blob.Store, error) {
	switch {
	case cfg.S3Bucket != "":
		store, err := blob.NewS3(ctx, blob.S3Config{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
			Bucket:    cfg.S3Bucket,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("uploads stored in s3", slog.String("bucket", cfg.S3Bucket))
		return store, nil
	case cfg.UploadsDir != "":
		store, err := blob.NewFilesystem(cfg.UploadsDir)
		if err != nil {
			return nil, err
		}
		logger.Info("uploads stored on disk", slog.String("dir", cfg.UploadsDir))
		return store, nil
	default:
		logger.Warn("UPLOADS_DIR not set, keeping uploads in memory")
		return blob.NewMemory(), nil
	}
}
