// Package server boots the back-office: config, logging, database, cache,
// storage, then the HTTP and gRPC listeners. It owns the shutdown order.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vitrine/backoffice/config"
	"github.com/vitrine/backoffice/internal/kernel"
	"github.com/vitrine/backoffice/pkg/cache"
	"github.com/vitrine/backoffice/pkg/crypt"
	"github.com/vitrine/backoffice/pkg/database"
	"github.com/vitrine/backoffice/pkg/grpc"
	"github.com/vitrine/backoffice/pkg/logger"
	"github.com/vitrine/backoffice/pkg/storage"
	"github.com/vitrine/backoffice/pkg/workerpool"
)

// Start serves until SIGINT or SIGTERM.
func Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return Run(ctx)
}

// Run serves until ctx is done. Shutdown drains HTTP, stops gRPC, drains
// the publish pool, then flushes logs.
func Run(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	defer logger.Close()

	if err := logger.AttachMongo(config.LogMongoURI(), config.LogMongoDB()); err != nil {
		logger.Warn("mongo log sink disabled", zap.Error(err))
	}

	db, err := database.Connect()
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	store, err := cache.Connect(ctx)
	if err != nil {
		logger.Warn("redis unavailable, banner cache disabled", zap.Error(err))
	}
	defer store.Close()

	cipher, err := crypt.New(config.AppKey())
	if err != nil {
		return err
	}

	deps := kernel.Deps{
		DB:        db,
		Cipher:    cipher,
		Cache:     store,
		CacheTTL:  config.CacheTTL(),
		RateLimit: config.RateLimitPerMinute(),
	}

	var pool *workerpool.Pool
	if config.BannerPublish() {
		disk, err := storage.Connect(ctx).Default()
		if err != nil {
			return fmt.Errorf("banner publishing: %w", err)
		}
		pool = workerpool.New(config.PublishWorkers(), "banner-publish")
		deps.Disk, deps.Pool = disk, pool
	}

	k, err := kernel.New(deps)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var grpcSrv *grpc.Server
	if port := config.GRPCPort(); port != "" {
		grpcSrv = grpc.New()
		if err := grpcSrv.Start(port); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("backoffice listening", zap.String("addr", srv.Addr), zap.String("env", config.AppEnv()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			grpcSrv.Stop()
			if pool != nil {
				pool.Shutdown()
			}
			return fmt.Errorf("http: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}

	grpcSrv.Stop()
	if pool != nil {
		pool.Shutdown()
	}
	logger.Info("backoffice stopped")
	return nil
}
