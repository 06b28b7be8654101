package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pageloadtime/internal/config"
	"github.com/hamed0406/pageloadtime/internal/httpapi"
	"github.com/hamed0406/pageloadtime/internal/logging"
	"github.com/hamed0406/pageloadtime/internal/metrics"
	"github.com/hamed0406/pageloadtime/internal/probe"
	"github.com/hamed0406/pageloadtime/internal/repo"
	"github.com/hamed0406/pageloadtime/internal/repo/backend"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("store_open_failed", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer closeStore()

	m := metrics.New()
	timer := probe.NewTimer(cfg.HTTPTimeout, logger, m)
	api := httpapi.NewServer(logger, repo.WithMetrics(store, m), timer, m)

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: api.Router(httpapi.RouterOptions{
			AllowedOrigins: cfg.AllowedOrigins,
			RateLimitRPM:   cfg.RateLimitRPM,
			RateLimitBurst: cfg.RateLimitBurst,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		// a request may time several pages back to back
		WriteTimeout: 5 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api_listen",
			zap.String("addr", cfg.Addr),
			zap.String("backend", cfg.StoreBackend),
			zap.Duration("http_timeout", cfg.HTTPTimeout),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("api_shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("api_shutdown_failed", zap.Error(err))
		}
	case err := <-errCh:
		logger.Error("api_listen_failed", zap.Error(err))
	}
}
