// Package backend opens the page store selected by configuration.
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pageloadtime/internal/config"
	"github.com/hamed0406/pageloadtime/internal/repo"
	"github.com/hamed0406/pageloadtime/internal/repo/dynamo"
	"github.com/hamed0406/pageloadtime/internal/repo/memory"
	"github.com/hamed0406/pageloadtime/internal/repo/postgres"
	"github.com/hamed0406/pageloadtime/internal/repo/redisstore"
)

var ErrNoDatabaseURL = errors.New("DATABASE_URL is required for the postgres backend")

// Open returns the configured store and a func releasing its connections.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (repo.PageStore, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Info("store_open", zap.String("backend", cfg.StoreBackend))
		return memory.New(), noop, nil

	case config.BackendDynamo:
		client, err := dynamo.NewClient(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
		if err != nil {
			return nil, noop, err
		}
		log.Info("store_open",
			zap.String("backend", cfg.StoreBackend),
			zap.String("table", cfg.PagesTable),
			zap.String("endpoint", cfg.DynamoEndpoint),
		)
		return dynamo.New(client, cfg.PagesTable, log), noop, nil

	case config.BackendRedis:
		s := redisstore.New(redisstore.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.PagesTable,
		}, log)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.Ping(pingCtx); err != nil {
			_ = s.Close()
			return nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		log.Info("store_open", zap.String("backend", cfg.StoreBackend), zap.String("addr", cfg.RedisAddr))
		return s, func() { _ = s.Close() }, nil

	case config.BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, noop, ErrNoDatabaseURL
		}
		s, err := postgres.New(ctx, cfg.DatabaseURL, cfg.PagesTable, log)
		if err != nil {
			return nil, noop, err
		}
		if err := s.EnsureSchema(ctx); err != nil {
			s.Close()
			return nil, noop, err
		}
		log.Info("store_open", zap.String("backend", cfg.StoreBackend), zap.String("table", cfg.PagesTable))
		return s, s.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
