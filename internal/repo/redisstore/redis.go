// Package redisstore stores each page record as a hash under "{prefix}:{page}".
package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hamed0406/pageloadtime/internal/domain"
	"github.com/hamed0406/pageloadtime/internal/repo"
)

var _ repo.PageStore = (*Store)(nil)

const (
	fieldPage        = "page"
	fieldLoadingTime = "loading_time"
)

type Store struct {
	client *redis.Client
	prefix string
	log    *zap.Logger
}

// Config holds connection settings; Prefix is usually the PAGES_TABLE name.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func New(cfg Config, log *zap.Logger) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewFromClient(client, cfg.Prefix, log)
}

func NewFromClient(client *redis.Client, prefix string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{client: client, prefix: prefix, log: log}
}

func (s *Store) key(page string) string {
	return s.prefix + ":" + page
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, page string) (*domain.PageRecord, error) {
	fields, err := s.client.HGetAll(ctx, s.key(page)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	if len(fields) == 0 {
		return nil, repo.ErrNotFound
	}
	return &domain.PageRecord{
		Page:        fields[fieldPage],
		LoadingTime: fields[fieldLoadingTime],
	}, nil
}

func (s *Store) Put(ctx context.Context, rec *domain.PageRecord) error {
	// both fields are always written, so HSET fully replaces the record
	err := s.client.HSet(ctx, s.key(rec.Page),
		fieldPage, rec.Page,
		fieldLoadingTime, rec.LoadingTime,
	).Err()
	if err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	s.log.Debug("redis_page_put", zap.String("key", s.key(rec.Page)))
	return nil
}
