package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hamed0406/pageloadtime/internal/domain"
	"github.com/hamed0406/pageloadtime/internal/repo"
)

var _ repo.PageStore = (*Store)(nil)

type Store struct {
	pool  *pgxpool.Pool
	log   *zap.Logger
	table string // already quoted
}

func New(ctx context.Context, dsn, table string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{
		pool:  pool,
		log:   log,
		table: pgx.Identifier{table}.Sanitize(),
	}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the pages table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+s.table+` (
  page         TEXT PRIMARY KEY,
  loading_time TEXT NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, page string) (*domain.PageRecord, error) {
	rec := domain.PageRecord{Page: page}
	err := s.pool.QueryRow(ctx,
		`SELECT loading_time FROM `+s.table+` WHERE page = $1`, page,
	).Scan(&rec.LoadingTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	return &rec, nil
}

func (s *Store) Put(ctx context.Context, rec *domain.PageRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO `+s.table+` (page, loading_time)
		 VALUES ($1, $2)
		 ON CONFLICT (page)
		 DO UPDATE SET loading_time = EXCLUDED.loading_time`,
		rec.Page, rec.LoadingTime,
	)
	if err != nil {
		return fmt.Errorf("put page: %w", err)
	}
	s.log.Debug("pg_page_put", zap.String("page", rec.Page))
	return nil
}
