package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/hamed0406/pageloadtime/internal/domain"
	"github.com/hamed0406/pageloadtime/internal/metrics"
	"github.com/hamed0406/pageloadtime/internal/repo"
	"github.com/hamed0406/pageloadtime/internal/repo/dynamo"
	"github.com/hamed0406/pageloadtime/internal/repo/memory"
	pg "github.com/hamed0406/pageloadtime/internal/repo/postgres"
	"github.com/hamed0406/pageloadtime/internal/repo/redisstore"
)

// Compile-time interface satisfaction checks.
// Using external test package avoids import cycle.
func TestInterfaceSatisfaction(t *testing.T) {
	var _ repo.PageStore = memory.New()
	var _ repo.PageStore = (*pg.Store)(nil)
	var _ repo.PageStore = (*dynamo.Store)(nil)
	var _ repo.PageStore = (*redisstore.Store)(nil)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (*domain.PageRecord, error) {
	return nil, errors.New("down")
}
func (failingStore) Put(context.Context, *domain.PageRecord) error { return errors.New("down") }

func TestWithMetrics_CountsOutcomes(t *testing.T) {
	ctx := context.Background()
	m := metrics.New()
	s := repo.WithMetrics(memory.New(), m)

	_, _ = s.Get(ctx, "missing")
	_ = s.Put(ctx, &domain.PageRecord{Page: "p", LoadingTime: "p: 0.1s"})
	if _, err := s.Get(ctx, "p"); err != nil {
		t.Fatalf("Get through wrapper: %v", err)
	}

	if got := testutil.ToFloat64(m.StoreOps.WithLabelValues("get", "not_found")); got != 1 {
		t.Fatalf("want 1 not_found, got %v", got)
	}
	if got := testutil.ToFloat64(m.StoreOps.WithLabelValues("get", "ok")); got != 1 {
		t.Fatalf("want 1 get ok, got %v", got)
	}
	if got := testutil.ToFloat64(m.StoreOps.WithLabelValues("put", "ok")); got != 1 {
		t.Fatalf("want 1 put ok, got %v", got)
	}

	f := repo.WithMetrics(failingStore{}, m)
	_ = f.Put(ctx, &domain.PageRecord{Page: "p"})
	if got := testutil.ToFloat64(m.StoreOps.WithLabelValues("put", "error")); got != 1 {
		t.Fatalf("want 1 put error, got %v", got)
	}
}

func TestWithMetrics_NilMetricsReturnsStore(t *testing.T) {
	s := memory.New()
	if repo.WithMetrics(s, nil) != repo.PageStore(s) {
		t.Fatalf("nil metrics should not wrap the store")
	}
}
