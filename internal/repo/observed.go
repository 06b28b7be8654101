package repo

import (
	"context"
	"errors"

	"github.com/hamed0406/pageloadtime/internal/domain"
	"github.com/hamed0406/pageloadtime/internal/metrics"
)

type observed struct {
	inner PageStore
	m     *metrics.Metrics
}

// WithMetrics counts every Get/Put by outcome.
func WithMetrics(s PageStore, m *metrics.Metrics) PageStore {
	if m == nil {
		return s
	}
	return &observed{inner: s, m: m}
}

func (o *observed) Get(ctx context.Context, page string) (*domain.PageRecord, error) {
	rec, err := o.inner.Get(ctx, page)
	o.m.ObserveStore("get", result(err))
	return rec, err
}

func (o *observed) Put(ctx context.Context, rec *domain.PageRecord) error {
	err := o.inner.Put(ctx, rec)
	o.m.ObserveStore("put", result(err))
	return err
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
