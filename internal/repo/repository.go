package repo

import (
	"context"
	"errors"

	"github.com/hamed0406/pageloadtime/internal/domain"
)

// ErrNotFound is returned by Get when no record exists for the page.
var ErrNotFound = errors.New("page not found")

// PageStore is the port every backend adapter implements.
type PageStore interface {
	// Get is a point lookup by exact page key.
	Get(ctx context.Context, page string) (*domain.PageRecord, error)
	// Put overwrites unconditionally; last writer wins.
	Put(ctx context.Context, rec *domain.PageRecord) error
}
