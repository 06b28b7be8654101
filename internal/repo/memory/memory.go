package memory

import (
	"context"
	"sync"

	"github.com/hamed0406/pageloadtime/internal/domain"
	"github.com/hamed0406/pageloadtime/internal/repo"
)

var _ repo.PageStore = (*Store)(nil)

type Store struct {
	mu    sync.RWMutex
	pages map[string]domain.PageRecord
}

func New() *Store {
	return &Store{pages: make(map[string]domain.PageRecord)}
}

func (m *Store) Get(ctx context.Context, page string) (*domain.PageRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.pages[page]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &rec, nil
}

func (m *Store) Put(ctx context.Context, rec *domain.PageRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[rec.Page] = *rec
	return nil
}
