package repositories

import (
	"context"
	"errors"
	"removal-pricing-service/internal/domain"
	"sync"
)

// MemoryQuoteRepository keeps snapshots in process memory. Used when no database is configured.
type MemoryQuoteRepository struct {
	mu    sync.RWMutex
	items map[string]domain.QuoteSnapshot
}

func NewMemoryQuoteRepository() *MemoryQuoteRepository {
	return &MemoryQuoteRepository{items: map[string]domain.QuoteSnapshot{}}
}

func (r *MemoryQuoteRepository) SaveSnapshot(ctx context.Context, s *domain.QuoteSnapshot) error {
	if s == nil || s.ID == "" {
		return errors.New("save snapshot: id must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[s.ID]; ok {
		return domain.ErrSnapshotExists
	}
	cp := *s
	cp.Input = append([]byte(nil), s.Input...)
	cp.Result = append([]byte(nil), s.Result...)
	r.items[s.ID] = cp
	return nil
}

func (r *MemoryQuoteRepository) GetSnapshot(ctx context.Context, id string) (*domain.QuoteSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[id]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return &s, nil
}
