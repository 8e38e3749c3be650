package ports

import (
	"context"
	"removal-pricing-service/internal/domain"
)

// Port: insert-only storage for issued quotes.
type QuoteRepository interface {
	// Store a snapshot; an existing ID yields domain.ErrSnapshotExists.
	SaveSnapshot(ctx context.Context, s *domain.QuoteSnapshot) error
	// Retrieve a snapshot; a missing ID yields domain.ErrSnapshotNotFound.
	GetSnapshot(ctx context.Context, id string) (*domain.QuoteSnapshot, error)
}
