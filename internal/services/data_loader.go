package services

import (
	"context"
	"errors"
	"fmt"
	"removal-pricing-service/internal/domain"
	"removal-pricing-service/internal/ports"
	"sync"
	"sync/atomic"
)

// DataLoader caches the catalog and pricing configuration for the process lifetime.
//
// The first successful load is published through an atomic pointer so steady-state
// reads take no lock. A failed load caches nothing; the next call tries again.
type DataLoader struct {
	source ports.CatalogSource

	mu   sync.Mutex
	data atomic.Pointer[domain.PricingData]

	// OnFailure is called after every failed load attempt. Optional.
	OnFailure func(err error)
}

func NewDataLoader(source ports.CatalogSource) *DataLoader {
	return &DataLoader{source: source}
}

// Get returns the cached data, loading it on first use.
func (l *DataLoader) Get(ctx context.Context) (*domain.PricingData, error) {
	if d := l.data.Load(); d != nil {
		return d, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Another caller may have finished loading while we waited.
	if d := l.data.Load(); d != nil {
		return d, nil
	}

	if l.source == nil {
		return nil, &domain.DataSourceError{Resource: "catalog", Err: errors.New("no catalog source configured")}
	}

	d, err := l.source.Load(ctx)
	if err != nil {
		if l.OnFailure != nil {
			l.OnFailure(err)
		}
		var dsErr *domain.DataSourceError
		if errors.As(err, &dsErr) {
			return nil, err
		}
		return nil, &domain.DataSourceError{Resource: "catalog", Err: fmt.Errorf("load: %w", err)}
	}
	if d == nil || d.Catalog == nil || d.Config == nil {
		return nil, &domain.DataSourceError{Resource: "catalog", Err: errors.New("source returned incomplete data")}
	}

	l.data.Store(d)
	return d, nil
}
