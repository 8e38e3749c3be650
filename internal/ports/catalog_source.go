package ports

import (
	"context"
	"removal-pricing-service/internal/domain"
)

// Port: a boundary for reading the item catalog and pricing configuration.
type CatalogSource interface {
	// Load both resources, or fail with a *domain.DataSourceError.
	Load(ctx context.Context) (*domain.PricingData, error)
}
