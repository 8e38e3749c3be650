package ports

import (
	"context"
	"removal-pricing-service/internal/domain"
)

// Straight-line distance between two coordinates.
type DistanceResult struct {
	DistanceKm float64
}

// Contract for retrieving distance between locations.
type DistanceProvider interface {
	// Return distance between two coordinates.
	GetDistance(ctx context.Context, origin, destination domain.Coordinates) (DistanceResult, error)
}
