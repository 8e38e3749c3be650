package distance

import (
	"context"
	"removal-pricing-service/internal/domain"
	"removal-pricing-service/internal/ports"
)

// HaversineProvider computes great-circle distances locally. It never fails and
// makes no external calls, which keeps quotes deterministic.
type HaversineProvider struct{}

func NewHaversineProvider() *HaversineProvider {
	return &HaversineProvider{}
}

func (p *HaversineProvider) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (ports.DistanceResult, error) {
	return ports.DistanceResult{DistanceKm: origin.DistanceKm(destination)}, nil
}

// Return distances from origin to every destination, in input order.
func (p *HaversineProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) ([]ports.DistanceResult, error) {
	out := make([]ports.DistanceResult, len(destinations))
	for i, d := range destinations {
		out[i] = ports.DistanceResult{DistanceKm: origin.DistanceKm(d)}
	}
	return out, nil
}
