package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"removal-pricing-service/internal/domain"
	"removal-pricing-service/internal/platform/obs"
	"removal-pricing-service/internal/ports"
	"sort"
	"time"
)

const (
	minTrafficMultiplier = 0.5
	maxTrafficMultiplier = 3.0
	baseDifficulty       = 5
	maxDifficulty        = 10
)

// RouteOptimizer orders drop-offs and annotates each leg.
//
// Ordering is greedy: drop-offs with a time window go first by earliest start,
// the rest go heaviest-destination-first when the load per destination is known,
// otherwise nearest-neighbor from the current position. It does not attempt
// global optimization; the design prioritizes determinism over optimality.
type RouteOptimizer struct {
	Provider ports.DistanceProvider
	Rules    domain.RoutingRules
}

func NewRouteOptimizer(provider ports.DistanceProvider, rules domain.RoutingRules) *RouteOptimizer {
	if rules.DirectRouteScore == 0 {
		rules.DirectRouteScore = 95
	}
	if rules.HeavyTrafficWarning == 0 {
		rules.HeavyTrafficWarning = 2
	}
	if rules.HighDifficulty == 0 {
		rules.HighDifficulty = 8
	}
	if rules.ManyLegs == 0 {
		rules.ManyLegs = 5
	}
	if rules.LongRouteKm == 0 {
		rules.LongRouteKm = 100
	}
	return &RouteOptimizer{Provider: provider, Rules: rules}
}

// Optimize produces the visiting order and leg metrics. Legs are timed from departAt,
// so the traffic bucket of each leg follows the clock as the route progresses.
func (o *RouteOptimizer) Optimize(
	ctx context.Context,
	pickup domain.Waypoint,
	dropoffs []domain.Waypoint,
	items []domain.EnrichedItem,
	departAt time.Time,
) (_ domain.OptimizedRoute, err error) {
	defer obs.Time(ctx, "pricing.route")(&err)

	if o.Provider == nil {
		return domain.OptimizedRoute{}, errors.New("optimize route: distance provider is nil")
	}
	if o.Rules.BaseSpeedKmh <= 0 {
		return domain.OptimizedRoute{}, errors.New("optimize route: base speed must be positive")
	}

	route := domain.OptimizedRoute{TotalStops: len(dropoffs) + 1, Legs: []domain.RouteLeg{}}

	if len(dropoffs) == 0 {
		route.Optimization = domain.RouteOptimization{Algorithm: domain.AlgorithmNone, EfficiencyScore: 100}
		return route, nil
	}

	order := []int{0}
	if len(dropoffs) > 1 {
		order, err = o.order(ctx, pickup, dropoffs, items)
		if err != nil {
			return domain.OptimizedRoute{}, err
		}
	}

	legs, err := o.buildLegs(ctx, pickup, dropoffs, order, departAt)
	if err != nil {
		return domain.OptimizedRoute{}, err
	}
	route.Legs = legs
	for _, l := range legs {
		route.TotalDistanceKm += l.DistanceKm
		route.TotalDurationMinutes += l.DurationMinutes
	}

	if len(dropoffs) == 1 {
		route.Optimization = domain.RouteOptimization{
			Algorithm:       domain.AlgorithmDirect,
			EfficiencyScore: o.Rules.DirectRouteScore,
		}
	} else {
		route.Optimization, err = o.optimization(ctx, pickup, dropoffs, route)
		if err != nil {
			return domain.OptimizedRoute{}, err
		}
	}

	route.Warnings, route.Recommendations = o.advise(route)
	return route, nil
}

func (o *RouteOptimizer) order(
	ctx context.Context,
	pickup domain.Waypoint,
	dropoffs []domain.Waypoint,
	items []domain.EnrichedItem,
) ([]int, error) {
	var windowed, open []int
	for i, d := range dropoffs {
		if d.TimeWindow != nil {
			windowed = append(windowed, i)
		} else {
			open = append(open, i)
		}
	}

	sort.SliceStable(windowed, func(a, b int) bool {
		return dropoffs[windowed[a]].TimeWindow.Earliest.Before(dropoffs[windowed[b]].TimeWindow.Earliest)
	})
	order := append(make([]int, 0, len(dropoffs)), windowed...)

	if len(open) == 0 {
		return order, nil
	}

	if weights, ok := destinationWeights(dropoffs, items); ok {
		sort.SliceStable(open, func(a, b int) bool {
			return weights[open[a]] > weights[open[b]]
		})
		return append(order, open...), nil
	}

	current := pickup.Coordinates
	if len(order) > 0 {
		current = dropoffs[order[len(order)-1]].Coordinates
	}

	remaining := open
	for len(remaining) > 0 {
		results, err := o.distancesFrom(ctx, current, dropoffs, remaining)
		if err != nil {
			return nil, err
		}

		best := -1
		minKm := math.MaxFloat64
		// Select next stop by minimum distance (greedy step).
		for pos := range remaining {
			// remaining is in input order, so the strict comparison breaks ties by input index.
			if km := results[pos].DistanceKm; km < minKm {
				minKm = km
				best = pos
			}
		}
		if best < 0 {
			return nil, errors.New("optimize route: failed to select next destination")
		}

		next := remaining[best]
		order = append(order, next)
		current = dropoffs[next].Coordinates
		remaining = append(remaining[:best:best], remaining[best+1:]...)
	}

	return order, nil
}

func (o *RouteOptimizer) distancesFrom(
	ctx context.Context,
	origin domain.Coordinates,
	dropoffs []domain.Waypoint,
	idxs []int,
) ([]ports.DistanceResult, error) {
	dests := make([]domain.Coordinates, len(idxs))
	for i, idx := range idxs {
		dests[i] = dropoffs[idx].Coordinates
	}

	// Prefer batched distance lookups when supported.
	if provider, ok := o.Provider.(ports.DistanceMatrixProvider); ok {
		results, err := provider.GetDistances(ctx, origin, dests)
		if err != nil {
			return nil, fmt.Errorf("optimize route: get distances matrix from %v: %w", origin, err)
		}
		if len(results) != len(dests) {
			return nil, fmt.Errorf("optimize route: matrix returned %d results for %d destinations", len(results), len(dests))
		}
		return results, nil
	}

	results := make([]ports.DistanceResult, len(dests))
	for i, d := range dests {
		r, err := o.Provider.GetDistance(ctx, origin, d)
		if err != nil {
			return nil, fmt.Errorf("optimize route: get distance from %v to %v: %w", origin, d, err)
		}
		results[i] = r
	}
	return results, nil
}

// destinationWeights reports total item weight per drop-off when any drop-off lists its items.
func destinationWeights(dropoffs []domain.Waypoint, items []domain.EnrichedItem) (map[int]float64, bool) {
	if len(items) == 0 {
		return nil, false
	}

	byID := make(map[string]float64, len(items))
	for _, it := range items {
		if it.ID != "" {
			byID[it.ID] += it.TotalWeightKg()
		}
	}

	weights := make(map[int]float64, len(dropoffs))
	known := false
	for i, d := range dropoffs {
		for _, id := range d.ItemIDs {
			if w, ok := byID[id]; ok {
				weights[i] += w
				known = true
			}
		}
	}
	return weights, known
}

func (o *RouteOptimizer) buildLegs(
	ctx context.Context,
	pickup domain.Waypoint,
	dropoffs []domain.Waypoint,
	order []int,
	departAt time.Time,
) ([]domain.RouteLeg, error) {
	legs := make([]domain.RouteLeg, 0, len(order))
	from := pickup
	clock := departAt

	for _, idx := range order {
		to := dropoffs[idx]

		r, err := o.Provider.GetDistance(ctx, from.Coordinates, to.Coordinates)
		if err != nil {
			return nil, fmt.Errorf("optimize route: get distance for leg to drop-off %d: %w", idx, err)
		}

		traffic := o.trafficMultiplier(clock.Hour())
		duration := int(math.Round(o.baseMinutes(r.DistanceKm) * traffic))

		legs = append(legs, domain.RouteLeg{
			From:              from,
			To:                to,
			DropoffIndex:      idx,
			DepartAt:          clock,
			DistanceKm:        r.DistanceKm,
			DurationMinutes:   duration,
			TrafficMultiplier: traffic,
			DifficultyScore:   difficultyScore(to.Property),
			CongestionZone:    o.Rules.CongestionZone.RadiusKm > 0 && o.Rules.CongestionZone.Contains(to.Coordinates),
			TollRoad:          o.tolled(from.Coordinates, to.Coordinates),
		})

		clock = clock.Add(time.Duration(duration) * time.Minute)
		from = to
	}

	return legs, nil
}

func (o *RouteOptimizer) baseMinutes(km float64) float64 {
	return km / o.Rules.BaseSpeedKmh * 60
}

// First configured band containing the hour wins; outside every band traffic is free-flowing.
func (o *RouteOptimizer) trafficMultiplier(hour int) float64 {
	m := 1.0
	for _, b := range o.Rules.TrafficBands {
		if hour >= b.FromHour && hour <= b.ToHour {
			m = b.Multiplier
			break
		}
	}
	return math.Min(maxTrafficMultiplier, math.Max(minTrafficMultiplier, m))
}

// A leg is tolled when its destination or midpoint falls inside a configured toll zone.
func (o *RouteOptimizer) tolled(from, to domain.Coordinates) bool {
	mid := from.Midpoint(to)
	for _, z := range o.Rules.TollZones {
		if z.Contains(to) || z.Contains(mid) {
			return true
		}
	}
	return false
}

func difficultyScore(p domain.PropertyDetails) int {
	score := baseDifficulty
	if p.Type == domain.PropertyApartment && p.Floors > 2 {
		score += 2
	}
	if p.Floors > 3 && !p.HasLift {
		score += 3
	}
	if !p.HasParking {
		score++
	}
	if score > maxDifficulty {
		score = maxDifficulty
	}
	return score
}

// Savings are measured against a star topology: pickup to every drop-off independently.
func (o *RouteOptimizer) optimization(
	ctx context.Context,
	pickup domain.Waypoint,
	dropoffs []domain.Waypoint,
	route domain.OptimizedRoute,
) (domain.RouteOptimization, error) {
	all := make([]int, len(dropoffs))
	for i := range all {
		all[i] = i
	}
	direct, err := o.distancesFrom(ctx, pickup.Coordinates, dropoffs, all)
	if err != nil {
		return domain.RouteOptimization{}, err
	}

	naiveKm, naiveMinutes := 0.0, 0.0
	for _, r := range direct {
		naiveKm += r.DistanceKm
		naiveMinutes += o.baseMinutes(r.DistanceKm)
	}

	avgKmPerStop := route.TotalDistanceKm / float64(len(dropoffs))
	avgTraffic := 0.0
	for _, l := range route.Legs {
		avgTraffic += l.TrafficMultiplier
	}
	avgTraffic /= float64(len(route.Legs))

	distanceScore := math.Max(0, 100-avgKmPerStop*5)
	trafficScore := math.Max(0, 100-(avgTraffic-1)*50)

	return domain.RouteOptimization{
		Algorithm:        domain.AlgorithmNearestWindow,
		DistanceSavedKm:  round1(math.Max(0, naiveKm-route.TotalDistanceKm)),
		TimeSavedMinutes: round1(math.Max(0, naiveMinutes-float64(route.TotalDurationMinutes))),
		EfficiencyScore:  int(math.Round((distanceScore + trafficScore) / 2)),
	}, nil
}

func (o *RouteOptimizer) advise(route domain.OptimizedRoute) (warnings, recommendations []string) {
	var heavyTraffic, difficult, congestion, noParking bool
	for _, l := range route.Legs {
		heavyTraffic = heavyTraffic || l.TrafficMultiplier > o.Rules.HeavyTrafficWarning
		difficult = difficult || l.DifficultyScore > o.Rules.HighDifficulty
		congestion = congestion || l.CongestionZone
		noParking = noParking || !l.To.Property.HasParking
	}

	if heavyTraffic {
		warnings = append(warnings, "Heavy traffic expected on some legs - consider alternative timing")
	}
	if difficult {
		warnings = append(warnings, "Difficult property access detected - extra time may be required")
	}
	if len(route.Legs) > o.Rules.ManyLegs {
		warnings = append(warnings, "Many stops detected - consider splitting into multiple trips")
	}

	if congestion {
		recommendations = append(recommendations, "Consider scheduling outside congestion zone charging hours")
	}
	if noParking {
		recommendations = append(recommendations, "Pre-arrange parking permits for locations without parking")
	}
	if route.TotalDistanceKm > o.Rules.LongRouteKm {
		recommendations = append(recommendations, "Long route detected - ensure adequate fuel/charging stops")
	}

	return warnings, recommendations
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
