package services

import (
	"errors"
	"removal-pricing-service/internal/domain"
	"testing"
)

func TestAggregateMultiDropSingleLeg(t *testing.T) {
	route := domain.OptimizedRoute{
		TotalStops: 2,
		Legs:       []domain.RouteLeg{{DistanceKm: 10, DurationMinutes: 90, DifficultyScore: 9, CongestionZone: true}},
	}

	agg, err := AggregateMultiDrop(route, nil, testConfig())
	if err != nil {
		t.Fatalf("AggregateMultiDrop: %v", err)
	}

	if len(agg.PerLegCharges) != 1 {
		t.Fatalf("charges = %d, want 1", len(agg.PerLegCharges))
	}
	c := agg.PerLegCharges[0]
	if c.BaseFee != 7500 || c.DistanceFee != 1500 || c.Total != 9000 {
		t.Errorf("charge = %+v, want flat base 7500 + distance 1500", c)
	}
	if c.TimeFee != 0 || c.DifficultyFee != 0 || len(c.Surcharges) != 0 {
		t.Errorf("single leg should not accrue time/difficulty/surcharges: %+v", c)
	}
	if agg.TotalStopSurcharge != 0 || agg.RouteOptimizationDiscount != 0 {
		t.Errorf("stop surcharge/discount = %d/%d, want 0/0", agg.TotalStopSurcharge, agg.RouteOptimizationDiscount)
	}
}

func TestAggregateMultiDropLegCharges(t *testing.T) {
	easy := domain.Waypoint{Property: easyAccess(), ItemIDs: []string{"x"}}
	hard := domain.Waypoint{
		Property: domain.PropertyDetails{Floors: 5, HasLift: false, HasParking: false, RequiresPermit: true},
		ItemIDs:  []string{"y"},
	}
	empty := domain.Waypoint{Property: easyAccess()}

	route := domain.OptimizedRoute{
		TotalStops: 5,
		Legs: []domain.RouteLeg{
			{To: easy, DistanceKm: 4, DurationMinutes: 10, TrafficMultiplier: 1, DifficultyScore: 5},
			{To: empty, DistanceKm: 12, DurationMinutes: 20, TrafficMultiplier: 1, DifficultyScore: 5},
			{To: easy, DistanceKm: 2, DurationMinutes: 5, TrafficMultiplier: 1, DifficultyScore: 5},
			{To: hard, DistanceKm: 20, DurationMinutes: 50, TrafficMultiplier: 1.8, DifficultyScore: 8, CongestionZone: true, TollRoad: true},
		},
		Optimization: domain.RouteOptimization{EfficiencyScore: 85, DistanceSavedKm: 6, TimeSavedMinutes: 10},
	}
	items := enrich(t, domain.ItemRequest{ID: "armchair", Quantity: 1, VolumeM3: 7.25})

	agg, err := AggregateMultiDrop(route, items, testConfig())
	if err != nil {
		t.Fatalf("AggregateMultiDrop: %v", err)
	}

	if len(agg.PerLegCharges) != 4 {
		t.Fatalf("charges = %d, want 4", len(agg.PerLegCharges))
	}

	first := agg.PerLegCharges[0]
	if first.BaseFee != 1500 || first.DistanceFee != 600 || first.Total != 2100 {
		t.Errorf("first leg = %+v, want base 1500 + distance 600", first)
	}

	last := agg.PerLegCharges[3]
	checks := []struct {
		name      string
		got, want int64
	}{
		{"base", last.BaseFee, 1500},
		{"distance", last.DistanceFee, 3000},
		{"time", last.TimeFee, 1000},
		{"difficulty", last.DifficultyFee, 3000},
		{"property access", last.PropertyAccessFee, 3500},
		{"total", last.Total, 17300},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("last leg %s = %d, want %d", c.name, c.got, c.want)
		}
	}

	surcharges := map[string]int64{}
	for _, s := range last.Surcharges {
		surcharges[s.Type] = s.Amount
	}
	want := map[string]int64{"congestion_zone": 1500, "toll_road": 2000, "heavy_traffic": 1000, "multiple_stops": 800}
	for k, v := range want {
		if surcharges[k] != v {
			t.Errorf("surcharge %s = %d, want %d", k, surcharges[k], v)
		}
	}

	if agg.TotalStopSurcharge != 7500 {
		t.Errorf("stop surcharge = %d, want 7500", agg.TotalStopSurcharge)
	}
	if agg.RouteOptimizationDiscount != 2000 {
		t.Errorf("optimization discount = %d, want 2000", agg.RouteOptimizationDiscount)
	}

	u := agg.CapacityUtilization
	if u.MaximumLoad != 50 || u.AverageLoad != 35 {
		t.Errorf("load = %v/%v, want 50/35", u.MaximumLoad, u.AverageLoad)
	}
	if u.EmptyLegs != 1 {
		t.Errorf("empty legs = %d, want 1", u.EmptyLegs)
	}
}

func TestAggregateMultiDropRejectsUnsettleableDistance(t *testing.T) {
	route := domain.OptimizedRoute{
		TotalStops: 2,
		Legs:       []domain.RouteLeg{{DistanceKm: 1e300}},
	}

	_, err := AggregateMultiDrop(route, nil, testConfig())
	if !errors.Is(err, domain.ErrAmountOutOfRange) {
		t.Fatalf("err = %v, want ErrAmountOutOfRange", err)
	}
}
