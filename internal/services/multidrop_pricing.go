package services

import (
	"math"
	"removal-pricing-service/internal/domain"
)

const (
	legSurchargeCongestion   = "congestion_zone"
	legSurchargeToll         = "toll_road"
	legSurchargeHeavyTraffic = "heavy_traffic"
	legSurchargeManyStops    = "multiple_stops"

	manyStopsFromLeg = 2
	highFloor        = 3
)

// AggregateMultiDrop turns an optimized route into per-leg charges and load statistics.
// A single-leg route gets a flat base and distance charge only.
func AggregateMultiDrop(route domain.OptimizedRoute, items []domain.EnrichedItem, cfg *domain.PricingConfig) (domain.MultiDropAggregate, error) {
	var l ledger
	rates := cfg.MultiDrop
	agg := domain.MultiDropAggregate{
		PerLegCharges:       []domain.LegCharge{},
		CapacityUtilization: capacityUtilization(route, items, cfg),
	}

	switch len(route.Legs) {
	case 0:
		return agg, nil
	case 1:
		leg := route.Legs[0]
		c := domain.LegCharge{
			LegIndex:    0,
			BaseFee:     rates.LegBaseFee,
			DistanceFee: l.pence(dec(leg.DistanceKm).Mul(dec(rates.PerKm))),
		}
		c.Total = c.BaseFee + c.DistanceFee
		agg.PerLegCharges = append(agg.PerLegCharges, c)
		return agg, l.err
	}

	for i, leg := range route.Legs {
		agg.PerLegCharges = append(agg.PerLegCharges, legCharge(&l, i, leg, route.TotalStops, rates))
	}
	if l.err != nil {
		return domain.MultiDropAggregate{}, l.err
	}

	if extra := route.TotalStops - 2; extra > 0 {
		agg.TotalStopSurcharge = rates.StopSurcharge * int64(extra)
	}
	agg.RouteOptimizationDiscount = optimizationDiscount(route.Optimization, rates)

	return agg, nil
}

func legCharge(l *ledger, idx int, leg domain.RouteLeg, totalStops int, rates domain.MultiDropRates) domain.LegCharge {
	c := domain.LegCharge{
		LegIndex:    idx,
		BaseFee:     l.pence(decInt(rates.LegBaseFee).Div(decInt(int64(totalStops)))),
		DistanceFee: l.pence(dec(leg.DistanceKm).Mul(dec(rates.PerKm))),
		Surcharges:  []domain.LegSurcharge{},
	}

	if over := leg.DurationMinutes - rates.FreeMinutes; over > 0 {
		c.TimeFee = l.pence(decInt(int64(over)).Mul(dec(rates.PerMinute)))
	}
	if d := leg.DifficultyScore - baseDifficulty; d > 0 {
		c.DifficultyFee = int64(d) * rates.PerDifficultyPoint
	}

	p := leg.To.Property
	if p.Floors > highFloor && !p.HasLift {
		c.PropertyAccessFee += rates.HighFloorNoLift
	}
	if !p.HasParking {
		c.PropertyAccessFee += rates.NoParking
	}
	if p.RequiresPermit {
		c.PropertyAccessFee += rates.Permit
	}

	if leg.CongestionZone {
		c.Surcharges = append(c.Surcharges, domain.LegSurcharge{Type: legSurchargeCongestion, Amount: rates.CongestionZone})
	}
	if leg.TollRoad {
		c.Surcharges = append(c.Surcharges, domain.LegSurcharge{Type: legSurchargeToll, Amount: rates.TollRoad})
	}
	if leg.TrafficMultiplier > rates.HeavyTrafficThreshold {
		c.Surcharges = append(c.Surcharges, domain.LegSurcharge{Type: legSurchargeHeavyTraffic, Amount: rates.HeavyTraffic})
	}
	if idx > manyStopsFromLeg {
		c.Surcharges = append(c.Surcharges, domain.LegSurcharge{
			Type:   legSurchargeManyStops,
			Amount: rates.MultipleStops * int64(idx-manyStopsFromLeg),
		})
	}

	c.Total = c.BaseFee + c.DistanceFee + c.TimeFee + c.DifficultyFee + c.PropertyAccessFee
	for _, s := range c.Surcharges {
		c.Total += s.Amount
	}
	return c
}

func optimizationDiscount(opt domain.RouteOptimization, rates domain.MultiDropRates) int64 {
	var d int64
	switch {
	case opt.EfficiencyScore > rates.HighEfficiencyScore:
		d += rates.HighEfficiencyBonus
	case opt.EfficiencyScore > rates.MediumEfficiencyScore:
		d += rates.MediumEfficiencyBonus
	}
	if opt.DistanceSavedKm > rates.DistanceSavedKm {
		d += rates.DistanceSavedBonus
	}
	if opt.TimeSavedMinutes > rates.TimeSavedMinutes {
		d += rates.TimeSavedBonus
	}
	return d
}

func capacityUtilization(route domain.OptimizedRoute, items []domain.EnrichedItem, cfg *domain.PricingConfig) domain.CapacityUtilization {
	volume := 0.0
	for _, it := range items {
		volume += it.TotalVolumeM3()
	}

	maxLoad := math.Min(100, volume/cfg.StandardVan.MaxVolumeM3*100)
	u := domain.CapacityUtilization{
		MaximumLoad: round1(maxLoad),
		AverageLoad: round1(maxLoad * cfg.MultiDrop.AverageLoadFactor),
	}

	for _, l := range route.Legs {
		if l.DistanceKm > cfg.MultiDrop.EmptyLegKm && len(l.To.ItemIDs) == 0 {
			u.EmptyLegs++
		}
	}
	return u
}
