package services

import (
	"context"
	"errors"
	"fmt"
	"removal-pricing-service/internal/domain"
	"removal-pricing-service/internal/platform/obs"
	"removal-pricing-service/internal/ports"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	EngineVersion = "2.0.0"
	currencyGBP   = "GBP"

	economyCapacityWarning = "Booking exceeds van-fit capacity for economy multi-drop pricing"
)

// Engine is the top-level quote calculator. It holds no per-request state and is
// safe for concurrent use once constructed.
type Engine struct {
	Loader   *DataLoader
	Provider ports.DistanceProvider
	// Slots decides economy eligibility. Nil means economy is never offered.
	Slots ports.SlotFinder
	Now   func() time.Time
	NewID func() string
}

func NewEngine(loader *DataLoader, provider ports.DistanceProvider, slots ports.SlotFinder) *Engine {
	return &Engine{
		Loader:   loader,
		Provider: provider,
		Slots:    slots,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
}

// notes collects non-fatal findings in the order they are produced.
type notes struct {
	warnings        []string
	recommendations []string
}

func (n *notes) warn(msgs ...string)      { n.warnings = append(n.warnings, msgs...) }
func (n *notes) recommend(msgs ...string) { n.recommendations = append(n.recommendations, msgs...) }

// Price validates the input and computes the full quote.
// Only validation, data source, distance and out-of-range amount failures are returned as errors.
func (e *Engine) Price(ctx context.Context, in domain.PricingInput) (_ *domain.PricingResult, err error) {
	defer obs.Time(ctx, "pricing.price")(&err)

	if err := in.Validate(); err != nil {
		return nil, err
	}
	if e.Loader == nil {
		return nil, errors.New("price: loader is nil")
	}

	data, err := e.Loader.Get(ctx)
	if err != nil {
		return nil, err
	}
	cfg := data.Config

	var n notes

	items, enrichWarnings := EnrichItems(in.Items, data)
	n.warn(enrichWarnings...)

	capacity := CheckCapacity(items, cfg)
	n.warn(capacity.Warnings...)
	n.recommend(capacity.Recommendations...)

	route, err := NewRouteOptimizer(e.Provider, cfg.Routing).Optimize(ctx, in.Pickup, in.Dropoffs, items, e.departure(in))
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	n.warn(route.Warnings...)
	n.recommend(route.Recommendations...)

	vehicle := RecommendVehicle(capacity, cfg)

	var l ledger
	b := domain.Breakdown{
		BaseFee:     baseFee(&l, len(in.Dropoffs), cfg),
		ItemsFee:    itemsFee(&l, items),
		LaborFee:    laborFee(&l, items),
		DistanceFee: distanceFee(&l, route.TotalDistanceKm, len(in.Dropoffs), cfg),
		ServiceFee:  serviceFee(&l, in.ServiceLevel, cfg),
		VehicleFee:  vehicleFee(vehicle, cfg),
		AddOnsFee:   addOnsFee(&l, in.AddOns, capacity.TotalVolumeM3, cfg),
	}

	surcharges := buildSurcharges(&l, in, cfg)
	for _, s := range surcharges {
		if s.Category == domain.SurchargePropertyAccess {
			b.PropertyAccessFee += s.Amount
			continue
		}
		b.Surcharges += s.Amount
	}

	discounts := buildDiscounts(&l, in, items, capacity.TotalVolumeM3, cfg, &n)
	for _, d := range discounts {
		b.Discounts += d.Amount
	}
	// Discounts never take the subtotal below zero.
	if sum := b.Sum(); sum < 0 {
		b.Discounts -= sum
	}

	tier := e.tier(ctx, in, capacity, cfg, &n)
	preTier := b.Sum()
	switch tier {
	case domain.TierEconomy:
		b.TierAdjustment = l.pence(decInt(preTier).Mul(dec(cfg.Tiers.EconomyMultiplier))) - preTier
	case domain.TierPriority:
		b.TierAdjustment = l.pence(decInt(preTier).Mul(dec(cfg.Tiers.PriorityMultiplier))) - preTier
	}

	subtotal := b.Sum()
	vat := l.pence(decInt(subtotal).Mul(dec(cfg.VatRate)))
	amount := l.sum(subtotal, vat)
	if l.err != nil {
		return nil, fmt.Errorf("price: %w", l.err)
	}

	multiDrop, err := AggregateMultiDrop(route, items, cfg)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}

	n.recommend(engineRecommendations(in, capacity, cfg)...)

	return &domain.PricingResult{
		AmountGbpMinor:     amount,
		SubtotalBeforeVat:  subtotal,
		VatAmount:          vat,
		VatRate:            cfg.VatRate,
		Tier:               tier,
		Breakdown:          b,
		Surcharges:         surcharges,
		Discounts:          discounts,
		Route:              route,
		RecommendedVehicle: vehicle,
		MultiDrop:          multiDrop,
		Metadata: domain.Metadata{
			RequestID:         e.newID(),
			CalculatedAt:      e.now().UTC(),
			Version:           EngineVersion,
			Currency:          currencyGBP,
			DataSourceVersion: data.Version(),
			Warnings:          n.warnings,
			Recommendations:   n.recommendations,
		},
	}, nil
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Engine) newID() string {
	if e.NewID == nil {
		return uuid.NewString()
	}
	return e.NewID()
}

// The scheduled date drives traffic buckets when present; otherwise the job leaves now.
func (e *Engine) departure(in domain.PricingInput) time.Time {
	if in.ScheduledDate != nil {
		return *in.ScheduledDate
	}
	return e.now()
}

// tier applies the three-tier policy. Economy needs the standard level, a load that fits
// the standard van, and a shared-van slot on the scheduled date.
func (e *Engine) tier(ctx context.Context, in domain.PricingInput, capacity domain.CapacityCheck, cfg *domain.PricingConfig, n *notes) domain.PricingTier {
	switch in.ServiceLevel {
	case domain.ServiceSignature, domain.ServiceWhiteGlove:
		return domain.TierPriority
	case domain.ServiceStandard:
	default:
		return domain.TierStandard
	}

	if !capacity.IsValid {
		n.warn(economyCapacityWarning)
		return domain.TierStandard
	}
	if e.Slots == nil || in.ScheduledDate == nil {
		return domain.TierStandard
	}

	ok, err := e.Slots.HasEconomySlot(ctx, *in.ScheduledDate)
	if err != nil {
		obs.Logf(ctx, "pricing.economy_slot", "err=%v", err)
		return domain.TierStandard
	}
	if !ok {
		n.recommend(fmt.Sprintf("No economy multi-drop slot within %d days of the requested date; standard pricing applied", cfg.Tiers.EconomyHorizonDays))
		return domain.TierStandard
	}
	return domain.TierEconomy
}

// base × (1 − perStopDiscount × min(N−1, maxStops))
func baseFee(l *ledger, dropoffs int, cfg *domain.PricingConfig) int64 {
	stops := min(max(dropoffs-1, 0), cfg.Rates.MultiDropBaseMaxStops)
	factor := decOne.Sub(dec(cfg.Rates.MultiDropBaseDiscount).Mul(decInt(int64(stops))))
	return l.pence(dec(cfg.Rates.BaseFee).Mul(factor))
}

// Each line is rounded on its own, then the rounded lines are totalled.
func itemsFee(l *ledger, items []domain.EnrichedItem) int64 {
	total := decZero
	for _, it := range items {
		total = total.Add(it.ItemBaseCost.Mul(decInt(int64(it.Quantity))).Round(0))
	}
	return l.pence(total)
}

func laborFee(l *ledger, items []domain.EnrichedItem) int64 {
	total := decZero
	for _, it := range items {
		total = total.Add(it.LaborCost.Mul(decInt(int64(it.Quantity))).Round(0))
	}
	return l.pence(total)
}

func distanceFee(l *ledger, km float64, dropoffs int, cfg *domain.PricingConfig) int64 {
	stops := min(max(dropoffs-1, 0), cfg.Rates.MultiDropDistanceMaxStops)
	factor := decOne.Sub(dec(cfg.Rates.MultiDropDistanceDiscount).Mul(decInt(int64(stops))))
	return l.pence(dec(km).Mul(dec(cfg.Rates.PerKm)).Mul(factor))
}

func serviceFee(l *ledger, level domain.ServiceLevel, cfg *domain.PricingConfig) int64 {
	delta := dec(cfg.ServiceMultiplier(level)).Sub(decOne)
	if delta.IsNegative() {
		return 0
	}
	return l.pence(dec(cfg.Rates.BaseFee).Mul(delta))
}

func vehicleFee(v domain.VehicleRecommendation, cfg *domain.PricingConfig) int64 {
	switch {
	case v.Type == cfg.UpgradeVan.Type:
		return cfg.VehicleFees.Upgrade
	case v.CapacityIssue:
		return cfg.VehicleFees.CapacityIssue
	}
	return 0
}

// Packing is charged on the declared packing volume, or on the whole load when none is given.
func addOnsFee(l *ledger, a domain.AddOns, loadVolumeM3 float64, cfg *domain.PricingConfig) int64 {
	var total int64
	if a.Packing {
		vol := firstPositive(a.PackingVolume, loadVolumeM3)
		total += l.pence(dec(vol).Mul(dec(cfg.AddOns.PackingPerM3)))
	}
	total += int64(len(a.Disassembly)) * cfg.AddOns.DisassemblyPerItem
	total += int64(len(a.Reassembly)) * cfg.AddOns.ReassemblyPerItem
	if a.Insurance != "" {
		total += cfg.AddOns.Insurance[a.Insurance]
	}
	return total
}

func buildSurcharges(l *ledger, in domain.PricingInput, cfg *domain.PricingConfig) []domain.Surcharge {
	rates := cfg.Surcharges
	out := []domain.Surcharge{}
	add := func(category string, amount int64, reason string) {
		if amount > 0 {
			out = append(out, domain.Surcharge{Category: category, Amount: amount, Reason: reason})
		}
	}

	if extra := len(in.Dropoffs) - 1; extra > 0 {
		add(domain.SurchargeExtraStops, rates.ExtraStop*int64(extra), fmt.Sprintf("%d additional stop(s)", extra))
	}

	var fragile, oversize int
	for _, it := range in.Items {
		if it.Fragile {
			fragile++
		}
		if it.Oversize {
			oversize++
		}
	}
	add(domain.SurchargeFragile, rates.FragileItem*int64(fragile), fmt.Sprintf("%d fragile item(s)", fragile))
	add(domain.SurchargeOversize, rates.OversizeItem*int64(oversize), fmt.Sprintf("%d oversize item(s)", oversize))

	floors := 0
	for _, w := range append([]domain.Waypoint{in.Pickup}, in.Dropoffs...) {
		if !w.Property.HasLift && w.Property.Floors > 0 {
			floors += w.Property.Floors
		}
	}
	add(domain.SurchargePropertyAccess, l.pence(dec(rates.PerFloorWithoutLift).Mul(decInt(int64(floors)))), fmt.Sprintf("%d floors without lift access", floors))

	for _, d := range in.Dropoffs {
		if d.TimeWindow != nil {
			add(domain.SurchargeTimeWindow, rates.TimeWindow, "specific delivery time window requested")
			break
		}
	}

	return out
}

// buildDiscounts applies the single best volume tier, loyalty and promo, each as a
// percentage of item value. Amounts are non-positive.
func buildDiscounts(l *ledger, in domain.PricingInput, items []domain.EnrichedItem, volumeM3 float64, cfg *domain.PricingConfig, n *notes) []domain.Discount {
	itemValue := decZero
	for _, it := range items {
		itemValue = itemValue.Add(it.BasePrice.Mul(decInt(int64(it.Quantity))))
	}

	out := []domain.Discount{}
	add := func(kind string, rate float64, description string) {
		if amount := l.pence(itemValue.Mul(dec(rate))); amount > 0 {
			out = append(out, domain.Discount{Type: kind, Amount: -amount, Description: description})
		}
	}

	tiers := append([]domain.VolumeTier(nil), cfg.Discounts.VolumeTiers...)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinVolumeM3 > tiers[j].MinVolumeM3 })
	for _, t := range tiers {
		if volumeM3 >= t.MinVolumeM3 {
			add(domain.DiscountVolume, t.Rate, t.Description)
			break
		}
	}

	if in.UserContext.IsReturningCustomer && cfg.Discounts.LoyaltyRate > 0 {
		add(domain.DiscountLoyalty, cfg.Discounts.LoyaltyRate, "Returning customer discount")
	}

	if code := strings.ToUpper(strings.TrimSpace(in.PromoCode)); code != "" {
		if rate, ok := cfg.Discounts.PromoCodes[code]; ok {
			add(domain.DiscountPromo, rate, "Promo code "+code)
		} else {
			n.warn("promo code not recognised: " + code)
		}
	}

	return out
}

func engineRecommendations(in domain.PricingInput, capacity domain.CapacityCheck, cfg *domain.PricingConfig) []string {
	var recs []string
	if capacity.TotalVolumeM3 > cfg.StandardVan.MaxVolumeM3*0.9 {
		recs = append(recs, "Consider splitting items across multiple trips for better efficiency")
	}

	premium := in.ServiceLevel == domain.ServicePremium || in.ServiceLevel == domain.ServiceSignature || in.ServiceLevel == domain.ServiceWhiteGlove
	for _, it := range in.Items {
		if it.Fragile && !premium {
			recs = append(recs, "Consider premium service for fragile items")
			break
		}
	}

	if len(in.Dropoffs) > 2 {
		recs = append(recs, "Route optimization applied for multiple stops")
	}
	return recs
}
