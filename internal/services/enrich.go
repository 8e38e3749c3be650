package services

import (
	"fmt"
	"removal-pricing-service/internal/domain"
	"strings"

	"github.com/shopspring/decimal"
)

// EnrichItems merges request items with the catalog and derives per-item costs.
// Unknown items get the configured conservative defaults and a warning; enrichment never fails.
func EnrichItems(items []domain.ItemRequest, data *domain.PricingData) ([]domain.EnrichedItem, []string) {
	cfg := data.Config
	out := make([]domain.EnrichedItem, 0, len(items))
	var warnings []string

	for _, it := range items {
		cat, found := data.Catalog.Lookup(it.ID, it.Name)
		if !found {
			warnings = append(warnings, fmt.Sprintf("item not found in catalog: %s (%s)", it.ID, it.Name))
			out = append(out, defaultEnrichment(it, cfg))
			continue
		}
		out = append(out, enrichFromCatalog(it, cat, cfg))
	}

	return out, warnings
}

func defaultEnrichment(it domain.ItemRequest, cfg *domain.PricingConfig) domain.EnrichedItem {
	r := cfg.Enrichment
	cost := dec(r.DefaultItemCost)

	return domain.EnrichedItem{
		ItemRequest:  it,
		WeightKg:     firstPositive(it.WeightKg, r.DefaultWeightKg),
		VolumeM3:     firstPositive(it.VolumeM3, r.DefaultVolumeM3),
		VanFit:       true,
		BasePrice:    cost,
		ItemBaseCost: cost,
		LaborCost:    dec(r.DefaultLaborCost),
	}
}

func enrichFromCatalog(it domain.ItemRequest, cat domain.CatalogItem, cfg *domain.PricingConfig) domain.EnrichedItem {
	weight := firstPositive(it.WeightKg, cat.WeightKg, cfg.Enrichment.DefaultWeightKg)
	volume := firstPositive(it.VolumeM3, cat.VolumeM3, cfg.Enrichment.DefaultVolumeM3)

	weightCost := dec(weight).Mul(dec(cfg.Rates.PerKg))
	volumeCost := dec(volume).Mul(dec(cfg.Rates.PerM3))
	floor := dec(cfg.Rates.MinimumItemCost)

	itemBaseCost := decimal.Max(weightCost, volumeCost, floor).Mul(dec(categoryMultiplier(it, cat, weight, cfg)))

	basePrice := itemBaseCost
	if cat.ReferencePrice > 0 {
		basePrice = decInt(cat.ReferencePrice)
	}

	c := cat
	return domain.EnrichedItem{
		ItemRequest:  it,
		Catalog:      &c,
		WeightKg:     weight,
		VolumeM3:     volume,
		VanFit:       cat.FitsStandardVan(),
		BasePrice:    basePrice,
		ItemBaseCost: itemBaseCost,
		LaborCost:    laborCost(it, cat, cfg),
	}
}

// First matching keyword rule wins; otherwise heavy items get the heavy multiplier.
func categoryMultiplier(it domain.ItemRequest, cat domain.CatalogItem, weightKg float64, cfg *domain.PricingConfig) float64 {
	haystack := strings.ToLower(cat.Category + " " + cat.Name + " " + it.Category + " " + it.Name)

	for _, rule := range cfg.Enrichment.CategoryMultipliers {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(haystack, strings.ToLower(kw)) {
				return rule.Multiplier
			}
		}
	}

	if r := cfg.Enrichment; r.HeavyItemKg > 0 && weightKg > r.HeavyItemKg && r.HeavyItemMultiplier > 0 {
		return r.HeavyItemMultiplier
	}
	return 1
}

// (baseHandling + dismantle + reassemble) × quantity × workers × hourlyRate / 60
func laborCost(it domain.ItemRequest, cat domain.CatalogItem, cfg *domain.PricingConfig) decimal.Decimal {
	minutes := cfg.Labor.BaseHandlingMinutes
	if cat.DismantlingRequired || it.DisassemblyRequired {
		minutes += cat.DismantlingMinutes + cat.ReassemblyMinutes
	}

	workers := cat.WorkersRequired
	if workers < 1 {
		workers = 1
	}

	return dec(minutes).
		Mul(decInt(int64(it.Quantity))).
		Mul(decInt(int64(workers))).
		Mul(dec(cfg.Labor.HourlyRate)).
		Div(decSixty)
}

func firstPositive(vals ...float64) float64 {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
