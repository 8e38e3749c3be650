package services

import (
	"fmt"
	"removal-pricing-service/internal/domain"
	"strings"
)

// CheckCapacity compares the load with the standard vehicle. It never blocks a quote:
// an invalid result only contributes warnings and recommendations.
func CheckCapacity(items []domain.EnrichedItem, cfg *domain.PricingConfig) domain.CapacityCheck {
	van := cfg.StandardVan
	var res domain.CapacityCheck

	for _, it := range items {
		res.TotalWeightKg += it.TotalWeightKg()
		res.TotalVolumeM3 += it.TotalVolumeM3()
		res.TotalItems += it.Quantity

		if !it.VanFit {
			res.OversizedItems = append(res.OversizedItems, fmt.Sprintf("%s (%dx)", it.Name, it.Quantity))
		}
		if cfg.Capacity.HeavyItemKg > 0 && it.WeightKg > cfg.Capacity.HeavyItemKg {
			res.HeavyItems = append(res.HeavyItems, fmt.Sprintf("%s (%.0fkg x %d)", it.Name, it.WeightKg, it.Quantity))
		}
	}

	res.WeightUtilization = res.TotalWeightKg / van.MaxWeightKg * 100
	res.VolumeUtilization = res.TotalVolumeM3 / van.MaxVolumeM3 * 100
	res.ItemUtilization = float64(res.TotalItems) / float64(van.MaxItems) * 100

	if res.TotalWeightKg > van.MaxWeightKg {
		res.WeightExceeded = true
		res.Warnings = append(res.Warnings, fmt.Sprintf("Total weight (%.1fkg) exceeds van capacity (%.0fkg)", res.TotalWeightKg, van.MaxWeightKg))
		res.Recommendations = append(res.Recommendations, "Consider splitting into multiple jobs or removing heavy items")
	}
	if res.TotalVolumeM3 > van.MaxVolumeM3 {
		res.VolumeExceeded = true
		res.Warnings = append(res.Warnings, fmt.Sprintf("Total volume (%.1fm³) exceeds van capacity (%.1fm³)", res.TotalVolumeM3, van.MaxVolumeM3))
		res.Recommendations = append(res.Recommendations, "Consider dismantling items or using additional van capacity")
	}
	if res.TotalItems > van.MaxItems {
		res.ItemCountExceeded = true
		res.Warnings = append(res.Warnings, fmt.Sprintf("Total items (%d) exceeds practical limit (%d)", res.TotalItems, van.MaxItems))
		res.Recommendations = append(res.Recommendations, "Consider consolidating similar items or splitting the job")
	}
	if len(res.OversizedItems) > 0 {
		res.Warnings = append(res.Warnings, "Oversized items detected: "+strings.Join(res.OversizedItems, ", "))
		res.Recommendations = append(res.Recommendations, "Oversized items may require special transport arrangements")
	}
	if len(res.HeavyItems) > 0 {
		res.Warnings = append(res.Warnings, "Heavy items requiring special handling: "+strings.Join(res.HeavyItems, ", "))
		res.Recommendations = append(res.Recommendations, "Heavy items may require additional workers or equipment")
	}

	near := cfg.Capacity.NearCapacityPercent
	if near > 0 {
		if res.WeightUtilization >= near {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Very high weight utilization (%.1f%%) - risk of overload", res.WeightUtilization))
		}
		if res.VolumeUtilization >= near {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Very high volume utilization (%.1f%%) - may be difficult to load", res.VolumeUtilization))
		}
	}

	res.IsValid = !res.WeightExceeded && !res.VolumeExceeded && !res.ItemCountExceeded
	return res
}
