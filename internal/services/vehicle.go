package services

import (
	"math"
	"removal-pricing-service/internal/domain"
)

// RecommendVehicle maps the capacity outcome onto a vehicle class.
// Utilization is always reported against the standard vehicle.
func RecommendVehicle(check domain.CapacityCheck, cfg *domain.PricingConfig) domain.VehicleRecommendation {
	van := cfg.StandardVan
	rec := domain.VehicleRecommendation{
		Type:              van.Type,
		Name:              van.Name,
		CapacityM3:        van.MaxVolumeM3,
		TotalWeightKg:     check.TotalWeightKg,
		TotalVolumeM3:     check.TotalVolumeM3,
		TotalItems:        check.TotalItems,
		WeightUtilization: int(math.Round(check.WeightUtilization)),
		VolumeUtilization: int(math.Round(check.VolumeUtilization)),
		ItemUtilization:   int(math.Round(check.ItemUtilization)),
	}

	if check.WeightExceeded {
		up := cfg.UpgradeVan
		rec.Type = up.Type
		rec.Name = up.Name
		rec.CapacityM3 = up.MaxVolumeM3
		rec.CapacityIssue = true
		rec.RecommendedUpgrades = append(rec.RecommendedUpgrades, domain.UpgradeLargerVehicle)
	}
	if check.VolumeExceeded {
		rec.CapacityIssue = true
		rec.RecommendedUpgrades = append(rec.RecommendedUpgrades, domain.UpgradeAdditionalVehicle)
	}
	if check.ItemCountExceeded {
		rec.CapacityIssue = true
		rec.RecommendedUpgrades = append(rec.RecommendedUpgrades, domain.UpgradeSplitJob)
	}
	if len(check.OversizedItems) > 0 {
		rec.CapacityIssue = true
		rec.RecommendedUpgrades = append(rec.RecommendedUpgrades, domain.UpgradeSpecialTransport)
	}

	return rec
}
