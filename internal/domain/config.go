package domain

import (
	"errors"
	"fmt"
)

// Capacity limits and presentation data for one vehicle class.
type VehicleClass struct {
	Type        string  `yaml:"type"`
	Name        string  `yaml:"name"`
	MaxWeightKg float64 `yaml:"maxWeightKg"`
	MaxVolumeM3 float64 `yaml:"maxVolumeM3"`
	MaxItems    int     `yaml:"maxItems"`
}

type CapacityRules struct {
	HeavyItemKg         float64 `yaml:"heavyItemKg"`
	NearCapacityPercent float64 `yaml:"nearCapacityPercent"`
}

// Rates are pence per unit and may be fractional.
type Rates struct {
	BaseFee                   float64 `yaml:"baseFee"`
	PerKm                     float64 `yaml:"perKm"`
	PerKg                     float64 `yaml:"perKg"`
	PerM3                     float64 `yaml:"perM3"`
	MinimumItemCost           float64 `yaml:"minimumItemCost"`
	MultiDropBaseDiscount     float64 `yaml:"multiDropBaseDiscount"`
	MultiDropBaseMaxStops     int     `yaml:"multiDropBaseMaxStops"`
	MultiDropDistanceDiscount float64 `yaml:"multiDropDistanceDiscount"`
	MultiDropDistanceMaxStops int     `yaml:"multiDropDistanceMaxStops"`
}

type CategoryMultiplier struct {
	Multiplier float64  `yaml:"multiplier"`
	Keywords   []string `yaml:"keywords"`
}

type EnrichmentRules struct {
	DefaultWeightKg     float64              `yaml:"defaultWeightKg"`
	DefaultVolumeM3     float64              `yaml:"defaultVolumeM3"`
	DefaultItemCost     float64              `yaml:"defaultItemCost"`
	DefaultLaborCost    float64              `yaml:"defaultLaborCost"`
	HeavyItemKg         float64              `yaml:"heavyItemKg"`
	HeavyItemMultiplier float64              `yaml:"heavyItemMultiplier"`
	CategoryMultipliers []CategoryMultiplier `yaml:"categoryMultipliers"`
}

type LaborRules struct {
	HourlyRate          float64 `yaml:"hourlyRate"`
	BaseHandlingMinutes float64 `yaml:"baseHandlingMinutes"`
}

type VehicleFees struct {
	Upgrade       int64 `yaml:"upgrade"`
	CapacityIssue int64 `yaml:"capacityIssue"`
}

type AddOnRates struct {
	PackingPerM3       float64                  `yaml:"packingPerM3"`
	DisassemblyPerItem int64                    `yaml:"disassemblyPerItem"`
	ReassemblyPerItem  int64                    `yaml:"reassemblyPerItem"`
	Insurance          map[InsuranceLevel]int64 `yaml:"insurance"`
}

type SurchargeRates struct {
	ExtraStop           int64   `yaml:"extraStop"`
	FragileItem         int64   `yaml:"fragileItem"`
	OversizeItem        int64   `yaml:"oversizeItem"`
	PerFloorWithoutLift float64 `yaml:"perFloorWithoutLift"`
	TimeWindow          int64   `yaml:"timeWindow"`
}

type VolumeTier struct {
	MinVolumeM3 float64 `yaml:"minVolumeM3"`
	Rate        float64 `yaml:"rate"`
	Description string  `yaml:"description"`
}

type DiscountRules struct {
	VolumeTiers []VolumeTier       `yaml:"volumeTiers"`
	LoyaltyRate float64            `yaml:"loyaltyRate"`
	PromoCodes  map[string]float64 `yaml:"promoCodes"`
}

type TierRules struct {
	EconomyMultiplier  float64 `yaml:"economyMultiplier"`
	PriorityMultiplier float64 `yaml:"priorityMultiplier"`
	EconomyHorizonDays int     `yaml:"economyHorizonDays"`
}

// Hours are inclusive, local to the departure time.
type TrafficBand struct {
	FromHour   int     `yaml:"fromHour"`
	ToHour     int     `yaml:"toHour"`
	Multiplier float64 `yaml:"multiplier"`
}

type Zone struct {
	Name     string  `yaml:"name"`
	Lat      float64 `yaml:"lat"`
	Lng      float64 `yaml:"lng"`
	RadiusKm float64 `yaml:"radiusKm"`
}

func (z Zone) Contains(c Coordinates) bool {
	return Coordinates{Lat: z.Lat, Lng: z.Lng}.DistanceKm(c) <= z.RadiusKm
}

type RoutingRules struct {
	BaseSpeedKmh        float64       `yaml:"baseSpeedKmh"`
	TrafficBands        []TrafficBand `yaml:"trafficBands"`
	CongestionZone      Zone          `yaml:"congestionZone"`
	TollZones           []Zone        `yaml:"tollZones"`
	DirectRouteScore    int           `yaml:"directRouteScore"`
	HeavyTrafficWarning float64       `yaml:"heavyTrafficWarning"`
	HighDifficulty      int           `yaml:"highDifficulty"`
	ManyLegs            int           `yaml:"manyLegs"`
	LongRouteKm         float64       `yaml:"longRouteKm"`
}

// Per-leg charge table, in pence.
type MultiDropRates struct {
	LegBaseFee            int64   `yaml:"legBaseFee"`
	PerKm                 float64 `yaml:"perKm"`
	FreeMinutes           int     `yaml:"freeMinutes"`
	PerMinute             float64 `yaml:"perMinute"`
	PerDifficultyPoint    int64   `yaml:"perDifficultyPoint"`
	HighFloorNoLift       int64   `yaml:"highFloorNoLift"`
	NoParking             int64   `yaml:"noParking"`
	Permit                int64   `yaml:"permit"`
	CongestionZone        int64   `yaml:"congestionZone"`
	TollRoad              int64   `yaml:"tollRoad"`
	HeavyTraffic          int64   `yaml:"heavyTraffic"`
	HeavyTrafficThreshold float64 `yaml:"heavyTrafficThreshold"`
	MultipleStops         int64   `yaml:"multipleStops"`
	StopSurcharge         int64   `yaml:"stopSurcharge"`
	EmptyLegKm            float64 `yaml:"emptyLegKm"`
	AverageLoadFactor     float64 `yaml:"averageLoadFactor"`
	HighEfficiencyScore   int     `yaml:"highEfficiencyScore"`
	HighEfficiencyBonus   int64   `yaml:"highEfficiencyBonus"`
	MediumEfficiencyScore int     `yaml:"mediumEfficiencyScore"`
	MediumEfficiencyBonus int64   `yaml:"mediumEfficiencyBonus"`
	DistanceSavedKm       float64 `yaml:"distanceSavedKm"`
	DistanceSavedBonus    int64   `yaml:"distanceSavedBonus"`
	TimeSavedMinutes      float64 `yaml:"timeSavedMinutes"`
	TimeSavedBonus        int64   `yaml:"timeSavedBonus"`
}

// PricingConfig is the immutable pricing policy loaded from the configuration resource.
type PricingConfig struct {
	Version            string                   `yaml:"version"`
	Currency           string                   `yaml:"currency"`
	VatRate            float64                  `yaml:"vatRate"`
	StandardVan        VehicleClass             `yaml:"standardVan"`
	UpgradeVan         VehicleClass             `yaml:"upgradeVan"`
	Capacity           CapacityRules            `yaml:"capacity"`
	Rates              Rates                    `yaml:"rates"`
	Enrichment         EnrichmentRules          `yaml:"enrichment"`
	Labor              LaborRules               `yaml:"labor"`
	ServiceMultipliers map[ServiceLevel]float64 `yaml:"serviceMultipliers"`
	VehicleFees        VehicleFees              `yaml:"vehicleFees"`
	AddOns             AddOnRates               `yaml:"addOns"`
	Surcharges         SurchargeRates           `yaml:"surcharges"`
	Discounts          DiscountRules            `yaml:"discounts"`
	Tiers              TierRules                `yaml:"tiers"`
	Routing            RoutingRules             `yaml:"routing"`
	MultiDrop          MultiDropRates           `yaml:"multiDrop"`
}

// Validate checks the invariants the engine relies on.
func (c *PricingConfig) Validate() error {
	if c.Version == "" {
		return errors.New("version is required")
	}
	if c.VatRate < 0 || c.VatRate >= 1 {
		return fmt.Errorf("vatRate %v outside [0,1)", c.VatRate)
	}
	for _, v := range []VehicleClass{c.StandardVan, c.UpgradeVan} {
		if v.Type == "" {
			return errors.New("vehicle class type is required")
		}
		if v.MaxWeightKg <= 0 || v.MaxVolumeM3 <= 0 || v.MaxItems <= 0 {
			return fmt.Errorf("vehicle class %s: limits must be positive", v.Type)
		}
	}
	if c.Routing.BaseSpeedKmh <= 0 {
		return errors.New("routing.baseSpeedKmh must be positive")
	}
	for i, b := range c.Routing.TrafficBands {
		if b.FromHour < 0 || b.ToHour > 23 || b.FromHour > b.ToHour {
			return fmt.Errorf("routing.trafficBands[%d]: invalid hours %d-%d", i, b.FromHour, b.ToHour)
		}
	}
	if c.Tiers.EconomyMultiplier <= 0 || c.Tiers.PriorityMultiplier <= 0 {
		return errors.New("tier multipliers must be positive")
	}
	return nil
}

// ServiceMultiplier returns the configured multiplier, defaulting to 1.
func (c *PricingConfig) ServiceMultiplier(level ServiceLevel) float64 {
	if m, ok := c.ServiceMultipliers[level]; ok && m > 0 {
		return m
	}
	return 1
}

// PricingData is the loaded catalog and configuration pair, shared read-only by every calculation.
type PricingData struct {
	Catalog *Catalog
	Config  *PricingConfig
}

func (d *PricingData) Version() string {
	return d.Catalog.Version + ":" + d.Config.Version
}
