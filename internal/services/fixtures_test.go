package services

import (
	"context"
	"removal-pricing-service/internal/adapters/distance"
	"removal-pricing-service/internal/domain"
	"sync/atomic"
	"time"
)

// Monday 12:00 UTC, inside the mid-day traffic band.
var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

var (
	reading  = domain.Coordinates{Lat: 51.4543, Lng: -0.9781}
	oxford   = domain.Coordinates{Lat: 51.7520, Lng: -1.2577}
	swindon  = domain.Coordinates{Lat: 51.5558, Lng: -1.7797}
	guildfrd = domain.Coordinates{Lat: 51.2362, Lng: -0.5704}
	basingst = domain.Coordinates{Lat: 51.2665, Lng: -1.0924}
	central  = domain.Coordinates{Lat: 51.5080, Lng: -0.1280}
)

func boolPtr(b bool) *bool { return &b }

func testConfig() *domain.PricingConfig {
	return &domain.PricingConfig{
		Version:     "test-cfg",
		Currency:    "GBP",
		VatRate:     0.20,
		StandardVan: domain.VehicleClass{Type: "luton_van", Name: "Standard Luton Van", MaxWeightKg: 3500, MaxVolumeM3: 14.5, MaxItems: 150},
		UpgradeVan:  domain.VehicleClass{Type: "large_van", Name: "Large Van (7.5T)", MaxWeightKg: 7500, MaxVolumeM3: 30, MaxItems: 250},
		Capacity:    domain.CapacityRules{HeavyItemKg: 200, NearCapacityPercent: 95},
		Rates: domain.Rates{
			BaseFee:                   3750,
			PerKm:                     62.5,
			PerKg:                     6.25,
			PerM3:                     375,
			MinimumItemCost:           1875,
			MultiDropBaseDiscount:     0.15,
			MultiDropBaseMaxStops:     3,
			MultiDropDistanceDiscount: 0.05,
			MultiDropDistanceMaxStops: 4,
		},
		Enrichment: domain.EnrichmentRules{
			DefaultWeightKg:     10,
			DefaultVolumeM3:     0.1,
			DefaultItemCost:     1875,
			DefaultLaborCost:    1250,
			HeavyItemKg:         100,
			HeavyItemMultiplier: 2,
			CategoryMultipliers: []domain.CategoryMultiplier{
				{Multiplier: 3, Keywords: []string{"musical", "special", "piano"}},
				{Multiplier: 2.5, Keywords: []string{"antique", "valuable", "gym"}},
			},
		},
		Labor: domain.LaborRules{HourlyRate: 625, BaseHandlingMinutes: 3},
		ServiceMultipliers: map[domain.ServiceLevel]float64{
			domain.ServiceStandard:   1.0,
			domain.ServiceExpress:    1.2,
			domain.ServicePremium:    1.35,
			domain.ServiceSignature:  1.35,
			domain.ServiceWhiteGlove: 1.5,
		},
		VehicleFees: domain.VehicleFees{Upgrade: 7500, CapacityIssue: 3750},
		AddOns: domain.AddOnRates{
			PackingPerM3:       250,
			DisassemblyPerItem: 1500,
			ReassemblyPerItem:  1200,
			Insurance:          map[domain.InsuranceLevel]int64{"basic": 5000, "standard": 10000, "premium": 20000},
		},
		Surcharges: domain.SurchargeRates{ExtraStop: 625, FragileItem: 200, OversizeItem: 375, PerFloorWithoutLift: 87.5, TimeWindow: 3500},
		Discounts: domain.DiscountRules{
			VolumeTiers: []domain.VolumeTier{
				{MinVolumeM3: 10, Rate: 0.02, Description: "Volume discount (10+ m³)"},
				{MinVolumeM3: 50, Rate: 0.05, Description: "Large volume discount (50+ m³)"},
				{MinVolumeM3: 20, Rate: 0.03, Description: "Volume discount (20+ m³)"},
			},
			LoyaltyRate: 0.05,
			PromoCodes:  map[string]float64{"WELCOME10": 0.10},
		},
		Tiers: domain.TierRules{EconomyMultiplier: 0.85, PriorityMultiplier: 1.5, EconomyHorizonDays: 7},
		Routing: domain.RoutingRules{
			BaseSpeedKmh: 30,
			TrafficBands: []domain.TrafficBand{
				{FromHour: 7, ToHour: 9, Multiplier: 1.8},
				{FromHour: 17, ToHour: 19, Multiplier: 1.8},
				{FromHour: 10, ToHour: 16, Multiplier: 1.2},
			},
			CongestionZone: domain.Zone{Name: "central", Lat: 51.5074, Lng: -0.1278, RadiusKm: 5},
			TollZones:      []domain.Zone{{Name: "Dartford Crossing", Lat: 51.4640, Lng: 0.2590, RadiusKm: 2}},
		},
		MultiDrop: domain.MultiDropRates{
			LegBaseFee: 7500, PerKm: 150, FreeMinutes: 30, PerMinute: 50, PerDifficultyPoint: 1000,
			HighFloorNoLift: 1200, NoParking: 800, Permit: 1500,
			CongestionZone: 1500, TollRoad: 2000, HeavyTraffic: 1000, HeavyTrafficThreshold: 1.5,
			MultipleStops: 800, StopSurcharge: 2500, EmptyLegKm: 10, AverageLoadFactor: 0.7,
			HighEfficiencyScore: 80, HighEfficiencyBonus: 1500, MediumEfficiencyScore: 60, MediumEfficiencyBonus: 800,
			DistanceSavedKm: 5, DistanceSavedBonus: 500, TimeSavedMinutes: 15, TimeSavedBonus: 300,
		},
	}
}

func testCatalog() *domain.Catalog {
	return domain.NewCatalog("test-cat", []domain.CatalogItem{
		{ID: "armchair", Name: "Armchair", Category: "living room", WeightKg: 25, VolumeM3: 0.9, WorkersRequired: 1},
		{ID: "wardrobe", Name: "Double Wardrobe", Category: "bedroom", WeightKg: 75, VolumeM3: 1.8,
			DismantlingRequired: true, DismantlingMinutes: 30, ReassemblyMinutes: 40, WorkersRequired: 2},
		{ID: "upright-piano", Name: "Upright Piano", Category: "musical instruments", WeightKg: 230, VolumeM3: 1.4,
			WorkersRequired: 4, ReferencePrice: 15000},
		{ID: "safe", Name: "Steel Safe", Category: "office", WeightKg: 120, VolumeM3: 0.3, WorkersRequired: 2},
		{ID: "hot-tub", Name: "Hot Tub", Category: "outdoor", WeightKg: 350, VolumeM3: 6.5, WorkersRequired: 6, VanFit: boolPtr(false)},
		{ID: "large-box", Name: "Large Moving Box", Category: "boxes", WeightKg: 15, VolumeM3: 0.1, WorkersRequired: 1},
	})
}

func testData() *domain.PricingData {
	return &domain.PricingData{Catalog: testCatalog(), Config: testConfig()}
}

// staticSource returns fixed data or a fixed error and counts calls.
type staticSource struct {
	data  *domain.PricingData
	err   error
	calls atomic.Int32
}

func (s *staticSource) Load(ctx context.Context) (*domain.PricingData, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

type stubSlots struct {
	ok  bool
	err error
}

func (s stubSlots) HasEconomySlot(ctx context.Context, date time.Time) (bool, error) {
	return s.ok, s.err
}

func newTestEngine(slots *stubSlots) *Engine {
	e := NewEngine(NewDataLoader(&staticSource{data: testData()}), distance.NewHaversineProvider(), nil)
	if slots != nil {
		e.Slots = *slots
	}
	e.Now = func() time.Time { return testNow }
	return e
}

func easyAccess() domain.PropertyDetails {
	return domain.PropertyDetails{Type: domain.PropertyHouse, HasLift: true, HasParking: true}
}

func waypoint(c domain.Coordinates) domain.Waypoint {
	return domain.Waypoint{Address: "somewhere", Postcode: "AB1 2CD", Coordinates: c, Property: easyAccess()}
}

func baseInput() domain.PricingInput {
	return domain.PricingInput{
		Items:        []domain.ItemRequest{{ID: "armchair", Name: "Armchair", Category: "furniture", Quantity: 1, WeightKg: 25, VolumeM3: 2}},
		Pickup:       waypoint(reading),
		Dropoffs:     []domain.Waypoint{waypoint(oxford)},
		ServiceLevel: domain.ServiceStandard,
	}
}
