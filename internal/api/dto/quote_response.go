package dto

import (
	"removal-pricing-service/internal/domain"
	"time"
)

type BreakdownResponse struct {
	BaseFee           int64 `json:"baseFee"`
	ItemsFee          int64 `json:"itemsFee"`
	LaborFee          int64 `json:"laborFee"`
	DistanceFee       int64 `json:"distanceFee"`
	ServiceFee        int64 `json:"serviceFee"`
	VehicleFee        int64 `json:"vehicleFee"`
	PropertyAccessFee int64 `json:"propertyAccessFee"`
	AddOnsFee         int64 `json:"addOnsFee"`
	Surcharges        int64 `json:"surcharges"`
	Discounts         int64 `json:"discounts"`
	TierAdjustment    int64 `json:"tierAdjustment"`
}

type SurchargeResponse struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
	Reason   string `json:"reason"`
}

type DiscountResponse struct {
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

type StopResponse struct {
	Address     string             `json:"address"`
	Postcode    string             `json:"postcode"`
	Coordinates CoordinatesRequest `json:"coordinates"`
}

type LegResponse struct {
	From              StopResponse `json:"from"`
	To                StopResponse `json:"to"`
	DropoffIndex      int          `json:"dropoffIndex"`
	DepartAt          time.Time    `json:"departAt"`
	DistanceKm        float64      `json:"distanceKm"`
	DurationMinutes   int          `json:"durationMinutes"`
	TrafficMultiplier float64      `json:"trafficMultiplier"`
	DifficultyScore   int          `json:"difficultyScore"`
	CongestionZone    bool         `json:"congestionZone"`
	TollRoad          bool         `json:"tollRoad"`
}

type OptimizationResponse struct {
	Algorithm        string  `json:"algorithm"`
	TimeSavedMinutes float64 `json:"timeSavedMinutes"`
	DistanceSavedKm  float64 `json:"distanceSavedKm"`
	EfficiencyScore  int     `json:"efficiencyScore"`
}

type RouteResponse struct {
	TotalDistance   float64              `json:"totalDistance"`
	TotalDuration   int                  `json:"totalDuration"`
	TotalStops      int                  `json:"totalStops"`
	Legs            []LegResponse        `json:"legs"`
	Optimization    OptimizationResponse `json:"optimization"`
	Warnings        []string             `json:"warnings"`
	Recommendations []string             `json:"recommendations"`
}

type VehicleResponse struct {
	Type                string   `json:"type"`
	Name                string   `json:"name"`
	Capacity            float64  `json:"capacity"`
	TotalWeight         float64  `json:"totalWeight"`
	TotalVolume         float64  `json:"totalVolume"`
	TotalItems          int      `json:"totalItems"`
	WeightUtilization   int      `json:"weightUtilization"`
	VolumeUtilization   int      `json:"volumeUtilization"`
	ItemUtilization     int      `json:"itemUtilization"`
	CapacityIssue       bool     `json:"capacityIssue"`
	RecommendedUpgrades []string `json:"recommendedUpgrades"`
}

type LegSurchargeResponse struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
}

type LegChargeResponse struct {
	LegIndex          int                    `json:"legIndex"`
	BaseFee           int64                  `json:"baseFee"`
	DistanceFee       int64                  `json:"distanceFee"`
	TimeFee           int64                  `json:"timeFee"`
	DifficultyFee     int64                  `json:"difficultyFee"`
	PropertyAccessFee int64                  `json:"propertyAccessFee"`
	Surcharges        []LegSurchargeResponse `json:"surcharges"`
	Total             int64                  `json:"total"`
}

type CapacityUtilizationResponse struct {
	MaximumLoad float64 `json:"maximumLoad"`
	AverageLoad float64 `json:"averageLoad"`
	EmptyLegs   int     `json:"emptyLegs"`
}

type MultiDropResponse struct {
	PerLegCharges             []LegChargeResponse         `json:"perLegCharges"`
	TotalStopSurcharge        int64                       `json:"totalStopSurcharge"`
	RouteOptimizationDiscount int64                       `json:"routeOptimizationDiscount"`
	CapacityUtilization       CapacityUtilizationResponse `json:"capacityUtilization"`
}

type MetadataResponse struct {
	RequestID         string    `json:"requestId"`
	CalculatedAt      time.Time `json:"calculatedAt"`
	Version           string    `json:"version"`
	Currency          string    `json:"currency"`
	DataSourceVersion string    `json:"dataSourceVersion"`
	Warnings          []string  `json:"warnings"`
	Recommendations   []string  `json:"recommendations"`
}

type PricingResultResponse struct {
	AmountGbpMinor     int64               `json:"amountGbpMinor"`
	SubtotalBeforeVat  int64               `json:"subtotalBeforeVat"`
	VatAmount          int64               `json:"vatAmount"`
	VatRate            float64             `json:"vatRate"`
	Tier               string              `json:"tier"`
	Breakdown          BreakdownResponse   `json:"breakdown"`
	Surcharges         []SurchargeResponse `json:"surcharges"`
	Discounts          []DiscountResponse  `json:"discounts"`
	Route              RouteResponse       `json:"route"`
	RecommendedVehicle VehicleResponse     `json:"recommendedVehicle"`
	MultiDrop          MultiDropResponse   `json:"multiDrop"`
	Metadata           MetadataResponse    `json:"metadata"`
}

// QuoteResponse is a priced result together with the identity of its stored snapshot.
type QuoteResponse struct {
	QuoteID      string                `json:"quoteId"`
	SnapshotHash string                `json:"snapshotHash"`
	Result       PricingResultResponse `json:"result"`
}

type SnapshotResponse struct {
	QuoteID        string                `json:"quoteId"`
	Hash           string                `json:"hash"`
	InputHash      string                `json:"inputHash"`
	AmountGbpMinor int64                 `json:"amountGbpMinor"`
	Tier           string                `json:"tier"`
	CreatedAt      time.Time             `json:"createdAt"`
	Result         PricingResultResponse `json:"result"`
}

type VerifyResponse struct {
	QuoteID        string `json:"quoteId"`
	Verified       bool   `json:"verified"`
	AmountGbpMinor int64  `json:"amountGbpMinor"`
}

// FromResult maps an engine result to its wire shape. Slices are never null.
func FromResult(r *domain.PricingResult) PricingResultResponse {
	b := r.Breakdown
	res := PricingResultResponse{
		AmountGbpMinor:    r.AmountGbpMinor,
		SubtotalBeforeVat: r.SubtotalBeforeVat,
		VatAmount:         r.VatAmount,
		VatRate:           r.VatRate,
		Tier:              string(r.Tier),
		Breakdown: BreakdownResponse{
			BaseFee:           b.BaseFee,
			ItemsFee:          b.ItemsFee,
			LaborFee:          b.LaborFee,
			DistanceFee:       b.DistanceFee,
			ServiceFee:        b.ServiceFee,
			VehicleFee:        b.VehicleFee,
			PropertyAccessFee: b.PropertyAccessFee,
			AddOnsFee:         b.AddOnsFee,
			Surcharges:        b.Surcharges,
			Discounts:         b.Discounts,
			TierAdjustment:    b.TierAdjustment,
		},
		Surcharges: make([]SurchargeResponse, 0, len(r.Surcharges)),
		Discounts:  make([]DiscountResponse, 0, len(r.Discounts)),
		Route:      fromRoute(r.Route),
		RecommendedVehicle: VehicleResponse{
			Type:                r.RecommendedVehicle.Type,
			Name:                r.RecommendedVehicle.Name,
			Capacity:            r.RecommendedVehicle.CapacityM3,
			TotalWeight:         r.RecommendedVehicle.TotalWeightKg,
			TotalVolume:         r.RecommendedVehicle.TotalVolumeM3,
			TotalItems:          r.RecommendedVehicle.TotalItems,
			WeightUtilization:   r.RecommendedVehicle.WeightUtilization,
			VolumeUtilization:   r.RecommendedVehicle.VolumeUtilization,
			ItemUtilization:     r.RecommendedVehicle.ItemUtilization,
			CapacityIssue:       r.RecommendedVehicle.CapacityIssue,
			RecommendedUpgrades: nonNil(r.RecommendedVehicle.RecommendedUpgrades),
		},
		MultiDrop: fromMultiDrop(r.MultiDrop),
		Metadata: MetadataResponse{
			RequestID:         r.Metadata.RequestID,
			CalculatedAt:      r.Metadata.CalculatedAt,
			Version:           r.Metadata.Version,
			Currency:          r.Metadata.Currency,
			DataSourceVersion: r.Metadata.DataSourceVersion,
			Warnings:          nonNil(r.Metadata.Warnings),
			Recommendations:   nonNil(r.Metadata.Recommendations),
		},
	}

	for _, s := range r.Surcharges {
		res.Surcharges = append(res.Surcharges, SurchargeResponse{Category: s.Category, Amount: s.Amount, Reason: s.Reason})
	}
	for _, d := range r.Discounts {
		res.Discounts = append(res.Discounts, DiscountResponse{Type: d.Type, Amount: d.Amount, Description: d.Description})
	}
	return res
}

func fromRoute(r domain.OptimizedRoute) RouteResponse {
	res := RouteResponse{
		TotalDistance: r.TotalDistanceKm,
		TotalDuration: r.TotalDurationMinutes,
		TotalStops:    r.TotalStops,
		Legs:          make([]LegResponse, 0, len(r.Legs)),
		Optimization: OptimizationResponse{
			Algorithm:        r.Optimization.Algorithm,
			TimeSavedMinutes: r.Optimization.TimeSavedMinutes,
			DistanceSavedKm:  r.Optimization.DistanceSavedKm,
			EfficiencyScore:  r.Optimization.EfficiencyScore,
		},
		Warnings:        nonNil(r.Warnings),
		Recommendations: nonNil(r.Recommendations),
	}
	for _, l := range r.Legs {
		res.Legs = append(res.Legs, LegResponse{
			From:              fromStop(l.From),
			To:                fromStop(l.To),
			DropoffIndex:      l.DropoffIndex,
			DepartAt:          l.DepartAt,
			DistanceKm:        l.DistanceKm,
			DurationMinutes:   l.DurationMinutes,
			TrafficMultiplier: l.TrafficMultiplier,
			DifficultyScore:   l.DifficultyScore,
			CongestionZone:    l.CongestionZone,
			TollRoad:          l.TollRoad,
		})
	}
	return res
}

func fromStop(w domain.Waypoint) StopResponse {
	return StopResponse{
		Address:     w.Address,
		Postcode:    w.Postcode,
		Coordinates: CoordinatesRequest{Lat: w.Coordinates.Lat, Lng: w.Coordinates.Lng},
	}
}

func fromMultiDrop(m domain.MultiDropAggregate) MultiDropResponse {
	res := MultiDropResponse{
		PerLegCharges:             make([]LegChargeResponse, 0, len(m.PerLegCharges)),
		TotalStopSurcharge:        m.TotalStopSurcharge,
		RouteOptimizationDiscount: m.RouteOptimizationDiscount,
		CapacityUtilization: CapacityUtilizationResponse{
			MaximumLoad: m.CapacityUtilization.MaximumLoad,
			AverageLoad: m.CapacityUtilization.AverageLoad,
			EmptyLegs:   m.CapacityUtilization.EmptyLegs,
		},
	}

	for _, c := range m.PerLegCharges {
		lc := LegChargeResponse{
			LegIndex:          c.LegIndex,
			BaseFee:           c.BaseFee,
			DistanceFee:       c.DistanceFee,
			TimeFee:           c.TimeFee,
			DifficultyFee:     c.DifficultyFee,
			PropertyAccessFee: c.PropertyAccessFee,
			Surcharges:        make([]LegSurchargeResponse, 0, len(c.Surcharges)),
			Total:             c.Total,
		}
		for _, s := range c.Surcharges {
			lc.Surcharges = append(lc.Surcharges, LegSurchargeResponse{Type: s.Type, Amount: s.Amount})
		}
		res.PerLegCharges = append(res.PerLegCharges, lc)
	}
	return res
}

func FromSnapshot(s *domain.QuoteSnapshot, r *domain.PricingResult) SnapshotResponse {
	return SnapshotResponse{
		QuoteID:        s.ID,
		Hash:           s.Hash,
		InputHash:      s.InputHash,
		AmountGbpMinor: s.AmountGbpMinor,
		Tier:           string(s.Tier),
		CreatedAt:      s.CreatedAt,
		Result:         FromResult(r),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
