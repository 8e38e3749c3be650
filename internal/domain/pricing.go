package domain

import "time"

type ServiceLevel string

const (
	ServiceStandard   ServiceLevel = "standard"
	ServiceExpress    ServiceLevel = "express"
	ServiceScheduled  ServiceLevel = "scheduled"
	ServiceSignature  ServiceLevel = "signature"
	ServicePremium    ServiceLevel = "premium"
	ServiceWhiteGlove ServiceLevel = "white-glove"
)

func (s ServiceLevel) Valid() bool {
	switch s {
	case ServiceStandard, ServiceExpress, ServiceScheduled, ServiceSignature, ServicePremium, ServiceWhiteGlove:
		return true
	}
	return false
}

type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
	SlotFlexible  TimeSlot = "flexible"
)

func (s TimeSlot) Valid() bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotEvening, SlotFlexible:
		return true
	}
	return false
}

type InsuranceLevel string

const (
	InsuranceBasic    InsuranceLevel = "basic"
	InsuranceStandard InsuranceLevel = "standard"
	InsurancePremium  InsuranceLevel = "premium"
)

func (l InsuranceLevel) Valid() bool {
	switch l {
	case InsuranceBasic, InsuranceStandard, InsurancePremium:
		return true
	}
	return false
}

type CustomerTier string

const (
	CustomerStandard   CustomerTier = "standard"
	CustomerPremium    CustomerTier = "premium"
	CustomerEnterprise CustomerTier = "enterprise"
)

func (t CustomerTier) Valid() bool {
	switch t {
	case CustomerStandard, CustomerPremium, CustomerEnterprise:
		return true
	}
	return false
}

// PricingTier is the policy applied to the pre-VAT subtotal.
type PricingTier string

const (
	TierEconomy  PricingTier = "economy"
	TierStandard PricingTier = "standard"
	TierPriority PricingTier = "priority"
)

type AddOns struct {
	Packing       bool
	PackingVolume float64
	Disassembly   []string
	Reassembly    []string
	Insurance     InsuranceLevel
}

type UserContext struct {
	IsAuthenticated     bool
	IsReturningCustomer bool
	CustomerTier        CustomerTier
	Locale              string
}

// Everything the engine needs to quote one job.
type PricingInput struct {
	Items         []ItemRequest
	Pickup        Waypoint
	Dropoffs      []Waypoint
	ServiceLevel  ServiceLevel
	ScheduledDate *time.Time
	TimeSlot      TimeSlot
	AddOns        AddOns
	PromoCode     string
	UserContext   UserContext
}

// All amounts in pence. The fields sum to the pre-VAT subtotal.
type Breakdown struct {
	BaseFee           int64
	ItemsFee          int64
	LaborFee          int64
	DistanceFee       int64
	ServiceFee        int64
	VehicleFee        int64
	PropertyAccessFee int64
	AddOnsFee         int64
	Surcharges        int64
	Discounts         int64
	TierAdjustment    int64
}

func (b Breakdown) Sum() int64 {
	return b.BaseFee + b.ItemsFee + b.LaborFee + b.DistanceFee + b.ServiceFee + b.VehicleFee +
		b.PropertyAccessFee + b.AddOnsFee + b.Surcharges + b.Discounts + b.TierAdjustment
}

const (
	SurchargeExtraStops     = "extra_stops"
	SurchargeFragile        = "fragile"
	SurchargeOversize       = "oversize"
	SurchargePropertyAccess = "property_access"
	SurchargeTimeWindow     = "time_window"

	DiscountVolume  = "volume"
	DiscountLoyalty = "loyalty"
	DiscountPromo   = "promo"
)

type Surcharge struct {
	Category string
	Amount   int64
	Reason   string
}

// Amount is always non-positive.
type Discount struct {
	Type        string
	Amount      int64
	Description string
}

// Outcome of comparing the load against the standard vehicle limits.
type CapacityCheck struct {
	IsValid           bool
	WeightExceeded    bool
	VolumeExceeded    bool
	ItemCountExceeded bool
	OversizedItems    []string
	HeavyItems        []string
	TotalWeightKg     float64
	TotalVolumeM3     float64
	TotalItems        int
	WeightUtilization float64
	VolumeUtilization float64
	ItemUtilization   float64
	Warnings          []string
	Recommendations   []string
}

const (
	UpgradeLargerVehicle     = "larger_vehicle"
	UpgradeAdditionalVehicle = "additional_vehicle"
	UpgradeSplitJob          = "split_job"
	UpgradeSpecialTransport  = "special_transport"
)

type VehicleRecommendation struct {
	Type                string
	Name                string
	CapacityM3          float64
	TotalWeightKg       float64
	TotalVolumeM3       float64
	TotalItems          int
	WeightUtilization   int
	VolumeUtilization   int
	ItemUtilization     int
	CapacityIssue       bool
	RecommendedUpgrades []string
}

type LegSurcharge struct {
	Type   string
	Amount int64
}

// Monetary view of one route leg, in pence.
type LegCharge struct {
	LegIndex          int
	BaseFee           int64
	DistanceFee       int64
	TimeFee           int64
	DifficultyFee     int64
	PropertyAccessFee int64
	Surcharges        []LegSurcharge
	Total             int64
}

type CapacityUtilization struct {
	MaximumLoad float64
	AverageLoad float64
	EmptyLegs   int
}

// Per-leg charge aggregate. Informational: it is not added to the quoted amount.
type MultiDropAggregate struct {
	PerLegCharges             []LegCharge
	TotalStopSurcharge        int64
	RouteOptimizationDiscount int64
	CapacityUtilization       CapacityUtilization
}

type Metadata struct {
	RequestID         string
	CalculatedAt      time.Time
	Version           string
	Currency          string
	DataSourceVersion string
	Warnings          []string
	Recommendations   []string
}

// The complete quote. AmountGbpMinor == SubtotalBeforeVat + VatAmount by construction.
type PricingResult struct {
	AmountGbpMinor     int64
	SubtotalBeforeVat  int64
	VatAmount          int64
	VatRate            float64
	Tier               PricingTier
	Breakdown          Breakdown
	Surcharges         []Surcharge
	Discounts          []Discount
	Route              OptimizedRoute
	RecommendedVehicle VehicleRecommendation
	MultiDrop          MultiDropAggregate
	Metadata           Metadata
}
