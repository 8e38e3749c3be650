package dto

import (
	"removal-pricing-service/internal/domain"
	"time"
)

type CoordinatesRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PropertyDetailsRequest struct {
	Type           string `json:"type"`
	Floors         int    `json:"floors"`
	HasLift        bool   `json:"hasLift"`
	HasParking     bool   `json:"hasParking"`
	AccessNotes    string `json:"accessNotes"`
	RequiresPermit bool   `json:"requiresPermit"`
}

type TimeWindowRequest struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

type WaypointRequest struct {
	Address         string                 `json:"address"`
	Postcode        string                 `json:"postcode"`
	Coordinates     CoordinatesRequest     `json:"coordinates"`
	PropertyDetails PropertyDetailsRequest `json:"propertyDetails"`
	TimeWindow      *TimeWindowRequest     `json:"timeWindow"`
	ItemIDs         []string               `json:"itemIds"`
}

// Weight and Volume are per unit; omitted means take them from the catalog.
type ItemRequest struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Category            string   `json:"category"`
	Quantity            int      `json:"quantity"`
	Weight              float64  `json:"weight"`
	Volume              float64  `json:"volume"`
	Fragile             bool     `json:"fragile"`
	Oversize            bool     `json:"oversize"`
	DisassemblyRequired bool     `json:"disassemblyRequired"`
	SpecialHandling     []string `json:"specialHandling"`
}

type AddOnsRequest struct {
	Packing       bool     `json:"packing"`
	PackingVolume float64  `json:"packingVolume"`
	Disassembly   []string `json:"disassembly"`
	Reassembly    []string `json:"reassembly"`
	Insurance     string   `json:"insurance"`
}

type UserContextRequest struct {
	IsAuthenticated     bool   `json:"isAuthenticated"`
	IsReturningCustomer bool   `json:"isReturningCustomer"`
	CustomerTier        string `json:"customerTier"`
	Locale              string `json:"locale"`
}

type QuoteRequest struct {
	Items         []ItemRequest      `json:"items"`
	Pickup        WaypointRequest    `json:"pickup"`
	Dropoffs      []WaypointRequest  `json:"dropoffs"`
	ServiceLevel  string             `json:"serviceLevel"`
	ScheduledDate *time.Time         `json:"scheduledDate"`
	TimeSlot      string             `json:"timeSlot"`
	AddOns        AddOnsRequest      `json:"addOns"`
	PromoCode     string             `json:"promoCode"`
	UserContext   UserContextRequest `json:"userContext"`
}

type VerifyRequest struct {
	AmountGbpMinor int64 `json:"amountGbpMinor"`
}

// ToInput maps the wire request onto the engine input. Enum values are checked by
// PricingInput.Validate, not here.
func (r QuoteRequest) ToInput() domain.PricingInput {
	in := domain.PricingInput{
		Items:         make([]domain.ItemRequest, 0, len(r.Items)),
		Pickup:        r.Pickup.toWaypoint(),
		Dropoffs:      make([]domain.Waypoint, 0, len(r.Dropoffs)),
		ServiceLevel:  domain.ServiceLevel(r.ServiceLevel),
		ScheduledDate: r.ScheduledDate,
		TimeSlot:      domain.TimeSlot(r.TimeSlot),
		AddOns: domain.AddOns{
			Packing:       r.AddOns.Packing,
			PackingVolume: r.AddOns.PackingVolume,
			Disassembly:   r.AddOns.Disassembly,
			Reassembly:    r.AddOns.Reassembly,
			Insurance:     domain.InsuranceLevel(r.AddOns.Insurance),
		},
		PromoCode: r.PromoCode,
		UserContext: domain.UserContext{
			IsAuthenticated:     r.UserContext.IsAuthenticated,
			IsReturningCustomer: r.UserContext.IsReturningCustomer,
			CustomerTier:        domain.CustomerTier(r.UserContext.CustomerTier),
			Locale:              r.UserContext.Locale,
		},
	}

	for _, it := range r.Items {
		in.Items = append(in.Items, domain.ItemRequest{
			ID:                  it.ID,
			Name:                it.Name,
			Category:            it.Category,
			Quantity:            it.Quantity,
			WeightKg:            it.Weight,
			VolumeM3:            it.Volume,
			Fragile:             it.Fragile,
			Oversize:            it.Oversize,
			DisassemblyRequired: it.DisassemblyRequired,
			SpecialHandling:     it.SpecialHandling,
		})
	}
	for _, d := range r.Dropoffs {
		in.Dropoffs = append(in.Dropoffs, d.toWaypoint())
	}
	return in
}

func (w WaypointRequest) toWaypoint() domain.Waypoint {
	wp := domain.Waypoint{
		Address:     w.Address,
		Postcode:    w.Postcode,
		Coordinates: domain.Coordinates{Lat: w.Coordinates.Lat, Lng: w.Coordinates.Lng},
		Property: domain.PropertyDetails{
			Type:           domain.PropertyType(w.PropertyDetails.Type),
			Floors:         w.PropertyDetails.Floors,
			HasLift:        w.PropertyDetails.HasLift,
			HasParking:     w.PropertyDetails.HasParking,
			AccessNotes:    w.PropertyDetails.AccessNotes,
			RequiresPermit: w.PropertyDetails.RequiresPermit,
		},
		ItemIDs: w.ItemIDs,
	}
	if w.TimeWindow != nil {
		wp.TimeWindow = &domain.TimeWindow{Earliest: w.TimeWindow.Earliest, Latest: w.TimeWindow.Latest}
	}
	return wp
}
