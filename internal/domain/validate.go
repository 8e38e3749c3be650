package domain

import (
	"fmt"
	"strings"
)

const (
	maxFloors        = 50
	maxDropoffs      = 20
	maxQuantity      = 1000
	maxItemWeightKg  = 5000
	maxItemVolumeM3  = 100
	maxPackingVolume = 1000
)

// Validate rejects structurally invalid input before any computation begins.
// The first problem found is returned as a *ValidationError.
func (in *PricingInput) Validate() error {
	if len(in.Items) == 0 {
		return invalid("items", "at least one item is required")
	}
	known := make(map[string]struct{}, len(in.Items))
	for i, it := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(it.ID) == "" && strings.TrimSpace(it.Name) == "" {
			return invalid(field, "id or name is required")
		}
		if it.Quantity < 1 || it.Quantity > maxQuantity {
			return invalid(field+".quantity", "must be between 1 and %d, got %d", maxQuantity, it.Quantity)
		}
		if it.WeightKg < 0 || it.WeightKg > maxItemWeightKg {
			return invalid(field+".weight", "must be between 0 and %d kg, got %v", maxItemWeightKg, it.WeightKg)
		}
		if it.VolumeM3 < 0 || it.VolumeM3 > maxItemVolumeM3 {
			return invalid(field+".volume", "must be between 0 and %d m³, got %v", maxItemVolumeM3, it.VolumeM3)
		}
		if it.ID != "" {
			known[it.ID] = struct{}{}
		}
	}

	if err := validateWaypoint("pickup", in.Pickup); err != nil {
		return err
	}
	if len(in.Dropoffs) == 0 {
		return invalid("dropoffs", "at least one drop-off is required")
	}
	if len(in.Dropoffs) > maxDropoffs {
		return invalid("dropoffs", "at most %d drop-offs are supported, got %d", maxDropoffs, len(in.Dropoffs))
	}
	for i, d := range in.Dropoffs {
		field := fmt.Sprintf("dropoffs[%d]", i)
		if err := validateWaypoint(field, d); err != nil {
			return err
		}
		for _, id := range d.ItemIDs {
			if _, ok := known[id]; !ok {
				return invalid(field+".itemIds", "unknown item id %q", id)
			}
		}
	}

	if !in.ServiceLevel.Valid() {
		return invalid("serviceLevel", "unsupported value %q", in.ServiceLevel)
	}
	if in.TimeSlot != "" && !in.TimeSlot.Valid() {
		return invalid("timeSlot", "unsupported value %q", in.TimeSlot)
	}
	if in.AddOns.Insurance != "" && !in.AddOns.Insurance.Valid() {
		return invalid("addOns.insurance", "unsupported value %q", in.AddOns.Insurance)
	}
	if in.AddOns.PackingVolume < 0 || in.AddOns.PackingVolume > maxPackingVolume {
		return invalid("addOns.packingVolume", "must be between 0 and %d m³, got %v", maxPackingVolume, in.AddOns.PackingVolume)
	}
	if in.UserContext.CustomerTier != "" && !in.UserContext.CustomerTier.Valid() {
		return invalid("userContext.customerTier", "unsupported value %q", in.UserContext.CustomerTier)
	}

	return nil
}

func validateWaypoint(field string, w Waypoint) error {
	if !w.Coordinates.Valid() {
		return invalid(field+".coordinates", "lat/lng out of range (%v, %v)", w.Coordinates.Lat, w.Coordinates.Lng)
	}
	p := w.Property
	if p.Type != "" && !p.Type.Valid() {
		return invalid(field+".propertyDetails.type", "unsupported value %q", p.Type)
	}
	if p.Floors < 0 || p.Floors > maxFloors {
		return invalid(field+".propertyDetails.floors", "must be between 0 and %d, got %d", maxFloors, p.Floors)
	}
	if tw := w.TimeWindow; tw != nil && tw.Latest.Before(tw.Earliest) {
		return invalid(field+".timeWindow", "latest is before earliest")
	}
	return nil
}
