package domain

import (
	"errors"
	"testing"
	"time"
)

func validInput() PricingInput {
	return PricingInput{
		Items: []ItemRequest{{ID: "sofa-3", Name: "Three Seater Sofa", Quantity: 1}},
		Pickup: Waypoint{
			Address:     "1 High St",
			Coordinates: Coordinates{Lat: 51.5, Lng: -0.12},
			Property:    PropertyDetails{Type: PropertyHouse},
		},
		Dropoffs: []Waypoint{{
			Address:     "2 Low St",
			Coordinates: Coordinates{Lat: 51.6, Lng: -0.2},
			ItemIDs:     []string{"sofa-3"},
		}},
		ServiceLevel: ServiceStandard,
	}
}

func TestPricingInputValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(in *PricingInput)
		field  string
	}{
		{"valid", func(in *PricingInput) {}, ""},
		{"no items", func(in *PricingInput) { in.Items = nil }, "items"},
		{"zero quantity", func(in *PricingInput) { in.Items[0].Quantity = 0 }, "items[0].quantity"},
		{"negative weight", func(in *PricingInput) { in.Items[0].WeightKg = -1 }, "items[0].weight"},
		{"quantity at limit", func(in *PricingInput) { in.Items[0].Quantity = 1000 }, ""},
		{"huge quantity", func(in *PricingInput) { in.Items[0].Quantity = 2_000_000_000_000 }, "items[0].quantity"},
		{"huge weight", func(in *PricingInput) { in.Items[0].WeightKg = 1e300 }, "items[0].weight"},
		{"huge volume", func(in *PricingInput) { in.Items[0].VolumeM3 = 100.5 }, "items[0].volume"},
		{"huge packing volume", func(in *PricingInput) { in.AddOns.PackingVolume = 1e9 }, "addOns.packingVolume"},
		{"too many dropoffs", func(in *PricingInput) {
			for len(in.Dropoffs) <= 20 {
				in.Dropoffs = append(in.Dropoffs, in.Dropoffs[0])
			}
		}, "dropoffs"},
		{"no dropoffs", func(in *PricingInput) { in.Dropoffs = nil }, "dropoffs"},
		{"bad latitude", func(in *PricingInput) { in.Pickup.Coordinates.Lat = 91 }, "pickup.coordinates"},
		{"too many floors", func(in *PricingInput) { in.Dropoffs[0].Property.Floors = 51 }, "dropoffs[0].propertyDetails.floors"},
		{"bad property type", func(in *PricingInput) { in.Dropoffs[0].Property.Type = "castle" }, "dropoffs[0].propertyDetails.type"},
		{"unknown item id", func(in *PricingInput) { in.Dropoffs[0].ItemIDs = []string{"piano"} }, "dropoffs[0].itemIds"},
		{"bad service level", func(in *PricingInput) { in.ServiceLevel = "gold" }, "serviceLevel"},
		{"bad insurance", func(in *PricingInput) { in.AddOns.Insurance = "ultra" }, "addOns.insurance"},
		{"bad time slot", func(in *PricingInput) { in.TimeSlot = "midnight" }, "timeSlot"},
		{"inverted window", func(in *PricingInput) {
			now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
			in.Dropoffs[0].TimeWindow = &TimeWindow{Earliest: now, Latest: now.Add(-time.Hour)}
		}, "dropoffs[0].timeWindow"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			err := in.Validate()
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Errorf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}
