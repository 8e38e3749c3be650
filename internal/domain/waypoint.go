package domain

import "time"

type PropertyType string

const (
	PropertyHouse     PropertyType = "house"
	PropertyApartment PropertyType = "apartment"
	PropertyOffice    PropertyType = "office"
	PropertyWarehouse PropertyType = "warehouse"
	PropertyOther     PropertyType = "other"
)

func (p PropertyType) Valid() bool {
	switch p {
	case PropertyHouse, PropertyApartment, PropertyOffice, PropertyWarehouse, PropertyOther:
		return true
	}
	return false
}

// Access conditions at a pickup or drop-off address.
type PropertyDetails struct {
	Type           PropertyType
	Floors         int
	HasLift        bool
	HasParking     bool
	AccessNotes    string
	RequiresPermit bool
}

type TimeWindow struct {
	Earliest time.Time
	Latest   time.Time
}

// Represents a pickup or drop-off location.
// ItemIDs is only meaningful for drop-offs: the request items destined there.
type Waypoint struct {
	Address     string
	Postcode    string
	Coordinates Coordinates
	Property    PropertyDetails
	TimeWindow  *TimeWindow
	ItemIDs     []string
}
