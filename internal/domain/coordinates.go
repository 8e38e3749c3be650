package domain

import "math"

const earthRadiusKm = 6371.0

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Valid reports whether both components are inside their geographic ranges.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// DistanceKm returns the great-circle (Haversine) distance to other in kilometres.
func (c Coordinates) DistanceKm(other Coordinates) float64 {
	dLat := degreesToRadians(other.Lat - c.Lat)
	dLng := degreesToRadians(other.Lng - c.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(c.Lat))*math.Cos(degreesToRadians(other.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Midpoint returns the arithmetic midpoint. Legs are short enough that the
// flat approximation is within the precision of the zone radii it is tested against.
func (c Coordinates) Midpoint(other Coordinates) Coordinates {
	return Coordinates{Lat: (c.Lat + other.Lat) / 2, Lng: (c.Lng + other.Lng) / 2}
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}
