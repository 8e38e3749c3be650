package domain

import "time"

const (
	AlgorithmNone          = "none"
	AlgorithmDirect        = "direct-route"
	AlgorithmNearestWindow = "nearest-neighbor-with-time-windows"
)

// Represents one directed segment between consecutive waypoints of a route.
// DropoffIndex is the position of To in the caller's drop-off list.
type RouteLeg struct {
	From              Waypoint
	To                Waypoint
	DropoffIndex      int
	DepartAt          time.Time
	DistanceKm        float64
	DurationMinutes   int
	TrafficMultiplier float64
	DifficultyScore   int
	CongestionZone    bool
	TollRoad          bool
}

type RouteOptimization struct {
	Algorithm        string
	TimeSavedMinutes float64
	DistanceSavedKm  float64
	EfficiencyScore  int
}

// Represents the visiting order chosen for a job and its aggregate metrics.
// It is immutable planning data and contains no side effects.
type OptimizedRoute struct {
	Legs                 []RouteLeg
	TotalDistanceKm      float64
	TotalDurationMinutes int
	TotalStops           int
	Optimization         RouteOptimization
	Warnings             []string
	Recommendations      []string
}

