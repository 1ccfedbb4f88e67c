package domain

import "github.com/paulmach/orb"

// A single candidate route returned by the planning service.
// Start and End are optional display names; DistanceMeters and
// DurationSeconds are aggregate metrics computed upstream.
type Route struct {
	Coords          []Coordinates `json:"coords"`
	Start           string        `json:"start,omitempty"`
	End             string        `json:"end,omitempty"`
	DistanceMeters  float64       `json:"distance"`
	DurationSeconds float64       `json:"duration"`
}

// A charging stop the vehicle must make to complete the route.
type RequiredStop struct {
	Coords           Coordinates `json:"coords"`
	DistanceFromLast float64     `json:"distance_from_last"`
	RemainingCharge  float64     `json:"remaining_charge"`
}

// A charging station near the route, shown for informational proximity only.
type NearbyStation struct {
	Coords   Coordinates `json:"coords"`
	Name     string      `json:"name"`
	Distance float64     `json:"distance"`
}

// PlanResult is the planning service's answer to a route request.
// It is externally produced, consumed read-only, and never locally
// recomputed: the client renders what it is given.
type PlanResult struct {
	BestRoute      *Route          `json:"best_route"`
	AllRoutes      []*Route        `json:"all_routes"`
	BatteryProfile []float64       `json:"battery_profile"`
	RequiredStops  []RequiredStop  `json:"required_stops"`
	NearbyStations []NearbyStation `json:"nearby_stations"`
}

// Normalize replaces absent optional fields with defined defaults so that
// downstream consumers never see nil slices. Called once at the decode
// boundary instead of defensively at every use site.
func (p *PlanResult) Normalize() {
	if p.AllRoutes == nil {
		p.AllRoutes = []*Route{}
	}
	routes := p.AllRoutes[:0]
	for _, r := range p.AllRoutes {
		if r != nil {
			routes = append(routes, r)
		}
	}
	p.AllRoutes = routes

	if p.BatteryProfile == nil {
		p.BatteryProfile = []float64{}
	}
	if p.RequiredStops == nil {
		p.RequiredStops = []RequiredStop{}
	}
	if p.NearbyStations == nil {
		p.NearbyStations = []NearbyStation{}
	}
}

// BestCoords returns the primary route's coordinate sequence, or an empty
// slice when no best route was returned.
func (p *PlanResult) BestCoords() []Coordinates {
	if p == nil || p.BestRoute == nil {
		return nil
	}
	return p.BestRoute.Coords
}

// SegmentBattery returns the battery percentage at the start of segment i.
// The profile is externally produced and its length is not locally
// validated; missing entries read as 0.
func SegmentBattery(profile []float64, i int) float64 {
	if i < 0 || i >= len(profile) {
		return 0
	}
	return profile[i]
}

// ArrivalBattery returns the last profile entry, or 0 when the profile
// is empty.
func ArrivalBattery(profile []float64) float64 {
	if len(profile) == 0 {
		return 0
	}
	return profile[len(profile)-1]
}

// RouteBounds computes the bounding region of a coordinate sequence.
// An empty sequence yields the zero bound; callers skip the camera fit.
func RouteBounds(coords []Coordinates) orb.Bound {
	if len(coords) == 0 {
		return orb.Bound{}
	}

	mp := make(orb.MultiPoint, 0, len(coords))
	for _, c := range coords {
		mp = append(mp, c.Point())
	}
	return mp.Bound()
}

// PadBound expands a bound by a fraction of its extent per axis, mirroring
// the 10% margin the map fit uses so the whole route stays visible.
func PadBound(b orb.Bound, fraction float64) orb.Bound {
	padX := (b.Max[0] - b.Min[0]) * fraction
	padY := (b.Max[1] - b.Min[1]) * fraction

	return orb.Bound{
		Min: orb.Point{b.Min[0] - padX, b.Min[1] - padY},
		Max: orb.Point{b.Max[0] + padX, b.Max[1] + padY},
	}
}
