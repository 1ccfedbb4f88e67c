package session

import (
	"ev-route-navigator/internal/domain"
	"ev-route-navigator/internal/ports"
	"fmt"
	"strconv"
	"time"
)

const (
	segmentRevealStep = 30 * time.Millisecond
	requiredStopStep  = 200 * time.Millisecond
	nearbyStationStep = 150 * time.Millisecond
	cameraFitDelay    = 500 * time.Millisecond

	segmentWeight      = 6
	segmentOpacity     = 0.9
	alternativeColor   = "#2563eb"
	alternativeWeight  = 3
	alternativeOpacity = 0.6

	boundsPadFraction = 0.10
)

// Renderer turns a plan result into map layers: battery-colored primary
// segments with a left-to-right reveal, dashed alternatives, endpoint
// markers, staggered charging-stop and nearby-station markers, and a
// final camera fit. Every handle it creates is tracked in the session
// state so teardown removes the route as a unit.
type Renderer struct {
	state   *State
	surface ports.MapSurface
	sched   Scheduler
}

func NewRenderer(state *State, surface ports.MapSurface, sched Scheduler) *Renderer {
	return &Renderer{state: state, surface: surface, sched: sched}
}

// Clear removes every tracked layer. Unconditional and idempotent; also
// invalidates pending animations so callbacks from a previous render
// cannot touch the surface afterwards.
func (r *Renderer) Clear() {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.clearLocked()
}

func (r *Renderer) clearLocked() {
	r.state.renderGen++
	r.sched.Invalidate()

	for _, id := range r.state.dropLayersLocked() {
		r.surface.Remove(id)
	}
}

// Render draws a plan result. Callers clear first; Submit does both under
// one lock so no partial state is ever observable.
func (r *Renderer) Render(res *domain.PlanResult, chargeAtSubmit float64) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.renderLocked(res, chargeAtSubmit)
}

func (r *Renderer) renderLocked(res *domain.PlanResult, chargeAtSubmit float64) {
	gen := r.state.renderGen
	coords := res.BestCoords()

	// Primary route, one segment per coordinate pair, colored by the
	// battery value at the segment start and revealed at i*30ms.
	for i := 0; i+1 < len(coords); i++ {
		tier := domain.TierFor(domain.SegmentBattery(res.BatteryProfile, i))

		id := r.surface.AddPolyline(
			[]domain.Coordinates{coords[i], coords[i+1]},
			ports.PolylineStyle{Color: tier.Color(), Weight: segmentWeight, Opacity: 0},
		)
		r.state.trackLocked(id)

		delay := time.Duration(i) * segmentRevealStep
		r.sched.Schedule(delay, func() {
			r.state.mu.Lock()
			defer r.state.mu.Unlock()
			if r.state.renderGen != gen || !r.state.trackedLocked(id) {
				return
			}
			r.surface.SetOpacity(id, segmentOpacity)
		})
	}

	// Alternatives, excluded by identity so a result listing the best
	// route among all_routes draws it once, not twice.
	for _, route := range res.AllRoutes {
		if route == res.BestRoute {
			continue
		}
		id := r.surface.AddPolyline(route.Coords, ports.PolylineStyle{
			Color:   alternativeColor,
			Weight:  alternativeWeight,
			Opacity: alternativeOpacity,
			Dashed:  true,
		})
		r.state.trackLocked(id)
	}

	// Endpoint markers need at least a two-point route.
	if len(coords) >= 2 {
		start := r.surface.AddMarker(coords[0], ports.MarkerStart,
			startPopup(res.BestRoute.Start, chargeAtSubmit))
		end := r.surface.AddMarker(coords[len(coords)-1], ports.MarkerEnd,
			endPopup(res.BestRoute.End))
		r.state.trackLocked(start)
		r.state.trackLocked(end)
	}

	for i, stop := range res.RequiredStops {
		i, stop := i, stop
		r.sched.Schedule(time.Duration(i+1)*requiredStopStep, func() {
			r.state.mu.Lock()
			defer r.state.mu.Unlock()
			if r.state.renderGen != gen {
				return
			}
			id := r.surface.AddMarker(stop.Coords, ports.MarkerRequiredStop,
				requiredStopPopup(i+1, stop))
			r.state.trackLocked(id)
		})
	}

	for i, station := range res.NearbyStations {
		station := station
		r.sched.Schedule(time.Duration(i+1)*nearbyStationStep, func() {
			r.state.mu.Lock()
			defer r.state.mu.Unlock()
			if r.state.renderGen != gen {
				return
			}
			id := r.surface.AddMarker(station.Coords, ports.MarkerNearbyStation,
				nearbyStationPopup(station))
			r.state.trackLocked(id)
		})
	}

	if len(coords) > 0 {
		bounds := domain.RouteBounds(coords)
		r.sched.Schedule(cameraFitDelay, func() {
			r.state.mu.Lock()
			defer r.state.mu.Unlock()
			if r.state.renderGen != gen {
				return
			}
			r.surface.FitBounds(bounds, boundsPadFraction)
		})
	}
}

func startPopup(name string, charge float64) string {
	if name == "" {
		name = "Start"
	}
	return fmt.Sprintf(
		`<div class="marker-popup"><h4>Start Point</h4><p><strong>Location:</strong> %s</p><p><strong>Initial Battery:</strong> %s%%</p></div>`,
		name, strconv.FormatFloat(charge, 'f', -1, 64))
}

func endPopup(name string) string {
	if name == "" {
		name = "Destination"
	}
	return fmt.Sprintf(
		`<div class="marker-popup"><h4>Destination</h4><p><strong>Location:</strong> %s</p></div>`,
		name)
}

func requiredStopPopup(index int, stop domain.RequiredStop) string {
	return fmt.Sprintf(
		`<div class="marker-popup"><h4>Required Charging Stop #%d</h4><p><strong>Distance since last charge:</strong> %.1f km</p><p><strong>Remaining charge:</strong> %.1f%%</p><p><strong>Estimated charging time:</strong> 30-45 minutes</p></div>`,
		index, stop.DistanceFromLast, stop.RemainingCharge)
}

func nearbyStationPopup(station domain.NearbyStation) string {
	return fmt.Sprintf(
		`<div class="marker-popup"><h4>%s</h4><p><strong>Distance from route:</strong> %.1f km</p><p><strong>Type:</strong> Nearby Charging Station</p></div>`,
		station.Name, station.Distance)
}
