package session

import (
	"ev-route-navigator/internal/adapters/mapview"
	"ev-route-navigator/internal/domain"
	"testing"
	"time"
)

func testPlanResult() *domain.PlanResult {
	coords := []domain.Coordinates{
		{Lat: 17.6868, Lon: 83.2185},
		{Lat: 17.6, Lon: 82.0},
		{Lat: 17.5, Lon: 80.5},
		{Lat: 17.45, Lon: 79.5},
		{Lat: 17.3850, Lon: 78.4867},
	}
	best := &domain.Route{Coords: coords, Start: "Visakhapatnam", End: "Hyderabad"}
	alt := &domain.Route{Coords: []domain.Coordinates{coords[0], {Lat: 18, Lon: 80}, coords[4]}}

	res := &domain.PlanResult{
		BestRoute:      best,
		AllRoutes:      []*domain.Route{best, alt},
		BatteryProfile: []float64{80, 65, 45, 20},
		RequiredStops: []domain.RequiredStop{
			{Coords: coords[1], DistanceFromLast: 200, RemainingCharge: 18},
			{Coords: coords[3], DistanceFromLast: 180, RemainingCharge: 14},
		},
		NearbyStations: []domain.NearbyStation{
			{Coords: coords[1], Name: "Station A", Distance: 1.2},
			{Coords: coords[2], Name: "Station B", Distance: 0.4},
			{Coords: coords[3], Name: "Station C", Distance: 2.0},
		},
	}
	res.Normalize()
	return res
}

func newTestRenderer() (*Renderer, *State, *mapview.MemorySurface, *ManualScheduler) {
	state := NewState()
	surface := mapview.NewMemorySurface()
	sched := NewManualScheduler()
	return NewRenderer(state, surface, sched), state, surface, sched
}

func TestRenderLayerCounts(t *testing.T) {
	r, state, surface, sched := newTestRenderer()
	res := testPlanResult()

	r.Render(res, 80)

	// Immediate layers: 4 segments, 1 alternative, 2 endpoint markers.
	// Stop and station markers appear on their staggered schedule.
	if got := surface.LayerCount(); got != 7 {
		t.Fatalf("immediate layer count = %d, want 7", got)
	}

	sched.Advance(time.Second)

	want := 7 + len(res.RequiredStops) + len(res.NearbyStations)
	if got := surface.LayerCount(); got != want {
		t.Errorf("final layer count = %d, want %d", got, want)
	}
	if got := state.LayerCount(); got != want {
		t.Errorf("tracked layer count = %d, want %d", got, want)
	}
}

func TestRenderSegmentColorsFollowProfile(t *testing.T) {
	r, _, surface, _ := newTestRenderer()

	r.Render(testPlanResult(), 80)

	wantColors := []string{"#059669", "#059669", "#f59e0b", "#dc2626"}

	var segments []mapview.Layer
	for _, l := range surface.Polylines() {
		if !l.Style.Dashed {
			segments = append(segments, l)
		}
	}
	if len(segments) != len(wantColors) {
		t.Fatalf("segment count = %d, want %d", len(segments), len(wantColors))
	}
	for i, seg := range segments {
		if seg.Style.Color != wantColors[i] {
			t.Errorf("segment %d color = %s, want %s", i, seg.Style.Color, wantColors[i])
		}
		if len(seg.Coords) != 2 {
			t.Errorf("segment %d has %d coords, want 2", i, len(seg.Coords))
		}
	}
}

func TestRenderSegmentReveal(t *testing.T) {
	r, _, surface, sched := newTestRenderer()

	r.Render(testPlanResult(), 80)

	for _, l := range surface.Polylines() {
		if !l.Style.Dashed && l.Opacity != 0 {
			t.Fatalf("segment visible before its reveal, opacity = %v", l.Opacity)
		}
	}

	// Segment i reveals at i*30ms; by 90ms all four are visible.
	sched.Advance(90 * time.Millisecond)

	for i, l := range surface.Polylines() {
		if l.Style.Dashed {
			continue
		}
		if l.Opacity != 0.9 {
			t.Errorf("segment %d opacity = %v after reveal, want 0.9", i, l.Opacity)
		}
	}
}

func TestRenderAlternativeExcludedByIdentity(t *testing.T) {
	r, _, surface, _ := newTestRenderer()

	r.Render(testPlanResult(), 80)

	dashed := 0
	for _, l := range surface.Polylines() {
		if l.Style.Dashed {
			dashed++
			if l.Style.Color != "#2563eb" {
				t.Errorf("alternative color = %s, want #2563eb", l.Style.Color)
			}
		}
	}
	// all_routes lists the best route too; it must not be drawn twice.
	if dashed != 1 {
		t.Errorf("dashed alternatives = %d, want 1", dashed)
	}
}

func TestRenderCameraFit(t *testing.T) {
	r, _, surface, sched := newTestRenderer()
	res := testPlanResult()

	r.Render(res, 80)

	if len(surface.Fits()) != 0 {
		t.Fatal("camera fit before its delay")
	}

	sched.Advance(cameraFitDelay)

	fits := surface.Fits()
	if len(fits) != 1 {
		t.Fatalf("fit count = %d, want 1", len(fits))
	}
	if fits[0].Pad != boundsPadFraction {
		t.Errorf("fit pad = %v, want %v", fits[0].Pad, boundsPadFraction)
	}
	if fits[0].Bounds != domain.RouteBounds(res.BestCoords()) {
		t.Errorf("fit bounds = %v, want route bounds", fits[0].Bounds)
	}
}

func TestClearRemovesEverything(t *testing.T) {
	r, state, surface, sched := newTestRenderer()

	r.Render(testPlanResult(), 80)
	sched.Advance(time.Second)

	before := surface.LayerCount()
	r.Clear()

	if got := surface.LayerCount(); got != 0 {
		t.Errorf("layers after Clear = %d, want 0", got)
	}
	if got := surface.RemovedCount(); got != before {
		t.Errorf("removed = %d, want %d", got, before)
	}
	if got := state.LayerCount(); got != 0 {
		t.Errorf("tracked after Clear = %d, want 0", got)
	}

	// Idempotent.
	r.Clear()
	if got := surface.RemovedCount(); got != before {
		t.Errorf("second Clear removed more layers: %d", got)
	}
}

func TestClearCancelsPendingAnimations(t *testing.T) {
	r, _, surface, sched := newTestRenderer()

	r.Render(testPlanResult(), 80)
	r.Clear()

	// Reveals, marker drops, and the camera fit were all pending.
	sched.Advance(time.Second)

	if got := surface.LayerCount(); got != 0 {
		t.Errorf("layers after clear+advance = %d, want 0", got)
	}
	if got := len(surface.Fits()); got != 0 {
		t.Errorf("camera fits after clear = %d, want 0", got)
	}
}

func TestRenderEmptyResult(t *testing.T) {
	r, _, surface, sched := newTestRenderer()

	res := &domain.PlanResult{}
	res.Normalize()
	r.Render(res, 80)
	sched.Advance(time.Second)

	if got := surface.LayerCount(); got != 0 {
		t.Errorf("layers for empty result = %d, want 0", got)
	}
	if got := len(surface.Fits()); got != 0 {
		t.Errorf("camera fits for empty result = %d, want 0", got)
	}
}

func TestRenderSinglePointRoute(t *testing.T) {
	r, _, surface, sched := newTestRenderer()

	res := &domain.PlanResult{
		BestRoute: &domain.Route{Coords: []domain.Coordinates{{Lat: 1, Lon: 2}}},
	}
	res.Normalize()
	r.Render(res, 80)
	sched.Advance(time.Second)

	// No segments, no endpoint markers, but the camera still fits.
	if got := surface.LayerCount(); got != 0 {
		t.Errorf("layers for single-point route = %d, want 0", got)
	}
	if got := len(surface.Fits()); got != 1 {
		t.Errorf("camera fits = %d, want 1", got)
	}
}
