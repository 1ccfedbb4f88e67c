package ports

import (
	"ev-route-navigator/internal/domain"

	"github.com/paulmach/orb"
)

// LayerID is an opaque handle to a renderable object (line or marker)
// added to the map surface, tracked so it can later be removed as a unit.
type LayerID string

// Line styling understood by every surface implementation.
type PolylineStyle struct {
	Color   string
	Weight  int
	Opacity float64
	Dashed  bool
}

// MarkerKind selects the icon a surface draws for a marker.
type MarkerKind int

const (
	MarkerStart MarkerKind = iota
	MarkerEnd
	MarkerRequiredStop
	MarkerNearbyStation
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerStart:
		return "start"
	case MarkerEnd:
		return "end"
	case MarkerRequiredStop:
		return "required_stop"
	default:
		return "nearby_station"
	}
}

// MapSurface is the opaque interactive map widget the client draws on.
// Implementations own presentation details (tiles, icons, popups); the
// client only adds and removes layers and moves the camera.
type MapSurface interface {
	AddPolyline(coords []domain.Coordinates, style PolylineStyle) LayerID
	AddMarker(at domain.Coordinates, kind MarkerKind, popupHTML string) LayerID
	// SetOpacity restyles an existing polyline; unknown IDs are ignored.
	SetOpacity(id LayerID, opacity float64)
	Remove(id LayerID)
	// FitBounds moves the camera so the bound plus a fractional padding
	// margin is visible.
	FitBounds(b orb.Bound, padFraction float64)
	Fullscreen() bool
	SetFullscreen(on bool)
}
