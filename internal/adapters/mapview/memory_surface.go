package mapview

import (
	"ev-route-navigator/internal/domain"
	"ev-route-navigator/internal/ports"
	"sync"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Layer is one renderable recorded by the in-memory surface.
type Layer struct {
	ID      ports.LayerID
	Coords  []domain.Coordinates
	Style   ports.PolylineStyle
	Marker  bool
	Kind    ports.MarkerKind
	Popup   string
	Opacity float64
}

// FitCall records one camera fit.
type FitCall struct {
	Bounds orb.Bound
	Pad    float64
}

// MemorySurface implements MapSurface by recording every operation.
// Tests assert on live layers, opacities, and camera fits without a
// browser in the loop.
type MemorySurface struct {
	mu         sync.Mutex
	layers     map[ports.LayerID]*Layer
	order      []ports.LayerID
	fits       []FitCall
	fullscreen bool
	removed    int
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{layers: make(map[ports.LayerID]*Layer)}
}

func (m *MemorySurface) AddPolyline(coords []domain.Coordinates, style ports.PolylineStyle) ports.LayerID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := ports.LayerID(uuid.NewString())
	m.layers[id] = &Layer{ID: id, Coords: coords, Style: style, Opacity: style.Opacity}
	m.order = append(m.order, id)
	return id
}

func (m *MemorySurface) AddMarker(at domain.Coordinates, kind ports.MarkerKind, popupHTML string) ports.LayerID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := ports.LayerID(uuid.NewString())
	m.layers[id] = &Layer{
		ID:     id,
		Coords: []domain.Coordinates{at},
		Marker: true,
		Kind:   kind,
		Popup:  popupHTML,
	}
	m.order = append(m.order, id)
	return id
}

func (m *MemorySurface) SetOpacity(id ports.LayerID, opacity float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.layers[id]; ok {
		l.Opacity = opacity
	}
}

func (m *MemorySurface) Remove(id ports.LayerID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.layers[id]; !ok {
		return
	}
	delete(m.layers, id)
	m.removed++
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *MemorySurface) FitBounds(b orb.Bound, padFraction float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fits = append(m.fits, FitCall{Bounds: b, Pad: padFraction})
}

func (m *MemorySurface) Fullscreen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fullscreen
}

func (m *MemorySurface) SetFullscreen(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fullscreen = on
}

// LayerCount reports layers currently on the surface.
func (m *MemorySurface) LayerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.layers)
}

// RemovedCount reports how many layers have been removed over time.
func (m *MemorySurface) RemovedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removed
}

// Layers returns copies of the live layers in insertion order.
func (m *MemorySurface) Layers() []Layer {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Layer, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.layers[id])
	}
	return out
}

// Polylines returns the live non-marker layers in insertion order.
func (m *MemorySurface) Polylines() []Layer {
	var out []Layer
	for _, l := range m.Layers() {
		if !l.Marker {
			out = append(out, l)
		}
	}
	return out
}

// Markers returns the live marker layers in insertion order.
func (m *MemorySurface) Markers() []Layer {
	var out []Layer
	for _, l := range m.Layers() {
		if l.Marker {
			out = append(out, l)
		}
	}
	return out
}

// Fits returns the recorded camera fits.
func (m *MemorySurface) Fits() []FitCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]FitCall(nil), m.fits...)
}
