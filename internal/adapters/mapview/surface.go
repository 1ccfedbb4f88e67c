package mapview

import (
	"encoding/json"
	"ev-route-navigator/internal/domain"
	"ev-route-navigator/internal/ports"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// layerOp is one operation pushed to connected map pages. Geometry rides
// as GeoJSON so the page hands it straight to Leaflet.
type layerOp struct {
	Op      string            `json:"op"`
	ID      string            `json:"id,omitempty"`
	Line    *geojson.Geometry `json:"line,omitempty"`
	Color   string            `json:"color,omitempty"`
	Weight  int               `json:"weight,omitempty"`
	Opacity float64           `json:"opacity"`
	Dashed  bool              `json:"dashed,omitempty"`
	Kind    string            `json:"kind,omitempty"`
	Lat     float64           `json:"lat,omitempty"`
	Lon     float64           `json:"lon,omitempty"`
	Popup   string            `json:"popup,omitempty"`
	Bounds  [2][2]float64     `json:"bounds,omitempty"`
	On      bool              `json:"on,omitempty"`
}

// WebSurface implements MapSurface by broadcasting layer operations to a
// Leaflet page over websocket. A journal of live layers is replayed to
// every page that connects, so reloading the browser reproduces the
// current route.
type WebSurface struct {
	mu         sync.Mutex
	clients    map[*websocket.Conn]struct{}
	journal    map[string]layerOp
	order      []string
	fullscreen bool
	lastFit    *layerOp
}

func NewWebSurface() *WebSurface {
	return &WebSurface{
		clients: make(map[*websocket.Conn]struct{}),
		journal: make(map[string]layerOp),
	}
}

func (w *WebSurface) AddPolyline(coords []domain.Coordinates, style ports.PolylineStyle) ports.LayerID {
	line := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		line = append(line, c.Point())
	}

	op := layerOp{
		Op:      "add_polyline",
		ID:      uuid.NewString(),
		Line:    geojson.NewGeometry(line),
		Color:   style.Color,
		Weight:  style.Weight,
		Opacity: style.Opacity,
		Dashed:  style.Dashed,
	}

	w.mu.Lock()
	w.journal[op.ID] = op
	w.order = append(w.order, op.ID)
	w.broadcastLocked(op)
	w.mu.Unlock()

	return ports.LayerID(op.ID)
}

func (w *WebSurface) AddMarker(at domain.Coordinates, kind ports.MarkerKind, popupHTML string) ports.LayerID {
	op := layerOp{
		Op:    "add_marker",
		ID:    uuid.NewString(),
		Kind:  kind.String(),
		Lat:   at.Lat,
		Lon:   at.Lon,
		Popup: popupHTML,
	}

	w.mu.Lock()
	w.journal[op.ID] = op
	w.order = append(w.order, op.ID)
	w.broadcastLocked(op)
	w.mu.Unlock()

	return ports.LayerID(op.ID)
}

func (w *WebSurface) SetOpacity(id ports.LayerID, opacity float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	op, ok := w.journal[string(id)]
	if !ok {
		return
	}
	op.Opacity = opacity
	w.journal[string(id)] = op

	w.broadcastLocked(layerOp{Op: "set_opacity", ID: string(id), Opacity: opacity})
}

func (w *WebSurface) Remove(id ports.LayerID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.journal[string(id)]; !ok {
		return
	}
	delete(w.journal, string(id))
	for i, v := range w.order {
		if v == string(id) {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}

	w.broadcastLocked(layerOp{Op: "remove", ID: string(id)})
}

func (w *WebSurface) FitBounds(b orb.Bound, padFraction float64) {
	padded := domain.PadBound(b, padFraction)
	op := layerOp{
		Op: "fit_bounds",
		Bounds: [2][2]float64{
			{padded.Min[1], padded.Min[0]}, // south-west as [lat, lon]
			{padded.Max[1], padded.Max[0]}, // north-east as [lat, lon]
		},
	}

	w.mu.Lock()
	w.lastFit = &op
	w.broadcastLocked(op)
	w.mu.Unlock()
}

func (w *WebSurface) Fullscreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

func (w *WebSurface) SetFullscreen(on bool) {
	w.mu.Lock()
	w.fullscreen = on
	w.broadcastLocked(layerOp{Op: "set_fullscreen", On: on})
	w.mu.Unlock()
}

// LayerCount reports layers currently journaled.
func (w *WebSurface) LayerCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.order)
}

func (w *WebSurface) broadcastLocked(op layerOp) {
	payload, err := json.Marshal(op)
	if err != nil {
		log.Printf("mapview: marshal op=%s: %v", op.Op, err)
		return
	}

	for conn := range w.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("mapview: write failed, dropping client: %v", err)
			conn.Close()
			delete(w.clients, conn)
		}
	}
}

// attach registers a page connection and replays the current layers.
func (w *WebSurface) attach(conn *websocket.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.clients[conn] = struct{}{}
	for _, id := range w.order {
		op := w.journal[id]
		payload, err := json.Marshal(op)
		if err != nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(w.clients, conn)
			return
		}
	}
	if w.lastFit != nil {
		if payload, err := json.Marshal(*w.lastFit); err == nil {
			_ = conn.WriteMessage(websocket.TextMessage, payload)
		}
	}
}

func (w *WebSurface) detach(conn *websocket.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.clients[conn]; ok {
		conn.Close()
		delete(w.clients, conn)
	}
}
