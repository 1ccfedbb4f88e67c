package mapview

import (
	"encoding/json"
	"ev-route-navigator/internal/domain"
	"ev-route-navigator/internal/ports"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func readOp(t *testing.T, conn *websocket.Conn) layerOp {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read message: %v", err)
	}

	var op layerOp
	if err := json.Unmarshal(payload, &op); err != nil {
		t.Fatalf("decode op: %v", err)
	}
	return op
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestJournalReplayedOnConnect(t *testing.T) {
	surface := NewWebSurface()
	srv := httptest.NewServer(NewHandler(surface))
	defer srv.Close()

	lineID := surface.AddPolyline(
		[]domain.Coordinates{{Lat: 17.68, Lon: 83.21}, {Lat: 17.38, Lon: 78.48}},
		ports.PolylineStyle{Color: "#059669", Weight: 6, Opacity: 0.9},
	)
	surface.AddMarker(domain.Coordinates{Lat: 17.68, Lon: 83.21}, ports.MarkerStart, "<b>start</b>")
	surface.FitBounds(domain.RouteBounds([]domain.Coordinates{
		{Lat: 17.38, Lon: 78.48}, {Lat: 17.68, Lon: 83.21},
	}), 0.10)

	conn := dial(t, srv)

	first := readOp(t, conn)
	if first.Op != "add_polyline" || first.ID != string(lineID) {
		t.Errorf("first replayed op = %+v, want the polyline", first)
	}
	if first.Color != "#059669" || first.Weight != 6 || first.Opacity != 0.9 {
		t.Errorf("polyline style not replayed: %+v", first)
	}

	second := readOp(t, conn)
	if second.Op != "add_marker" || second.Kind != "start" || second.Popup != "<b>start</b>" {
		t.Errorf("second replayed op = %+v, want the marker", second)
	}

	third := readOp(t, conn)
	if third.Op != "fit_bounds" {
		t.Errorf("third replayed op = %+v, want the camera fit", third)
	}
	// Corners travel as [lat, lon] with the 10% pad applied.
	if third.Bounds[0][0] >= 17.38 || third.Bounds[1][0] <= 17.68 {
		t.Errorf("fit bounds not padded: %v", third.Bounds)
	}
}

func TestLiveBroadcast(t *testing.T) {
	surface := NewWebSurface()
	srv := httptest.NewServer(NewHandler(surface))
	defer srv.Close()

	conn := dial(t, srv)

	id := surface.AddMarker(domain.Coordinates{Lat: 1, Lon: 2}, ports.MarkerNearbyStation, "p")
	op := readOp(t, conn)
	if op.Op != "add_marker" || op.ID != string(id) || op.Kind != "nearby_station" {
		t.Errorf("broadcast op = %+v", op)
	}

	surface.SetOpacity(id, 0.9)
	op = readOp(t, conn)
	if op.Op != "set_opacity" || op.Opacity != 0.9 {
		t.Errorf("broadcast op = %+v", op)
	}

	surface.Remove(id)
	op = readOp(t, conn)
	if op.Op != "remove" || op.ID != string(id) {
		t.Errorf("broadcast op = %+v", op)
	}
}

func TestRemovedLayersNotReplayed(t *testing.T) {
	surface := NewWebSurface()
	srv := httptest.NewServer(NewHandler(surface))
	defer srv.Close()

	removed := surface.AddMarker(domain.Coordinates{Lat: 1, Lon: 2}, ports.MarkerRequiredStop, "")
	kept := surface.AddMarker(domain.Coordinates{Lat: 3, Lon: 4}, ports.MarkerEnd, "")
	surface.Remove(removed)

	if surface.LayerCount() != 1 {
		t.Fatalf("journal size = %d, want 1", surface.LayerCount())
	}

	conn := dial(t, srv)
	op := readOp(t, conn)
	if op.ID != string(kept) {
		t.Errorf("replayed op = %+v, want only the kept marker", op)
	}
}

func TestIndexServesMapPage(t *testing.T) {
	srv := httptest.NewServer(NewHandler(NewWebSurface()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}
