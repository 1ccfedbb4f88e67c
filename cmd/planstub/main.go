package main

import (
	"encoding/json"
	"ev-route-navigator/internal/domain"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// planstub is a self-contained planning service for local development.
// It resolves locations against a small city table, synthesizes routes
// with derived battery profiles and charging stops, and speaks the same
// POST /plan_route contract as the production planner.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	addr := os.Getenv("PLANSTUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/plan_route", handlePlanRoute)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           loggingMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("planstub listening addr=%s", addr)
	log.Fatal(srv.ListenAndServe())
}

type planRequest struct {
	Start  string  `json:"start"`
	End    string  `json:"end"`
	Charge float64 `json:"charge"`
	Range  float64 `json:"range"`
}

func handlePlanRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req planRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	start, err := resolveLocation(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := resolveLocation(req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Range <= 0 {
		writeError(w, http.StatusBadRequest, "range must be positive")
		return
	}

	result := synthesizePlan(req, start, end)
	if result.BestRoute == nil {
		writeError(w, http.StatusOK, "No valid routes found between these locations")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Known cities. Free-form coordinates are also accepted as "lat,lon".
var cities = map[string]domain.Coordinates{
	"visakhapatnam": {Lat: 17.6868, Lon: 83.2185},
	"hyderabad":     {Lat: 17.3850, Lon: 78.4867},
	"vijayawada":    {Lat: 16.5062, Lon: 80.6480},
	"chennai":       {Lat: 13.0827, Lon: 80.2707},
	"bangalore":     {Lat: 12.9716, Lon: 77.5946},
	"bengaluru":     {Lat: 12.9716, Lon: 77.5946},
	"mumbai":        {Lat: 19.0760, Lon: 72.8777},
	"pune":          {Lat: 18.5204, Lon: 73.8567},
	"delhi":         {Lat: 28.7041, Lon: 77.1025},
	"kolkata":       {Lat: 22.5726, Lon: 88.3639},
	"nagpur":        {Lat: 21.1458, Lon: 79.0882},
	"tirupati":      {Lat: 13.6288, Lon: 79.4192},
}

func resolveLocation(raw string) (domain.Coordinates, error) {
	name := strings.TrimSpace(raw)
	if c, ok := cities[strings.ToLower(name)]; ok {
		return c, nil
	}

	if parts := strings.Split(name, ","); len(parts) == 2 {
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errLat == nil && errLon == nil {
			return domain.Coordinates{Lat: lat, Lon: lon}, nil
		}
	}

	return domain.Coordinates{}, fmt.Errorf("Could not resolve location: %s", name)
}

const (
	routePoints    = 24
	stopThreshold  = 15.0 // recharge before dropping below this
	stationCount   = 15
	avgSpeedKmh    = 60.0
	stationSpreadD = 0.05 // degrees of scatter around the route
)

// synthesizePlan builds a deterministic plan for the pair: a lightly
// jittered polyline between the endpoints, a battery profile from linear
// consumption over haversine distance, charging stops whenever the
// profile would cross the threshold, and stations scattered along the
// way.
func synthesizePlan(req planRequest, start, end domain.Coordinates) *domain.PlanResult {
	coords := interpolate(start, end, routePoints)

	totalKm := 0.0
	for i := 1; i < len(coords); i++ {
		totalKm += haversineKm(coords[i-1], coords[i])
	}
	if totalKm == 0 {
		return &domain.PlanResult{}
	}

	perKm := 100.0 / req.Range

	profile := make([]float64, 0, len(coords))
	stops := make([]domain.RequiredStop, 0)
	charge := req.Charge
	sinceStopKm := 0.0

	profile = append(profile, charge)
	for i := 1; i < len(coords); i++ {
		segKm := haversineKm(coords[i-1], coords[i])
		drain := segKm * perKm

		if charge-drain < stopThreshold {
			stops = append(stops, domain.RequiredStop{
				Coords:           coords[i-1],
				DistanceFromLast: sinceStopKm,
				RemainingCharge:  charge,
			})
			charge = 100
			sinceStopKm = 0
		}

		charge -= drain
		sinceStopKm += segKm
		profile = append(profile, round1(charge))
	}

	best := &domain.Route{
		Coords:          coords,
		Start:           strings.TrimSpace(req.Start),
		End:             strings.TrimSpace(req.End),
		DistanceMeters:  totalKm * 1000,
		DurationSeconds: totalKm / avgSpeedKmh * 3600,
	}

	alt := &domain.Route{
		Coords:          offsetRoute(coords, stationSpreadD),
		Start:           best.Start,
		End:             best.End,
		DistanceMeters:  best.DistanceMeters * 1.12,
		DurationSeconds: best.DurationSeconds * 1.12,
	}

	return &domain.PlanResult{
		BestRoute:      best,
		AllRoutes:      []*domain.Route{best, alt},
		BatteryProfile: profile,
		RequiredStops:  stops,
		NearbyStations: stations(coords),
	}
}

func interpolate(a, b domain.Coordinates, n int) []domain.Coordinates {
	coords := make([]domain.Coordinates, 0, n)
	for i := 0; i < n; i++ {
		f := float64(i) / float64(n-1)
		// Sine wobble keeps the stub route from looking like a ruler.
		wobble := 0.08 * math.Sin(f*math.Pi*3) * math.Min(f, 1-f)
		coords = append(coords, domain.Coordinates{
			Lat: a.Lat + (b.Lat-a.Lat)*f + wobble,
			Lon: a.Lon + (b.Lon-a.Lon)*f,
		})
	}
	return coords
}

func offsetRoute(coords []domain.Coordinates, d float64) []domain.Coordinates {
	out := make([]domain.Coordinates, len(coords))
	for i, c := range coords {
		f := float64(i) / float64(len(coords)-1)
		out[i] = domain.Coordinates{
			Lat: c.Lat + d*math.Sin(f*math.Pi),
			Lon: c.Lon,
		}
	}
	// Alternatives share the exact endpoints.
	out[0] = coords[0]
	out[len(out)-1] = coords[len(coords)-1]
	return out
}

func stations(coords []domain.Coordinates) []domain.NearbyStation {
	out := make([]domain.NearbyStation, 0, stationCount)
	for i := 0; i < stationCount; i++ {
		anchor := coords[(i*len(coords))/stationCount]
		angle := float64(i) * 2.4
		out = append(out, domain.NearbyStation{
			Coords: domain.Coordinates{
				Lat: anchor.Lat + stationSpreadD*math.Sin(angle),
				Lon: anchor.Lon + stationSpreadD*math.Cos(angle),
			},
			Name:     fmt.Sprintf("Charging Station %d", i+1),
			Distance: round1(math.Abs(stationSpreadD) * 111),
		})
	}
	return out
}

func haversineKm(a, b domain.Coordinates) float64 {
	const earthRadiusKm = 6371.0

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// Errors travel as {"error": ...} envelopes, matching what clients expect
// from the production planner.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		log.Printf(
			"method=%s path=%s status=%d bytes=%d dur=%dms",
			r.Method, r.URL.RequestURI(), sw.status, sw.bytes, time.Since(start).Milliseconds(),
		)
	})
}
