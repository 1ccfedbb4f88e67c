package main

import (
	"ev-route-navigator/internal/adapters/mapview"
	"ev-route-navigator/internal/adapters/planner"
	"ev-route-navigator/internal/domain"
	"ev-route-navigator/internal/ports"
	"ev-route-navigator/internal/session"
	"ev-route-navigator/internal/tui"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires the map surface and planner adapters behind ports, builds the
// session controller, and hands the terminal to the TUI.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	plannerURL := getEnv("PLANNER_URL", "http://localhost:8080")
	mapAddr := getEnv("MAP_ADDR", ":8090")

	surface := mapview.NewWebSurface()
	go func() {
		if err := mapview.Serve(mapAddr, surface); err != nil {
			log.Printf("map surface server stopped: %v", err)
		}
	}()

	var routePlanner ports.RoutePlanner
	if os.Getenv("DEMO_MODE") != "" {
		routePlanner = demoPlanner()
	} else {
		p, err := planner.NewHTTPPlanner(plannerURL)
		if err != nil {
			log.Fatal(err)
		}
		routePlanner = p
	}

	notifier := session.NewNotifier(session.NewTimerScheduler())
	ctrl := session.NewController(routePlanner, surface, session.NewTimerScheduler(), notifier)

	program := tea.NewProgram(tui.NewModel(ctrl, mapURL(mapAddr)), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatal(err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mapURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// demoPlanner serves one canned Visakhapatnam-Hyderabad plan so the
// navigator runs without a planning backend.
func demoPlanner() ports.RoutePlanner {
	start := domain.Coordinates{Lat: 17.6868, Lon: 83.2185}
	end := domain.Coordinates{Lat: 17.385, Lon: 78.4867}

	const points = 12
	coords := make([]domain.Coordinates, 0, points)
	profile := make([]float64, 0, points-1)
	for i := 0; i < points; i++ {
		f := float64(i) / float64(points-1)
		coords = append(coords, domain.Coordinates{
			Lat: start.Lat + (end.Lat-start.Lat)*f,
			Lon: start.Lon + (end.Lon-start.Lon)*f,
		})
	}
	for i := 0; i < points-1; i++ {
		profile = append(profile, 100-float64(i)*8)
	}

	best := &domain.Route{
		Coords:         coords,
		Start:          "Visakhapatnam",
		End:            "Hyderabad",
		DistanceMeters: 590000,
	}

	mock := planner.NewMockPlanner()
	mock.SetResult("Visakhapatnam", "Hyderabad", &domain.PlanResult{
		BestRoute:      best,
		AllRoutes:      []*domain.Route{best},
		BatteryProfile: profile,
		RequiredStops: []domain.RequiredStop{
			{Coords: coords[points/2], DistanceFromLast: 295.0, RemainingCharge: 12.0},
		},
		NearbyStations: []domain.NearbyStation{
			{Coords: coords[3], Name: "Charging Station 1", Distance: 1.2},
			{Coords: coords[8], Name: "Charging Station 2", Distance: 0.8},
		},
	})
	return mock
}
