package session

import (
	"ev-route-navigator/internal/domain"
	"fmt"
)

// StopRow is one required-stop line in the status panel, in original
// list order.
type StopRow struct {
	Index            int
	DistanceFromLast float64
	RemainingCharge  float64
}

func (r StopRow) Label() string {
	return fmt.Sprintf("Charging Stop #%d", r.Index)
}

func (r StopRow) Detail() string {
	return fmt.Sprintf("Distance: %.1f km • Remaining: %.1f%%", r.DistanceFromLast, r.RemainingCharge)
}

// Summary is the derived status-panel view of a plan result.
type Summary struct {
	ArrivalBattery float64
	ArrivalTier    domain.BatteryTier
	StopCount      int
	Stops          []StopRow
}

// BuildSummary derives the status panel from the same result the render
// pipeline consumes.
func BuildSummary(res *domain.PlanResult) *Summary {
	arrival := domain.ArrivalBattery(res.BatteryProfile)

	stops := make([]StopRow, 0, len(res.RequiredStops))
	for i, s := range res.RequiredStops {
		stops = append(stops, StopRow{
			Index:            i + 1,
			DistanceFromLast: s.DistanceFromLast,
			RemainingCharge:  s.RemainingCharge,
		})
	}

	return &Summary{
		ArrivalBattery: arrival,
		ArrivalTier:    domain.TierFor(arrival),
		StopCount:      len(res.RequiredStops),
		Stops:          stops,
	}
}

func (s *Summary) ArrivalLabel() string {
	return fmt.Sprintf("%.1f%%", s.ArrivalBattery)
}

func (s *Summary) HasStops() bool { return s.StopCount > 0 }

// NoStopsMessage is the explicit affordance shown instead of an empty list.
const NoStopsMessage = "No charging stops required for this route!"
