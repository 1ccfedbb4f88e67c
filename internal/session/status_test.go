package session

import (
	"ev-route-navigator/internal/domain"
	"testing"
)

func TestBuildSummary(t *testing.T) {
	res := &domain.PlanResult{
		BatteryProfile: []float64{80, 65, 45, 20},
		RequiredStops: []domain.RequiredStop{
			{DistanceFromLast: 295.3, RemainingCharge: 12.4},
		},
	}

	s := BuildSummary(res)

	if s.ArrivalBattery != 20 {
		t.Errorf("ArrivalBattery = %v, want 20", s.ArrivalBattery)
	}
	if s.ArrivalTier != domain.TierLow {
		t.Errorf("ArrivalTier = %v, want low", s.ArrivalTier)
	}
	if s.ArrivalLabel() != "20.0%" {
		t.Errorf("ArrivalLabel = %q, want 20.0%%", s.ArrivalLabel())
	}
	if s.StopCount != 1 || !s.HasStops() {
		t.Errorf("StopCount = %d, want 1", s.StopCount)
	}

	row := s.Stops[0]
	if row.Label() != "Charging Stop #1" {
		t.Errorf("Label = %q", row.Label())
	}
	if row.Detail() != "Distance: 295.3 km • Remaining: 12.4%" {
		t.Errorf("Detail = %q", row.Detail())
	}
}

func TestBuildSummaryNoStops(t *testing.T) {
	res := &domain.PlanResult{BatteryProfile: []float64{90, 75}}
	s := BuildSummary(res)

	if s.HasStops() {
		t.Error("HasStops() = true for a route without stops")
	}
	if s.StopCount != 0 || len(s.Stops) != 0 {
		t.Errorf("StopCount = %d, Stops = %v", s.StopCount, s.Stops)
	}
	if s.ArrivalTier != domain.TierHigh {
		t.Errorf("ArrivalTier = %v, want high", s.ArrivalTier)
	}
}

func TestBuildSummaryEmptyProfile(t *testing.T) {
	s := BuildSummary(&domain.PlanResult{})

	if s.ArrivalBattery != 0 {
		t.Errorf("ArrivalBattery = %v, want 0", s.ArrivalBattery)
	}
	if s.ArrivalTier != domain.TierLow {
		t.Errorf("ArrivalTier = %v, want low", s.ArrivalTier)
	}
}
