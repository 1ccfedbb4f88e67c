package ports

import (
	"context"
	"ev-route-navigator/internal/domain"
)

// A validated route request, constructed fresh per submission and
// immutable once sent.
type PlanRequest struct {
	Start  string  `json:"start"`
	End    string  `json:"end"`
	Charge float64 `json:"charge"`
	Range  float64 `json:"range"`
}

// Contract for obtaining a plan from the external planning service.
type RoutePlanner interface {
	// Plan submits one request and returns the normalized result.
	Plan(ctx context.Context, req PlanRequest) (*domain.PlanResult, error)
}
