package planner

import (
	"context"
	"ev-route-navigator/internal/domain"
	"ev-route-navigator/internal/ports"
)

// MockPlanner serves canned results keyed by (start, end), for tests and
// for running the navigator without a planning backend.
type MockPlanner struct {
	results map[string]*domain.PlanResult
	errs    map[string]error

	// PlanFunc, when set, overrides the canned lookup entirely.
	PlanFunc func(ctx context.Context, req ports.PlanRequest) (*domain.PlanResult, error)
}

func NewMockPlanner() *MockPlanner {
	return &MockPlanner{
		results: make(map[string]*domain.PlanResult),
		errs:    make(map[string]error),
	}
}

func key(start, end string) string { return start + "|" + end }

func (m *MockPlanner) SetResult(start, end string, res *domain.PlanResult) {
	res.Normalize()
	m.results[key(start, end)] = res
}

func (m *MockPlanner) SetError(start, end string, err error) {
	m.errs[key(start, end)] = err
}

func (m *MockPlanner) Plan(ctx context.Context, req ports.PlanRequest) (*domain.PlanResult, error) {
	if m.PlanFunc != nil {
		return m.PlanFunc(ctx, req)
	}

	k := key(req.Start, req.End)
	if err, ok := m.errs[k]; ok {
		return nil, err
	}
	if res, ok := m.results[k]; ok {
		return res, nil
	}

	return nil, &ports.RejectedError{Message: "No valid routes"}
}
