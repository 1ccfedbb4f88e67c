package session

import (
	"errors"
	"ev-route-navigator/internal/ports"
	"strconv"
	"strings"
)

var (
	ErrMissingLocation = errors.New("start and destination are required")
	ErrInvalidCharge   = errors.New("charge must be between 0 and 100")
	ErrInvalidRange    = errors.New("range must be between 50 and 1000")
)

// FormFields are the raw input values as the user typed them.
type FormFields struct {
	Start  string
	End    string
	Charge string
	Range  string
}

// Validate checks fields in order with first-failure-wins semantics and
// builds the immutable request for a valid submission.
func Validate(f FormFields) (ports.PlanRequest, error) {
	start := strings.TrimSpace(f.Start)
	end := strings.TrimSpace(f.End)
	if start == "" || end == "" {
		return ports.PlanRequest{}, ErrMissingLocation
	}

	charge, err := strconv.ParseFloat(strings.TrimSpace(f.Charge), 64)
	if err != nil || charge < 0 || charge > 100 {
		return ports.PlanRequest{}, ErrInvalidCharge
	}

	rng, err := strconv.ParseFloat(strings.TrimSpace(f.Range), 64)
	if err != nil || rng < 50 || rng > 1000 {
		return ports.PlanRequest{}, ErrInvalidRange
	}

	return ports.PlanRequest{
		Start:  start,
		End:    end,
		Charge: charge,
		Range:  rng,
	}, nil
}

// ValidationMessage maps a validation error to its user-facing text.
func ValidationMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingLocation):
		return "Please enter both start and destination locations."
	case errors.Is(err, ErrInvalidCharge):
		return "Battery level must be between 0 and 100%."
	case errors.Is(err, ErrInvalidRange):
		return "Range must be between 50 and 1000 km."
	default:
		return err.Error()
	}
}
