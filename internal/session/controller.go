package session

import (
	"context"
	"errors"
	"ev-route-navigator/internal/domain"
	"ev-route-navigator/internal/platform/obs"
	"ev-route-navigator/internal/ports"
	"log"
)

// ErrBusy reports a submission attempted while another is in flight.
// The UI disables the submit control during a request, so hitting this
// means a caller bypassed the busy indicator.
var ErrBusy = errors.New("a planning request is already in flight")

// Controller owns the request lifecycle and every session-state mutation.
// The render pipeline and status panel consume the same plan result it
// stores, keeping the map and the panel consistent by construction.
type Controller struct {
	state    *State
	planner  ports.RoutePlanner
	surface  ports.MapSurface
	renderer *Renderer
	notifier *Notifier
}

func NewController(
	planner ports.RoutePlanner,
	surface ports.MapSurface,
	renderSched Scheduler,
	notifier *Notifier,
) *Controller {
	state := NewState()
	return &Controller{
		state:    state,
		planner:  planner,
		surface:  surface,
		renderer: NewRenderer(state, surface, renderSched),
		notifier: notifier,
	}
}

func (c *Controller) Notifier() *Notifier { return c.notifier }

// Submit validates the form, issues one planning request, and on success
// replaces the session route, rebuilds the map layers, and refreshes the
// status panel. Busy state is released on every exit path. A response
// arriving after Reset or a newer submission is dropped without touching
// state.
func (c *Controller) Submit(ctx context.Context, fields FormFields) error {
	req, err := Validate(fields)
	if err != nil {
		c.notifier.Notify(ValidationMessage(err), KindError)
		return err
	}

	seq, ok := c.beginSubmit()
	if !ok {
		return ErrBusy
	}
	defer c.endSubmit()

	ctx = obs.WithSubmitSeq(ctx, seq)

	done := obs.Time(ctx, "session.Submit")
	res, planErr := c.planner.Plan(ctx, req)
	done(&planErr)

	if planErr != nil {
		c.notifyPlanError(planErr)
		return planErr
	}

	c.state.mu.Lock()
	if c.state.seq != seq {
		// Stale: the session moved on while the request was in flight.
		c.state.mu.Unlock()
		log.Printf("seq=%d op=session.Submit stale response dropped", seq)
		return nil
	}
	c.renderer.clearLocked()
	c.state.currentRoute = res
	c.renderer.renderLocked(res, req.Charge)
	c.state.summary = BuildSummary(res)
	c.state.mu.Unlock()

	c.notifier.Notify("Route calculated successfully!", KindSuccess)
	return nil
}

func (c *Controller) notifyPlanError(err error) {
	var rej *ports.RejectedError
	if errors.As(err, &rej) {
		c.notifier.Notify("Error: "+rej.Message, KindError)
		return
	}

	var transport *ports.TransportError
	if errors.As(err, &transport) {
		c.notifier.Notify("Error fetching route: "+transport.Err.Error(), KindError)
		return
	}
	c.notifier.Notify("Error fetching route: "+err.Error(), KindError)
}

func (c *Controller) beginSubmit() (uint64, bool) {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	if c.state.busy {
		return 0, false
	}
	c.state.busy = true
	c.state.seq++
	return c.state.seq, true
}

func (c *Controller) endSubmit() {
	c.state.mu.Lock()
	c.state.busy = false
	c.state.mu.Unlock()
}

func (c *Controller) Busy() bool {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	return c.state.busy
}

// Reset tears down the rendered route, drops the session route and status
// panel, and bumps the sequence so an in-flight response cannot revive
// the cleared state.
func (c *Controller) Reset() {
	c.state.mu.Lock()
	c.renderer.clearLocked()
	c.state.currentRoute = nil
	c.state.summary = nil
	c.state.seq++
	c.state.mu.Unlock()

	c.notifier.Notify("Route cleared", KindInfo)
}

// Clear is the render-pipeline teardown without the session reset.
func (c *Controller) Clear() { c.renderer.Clear() }

// Summary returns the status panel data, or nil while the panel is hidden.
func (c *Controller) Summary() *Summary {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	return c.state.summary
}

func (c *Controller) HasRoute() bool {
	return c.state.CurrentRoute() != nil
}

func (c *Controller) LayerCount() int { return c.state.LayerCount() }

// CenterOnRoute re-fits the camera to the current route.
func (c *Controller) CenterOnRoute() {
	c.state.mu.Lock()
	route := c.state.currentRoute
	c.state.mu.Unlock()

	if route == nil {
		c.notifier.Notify("No route to center on", KindInfo)
		return
	}

	c.surface.FitBounds(domain.RouteBounds(route.BestCoords()), boundsPadFraction)
	c.notifier.Notify("Map centered on route", KindInfo)
}

func (c *Controller) ToggleSidebar() SidebarState {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	c.state.sidebar = c.state.sidebar.Toggled()
	return c.state.sidebar
}

func (c *Controller) ToggleLegend() LegendState {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	c.state.legend = c.state.legend.Toggled()
	return c.state.legend
}

func (c *Controller) SidebarState() SidebarState {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	return c.state.sidebar
}

func (c *Controller) LegendState() LegendState {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	return c.state.legend
}

// ToggleFullscreen queries and flips the surface's fullscreen state,
// returning the resulting state for the control affordance.
func (c *Controller) ToggleFullscreen() bool {
	on := !c.surface.Fullscreen()
	c.surface.SetFullscreen(on)
	return on
}
