package session

import (
	"ev-route-navigator/internal/domain"
	"ev-route-navigator/internal/ports"
	"sync"
)

// SidebarState is the explicit two-state sidebar toggle.
type SidebarState int

const (
	SidebarExpanded SidebarState = iota
	SidebarCollapsed
)

func (s SidebarState) Toggled() SidebarState {
	if s == SidebarExpanded {
		return SidebarCollapsed
	}
	return SidebarExpanded
}

// LegendState is the explicit two-state legend toggle.
type LegendState int

const (
	LegendExpanded LegendState = iota
	LegendCollapsed
)

func (l LegendState) Toggled() LegendState {
	if l == LegendExpanded {
		return LegendCollapsed
	}
	return LegendExpanded
}

// State is the single active client session: the last successful plan,
// the set of layer handles currently on the map surface, derived panel
// data, and the independent layout toggles.
//
// currentRoute and the layer registry are only ever mutated together
// under mu, so they always describe the same route or are both empty.
// renderGen versions render passes: a scheduled animation callback whose
// generation is stale is a no-op.
type State struct {
	mu sync.Mutex

	currentRoute *domain.PlanResult
	layerOrder   []ports.LayerID
	layerSet     map[ports.LayerID]struct{}
	renderGen    uint64

	summary *Summary

	busy bool
	seq  uint64

	sidebar SidebarState
	legend  LegendState
}

func NewState() *State {
	return &State{layerSet: make(map[ports.LayerID]struct{})}
}

// trackLocked registers a layer handle so teardown removes it as a unit.
func (s *State) trackLocked(id ports.LayerID) {
	if _, ok := s.layerSet[id]; ok {
		return
	}
	s.layerSet[id] = struct{}{}
	s.layerOrder = append(s.layerOrder, id)
}

func (s *State) trackedLocked(id ports.LayerID) bool {
	_, ok := s.layerSet[id]
	return ok
}

// dropLayersLocked empties the registry and returns the handles that were
// tracked, in insertion order.
func (s *State) dropLayersLocked() []ports.LayerID {
	ids := s.layerOrder
	s.layerOrder = nil
	s.layerSet = make(map[ports.LayerID]struct{})
	return ids
}

func (s *State) LayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.layerOrder)
}

func (s *State) CurrentRoute() *domain.PlanResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentRoute
}
