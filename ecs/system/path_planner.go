package system

import (
	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/ecs/component"
	"github.com/soras/bossrun/nav"
)

// PathPlannerSystem fulfills path requests queued by the AI. Each request
// runs a full Dijkstra over the graph and replaces the requester's stored
// path. Failed requests (empty graph, isolated source, unreachable
// destination) are dropped silently; the agent re-requests next tick.
type PathPlannerSystem struct {
	planner *nav.Planner
}

func NewPathPlannerSystem(planner *nav.Planner) *PathPlannerSystem {
	return &PathPlannerSystem{planner: planner}
}

func (s *PathPlannerSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.planner == nil {
		return
	}

	// a newer request from the same agent supersedes the older one
	latest := make(map[ecs.Entity]ecs.PathRequestEvent)
	var order []ecs.Entity
	for _, evt := range w.Events().DrainType(ecs.EventPathRequest) {
		req, ok := evt.Data.(ecs.PathRequestEvent)
		if !ok || !req.Requester.Valid() {
			continue
		}
		if _, seen := latest[req.Requester]; !seen {
			order = append(order, req.Requester)
		}
		latest[req.Requester] = req
	}

	for _, requester := range order {
		req := latest[requester]
		if !ecs.IsAlive(w, requester) {
			continue
		}
		path, ok := s.planner.ComputePath(req.Src, req.Dst)
		if !ok {
			continue
		}
		if pf, ok := ecs.Get(w, requester, component.PathFollowComponent.Kind()); ok {
			pf.Path = path
			continue
		}
		_ = ecs.Add(w, requester, component.PathFollowComponent.Kind(), &component.PathFollow{Path: path})
	}
}

// Planner exposes the planner for debug rendering.
func (s *PathPlannerSystem) Planner() *nav.Planner {
	if s == nil {
		return nil
	}
	return s.planner
}
