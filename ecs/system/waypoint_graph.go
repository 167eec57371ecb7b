package system

import (
	"log"

	"github.com/jakecoffman/cp"

	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/nav"
	"github.com/soras/bossrun/prefabs"
)

// WaypointGraphSystem owns the navigation graph. The node grid is built
// up front; edge construction waits out a settle delay so static geometry
// is all in the space before the O(N^2) visibility pass, then runs once.
type WaypointGraphSystem struct {
	graph      *nav.Graph
	delayTicks uint64
	announced  bool
}

func NewWaypointGraphSystem(graph *nav.Graph, spec *prefabs.WaypointsSpec, arenaW, arenaH float64) *WaypointGraphSystem {
	s := &WaypointGraphSystem{graph: graph}
	if spec == nil {
		return s
	}
	s.delayTicks = uint64(spec.ConstructDelayTicks)
	graph.Build(arenaW, arenaH,
		cp.Vector{X: spec.Gap.X, Y: spec.Gap.Y},
		cp.Vector{X: spec.Scale.X, Y: spec.Scale.Y},
		cp.Vector{X: spec.Offset.X, Y: spec.Offset.Y},
	)
	return s
}

func (s *WaypointGraphSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.graph == nil {
		return
	}
	if w.Tick() < s.delayTicks {
		return
	}

	pw := w.PhysicsWorld()
	if pw == nil {
		// visibility backend not up yet; retry next tick
		return
	}

	if s.graph.ConstructEdges(pw.RaycastVisible) && !s.announced {
		s.announced = true
		log.Printf("nav: waypoint graph ready, %d nodes", s.graph.Len())
	}
}

// Graph exposes the navigation graph for debug rendering.
func (s *WaypointGraphSystem) Graph() *nav.Graph {
	if s == nil {
		return nil
	}
	return s.graph
}
