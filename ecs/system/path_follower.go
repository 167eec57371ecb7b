package system

import (
	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/ecs/component"
)

// PathFollowerSystem re-evaluates each pursuing agent's look-ahead
// waypoint every tick against its stored path. When the nearest path node
// is the destination end the agent has arrived and the look-ahead is
// cleared, leaving direct pursuit to the AI.
type PathFollowerSystem struct{}

func NewPathFollowerSystem() *PathFollowerSystem {
	return &PathFollowerSystem{}
}

func (s *PathFollowerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w,
		component.PathFollowComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, pf *component.PathFollow, body *component.PhysicsBody) {
			if body.Body == nil || len(pf.Path) == 0 {
				return
			}
			pos := body.Body.Position()

			next, ok := pf.Path.NextWaypoint(pos)
			if !ok {
				pf.HasNext = false
				return
			}
			if pf.HasNext && pf.Next.ID == next.ID {
				return
			}
			pf.Next = next
			pf.HasNext = true
			w.Events().Push(ecs.Event{Type: ecs.EventNextWaypoint, Data: ecs.NextWaypointEvent{
				Agent: e,
				Pos:   next.Pos,
			}})
		})
}
