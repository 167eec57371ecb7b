package system

import (
	"github.com/soras/bossrun/common"
	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/ecs/component"
)

// PhysicsSystem builds bodies for entities that declare a collider, steps
// the space, and writes body positions back to transforms for rendering.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach2(w,
		component.TransformComponent.Kind(),
		component.ColliderComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, col *component.Collider) {
			if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
				return
			}
			body := pw.EnsureBody(e, t, col, nil)
			if body == nil || body.Body == nil {
				return
			}
			_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
		})

	pw.Step(common.Dt)

	ecs.ForEach2(w,
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(_ ecs.Entity, t *component.Transform, body *component.PhysicsBody) {
			if body.Body == nil {
				return
			}
			pos := body.Body.Position()
			t.X = pos.X
			t.Y = pos.Y
		})
}
