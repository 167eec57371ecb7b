package system

import (
	"log"

	"github.com/jakecoffman/cp"

	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/ecs/component"
)

// EnemyAISystem runs the minion state machine once per tick per agent:
//
//	Idle -> Chasing    when any player exists (no aggro radius)
//	Chasing -> Attacking  when in attack range with clear line of sight
//	Attacking -> Chasing  when out of attack range
//
// Attack range is a single threshold: an agent hovering right at the
// boundary will flip state every tick. Known and accepted for now; the
// threshold lives in one tunable so a hysteresis band can be added without
// touching the transitions.
//
// If the target entity vanishes mid-state the agent's tick is skipped and
// its state kept; it never falls back to Idle on target loss.
type EnemyAISystem struct {
	fleeingWarned map[ecs.Entity]bool
}

func NewEnemyAISystem() *EnemyAISystem {
	return &EnemyAISystem{fleeingWarned: make(map[ecs.Entity]bool)}
}

func (s *EnemyAISystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	player, playerFound := ecs.First(w, component.PlayerTagComponent.Kind())

	ecs.ForEach3(w,
		component.EnemyComponent.Kind(),
		component.EnemyStateComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, enemy *component.Enemy, state *component.EnemyState, body *component.PhysicsBody) {
			if body.Body == nil {
				return
			}

			switch state.Phase {
			case component.EnemyIdle:
				body.Body.SetVelocity(0, 0)
				if playerFound && player.Valid() {
					state.Phase = component.EnemyChasing
					state.Target = player.Raw()
				}

			case component.EnemyFleeing:
				// reserved state with no behavior yet; flag it instead of
				// inventing one or crashing
				body.Body.SetVelocity(0, 0)
				if !s.fleeingWarned[e] {
					s.fleeingWarned[e] = true
					log.Printf("enemy_ai: entity %s in unhandled fleeing state", e)
				}

			case component.EnemyChasing:
				s.chase(w, pw, e, enemy, state, body)

			case component.EnemyAttacking:
				s.attack(w, pw, e, enemy, state, body)
			}
		})
}

// targetPosition resolves the chased entity's position. ok is false when
// the handle is unset or the entity is gone; the caller skips the tick.
func (s *EnemyAISystem) targetPosition(w *ecs.World, state *component.EnemyState) (cp.Vector, ecs.Entity, bool) {
	target := ecs.FromRaw(state.Target)
	if !target.Valid() || !ecs.IsAlive(w, target) {
		return cp.Vector{}, 0, false
	}
	if tb, ok := ecs.Get(w, target, component.PhysicsBodyComponent.Kind()); ok && tb.Body != nil {
		return tb.Body.Position(), target, true
	}
	if tt, ok := ecs.Get(w, target, component.TransformComponent.Kind()); ok {
		return cp.Vector{X: tt.X, Y: tt.Y}, target, true
	}
	return cp.Vector{}, 0, false
}

func (s *EnemyAISystem) chase(w *ecs.World, pw *ecs.PhysicsWorld, e ecs.Entity, enemy *component.Enemy, state *component.EnemyState, body *component.PhysicsBody) {
	targetPos, _, ok := s.targetPosition(w, state)
	if !ok {
		return
	}
	pos := body.Body.Position()
	dist := pos.Distance(targetPos)
	visible := pw.RaycastVisible(pos, targetPos)

	// keep the path fresh every tick, even right before an attack
	// transition; the next chase tick needs it
	w.Events().Push(ecs.Event{Type: ecs.EventPathRequest, Data: ecs.PathRequestEvent{
		Src:       pos,
		Dst:       targetPos,
		Requester: e,
	}})

	if dist < enemy.AttackDistance && visible {
		state.Phase = component.EnemyAttacking
		body.Body.SetVelocity(0, 0)
		s.face(w, e, enemy, targetPos.Sub(pos))
		return
	}

	var dir cp.Vector
	if visible && dist < enemy.VisibilityDistance {
		dir = targetPos.Sub(pos)
	} else if pf, ok := ecs.Get(w, e, component.PathFollowComponent.Kind()); ok && pf.HasNext {
		dir = pf.Next.Pos.Sub(pos)
	} else {
		body.Body.SetVelocity(0, 0)
		return
	}
	if dir.Length() == 0 {
		body.Body.SetVelocity(0, 0)
		return
	}
	dir = dir.Normalize()
	body.Body.SetVelocityVector(dir.Mult(enemy.MoveSpeed))
	s.face(w, e, enemy, dir)
}

func (s *EnemyAISystem) attack(w *ecs.World, pw *ecs.PhysicsWorld, e ecs.Entity, enemy *component.Enemy, state *component.EnemyState, body *component.PhysicsBody) {
	targetPos, _, ok := s.targetPosition(w, state)
	if !ok {
		return
	}
	pos := body.Body.Position()
	if pos.Distance(targetPos) > enemy.AttackDistance {
		state.Phase = component.EnemyChasing
		return
	}

	// hold position, track the target, and fire
	body.Body.SetVelocity(0, 0)
	aim := targetPos.Sub(pos)
	s.face(w, e, enemy, aim)
	if aim.Length() == 0 {
		return
	}
	w.Events().Push(ecs.Event{Type: ecs.EventShoot, Data: ecs.ShootEvent{
		Origin:    pos,
		Dir:       aim.Normalize(),
		Shooter:   e,
		FromEnemy: true,
	}})
}

func (s *EnemyAISystem) face(w *ecs.World, e ecs.Entity, enemy *component.Enemy, dir cp.Vector) {
	if dir.Length() == 0 {
		return
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.Angle = dir.ToAngle() + enemy.RotationOffset
	}
}
