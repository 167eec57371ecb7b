package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/ecs/component"
)

func newActorWorld(t *testing.T) (*ecs.World, *ecs.PhysicsWorld) {
	t.Helper()
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()
	w.SetPhysicsWorld(pw)
	return w, pw
}

func spawnTestPlayer(t *testing.T, w *ecs.World, pw *ecs.PhysicsWorld, pos cp.Vector) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	transform := &component.Transform{X: pos.X, Y: pos.Y}
	collider := &component.Collider{Width: 12, Height: 10, Kind: component.ColliderPlayer}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), transform); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		t.Fatal(err)
	}
	body := pw.EnsureBody(e, transform, collider, nil)
	if body == nil || body.Body == nil {
		t.Fatal("player body not built")
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		t.Fatal(err)
	}
	return e
}

func spawnTestEnemy(t *testing.T, w *ecs.World, pw *ecs.PhysicsWorld, pos cp.Vector) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	transform := &component.Transform{X: pos.X, Y: pos.Y}
	collider := &component.Collider{Width: 24, Height: 24, Kind: component.ColliderEnemy}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), transform); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{
		MoveSpeed:          150,
		AttackDistance:     180,
		VisibilityDistance: 320,
	}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.EnemyStateComponent.Kind(), &component.EnemyState{Phase: component.EnemyIdle}); err != nil {
		t.Fatal(err)
	}
	body := pw.EnsureBody(e, transform, collider, nil)
	if body == nil || body.Body == nil {
		t.Fatal("enemy body not built")
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		t.Fatal(err)
	}
	return e
}

func enemyPhase(t *testing.T, w *ecs.World, e ecs.Entity) component.EnemyPhase {
	t.Helper()
	state, ok := ecs.Get(w, e, component.EnemyStateComponent.Kind())
	if !ok {
		t.Fatal("enemy state missing")
	}
	return state.Phase
}

func moveBody(t *testing.T, w *ecs.World, e ecs.Entity, pos cp.Vector) {
	t.Helper()
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil {
		t.Fatal("body missing")
	}
	body.Body.SetPosition(pos)
}

func TestEnemyIdleToChasingWhenPlayerExists(t *testing.T) {
	w, pw := newActorWorld(t)
	player := spawnTestPlayer(t, w, pw, cp.Vector{})
	enemy := spawnTestEnemy(t, w, pw, cp.Vector{X: 500, Y: 0})

	sys := NewEnemyAISystem()
	sys.Update(w)

	if got := enemyPhase(t, w, enemy); got != component.EnemyChasing {
		t.Fatalf("expected chasing, got %s", got)
	}
	state, _ := ecs.Get(w, enemy, component.EnemyStateComponent.Kind())
	if state.Target != player.Raw() {
		t.Fatalf("expected target to be the player")
	}
}

func TestEnemyChasingEmitsPathRequests(t *testing.T) {
	w, pw := newActorWorld(t)
	spawnTestPlayer(t, w, pw, cp.Vector{})
	enemy := spawnTestEnemy(t, w, pw, cp.Vector{X: 500, Y: 0})

	sys := NewEnemyAISystem()
	sys.Update(w) // idle -> chasing
	sys.Update(w) // chasing tick

	reqs := w.Events().DrainType(ecs.EventPathRequest)
	if len(reqs) == 0 {
		t.Fatalf("expected a path request while chasing")
	}
	req, ok := reqs[len(reqs)-1].Data.(ecs.PathRequestEvent)
	if !ok {
		t.Fatalf("unexpected payload type %T", reqs[len(reqs)-1].Data)
	}
	if req.Requester != enemy {
		t.Fatalf("request should come from the chasing enemy")
	}
}

func TestEnemyAttackTransitionsOnRange(t *testing.T) {
	w, pw := newActorWorld(t)
	spawnTestPlayer(t, w, pw, cp.Vector{})
	enemy := spawnTestEnemy(t, w, pw, cp.Vector{X: 100, Y: 0})

	sys := NewEnemyAISystem()
	sys.Update(w) // idle -> chasing
	sys.Update(w) // within attack range with clear sight -> attacking
	if got := enemyPhase(t, w, enemy); got != component.EnemyAttacking {
		t.Fatalf("expected attacking, got %s", got)
	}

	// attacking emits a shoot intent every tick
	sys.Update(w)
	shots := w.Events().DrainType(ecs.EventShoot)
	if len(shots) == 0 {
		t.Fatalf("expected a shoot intent while attacking")
	}
	shot, _ := shots[0].Data.(ecs.ShootEvent)
	if !shot.FromEnemy || shot.Shooter != enemy {
		t.Fatalf("unexpected shoot intent %+v", shot)
	}

	// leaving range drops straight back to chasing
	moveBody(t, w, enemy, cp.Vector{X: 400, Y: 0})
	sys.Update(w)
	if got := enemyPhase(t, w, enemy); got != component.EnemyChasing {
		t.Fatalf("expected chasing after leaving range, got %s", got)
	}
}

func TestEnemyBoundaryFlipsWithoutHysteresis(t *testing.T) {
	// the attack threshold is a single distance with no band; hovering
	// around it toggles state every tick and must do so cleanly
	w, pw := newActorWorld(t)
	spawnTestPlayer(t, w, pw, cp.Vector{})
	enemy := spawnTestEnemy(t, w, pw, cp.Vector{X: 179, Y: 0})

	sys := NewEnemyAISystem()
	sys.Update(w) // idle -> chasing
	for i := 0; i < 8; i++ {
		moveBody(t, w, enemy, cp.Vector{X: 179, Y: 0})
		sys.Update(w)
		if got := enemyPhase(t, w, enemy); got != component.EnemyAttacking {
			t.Fatalf("iteration %d: expected attacking at 179, got %s", i, got)
		}
		moveBody(t, w, enemy, cp.Vector{X: 181, Y: 0})
		sys.Update(w)
		if got := enemyPhase(t, w, enemy); got != component.EnemyChasing {
			t.Fatalf("iteration %d: expected chasing at 181, got %s", i, got)
		}
	}
}

func TestEnemyKeepsStateOnTargetLoss(t *testing.T) {
	w, pw := newActorWorld(t)
	player := spawnTestPlayer(t, w, pw, cp.Vector{})
	enemy := spawnTestEnemy(t, w, pw, cp.Vector{X: 500, Y: 0})

	sys := NewEnemyAISystem()
	sys.Update(w) // idle -> chasing

	ecs.DestroyEntity(w, player)
	sys.Update(w)
	sys.Update(w)

	// no fallback to idle; the agent just skips its tick
	if got := enemyPhase(t, w, enemy); got != component.EnemyChasing {
		t.Fatalf("expected chasing to persist after target loss, got %s", got)
	}
}

func TestEnemyFleeingIsInert(t *testing.T) {
	w, pw := newActorWorld(t)
	spawnTestPlayer(t, w, pw, cp.Vector{})
	enemy := spawnTestEnemy(t, w, pw, cp.Vector{X: 100, Y: 0})

	state, _ := ecs.Get(w, enemy, component.EnemyStateComponent.Kind())
	state.Phase = component.EnemyFleeing

	sys := NewEnemyAISystem()
	sys.Update(w)
	sys.Update(w)

	if got := enemyPhase(t, w, enemy); got != component.EnemyFleeing {
		t.Fatalf("fleeing agents must stay put, got %s", got)
	}
	body, _ := ecs.Get(w, enemy, component.PhysicsBodyComponent.Kind())
	if v := body.Body.Velocity(); v.X != 0 || v.Y != 0 {
		t.Fatalf("fleeing agents must not move, velocity %v", v)
	}
}
