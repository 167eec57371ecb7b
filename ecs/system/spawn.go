package system

import (
	"image/color"
	"log"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/jakecoffman/cp"

	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/ecs/component"
	"github.com/soras/bossrun/prefabs"
)

// spawnRadius keeps new minions clear of the boss's outermost part shapes.
const spawnRadius = 170.0

// SpawnSystem emits minions around the boss on a scripted cadence. The
// tengo script decides the next interval from the boss level and the
// current minion population; -1 holds spawning until the population drops.
type SpawnSystem struct {
	enemy    *prefabs.EnemySpec
	compiled *tengo.Compiled
	spawned  int
}

// NewSpawnSystem compiles the pacing script once; Update only sets its
// inputs and reruns it.
func NewSpawnSystem(enemy *prefabs.EnemySpec) (*SpawnSystem, error) {
	src, err := prefabs.LoadScript("spawn.tengo")
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript(src)
	_ = script.Add("level", 0)
	_ = script.Add("alive", 0)
	_ = script.Add("max_alive", 0)
	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &SpawnSystem{enemy: enemy, compiled: compiled}, nil
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.compiled == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	alive := 0
	ecs.ForEach(w, component.EnemyComponent.Kind(), func(ecs.Entity, *component.Enemy) {
		alive++
	})

	ecs.ForEach3(w,
		component.BossComponent.Kind(),
		component.SpawnerComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(_ ecs.Entity, boss *component.Boss, spawner *component.Spawner, body *component.PhysicsBody) {
			if body.Body == nil {
				return
			}
			spawner.Countdown--
			if spawner.Countdown > 0 {
				return
			}

			interval, err := s.nextInterval(boss.Level, alive, spawner.MaxAlive)
			if err != nil {
				log.Printf("spawn: pacing script failed: %v", err)
				spawner.Countdown = 60
				return
			}
			if interval < 0 {
				// population capped; poll again shortly
				spawner.Countdown = 30
				return
			}
			spawner.Countdown = interval
			s.spawnMinion(w, pw, body.Body.Position())
			alive++
		})
}

func (s *SpawnSystem) nextInterval(level, alive, maxAlive int) (int, error) {
	if err := s.compiled.Set("level", level); err != nil {
		return 0, err
	}
	if err := s.compiled.Set("alive", alive); err != nil {
		return 0, err
	}
	if err := s.compiled.Set("max_alive", maxAlive); err != nil {
		return 0, err
	}
	if err := s.compiled.Run(); err != nil {
		return 0, err
	}
	return s.compiled.Get("interval").Int(), nil
}

func (s *SpawnSystem) spawnMinion(w *ecs.World, pw *ecs.PhysicsWorld, bossPos cp.Vector) {
	// walk a ring around the boss so consecutive spawns spread out
	angle := float64(s.spawned) * (math.Pi * 2 / 5)
	s.spawned++
	pos := bossPos.Add(cp.ForAngle(angle).Mult(spawnRadius))

	e := ecs.CreateEntity(w)
	transform := &component.Transform{X: pos.X, Y: pos.Y}
	collider := &component.Collider{
		Width:  s.enemy.Size.X,
		Height: s.enemy.Size.Y,
		Kind:   component.ColliderEnemy,
	}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), transform)
	_ = ecs.Add(w, e, component.ColliderComponent.Kind(), collider)
	_ = ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  s.enemy.Size.X,
		Height: s.enemy.Size.Y,
		Color:  color.NRGBA{R: 0xd9, G: 0x33, B: 0x33, A: 0xff},
		Layer:  1,
	})
	_ = ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{
		MoveSpeed:          s.enemy.MoveSpeed,
		AttackDistance:     s.enemy.AttackDistance,
		VisibilityDistance: s.enemy.VisibilityDistance,
		RotationOffset:     s.enemy.RotationOffset,
		FireFrames:         s.enemy.FireFrames,
	})
	_ = ecs.Add(w, e, component.EnemyStateComponent.Kind(), &component.EnemyState{Phase: component.EnemyIdle})
	_ = ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{
		Current: s.enemy.Health,
		Max:     s.enemy.Health,
	})
	_ = ecs.Add(w, e, component.ShootCooldownComponent.Kind(), &component.ShootCooldown{})

	body := pw.EnsureBody(e, transform, collider, nil)
	if body != nil && body.Body != nil {
		_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
	}
}
