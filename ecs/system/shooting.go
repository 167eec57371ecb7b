package system

import (
	"image/color"

	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/ecs/component"
	"github.com/soras/bossrun/prefabs"
)

// ShootingSystem turns shoot intents into bullet entities. Intents arrive
// every tick from attacking agents; per-shooter cooldowns decide which of
// them actually produce a projectile.
type ShootingSystem struct {
	player *prefabs.PlayerSpec
	enemy  *prefabs.EnemySpec
}

func NewShootingSystem(player *prefabs.PlayerSpec, enemy *prefabs.EnemySpec) *ShootingSystem {
	return &ShootingSystem{player: player, enemy: enemy}
}

func (s *ShootingSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach(w, component.ShootCooldownComponent.Kind(), func(_ ecs.Entity, cd *component.ShootCooldown) {
		if cd.Frames > 0 {
			cd.Frames--
		}
	})

	for _, evt := range w.Events().DrainType(ecs.EventShoot) {
		intent, ok := evt.Data.(ecs.ShootEvent)
		if !ok {
			continue
		}
		if cd, ok := ecs.Get(w, intent.Shooter, component.ShootCooldownComponent.Kind()); ok {
			if cd.Frames > 0 {
				continue
			}
			cd.Frames = s.fireFrames(w, intent)
		}
		s.spawnBullet(w, pw, intent)
	}
}

// fireFrames reads the shooter's own cadence when it carries one, so
// per-entity tuning wins over the prefab default.
func (s *ShootingSystem) fireFrames(w *ecs.World, intent ecs.ShootEvent) int {
	if enemy, ok := ecs.Get(w, intent.Shooter, component.EnemyComponent.Kind()); ok && enemy.FireFrames > 0 {
		return enemy.FireFrames
	}
	if intent.FromEnemy {
		return s.enemy.FireFrames
	}
	return s.player.FireFrames
}

func (s *ShootingSystem) spawnBullet(w *ecs.World, pw *ecs.PhysicsWorld, intent ecs.ShootEvent) {
	speed := s.player.BulletSpeed
	damage := s.player.BulletDamage
	ttl := s.player.BulletTTL
	size := s.player.BulletSize
	kind := component.ColliderPlayerBullet
	tint := color.NRGBA{R: 0xbf, G: 0xbf, B: 0xbf, A: 0xff}
	if intent.FromEnemy {
		speed = s.enemy.BulletSpeed
		damage = s.enemy.BulletDamage
		ttl = s.enemy.BulletTTL
		size = s.enemy.BulletSize
		kind = component.ColliderEnemyBullet
		tint = color.NRGBA{R: 0xff, G: 0x66, B: 0x33, A: 0xff}
	}

	e := ecs.CreateEntity(w)
	transform := &component.Transform{X: intent.Origin.X, Y: intent.Origin.Y}
	collider := &component.Collider{Width: size, Height: size, Kind: kind, Sensor: true}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), transform)
	_ = ecs.Add(w, e, component.ColliderComponent.Kind(), collider)
	_ = ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  size,
		Height: size,
		Color:  tint,
		Layer:  2,
	})
	_ = ecs.Add(w, e, component.BulletComponent.Kind(), &component.Bullet{
		Damage:    damage,
		FromEnemy: intent.FromEnemy,
	})
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: ttl})

	body := pw.EnsureBody(e, transform, collider, nil)
	if body == nil || body.Body == nil {
		ecs.DestroyEntity(w, e)
		return
	}
	body.Body.SetVelocityVector(intent.Dir.Mult(speed))
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
}
