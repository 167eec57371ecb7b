package system

import (
	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/ecs/component"
)

// BulletSystem applies recorded bullet hits as damage, removes spent
// projectiles, and expires bullets whose lifetime ran out. Entities driven
// to zero health are destroyed here, except the player; the game loop
// reads the player's health directly to trigger the game-over flow.
type BulletSystem struct{}

func NewBulletSystem() *BulletSystem {
	return &BulletSystem{}
}

func (s *BulletSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	for _, hit := range pw.DrainHits() {
		bullet, ok := ecs.Get(w, hit.Bullet, component.BulletComponent.Kind())
		if !ok {
			continue
		}
		if hp, ok := ecs.Get(w, hit.Target, component.HealthComponent.Kind()); ok {
			hp.Current -= bullet.Damage
			if hp.Current <= 0 && !ecs.Has(w, hit.Target, component.PlayerTagComponent.Kind()) {
				ecs.DestroyEntity(w, hit.Target)
			}
		}
		ecs.DestroyEntity(w, hit.Bullet)
	}

	for _, e := range pw.DrainExpired() {
		ecs.DestroyEntity(w, e)
	}

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Frames--
		if ttl.Frames <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})
}
