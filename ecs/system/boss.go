package system

import (
	"log"

	"github.com/soras/bossrun/common"
	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/ecs/component"
)

// bossSpinRate is the slow idle rotation of the boss body, radians per
// second. The offset part shapes sweep with it.
const bossSpinRate = 0.35

// BossSystem advances the boss level on its fixed cadence and spins the
// body. Level feeds the score multiplier and the spawn pacing script.
type BossSystem struct{}

func NewBossSystem() *BossSystem {
	return &BossSystem{}
}

func (s *BossSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w,
		component.BossComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(_ ecs.Entity, boss *component.Boss, body *component.PhysicsBody) {
			if body.Body != nil {
				body.Body.SetAngle(body.Body.Angle() + bossSpinRate*common.Dt)
			}

			boss.FramesToLevel--
			if boss.FramesToLevel > 0 {
				return
			}
			boss.Level++
			boss.FramesToLevel = boss.LevelUpFrames
			log.Printf("boss: reached level %d", boss.Level)
		})
}
