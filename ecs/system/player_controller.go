package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/soras/bossrun/common"
	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/ecs/component"
)

// PlayerControllerSystem maps WASD/arrow keys to velocity on the player's
// body and mouse clicks to shoot intents aimed at the cursor.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach3(w,
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, _ *component.PlayerTag, player *component.Player, body *component.PhysicsBody) {
			if body.Body == nil {
				return
			}

			up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
			down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
			left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
			right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)

			move := cp.Vector{}
			if left {
				move.X--
			}
			if right {
				move.X++
			}
			if up {
				move.Y--
			}
			if down {
				move.Y++
			}
			if move.Length() > 0 {
				move = move.Normalize().Mult(player.MoveSpeed)
			}
			body.Body.SetVelocityVector(move)

			if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
				pos := body.Body.Position()
				aim := cursorWorld().Sub(pos)
				if aim.Length() > 0 {
					w.Events().Push(ecs.Event{Type: ecs.EventShoot, Data: ecs.ShootEvent{
						Origin:  pos,
						Dir:     aim.Normalize(),
						Shooter: e,
					}})
				}
			}
		})
}

// cursorWorld converts the cursor position to world coordinates; the
// camera is fixed with the world origin at the screen center.
func cursorWorld() cp.Vector {
	cx, cy := ebiten.CursorPosition()
	return cp.Vector{
		X: float64(cx) - common.BaseWidth/2,
		Y: float64(cy) - common.BaseHeight/2,
	}
}
