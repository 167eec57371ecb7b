package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/soras/bossrun/common"
	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/ecs/component"
)

var whiteImage *ebiten.Image

func quadImage() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(1, 1)
		whiteImage.Fill(color.White)
	}
	return whiteImage
}

// RenderSystem draws every sprite as a tinted quad. The camera is fixed;
// world origin maps to the screen center.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

type drawItem struct {
	entity    ecs.Entity
	transform *component.Transform
	sprite    *component.Sprite
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	var items []drawItem
	ecs.ForEach2(w,
		component.TransformComponent.Kind(),
		component.SpriteComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
			items = append(items, drawItem{entity: e, transform: t, sprite: s})
		})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].sprite.Layer != items[j].sprite.Layer {
			return items[i].sprite.Layer < items[j].sprite.Layer
		}
		return items[i].entity.Raw() < items[j].entity.Raw()
	})

	for _, item := range items {
		drawQuad(screen, item.transform, 0, 0,
			item.sprite.Width, item.sprite.Height, item.sprite.Color)

		if parts, ok := ecs.Get(w, item.entity, component.PartsComponent.Kind()); ok {
			for _, q := range parts.Quads {
				drawQuad(screen, item.transform, q.OffsetX, q.OffsetY, q.Width, q.Height, q.Color)
			}
		}
	}
}

func drawQuad(screen *ebiten.Image, t *component.Transform, offX, offY, w, h float64, tint color.NRGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(offX-w/2, offY-h/2)
	op.GeoM.Rotate(t.Angle)
	op.GeoM.Translate(t.X+common.BaseWidth/2, t.Y+common.BaseHeight/2)
	op.ColorScale.ScaleWithColor(tint)
	screen.DrawImage(quadImage(), op)
}
