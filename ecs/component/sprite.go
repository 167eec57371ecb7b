package component

import "image/color"

// Sprite is a flat-colored quad. The whole game renders with tinted quads,
// matching the placeholder art the prototypes shipped with.
type Sprite struct {
	Width  float64
	Height float64
	Color  color.NRGBA
	Layer  int
}

var SpriteComponent = NewComponent[Sprite]()

// PartQuad is an extra quad drawn relative to its entity's transform,
// rotating with it. The boss renders its arms, shields, and weapons this
// way on top of its body quad.
type PartQuad struct {
	OffsetX float64
	OffsetY float64
	Width   float64
	Height  float64
	Color   color.NRGBA
}

// Parts is the set of offset quads for a multi-shape entity.
type Parts struct {
	Quads []PartQuad
}

var PartsComponent = NewComponent[Parts]()
