package component

import "github.com/jakecoffman/cp"

// ColliderKind selects collision type and filter category for a body.
type ColliderKind uint8

const (
	ColliderSolid ColliderKind = iota
	ColliderPlayer
	ColliderEnemy
	ColliderPlayerBullet
	ColliderEnemyBullet
)

// Collider describes the shape to build for an entity.
type Collider struct {
	Width  float64
	Height float64
	Kind   ColliderKind
	Sensor bool
}

// PhysicsBody holds the live Chipmunk body once the physics world built it.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape
}

var ColliderComponent = NewComponent[Collider]()
var PhysicsBodyComponent = NewComponent[PhysicsBody]()
