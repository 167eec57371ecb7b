package component

// Transform is an entity's world position and facing angle in radians.
type Transform struct {
	X     float64
	Y     float64
	Angle float64
}

var TransformComponent = NewComponent[Transform]()
