package component

// PlayerTag marks the player entity.
type PlayerTag struct{}

// Player holds player movement tuning. MoveSpeed is pixels per second.
type Player struct {
	MoveSpeed float64
}

var PlayerTagComponent = NewComponent[PlayerTag]()
var PlayerComponent = NewComponent[Player]()
