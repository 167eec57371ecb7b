package component

// EnemyPhase is the behavioral state of a minion.
type EnemyPhase uint8

const (
	EnemyIdle EnemyPhase = iota
	// EnemyFleeing is reserved. No transition produces it yet; the AI
	// system logs and skips any agent found in it instead of inventing
	// behavior.
	EnemyFleeing
	EnemyChasing
	EnemyAttacking
)

func (p EnemyPhase) String() string {
	switch p {
	case EnemyIdle:
		return "idle"
	case EnemyFleeing:
		return "fleeing"
	case EnemyChasing:
		return "chasing"
	case EnemyAttacking:
		return "attacking"
	}
	return "unknown"
}

// EnemyState is the per-agent state machine cell. Target is a raw entity
// handle (ecs.Entity.Raw); zero means no target.
type EnemyState struct {
	Phase  EnemyPhase
	Target uint64
}

// Enemy holds chase/attack tuning for a minion.
type Enemy struct {
	MoveSpeed          float64
	AttackDistance     float64
	VisibilityDistance float64
	// RotationOffset aligns the sprite's forward axis with the travel
	// direction, in radians.
	RotationOffset float64
	FireFrames     int
}

var EnemyStateComponent = NewComponent[EnemyState]()
var EnemyComponent = NewComponent[Enemy]()
