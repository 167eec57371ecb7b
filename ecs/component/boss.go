package component

// Boss levels up on a fixed cadence; the level multiplies the score and
// feeds the spawn tuning script.
type Boss struct {
	Level         int
	LevelUpFrames int
	FramesToLevel int
}

// Spawner emits minions around its entity on a scripted interval.
type Spawner struct {
	Countdown int
	MaxAlive  int
}

var BossComponent = NewComponent[Boss]()
var SpawnerComponent = NewComponent[Spawner]()
