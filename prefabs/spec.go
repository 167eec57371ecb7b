package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Vec2Spec is a yaml-friendly 2D vector.
type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LoadSpec unmarshals one prefab yaml file into a typed spec.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// WaypointsSpec drives waypoint grid construction. Gap, scale, and offset
// match the window-centered grid layout; the delay gives the physics scene
// time to settle before the O(N^2) visibility pass runs.
type WaypointsSpec struct {
	Gap                 Vec2Spec `yaml:"gap"`
	Scale               Vec2Spec `yaml:"scale"`
	Offset              Vec2Spec `yaml:"offset"`
	DebugSize           float64  `yaml:"debug_size"`
	ConstructDelayTicks int      `yaml:"construct_delay_ticks"`
}

func LoadWaypointsSpec() (*WaypointsSpec, error) {
	spec, err := LoadSpec[WaypointsSpec]("waypoints.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// PlayerSpec is the player's tuning and shape.
type PlayerSpec struct {
	MoveSpeed     float64  `yaml:"move_speed"`
	Health        int      `yaml:"health"`
	Size          Vec2Spec `yaml:"size"`
	SpawnPos      Vec2Spec `yaml:"spawn_pos"`
	FireFrames    int      `yaml:"fire_frames"`
	BulletSpeed   float64  `yaml:"bullet_speed"`
	BulletDamage  int      `yaml:"bullet_damage"`
	BulletTTL     int      `yaml:"bullet_ttl"`
	BulletSize    float64  `yaml:"bullet_size"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// EnemySpec is the minion tuning: chase/attack thresholds, movement, and
// projectile parameters. AttackDistance is deliberately a single threshold
// with no hysteresis band; see the AI system.
type EnemySpec struct {
	MoveSpeed          float64  `yaml:"move_speed"`
	AttackDistance     float64  `yaml:"attack_distance"`
	VisibilityDistance float64  `yaml:"visibility_distance"`
	RotationOffset     float64  `yaml:"rotation_offset"`
	Health             int      `yaml:"health"`
	Size               Vec2Spec `yaml:"size"`
	FireFrames         int      `yaml:"fire_frames"`
	BulletSpeed        float64  `yaml:"bullet_speed"`
	BulletDamage       int      `yaml:"bullet_damage"`
	BulletTTL          int      `yaml:"bullet_ttl"`
	BulletSize         float64  `yaml:"bullet_size"`
}

func LoadEnemySpec() (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec]("enemy.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// BossPartSpec is one offset box shape on the boss body.
type BossPartSpec struct {
	Offset Vec2Spec `yaml:"offset"`
	Size   Vec2Spec `yaml:"size"`
}

// BossSpec describes the multi-part boss body and its pacing.
type BossSpec struct {
	SpawnPos      Vec2Spec       `yaml:"spawn_pos"`
	BodySize      Vec2Spec       `yaml:"body_size"`
	Parts         []BossPartSpec `yaml:"parts"`
	Health        int            `yaml:"health"`
	LevelUpFrames int            `yaml:"level_up_frames"`
	MaxMinions    int            `yaml:"max_minions"`
}

func LoadBossSpec() (*BossSpec, error) {
	spec, err := LoadSpec[BossSpec]("boss.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ObstacleSpec is a solid box in the arena.
type ObstacleSpec struct {
	Pos  Vec2Spec `yaml:"pos"`
	Size Vec2Spec `yaml:"size"`
}

// ArenaSpec is the static scene: bounds and obstacle layout.
type ArenaSpec struct {
	Width          float64        `yaml:"width"`
	Height         float64        `yaml:"height"`
	Obstacles      []ObstacleSpec `yaml:"obstacles"`
	RestartSeconds int            `yaml:"restart_seconds"`
}

func LoadArenaSpec() (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec]("arena.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
