package prefabs

import "testing"

func TestLoadSpecs(t *testing.T) {
	t.Run("waypoints", func(t *testing.T) {
		spec, err := LoadWaypointsSpec()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if spec.Gap.X <= 0 || spec.Gap.Y <= 0 {
			t.Fatalf("gap must be positive, got %+v", spec.Gap)
		}
		if spec.ConstructDelayTicks <= 0 {
			t.Fatalf("expected a settle delay, got %d", spec.ConstructDelayTicks)
		}
	})

	t.Run("enemy", func(t *testing.T) {
		spec, err := LoadEnemySpec()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if spec.AttackDistance <= 0 || spec.VisibilityDistance <= spec.AttackDistance {
			t.Fatalf("expected attack < visibility, got %+v", spec)
		}
		if spec.FireFrames <= 0 || spec.BulletSpeed <= 0 {
			t.Fatalf("projectile tuning missing: %+v", spec)
		}
	})

	t.Run("boss", func(t *testing.T) {
		spec, err := LoadBossSpec()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(spec.Parts) == 0 {
			t.Fatalf("boss must carry part shapes")
		}
		if spec.LevelUpFrames <= 0 || spec.MaxMinions <= 0 {
			t.Fatalf("pacing missing: %+v", spec)
		}
	})

	t.Run("arena", func(t *testing.T) {
		spec, err := LoadArenaSpec()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if spec.Width <= 0 || spec.Height <= 0 {
			t.Fatalf("arena bounds missing: %+v", spec)
		}
		if spec.RestartSeconds <= 0 {
			t.Fatalf("restart countdown missing: %+v", spec)
		}
	})
}

func TestLoadSpecMissingFile(t *testing.T) {
	if _, err := LoadSpec[PlayerSpec]("nope.yaml"); err == nil {
		t.Fatalf("expected error for missing spec file")
	}
}

func TestLoadScript(t *testing.T) {
	src, err := LoadScript("spawn.tengo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(src) == 0 {
		t.Fatalf("expected script source")
	}

	// name with explicit prefix resolves to the same file
	src2, err := LoadScript("scripts/spawn.tengo")
	if err != nil {
		t.Fatalf("load with prefix: %v", err)
	}
	if string(src) != string(src2) {
		t.Fatalf("prefix form should resolve to the same script")
	}
}
