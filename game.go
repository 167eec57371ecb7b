package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"

	"github.com/soras/bossrun/common"
	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/ecs/component"
	"github.com/soras/bossrun/ecs/system"
	"github.com/soras/bossrun/leaderboard"
	"github.com/soras/bossrun/nav"
	"github.com/soras/bossrun/prefabs"
)

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
)

type Game struct {
	state GameState
	debug bool

	world    *ecs.World
	render   *system.RenderSystem
	graphSys *system.WaypointGraphSystem
	planSys  *system.PathPlannerSystem

	waypoints *prefabs.WaypointsSpec
	player    *prefabs.PlayerSpec
	enemy     *prefabs.EnemySpec
	boss      *prefabs.BossSpec
	arena     *prefabs.ArenaSpec

	playerEntity ecs.Entity
	bossEntity   ecs.Entity

	frames int
	level  int

	victory       bool
	finalScore    int
	finalSeconds  int
	finalLevel    int
	restartFrames int

	lb        *leaderboard.Client
	lbCh      chan []leaderboard.Entry
	lbEntries []leaderboard.Entry

	gameOverUI    *ebitenui.UI
	countdownText *widget.Text

	watcher *prefabs.Watcher
}

func NewGame(debug bool) (*Game, error) {
	g := &Game{
		debug: debug,
		lb:    leaderboard.NewClient(),
		lbCh:  make(chan []leaderboard.Entry, 1),
	}

	var err error
	if g.waypoints, err = prefabs.LoadWaypointsSpec(); err != nil {
		return nil, err
	}
	if g.player, err = prefabs.LoadPlayerSpec(); err != nil {
		return nil, err
	}
	if g.enemy, err = prefabs.LoadEnemySpec(); err != nil {
		return nil, err
	}
	if g.boss, err = prefabs.LoadBossSpec(); err != nil {
		return nil, err
	}
	if g.arena, err = prefabs.LoadArenaSpec(); err != nil {
		return nil, err
	}

	if w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts"); err == nil {
		g.watcher = w
	}

	if err := g.newRun(); err != nil {
		return nil, err
	}
	return g, nil
}

// newRun builds a fresh world, physics scene, and system pipeline.
func (g *Game) newRun() error {
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	pw.AddArenaWalls(g.arena.Width/2, g.arena.Height/2)
	for _, o := range g.arena.Obstacles {
		pw.AddStaticBox(o.Pos.X, o.Pos.Y, o.Size.X, o.Size.Y)
	}

	g.spawnPlayer(w, pw)
	g.spawnBoss(w, pw)

	graph := &nav.Graph{}
	g.graphSys = system.NewWaypointGraphSystem(graph, g.waypoints, g.arena.Width, g.arena.Height)
	g.planSys = system.NewPathPlannerSystem(nav.NewPlanner(graph))
	g.render = system.NewRenderSystem()

	spawnSys, err := system.NewSpawnSystem(g.enemy)
	if err != nil {
		return fmt.Errorf("game: spawn system: %w", err)
	}

	w.AddSystem(g.graphSys)
	w.AddSystem(system.NewPlayerControllerSystem())
	w.AddSystem(system.NewEnemyAISystem())
	w.AddSystem(g.planSys)
	w.AddSystem(system.NewBossSystem())
	w.AddSystem(spawnSys)
	w.AddSystem(system.NewShootingSystem(g.player, g.enemy))
	w.AddSystem(system.NewPhysicsSystem())
	w.AddSystem(system.NewPathFollowerSystem())
	w.AddSystem(system.NewBulletSystem())

	g.world = w
	g.state = StatePlaying
	g.frames = 0
	g.level = 1
	g.victory = false
	g.gameOverUI = nil
	g.countdownText = nil
	g.lbEntries = nil
	return nil
}

func (g *Game) spawnPlayer(w *ecs.World, pw *ecs.PhysicsWorld) {
	e := ecs.CreateEntity(w)
	transform := &component.Transform{X: g.player.SpawnPos.X, Y: g.player.SpawnPos.Y}
	collider := &component.Collider{
		Width:  g.player.Size.X,
		Height: g.player.Size.Y,
		Kind:   component.ColliderPlayer,
	}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), transform)
	_ = ecs.Add(w, e, component.ColliderComponent.Kind(), collider)
	_ = ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  g.player.Size.X,
		Height: g.player.Size.Y,
		Color:  color.NRGBA{R: 0x33, G: 0x99, B: 0xff, A: 0xff},
		Layer:  1,
	})
	_ = ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: g.player.MoveSpeed})
	_ = ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{
		Current: g.player.Health,
		Max:     g.player.Health,
	})
	_ = ecs.Add(w, e, component.ShootCooldownComponent.Kind(), &component.ShootCooldown{})

	body := pw.EnsureBody(e, transform, collider, nil)
	if body != nil && body.Body != nil {
		_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
	}
	g.playerEntity = e
}

// spawnBoss builds the multi-part boss on one kinematic body: the central
// hull plus offset arm, shield, and weapon boxes that all rotate together.
// The parts are solid, so they block bullets, sight lines, and waypoint
// edges near the boss.
func (g *Game) spawnBoss(w *ecs.World, pw *ecs.PhysicsWorld) {
	e := ecs.CreateEntity(w)
	pos := cp.Vector{X: g.boss.SpawnPos.X, Y: g.boss.SpawnPos.Y}

	body := cp.NewKinematicBody()
	body.SetPosition(pos)
	pw.Space().AddBody(body)
	pw.RegisterBody(e, body)
	pw.AddBossShape(e, body, 0, 0, g.boss.BodySize.X, g.boss.BodySize.Y)

	partColor := color.NRGBA{R: 0x66, G: 0x22, B: 0x88, A: 0xff}
	var parts component.Parts
	for _, p := range g.boss.Parts {
		pw.AddBossShape(e, body, p.Offset.X, p.Offset.Y, p.Size.X, p.Size.Y)
		parts.Quads = append(parts.Quads, component.PartQuad{
			OffsetX: p.Offset.X,
			OffsetY: p.Offset.Y,
			Width:   p.Size.X,
			Height:  p.Size.Y,
			Color:   partColor,
		})
	}

	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y})
	_ = ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  g.boss.BodySize.X,
		Height: g.boss.BodySize.Y,
		Color:  color.NRGBA{R: 0x99, G: 0x33, B: 0xcc, A: 0xff},
		Layer:  1,
	})
	_ = ecs.Add(w, e, component.PartsComponent.Kind(), &parts)
	_ = ecs.Add(w, e, component.BossComponent.Kind(), &component.Boss{
		Level:         1,
		LevelUpFrames: g.boss.LevelUpFrames,
		FramesToLevel: g.boss.LevelUpFrames,
	})
	_ = ecs.Add(w, e, component.SpawnerComponent.Kind(), &component.Spawner{
		Countdown: 120,
		MaxAlive:  g.boss.MaxMinions,
	})
	_ = ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{
		Current: g.boss.Health,
		Max:     g.boss.Health,
	})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body})
	g.bossEntity = e
}

func (g *Game) Update() error {
	g.drainWatcher()

	switch g.state {
	case StatePlaying:
		g.world.Update()
		g.frames++

		if boss, ok := ecs.Get(g.world, g.bossEntity, component.BossComponent.Kind()); ok {
			g.level = boss.Level
		}

		if hp, ok := ecs.Get(g.world, g.playerEntity, component.HealthComponent.Kind()); ok && hp.Current <= 0 {
			g.endRun(false)
		} else if !ecs.IsAlive(g.world, g.bossEntity) {
			g.endRun(true)
		}

	case StateGameOver:
		select {
		case entries := <-g.lbCh:
			g.lbEntries = entries
			g.gameOverUI = NewGameOverUI(g)
		default:
		}

		g.restartFrames--
		if g.countdownText != nil {
			g.countdownText.Label = fmt.Sprintf("Restarting in %d...", (g.restartFrames+59)/60)
		}
		if g.gameOverUI != nil {
			g.gameOverUI.Update()
		}
		if g.restartFrames <= 0 {
			if err := g.newRun(); err != nil {
				return err
			}
		}
	}
	return nil
}

// endRun freezes the score, kicks off the leaderboard exchange, and shows
// the game-over panel. The run restarts on a fixed countdown.
func (g *Game) endRun(victory bool) {
	g.victory = victory
	g.finalSeconds = g.frames / int(ebiten.TPS())
	g.finalLevel = g.level
	if g.finalLevel < 1 {
		g.finalLevel = 1
	}
	g.finalScore = g.finalSeconds * g.finalLevel
	g.restartFrames = g.arena.RestartSeconds * 60
	g.state = StateGameOver
	g.gameOverUI = NewGameOverUI(g)

	log.Printf("game: run over (victory=%v) score=%d level=%d seconds=%d",
		victory, g.finalScore, g.finalLevel, g.finalSeconds)

	if g.lb == nil {
		return
	}
	entry := leaderboard.Entry{
		Name:    playerName(),
		Score:   g.finalScore,
		Level:   g.finalLevel,
		Seconds: g.finalSeconds,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := g.lb.Submit(ctx, entry); err != nil {
			log.Printf("game: leaderboard submit failed: %v", err)
		}
		entries, err := g.lb.Top(ctx, 10)
		if err != nil {
			log.Printf("game: leaderboard fetch failed: %v", err)
			return
		}
		select {
		case g.lbCh <- entries:
		default:
		}
	}()
}

// drainWatcher applies prefab edits to the live tuning structs. Systems
// hold pointers to these, so edits take effect immediately; layout-level
// specs (arena, boss shape) apply on the next run.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: reloading prefabs after change to %s", name)
			if spec, err := prefabs.LoadEnemySpec(); err == nil {
				*g.enemy = *spec
			}
			if spec, err := prefabs.LoadPlayerSpec(); err == nil {
				*g.player = *spec
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("game: prefab watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	if g.debug {
		system.DrawNavDebug(g.world, g.graphSys.Graph(), g.planSys.Planner(), g.waypoints.DebugSize, screen)
	}

	hp := 0
	if h, ok := ecs.Get(g.world, g.playerEntity, component.HealthComponent.Kind()); ok {
		hp = h.Current
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("HP: %d    Level: %d    Time: %ds    FPS: %.1f",
		hp, g.level, g.frames/int(ebiten.TPS()), ebiten.ActualFPS()))

	if g.state == StateGameOver && g.gameOverUI != nil {
		g.gameOverUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func playerName() string {
	if name := os.Getenv("PLAYER_NAME"); name != "" {
		return name
	}
	return "anonymous"
}
