package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/ecs/component"
	"github.com/soras/bossrun/nav"
	"github.com/soras/bossrun/prefabs"
)

// lineGraph builds a 1x4 corridor of waypoints with full visibility.
func lineGraph(t *testing.T) *nav.Graph {
	t.Helper()
	g := &nav.Graph{}
	g.Build(400, 100, cp.Vector{X: 100, Y: 100}, cp.Vector{X: 1, Y: 1}, cp.Vector{})
	if !g.ConstructEdges(func(_, _ cp.Vector) bool { return true }) {
		t.Fatal("edge construction did not run")
	}
	return g
}

func TestPathPlannerFulfillsRequests(t *testing.T) {
	w := ecs.NewWorld()
	g := lineGraph(t)
	sys := NewPathPlannerSystem(nav.NewPlanner(g))

	agent := ecs.CreateEntity(w)
	w.Events().Push(ecs.Event{Type: ecs.EventPathRequest, Data: ecs.PathRequestEvent{
		Src:       cp.Vector{X: -200, Y: -50},
		Dst:       cp.Vector{X: 100, Y: -50},
		Requester: agent,
	}})

	sys.Update(w)

	pf, ok := ecs.Get(w, agent, component.PathFollowComponent.Kind())
	if !ok {
		t.Fatalf("expected a PathFollow on the requester")
	}
	if len(pf.Path) == 0 {
		t.Fatalf("expected a non-empty path")
	}
	// destination first, source last
	first := pf.Path[0].Pos
	last := pf.Path[len(pf.Path)-1].Pos
	if first.Distance(cp.Vector{X: 100, Y: -50}) > first.Distance(cp.Vector{X: -200, Y: -50}) {
		t.Fatalf("path head should sit at the destination end, got %v", first)
	}
	if last.Distance(cp.Vector{X: -200, Y: -50}) > last.Distance(cp.Vector{X: 100, Y: -50}) {
		t.Fatalf("path tail should sit at the source end, got %v", last)
	}
}

func TestPathPlannerKeepsLatestRequestPerAgent(t *testing.T) {
	w := ecs.NewWorld()
	g := lineGraph(t)
	sys := NewPathPlannerSystem(nav.NewPlanner(g))

	agent := ecs.CreateEntity(w)
	push := func(dst cp.Vector) {
		w.Events().Push(ecs.Event{Type: ecs.EventPathRequest, Data: ecs.PathRequestEvent{
			Src:       cp.Vector{X: -200, Y: -50},
			Dst:       dst,
			Requester: agent,
		}})
	}
	push(cp.Vector{X: -100, Y: -50})
	push(cp.Vector{X: 100, Y: -50})

	sys.Update(w)

	pf, ok := ecs.Get(w, agent, component.PathFollowComponent.Kind())
	if !ok {
		t.Fatalf("expected a PathFollow on the requester")
	}
	head := pf.Path[0].Pos
	if head.Distance(cp.Vector{X: 100, Y: -50}) > 75 {
		t.Fatalf("expected the newest request to win, path head %v", head)
	}
}

func TestPathPlannerSkipsDeadRequesters(t *testing.T) {
	w := ecs.NewWorld()
	g := lineGraph(t)
	sys := NewPathPlannerSystem(nav.NewPlanner(g))

	agent := ecs.CreateEntity(w)
	w.Events().Push(ecs.Event{Type: ecs.EventPathRequest, Data: ecs.PathRequestEvent{
		Src:       cp.Vector{X: -200, Y: -50},
		Dst:       cp.Vector{X: 100, Y: -50},
		Requester: agent,
	}})
	ecs.DestroyEntity(w, agent)

	sys.Update(w) // must not panic or resurrect the entity

	if ecs.IsAlive(w, agent) {
		t.Fatalf("planner must not revive dead requesters")
	}
}

func TestPathFollowerAdvancesLookAhead(t *testing.T) {
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	agent := spawnTestEnemy(t, w, pw, cp.Vector{X: 0, Y: 0})
	path := nav.Path{
		{Pos: cp.Vector{X: 200, Y: 0}, ID: 2},
		{Pos: cp.Vector{X: 100, Y: 0}, ID: 1},
		{Pos: cp.Vector{X: 0, Y: 0}, ID: 0},
	}
	if err := ecs.Add(w, agent, component.PathFollowComponent.Kind(), &component.PathFollow{Path: path}); err != nil {
		t.Fatal(err)
	}

	sys := NewPathFollowerSystem()

	sys.Update(w)
	pf, _ := ecs.Get(w, agent, component.PathFollowComponent.Kind())
	if !pf.HasNext || pf.Next.ID != 1 {
		t.Fatalf("expected look-ahead node 1, got %+v", pf)
	}
	if evts := w.Events().DrainType(ecs.EventNextWaypoint); len(evts) != 1 {
		t.Fatalf("expected one waypoint change event, got %d", len(evts))
	}

	// same position, same waypoint: no duplicate event
	sys.Update(w)
	if evts := w.Events().DrainType(ecs.EventNextWaypoint); len(evts) != 0 {
		t.Fatalf("expected no event without a waypoint change, got %d", len(evts))
	}

	// moving to the middle advances the look-ahead to the destination
	moveBody(t, w, agent, cp.Vector{X: 100, Y: 0})
	sys.Update(w)
	pf, _ = ecs.Get(w, agent, component.PathFollowComponent.Kind())
	if !pf.HasNext || pf.Next.ID != 2 {
		t.Fatalf("expected look-ahead node 2, got %+v", pf)
	}

	// at the destination the look-ahead clears
	moveBody(t, w, agent, cp.Vector{X: 200, Y: 0})
	sys.Update(w)
	pf, _ = ecs.Get(w, agent, component.PathFollowComponent.Kind())
	if pf.HasNext {
		t.Fatalf("expected arrival to clear the look-ahead, got %+v", pf)
	}
}

func TestWaypointGraphWaitsForSettleDelay(t *testing.T) {
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	graph := &nav.Graph{}
	spec := &prefabs.WaypointsSpec{
		Gap:                 prefabs.Vec2Spec{X: 100, Y: 100},
		Scale:               prefabs.Vec2Spec{X: 1, Y: 1},
		ConstructDelayTicks: 3,
	}
	sys := NewWaypointGraphSystem(graph, spec, 400, 200)
	w.AddSystem(sys)

	if graph.Len() == 0 {
		t.Fatalf("grid should be built up front")
	}

	w.Update()
	w.Update()
	if graph.Ready() {
		t.Fatalf("edges must not construct before the settle delay")
	}

	w.Update()
	w.Update()
	if !graph.Ready() {
		t.Fatalf("edges should be constructed after the settle delay")
	}
}
