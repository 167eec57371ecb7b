package nav

import (
	"testing"

	"github.com/jakecoffman/cp"
)

// triangleGraph wires three colinear nodes with hand-set edge weights: the
// direct A-C edge costs more than going through B.
func triangleGraph() *Graph {
	return &Graph{nodes: []Node{
		{Pos: cp.Vector{X: 0, Y: 0}, Edges: []Edge{{To: 1, Dist: 10}, {To: 2, Dist: 30}}},  // A
		{Pos: cp.Vector{X: 1, Y: 0}, Edges: []Edge{{To: 0, Dist: 10}, {To: 2, Dist: 10}}},  // B
		{Pos: cp.Vector{X: 2, Y: 0}, Edges: []Edge{{To: 0, Dist: 30}, {To: 1, Dist: 10}}},  // C
	}}
}

func TestComputePathPrefersCheaperRoute(t *testing.T) {
	p := NewPlanner(triangleGraph())

	path, ok := p.ComputePath(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 2, Y: 0})
	if !ok {
		t.Fatalf("expected a path")
	}
	want := []NodeID{2, 1, 0} // destination first
	if len(path) != len(want) {
		t.Fatalf("expected %d nodes, got %d (%v)", len(want), len(path), path)
	}
	for i, id := range want {
		if path[i].ID != id {
			t.Fatalf("node %d: expected id %d, got %d", i, id, path[i].ID)
		}
	}

	weights := p.WeightSnapshot()
	if weights[2] != 20 {
		t.Fatalf("expected settled weight 20 at destination, got %v", weights[2])
	}
}

func TestComputePathSnapsToNearestNodes(t *testing.T) {
	p := NewPlanner(triangleGraph())

	// off-grid endpoints snap to their closest nodes
	path, ok := p.ComputePath(cp.Vector{X: -0.4, Y: 0.2}, cp.Vector{X: 2.3, Y: -0.1})
	if !ok {
		t.Fatalf("expected a path")
	}
	if path[0].ID != 2 || path[len(path)-1].ID != 0 {
		t.Fatalf("expected path from node 0 to node 2, got %v", path)
	}
}

func TestComputePathFailures(t *testing.T) {
	t.Run("empty_graph", func(t *testing.T) {
		p := NewPlanner(&Graph{})
		if _, ok := p.ComputePath(cp.Vector{}, cp.Vector{X: 1}); ok {
			t.Fatalf("expected failure on empty graph")
		}
	})

	t.Run("isolated_source", func(t *testing.T) {
		g := &Graph{nodes: []Node{
			{Pos: cp.Vector{X: 0, Y: 0}},
			{Pos: cp.Vector{X: 100, Y: 0}, Edges: []Edge{{To: 2, Dist: 10}}},
			{Pos: cp.Vector{X: 110, Y: 0}, Edges: []Edge{{To: 1, Dist: 10}}},
		}}
		p := NewPlanner(g)
		if _, ok := p.ComputePath(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 110, Y: 0}); ok {
			t.Fatalf("expected failure for isolated source")
		}
	})

	t.Run("unreachable_destination", func(t *testing.T) {
		// two disconnected pairs
		g := &Graph{nodes: []Node{
			{Pos: cp.Vector{X: 0, Y: 0}, Edges: []Edge{{To: 1, Dist: 10}}},
			{Pos: cp.Vector{X: 10, Y: 0}, Edges: []Edge{{To: 0, Dist: 10}}},
			{Pos: cp.Vector{X: 200, Y: 0}, Edges: []Edge{{To: 3, Dist: 10}}},
			{Pos: cp.Vector{X: 210, Y: 0}, Edges: []Edge{{To: 2, Dist: 10}}},
		}}
		p := NewPlanner(g)
		if _, ok := p.ComputePath(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 210, Y: 0}); ok {
			t.Fatalf("expected failure for unreachable destination")
		}
	})

	t.Run("same_node", func(t *testing.T) {
		p := NewPlanner(triangleGraph())
		path, ok := p.ComputePath(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 0.2, Y: 0})
		if !ok {
			t.Fatalf("expected a trivial path")
		}
		if len(path) != 1 || path[0].ID != 0 {
			t.Fatalf("expected single-node path, got %v", path)
		}
	})
}

func TestWeightSnapshotIsACopy(t *testing.T) {
	p := NewPlanner(triangleGraph())
	if _, ok := p.ComputePath(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 2, Y: 0}); !ok {
		t.Fatalf("expected a path")
	}

	snap := p.WeightSnapshot()
	snap[0] = 999
	if again := p.WeightSnapshot(); again[0] == 999 {
		t.Fatalf("snapshot mutation leaked into the planner")
	}
}
