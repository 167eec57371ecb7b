// Package nav implements the waypoint graph, shortest-path planner, and
// path follower that drive minion navigation. It is independent of the ECS;
// callers supply a visibility probe and world positions.
package nav

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
)

// NodeID indexes a node in the graph's arena. IDs stay stable for the
// lifetime of a build; pruned nodes leave tombstones behind.
type NodeID int

// Edge is a traversable connection to another node. Weights are Euclidean
// distances and always symmetric.
type Edge struct {
	To   NodeID
	Dist float64
}

// Node is a fixed point in the navigation graph.
type Node struct {
	Pos     cp.Vector
	Edges   []Edge
	removed bool
}

// VisibleFunc reports whether the straight segment between two world
// positions is unobstructed by scene geometry.
type VisibleFunc func(a, b cp.Vector) bool

// Graph is the static navigation mesh. Build populates nodes on a grid;
// ConstructEdges connects mutually visible pairs once the scene has
// settled. The graph is not safe for concurrent mutation.
type Graph struct {
	nodes        []Node
	constructing bool
}

// Build populates a regular grid of nodes across a window of the given
// pixel size, spaced by gap and transformed by scale and offset. The grid
// is centered on the origin. Any previous nodes and edges are discarded.
// Deterministic for the same inputs.
func (g *Graph) Build(width, height float64, gap, scale, offset cp.Vector) {
	if g == nil || gap.X <= 0 || gap.Y <= 0 {
		return
	}
	g.nodes = g.nodes[:0]
	g.constructing = false

	xMax := int(width / gap.X / 2.0)
	yMax := int(height / gap.Y / 2.0)
	for yi := -yMax; yi < yMax; yi++ {
		for xi := -xMax; xi < xMax; xi++ {
			pos := cp.Vector{
				X: (float64(xi)*gap.X + offset.X) * scale.X,
				Y: (float64(yi)*gap.Y + offset.Y) * scale.Y,
			}
			g.nodes = append(g.nodes, Node{Pos: pos})
		}
	}
}

// ConstructEdges connects every unordered node pair whose joining segment
// passes the visibility probe, then prunes nodes left without edges (nodes
// that landed inside obstacles). It is a no-op when every node already has
// an edge, and reports whether a construction pass ran. A nil probe means
// the visibility backend isn't ready; the call is skipped and may be
// retried. Must not be invoked reentrantly; a second call during a pass
// returns false.
func (g *Graph) ConstructEdges(visible VisibleFunc) bool {
	if g == nil || visible == nil || g.constructing {
		return false
	}
	if !g.hasOrphan() {
		return false
	}
	g.constructing = true
	defer func() { g.constructing = false }()

	for i := range g.nodes {
		if g.nodes[i].removed {
			continue
		}
		for j := i + 1; j < len(g.nodes); j++ {
			if g.nodes[j].removed {
				continue
			}
			if !visible(g.nodes[i].Pos, g.nodes[j].Pos) {
				continue
			}
			dist := g.nodes[i].Pos.Distance(g.nodes[j].Pos)
			g.nodes[i].Edges = append(g.nodes[i].Edges, Edge{To: NodeID(j), Dist: dist})
			g.nodes[j].Edges = append(g.nodes[j].Edges, Edge{To: NodeID(i), Dist: dist})
		}
	}

	for i := range g.nodes {
		if !g.nodes[i].removed && len(g.nodes[i].Edges) == 0 {
			g.nodes[i].removed = true
			log.Printf("nav: orphaned node removed at (%.1f, %.1f)", g.nodes[i].Pos.X, g.nodes[i].Pos.Y)
		}
	}
	return true
}

func (g *Graph) hasOrphan() bool {
	for i := range g.nodes {
		if !g.nodes[i].removed && len(g.nodes[i].Edges) == 0 {
			return true
		}
	}
	return false
}

// Ready reports whether edge construction has completed.
func (g *Graph) Ready() bool {
	return g != nil && len(g.nodes) > 0 && !g.hasOrphan()
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	n := 0
	for i := range g.nodes {
		if !g.nodes[i].removed {
			n++
		}
	}
	return n
}

// Node returns the node for id. ok is false for tombstones and
// out-of-range ids.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if g == nil || id < 0 || int(id) >= len(g.nodes) || g.nodes[id].removed {
		return Node{}, false
	}
	return g.nodes[id], true
}

// EachNode visits every live node in id order.
func (g *Graph) EachNode(fn func(id NodeID, n Node)) {
	if g == nil || fn == nil {
		return
	}
	for i := range g.nodes {
		if g.nodes[i].removed {
			continue
		}
		fn(NodeID(i), g.nodes[i])
	}
}

// Nearest maps a world position to its closest live node by Euclidean
// distance. ok is false on an empty graph. Ties keep the lowest id, so the
// mapping is deterministic.
func (g *Graph) Nearest(pos cp.Vector) (NodeID, bool) {
	if g == nil {
		return 0, false
	}
	best := NodeID(-1)
	bestDist := math.Inf(1)
	for i := range g.nodes {
		if g.nodes[i].removed {
			continue
		}
		d := pos.Distance(g.nodes[i].Pos)
		if d < bestDist {
			bestDist = d
			best = NodeID(i)
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
