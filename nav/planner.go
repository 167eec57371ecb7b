package nav

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Planner computes shortest paths over a Graph with single-source
// Dijkstra. Each request owns a private weight table; the table from the
// most recent run is published as an immutable snapshot for debug
// rendering, so no locking is needed anywhere.
type Planner struct {
	graph    *Graph
	snapshot map[NodeID]float64
}

func NewPlanner(g *Graph) *Planner {
	return &Planner{graph: g}
}

// ComputePath resolves the nearest nodes to src and dst and returns the
// shortest path between them ordered destination first, source last.
// ok is false when the graph is empty, the source node is isolated, or the
// destination is unreachable; those are soft failures the caller retries
// on a later tick.
func (p *Planner) ComputePath(src, dst cp.Vector) (Path, bool) {
	if p == nil || p.graph == nil {
		return nil, false
	}
	srcID, okSrc := p.graph.Nearest(src)
	dstID, okDst := p.graph.Nearest(dst)
	if !okSrc || !okDst {
		return nil, false
	}
	srcNode, _ := p.graph.Node(srcID)
	if len(srcNode.Edges) == 0 {
		return nil, false
	}

	weights := p.settle(srcID)
	p.snapshot = weights

	return p.backtrack(weights, srcID, dstID)
}

// settle runs Dijkstra to completion from start, visiting every node.
// Unvisited nodes with no tentative weight are treated as infinitely far
// and picked last; ties break on ascending node id, which keeps the result
// deterministic for a given build.
func (p *Planner) settle(start NodeID) map[NodeID]float64 {
	weights := make(map[NodeID]float64, p.graph.Len())
	visited := make(map[NodeID]bool, p.graph.Len())
	weights[start] = 0

	total := p.graph.Len()
	current := start
	for len(visited) < total {
		node, ok := p.graph.Node(current)
		if !ok {
			break
		}
		base, known := weights[current]
		if known {
			for _, edge := range node.Edges {
				if visited[edge.To] {
					continue
				}
				candidate := base + edge.Dist
				if w, ok := weights[edge.To]; !ok || candidate < w {
					weights[edge.To] = candidate
				}
			}
		}
		visited[current] = true

		next := NodeID(-1)
		nextWeight := math.Inf(1)
		p.graph.EachNode(func(id NodeID, _ Node) {
			if visited[id] {
				return
			}
			w, ok := weights[id]
			if !ok {
				w = math.Inf(1)
			}
			if next < 0 || w < nextWeight {
				next = id
				nextWeight = w
			}
		})
		if next < 0 {
			break
		}
		current = next
	}
	return weights
}

// backtrack walks from the destination toward the source and materializes
// the path in destination-to-source order. Each step picks the neighbor
// minimizing weight(neighbor) + edge weight; for nodes on a shortest path
// that sum equals the node's own settled weight, so the walk recovers a
// true shortest path rather than chasing the lowest absolute weight (which
// would happily take a single long edge straight back to the source).
func (p *Planner) backtrack(weights map[NodeID]float64, srcID, dstID NodeID) (Path, bool) {
	if _, reachable := weights[dstID]; !reachable {
		return nil, false
	}

	current := dstID
	node, _ := p.graph.Node(current)
	path := Path{{Pos: node.Pos, ID: current}}

	// a simple path can't revisit nodes, so the node count bounds the walk
	for steps := 0; current != srcID && steps < p.graph.Len(); steps++ {
		next := NodeID(-1)
		nextWeight := math.Inf(1)
		for _, edge := range node.Edges {
			w, ok := weights[edge.To]
			if !ok {
				continue
			}
			through := w + edge.Dist
			if next < 0 || through < nextWeight {
				next = edge.To
				nextWeight = through
			}
		}
		if next < 0 {
			return nil, false
		}
		node, _ = p.graph.Node(next)
		path = append(path, PathNode{Pos: node.Pos, ID: next})
		current = next
	}
	if current != srcID {
		return nil, false
	}
	return path, true
}

// WeightSnapshot returns a copy of the weight table from the most recent
// path computation. Safe to hand to a visualization consumer; mutating the
// copy has no effect on the planner.
func (p *Planner) WeightSnapshot() map[NodeID]float64 {
	if p == nil || p.snapshot == nil {
		return nil
	}
	out := make(map[NodeID]float64, len(p.snapshot))
	for id, w := range p.snapshot {
		out[id] = w
	}
	return out
}
