package nav

import (
	"math"

	"github.com/jakecoffman/cp"
)

// PathNode is one step of a computed path.
type PathNode struct {
	Pos cp.Vector
	ID  NodeID
}

// Path is an ordered node list from destination (index 0) to source (last
// index). A pursuing agent walks it back to front. The path is owned by
// the agent it was computed for and is simply replaced by the next request.
type Path []PathNode

// Nearest returns the index of the path node closest to pos, scanning only
// the path's own nodes. ok is false on an empty path.
func (p Path) Nearest(pos cp.Vector) (int, bool) {
	if len(p) == 0 {
		return 0, false
	}
	best := 0
	bestDist := math.Inf(1)
	for i := range p {
		d := pos.Distance(p[i].Pos)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best, true
}

// NextWaypoint picks the look-ahead node an agent at pos should steer
// toward: the node one step closer to the destination than the nearest
// path node. ok is false when the agent's nearest node is already the
// destination end, meaning it has effectively arrived and the movement
// layer should fall back to direct pursuit. Re-evaluate every tick; the
// answer changes as the agent moves.
func (p Path) NextWaypoint(pos cp.Vector) (PathNode, bool) {
	idx, ok := p.Nearest(pos)
	if !ok || idx == 0 {
		return PathNode{}, false
	}
	return p[idx-1], true
}
