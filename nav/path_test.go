package nav

import (
	"testing"

	"github.com/jakecoffman/cp"
)

// threeNodePath is ordered destination (id 2) to source (id 0).
func threeNodePath() Path {
	return Path{
		{Pos: cp.Vector{X: 200, Y: 0}, ID: 2},
		{Pos: cp.Vector{X: 100, Y: 0}, ID: 1},
		{Pos: cp.Vector{X: 0, Y: 0}, ID: 0},
	}
}

func TestNextWaypointLookAhead(t *testing.T) {
	cases := []struct {
		name    string
		pos     cp.Vector
		wantID  NodeID
		arrived bool
	}{
		{"at_source_heads_to_middle", cp.Vector{X: 5, Y: 3}, 1, false},
		{"at_middle_heads_to_destination", cp.Vector{X: 95, Y: -2}, 2, false},
		{"past_middle_still_destination", cp.Vector{X: 130, Y: 0}, 2, false},
		{"at_destination_arrived", cp.Vector{X: 198, Y: 1}, 0, true},
	}

	p := threeNodePath()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			next, ok := p.NextWaypoint(c.pos)
			if c.arrived {
				if ok {
					t.Fatalf("expected arrival, got waypoint %+v", next)
				}
				return
			}
			if !ok {
				t.Fatalf("expected a waypoint")
			}
			if next.ID != c.wantID {
				t.Fatalf("expected waypoint %d, got %d", c.wantID, next.ID)
			}
		})
	}
}

func TestNextWaypointSingleNode(t *testing.T) {
	p := Path{{Pos: cp.Vector{X: 50, Y: 50}, ID: 3}}
	if _, ok := p.NextWaypoint(cp.Vector{}); ok {
		t.Fatalf("single-node path should always read as arrived")
	}
}

func TestNearestScansPathOnly(t *testing.T) {
	p := threeNodePath()
	// closer to an off-path position than to any node; still snaps to the
	// nearest node on the path
	idx, ok := p.Nearest(cp.Vector{X: 120, Y: 300})
	if !ok {
		t.Fatalf("expected a nearest index")
	}
	if idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
}

func TestNextWaypointEmptyPath(t *testing.T) {
	var p Path
	if _, ok := p.NextWaypoint(cp.Vector{}); ok {
		t.Fatalf("empty path should not produce a waypoint")
	}
}
