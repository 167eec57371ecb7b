package component

import "github.com/soras/bossrun/nav"

// PathFollow stores an agent's current computed path and look-ahead
// waypoint. The path planner replaces Path wholesale on each fulfilled
// request; the follower refreshes Next every tick.
type PathFollow struct {
	Path    nav.Path
	Next    nav.PathNode
	HasNext bool
}

var PathFollowComponent = NewComponent[PathFollow]()
