package ecs

import "github.com/jakecoffman/cp"

// EventType identifies event payload kinds on the world queue.
type EventType string

const (
	// EventPathRequest asks the path planner for a route between two world
	// positions on behalf of an entity. Payload: PathRequestEvent.
	EventPathRequest EventType = "path_request"
	// EventNextWaypoint announces that an entity's look-ahead waypoint
	// changed. Payload: NextWaypointEvent.
	EventNextWaypoint EventType = "next_waypoint"
	// EventShoot is a directional attack intent. Payload: ShootEvent.
	EventShoot EventType = "shoot"
)

// Event is a generic payload on the world queue.
type Event struct {
	Type EventType
	Data any
}

// PathRequestEvent is emitted by chasing agents every tick. A request
// superseded before the planner runs is simply overwritten by the newest
// one for the same requester.
type PathRequestEvent struct {
	Src       cp.Vector
	Dst       cp.Vector
	Requester Entity
}

// NextWaypointEvent reports a change of an agent's steering target.
type NextWaypointEvent struct {
	Agent Entity
	Pos   cp.Vector
}

// ShootEvent spawns a projectile at Origin moving along Dir (unit vector).
type ShootEvent struct {
	Origin    cp.Vector
	Dir       cp.Vector
	Shooter   Entity
	FromEnemy bool
}

// EventQueue is a FIFO queue drained by systems within the same tick.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// DrainType removes and returns all events of one type, preserving the
// relative order of everything else.
func (q *EventQueue) DrainType(t EventType) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	rest := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
		} else {
			rest = append(rest, evt)
		}
	}
	q.items = rest
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
