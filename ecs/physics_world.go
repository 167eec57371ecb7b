package ecs

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/soras/bossrun/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBoss
	collisionTypePlayer
	collisionTypeEnemy
	collisionTypePlayerBullet
	collisionTypeEnemyBullet
)

// Filter categories. Sight rays only test against the solid category, so
// actors and bullets never occlude each other's line of sight.
const (
	categorySolid uint = 1 << iota
	categoryPlayer
	categoryEnemy
	categoryBullet
)

// BulletHit records a bullet overlapping a damageable actor. Collected
// during the space step and drained by the damage pass afterwards.
type BulletHit struct {
	Bullet Entity
	Target Entity
}

// PhysicsWorld owns the Chipmunk space: arena geometry, actor bodies, and
// the segment-query visibility probe used by navigation and the enemy AI.
// Gravity is zero; this is a top-down scene.
type PhysicsWorld struct {
	space *cp.Space

	shapeToEntity map[*cp.Shape]Entity
	bodies        map[Entity]*cp.Body

	hits    []BulletHit
	expired []Entity
}

// NewPhysicsWorld creates an empty zero-gravity space with bullet
// collision handlers installed.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	pw := &PhysicsWorld{
		space:         space,
		shapeToEntity: make(map[*cp.Shape]Entity),
		bodies:        make(map[Entity]*cp.Body),
	}
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// Step advances the simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}

// AddStaticBox adds solid scene geometry centered at (x, y).
func (pw *PhysicsWorld) AddStaticBox(x, y, w, h float64) {
	if pw == nil || pw.space == nil {
		return
	}
	bb := cp.BB{L: x - w/2, B: y - h/2, R: x + w/2, T: y + h/2}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetElasticity(0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categorySolid, cp.ALL_CATEGORIES))
	pw.space.AddShape(shape)
}

// AddArenaWalls encloses a centered halfW x halfH arena with segment walls.
func (pw *PhysicsWorld) AddArenaWalls(halfW, halfH float64) {
	if pw == nil || pw.space == nil {
		return
	}
	corners := []cp.Vector{
		{X: -halfW, Y: -halfH},
		{X: halfW, Y: -halfH},
		{X: halfW, Y: halfH},
		{X: -halfW, Y: halfH},
	}
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		seg := cp.NewSegment(pw.space.StaticBody, a, b, 2)
		seg.SetElasticity(0)
		seg.SetFriction(0.8)
		seg.SetCollisionType(collisionTypeSolid)
		seg.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categorySolid, cp.ALL_CATEGORIES))
		pw.space.AddShape(seg)
	}
}

// EnsureBody builds and registers a Chipmunk body for an entity from its
// transform and collider, or returns the existing one. Actor bodies get
// infinite moment; facing is game-driven, not physics-driven.
func (pw *PhysicsWorld) EnsureBody(e Entity, t *component.Transform, col *component.Collider, body *component.PhysicsBody) *component.PhysicsBody {
	if pw == nil || pw.space == nil || !e.Valid() || t == nil || col == nil {
		return body
	}
	if body != nil && body.Body != nil {
		return body
	}
	if body == nil {
		body = &component.PhysicsBody{}
	}

	cpBody := cp.NewBody(1, math.Inf(1))
	cpBody.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	shape := cp.NewBox(cpBody, col.Width, col.Height, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetSensor(col.Sensor)

	switch col.Kind {
	case component.ColliderPlayer:
		shape.SetCollisionType(collisionTypePlayer)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryPlayer, cp.ALL_CATEGORIES&^categoryPlayer))
	case component.ColliderEnemy:
		shape.SetCollisionType(collisionTypeEnemy)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryEnemy, cp.ALL_CATEGORIES))
	case component.ColliderPlayerBullet:
		shape.SetCollisionType(collisionTypePlayerBullet)
		shape.SetSensor(true)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryBullet, categorySolid|categoryEnemy))
	case component.ColliderEnemyBullet:
		shape.SetCollisionType(collisionTypeEnemyBullet)
		shape.SetSensor(true)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryBullet, categorySolid|categoryPlayer))
	default:
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categorySolid, cp.ALL_CATEGORIES))
	}

	pw.space.AddBody(cpBody)
	pw.space.AddShape(shape)

	pw.shapeToEntity[shape] = e
	pw.bodies[e] = cpBody

	body.Body = cpBody
	body.Shape = shape
	return body
}

// RegisterBody records an externally built body (the boss's kinematic
// body) so RemoveBody can tear it down with the entity.
func (pw *PhysicsWorld) RegisterBody(e Entity, body *cp.Body) {
	if pw == nil || body == nil || !e.Valid() {
		return
	}
	pw.bodies[e] = body
}

// AddBossShape attaches an extra offset box (arm, shield, weapon) to an
// existing body. Boss shapes count as solid scene geometry, so they block
// sight lines and waypoint edges.
func (pw *PhysicsWorld) AddBossShape(e Entity, body *cp.Body, offsetX, offsetY, w, h float64) *cp.Shape {
	if pw == nil || pw.space == nil || body == nil {
		return nil
	}
	bb := cp.BB{L: offsetX - w/2, B: offsetY - h/2, R: offsetX + w/2, T: offsetY + h/2}
	shape := cp.NewBox2(body, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeBoss)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categorySolid, cp.ALL_CATEGORIES))
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e
	return shape
}

// RemoveBody tears down the body and shapes registered for an entity.
func (pw *PhysicsWorld) RemoveBody(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	body, ok := pw.bodies[e]
	if !ok {
		return
	}
	var shapes []*cp.Shape
	body.EachShape(func(s *cp.Shape) {
		shapes = append(shapes, s)
	})
	for _, s := range shapes {
		delete(pw.shapeToEntity, s)
		pw.space.RemoveShape(s)
	}
	pw.space.RemoveBody(body)
	delete(pw.bodies, e)
}

// RaycastVisible reports whether the segment between two world positions
// is free of solid scene geometry. This single query backs both waypoint
// edge construction and the AI's direct-pursuit/attack checks.
func (pw *PhysicsWorld) RaycastVisible(a, b cp.Vector) bool {
	if pw == nil || pw.space == nil {
		return false
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categorySolid)
	info := pw.space.SegmentQueryFirst(a, b, 1, filter)
	return info.Shape == nil
}

func (pw *PhysicsWorld) setupHandlers() {
	pairs := []struct {
		bullet cp.CollisionType
		victim cp.CollisionType
	}{
		{collisionTypePlayerBullet, collisionTypeEnemy},
		{collisionTypePlayerBullet, collisionTypeBoss},
		{collisionTypeEnemyBullet, collisionTypePlayer},
	}
	for _, p := range pairs {
		handler := pw.space.NewCollisionHandler(p.bullet, p.victim)
		handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
			a, b := arb.Shapes()
			bullet, okA := pw.shapeToEntity[a]
			target, okB := pw.shapeToEntity[b]
			if okA && okB {
				pw.hits = append(pw.hits, BulletHit{Bullet: bullet, Target: target})
			}
			return false
		}
	}

	expire := func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		a, _ := arb.Shapes()
		if bullet, ok := pw.shapeToEntity[a]; ok {
			pw.expired = append(pw.expired, bullet)
		}
		return false
	}
	pw.space.NewCollisionHandler(collisionTypePlayerBullet, collisionTypeSolid).BeginFunc = expire
	pw.space.NewCollisionHandler(collisionTypeEnemyBullet, collisionTypeSolid).BeginFunc = expire
	pw.space.NewCollisionHandler(collisionTypeEnemyBullet, collisionTypeBoss).BeginFunc = expire
}

// DrainHits returns bullet hits recorded since the last drain.
func (pw *PhysicsWorld) DrainHits() []BulletHit {
	if pw == nil || len(pw.hits) == 0 {
		return nil
	}
	out := pw.hits
	pw.hits = nil
	return out
}

// DrainExpired returns bullets that struck scene geometry.
func (pw *PhysicsWorld) DrainExpired() []Entity {
	if pw == nil || len(pw.expired) == 0 {
		return nil
	}
	out := pw.expired
	pw.expired = nil
	return out
}
