package ecs

import "github.com/soras/bossrun/ecs/component"

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity kills an entity, removes its components, and tears down any
// physics body registered for it.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	w.removeAllComponents(e)
	if w.physicsWorld != nil {
		w.physicsWorld.RemoveBody(e)
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns all live entities.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.alive()
}

// Add attaches a component to an entity, replacing any existing value.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	w.store(kind.ID()).Set(int(e.id()), value)
	return nil
}

// Remove detaches a component from an entity.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	s := w.storeIfExists(kind.ID())
	return s.Remove(int(e.id()))
}

// Has reports whether an entity carries a component.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.storeIfExists(kind.ID()).Has(int(e.id()))
}

// Get returns the component pointer for an entity, or (nil, false).
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	v := w.storeIfExists(kind.ID()).Get(int(e.id()))
	if v == nil {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok
}

// First returns any one entity carrying the component.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	for _, id := range w.storeIfExists(kind.ID()).Entities() {
		if e, ok := w.reviveID(id); ok {
			return e, true
		}
	}
	return 0, false
}

// ForEach visits every live entity carrying the component.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.storeIfExists(kind.ID())
	// copy the id list so callbacks may add or destroy entities
	ids := append([]int(nil), s.Entities()...)
	for _, id := range ids {
		e, ok := w.reviveID(id)
		if !ok {
			continue
		}
		v, ok := s.Get(id).(*T)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

// ForEach2 visits entities carrying both components.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.storeIfExists(ka.ID())
	sb := w.storeIfExists(kb.ID())
	ids := append([]int(nil), sa.Entities()...)
	for _, id := range ids {
		if !sb.Has(id) {
			continue
		}
		e, ok := w.reviveID(id)
		if !ok {
			continue
		}
		a, okA := sa.Get(id).(*A)
		b, okB := sb.Get(id).(*B)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

// ForEach3 visits entities carrying all three components.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.storeIfExists(ka.ID())
	sb := w.storeIfExists(kb.ID())
	sc := w.storeIfExists(kc.ID())
	ids := append([]int(nil), sa.Entities()...)
	for _, id := range ids {
		if !sb.Has(id) || !sc.Has(id) {
			continue
		}
		e, ok := w.reviveID(id)
		if !ok {
			continue
		}
		a, okA := sa.Get(id).(*A)
		b, okB := sb.Get(id).(*B)
		c, okC := sc.Get(id).(*C)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}

// reviveID rebuilds a live entity handle from a raw store id.
func (w *World) reviveID(id int) (Entity, bool) {
	if id <= 0 || id > len(w.entities.gen) {
		return 0, false
	}
	e := makeEntity(entityID(id), w.entities.gen[id-1])
	if !w.entities.isAlive(e) {
		return 0, false
	}
	return e, true
}
