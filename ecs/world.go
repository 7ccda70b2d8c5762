package ecs

import (
	"time"

	"github.com/milk9111/arena/ecs/component"
)

// World owns entities, component stores, the per-tick event queue and the
// current frame delta.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	delta    time.Duration
	elapsed  time.Duration
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity drops every component of e and retires its handle. It
// reports false for handles that are already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, set := range w.stores {
		set.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetDelta records the duration of the frame being simulated.
func (w *World) SetDelta(dt time.Duration) {
	w.delta = dt
	w.elapsed += dt
}

// Delta is the duration of the current frame.
func (w *World) Delta() time.Duration {
	return w.delta
}

// Elapsed is the total simulated time.
func (w *World) Elapsed() time.Duration {
	return w.elapsed
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	set, ok := w.stores[id]
	if !ok && create {
		set = newSparseSet()
		w.stores[id] = set
	}
	return set
}

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

func Entities(w *World) []Entity {
	return w.Entities()
}
