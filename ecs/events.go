package ecs

import "github.com/jakecoffman/cp"

// DistanceReached is emitted when an agent closes within Distance of its
// target.
type DistanceReached struct {
	Entity   Entity
	Distance float64
}

// DistanceExited is emitted when the target moves beyond Distance.
type DistanceExited struct {
	Entity   Entity
	Distance float64
}

// AttackFinished is emitted when an attack completes with the target still in
// range.
type AttackFinished struct {
	Entity Entity
}

// ProjectileSpawn asks for a projectile owned by Owner.
type ProjectileSpawn struct {
	Owner    Entity
	Position cp.Vector
	Velocity cp.Vector
	Angle    float64
}

// ProjectileHit reports a projectile sensor touching a damageable entity.
type ProjectileHit struct {
	Projectile Entity
	Target     Entity
}

// EventQueue is a FIFO queue of typed events. Events live for one tick:
// whatever is not drained is dropped when the tick ends.
type EventQueue struct {
	items []any
}

// Push adds an event.
func (q *EventQueue) Push(evt any) {
	if q == nil || evt == nil {
		return
	}
	q.items = append(q.items, evt)
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain removes and returns every queued event of type T in push order,
// leaving events of other types for their own consumers.
func Drain[T any](q *EventQueue) []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []T
	kept := q.items[:0]
	for _, item := range q.items {
		if evt, ok := item.(T); ok {
			out = append(out, evt)
			continue
		}
		kept = append(kept, item)
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = nil
	}
	q.items = kept
	return out
}

// Peek returns the queued events of type T without removing them.
func Peek[T any](q *EventQueue) []T {
	if q == nil {
		return nil
	}
	var out []T
	for _, item := range q.items {
		if evt, ok := item.(T); ok {
			out = append(out, evt)
		}
	}
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	clear(q.items)
	q.items = q.items[:0]
}
