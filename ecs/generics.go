package ecs

import (
	"fmt"

	"github.com/milk9111/arena/ecs/component"
)

// Add inserts or replaces the component value for e.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return fmt.Errorf("add %s: %w", e, component.ErrEntityNotAlive)
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !handle.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	w.store(handle.ID(), true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	return w.store(handle.ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(handle.ID(), false).Has(e)
}

// Get returns the stored pointer, so callers mutate in place.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	value, ok := w.store(handle.ID(), false).Get(e).(*T)
	return value, ok
}

// ForEach visits every live entity with a. Entities destroyed or stripped of
// a by an earlier callback in the same pass are skipped.
func ForEach[A any](w *World, a component.ComponentHandle[A], fn func(Entity, *A)) {
	for _, e := range w.Query(a) {
		va, ok := Get(w, e, a)
		if !ok {
			continue
		}
		fn(e, va)
	}
}

func ForEach2[A, B any](w *World, a component.ComponentHandle[A], b component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(a, b) {
		va, okA := Get(w, e, a)
		vb, okB := Get(w, e, b)
		if !okA || !okB {
			continue
		}
		fn(e, va, vb)
	}
}

func ForEach3[A, B, C any](w *World, a component.ComponentHandle[A], b component.ComponentHandle[B], c component.ComponentHandle[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range w.Query(a, b, c) {
		va, okA := Get(w, e, a)
		vb, okB := Get(w, e, b)
		vc, okC := Get(w, e, c)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, va, vb, vc)
	}
}
