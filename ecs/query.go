package ecs

import "github.com/milk9111/arena/ecs/component"

// Query returns the live entities that have every listed component, in the
// dense order of the smallest store.
func (w *World) Query(kinds ...component.Kinder) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		set := w.stores[k.ID()]
		if set.Len() == 0 {
			return nil
		}
		sets = append(sets, set)
	}
	smallest := 0
	for i, set := range sets {
		if set.Len() < sets[smallest].Len() {
			smallest = i
		}
	}

	var out []Entity
	for _, e := range sets[smallest].Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		match := true
		for i, set := range sets {
			if i != smallest && !set.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity that has kind.
func (w *World) First(kind component.Kinder) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	for _, e := range w.stores[kind.ID()].Entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}
