package system

import (
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// FollowRoutineSystem walks agents toward their target. Once inside the
// follow distance it drops the destination, removes the routine and emits
// DistanceReached.
type FollowRoutineSystem struct{}

func NewFollowRoutineSystem() *FollowRoutineSystem {
	return &FollowRoutineSystem{}
}

func (s *FollowRoutineSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.RoutineComponent, component.TransformComponent, func(e ecs.Entity, r *component.Routine, tr *component.Transform) {
		if r.Kind != component.RoutineFollow || r.Follow == nil {
			return
		}
		_, target, ok := resolveTarget(w, e)
		if !ok {
			return
		}
		follow := r.Follow

		if tr.Position().DistanceSq(target) < follow.Distance*follow.Distance {
			ecs.Remove(w, e, component.TargetPositionComponent)
			ecs.Remove(w, e, component.RoutineComponent)
			w.Events().Push(ecs.DistanceReached{Entity: e, Distance: follow.Distance})
			return
		}

		if !follow.Timer.Tick(dt).JustFinished() {
			return
		}
		if tp, ok := ecs.Get(w, e, component.TargetPositionComponent); ok {
			tp.Point = target
			return
		}
		_ = ecs.Add(w, e, component.TargetPositionComponent, &component.TargetPosition{Point: target})
	})
}
