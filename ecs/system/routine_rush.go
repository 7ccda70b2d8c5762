package system

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// RushRoutineSystem dashes agents at their target. The timer only runs while
// the agent has no destination, so each dash completes before the next one is
// planned.
type RushRoutineSystem struct {
	rng *rand.Rand
}

func NewRushRoutineSystem(rng *rand.Rand) *RushRoutineSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &RushRoutineSystem{rng: rng}
}

func (s *RushRoutineSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.RoutineComponent, component.TransformComponent, func(e ecs.Entity, r *component.Routine, tr *component.Transform) {
		if r.Kind != component.RoutineRush || r.Rush == nil {
			return
		}
		if ecs.Has(w, e, component.TargetPositionComponent) {
			return
		}
		_, target, ok := resolveTarget(w, e)
		if !ok {
			return
		}
		rush := r.Rush
		if !rush.Timer.Tick(dt).JustFinished() {
			return
		}
		rush.Timer.Reset()

		d2 := tr.Position().DistanceSq(target)
		switch {
		case d2 > rush.Distance*rush.Distance:
			w.Events().Push(ecs.DistanceExited{Entity: e, Distance: rush.Distance})
		case rush.Reach > 0 && d2 < rush.Reach*rush.Reach:
			w.Events().Push(ecs.DistanceReached{Entity: e, Distance: rush.Reach})
			return
		}

		dest := target
		if rush.Jitter > 0 {
			dest = dest.Add(cp.Vector{
				X: (s.rng.Float64()*2 - 1) * rush.Jitter,
				Y: (s.rng.Float64()*2 - 1) * rush.Jitter,
			})
		}
		_ = ecs.Add(w, e, component.TargetPositionComponent, &component.TargetPosition{Point: dest})
		startDash(w, e, rush.DashBonus, rush.DashTrail)
	})
}
