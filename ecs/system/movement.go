package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// arriveDistanceSq is how close, squared, a mover gets before its
// destination counts as reached.
const arriveDistanceSq = 10.0

// MovementSystem turns intent into velocity. A TargetPosition takes
// precedence over steering; AI without either stands still. Entities without
// a physics body are integrated here directly.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta().Seconds()

	ecs.ForEach2(w, component.MovementComponent, component.TransformComponent, func(e ecs.Entity, mv *component.Movement, tr *component.Transform) {
		if tp, ok := ecs.Get(w, e, component.TargetPositionComponent); ok {
			delta := tp.Point.Sub(tr.Position())
			if delta.LengthSq() < arriveDistanceSq {
				ecs.Remove(w, e, component.TargetPositionComponent)
				mv.Stop()
			} else {
				mv.Direction = common.NormalizeOrZero(delta)
				mv.Moving = true
			}
		} else if ecs.Has(w, e, component.AITagComponent) && !ecs.Has(w, e, component.SteerAIComponent) {
			mv.Stop()
		}

		if ch, ok := ecs.Get(w, e, component.CharacterComponent); ok {
			if mv.Moving {
				mv.Velocity = mv.Direction.Mult(ch.Speed)
			} else {
				mv.Velocity = cp.Vector{}
			}
		}

		if facing, ok := ecs.Get(w, e, component.FacingComponent); ok {
			if mv.Velocity.X < 0 {
				facing.Left = true
			} else if mv.Velocity.X > 0 {
				facing.Left = false
			}
		}

		if !ecs.Has(w, e, component.PhysicsBodyComponent) {
			tr.SetPosition(tr.Position().Add(mv.Velocity.Mult(dt)))
		}
	})
}
