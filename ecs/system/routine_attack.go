package system

import (
	"math"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// AttackRoutineSystem runs the wind-up, fire and recovery phases. Each cycle
// pushes exactly one ProjectileSpawn and ends with exactly one of
// AttackFinished or DistanceExited.
type AttackRoutineSystem struct{}

func NewAttackRoutineSystem() *AttackRoutineSystem {
	return &AttackRoutineSystem{}
}

func (s *AttackRoutineSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.RoutineComponent, component.TransformComponent, func(e ecs.Entity, r *component.Routine, tr *component.Transform) {
		if r.Kind != component.RoutineAttack || r.Attack == nil {
			return
		}
		_, target, ok := resolveTarget(w, e)
		if !ok {
			return
		}
		attack := r.Attack
		ratio := -1.0
		if facing, ok := ecs.Get(w, e, component.FacingComponent); ok && facing.Left {
			ratio = 1.0
		}

		switch attack.Phase {
		case component.AttackStart:
			attack.Start.Tick(dt)
			setWeaponRotation(w, e, attack.Start.Percent()*-math.Pi/2*ratio)
			if attack.Start.JustFinished() {
				attack.Phase = component.AttackSpawn
			}
		case component.AttackSpawn:
			source := tr.Position()
			dir := common.NormalizeOrZero(target.Sub(source))
			w.Events().Push(ecs.ProjectileSpawn{
				Owner:    e,
				Position: source.Add(dir.Mult(common.SpriteDrawSize)),
				Velocity: dir.Mult(attack.ProjectileSpeed),
				Angle:    common.Angle(dir),
			})
			attack.Phase = component.AttackFinish
		case component.AttackFinish:
			attack.Finish.Tick(dt)
			setWeaponRotation(w, e, attack.Finish.PercentLeft()*-math.Pi/2*ratio)
			if !attack.Finish.JustFinished() {
				return
			}
			if tr.Position().DistanceSq(target) > attack.Distance*attack.Distance {
				w.Events().Push(ecs.DistanceExited{Entity: e, Distance: attack.Distance})
			} else {
				w.Events().Push(ecs.AttackFinished{Entity: e})
			}
		}
	})
}

func setWeaponRotation(w *ecs.World, e ecs.Entity, rotation float64) {
	if weapon, ok := ecs.Get(w, e, component.WeaponComponent); ok {
		weapon.Rotation = rotation
	}
}
