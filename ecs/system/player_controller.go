package system

import (
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// PlayerControllerSystem turns Input into movement intent and fireballs.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent,
		component.InputComponent,
		component.MovementComponent,
	)
	for _, e := range entities {
		input, ok := ecs.Get(w, e, component.InputComponent)
		if !ok {
			continue
		}
		mv, ok := ecs.Get(w, e, component.MovementComponent)
		if !ok {
			continue
		}

		mv.Direction = input.Move
		mv.Moving = input.Move.LengthSq() > 0

		if !input.Fire {
			continue
		}
		fireball, ok := ecs.Get(w, e, component.FireballComponent)
		if !ok {
			continue
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		dir := common.NormalizeOrZero(input.Aim.Sub(tr.Position()))
		if dir.LengthSq() == 0 || !fireball.Cooldown.Trigger() {
			continue
		}
		w.Events().Push(ecs.ProjectileSpawn{
			Owner:    e,
			Position: tr.Position().Add(dir.Mult(common.SpriteDrawSize)),
			Velocity: dir.Mult(fireball.Speed),
			Angle:    common.Angle(dir),
		})
	}
}
