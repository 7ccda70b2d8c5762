package system

import (
	"math"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

const (
	wiggleSpeed     = 50.0
	wiggleMagnitude = math.Pi / 8 / 4
)

// WiggleSystem rocks moving characters and straightens them when they stop.
type WiggleSystem struct{}

func NewWiggleSystem() *WiggleSystem {
	return &WiggleSystem{}
}

func (s *WiggleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta().Seconds()

	ecs.ForEach2(w, component.MovementComponent, component.CharacterComponent, func(e ecs.Entity, mv *component.Movement, _ *component.Character) {
		wiggling := ecs.Has(w, e, component.WiggleComponent)
		switch {
		case mv.Moving && !wiggling:
			_ = ecs.Add(w, e, component.WiggleComponent, &component.Wiggle{Magnitude: wiggleMagnitude, Speed: wiggleSpeed})
		case !mv.Moving && wiggling:
			ecs.Remove(w, e, component.WiggleComponent)
			if tr, ok := ecs.Get(w, e, component.TransformComponent); ok {
				tr.Rotation = 0
			}
		}
	})

	ecs.ForEach2(w, component.WiggleComponent, component.TransformComponent, func(_ ecs.Entity, wg *component.Wiggle, tr *component.Transform) {
		wg.Act = math.Mod(wg.Act+wg.Speed*dt, 2*math.Pi)
		tr.Rotation = math.Sin(wg.Act) * wg.Magnitude
	})
}
