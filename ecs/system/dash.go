package system

import (
	"time"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

const (
	dashEffectTTL   = 300 * time.Millisecond
	dashEffectAlpha = 0.7
)

// startDash inserts Dashing and grants its speed bonus once.
func startDash(w *ecs.World, e ecs.Entity, bonus float64, trail time.Duration) {
	if ecs.Has(w, e, component.DashingComponent) {
		return
	}
	if trail <= 0 {
		trail = time.Second
	}
	if err := ecs.Add(w, e, component.DashingComponent, &component.Dashing{
		Bonus: bonus,
		Trail: common.NewTimer(trail, common.TimerRepeating),
	}); err != nil {
		return
	}
	if ch, ok := ecs.Get(w, e, component.CharacterComponent); ok {
		ch.AddSpeed(bonus)
	}
}

// stopDash removes Dashing and takes its bonus back.
func stopDash(w *ecs.World, e ecs.Entity) {
	d, ok := ecs.Get(w, e, component.DashingComponent)
	if !ok {
		return
	}
	if ch, ok := ecs.Get(w, e, component.CharacterComponent); ok {
		ch.AddSpeed(-d.Bonus)
	}
	ecs.Remove(w, e, component.DashingComponent)
}

// DashSystem ends dashes once the destination is reached or the rush is
// over, and leaves fading afterimages behind dashing entities.
type DashSystem struct{}

func NewDashSystem() *DashSystem {
	return &DashSystem{}
}

func (s *DashSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.DashingComponent, component.TransformComponent, func(e ecs.Entity, d *component.Dashing, tr *component.Transform) {
		r, hasRoutine := ecs.Get(w, e, component.RoutineComponent)
		if !ecs.Has(w, e, component.TargetPositionComponent) || !hasRoutine || r.Kind != component.RoutineRush {
			stopDash(w, e)
			return
		}
		if d.Trail.Tick(dt).JustFinished() {
			spawnAfterimage(w, *tr)
		}
	})

	ecs.ForEach2(w, component.DashEffectComponent, component.TTLComponent, func(_ ecs.Entity, fx *component.DashEffect, ttl *component.TTL) {
		fx.Alpha = common.Lerp(dashEffectAlpha, 0, ttl.Timer.Percent())
	})
}

func spawnAfterimage(w *ecs.World, at component.Transform) {
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TransformComponent, &at)
	_ = ecs.Add(w, e, component.DashEffectComponent, &component.DashEffect{Alpha: dashEffectAlpha})
	_ = ecs.Add(w, e, component.TTLComponent, &component.TTL{Timer: common.NewTimer(dashEffectTTL, common.TimerOnce)})
}
