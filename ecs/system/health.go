package system

import (
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

// HealthSystem applies projectile hits and removes entities that ran out of
// health. A projectile is spent on its first hit, damageable or not.
type HealthSystem struct {
	logger *zap.Logger
}

func NewHealthSystem(logger *zap.Logger) *HealthSystem {
	return &HealthSystem{logger: nopIfNil(logger)}
}

func (s *HealthSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, hit := range ecs.Drain[ecs.ProjectileHit](w.Events()) {
		attack, ok := ecs.Get(w, hit.Projectile, component.AttackComponent)
		if !ok {
			continue
		}
		if health, ok := ecs.Get(w, hit.Target, component.HealthComponent); ok {
			health.Current -= attack.Value
			s.logger.Debug("hit",
				zap.Stringer("target", hit.Target),
				zap.Float64("damage", attack.Value),
				zap.Float64("health", health.Current))
		}
		w.DestroyEntity(hit.Projectile)
	}

	ecs.ForEach(w, component.HealthComponent, func(e ecs.Entity, health *component.Health) {
		if health.Current <= 0 {
			s.logger.Info("entity died", zap.Stringer("entity", e))
			w.DestroyEntity(e)
		}
	})
}
