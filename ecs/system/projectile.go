package system

import (
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/entity"
	"go.uber.org/zap"
)

// ProjectileSystem spawns the projectiles requested this tick.
type ProjectileSystem struct {
	logger *zap.Logger
}

func NewProjectileSystem(logger *zap.Logger) *ProjectileSystem {
	return &ProjectileSystem{logger: nopIfNil(logger)}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, req := range ecs.Drain[ecs.ProjectileSpawn](w.Events()) {
		e, err := entity.NewProjectile(w, req)
		if err != nil {
			s.logger.Error("spawn projectile", zap.Stringer("owner", req.Owner), zap.Error(err))
			continue
		}
		s.logger.Debug("projectile",
			zap.Stringer("entity", e),
			zap.Stringer("owner", req.Owner),
			zap.Float64("angle", req.Angle))
	}
}
