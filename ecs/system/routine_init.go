package system

import (
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

// RoutineInitSystem installs the archetype's initial routine on agents that
// have no primary routine.
type RoutineInitSystem struct {
	logger *zap.Logger
}

func NewRoutineInitSystem(logger *zap.Logger) *RoutineInitSystem {
	return &RoutineInitSystem{logger: nopIfNil(logger)}
}

func (s *RoutineInitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.RoutineSetComponent, func(e ecs.Entity, set *component.RoutineSet) {
		if ecs.Has(w, e, component.RoutineComponent) {
			return
		}
		initial := set.Initial
		if initial == component.RoutineNone {
			initial = component.RoutineFollow
		}
		routine := set.Build(initial)
		if routine == nil {
			return
		}
		if err := ecs.Add(w, e, component.RoutineComponent, routine); err != nil {
			s.logger.Warn("routine init failed", zap.Stringer("entity", e), zap.Error(err))
			return
		}
		s.logger.Debug("routine installed", zap.Stringer("entity", e), zap.Stringer("routine", initial))
	})
}
