package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

// resolveTarget follows the agent's AITarget to a live transform. A missing,
// dead or transform-less target reports false and the caller skips the agent
// for this tick.
func resolveTarget(w *ecs.World, agent ecs.Entity) (ecs.Entity, cp.Vector, bool) {
	ref, ok := ecs.Get(w, agent, component.AITargetComponent)
	if !ok || ref.Target == 0 {
		return 0, cp.Vector{}, false
	}
	target := ecs.Entity(ref.Target)
	tr, ok := ecs.Get(w, target, component.TransformComponent)
	if !ok {
		return 0, cp.Vector{}, false
	}
	return target, tr.Position(), true
}

func position(w *ecs.World, e ecs.Entity) (cp.Vector, bool) {
	tr, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return cp.Vector{}, false
	}
	return tr.Position(), true
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
