package system

import (
	"sync"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

// AISelectionSystem consumes the routine layer's threshold events and swaps
// routines. Routines only signal that a threshold was crossed; the agent's
// Policy decides what runs next.
type AISelectionSystem struct {
	mu       sync.RWMutex
	policies map[string]Policy
	logger   *zap.Logger
}

func NewAISelectionSystem(logger *zap.Logger) *AISelectionSystem {
	return &AISelectionSystem{
		policies: make(map[string]Policy),
		logger:   nopIfNil(logger),
	}
}

// SetPolicy registers or replaces a named policy. It is safe to call from the
// prefab reload goroutine.
func (s *AISelectionSystem) SetPolicy(name string, p Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		delete(s.policies, name)
		return
	}
	s.policies[name] = p
}

// Policy returns the policy registered under name, or BandPolicy.
func (s *AISelectionSystem) Policy(name string) Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.policies[name]; ok {
		return p
	}
	return BandPolicy{}
}

func (s *AISelectionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	q := w.Events()
	for _, ev := range ecs.Drain[ecs.DistanceReached](q) {
		s.apply(w, Transition{Entity: ev.Entity, Event: EventReached, Threshold: ev.Distance})
	}
	for _, ev := range ecs.Drain[ecs.DistanceExited](q) {
		s.apply(w, Transition{Entity: ev.Entity, Event: EventExited, Threshold: ev.Distance})
	}
	for _, ev := range ecs.Drain[ecs.AttackFinished](q) {
		s.apply(w, Transition{Entity: ev.Entity, Event: EventFinished})
	}
}

func (s *AISelectionSystem) apply(w *ecs.World, t Transition) {
	e := t.Entity
	set, ok := ecs.Get(w, e, component.RoutineSetComponent)
	if !ok {
		return
	}
	if r, ok := ecs.Get(w, e, component.RoutineComponent); ok {
		t.Current = r.Kind
	}
	t.Distance = -1
	if self, ok := position(w, e); ok {
		if _, target, ok := resolveTarget(w, e); ok {
			t.Distance = self.Distance(target)
		}
	}
	t.AttackBand = set.Attack.Distance
	t.RushBand = set.Rush.Distance

	name := ""
	if p, ok := ecs.Get(w, e, component.AIPolicyComponent); ok {
		name = p.Name
	}
	next := s.Policy(name).Next(t)

	s.swap(w, e, set, next)
	s.logger.Debug("routine swap",
		zap.Stringer("entity", e),
		zap.String("event", string(t.Event)),
		zap.Float64("distance", t.Distance),
		zap.Stringer("from", t.Current),
		zap.Stringer("to", next))
}

// swap removes the old routine and inserts a fresh one. Attacks are made
// standing still, so any destination is dropped first.
func (s *AISelectionSystem) swap(w *ecs.World, e ecs.Entity, set *component.RoutineSet, next component.RoutineKind) {
	ecs.Remove(w, e, component.RoutineComponent)
	if next == component.RoutineAttack {
		ecs.Remove(w, e, component.TargetPositionComponent)
	}
	routine := set.Build(next)
	if routine == nil {
		return
	}
	if err := ecs.Add(w, e, component.RoutineComponent, routine); err != nil {
		s.logger.Warn("routine swap failed", zap.Stringer("entity", e), zap.Error(err))
	}
}
