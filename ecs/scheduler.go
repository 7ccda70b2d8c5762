package ecs

import "time"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in a fixed order. One Step is one tick: the delta is
// recorded, every system runs, then undrained events are dropped.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Step(w *World, dt time.Duration) {
	if w == nil {
		return
	}
	w.SetDelta(dt)
	for _, system := range s.systems {
		system.Update(w)
	}
	w.events.flush()
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
