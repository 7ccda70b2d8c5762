package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

var ErrNoDecision = errors.New("ai: script did not set next")

// TransitionEvent is the threshold event that triggered a selection.
type TransitionEvent string

const (
	EventReached  TransitionEvent = "reached"
	EventExited   TransitionEvent = "exited"
	EventFinished TransitionEvent = "finished"
)

// Transition is everything a Policy sees when choosing the next routine.
// Distance is the current distance to the target, or -1 when the target
// cannot be resolved.
type Transition struct {
	Entity     ecs.Entity
	Event      TransitionEvent
	Threshold  float64
	Distance   float64
	Current    component.RoutineKind
	AttackBand float64
	RushBand   float64
}

// Policy picks the routine an agent should run after a threshold event.
// RoutineNone leaves the agent without a routine until it is reinstalled.
type Policy interface {
	Next(t Transition) component.RoutineKind
}

// BandPolicy chooses by fixed distance bands: attack inside Attack, rush
// inside Rush, follow beyond. Zero bands take the transition's own bands.
type BandPolicy struct {
	Attack float64
	Rush   float64
}

func (p BandPolicy) Next(t Transition) component.RoutineKind {
	if t.Distance < 0 {
		return component.RoutineNone
	}
	attack, rush := p.Attack, p.Rush
	if attack <= 0 {
		attack = t.AttackBand
	}
	if rush <= 0 {
		rush = t.RushBand
	}
	switch {
	case t.Distance <= attack:
		return component.RoutineAttack
	case t.Distance <= rush:
		return component.RoutineRush
	default:
		return component.RoutineFollow
	}
}

// ScriptPolicy runs a tengo script per transition. The script reads event,
// threshold, distance, current, attack_band and rush_band and must assign
// next to "follow", "rush", "attack" or "none". Any failure falls back.
type ScriptPolicy struct {
	name     string
	compiled *tengo.Compiled
	fallback Policy
	logger   *zap.Logger
}

func NewScriptPolicy(name string, src []byte, fallback Policy, logger *zap.Logger) (*ScriptPolicy, error) {
	script := tengo.NewScript(src)
	_ = script.Add("event", "")
	_ = script.Add("threshold", 0.0)
	_ = script.Add("distance", 0.0)
	_ = script.Add("current", "")
	_ = script.Add("attack_band", 0.0)
	_ = script.Add("rush_band", 0.0)
	_ = script.Add("next", "")
	script.SetImports(stdlib.GetModuleMap("math", "text"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile %s: %w", name, err)
	}
	if fallback == nil {
		fallback = BandPolicy{}
	}
	return &ScriptPolicy{name: name, compiled: compiled, fallback: fallback, logger: nopIfNil(logger)}, nil
}

func (p *ScriptPolicy) Next(t Transition) component.RoutineKind {
	kind, err := p.run(t)
	if err != nil {
		p.logger.Warn("ai script failed",
			zap.String("script", p.name),
			zap.Stringer("entity", t.Entity),
			zap.Error(err))
		return p.fallback.Next(t)
	}
	return kind
}

func (p *ScriptPolicy) run(t Transition) (component.RoutineKind, error) {
	vars := map[string]any{
		"event":       string(t.Event),
		"threshold":   t.Threshold,
		"distance":    t.Distance,
		"current":     t.Current.String(),
		"attack_band": t.AttackBand,
		"rush_band":   t.RushBand,
		"next":        "",
	}
	for k, v := range vars {
		if err := p.compiled.Set(k, v); err != nil {
			return component.RoutineNone, err
		}
	}
	if err := p.compiled.Run(); err != nil {
		return component.RoutineNone, err
	}
	next := strings.TrimSpace(p.compiled.Get("next").String())
	if next == "" {
		return component.RoutineNone, ErrNoDecision
	}
	kind := component.ParseRoutineKind(next)
	if kind == component.RoutineNone && next != component.RoutineNone.String() {
		return component.RoutineNone, fmt.Errorf("ai: unknown routine %q", next)
	}
	return kind, nil
}
