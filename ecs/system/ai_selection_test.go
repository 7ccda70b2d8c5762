package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPolicy struct {
	next component.RoutineKind
	seen []Transition
}

func (p *fixedPolicy) Next(t Transition) component.RoutineKind {
	p.seen = append(p.seen, t)
	return p.next
}

func TestSelectionUsesNamedPolicy(t *testing.T) {
	w := ecs.NewWorld()
	player := spawnTarget(t, w, cp.Vector{})
	agent := spawnAgent(t, w, cp.Vector{X: 90}, player)
	setRoutine(t, w, agent, component.RoutineRush)
	require.NoError(t, ecs.Add(w, agent, component.TargetPositionComponent, &component.TargetPosition{Point: cp.Vector{X: 5}}))
	require.NoError(t, ecs.Add(w, agent, component.AIPolicyComponent, &component.AIPolicy{Name: "always_attack"}))

	policy := &fixedPolicy{next: component.RoutineAttack}
	sel := NewAISelectionSystem(nil)
	sel.SetPolicy("always_attack", policy)

	w.Events().Push(ecs.DistanceReached{Entity: agent, Distance: 120})
	step(w, tick, sel)

	require.Len(t, policy.seen, 1)
	seen := policy.seen[0]
	assert.Equal(t, EventReached, seen.Event)
	assert.Equal(t, 120.0, seen.Threshold)
	assert.InDelta(t, 90, seen.Distance, 1e-9)
	assert.Equal(t, component.RoutineRush, seen.Current)
	assert.Equal(t, 120.0, seen.AttackBand)
	assert.Equal(t, 200.0, seen.RushBand)

	r, ok := ecs.Get(w, agent, component.RoutineComponent)
	require.True(t, ok)
	assert.Equal(t, component.RoutineAttack, r.Kind)
	require.NotNil(t, r.Attack)
	assert.Equal(t, component.AttackStart, r.Attack.Phase)
	assert.False(t, ecs.Has(w, agent, component.TargetPositionComponent), "attacks stand still")
	assert.Zero(t, w.Events().Len())
}

func TestSelectionUnknownPolicyFallsBackToBands(t *testing.T) {
	w := ecs.NewWorld()
	player := spawnTarget(t, w, cp.Vector{})
	agent := spawnAgent(t, w, cp.Vector{X: 500}, player)
	setRoutine(t, w, agent, component.RoutineAttack)
	require.NoError(t, ecs.Add(w, agent, component.AIPolicyComponent, &component.AIPolicy{Name: "missing"}))

	w.Events().Push(ecs.DistanceExited{Entity: agent, Distance: 120})
	step(w, tick, NewAISelectionSystem(nil))

	r, ok := ecs.Get(w, agent, component.RoutineComponent)
	require.True(t, ok)
	assert.Equal(t, component.RoutineFollow, r.Kind)
}

func TestSelectionWithoutTargetClearsRoutine(t *testing.T) {
	w := ecs.NewWorld()
	player := spawnTarget(t, w, cp.Vector{})
	agent := spawnAgent(t, w, cp.Vector{X: 100}, player)
	setRoutine(t, w, agent, component.RoutineAttack)
	w.DestroyEntity(player)

	w.Events().Push(ecs.AttackFinished{Entity: agent})
	step(w, tick, NewAISelectionSystem(nil))

	assert.False(t, ecs.Has(w, agent, component.RoutineComponent))
}

func TestSelectionIgnoresAgentsWithoutRoutineSet(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	w.Events().Push(ecs.DistanceReached{Entity: e, Distance: 10})

	policy := &fixedPolicy{next: component.RoutineRush}
	sel := NewAISelectionSystem(nil)
	sel.SetPolicy("", policy)
	step(w, tick, sel)

	assert.Empty(t, policy.seen)
	assert.False(t, ecs.Has(w, e, component.RoutineComponent))
}

func TestSelectionFullLoop(t *testing.T) {
	w := ecs.NewWorld()
	player := spawnTarget(t, w, cp.Vector{})
	agent := spawnAgent(t, w, cp.Vector{X: 150}, player)

	s := ecs.NewScheduler(
		NewRoutineInitSystem(nil),
		NewFollowRoutineSystem(),
		NewRushRoutineSystem(nil),
		NewAttackRoutineSystem(),
		NewAISelectionSystem(nil),
	)

	kinds := func() component.RoutineKind {
		r, ok := ecs.Get(w, agent, component.RoutineComponent)
		if !ok {
			return component.RoutineNone
		}
		return r.Kind
	}

	s.Step(w, tick)
	assert.Equal(t, component.RoutineRush, kinds())

	moveTo(w, agent, cp.Vector{X: 100})
	ecs.Remove(w, agent, component.TargetPositionComponent)
	set, _ := ecs.Get(w, agent, component.RoutineSetComponent)
	set.Rush.Reach = 120
	r, _ := ecs.Get(w, agent, component.RoutineComponent)
	r.Rush.Reach = 120

	s.Step(w, tick)
	assert.Equal(t, component.RoutineAttack, kinds())

	moveTo(w, agent, cp.Vector{X: 400})
	for i := 0; i < 4; i++ {
		s.Step(w, tick)
	}
	assert.Equal(t, component.RoutineFollow, kinds())
}
