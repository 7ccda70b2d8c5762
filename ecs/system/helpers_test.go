package system

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/stretchr/testify/require"
)

const tick = 100 * time.Millisecond

func testRoutineSet() *component.RoutineSet {
	return &component.RoutineSet{
		Initial: component.RoutineFollow,
		Follow:  component.FollowParams{Interval: 100 * time.Millisecond, Distance: 200},
		Rush:    component.RushParams{Interval: 100 * time.Millisecond, Distance: 200, DashBonus: 120},
		Attack: component.AttackParams{
			Start:           200 * time.Millisecond,
			Finish:          100 * time.Millisecond,
			Distance:        120,
			ProjectileSpeed: 300,
		},
	}
}

func spawnTarget(t *testing.T, w *ecs.World, at cp.Vector) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, &component.Transform{X: at.X, Y: at.Y}))
	return e
}

// spawnAgent builds a routine-driven agent without steering or physics.
func spawnAgent(t *testing.T, w *ecs.World, at cp.Vector, target ecs.Entity) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.AITagComponent, &component.AITag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, &component.Transform{X: at.X, Y: at.Y}))
	require.NoError(t, ecs.Add(w, e, component.MovementComponent, &component.Movement{}))
	require.NoError(t, ecs.Add(w, e, component.CharacterComponent, &component.Character{Speed: 100, BaseSpeed: 100}))
	require.NoError(t, ecs.Add(w, e, component.FacingComponent, &component.Facing{}))
	require.NoError(t, ecs.Add(w, e, component.WeaponComponent, &component.Weapon{}))
	require.NoError(t, ecs.Add(w, e, component.AITargetComponent, &component.AITarget{Target: uint64(target)}))
	require.NoError(t, ecs.Add(w, e, component.RoutineSetComponent, testRoutineSet()))
	return e
}

func setRoutine(t *testing.T, w *ecs.World, e ecs.Entity, kind component.RoutineKind) *component.Routine {
	t.Helper()
	set, ok := ecs.Get(w, e, component.RoutineSetComponent)
	require.True(t, ok)
	r := set.Build(kind)
	require.NotNil(t, r)
	require.NoError(t, ecs.Add(w, e, component.RoutineComponent, r))
	got, _ := ecs.Get(w, e, component.RoutineComponent)
	return got
}

func moveTo(w *ecs.World, e ecs.Entity, at cp.Vector) {
	if tr, ok := ecs.Get(w, e, component.TransformComponent); ok {
		tr.SetPosition(at)
	}
}

// step runs systems once with dt, like a Scheduler tick without the event
// flush.
func step(w *ecs.World, dt time.Duration, systems ...ecs.System) {
	w.SetDelta(dt)
	for _, s := range systems {
		s.Update(w)
	}
}

// eventSpy records the events of type T visible when it runs.
type eventSpy[T any] struct {
	seen []T
}

func (s *eventSpy[T]) Update(w *ecs.World) {
	s.seen = append(s.seen, ecs.Peek[T](w.Events())...)
}
