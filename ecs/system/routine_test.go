package system

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutineInitInstallsInitialRoutine(t *testing.T) {
	w := ecs.NewWorld()
	player := spawnTarget(t, w, cp.Vector{})
	agent := spawnAgent(t, w, cp.Vector{X: 300}, player)

	set, _ := ecs.Get(w, agent, component.RoutineSetComponent)
	set.Initial = component.RoutineNone

	step(w, tick, NewRoutineInitSystem(nil))
	r, ok := ecs.Get(w, agent, component.RoutineComponent)
	require.True(t, ok)
	assert.Equal(t, component.RoutineFollow, r.Kind)
	require.NotNil(t, r.Follow)
	assert.Equal(t, 200.0, r.Follow.Distance)

	set.Initial = component.RoutineRush
	step(w, tick, NewRoutineInitSystem(nil))
	r, _ = ecs.Get(w, agent, component.RoutineComponent)
	assert.Equal(t, component.RoutineFollow, r.Kind, "an existing routine is left alone")
}

func TestFollowRoutineSetsDestinationThenReaches(t *testing.T) {
	w := ecs.NewWorld()
	player := spawnTarget(t, w, cp.Vector{})
	agent := spawnAgent(t, w, cp.Vector{X: 200}, player)
	setRoutine(t, w, agent, component.RoutineFollow)
	follow := NewFollowRoutineSystem()

	step(w, tick, follow)
	assert.Empty(t, ecs.Drain[ecs.DistanceReached](w.Events()), "exactly at the threshold is not inside it")
	tp, ok := ecs.Get(w, agent, component.TargetPositionComponent)
	require.True(t, ok)
	assert.Equal(t, cp.Vector{}, tp.Point)

	moveTo(w, player, cp.Vector{Y: 10})
	step(w, tick, follow)
	tp, _ = ecs.Get(w, agent, component.TargetPositionComponent)
	assert.Equal(t, cp.Vector{Y: 10}, tp.Point, "destination refreshed each cycle")

	moveTo(w, agent, cp.Vector{X: 150})
	step(w, 10*time.Millisecond, follow)

	reached := ecs.Drain[ecs.DistanceReached](w.Events())
	require.Len(t, reached, 1)
	assert.Equal(t, ecs.DistanceReached{Entity: agent, Distance: 200}, reached[0])
	assert.False(t, ecs.Has(w, agent, component.RoutineComponent))
	assert.False(t, ecs.Has(w, agent, component.TargetPositionComponent))
}

func TestFollowReachedHandsOverExactlyOnce(t *testing.T) {
	w := ecs.NewWorld()
	player := spawnTarget(t, w, cp.Vector{})
	agent := spawnAgent(t, w, cp.Vector{X: 150}, player)

	spy := &eventSpy[ecs.DistanceReached]{}
	routineSeen := true
	probe := systemFunc(func(w *ecs.World) {
		routineSeen = ecs.Has(w, agent, component.RoutineComponent)
	})
	s := ecs.NewScheduler(
		NewRoutineInitSystem(nil),
		NewFollowRoutineSystem(),
		spy,
		probe,
		NewAISelectionSystem(nil),
	)

	s.Step(w, tick)
	require.Len(t, spy.seen, 1)
	assert.False(t, routineSeen, "follow is gone before selection runs")

	r, ok := ecs.Get(w, agent, component.RoutineComponent)
	require.True(t, ok)
	assert.Equal(t, component.RoutineRush, r.Kind)

	s.Step(w, tick)
	assert.Len(t, spy.seen, 1, "no further reach events once rushing")
}

func TestRoutinesCloseInUntilAttack(t *testing.T) {
	w := ecs.NewWorld()
	player := spawnTarget(t, w, cp.Vector{})
	agent := spawnAgent(t, w, cp.Vector{X: 250}, player)
	set, _ := ecs.Get(w, agent, component.RoutineSetComponent)
	set.Rush.Reach = 100

	s := ecs.NewScheduler(
		NewRoutineInitSystem(nil),
		NewFollowRoutineSystem(),
		NewRushRoutineSystem(rand.New(rand.NewSource(1))),
		NewAttackRoutineSystem(),
		NewAISelectionSystem(nil),
		NewDashSystem(),
		NewMovementSystem(),
	)

	seen := map[component.RoutineKind]bool{}
	for i := 0; i < 600 && !seen[component.RoutineAttack]; i++ {
		s.Step(w, time.Second/60)
		if r, ok := ecs.Get(w, agent, component.RoutineComponent); ok {
			seen[r.Kind] = true
		}
	}
	assert.True(t, seen[component.RoutineRush], "rushes on the way in: %v", seen)
	require.True(t, seen[component.RoutineAttack], "ends up attacking: %v", seen)

	tr, _ := ecs.Get(w, agent, component.TransformComponent)
	assert.LessOrEqual(t, tr.Position().Length(), 120.0)
}

func TestRushRoutineDashesAtTarget(t *testing.T) {
	w := ecs.NewWorld()
	player := spawnTarget(t, w, cp.Vector{})
	agent := spawnAgent(t, w, cp.Vector{X: 150}, player)
	r := setRoutine(t, w, agent, component.RoutineRush)
	r.Rush.Jitter = 20
	rush := NewRushRoutineSystem(rand.New(rand.NewSource(3)))

	step(w, tick, rush)
	assert.Zero(t, w.Events().Len())
	tp, ok := ecs.Get(w, agent, component.TargetPositionComponent)
	require.True(t, ok)
	assert.LessOrEqual(t, math.Abs(tp.Point.X), 20.0)
	assert.LessOrEqual(t, math.Abs(tp.Point.Y), 20.0)

	require.True(t, ecs.Has(w, agent, component.DashingComponent))
	ch, _ := ecs.Get(w, agent, component.CharacterComponent)
	assert.Equal(t, 220.0, ch.Speed)

	step(w, tick, rush)
	tp2, _ := ecs.Get(w, agent, component.TargetPositionComponent)
	assert.Equal(t, tp.Point, tp2.Point, "no new plan until the dash lands")
	assert.Equal(t, 220.0, ch.Speed, "bonus applied once")
}

func TestRushRoutineThresholds(t *testing.T) {
	t.Run("exited", func(t *testing.T) {
		w := ecs.NewWorld()
		player := spawnTarget(t, w, cp.Vector{})
		agent := spawnAgent(t, w, cp.Vector{X: 300}, player)
		setRoutine(t, w, agent, component.RoutineRush)

		step(w, tick, NewRushRoutineSystem(nil))
		exited := ecs.Drain[ecs.DistanceExited](w.Events())
		require.Len(t, exited, 1)
		assert.Equal(t, 200.0, exited[0].Distance)
		assert.True(t, ecs.Has(w, agent, component.TargetPositionComponent))
	})

	t.Run("reach", func(t *testing.T) {
		w := ecs.NewWorld()
		player := spawnTarget(t, w, cp.Vector{})
		agent := spawnAgent(t, w, cp.Vector{X: 100}, player)
		r := setRoutine(t, w, agent, component.RoutineRush)
		r.Rush.Reach = 120

		step(w, tick, NewRushRoutineSystem(nil))
		reached := ecs.Drain[ecs.DistanceReached](w.Events())
		require.Len(t, reached, 1)
		assert.Equal(t, 120.0, reached[0].Distance)
		assert.False(t, ecs.Has(w, agent, component.TargetPositionComponent))
		assert.False(t, ecs.Has(w, agent, component.DashingComponent))
	})

	t.Run("waits_for_timer", func(t *testing.T) {
		w := ecs.NewWorld()
		player := spawnTarget(t, w, cp.Vector{})
		agent := spawnAgent(t, w, cp.Vector{X: 300}, player)
		setRoutine(t, w, agent, component.RoutineRush)

		step(w, 50*time.Millisecond, NewRushRoutineSystem(nil))
		assert.Zero(t, w.Events().Len())
		assert.False(t, ecs.Has(w, agent, component.TargetPositionComponent))
	})
}

func TestAttackRoutineCycle(t *testing.T) {
	w := ecs.NewWorld()
	player := spawnTarget(t, w, cp.Vector{})
	agent := spawnAgent(t, w, cp.Vector{X: 100}, player)
	r := setRoutine(t, w, agent, component.RoutineAttack)
	attack := NewAttackRoutineSystem()
	weapon, _ := ecs.Get(w, agent, component.WeaponComponent)

	var spawns []ecs.ProjectileSpawn
	var finished []ecs.AttackFinished
	var exited []ecs.DistanceExited
	for i := 0; i < 8; i++ {
		step(w, tick, attack)
		spawns = append(spawns, ecs.Drain[ecs.ProjectileSpawn](w.Events())...)
		finished = append(finished, ecs.Drain[ecs.AttackFinished](w.Events())...)
		exited = append(exited, ecs.Drain[ecs.DistanceExited](w.Events())...)

		if i == 1 {
			assert.Equal(t, component.AttackSpawn, r.Attack.Phase)
			assert.InDelta(t, math.Pi/2, weapon.Rotation, 1e-9, "fully raised, facing right")
		}
	}

	require.Len(t, spawns, 1)
	assert.Equal(t, agent, spawns[0].Owner)
	assert.InDelta(t, 60, spawns[0].Position.X, 1e-9)
	assert.InDelta(t, -300, spawns[0].Velocity.X, 1e-9)
	assert.InDelta(t, math.Pi, math.Abs(spawns[0].Angle), 1e-9)

	assert.Len(t, finished, 1)
	assert.Empty(t, exited)
	assert.InDelta(t, 0, weapon.Rotation, 1e-9)
}

func TestAttackRoutineExitsWhenTargetLeaves(t *testing.T) {
	w := ecs.NewWorld()
	player := spawnTarget(t, w, cp.Vector{})
	agent := spawnAgent(t, w, cp.Vector{X: 100}, player)
	setRoutine(t, w, agent, component.RoutineAttack)
	attack := NewAttackRoutineSystem()

	for i := 0; i < 3; i++ {
		step(w, tick, attack)
	}
	moveTo(w, player, cp.Vector{X: -200})
	step(w, tick, attack)

	exited := ecs.Drain[ecs.DistanceExited](w.Events())
	require.Len(t, exited, 1)
	assert.Equal(t, ecs.DistanceExited{Entity: agent, Distance: 120}, exited[0])
	assert.Empty(t, ecs.Drain[ecs.AttackFinished](w.Events()))
}

func TestAttackWeaponMirrorsWhenFacingLeft(t *testing.T) {
	w := ecs.NewWorld()
	player := spawnTarget(t, w, cp.Vector{})
	agent := spawnAgent(t, w, cp.Vector{X: 100}, player)
	facing, _ := ecs.Get(w, agent, component.FacingComponent)
	facing.Left = true
	setRoutine(t, w, agent, component.RoutineAttack)

	step(w, tick, NewAttackRoutineSystem())
	weapon, _ := ecs.Get(w, agent, component.WeaponComponent)
	assert.InDelta(t, -math.Pi/4, weapon.Rotation, 1e-9)
}

func TestRoutinesSkipMissingTarget(t *testing.T) {
	systems := []ecs.System{NewFollowRoutineSystem(), NewRushRoutineSystem(nil), NewAttackRoutineSystem()}
	for _, kind := range []component.RoutineKind{component.RoutineFollow, component.RoutineRush, component.RoutineAttack} {
		t.Run(kind.String(), func(t *testing.T) {
			w := ecs.NewWorld()
			player := spawnTarget(t, w, cp.Vector{})
			agent := spawnAgent(t, w, cp.Vector{X: 50}, player)
			setRoutine(t, w, agent, kind)
			w.DestroyEntity(player)

			for i := 0; i < 5; i++ {
				step(w, tick, systems...)
			}
			assert.Zero(t, w.Events().Len())
			assert.False(t, ecs.Has(w, agent, component.TargetPositionComponent))
			assert.True(t, ecs.Has(w, agent, component.RoutineComponent))
		})
	}
}

type systemFunc func(w *ecs.World)

func (f systemFunc) Update(w *ecs.World) { f(w) }
