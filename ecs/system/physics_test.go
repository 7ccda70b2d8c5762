package system

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addBody(t *testing.T, w *ecs.World, at cp.Vector, body component.PhysicsBody, velocity cp.Vector) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, &component.Transform{X: at.X, Y: at.Y}))
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent, &body))
	require.NoError(t, ecs.Add(w, e, component.MovementComponent, &component.Movement{Velocity: velocity}))
	return e
}

func TestPhysicsMovesBodiesByVelocity(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	e := addBody(t, w, cp.Vector{X: 10}, component.PhysicsBody{Width: 20, Height: 20}, cp.Vector{Y: 100})

	step(w, tick, ps)

	tr, _ := ecs.Get(w, e, component.TransformComponent)
	assert.InDelta(t, 10, tr.X, 1e-6)
	assert.InDelta(t, 10, tr.Y, 1e-6)
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
	assert.NotNil(t, body.Body)
	assert.NotNil(t, body.Shape)
}

func TestPhysicsWallsBlockCharacters(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	mover := addBody(t, w, cp.Vector{}, component.PhysicsBody{Width: 32, Height: 32}, cp.Vector{X: 100})
	wall := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, wall, component.ObstacleTagComponent, &component.ObstacleTag{}))
	require.NoError(t, ecs.Add(w, wall, component.TransformComponent, &component.Transform{X: 40}))
	require.NoError(t, ecs.Add(w, wall, component.PhysicsBodyComponent, &component.PhysicsBody{Width: 20, Height: 200, Static: true}))

	for i := 0; i < 20; i++ {
		step(w, 50*time.Millisecond, ps)
	}

	tr, _ := ecs.Get(w, mover, component.TransformComponent)
	assert.Less(t, tr.X, 20.0)
	assert.Greater(t, tr.X, 5.0)
}

func TestPhysicsProjectileHits(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	shooter := addBody(t, w, cp.Vector{X: -60}, component.PhysicsBody{Width: 32, Height: 32}, cp.Vector{})
	target := addBody(t, w, cp.Vector{}, component.PhysicsBody{Width: 32, Height: 32}, cp.Vector{})

	projectile := addBody(t, w, cp.Vector{X: -40}, component.PhysicsBody{Radius: 6, Mass: 0.1, Sensor: true}, cp.Vector{X: 200})
	require.NoError(t, ecs.Add(w, projectile, component.ProjectileTagComponent, &component.ProjectileTag{Owner: uint64(shooter)}))

	var hits []ecs.ProjectileHit
	for i := 0; i < 5; i++ {
		step(w, 50*time.Millisecond, ps)
		hits = append(hits, ecs.Drain[ecs.ProjectileHit](w.Events())...)
	}

	require.NotEmpty(t, hits)
	assert.Equal(t, ecs.ProjectileHit{Projectile: projectile, Target: target}, hits[0])
	for _, h := range hits {
		assert.NotEqual(t, shooter, h.Target, "owners are never hit")
	}
}

func TestPhysicsRemovesDeadBodies(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	a := addBody(t, w, cp.Vector{}, component.PhysicsBody{Width: 10, Height: 10}, cp.Vector{})
	addBody(t, w, cp.Vector{X: 100}, component.PhysicsBody{Width: 10, Height: 10}, cp.Vector{})

	step(w, tick, ps)
	require.Equal(t, 2, ps.Bodies())

	w.DestroyEntity(a)
	step(w, tick, ps)
	assert.Equal(t, 1, ps.Bodies())
}
