package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeObstacle
	collisionTypeProjectile
)

// PhysicsSystem mirrors PhysicsBody entities into a gravity-free Chipmunk
// space. Movement.Velocity drives dynamic bodies; transforms are read back
// after the step. Projectiles are sensors and report ProjectileHit events.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	hits     []ecs.ProjectileHit
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncVelocities(w)

	ps.hits = ps.hits[:0]
	if dt := w.Delta().Seconds(); dt > 0 {
		ps.space.Step(dt)
	}

	ps.syncTransforms(w)
	for _, hit := range ps.hits {
		w.Events().Push(hit)
	}
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	for _, other := range []cp.CollisionType{collisionTypeCharacter, collisionTypeObstacle} {
		handler := ps.space.NewCollisionHandler(collisionTypeProjectile, other)
		handler.UserData = ps
		handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			sys, ok := userData.(*PhysicsSystem)
			if !ok || sys == nil {
				return false
			}
			shapeA, shapeB := arb.Shapes()
			if _, ok := shapeB.UserData.(ecs.Entity); ok {
				shapeA, shapeB = shapeB, shapeA
			}
			projectile, okA := sys.shapes[shapeA]
			target, okB := sys.shapes[shapeB]
			if !okA || !okB {
				return false
			}
			sys.recordHit(projectile, target, shapeA)
			return false
		}
	}

	ps.handlersReady = true
}

// recordHit keeps a projectile from hitting its owner.
func (ps *PhysicsSystem) recordHit(projectile, target ecs.Entity, shape *cp.Shape) {
	if owner, ok := shape.UserData.(ecs.Entity); ok && owner == target {
		return
	}
	ps.hits = append(ps.hits, ecs.ProjectileHit{Projectile: projectile, Target: target})
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent, component.TransformComponent) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}
		if _, exists := ps.entities[e]; exists {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}

		info := ps.createBodyInfo(*transform, *bodyComp)
		if info == nil {
			continue
		}
		info.shape.SetCollisionType(ps.collisionType(w, e, bodyComp))
		if tag, ok := ecs.Get(w, e, component.ProjectileTagComponent); ok {
			info.shape.UserData = ecs.Entity(tag.Owner)
		}

		ps.entities[e] = info
		ps.shapes[info.shape] = e
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
	}
}

func (ps *PhysicsSystem) collisionType(w *ecs.World, e ecs.Entity, bodyComp *component.PhysicsBody) cp.CollisionType {
	switch {
	case ecs.Has(w, e, component.ProjectileTagComponent):
		return collisionTypeProjectile
	case bodyComp.Static || ecs.Has(w, e, component.ObstacleTagComponent):
		return collisionTypeObstacle
	default:
		return collisionTypeCharacter
	}
}

// createBodyInfo places the shape centered on the transform. Dynamic bodies
// get an infinite moment so contacts never spin them.
func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody) *bodyInfo {
	width, height, radius := bodyComp.Width, bodyComp.Height, bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width, height = 32, 32
	}

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, transform.Position())
		} else {
			bb := cp.BB{
				L: transform.X - width/2,
				B: transform.Y - height/2,
				R: transform.X + width/2,
				T: transform.Y + height/2,
			}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetSensor(bodyComp.Sensor)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(transform.Position())

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetSensor(bodyComp.Sensor)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

func (ps *PhysicsSystem) syncVelocities(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		mv, ok := ecs.Get(w, e, component.MovementComponent)
		if !ok {
			info.body.SetVelocityVector(cp.Vector{})
			continue
		}
		info.body.SetVelocityVector(mv.Velocity)
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		transform.SetPosition(info.body.Position())
	}
}

// cleanupEntities drops bodies whose entity died or lost its PhysicsBody.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapes, info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}

// Bodies reports how many entities currently own a body in the space.
func (ps *PhysicsSystem) Bodies() int {
	return len(ps.entities)
}
