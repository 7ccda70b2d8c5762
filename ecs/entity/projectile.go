package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	ProjectileRadius = 6.0
	ProjectileTTL    = 2500 * time.Millisecond
	ProjectileDamage = 0.3
)

// NewProjectile spawns a sensor that flies at req.Velocity until it hits
// something or its TTL runs out. Damage is copied from the owner's Attack.
func NewProjectile(w *ecs.World, req ecs.ProjectileSpawn) (ecs.Entity, error) {
	damage := ProjectileDamage
	if attack, ok := ecs.Get(w, req.Owner, component.AttackComponent); ok {
		damage = attack.Value
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ProjectileTagComponent, &component.ProjectileTag{Owner: uint64(req.Owner)}); err != nil {
		return 0, fmt.Errorf("projectile: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{
		X:        req.Position.X,
		Y:        req.Position.Y,
		Rotation: req.Angle,
	}); err != nil {
		return 0, fmt.Errorf("projectile: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.MovementComponent, &component.Movement{
		Direction: common.NormalizeOrZero(req.Velocity),
		Moving:    true,
		Velocity:  req.Velocity,
	}); err != nil {
		return 0, fmt.Errorf("projectile: add movement: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Radius: ProjectileRadius,
		Mass:   0.1,
		Sensor: true,
	}); err != nil {
		return 0, fmt.Errorf("projectile: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.AttackComponent, &component.Attack{Value: damage}); err != nil {
		return 0, fmt.Errorf("projectile: add attack: %w", err)
	}
	if err := ecs.Add(w, e, component.TTLComponent, &component.TTL{Timer: common.NewTimer(ProjectileTTL, common.TimerOnce)}); err != nil {
		return 0, fmt.Errorf("projectile: add ttl: %w", err)
	}
	if err := ecs.Add(w, e, component.TintComponent, &component.Tint{Color: colornames.Orange}); err != nil {
		return 0, fmt.Errorf("projectile: add tint: %w", err)
	}
	return e, nil
}
