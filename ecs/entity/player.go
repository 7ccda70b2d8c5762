package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return NewPlayerFromSpec(w, spec)
}

func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	speed := spec.Speed
	if speed <= 0 {
		speed = common.PlayerSpeed
	}
	fireballSpeed := spec.Fireball.Speed
	if fireballSpeed <= 0 {
		fireballSpeed = common.ProjectileSpeed
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent, &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent, &component.Transform{X: spec.Transform.X, Y: spec.Transform.Y}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.CharacterComponent, &component.Character{
		Speed:     speed,
		BaseSpeed: speed,
		Group:     spec.Group,
	}); err != nil {
		return 0, fmt.Errorf("player: add character: %w", err)
	}
	if err := ecs.Add(w, entity, component.MovementComponent, &component.Movement{}); err != nil {
		return 0, fmt.Errorf("player: add movement: %w", err)
	}
	if err := ecs.Add(w, entity, component.FacingComponent, &component.Facing{}); err != nil {
		return 0, fmt.Errorf("player: add facing: %w", err)
	}
	if err := ecs.Add(w, entity, component.HealthComponent, &component.Health{Max: spec.Health, Current: spec.Health}); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}
	if err := ecs.Add(w, entity, component.WeaponComponent, &component.Weapon{}); err != nil {
		return 0, fmt.Errorf("player: add weapon: %w", err)
	}
	if err := ecs.Add(w, entity, component.FireballComponent, &component.Fireball{
		Speed:    fireballSpeed,
		Damage:   spec.Fireball.Damage,
		Cooldown: component.NewCooldown(spec.Fireball.Cooldown),
	}); err != nil {
		return 0, fmt.Errorf("player: add fireball: %w", err)
	}
	if err := ecs.Add(w, entity, component.AttackComponent, &component.Attack{Value: spec.Fireball.Damage}); err != nil {
		return 0, fmt.Errorf("player: add attack: %w", err)
	}
	if err := ecs.Add(w, entity, component.InputComponent, &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, entity, component.PhysicsBodyComponent, colliderBody(spec.Collider)); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, entity, component.TintComponent, &component.Tint{Color: spec.Color.Or(color.White)}); err != nil {
		return 0, fmt.Errorf("player: add tint: %w", err)
	}

	return entity, nil
}

func colliderBody(c prefabs.ColliderSpec) *component.PhysicsBody {
	mass := c.Mass
	if mass <= 0 {
		mass = 1
	}
	return &component.PhysicsBody{
		Width:  c.Width,
		Height: c.Height,
		Radius: c.Radius,
		Mass:   mass,
	}
}
