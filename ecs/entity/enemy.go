package entity

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
	"github.com/milk9111/arena/steer"
)

// NewEnemy spawns an AI agent of the named archetype at at, aimed at target.
func NewEnemy(w *ecs.World, archetype string, at cp.Vector, target ecs.Entity) (ecs.Entity, error) {
	spec, err := prefabs.LoadArchetypeSpec(archetype)
	if err != nil {
		return 0, fmt.Errorf("enemy: load spec: %w", err)
	}
	return NewEnemyFromSpec(w, spec, at, target)
}

func NewEnemyFromSpec(w *ecs.World, spec *prefabs.ArchetypeSpec, at cp.Vector, target ecs.Entity) (ecs.Entity, error) {
	var behaviors []steer.Behavior
	var agent *steer.Agent
	if spec.Steering != nil {
		var err error
		agent, err = spec.Steering.Agent()
		if err != nil {
			return 0, fmt.Errorf("enemy: %s: %w", spec.Name, err)
		}
		for i, b := range spec.Steering.Behaviors {
			behavior, err := b.Behavior(uint64(target), at)
			if err != nil {
				return 0, fmt.Errorf("enemy: %s: behavior %d: %w", spec.Name, i, err)
			}
			behaviors = append(behaviors, behavior)
		}
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.AITagComponent, &component.AITag{}); err != nil {
		return 0, fmt.Errorf("enemy: add ai tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent, &component.Transform{X: at.X, Y: at.Y}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.CharacterComponent, &component.Character{
		Speed:     spec.Speed,
		BaseSpeed: spec.Speed,
		Group:     spec.Group,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add character: %w", err)
	}
	if err := ecs.Add(w, entity, component.MovementComponent, &component.Movement{}); err != nil {
		return 0, fmt.Errorf("enemy: add movement: %w", err)
	}
	if err := ecs.Add(w, entity, component.FacingComponent, &component.Facing{}); err != nil {
		return 0, fmt.Errorf("enemy: add facing: %w", err)
	}
	if err := ecs.Add(w, entity, component.ArchetypeComponent, &component.Archetype{Name: spec.Name}); err != nil {
		return 0, fmt.Errorf("enemy: add archetype: %w", err)
	}
	if err := ecs.Add(w, entity, component.AITargetComponent, &component.AITarget{Target: uint64(target)}); err != nil {
		return 0, fmt.Errorf("enemy: add ai target: %w", err)
	}
	if spec.Health > 0 {
		if err := ecs.Add(w, entity, component.HealthComponent, &component.Health{Max: spec.Health, Current: spec.Health}); err != nil {
			return 0, fmt.Errorf("enemy: add health: %w", err)
		}
	}
	if err := ecs.Add(w, entity, component.PhysicsBodyComponent, colliderBody(spec.Collider)); err != nil {
		return 0, fmt.Errorf("enemy: add physics body: %w", err)
	}
	if err := ecs.Add(w, entity, component.TintComponent, &component.Tint{Color: spec.Color.Or(color.White)}); err != nil {
		return 0, fmt.Errorf("enemy: add tint: %w", err)
	}

	if agent != nil {
		if err := ecs.Add(w, entity, component.SteerAIComponent, &component.SteerAI{Agent: agent, Behaviors: behaviors}); err != nil {
			return 0, fmt.Errorf("enemy: add steer: %w", err)
		}
	}

	if r := spec.Routines; r != nil {
		if err := ecs.Add(w, entity, component.RoutineSetComponent, RoutineSet(r)); err != nil {
			return 0, fmt.Errorf("enemy: add routine set: %w", err)
		}
		if err := ecs.Add(w, entity, component.WeaponComponent, &component.Weapon{}); err != nil {
			return 0, fmt.Errorf("enemy: add weapon: %w", err)
		}
		if err := ecs.Add(w, entity, component.AIPolicyComponent, &component.AIPolicy{Name: policyName(spec)}); err != nil {
			return 0, fmt.Errorf("enemy: add policy: %w", err)
		}
		if err := ecs.Add(w, entity, component.AttackComponent, &component.Attack{Value: r.Attack.Damage}); err != nil {
			return 0, fmt.Errorf("enemy: add attack: %w", err)
		}
	}

	return entity, nil
}

// PolicyName is the selection policy key an archetype registers under.
func PolicyName(spec *prefabs.ArchetypeSpec) string {
	return policyName(spec)
}

func policyName(spec *prefabs.ArchetypeSpec) string {
	if spec.Policy == "script" {
		return spec.Name
	}
	return ""
}

// RoutineSet converts routine prefab parameters into the component.
func RoutineSet(r *prefabs.RoutinesSpec) *component.RoutineSet {
	projectileSpeed := r.Attack.ProjectileSpeed
	if projectileSpeed <= 0 {
		projectileSpeed = common.ProjectileSpeed * 0.6
	}
	return &component.RoutineSet{
		Initial: component.ParseRoutineKind(r.Initial),
		Follow: component.FollowParams{
			Interval: common.Seconds(r.Follow.Time),
			Distance: r.Follow.Distance,
		},
		Rush: component.RushParams{
			Interval:  common.Seconds(r.Rush.Time),
			Distance:  r.Rush.Distance,
			Reach:     r.Rush.Reach,
			Jitter:    r.Rush.Jitter,
			DashBonus: r.Rush.SpeedBonus,
			DashTrail: common.Seconds(r.Rush.Trail),
		},
		Attack: component.AttackParams{
			Start:           common.Seconds(r.Attack.Start),
			Finish:          common.Seconds(r.Attack.Finish),
			Distance:        r.Attack.Distance,
			ProjectileSpeed: projectileSpeed,
		},
	}
}
