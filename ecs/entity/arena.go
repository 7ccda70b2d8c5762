package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
	"golang.org/x/image/colornames"
)

// Arena is what BuildArena spawned.
type Arena struct {
	Player  ecs.Entity
	Enemies []ecs.Entity
	Walls   []ecs.Entity
}

// NewObstacle adds a static box centered on center.
func NewObstacle(w *ecs.World, center cp.Vector, width, height float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ObstacleTagComponent, &component.ObstacleTag{}); err != nil {
		return 0, fmt.Errorf("obstacle: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{X: center.X, Y: center.Y}); err != nil {
		return 0, fmt.Errorf("obstacle: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Width:  width,
		Height: height,
		Static: true,
	}); err != nil {
		return 0, fmt.Errorf("obstacle: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.TintComponent, &component.Tint{Color: colornames.Dimgray}); err != nil {
		return 0, fmt.Errorf("obstacle: add tint: %w", err)
	}
	return e, nil
}

// BuildArena spawns the walls, pillars, player and enemies of spec. The
// field is centered on the origin and the walls sit inside its edge.
func BuildArena(w *ecs.World, spec *prefabs.ArenaSpec) (*Arena, error) {
	if spec == nil {
		return nil, fmt.Errorf("arena: %w: nil spec", prefabs.ErrInvalidSpec)
	}
	arena := &Arena{}

	halfW, halfH := spec.Width/2, spec.Height/2
	if t := spec.Wall; t > 0 {
		walls := []struct {
			center cp.Vector
			w, h   float64
		}{
			{cp.Vector{X: 0, Y: -halfH + t/2}, spec.Width, t},
			{cp.Vector{X: 0, Y: halfH - t/2}, spec.Width, t},
			{cp.Vector{X: -halfW + t/2, Y: 0}, t, spec.Height},
			{cp.Vector{X: halfW - t/2, Y: 0}, t, spec.Height},
		}
		for _, wall := range walls {
			e, err := NewObstacle(w, wall.center, wall.w, wall.h)
			if err != nil {
				return nil, fmt.Errorf("arena %s: wall: %w", spec.Name, err)
			}
			arena.Walls = append(arena.Walls, e)
		}
	}

	for i, p := range spec.Pillars {
		e, err := NewObstacle(w, cp.Vector{X: p.X, Y: p.Y}, p.Width, p.Height)
		if err != nil {
			return nil, fmt.Errorf("arena %s: pillar %d: %w", spec.Name, i, err)
		}
		arena.Walls = append(arena.Walls, e)
	}

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, fmt.Errorf("arena %s: %w", spec.Name, err)
	}
	playerSpec.Transform = spec.Player
	player, err := NewPlayerFromSpec(w, playerSpec)
	if err != nil {
		return nil, fmt.Errorf("arena %s: %w", spec.Name, err)
	}
	arena.Player = player

	for _, s := range spec.Enemies {
		e, err := NewEnemy(w, s.Archetype, cp.Vector{X: s.X, Y: s.Y}, player)
		if err != nil {
			return nil, fmt.Errorf("arena %s: %w", spec.Name, err)
		}
		arena.Enemies = append(arena.Enemies, e)
	}

	return arena, nil
}
