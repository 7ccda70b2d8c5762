package system

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/steer"
)

// SteerTimerSystem advances every agent's re-evaluation timer. Agents whose
// timer elapsed get both context maps reset before any behavior runs.
type SteerTimerSystem struct{}

func NewSteerTimerSystem() *SteerTimerSystem {
	return &SteerTimerSystem{}
}

func (s *SteerTimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	ecs.ForEach(w, component.SteerAIComponent, func(_ ecs.Entity, ai *component.SteerAI) {
		if ai.Agent != nil {
			ai.Agent.Tick(dt)
		}
	})
}

// SteerBehaviorSystem fills the context maps of every agent whose timer
// just elapsed.
type SteerBehaviorSystem struct {
	rng *rand.Rand
}

func NewSteerBehaviorSystem(rng *rand.Rand) *SteerBehaviorSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &SteerBehaviorSystem{rng: rng}
}

func (s *SteerBehaviorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.SteerAIComponent, component.TransformComponent, func(e ecs.Entity, ai *component.SteerAI, tr *component.Transform) {
		if ai.Agent == nil || !ai.Agent.Ready() {
			return
		}
		self := tr.Position()
		gather := candidateCache{w: w, self: e, at: self}
		for _, b := range ai.Behaviors {
			if b.Kind == steer.RandomWander {
				b.Wander(ai.Agent, self, s.rng)
				continue
			}
			ai.Agent.Evaluate(b, gather.source(b.Source()))
		}
	})
}

// candidateCache measures each population at most once per agent.
type candidateCache struct {
	w    *ecs.World
	self ecs.Entity
	at   cp.Vector

	obstacles  []steer.Candidate
	characters []steer.Candidate
	player     []steer.Candidate
	loaded     [steer.SourceAny + 1]bool
}

func (c *candidateCache) source(src steer.Source) []steer.Candidate {
	switch src {
	case steer.SourceObstacles:
		if !c.loaded[src] {
			c.obstacles = c.measureObstacles()
			c.loaded[src] = true
		}
		return c.obstacles
	case steer.SourceCharacters:
		if !c.loaded[src] {
			c.characters = c.measureCharacters()
			c.loaded[src] = true
		}
		return c.characters
	case steer.SourcePlayer:
		if !c.loaded[src] {
			c.player = c.measureTarget()
			c.loaded[src] = true
		}
		return c.player
	case steer.SourceAny:
		out := append([]steer.Candidate(nil), c.source(steer.SourceCharacters)...)
		out = append(out, c.source(steer.SourceObstacles)...)
		for _, p := range c.source(steer.SourcePlayer) {
			if !containsID(out, p.ID) {
				out = append(out, p)
			}
		}
		return out
	}
	return nil
}

func (c *candidateCache) measureObstacles() []steer.Candidate {
	var out []steer.Candidate
	for _, o := range c.w.Query(component.ObstacleTagComponent.Kind(), component.TransformComponent.Kind()) {
		if o == c.self {
			continue
		}
		tr, _ := ecs.Get(c.w, o, component.TransformComponent)
		point := tr.Position()
		if body, ok := ecs.Get(c.w, o, component.PhysicsBodyComponent); ok && body.Width > 0 && body.Height > 0 {
			point = closestOnBox(c.at, point, body.Width, body.Height)
		}
		out = append(out, steer.NewCandidate(uint64(o), 0, c.at, point))
	}
	return out
}

func (c *candidateCache) measureCharacters() []steer.Candidate {
	var out []steer.Candidate
	ecs.ForEach2(c.w, component.CharacterComponent, component.TransformComponent, func(o ecs.Entity, ch *component.Character, tr *component.Transform) {
		if o == c.self {
			return
		}
		out = append(out, steer.NewCandidate(uint64(o), ch.Group, c.at, tr.Position()))
	})
	return out
}

func (c *candidateCache) measureTarget() []steer.Candidate {
	target, at, ok := resolveTarget(c.w, c.self)
	if !ok {
		return nil
	}
	group := 0
	if ch, ok := ecs.Get(c.w, target, component.CharacterComponent); ok {
		group = ch.Group
	}
	return []steer.Candidate{steer.NewCandidate(uint64(target), group, c.at, at)}
}

func containsID(cs []steer.Candidate, id uint64) bool {
	for _, c := range cs {
		if c.ID == id {
			return true
		}
	}
	return false
}

// closestOnBox clamps p onto the axis-aligned box centered at center.
func closestOnBox(p, center cp.Vector, width, height float64) cp.Vector {
	hw, hh := width/2, height/2
	return cp.Vector{
		X: common.Clamp(p.X, center.X-hw, center.X+hw),
		Y: common.Clamp(p.Y, center.Y-hh, center.Y+hh),
	}
}

// SteerDecideSystem masks every agent's maps on decision frames and coasts on
// the stored direction otherwise. The result goes into the Movement sink.
// Agents in an attack routine are halted.
type SteerDecideSystem struct{}

func NewSteerDecideSystem() *SteerDecideSystem {
	return &SteerDecideSystem{}
}

func (s *SteerDecideSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.SteerAIComponent, component.MovementComponent, func(e ecs.Entity, ai *component.SteerAI, mv *component.Movement) {
		if ai.Agent == nil {
			return
		}
		if r, ok := ecs.Get(w, e, component.RoutineComponent); ok && r.Kind == component.RoutineAttack {
			ai.Agent.Halt()
			mv.Direction = cp.Vector{}
			mv.Moving = false
			return
		}
		var dir cp.Vector
		var moving bool
		if ai.Agent.Ready() {
			dir, moving = ai.Agent.Decide()
		} else {
			dir, moving = ai.Agent.Coast()
		}
		mv.Direction = dir
		mv.Moving = moving
	})
}
