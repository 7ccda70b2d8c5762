package steer

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/common"
)

var ErrInvalidBand = errors.New("steer: invalid distance band")

// Config is a distance band. Weight is 1 inside Min and falls off linearly
// to 0 at Max.
type Config struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func NewConfig(min, max float64) Config {
	return Config{Min: min, Max: max}
}

func (c Config) Validate() error {
	if c.Min < 0 || c.Max <= 0 || c.Min >= c.Max {
		return fmt.Errorf("%w: min=%.2f max=%.2f", ErrInvalidBand, c.Min, c.Max)
	}
	return nil
}

func (c Config) Weight(distance float64) float64 {
	if distance < c.Min {
		return 1
	}
	if c.Max <= 0 || distance >= c.Max {
		return 0
	}
	return (c.Max - distance) / c.Max
}

// InRange reports Min < distance < Max.
func (c Config) InRange(distance float64) bool {
	return distance > c.Min && distance < c.Max
}

// Kind enumerates the fixed set of steering behaviors.
type Kind int

const (
	AvoidObstacles Kind = iota
	AvoidGroup
	ChaseGroup
	ChaseTargets
	ChasePlayer
	OrbitAround
	RandomWander
)

var kindNames = map[Kind]string{
	AvoidObstacles: "avoid_obstacles",
	AvoidGroup:     "avoid_group",
	ChaseGroup:     "chase_group",
	ChaseTargets:   "chase_targets",
	ChasePlayer:    "chase_player",
	OrbitAround:    "orbit_around",
	RandomWander:   "random_wander",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a prefab name onto a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("steer: unknown behavior %q", name)
}

// Source names the population of entities a behavior inspects.
type Source int

const (
	SourceNone Source = iota
	SourceObstacles
	SourceCharacters
	SourcePlayer
	SourceAny
)

// Candidate is a nearby entity measured relative to the agent.
type Candidate struct {
	ID       uint64
	Group    int
	Offset   cp.Vector
	Distance float64
}

// NewCandidate measures other relative to self.
func NewCandidate(id uint64, group int, self, other cp.Vector) Candidate {
	offset := other.Sub(self)
	return Candidate{ID: id, Group: group, Offset: offset, Distance: offset.Length()}
}

// Behavior is one steering policy plus its parameters.
type Behavior struct {
	Kind    Kind
	Config  Config
	Group   int
	Targets []uint64
	Target  uint64
	Center  cp.Vector
	Radius  float64
}

func NewAvoidObstacles(cfg Config) Behavior {
	return Behavior{Kind: AvoidObstacles, Config: cfg}
}

func NewAvoidGroup(cfg Config, group int) Behavior {
	return Behavior{Kind: AvoidGroup, Config: cfg, Group: group}
}

func NewChaseGroup(cfg Config, group int) Behavior {
	return Behavior{Kind: ChaseGroup, Config: cfg, Group: group}
}

func NewChaseTargets(cfg Config, targets ...uint64) Behavior {
	return Behavior{Kind: ChaseTargets, Config: cfg, Targets: targets}
}

func NewChasePlayer(cfg Config) Behavior {
	return Behavior{Kind: ChasePlayer, Config: cfg}
}

// NewOrbitAround chases target until inside cfg.Min, then strafes around it.
func NewOrbitAround(cfg Config, target uint64) Behavior {
	return Behavior{Kind: OrbitAround, Config: cfg, Target: target}
}

// NewRandomWander heads back to center from outside radius and picks random
// headings inside it.
func NewRandomWander(center cp.Vector, radius float64) Behavior {
	return Behavior{Kind: RandomWander, Center: center, Radius: radius}
}

func (b Behavior) Validate() error {
	if b.Kind == RandomWander {
		if b.Radius <= 0 {
			return fmt.Errorf("%w: wander radius %.2f", ErrInvalidBand, b.Radius)
		}
		return nil
	}
	if err := b.Config.Validate(); err != nil {
		return fmt.Errorf("%s: %w", b.Kind, err)
	}
	return nil
}

func (b Behavior) Source() Source {
	switch b.Kind {
	case AvoidObstacles:
		return SourceObstacles
	case AvoidGroup, ChaseGroup, ChaseTargets:
		return SourceCharacters
	case ChasePlayer:
		return SourcePlayer
	case OrbitAround:
		return SourceAny
	default:
		return SourceNone
	}
}

func (b Behavior) IsValid(c Candidate) bool {
	switch b.Kind {
	case AvoidObstacles:
		return c.Distance < b.Config.Max
	case AvoidGroup:
		return c.Distance < b.Config.Max && c.Group == b.Group
	case ChaseGroup:
		return b.Config.InRange(c.Distance) && c.Group == b.Group
	case ChaseTargets:
		return b.Config.InRange(c.Distance) && slices.Contains(b.Targets, c.ID)
	case ChasePlayer:
		return b.Config.InRange(c.Distance)
	case OrbitAround:
		return c.ID == b.Target && c.Distance < b.Config.Max
	default:
		return true
	}
}

func (b Behavior) Weight(distance float64) float64 {
	switch b.Kind {
	case OrbitAround:
		if distance > b.Config.Min {
			return b.Config.Weight(distance)
		}
		if b.Config.Min <= 0 {
			return 0
		}
		return (b.Config.Min - distance) / b.Config.Min
	case RandomWander:
		if b.Radius <= 0 || distance > b.Radius {
			return 1
		}
		return distance / b.Radius
	default:
		return b.Config.Weight(distance)
	}
}

// Fill writes the candidate's contribution into the agent's maps.
func (b Behavior) Fill(a *Agent, c Candidate) {
	dir := common.NormalizeOrZero(c.Offset)
	w := b.Weight(c.Distance)
	switch b.Kind {
	case AvoidObstacles, AvoidGroup:
		a.avoid.Add(dir, Dot(w))
	case OrbitAround:
		if c.Distance > b.Config.Min {
			a.chase.Add(dir, Dot(w))
		} else {
			a.chase.Add(dir, DotInverted(w))
		}
	default:
		a.chase.Add(dir, Dot(w))
	}
}

// Wander fills a RandomWander contribution for an agent standing at position.
func (b Behavior) Wander(a *Agent, position cp.Vector, rng *rand.Rand) {
	toCenter := b.Center.Sub(position)
	distance := toCenter.Length()
	v := toCenter
	if distance <= b.Radius {
		v = cp.Vector{X: randRange(rng), Y: randRange(rng)}
	}
	a.chase.Add(common.NormalizeOrZero(v), Dot(b.Weight(distance)))
}

func randRange(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()*2 - 1
	}
	return rng.Float64()*2 - 1
}
