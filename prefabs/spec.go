package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/steer"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (t TransformSpec) Vector() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
}

type PlayerSpec struct {
	Name      string        `yaml:"name"`
	Speed     float64       `yaml:"speed"`
	Group     int           `yaml:"group"`
	Health    float64       `yaml:"health"`
	Color     *YAMLColor    `yaml:"color"`
	Transform TransformSpec `yaml:"transform"`
	Collider  ColliderSpec  `yaml:"collider"`
	Fireball  FireballSpec  `yaml:"fireball"`
}

// FireballSpec is the player's ranged attack.
type FireballSpec struct {
	Speed    float64 `yaml:"speed"`
	Cooldown float64 `yaml:"cooldown"`
	Damage   float64 `yaml:"damage"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// BehaviorSpec is one steering behavior. Targeted kinds (chase_player,
// chase_targets, orbit_around) aim at the agent's AI target; random_wander
// centers on the spawn point unless Center is given.
type BehaviorSpec struct {
	Kind   string         `yaml:"kind"`
	Min    float64        `yaml:"min"`
	Max    float64        `yaml:"max"`
	Group  int            `yaml:"group"`
	Radius float64        `yaml:"radius"`
	Center *TransformSpec `yaml:"center"`
}

// Behavior builds the steering behavior. target is the raw entity the agent
// chases and spawn is where it was placed.
func (b BehaviorSpec) Behavior(target uint64, spawn cp.Vector) (steer.Behavior, error) {
	kind, err := steer.ParseKind(b.Kind)
	if err != nil {
		return steer.Behavior{}, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	cfg := steer.NewConfig(b.Min, b.Max)

	var out steer.Behavior
	switch kind {
	case steer.AvoidObstacles:
		out = steer.NewAvoidObstacles(cfg)
	case steer.AvoidGroup:
		out = steer.NewAvoidGroup(cfg, b.Group)
	case steer.ChaseGroup:
		out = steer.NewChaseGroup(cfg, b.Group)
	case steer.ChaseTargets:
		out = steer.NewChaseTargets(cfg, target)
	case steer.ChasePlayer:
		out = steer.NewChasePlayer(cfg)
	case steer.OrbitAround:
		out = steer.NewOrbitAround(cfg, target)
	case steer.RandomWander:
		center := spawn
		if b.Center != nil {
			center = b.Center.Vector()
		}
		out = steer.NewRandomWander(center, b.Radius)
	}
	if err := out.Validate(); err != nil {
		return steer.Behavior{}, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	return out, nil
}

type SteeringSpec struct {
	Interval   float64        `yaml:"interval"`
	Resolution int            `yaml:"resolution"`
	Spread     int            `yaml:"spread"`
	Selection  string         `yaml:"selection"`
	Behaviors  []BehaviorSpec `yaml:"behaviors"`
}

var steeringDefaults SteeringSpec

// SetSteeringDefaults sets the interval, resolution, spread and selection used
// by archetypes that leave them unset.
func SetSteeringDefaults(d SteeringSpec) {
	steeringDefaults = d
}

func (s SteeringSpec) withDefaults() SteeringSpec {
	if s.Interval <= 0 {
		s.Interval = steeringDefaults.Interval
	}
	if s.Resolution <= 0 {
		s.Resolution = steeringDefaults.Resolution
	}
	if s.Spread <= 0 {
		s.Spread = steeringDefaults.Spread
	}
	if s.Selection == "" {
		s.Selection = steeringDefaults.Selection
	}
	return s
}

// Agent builds a steering agent with this cadence and resolution. Zero
// values fall back to SetSteeringDefaults, then to the steer package.
func (s SteeringSpec) Agent() (*steer.Agent, error) {
	s = s.withDefaults()
	var opts []steer.AgentOption
	if s.Resolution > 0 {
		opts = append(opts, steer.WithResolution(s.Resolution))
	}
	if s.Spread > 0 {
		opts = append(opts, steer.WithSpread(s.Spread))
	}
	if s.Selection != "" {
		sel, err := steer.ParseSelection(s.Selection)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
		}
		opts = append(opts, steer.WithSelection(sel))
	}
	return steer.NewAgent(common.Seconds(s.Interval), opts...), nil
}

type FollowSpec struct {
	Time     float64 `yaml:"time"`
	Distance float64 `yaml:"distance"`
}

type RushSpec struct {
	Time       float64 `yaml:"time"`
	Distance   float64 `yaml:"distance"`
	Reach      float64 `yaml:"reach"`
	Jitter     float64 `yaml:"jitter"`
	SpeedBonus float64 `yaml:"speed_bonus"`
	Trail      float64 `yaml:"trail"`
}

type AttackSpec struct {
	Start           float64 `yaml:"start"`
	Finish          float64 `yaml:"finish"`
	Distance        float64 `yaml:"distance"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	Damage          float64 `yaml:"damage"`
}

type RoutinesSpec struct {
	Initial string     `yaml:"initial"`
	Follow  FollowSpec `yaml:"follow"`
	Rush    RushSpec   `yaml:"rush"`
	Attack  AttackSpec `yaml:"attack"`
}

// ArchetypeSpec describes one kind of AI agent. An archetype steers, runs
// routines, or both.
type ArchetypeSpec struct {
	Name     string        `yaml:"name"`
	Speed    float64       `yaml:"speed"`
	Group    int           `yaml:"group"`
	Health   float64       `yaml:"health"`
	Color    *YAMLColor    `yaml:"color"`
	Collider ColliderSpec  `yaml:"collider"`
	Steering *SteeringSpec `yaml:"steering"`
	Routines *RoutinesSpec `yaml:"routines"`
	Policy   string        `yaml:"policy"`
	Script   string        `yaml:"script"`
}

func (a *ArchetypeSpec) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: archetype without name", ErrInvalidSpec)
	}
	if a.Speed < 0 {
		return fmt.Errorf("%w: %s: negative speed", ErrInvalidSpec, a.Name)
	}
	if a.Steering == nil && a.Routines == nil {
		return fmt.Errorf("%w: %s: needs steering or routines", ErrInvalidSpec, a.Name)
	}
	if a.Steering != nil {
		for i, b := range a.Steering.Behaviors {
			if _, err := b.Behavior(0, cp.Vector{}); err != nil {
				return fmt.Errorf("%s: behavior %d: %w", a.Name, i, err)
			}
		}
	}
	if r := a.Routines; r != nil {
		if r.Follow.Distance <= 0 || r.Rush.Distance <= 0 || r.Attack.Distance <= 0 {
			return fmt.Errorf("%w: %s: routine distances must be positive", ErrInvalidSpec, a.Name)
		}
		if r.Attack.Distance > r.Rush.Distance {
			return fmt.Errorf("%w: %s: attack band wider than rush band", ErrInvalidSpec, a.Name)
		}
		// Each band must hand over to the next one in, or the agent
		// bounces back to the routine it just left.
		if r.Follow.Distance > r.Rush.Distance {
			return fmt.Errorf("%w: %s: follow distance beyond rush band", ErrInvalidSpec, a.Name)
		}
		if r.Rush.Reach > r.Attack.Distance {
			return fmt.Errorf("%w: %s: rush reach beyond attack band", ErrInvalidSpec, a.Name)
		}
	}
	if a.Policy == "script" && a.Script == "" {
		return fmt.Errorf("%w: %s: script policy without script", ErrInvalidSpec, a.Name)
	}
	return nil
}

func LoadArchetypeSpec(name string) (*ArchetypeSpec, error) {
	spec, err := LoadSpec[ArchetypeSpec](name + ".yaml")
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = name
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

type SpawnSpec struct {
	Archetype string  `yaml:"archetype"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
}

type ObstacleSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ArenaSpec lays out one fight: walls around a Width x Height field centered
// on the origin, pillars, the player and the enemies.
type ArenaSpec struct {
	Name    string         `yaml:"name"`
	Width   float64        `yaml:"width"`
	Height  float64        `yaml:"height"`
	Wall    float64        `yaml:"wall"`
	Player  TransformSpec  `yaml:"player"`
	Enemies []SpawnSpec    `yaml:"enemies"`
	Pillars []ObstacleSpec `yaml:"pillars"`
}

func LoadArenaSpec(name string) (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec](name + ".yaml")
	if err != nil {
		return nil, err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("%w: arena %s has no size", ErrInvalidSpec, name)
	}
	return &spec, nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns fallback when no color was set.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
