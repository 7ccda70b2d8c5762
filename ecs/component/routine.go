package component

import (
	"time"

	"github.com/milk9111/arena/common"
)

// RoutineKind names the primary routine an agent runs.
type RoutineKind int

const (
	RoutineNone RoutineKind = iota
	RoutineFollow
	RoutineRush
	RoutineAttack
)

var routineNames = [...]string{"none", "follow", "rush", "attack"}

func (k RoutineKind) String() string {
	if k < 0 || int(k) >= len(routineNames) {
		return "unknown"
	}
	return routineNames[k]
}

// ParseRoutineKind is the inverse of String. Unknown names map to
// RoutineNone.
func ParseRoutineKind(name string) RoutineKind {
	for i, n := range routineNames {
		if n == name {
			return RoutineKind(i)
		}
	}
	return RoutineNone
}

// FollowRoutine walks toward the target, refreshing the destination every
// Timer cycle, until it is within Distance.
type FollowRoutine struct {
	Timer    common.Timer
	Distance float64
}

func NewFollowRoutine(interval time.Duration, distance float64) *FollowRoutine {
	return &FollowRoutine{
		Timer:    common.NewTimer(interval, common.TimerRepeating),
		Distance: distance,
	}
}

// RushRoutine dashes at the target each Timer cycle. Distance is the upper
// bound that ends the rush; Reach, when set, is the lower bound that hands
// over to an attack. Jitter is the half size of the random box added to the
// destination.
type RushRoutine struct {
	Timer     common.Timer
	Distance  float64
	Reach     float64
	Jitter    float64
	DashBonus float64
	DashTrail time.Duration
}

func NewRushRoutine(interval time.Duration, distance float64) *RushRoutine {
	return &RushRoutine{
		Timer:     common.NewTimer(interval, common.TimerRepeating),
		Distance:  distance,
		DashTrail: time.Second,
	}
}

type AttackPhase int

const (
	AttackStart AttackPhase = iota
	AttackSpawn
	AttackFinish
)

func (p AttackPhase) String() string {
	switch p {
	case AttackStart:
		return "start"
	case AttackSpawn:
		return "spawn"
	case AttackFinish:
		return "finish"
	}
	return "unknown"
}

// AttackRoutine winds up over Start, fires once, then recovers over Finish.
type AttackRoutine struct {
	Phase           AttackPhase
	Start           common.Timer
	Finish          common.Timer
	Distance        float64
	ProjectileSpeed float64
}

func NewAttackRoutine(start, finish time.Duration, distance, projectileSpeed float64) *AttackRoutine {
	return &AttackRoutine{
		Phase:           AttackStart,
		Start:           common.NewTimer(start, common.TimerOnce),
		Finish:          common.NewTimer(finish, common.TimerOnce),
		Distance:        distance,
		ProjectileSpeed: projectileSpeed,
	}
}

func (a *AttackRoutine) Reset() {
	a.Phase = AttackStart
	a.Start.Reset()
	a.Finish.Reset()
}

// Routine holds exactly one primary routine. Only the field matching Kind is
// set; a swap replaces the whole component.
type Routine struct {
	Kind   RoutineKind
	Follow *FollowRoutine
	Rush   *RushRoutine
	Attack *AttackRoutine
}

func FollowWith(r *FollowRoutine) *Routine {
	return &Routine{Kind: RoutineFollow, Follow: r}
}

func RushWith(r *RushRoutine) *Routine {
	return &Routine{Kind: RoutineRush, Rush: r}
}

func AttackWith(r *AttackRoutine) *Routine {
	return &Routine{Kind: RoutineAttack, Attack: r}
}

var RoutineComponent = NewComponent[Routine]()

type FollowParams struct {
	Interval time.Duration
	Distance float64
}

type RushParams struct {
	Interval  time.Duration
	Distance  float64
	Reach     float64
	Jitter    float64
	DashBonus float64
	DashTrail time.Duration
}

type AttackParams struct {
	Start           time.Duration
	Finish          time.Duration
	Distance        float64
	ProjectileSpeed float64
}

// RoutineSet is an archetype's routine parameters. Every routine an agent
// runs is built fresh from it.
type RoutineSet struct {
	Initial RoutineKind
	Follow  FollowParams
	Rush    RushParams
	Attack  AttackParams
}

// Build returns a new routine of kind, or nil for RoutineNone.
func (s *RoutineSet) Build(kind RoutineKind) *Routine {
	switch kind {
	case RoutineFollow:
		return FollowWith(NewFollowRoutine(s.Follow.Interval, s.Follow.Distance))
	case RoutineRush:
		r := NewRushRoutine(s.Rush.Interval, s.Rush.Distance)
		r.Reach = s.Rush.Reach
		r.Jitter = s.Rush.Jitter
		r.DashBonus = s.Rush.DashBonus
		if s.Rush.DashTrail > 0 {
			r.DashTrail = s.Rush.DashTrail
		}
		return RushWith(r)
	case RoutineAttack:
		return AttackWith(NewAttackRoutine(s.Attack.Start, s.Attack.Finish, s.Attack.Distance, s.Attack.ProjectileSpeed))
	}
	return nil
}

var RoutineSetComponent = NewComponent[RoutineSet]()
