package steer

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/common"
)

// DefaultInterval is how often an agent re-evaluates its behaviors.
const DefaultInterval = 100 * time.Millisecond

// Agent is the per-entity steering state: a re-evaluation timer, the last
// chosen direction and the chase/avoid maps that are always reset together.
type Agent struct {
	timer     common.Timer
	previous  cp.Vector
	chase     ContextMap
	avoid     ContextMap
	spread    int
	selection Selection
}

type AgentOption func(*Agent)

func WithResolution(n int) AgentOption {
	return func(a *Agent) {
		a.chase = NewWithResolution(n)
		a.avoid = NewWithResolution(n)
	}
}

func WithSpread(spread int) AgentOption {
	return func(a *Agent) {
		a.spread = spread
	}
}

func WithSelection(sel Selection) AgentOption {
	return func(a *Agent) {
		a.selection = sel
	}
}

func NewAgent(interval time.Duration, opts ...AgentOption) *Agent {
	if interval <= 0 {
		interval = DefaultInterval
	}
	a := &Agent{
		timer:  common.NewTimer(interval, common.TimerRepeating),
		chase:  New(),
		avoid:  New(),
		spread: SpreadChase,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Tick advances the re-evaluation timer. When it elapses both maps are reset
// and Tick returns true; the agent is then Ready for the rest of the frame.
func (a *Agent) Tick(dt time.Duration) bool {
	if !a.timer.Tick(dt).JustFinished() {
		return false
	}
	a.chase.Reset()
	a.avoid.Reset()
	return true
}

// Ready reports whether this frame is a decision frame.
func (a *Agent) Ready() bool {
	return a.timer.JustFinished()
}

// Evaluate feeds every valid candidate through b.
func (a *Agent) Evaluate(b Behavior, candidates []Candidate) {
	for _, c := range candidates {
		if c.Distance == 0 || !b.IsValid(c) {
			continue
		}
		b.Fill(a, c)
	}
}

// Decide masks chase with avoid and picks the new direction. An empty mask
// clears the stored direction and reports no movement.
func (a *Agent) Decide() (cp.Vector, bool) {
	masked := a.chase.Mask(a.avoid)
	if masked.IsEmpty() {
		a.previous = cp.Vector{}
		return cp.Vector{}, false
	}
	a.previous = masked.Vector(a.previous, a.spread, a.selection)
	return a.previous, a.previous != (cp.Vector{})
}

// Coast returns the stored direction between decisions.
func (a *Agent) Coast() (cp.Vector, bool) {
	return a.previous, a.previous != (cp.Vector{})
}

// Halt drops the stored direction.
func (a *Agent) Halt() {
	a.previous = cp.Vector{}
}

func (a *Agent) Previous() cp.Vector {
	return a.previous
}

func (a *Agent) Chase() ContextMap {
	return a.chase
}

func (a *Agent) Avoid() ContextMap {
	return a.avoid
}

func (a *Agent) Selection() Selection {
	return a.selection
}
