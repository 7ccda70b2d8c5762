package steer

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentTickResetsBothMaps(t *testing.T) {
	a := NewAgent(100 * time.Millisecond)
	a.chase.Add(cp.Vector{X: 1}, Dot(1))
	a.avoid.Add(cp.Vector{Y: 1}, Dot(1))

	assert.False(t, a.Tick(50*time.Millisecond))
	assert.False(t, a.Ready())
	assert.False(t, a.Chase().IsEmpty(), "maps survive until the interval elapses")

	assert.True(t, a.Tick(50*time.Millisecond))
	assert.True(t, a.Ready())
	assert.True(t, a.Chase().IsEmpty())
	assert.True(t, a.Avoid().IsEmpty())

	assert.False(t, a.Tick(10*time.Millisecond))
	assert.False(t, a.Ready())
}

func TestAgentDecideAndCoast(t *testing.T) {
	a := NewAgent(100 * time.Millisecond)
	require.True(t, a.Tick(100*time.Millisecond))

	player := Candidate{ID: 1, Offset: cp.Vector{X: 100}, Distance: 100}
	a.Evaluate(NewChasePlayer(NewConfig(10, 500)), []Candidate{player})

	dir, moving := a.Decide()
	require.True(t, moving)
	assert.InDelta(t, 1, dir.X, 1e-6)
	assert.InDelta(t, 0, dir.Y, 1e-6)

	require.False(t, a.Tick(16*time.Millisecond))
	coast, moving := a.Coast()
	assert.True(t, moving)
	assert.Equal(t, dir, coast)
}

func TestAgentHaltsWhenAvoidMasksChase(t *testing.T) {
	a := NewAgent(100 * time.Millisecond)
	require.True(t, a.Tick(100*time.Millisecond))

	a.Evaluate(NewChasePlayer(NewConfig(10, 500)), []Candidate{{ID: 1, Offset: cp.Vector{X: 100}, Distance: 100}})
	a.Evaluate(NewAvoidObstacles(NewConfig(20, 100)), []Candidate{{ID: 2, Offset: cp.Vector{X: 5}, Distance: 5}})

	dir, moving := a.Decide()
	assert.False(t, moving)
	assert.Equal(t, cp.Vector{}, dir)
	assert.Equal(t, cp.Vector{}, a.Previous())

	_, moving = a.Coast()
	assert.False(t, moving)
}

func TestAgentSkipsCoincidentCandidates(t *testing.T) {
	a := NewAgent(100 * time.Millisecond)
	a.Evaluate(NewAvoidObstacles(NewConfig(20, 100)), []Candidate{{ID: 2}})
	assert.True(t, a.Avoid().IsEmpty())
}

func TestAgentOptions(t *testing.T) {
	a := NewAgent(0, WithResolution(16), WithSpread(1), WithSelection(SelectLegacy))
	assert.Equal(t, 16, a.Chase().Resolution())
	assert.Equal(t, 16, a.Avoid().Resolution())
	assert.Equal(t, SelectLegacy, a.Selection())
	assert.Equal(t, 1, a.spread)
	assert.Equal(t, DefaultInterval, a.timer.Duration)
}
