package steer

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestNewMapIsEmpty(t *testing.T) {
	m := New()
	require.Equal(t, DefaultResolution, m.Resolution())
	assert.True(t, m.IsEmpty())
	for i, v := range m.Values() {
		assert.Zerof(t, v, "bin %d", i)
	}
}

func TestBinDirectionsAreEvenlySpaced(t *testing.T) {
	m := New()
	for i := 0; i < m.Resolution(); i++ {
		angle := float64(i) * 2 * math.Pi / float64(m.Resolution())
		d := m.Direction(i)
		assert.InDelta(t, math.Cos(angle), d.X, eps)
		assert.InDelta(t, math.Sin(angle), d.Y, eps)
	}
	assert.Equal(t, m.Direction(0), m.Direction(m.Resolution()))
	assert.Equal(t, m.Direction(m.Resolution()-1), m.Direction(-1))
}

func TestAddKeepsMaximum(t *testing.T) {
	right := cp.Vector{X: 1}

	m := New()
	m.Add(right, Dot(0.5))
	first := m.Values()

	m.Add(right, Dot(0.5))
	assert.Equal(t, first, m.Values(), "same add twice must not accumulate")

	m.Add(right, Dot(0.8))
	assert.InDelta(t, 0.8, m.Values()[0], eps)

	m.Add(right, Dot(0.2))
	assert.InDelta(t, 0.8, m.Values()[0], eps, "weaker add must not lower a bin")
}

func TestAddMethods(t *testing.T) {
	right := cp.Vector{X: 1}
	opposite := DefaultResolution / 2

	tests := []struct {
		name   string
		method AddMethod
		front  float64
		back   float64
	}{
		{name: "dot", method: Dot(1), front: 1, back: 0},
		{name: "dot_with_minimum", method: DotWithMinimum(1, 0.5), front: 1, back: 0},
		{name: "dot_inverted", method: DotInverted(1), front: 0, back: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := New()
			m.Add(right, tc.method)
			values := m.Values()
			assert.InDelta(t, tc.front, values[0], eps)
			assert.InDelta(t, tc.back, values[opposite], eps)
			for i, v := range values {
				assert.GreaterOrEqualf(t, v, 0.0, "bin %d", i)
			}
		})
	}

	t.Run("minimum_floor_on_perpendicular", func(t *testing.T) {
		m := New()
		m.Add(right, DotWithMinimum(2, 0.5))
		// bin 3 is perpendicular: 2*(0.5+0*0.5) = 1
		assert.InDelta(t, 1.0, m.Values()[3], eps)
	})
}

func TestMaskClampsAtZero(t *testing.T) {
	a := New()
	a.Add(cp.Vector{X: 1}, Dot(0.4))
	b := New()
	b.Add(cp.Vector{X: 1}, Dot(1))
	b.Add(cp.Vector{Y: 1}, Dot(0.3))

	masked := a.Mask(b)
	for i, v := range masked.Values() {
		assert.GreaterOrEqualf(t, v, 0.0, "bin %d", i)
	}
	assert.True(t, masked.IsEmpty())

	assert.Equal(t, a.Values(), a.Mask(New()).Values())
	assert.False(t, a.IsEmpty(), "mask must not mutate the receiver")
}

func TestMaskResolutionMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		New().Mask(NewWithResolution(8))
	})
}

func TestVectorOnEmptyMapIsZero(t *testing.T) {
	m := New()
	for _, sel := range []Selection{SelectContinuity, SelectLegacy} {
		assert.NotPanics(t, func() {
			v := m.Vector(cp.Vector{}, SpreadChase, sel)
			assert.Equal(t, cp.Vector{}, v)
		})
		assert.Equal(t, cp.Vector{}, m.Vector(cp.Vector{X: 1}, SpreadChase, sel))
	}
}

func TestVectorFollowsStrongestLobe(t *testing.T) {
	m := New()
	m.Add(cp.Vector{Y: 1}, Dot(1))
	v := m.Vector(cp.Vector{}, SpreadChase, SelectContinuity)
	assert.InDelta(t, 0, v.X, eps)
	assert.InDelta(t, 1, v.Y, eps)
	assert.InDelta(t, 1, v.Length(), eps)
}

func TestSelectionPolicies(t *testing.T) {
	build := func() ContextMap {
		m := New()
		m.Add(cp.Vector{X: 1}, Dot(0.5))
		m.Add(cp.Vector{X: -1}, Dot(1))
		return m
	}
	right := cp.Vector{X: 1}

	tests := []struct {
		name     string
		sel      Selection
		previous cp.Vector
		wantX    float64
	}{
		{name: "continuity_keeps_previous_heading", sel: SelectContinuity, previous: right, wantX: 1},
		{name: "continuity_without_previous_uses_max", sel: SelectContinuity, previous: cp.Vector{}, wantX: -1},
		{name: "legacy_with_previous_uses_max", sel: SelectLegacy, previous: right, wantX: -1},
		{name: "legacy_without_previous_takes_first_nonzero", sel: SelectLegacy, previous: cp.Vector{}, wantX: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := build().Vector(tc.previous, SpreadChase, tc.sel)
			assert.InDelta(t, tc.wantX, v.X, 1e-6)
			assert.InDelta(t, 0, v.Y, 1e-6)
		})
	}
}

func TestMaxIndexPrefersFirstOnTie(t *testing.T) {
	m := New()
	m.values[4] = 1
	m.values[9] = 1
	assert.Equal(t, 4, m.maxIndex())
}
