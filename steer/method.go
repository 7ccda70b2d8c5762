package steer

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

type methodKind int

const (
	methodDot methodKind = iota
	methodDotWithMinimum
	methodDotInverted
)

// AddMethod combines a bin/direction dot product with a weight.
type AddMethod struct {
	kind    methodKind
	weight  float64
	minimum float64
}

// Dot yields max(dot*weight, 0).
func Dot(weight float64) AddMethod {
	return AddMethod{kind: methodDot, weight: weight}
}

// DotWithMinimum yields max(weight*(minimum+dot*minimum), 0).
func DotWithMinimum(weight, minimum float64) AddMethod {
	return AddMethod{kind: methodDotWithMinimum, weight: weight, minimum: minimum}
}

// DotInverted yields |1-dot*weight|, favoring bins facing away from the
// direction.
func DotInverted(weight float64) AddMethod {
	return AddMethod{kind: methodDotInverted, weight: weight}
}

func (a AddMethod) apply(dot float64) float64 {
	switch a.kind {
	case methodDotWithMinimum:
		return math.Max(a.weight*(a.minimum+dot*a.minimum), 0)
	case methodDotInverted:
		return math.Abs(1 - dot*a.weight)
	default:
		return math.Max(dot*a.weight, 0)
	}
}

// Selection chooses which bin dominates ContextMap.Vector.
type Selection int

const (
	// SelectContinuity prefers the non-zero bin closest to the previous
	// direction and uses the global maximum when there is none.
	SelectContinuity Selection = iota
	// SelectLegacy runs the closest-bin search only against a zero previous
	// direction and takes the global maximum otherwise.
	SelectLegacy
)

func (s Selection) dominant(m ContextMap, previous cp.Vector) int {
	zero := previous == (cp.Vector{})
	switch s {
	case SelectLegacy:
		if zero {
			if i, ok := m.closestIndex(previous); ok {
				return i
			}
		}
		return m.maxIndex()
	default:
		if !zero {
			if i, ok := m.closestIndex(previous); ok {
				return i
			}
		}
		return m.maxIndex()
	}
}

func (s Selection) String() string {
	switch s {
	case SelectLegacy:
		return "legacy"
	default:
		return "continuity"
	}
}

// ParseSelection maps a config name onto a Selection.
func ParseSelection(name string) (Selection, error) {
	switch name {
	case "", "continuity":
		return SelectContinuity, nil
	case "legacy":
		return SelectLegacy, nil
	}
	return SelectContinuity, fmt.Errorf("steer: unknown selection %q", name)
}
