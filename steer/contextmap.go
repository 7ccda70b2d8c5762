package steer

import (
	"fmt"
	"math"
	"sync"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/common"
)

// DefaultResolution is the number of directional bins in a ContextMap.
const DefaultResolution = 12

// SpreadChase is the neighbor-bin radius used when picking a chase direction.
const SpreadChase = 2

var (
	directionsMu sync.Mutex
	directions   = map[int][]cp.Vector{}
)

// binDirections returns the shared unit vectors for a resolution. Bin i
// points at angle i*2π/n.
func binDirections(n int) []cp.Vector {
	directionsMu.Lock()
	defer directionsMu.Unlock()
	if dirs, ok := directions[n]; ok {
		return dirs
	}
	dirs := make([]cp.Vector, n)
	step := 2 * math.Pi / float64(n)
	for i := range dirs {
		a := float64(i) * step
		dirs[i] = cp.Vector{X: math.Cos(a), Y: math.Sin(a)}
	}
	directions[n] = dirs
	return dirs
}

// ContextMap is a circular histogram of directional interest. Every bin is
// non-negative.
type ContextMap struct {
	values []float64
	dirs   []cp.Vector
}

// New returns an empty map at DefaultResolution.
func New() ContextMap {
	return NewWithResolution(DefaultResolution)
}

// NewWithResolution returns an empty map with n bins. n below 1 falls back to
// DefaultResolution.
func NewWithResolution(n int) ContextMap {
	if n < 1 {
		n = DefaultResolution
	}
	return ContextMap{
		values: make([]float64, n),
		dirs:   binDirections(n),
	}
}

func (m ContextMap) Resolution() int {
	return len(m.values)
}

// Values returns a copy of the bin values.
func (m ContextMap) Values() []float64 {
	return append([]float64(nil), m.values...)
}

// Direction returns the unit vector of bin i.
func (m ContextMap) Direction(i int) cp.Vector {
	return m.dirs[m.wrap(i)]
}

// Reset zeroes every bin in place.
func (m ContextMap) Reset() {
	for i := range m.values {
		m.values[i] = 0
	}
}

// Add merges an interest toward dir into every bin. Each bin keeps the larger
// of its current value and the new one.
func (m ContextMap) Add(dir cp.Vector, method AddMethod) {
	for i, bin := range m.dirs {
		v := method.apply(bin.Dot(dir))
		if v > m.values[i] {
			m.values[i] = v
		}
	}
}

// Mask returns m with other subtracted bin by bin, clamped at zero.
func (m ContextMap) Mask(other ContextMap) ContextMap {
	if len(other.values) != len(m.values) {
		panic(fmt.Sprintf("steer: mask resolution mismatch %d != %d", len(m.values), len(other.values)))
	}
	out := ContextMap{values: make([]float64, len(m.values)), dirs: m.dirs}
	for i, v := range m.values {
		out.values[i] = math.Max(v-other.values[i], 0)
	}
	return out
}

func (m ContextMap) IsEmpty() bool {
	for _, v := range m.values {
		if v != 0 {
			return false
		}
	}
	return true
}

// Vector picks a dominant bin, sums it with spread neighbors on each side
// weighted by their values, and returns the normalized result. An empty or
// degenerate map yields the zero vector.
func (m ContextMap) Vector(previous cp.Vector, spread int, sel Selection) cp.Vector {
	if len(m.values) == 0 {
		return cp.Vector{}
	}
	index := sel.dominant(m, previous)
	if spread < 0 {
		spread = 0
	}
	if 2*spread+1 > len(m.values) {
		spread = (len(m.values) - 1) / 2
	}

	var total cp.Vector
	for offset := -spread; offset <= spread; offset++ {
		i := m.wrap(index + offset)
		total = total.Add(m.dirs[i].Mult(m.values[i]))
	}
	return common.NormalizeOrZero(total)
}

func (m ContextMap) wrap(i int) int {
	n := len(m.values)
	return ((i % n) + n) % n
}

// maxIndex is the first bin holding the highest value.
func (m ContextMap) maxIndex() int {
	best := 0
	for i, v := range m.values {
		if v > m.values[best] {
			best = i
		}
	}
	return best
}

// closestIndex is the non-zero bin whose direction best matches v.
func (m ContextMap) closestIndex(v cp.Vector) (int, bool) {
	best := -1
	bestDot := 0.0
	for i, value := range m.values {
		if value <= 0 {
			continue
		}
		d := m.dirs[i].Dot(v)
		if best < 0 || d > bestDot {
			best = i
			bestDot = d
		}
	}
	return best, best >= 0
}
