package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/common"
)

// Movement is the sink every mover writes into. Direction is a unit vector
// or zero; Velocity is derived from it by the movement system.
type Movement struct {
	Direction cp.Vector
	Moving    bool
	Velocity  cp.Vector
}

func (m *Movement) Stop() {
	m.Direction = cp.Vector{}
	m.Moving = false
	m.Velocity = cp.Vector{}
}

var MovementComponent = NewComponent[Movement]()

// TargetPosition is a point the entity walks to. It is removed on arrival.
type TargetPosition struct {
	Point cp.Vector
}

var TargetPositionComponent = NewComponent[TargetPosition]()

// Dashing is a temporary speed bonus. The bonus is applied to Character when
// the component is inserted and taken back when it is removed.
type Dashing struct {
	Bonus float64
	Trail common.Timer
}

var DashingComponent = NewComponent[Dashing]()

// Wiggle rocks the transform while the entity moves.
type Wiggle struct {
	Magnitude float64
	Speed     float64
	Act       float64
}

var WiggleComponent = NewComponent[Wiggle]()

// DashEffect marks a fading afterimage left behind while dashing.
type DashEffect struct {
	Alpha float64
}

var DashEffectComponent = NewComponent[DashEffect]()
