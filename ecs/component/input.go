package component

import "github.com/jakecoffman/cp"

// Input stores per-frame input state for an entity. Move is normalized; Aim
// is a world position.
type Input struct {
	Move cp.Vector
	Aim  cp.Vector
	Fire bool
}

var InputComponent = NewComponent[Input]()
