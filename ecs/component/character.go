package component

// Character is anything that moves under its own power. Speed is in
// pixels per second and already includes any active bonus.
type Character struct {
	Speed     float64
	BaseSpeed float64
	Group     int
}

func (c *Character) AddSpeed(bonus float64) {
	c.Speed += bonus
	if c.Speed < 0 {
		c.Speed = 0
	}
}

var CharacterComponent = NewComponent[Character]()

// Facing is true when the character looks toward -X.
type Facing struct {
	Left bool
}

var FacingComponent = NewComponent[Facing]()
