package component

// Weapon is the held weapon. Rotation is relative to the holder.
type Weapon struct {
	Rotation float64
}

var WeaponComponent = NewComponent[Weapon]()

type Health struct {
	Max     float64
	Current float64
}

var HealthComponent = NewComponent[Health]()

// Attack is the damage a projectile deals on contact.
type Attack struct {
	Value float64
}

var AttackComponent = NewComponent[Attack]()
