package component

// Fireball is the player's ranged attack. Damage rides on the Attack
// component of the projectiles it spawns.
type Fireball struct {
	Speed    float64
	Damage   float64
	Cooldown Cooldown
}

var FireballComponent = NewComponent[Fireball]()
