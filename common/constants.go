package common

const (
	ScreenWidth  = 800
	ScreenHeight = 600

	// SpriteDrawSize is the on-screen size of one character tile.
	SpriteDrawSize = 40.0

	// ProjectileSpeed is the player's projectile speed in px/s. AI attacks
	// fire at a fraction of it.
	ProjectileSpeed = 500.0

	// PlayerSpeed is in px/s.
	PlayerSpeed = 180.0
)
