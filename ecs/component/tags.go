package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type AITag struct{}

var AITagComponent = NewComponent[AITag]()

type ObstacleTag struct{}

var ObstacleTagComponent = NewComponent[ObstacleTag]()

type ProjectileTag struct {
	// Owner is the ecs.Entity that fired the projectile.
	Owner uint64
}

var ProjectileTagComponent = NewComponent[ProjectileTag]()
