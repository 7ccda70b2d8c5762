package component

// AITarget is the entity an agent measures its routines against. Target holds
// an ecs.Entity; it may go stale and must be checked before use.
type AITarget struct {
	Target uint64
}

var AITargetComponent = NewComponent[AITarget]()

// AIPolicy names the selection policy that swaps the agent's routines. An
// empty or unknown name falls back to the distance bands of its RoutineSet.
type AIPolicy struct {
	Name string
}

var AIPolicyComponent = NewComponent[AIPolicy]()

// Archetype records the prefab an agent was built from.
type Archetype struct {
	Name string
}

var ArchetypeComponent = NewComponent[Archetype]()
