package component

import "github.com/milk9111/arena/steer"

// SteerAI attaches a steering agent and its active behaviors to an entity.
type SteerAI struct {
	Agent     *steer.Agent
	Behaviors []steer.Behavior
}

var SteerAIComponent = NewComponent[SteerAI]()
