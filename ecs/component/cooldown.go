package component

import (
	"time"

	"github.com/milk9111/arena/common"
)

// Cooldown gates a repeated action. It is ready until triggered and becomes
// ready again once its timer runs out.
type Cooldown struct {
	Timer   common.Timer
	waiting bool
}

func NewCooldown(seconds float64) Cooldown {
	return Cooldown{Timer: common.NewTimer(common.Seconds(seconds), common.TimerOnce)}
}

func (c *Cooldown) Tick(dt time.Duration) {
	if !c.waiting {
		return
	}
	if c.Timer.Tick(dt).Finished() {
		c.waiting = false
	}
}

func (c *Cooldown) Ready() bool {
	return !c.waiting
}

// Trigger starts the countdown. It reports false when still cooling down.
func (c *Cooldown) Trigger() bool {
	if c.waiting {
		return false
	}
	c.Timer.Reset()
	c.waiting = c.Timer.Duration > 0
	return true
}
