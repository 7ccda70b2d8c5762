package component

import "github.com/milk9111/arena/common"

// TTL destroys its entity once the timer finishes.
type TTL struct {
	Timer common.Timer
}

var TTLComponent = NewComponent[TTL]()
