package common

import "time"

// TimerMode controls what happens once a Timer reaches its duration.
type TimerMode int

const (
	TimerOnce TimerMode = iota
	TimerRepeating
)

// Timer accumulates frame deltas. JustFinished is only true on the tick the
// duration was crossed.
type Timer struct {
	Duration time.Duration
	Mode     TimerMode

	elapsed      time.Duration
	finished     bool
	justFinished bool
}

func NewTimer(d time.Duration, mode TimerMode) Timer {
	return Timer{Duration: d, Mode: mode}
}

// Seconds builds a duration from fractional seconds.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Tick advances the timer by dt and returns it for chaining.
func (t *Timer) Tick(dt time.Duration) *Timer {
	if t == nil {
		return nil
	}
	t.justFinished = false
	if t.Mode == TimerOnce && t.finished {
		return t
	}
	t.elapsed += dt
	if t.elapsed < t.Duration {
		return t
	}
	t.justFinished = true
	t.finished = true
	if t.Mode == TimerRepeating && t.Duration > 0 {
		t.elapsed %= t.Duration
		return t
	}
	t.elapsed = t.Duration
	return t
}

func (t *Timer) JustFinished() bool {
	return t != nil && t.justFinished
}

func (t *Timer) Finished() bool {
	return t != nil && t.finished
}

// Percent is the completed fraction of the current cycle in [0, 1].
func (t *Timer) Percent() float64 {
	if t == nil {
		return 0
	}
	if t.Duration <= 0 {
		return 1
	}
	if t.Mode == TimerOnce && t.finished {
		return 1
	}
	p := float64(t.elapsed) / float64(t.Duration)
	if p > 1 {
		return 1
	}
	return p
}

func (t *Timer) PercentLeft() float64 {
	return 1 - t.Percent()
}

func (t *Timer) Reset() {
	if t == nil {
		return
	}
	t.elapsed = 0
	t.finished = false
	t.justFinished = false
}

func (t *Timer) SetDuration(d time.Duration) {
	if t == nil {
		return
	}
	t.Duration = d
}
