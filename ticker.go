package pasture

import "time"

// DefaultMaxDelta caps the delta reported after a long gap between frames.
const DefaultMaxDelta = 250 * time.Millisecond

// Clock supplies the current time to a Ticker.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to. Tests and headless
// simulations use it to replay sessions deterministically.
type ManualClock struct {
	t time.Time
}

// NewManualClock returns a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{t: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time { return c.t }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) { c.t = t }

// Tick is one invocation of the progress engine.
type Tick struct {
	// Now is the absolute time of this tick. Progress is always derived
	// from it, never accumulated, so a tick after a long suspension is
	// immediately correct.
	Now time.Time
	// Delta is the time since the previous tick, capped at MaxDelta. Only
	// frame-relative effects (tweens, fades) should use it.
	Delta time.Duration
	// Frame counts ticks since the ticker was created, starting at 1.
	Frame uint64
}

// Ticker turns clock readings into Ticks.
type Ticker struct {
	Clock    Clock
	MaxDelta time.Duration

	last  time.Time
	frame uint64
}

// NewTicker returns a ticker reading from clock. A nil clock uses the wall
// clock.
func NewTicker(clock Clock) *Ticker {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Ticker{Clock: clock, MaxDelta: DefaultMaxDelta}
}

// Next reads the clock and returns the next Tick. The first tick has a
// zero delta; a clock that moved backwards also yields a zero delta.
func (t *Ticker) Next() Tick {
	now := t.Clock.Now()
	var delta time.Duration
	if t.frame > 0 {
		delta = now.Sub(t.last)
		if delta < 0 {
			delta = 0
		}
		if t.MaxDelta > 0 && delta > t.MaxDelta {
			delta = t.MaxDelta
		}
	}
	t.last = now
	t.frame++
	return Tick{Now: now, Delta: delta, Frame: t.frame}
}
