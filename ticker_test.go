package pasture

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestTickerDeltas(t *testing.T) {
	clock := NewManualClock(epoch)
	tk := NewTicker(clock)

	first := tk.Next()
	if first.Delta != 0 || first.Frame != 1 || !first.Now.Equal(epoch) {
		t.Errorf("first tick = %+v", first)
	}

	clock.Advance(16 * time.Millisecond)
	if d := tk.Next().Delta; d != 16*time.Millisecond {
		t.Errorf("delta = %v, want 16ms", d)
	}

	// A suspended tab: Now jumps, Delta is capped.
	clock.Advance(3 * time.Hour)
	tick := tk.Next()
	if tick.Delta != DefaultMaxDelta {
		t.Errorf("delta = %v, want %v", tick.Delta, DefaultMaxDelta)
	}
	if want := epoch.Add(3*time.Hour + 16*time.Millisecond); !tick.Now.Equal(want) {
		t.Errorf("now = %v, want %v", tick.Now, want)
	}

	clock.Set(epoch)
	if d := tk.Next().Delta; d != 0 {
		t.Errorf("delta after clock moved back = %v, want 0", d)
	}
	if f := tk.Next().Frame; f != 5 {
		t.Errorf("frame = %d, want 5", f)
	}
}

func TestTickerUncapped(t *testing.T) {
	clock := NewManualClock(epoch)
	tk := NewTicker(clock)
	tk.MaxDelta = 0
	tk.Next()
	clock.Advance(time.Hour)
	if d := tk.Next().Delta; d != time.Hour {
		t.Errorf("delta = %v, want 1h", d)
	}
}

func TestNewTickerDefaultsToSystemClock(t *testing.T) {
	tk := NewTicker(nil)
	if _, ok := tk.Clock.(SystemClock); !ok {
		t.Errorf("clock = %T, want SystemClock", tk.Clock)
	}
}

func TestSceneTickHandlers(t *testing.T) {
	s := NewScene()
	clock := NewManualClock(epoch)
	s.SetClock(clock)

	var ticks []Tick
	h := s.OnTick(func(tk Tick) { ticks = append(ticks, tk) })

	s.Update()
	clock.Advance(time.Second)
	s.Update()
	if len(ticks) != 2 {
		t.Fatalf("ticks = %d, want 2", len(ticks))
	}
	if ticks[1].Delta != DefaultMaxDelta {
		t.Errorf("delta = %v, want capped", ticks[1].Delta)
	}
	if s.LastTick().Frame != 2 {
		t.Errorf("LastTick frame = %d", s.LastTick().Frame)
	}

	h.Remove()
	s.Update()
	if len(ticks) != 2 {
		t.Errorf("handler still called after Remove")
	}
}
