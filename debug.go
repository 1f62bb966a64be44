package pasture

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-frame timing and activity counters.
// Only populated when Scene.debug is true.
type debugStats struct {
	inputTime  time.Duration
	stepTime   time.Duration
	tickTime   time.Duration
	bodies     int
	active     int
	collisions int
}

// debugLog logs timing and activity stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.Debug("frame",
		zap.Duration("input", stats.inputTime),
		zap.Duration("step", stats.stepTime),
		zap.Duration("tick", stats.tickTime),
		zap.Duration("total", stats.inputTime+stats.stepTime+stats.tickTime),
		zap.Int("bodies", stats.bodies),
		zap.Int("active", stats.active),
		zap.Int("collisions", stats.collisions))
}

// invariantViolation handles a body that reached a state it must never be
// in. In debug mode it panics with a descriptive message; otherwise it logs
// the error and resets the body to Idle at its rest position so the frame
// loop keeps running.
func (s *Scene) invariantViolation(b *Body, err error) {
	if s.debug {
		panic(fmt.Sprintf("pasture debug: %v", err))
	}
	s.log.Error("body invariant violated; resetting to rest",
		zap.String("body", b.ID),
		zap.Stringer("mode", b.mode),
		zap.Error(err))
	b.Reset()
	s.detector.Reset(b.ID)
	s.releaseCapture(b)
	s.spatial.Publish(b.ID, b.Bounds())
}
