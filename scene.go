package pasture

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrDuplicateBody is returned by AddBody when the id is already in use.
var ErrDuplicateBody = errors.New("duplicate body id")

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent is a discrete interaction outcome: a body was picked up,
// dropped, or came within range of a target.
type InteractionEvent struct {
	Kind     EventKind
	BodyID   string
	TargetID string // valid for EventCollide
	X, Y     float64
	Episode  uint64
}

// Scene owns the interaction bodies, the input dispatcher, the spatial
// registry, the proximity detector and the tick driver. It is stepped once
// per frame by Update and is not safe for concurrent use.
type Scene struct {
	bodies   []*Body
	bodyByID map[string]*Body
	spatial  *SpatialRegistry
	detector *Detector
	ticker   *Ticker
	lastTick Tick

	store    EntityStore
	log      *zap.Logger
	debug    bool
	viewport Rect
	stepping bool
	dirty    bool // bodies slice holds removed bodies

	// Input state
	handlers    handlerRegistry
	captured    [maxPointers]*Body
	pointers    [maxPointers]pointerState
	latest      Vec2
	input       InputSource
	sampleBuf   []PointerSample
	injectQueue []injected
	testRunner  *TestRunner

	stats debugStats
}

// NewScene creates an empty scene with a zero viewport, the wall clock and
// a no-op logger.
func NewScene() *Scene {
	spatial := NewSpatialRegistry()
	return &Scene{
		bodyByID: make(map[string]*Body),
		spatial:  spatial,
		detector: NewDetector(spatial),
		ticker:   NewTicker(nil),
		log:      zap.NewNop(),
	}
}

// SetLogger sets the logger used for invariant violations and debug stats.
// Nil restores the no-op logger.
func (s *Scene) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

// SetClock replaces the clock feeding the tick driver.
func (s *Scene) SetClock(c Clock) {
	s.ticker = NewTicker(c)
}

// Ticker returns the scene's tick driver.
func (s *Scene) Ticker() *Ticker { return s.ticker }

// LastTick returns the tick produced by the most recent Update.
func (s *Scene) LastTick() Tick { return s.lastTick }

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, invariant
// violations panic instead of resetting the offending body, and per-frame
// stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Viewport returns the current screen rectangle.
func (s *Scene) Viewport() Rect { return s.viewport }

// SetViewport updates the screen rectangle used as flight bounds and fires
// resize handlers when it changed.
func (s *Scene) SetViewport(r Rect) {
	if r == s.viewport {
		return
	}
	s.viewport = r
	s.fireResize()
}

// Spatial returns the scene's spatial registry. Games publish static
// collision targets into it.
func (s *Scene) Spatial() *SpatialRegistry { return s.spatial }

// Detector returns the scene's proximity detector.
func (s *Scene) Detector() *Detector { return s.detector }

// AddBody registers b with the scene. Bodies are stepped in the order they
// were added; later bodies are on top for pointer hit testing.
func (s *Scene) AddBody(b *Body) error {
	if b == nil {
		return errors.New("pasture: nil body")
	}
	if _, ok := s.bodyByID[b.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateBody, b.ID)
	}
	b.scene = s
	b.removed = false
	s.bodies = append(s.bodies, b)
	s.bodyByID[b.ID] = b
	s.spatial.Publish(b.ID, b.Bounds())
	return nil
}

// RemoveBody unregisters the body with the given id. Its episode is stopped
// synchronously without callbacks, its pointer capture is released and its
// collision registry cleared. It is safe to call from body callbacks.
func (s *Scene) RemoveBody(id string) bool {
	b, ok := s.bodyByID[id]
	if !ok {
		return false
	}
	b.Cancel()
	b.removed = true
	b.scene = nil
	delete(s.bodyByID, id)
	s.releaseCapture(b)
	s.spatial.Remove(id)
	s.detector.Forget(id)

	if s.stepping {
		s.dirty = true
		return true
	}
	s.compact()
	return true
}

// Body returns the body with the given id, or nil.
func (s *Scene) Body(id string) *Body { return s.bodyByID[id] }

// Bodies returns the bodies in step order. The returned slice MUST NOT be
// mutated.
func (s *Scene) Bodies() []*Body {
	if s.dirty && !s.stepping {
		s.compact()
	}
	return s.bodies
}

// Activate drives a controlled body from the latest pointer sample.
func (s *Scene) Activate(id string, active bool) bool {
	b := s.bodyByID[id]
	if b == nil {
		return false
	}
	return b.SetActive(active, s.latest)
}

// OnTick registers a callback run once per Update after all bodies have
// been stepped.
func (s *Scene) OnTick(fn func(Tick)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.tick = append(s.handlers.tick, tickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventTick}
}

// Update runs one frame: input, then every body in order (step, publish,
// proximity), then the tick handlers. The tick is read before the bodies
// step; its capped Delta is the dt handed to tweens, so fades and pulses
// follow the clock and never jump more than MaxDelta in one frame.
func (s *Scene) Update() {
	var t0 time.Time
	if s.debug {
		s.stats = debugStats{}
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()

	tick := s.ticker.Next()
	s.lastTick = tick
	dt := float32(tick.Delta.Seconds())

	if s.debug {
		s.stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	s.stepping = true
	for _, b := range s.bodies {
		s.stepBody(b, dt)
	}
	s.stepping = false
	if s.dirty {
		s.compact()
	}

	if s.debug {
		s.stats.stepTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, h := range s.handlers.tick {
		h.fn(tick)
	}

	if s.debug {
		s.stats.tickTime = time.Since(t0)
		s.stats.bodies = len(s.bodies)
		s.debugLog(s.stats)
	}
}

// stepBody advances one body, publishes its bounds and runs its proximity
// rule against them.
func (s *Scene) stepBody(b *Body, dt float32) {
	if b.removed {
		return
	}
	if err := b.Update(s.anchorFor(b), s.viewport, dt); err != nil {
		s.invariantViolation(b, err)
		return
	}
	if b.removed {
		return
	}
	s.spatial.Publish(b.ID, b.Bounds())
	if b.mode == ModeIdle {
		return
	}
	if s.debug {
		s.stats.active++
	}

	rule := b.Proximity
	if rule == nil || rule.Targets == nil {
		return
	}
	threshold := rule.Threshold
	if threshold <= 0 {
		threshold = b.Config.CollisionDistance
	}
	episode := b.episode
	n := s.detector.Check(b.ID, b.Phys.Position, rule.Targets(), threshold, func(target string, pos Vec2) {
		if b.removed || b.episode != episode {
			return
		}
		if rule.OnCollide != nil {
			rule.OnCollide(target, pos)
		}
		s.emitInteractionEvent(EventCollide, b, target)
	})
	if s.debug {
		s.stats.collisions += n
	}
}

// bodyDropped is called once per episode when b returns to Idle.
func (s *Scene) bodyDropped(b *Body) {
	s.detector.Reset(b.ID)
	s.releaseCapture(b)
	s.emitInteractionEvent(EventDrop, b, "")
}

func (s *Scene) releaseCapture(b *Body) {
	for i := range s.captured {
		if s.captured[i] == b {
			s.captured[i] = nil
		}
	}
}

// compact drops removed bodies from the step order.
func (s *Scene) compact() {
	n := 0
	for _, b := range s.bodies {
		if !b.removed {
			s.bodies[n] = b
			n++
		}
	}
	for i := n; i < len(s.bodies); i++ {
		s.bodies[i] = nil
	}
	s.bodies = s.bodies[:n]
	s.dirty = false
}

// --- ECS bridge ---

func (s *Scene) emitInteractionEvent(kind EventKind, b *Body, target string) {
	if s.debug {
		s.log.Debug("interaction",
			zap.Stringer("kind", kind),
			zap.String("body", b.ID),
			zap.String("target", target),
			zap.Uint64("episode", b.episode))
	}
	if s.store == nil {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Kind:     kind,
		BodyID:   b.ID,
		TargetID: target,
		X:        b.Phys.Position.X,
		Y:        b.Phys.Position.Y,
		Episode:  b.episode,
	})
}
