package pasture

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// ErrInvalidMode is returned by Body.Update when the body is in a mode
// outside Idle, Held and Flying. It always indicates a programming error.
var ErrInvalidMode = errors.New("body in undefined mode")

// facingEpsilon is the horizontal speed under which facing is left alone.
const facingEpsilon = 0.5

// Body is one draggable entity (a cow, a tool, a crafting item) and the
// controller that owns its whole interaction lifecycle:
//
//	Idle -> Pickup -> Held -> Release -> Idle            (not throwable)
//	Idle -> Pickup -> Held -> Release -> Flying -> Idle  (throwable)
//
// Controlled bodies (tools) skip pickup and release and are driven by
// SetActive instead.
//
// A Body is not safe for concurrent use; it is stepped from the scene's
// update loop only.
type Body struct {
	// ID is unique and stable for the body's lifetime.
	ID string
	// Rest is the spawn position a tool returns to when deactivated and
	// the position the body is reset to after an invariant violation.
	Rest Vec2
	// Phys is the simulated state, owned exclusively by this body.
	Phys PhysicsBody
	// Config is this body's tuning.
	Config BodyConfig
	// Proximity, if set, is checked against the spatial registry every
	// step while the body is Held or Flying.
	Proximity *ProximityRule
	// UserData is arbitrary data for the owning game.
	UserData any

	// Callbacks (nil by default).
	OnPickup         func(b *Body)
	OnPositionChange func(b *Body, pos Vec2)
	OnDrop           func(b *Body, pos Vec2)

	mode        BodyMode
	active      bool
	episode     uint64
	dropped     bool
	prevAnchor  Vec2
	spinAngle   float64
	rotation    float64
	alpha       float64
	baseScale   float64
	facingRight bool
	lastFlight  FlightResult
	fade        *TweenGroup // alpha, while returning to Rest
	homing      *TweenGroup // position, while returning to Rest
	pulse       *TweenGroup // base scale, back to 1

	scene   *Scene
	removed bool
}

// NewBody creates an idle body resting at rest.
func NewBody(id string, rest Vec2, cfg BodyConfig) *Body {
	return &Body{
		ID:          id,
		Rest:        rest,
		Phys:        PhysicsBody{Position: rest},
		Config:      cfg,
		alpha:       1,
		baseScale:   1,
		facingRight: true,
	}
}

// Mode returns the current interaction mode.
func (b *Body) Mode() BodyMode { return b.mode }

// Position returns the current position.
func (b *Body) Position() Vec2 { return b.Phys.Position }

// Bounds returns the body's rectangle centered on its position.
func (b *Body) Bounds() Rect {
	return RectAround(b.Phys.Position, b.Config.Width, b.Config.Height)
}

// Episode returns the number of the current (or last) Held/Flying episode.
// It is 0 until the body is first picked up.
func (b *Body) Episode() uint64 { return b.episode }

// Active reports whether a controlled body is currently driven by the pointer.
func (b *Body) Active() bool { return b.active }

// FacingRight reports the horizontal direction the body last moved in.
func (b *Body) FacingRight() bool { return b.facingRight }

// Alpha returns the body's opacity in [0, 1].
func (b *Body) Alpha() float64 { return b.alpha }

// Fading reports whether a deactivated tool is still fading back to spawn.
func (b *Body) Fading() bool { return b.fade != nil }

// Pulsing reports whether a Pulse is still easing back.
func (b *Body) Pulsing() bool { return b.pulse != nil }

// Pulse pops the body's scale to peak and eases it back to 1 over d. A new
// pulse replaces one still running.
func (b *Body) Pulse(peak float64, d time.Duration) {
	if b.removed || d <= 0 || peak <= 0 {
		return
	}
	b.baseScale = peak
	b.pulse = TweenScale(b, 1, float32(d.Seconds()), ease.OutQuad)
}

// LastFlight returns the result of the most recent flight step.
func (b *Body) LastFlight() FlightResult { return b.lastFlight }

// Rotation returns the rendered rotation in degrees: the rope angle while
// Held, the velocity direction plus accumulated spin while Flying, and 0
// while Idle.
func (b *Body) Rotation() float64 { return b.rotation }

// Scale returns the rendered scale. Flying bodies grow with speed.
func (b *Body) Scale() float64 {
	if b.mode != ModeFlying || b.Config.FlightScaleSpeed <= 0 {
		return b.baseScale
	}
	t := math.Min(b.Phys.Speed()/b.Config.FlightScaleSpeed, 1)
	return b.baseScale * (1 + t*b.Config.FlightScaleBoost)
}

// Pickup attaches the body to the pointer at anchor. A body picked up
// mid-flight has its flight cancelled first and stays in the same episode.
// Controlled bodies, removed bodies and bodies already held are ignored.
func (b *Body) Pickup(anchor Vec2) bool {
	if b.removed || b.Config.Controlled || b.mode == ModeHeld {
		return false
	}
	if b.mode == ModeFlying {
		b.Phys.stop()
		b.spinAngle = 0
	} else {
		b.beginEpisode()
	}
	b.mode = ModeHeld
	b.prevAnchor = anchor
	b.rotation = ropeAngle(anchor, b.Phys.Position)
	b.firePickup()
	return true
}

// Release lets go of a held body. Throwable bodies start flying with the
// velocity they carry; others drop where they are. A release without a
// matching pickup is ignored.
func (b *Body) Release() bool {
	if b.removed || b.Config.Controlled || b.mode != ModeHeld {
		return false
	}
	if b.Config.Throwable {
		b.mode = ModeFlying
		return true
	}
	b.settle()
	return true
}

// Throw releases a held body with an explicit velocity.
func (b *Body) Throw(v Vec2) bool {
	if b.removed || b.Config.Controlled || b.mode != ModeHeld {
		return false
	}
	if v.IsFinite() {
		b.Phys.Velocity = v
	}
	return b.Release()
}

// SetActive drives a controlled body. Activating it holds it at the pointer
// and starts an episode; deactivating it ends the episode, fires the drop
// and fades it back to its spawn position. It reports whether anything
// changed.
func (b *Body) SetActive(active bool, anchor Vec2) bool {
	if b.removed || !b.Config.Controlled || b.active == active {
		return false
	}
	b.active = active
	if active {
		b.fade, b.homing = nil, nil
		b.alpha = 1
		b.Phys.stop()
		b.Phys.Position = anchor.Add(Vec2{Y: b.Config.Rope.Length})
		b.beginEpisode()
		b.mode = ModeHeld
		b.prevAnchor = anchor
		b.rotation = 0
		b.firePickup()
		return true
	}

	b.settle()
	if b.Config.FadeDuration > 0 {
		d := float32(b.Config.FadeDuration.Seconds())
		b.fade = TweenAlpha(b, 0, d, ease.OutQuad)
		b.homing = TweenPosition(b, b.Rest.X, b.Rest.Y, d, ease.InOutQuad)
	} else {
		b.Phys.Position = b.Rest
	}
	return true
}

// Update advances the body by one frame. anchor is the pointer position
// driving a held body, bounds the current screen rectangle and dt the
// frame time in seconds (used by tweens only; the solvers are frame-based).
func (b *Body) Update(anchor Vec2, bounds Rect, dt float32) error {
	if b.removed {
		return nil
	}
	if b.pulse != nil {
		b.pulse.Update(dt)
		if b.pulse.Done {
			b.pulse = nil
			b.baseScale = 1
		}
	}
	switch b.mode {
	case ModeIdle:
		if b.fade != nil {
			b.fade.Update(dt)
			if b.homing != nil {
				b.homing.Update(dt)
			}
			if b.fade.Done {
				b.fade, b.homing = nil, nil
				b.Phys.Position = b.Rest
				b.alpha = 1
			}
		}
	case ModeHeld:
		StepRope(&b.Phys, anchor, b.prevAnchor, b.Config.ropeParams())
		b.prevAnchor = anchor
		b.rotation = ropeAngle(anchor, b.Phys.Position)
		b.updateFacing()
		b.firePositionChange()
	case ModeFlying:
		res := StepFlight(&b.Phys, bounds, b.Config.flightParams())
		b.lastFlight = res
		b.spinAngle = math.Mod(b.spinAngle+b.Phys.Spin, 360)
		b.rotation = b.flightTilt() + b.spinAngle
		b.updateFacing()
		b.firePositionChange()
		if res.Settled {
			b.settle()
		}
	default:
		return fmt.Errorf("%w: %d (body %q)", ErrInvalidMode, b.mode, b.ID)
	}
	return nil
}

// Cancel stops the body immediately without firing callbacks. Used when a
// body is unmounted mid-episode.
func (b *Body) Cancel() {
	b.mode = ModeIdle
	b.active = false
	b.Phys.stop()
	b.fade, b.homing, b.pulse = nil, nil, nil
	b.baseScale = 1
	b.rotation = 0
	b.spinAngle = 0
}

// Reset puts the body back to Idle at its rest position. It is the recovery
// path for invariant violations.
func (b *Body) Reset() {
	b.Cancel()
	b.dropped = true
	b.Phys.Position = b.Rest
	b.alpha = 1
}

func (b *Body) beginEpisode() {
	b.episode++
	b.dropped = false
}

// settle ends the episode: Idle, at rest, drop fired once.
func (b *Body) settle() {
	b.mode = ModeIdle
	b.Phys.stop()
	b.rotation = 0
	b.spinAngle = 0
	b.fireDrop()
}

// flightTilt maps the velocity direction to a rotation, mirrored so that a
// body falling to either side tips its nose down.
func (b *Body) flightTilt() float64 {
	v := b.Phys.Velocity
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	tilt := radToDeg(math.Atan2(v.Y, math.Abs(v.X))) * b.Config.FlightTilt
	if v.X < 0 {
		tilt = -tilt
	}
	return tilt
}

func (b *Body) updateFacing() {
	vx := b.Phys.Velocity.X
	if vx > facingEpsilon {
		b.facingRight = true
	} else if vx < -facingEpsilon {
		b.facingRight = false
	}
}

func (b *Body) firePickup() {
	if b.OnPickup != nil {
		b.OnPickup(b)
	}
	if b.scene != nil {
		b.scene.emitInteractionEvent(EventPickup, b, "")
	}
}

func (b *Body) firePositionChange() {
	if b.OnPositionChange != nil {
		b.OnPositionChange(b, b.Phys.Position)
	}
}

func (b *Body) fireDrop() {
	if b.dropped {
		return
	}
	b.dropped = true
	if b.OnDrop != nil {
		b.OnDrop(b, b.Phys.Position)
	}
	if b.scene != nil {
		b.scene.bodyDropped(b)
	}
}
