package pasture

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is wrapped by every tuning validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// validate is shared; validator caches struct metadata per type.
var validate = validator.New(validator.WithRequiredStructEnabled())

// RopeParams tunes the constraint solver. Units are pixels and frames.
type RopeParams struct {
	// Length is the fixed distance kept between the body and the anchor.
	Length float64 `yaml:"length" json:"length" validate:"gt=0"`
	// Gravity is added to the vertical velocity each step.
	Gravity float64 `yaml:"-" json:"-"`
	// Damping scales velocity each step (isotropic).
	Damping float64 `yaml:"damping" json:"damping" validate:"gt=0,lte=1"`
	// RadialCorrection is the fraction of the radial velocity removed each
	// step. 1 keeps only the tangential component.
	RadialCorrection float64 `yaml:"radial_correction" json:"radial_correction" validate:"gte=0,lte=1"`
	// DragInertia scales the anchor's frame-to-frame displacement into an
	// impulse on the body.
	DragInertia float64 `yaml:"drag_inertia" json:"drag_inertia" validate:"gte=0"`
}

// FlightParams tunes the projectile solver.
type FlightParams struct {
	Gravity float64 `yaml:"-" json:"-"`
	// GravityMultiplier lightens gravity in flight for a floaty toss.
	GravityMultiplier float64 `yaml:"gravity_multiplier" json:"gravity_multiplier" validate:"gte=0"`
	// Friction scales velocity each step. Must be < 1 for flights to settle.
	Friction float64 `yaml:"friction" json:"friction" validate:"gt=0,lt=1"`
	// SpinDecay scales spin each step.
	SpinDecay float64 `yaml:"spin_decay" json:"spin_decay" validate:"gte=0,lt=1"`
	// Bounce scales the velocity component reflected by a wall. Must be < 1.
	Bounce float64 `yaml:"bounce" json:"bounce" validate:"gte=0,lt=1"`
	// SpinTransfer converts the velocity along a wall into spin on impact.
	SpinTransfer float64 `yaml:"spin_transfer" json:"spin_transfer" validate:"gte=0"`
	// SettleSpeed is the speed under which a flight ends.
	SettleSpeed float64 `yaml:"settle_speed" json:"settle_speed" validate:"gt=0"`
	// MaxSpeed caps the speed of a flying body.
	MaxSpeed float64 `yaml:"max_speed" json:"max_speed" validate:"gtfield=SettleSpeed"`
	// Margins shrink the screen bounds used for wall collisions.
	Margins Margins `yaml:"margins" json:"margins"`
}

// BodyConfig is the per-instance tuning of an interaction body. Cows, tools
// and crafting items each carry their own.
type BodyConfig struct {
	Width  float64 `yaml:"width" json:"width" validate:"gt=0"`
	Height float64 `yaml:"height" json:"height" validate:"gt=0"`
	// Gravity is the per-step gravity shared by both solvers.
	Gravity float64 `yaml:"gravity" json:"gravity" validate:"gte=0,lte=10"`
	// Throwable bodies fly after release; others drop in place.
	Throwable bool `yaml:"throwable" json:"throwable"`
	// Controlled bodies are driven by SetActive instead of pointer pickup.
	Controlled bool `yaml:"controlled" json:"controlled"`

	Rope   RopeParams   `yaml:"rope" json:"rope"`
	Flight FlightParams `yaml:"flight" json:"flight"`

	// FlightScaleSpeed is the speed at which the flight scale boost peaks.
	FlightScaleSpeed float64 `yaml:"flight_scale_speed" json:"flight_scale_speed" validate:"gt=0"`
	// FlightScaleBoost is the extra scale applied at FlightScaleSpeed.
	FlightScaleBoost float64 `yaml:"flight_scale_boost" json:"flight_scale_boost" validate:"gte=0"`
	// FlightTilt scales the velocity direction into degrees of rotation.
	FlightTilt float64 `yaml:"flight_tilt" json:"flight_tilt" validate:"gte=0,lte=1"`
	// FadeDuration is how long a deactivated tool takes to fade back to spawn.
	FadeDuration time.Duration `yaml:"fade_duration" json:"fade_duration" validate:"gte=0"`
	// CollisionDistance is the proximity threshold used by this body's rule.
	CollisionDistance float64 `yaml:"collision_distance" json:"collision_distance" validate:"gte=0"`
}

// Validate checks all ranges and returns an error wrapping ErrInvalidConfig.
func (c BodyConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c BodyConfig) ropeParams() RopeParams {
	p := c.Rope
	p.Gravity = c.Gravity
	return p
}

func (c BodyConfig) flightParams() FlightParams {
	p := c.Flight
	p.Gravity = c.Gravity
	return p
}

// DefaultCowConfig is the tuning for a draggable, throwable cow.
func DefaultCowConfig() BodyConfig {
	return BodyConfig{
		Width:     96,
		Height:    72,
		Gravity:   0.6,
		Throwable: true,
		Rope: RopeParams{
			Length:           80,
			Damping:          0.98,
			RadialCorrection: 0.9,
			DragInertia:      0.25,
		},
		Flight: FlightParams{
			GravityMultiplier: 0.5,
			Friction:          0.98,
			SpinDecay:         0.95,
			Bounce:            0.55,
			SpinTransfer:      0.4,
			SettleSpeed:       0.6,
			MaxSpeed:          60,
			Margins:           Margins{Top: 40, Right: 48, Bottom: 36, Left: 48},
		},
		FlightScaleSpeed:  40,
		FlightScaleBoost:  0.25,
		FlightTilt:        0.35,
		CollisionDistance: 90,
	}
}

// DefaultToolConfig is the tuning for a pointer-driven tool such as the
// milking bucket or the feed bag.
func DefaultToolConfig() BodyConfig {
	return BodyConfig{
		Width:      56,
		Height:     56,
		Gravity:    0.8,
		Controlled: true,
		Rope: RopeParams{
			Length:           40,
			Damping:          0.95,
			RadialCorrection: 0.85,
			DragInertia:      0.3,
		},
		Flight: FlightParams{
			GravityMultiplier: 0.5,
			Friction:          0.97,
			SpinDecay:         0.9,
			Bounce:            0.5,
			SpinTransfer:      0.3,
			SettleSpeed:       0.5,
			MaxSpeed:          50,
		},
		FlightScaleSpeed:  30,
		FlightScaleBoost:  0.1,
		FlightTilt:        0.2,
		FadeDuration:      300 * time.Millisecond,
		CollisionDistance: 70,
	}
}

// DefaultItemConfig is the tuning for a crafting ingredient.
func DefaultItemConfig() BodyConfig {
	c := DefaultToolConfig()
	c.Width, c.Height = 40, 40
	c.Controlled = false
	c.Throwable = true
	c.Rope.Length = 30
	c.FadeDuration = 0
	c.CollisionDistance = 60
	return c
}
