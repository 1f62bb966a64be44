package pasture

import "math"

// Vec2 is a 2D vector used for positions and velocities in screen-pixel space.
// It is a value type; every operation returns a new vector.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Inset shrinks the rectangle by m on each side. A rectangle inset past
// its own size collapses to its center.
func (r Rect) Inset(m Margins) Rect {
	out := Rect{
		X:      r.X + m.Left,
		Y:      r.Y + m.Top,
		Width:  r.Width - m.Left - m.Right,
		Height: r.Height - m.Top - m.Bottom,
	}
	if out.Width < 0 {
		out.X += out.Width / 2
		out.Width = 0
	}
	if out.Height < 0 {
		out.Y += out.Height / 2
		out.Height = 0
	}
	return out
}

// RectAround returns a rectangle of the given size centered on c.
func RectAround(c Vec2, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// Margins are per-edge insets applied to the screen bounds before flight
// collision, so bodies bounce before their artwork leaves the screen.
type Margins struct {
	Top    float64 `yaml:"top" json:"top" validate:"gte=0"`
	Right  float64 `yaml:"right" json:"right" validate:"gte=0"`
	Bottom float64 `yaml:"bottom" json:"bottom" validate:"gte=0"`
	Left   float64 `yaml:"left" json:"left" validate:"gte=0"`
}

// BodyMode is the interaction state of a Body. Exactly one mode holds at a time.
type BodyMode uint8

const (
	ModeIdle   BodyMode = iota // resting at its position, not simulated
	ModeHeld                   // tethered to a pointer by the rope solver
	ModeFlying                 // released and moving under the flight solver
)

// String returns the lower-case mode name.
func (m BodyMode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeHeld:
		return "held"
	case ModeFlying:
		return "flying"
	default:
		return "invalid"
	}
}

// EventKind identifies a discrete interaction event.
type EventKind uint8

const (
	EventPickup  EventKind = iota // a body entered Held
	EventDrop                     // a body's episode ended
	EventCollide                  // a body came within range of a target
)

// String returns the lower-case event name.
func (k EventKind) String() string {
	switch k {
	case EventPickup:
		return "pickup"
	case EventDrop:
		return "drop"
	case EventCollide:
		return "collide"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func radToDeg(r float64) float64 { return r * 180 / math.Pi }
