package pasture

import "math"

// PhysicsBody is the simulated state of one interaction body. It is owned by
// exactly one Body and handed to the solvers by pointer.
type PhysicsBody struct {
	Position Vec2
	Velocity Vec2
	Spin     float64
}

// Speed returns the length of the velocity.
func (b *PhysicsBody) Speed() float64 { return b.Velocity.Len() }

// stop zeroes velocity and spin.
func (b *PhysicsBody) stop() {
	b.Velocity = Vec2{}
	b.Spin = 0
}

// StepRope advances b by one frame while it hangs from anchor on an
// inextensible rope. prevAnchor is the anchor of the previous frame; its
// displacement is fed back into the body so that flicking the pointer throws
// the body outward.
//
// After the step the body sits exactly p.Length away from the anchor, unless
// it landed exactly on the anchor, in which case the rescale is skipped.
func StepRope(b *PhysicsBody, anchor, prevAnchor Vec2, p RopeParams) {
	v := b.Velocity
	v.Y += p.Gravity
	v = v.Scale(p.Damping)

	pos := b.Position.Add(v)

	delta := pos.Sub(anchor)
	dist := delta.Len()
	if dist > 0 {
		dir := delta.Scale(1 / dist)
		pos = anchor.Add(dir.Scale(p.Length))

		// Keep only the swing: strip the part of the velocity along the rope.
		radial := v.Dot(dir)
		v = v.Sub(dir.Scale(radial * p.RadialCorrection))
	}

	v = v.Add(anchor.Sub(prevAnchor).Scale(p.DragInertia))

	if !v.IsFinite() {
		v = Vec2{}
	}
	if !pos.IsFinite() {
		pos = anchor
	}

	b.Position = pos
	b.Velocity = v
}

// ropeAngle returns the rotation in degrees that keeps the body's top
// pointed at the anchor: 0 when hanging straight down, negative when swung
// to the right of the anchor.
func ropeAngle(anchor, pos Vec2) float64 {
	d := pos.Sub(anchor)
	if d.X == 0 && d.Y == 0 {
		return 0
	}
	return -radToDeg(math.Atan2(d.X, d.Y))
}
