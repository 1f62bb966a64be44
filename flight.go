package pasture

// FlightResult reports what happened during one flight step.
type FlightResult struct {
	BouncedX bool // hit the left or right wall
	BouncedY bool // hit the ceiling or floor
	Settled  bool // speed fell under the settle threshold; the flight is over
}

// Bounced reports whether any wall was hit.
func (r FlightResult) Bounced() bool { return r.BouncedX || r.BouncedY }

// StepFlight advances a released body by one frame. bounds is the screen
// rectangle; it is shrunk by p.Margins and the body's position is always
// clamped into it before being stored, so stale bounds from before a resize
// can't leave the body outside the screen.
//
// A wall hit reflects the velocity component into the wall, scaled by
// p.Bounce, and turns the component along the wall into spin. A floor
// rebound slower than one frame of gravity is dropped, so a body on the
// floor slides until friction settles it instead of hopping in place.
func StepFlight(b *PhysicsBody, bounds Rect, p FlightParams) FlightResult {
	var res FlightResult
	area := bounds.Inset(p.Margins)
	minX, maxX := area.X, area.X+area.Width
	minY, maxY := area.Y, area.Y+area.Height

	v := b.Velocity
	if !v.IsFinite() {
		v = Vec2{}
	}
	g := p.Gravity * p.GravityMultiplier
	v.Y += g
	v = v.Scale(p.Friction)
	if s := v.Len(); p.MaxSpeed > 0 && s > p.MaxSpeed {
		v = v.Scale(p.MaxSpeed / s)
	}
	spin := b.Spin * p.SpinDecay

	start := b.Position
	if !start.IsFinite() {
		start = area.Center()
	}
	pos := start.Add(v)

	switch {
	case pos.X < minX:
		pos.X = minX
		spin += v.Y * p.SpinTransfer
		v.X = abs(v.X) * p.Bounce
		res.BouncedX = true
	case pos.X > maxX:
		pos.X = maxX
		spin -= v.Y * p.SpinTransfer
		v.X = -abs(v.X) * p.Bounce
		res.BouncedX = true
	}
	switch {
	case pos.Y > maxY:
		pos.Y = maxY
		spin += v.X * p.SpinTransfer
		v.Y = -abs(v.Y) * p.Bounce
		if -v.Y < g {
			v.Y = 0
		}
		res.BouncedY = true
	case pos.Y < minY:
		pos.Y = minY
		spin -= v.X * p.SpinTransfer
		v.Y = abs(v.Y) * p.Bounce
		res.BouncedY = true
	}

	b.Position = pos
	b.Velocity = v
	b.Spin = spin

	if v.Len() < p.SettleSpeed {
		b.stop()
		res.Settled = true
	}
	return res
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
