package pasture

// Synthetic input is how headless sessions (tests, scripts, the simulate
// command) drive a scene. Injected samples go into a FIFO on the scene; each
// Update pops at most one of them and feeds it through the same path as a
// real pointer sample, on pointer 0 with the left button. While the queue is
// non-empty the InputSource is not polled, so a scripted drag cannot be
// interleaved with a stray mouse move.

// injected is one queued pointer sample.
type injected struct {
	pos     Vec2
	pressed bool
}

func (s *Scene) inject(x, y float64, pressed bool) {
	s.injectQueue = append(s.injectQueue, injected{pos: Vec2{x, y}, pressed: pressed})
}

// InjectPress queues a press at (x, y). A press over a pickable body picks
// it up when the sample is processed.
func (s *Scene) InjectPress(x, y float64) { s.inject(x, y, true) }

// InjectMove queues a move with the button still down, dragging whatever the
// pointer holds.
func (s *Scene) InjectMove(x, y float64) { s.inject(x, y, true) }

// InjectHover queues a move with the button up. Active tools follow it.
func (s *Scene) InjectHover(x, y float64) { s.inject(x, y, false) }

// InjectRelease queues a release at (x, y).
func (s *Scene) InjectRelease(x, y float64) { s.inject(x, y, false) }

// InjectClick queues a press and a release at the same spot, one frame
// apart.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a press at the start, frames-2 evenly spaced moves and a
// release at the end: frames samples in all, never fewer than two.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	from, to := Vec2{fromX, fromY}, Vec2{toX, toY}
	s.InjectPress(from.X, from.Y)
	for i := 1; i < frames-1; i++ {
		p := from.Add(to.Sub(from).Scale(float64(i) / float64(frames-1)))
		s.InjectMove(p.X, p.Y)
	}
	s.InjectRelease(to.X, to.Y)
}

// PendingInjected returns how many injected samples are still queued.
func (s *Scene) PendingInjected() int { return len(s.injectQueue) }

// processInjectedInput feeds the oldest queued sample to pointer 0 and
// reports whether there was one.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	ev := s.injectQueue[0]
	s.injectQueue = s.injectQueue[1:]
	if len(s.injectQueue) == 0 {
		s.injectQueue = nil
	}
	s.processPointer(0, ev.pos.X, ev.pos.Y, ev.pressed, MouseButtonLeft)
	return true
}
