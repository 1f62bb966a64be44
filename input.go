package pasture

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// EventType identifies a pointer or viewport event delivered to scene-level
// handlers.
type EventType uint8

const (
	EventPointerDown EventType = iota // a pointer was pressed
	EventPointerUp                    // a pointer was released
	EventPointerMove                  // a pointer moved, pressed or not
	EventResize                       // the viewport changed size
	EventTick                         // the tick driver advanced
)

// PointerContext is passed to pointer handlers.
type PointerContext struct {
	// Body is the body under the pointer on press, or the body captured by
	// this pointer afterwards. Nil if none.
	Body      *Body
	X, Y      float64
	PointerID int
	Button    MouseButton
}

// ResizeContext is passed to resize handlers.
type ResizeContext struct {
	Viewport Rect
}

// PointerSample is one pointer reading taken from an InputSource.
type PointerSample struct {
	ID      int
	X, Y    float64
	Pressed bool
	Button  MouseButton
}

// InputSource supplies raw pointer readings once per frame. Poll appends one
// sample per known pointer to buf and returns it.
type InputSource interface {
	Poll(buf []PointerSample) []PointerSample
}

// --- Per-pointer state ---

type pointerState struct {
	down   bool
	x, y   float64
	seen   bool
	button MouseButton // button captured at press time
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type resizeHandler struct {
	id uint32
	fn func(ResizeContext)
}

type tickHandler struct {
	id uint32
	fn func(Tick)
}

type handlerRegistry struct {
	pointerDown []pointerHandler
	pointerUp   []pointerHandler
	pointerMove []pointerHandler
	resize      []resizeHandler
	tick        []tickHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removePointerHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removePointerHandler(h.reg.pointerUp, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case EventResize:
		h.reg.resize = removeResizeHandler(h.reg.resize, h.id)
	case EventTick:
		h.reg.tick = removeTickHandler(h.reg.tick, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeResizeHandler(s []resizeHandler, id uint32) []resizeHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = resizeHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeTickHandler(s []tickHandler, id uint32) []tickHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = tickHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerDown = append(s.handlers.pointerDown, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerDown}
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerUp = append(s.handlers.pointerUp, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerUp}
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerMove = append(s.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerMove}
}

// OnResize registers a scene-level callback fired when SetViewport changes
// the viewport.
func (s *Scene) OnResize(fn func(ResizeContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.resize = append(s.handlers.resize, resizeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventResize}
}

// CapturePointer routes pointerID to body until the pointer is released.
func (s *Scene) CapturePointer(pointerID int, body *Body) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = body
	}
}

// ReleasePointer stops routing pointerID to a captured body.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// Pointer returns the latest sample from any pointer. Only the most recent
// reading is kept.
func (s *Scene) Pointer() Vec2 { return s.latest }

// PointerPosition returns the last known position of pointerID and whether
// that pointer has ever reported.
func (s *Scene) PointerPosition(pointerID int) (Vec2, bool) {
	if pointerID < 0 || pointerID >= maxPointers {
		return Vec2{}, false
	}
	ps := &s.pointers[pointerID]
	return Vec2{ps.x, ps.y}, ps.seen
}

// PointerDown reports whether pointerID is currently pressed.
func (s *Scene) PointerDown(pointerID int) bool {
	if pointerID < 0 || pointerID >= maxPointers {
		return false
	}
	return s.pointers[pointerID].down
}

// SetInputSource sets where real pointer input is read from. Nil disables
// real input; injected input still works.
func (s *Scene) SetInputSource(src InputSource) {
	s.input = src
}

// --- Hit testing ---

// hitTest finds the topmost pickable body at (x, y).
func (s *Scene) hitTest(x, y float64) *Body {
	id, ok := s.spatial.HitTest(x, y, func(id string) bool {
		b := s.bodyByID[id]
		return b != nil && !b.Config.Controlled && b.mode != ModeHeld
	})
	if !ok {
		return nil
	}
	return s.bodyByID[id]
}

// anchorFor returns the pointer position driving b: the pointer that
// captured it, or the latest pointer sample for an active tool.
func (s *Scene) anchorFor(b *Body) Vec2 {
	for i := range s.captured {
		if s.captured[i] == b {
			return Vec2{s.pointers[i].x, s.pointers[i].y}
		}
	}
	return s.latest
}

// --- Input processing ---

// processInput is called from Scene.Update. Injected events take priority
// over real input; one injected event is consumed per frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if s.input == nil {
		return
	}
	s.sampleBuf = s.input.Poll(s.sampleBuf[:0])
	for _, smp := range s.sampleBuf {
		if smp.ID < 0 || smp.ID >= maxPointers {
			continue
		}
		s.processPointer(smp.ID, smp.X, smp.Y, smp.Pressed, smp.Button)
	}
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, x, y float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointerID]
	moved := !ps.seen || x != ps.x || y != ps.y
	ps.seen = true
	if moved || pressed != ps.down {
		s.latest = Vec2{x, y}
	}

	if pressed && !ps.down {
		ps.down = true
		ps.button = button
		ps.x, ps.y = x, y

		target := s.captured[pointerID]
		if target == nil && button == MouseButtonLeft {
			target = s.hitTest(x, y)
			if target != nil && target.Pickup(Vec2{x, y}) {
				s.captured[pointerID] = target
			} else {
				target = nil
			}
		}
		s.firePointer(s.handlers.pointerDown, target, pointerID, x, y, ps.button)
	} else if !pressed && ps.down {
		ps.x, ps.y = x, y
		target := s.captured[pointerID]
		if target != nil {
			target.Release()
		}
		s.firePointer(s.handlers.pointerUp, target, pointerID, x, y, ps.button)

		// Auto-release capture.
		s.captured[pointerID] = nil
		ps.down = false
	} else if moved {
		ps.x, ps.y = x, y
		s.firePointer(s.handlers.pointerMove, s.captured[pointerID], pointerID, x, y, ps.button)
	}
}

// --- Event dispatch ---

func (s *Scene) firePointer(handlers []pointerHandler, body *Body, pointerID int, x, y float64, button MouseButton) {
	if len(handlers) == 0 {
		return
	}
	ctx := PointerContext{Body: body, X: x, Y: y, PointerID: pointerID, Button: button}
	for _, h := range handlers {
		h.fn(ctx)
	}
}

func (s *Scene) fireResize() {
	ctx := ResizeContext{Viewport: s.viewport}
	for _, h := range s.handlers.resize {
		h.fn(ctx)
	}
}

// --- Ebiten input ---

// EbitenInput reads the ebiten cursor and touch state. Touches are mapped to
// pointer slots 1-9 for as long as they last.
type EbitenInput struct {
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	touchLast    [maxPointers]Vec2
	prevTouchIDs []ebiten.TouchID
}

// NewEbitenInput returns an input source backed by ebiten.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// Poll implements InputSource.
func (in *EbitenInput) Poll(buf []PointerSample) []PointerSample {
	mx, my := ebiten.CursorPosition()
	smp := PointerSample{ID: 0, X: float64(mx), Y: float64(my)}
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		smp.Pressed, smp.Button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		smp.Pressed, smp.Button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		smp.Pressed, smp.Button = true, MouseButtonMiddle
	}
	buf = append(buf, smp)

	touchIDs := ebiten.AppendTouchIDs(in.prevTouchIDs[:0])
	in.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		in.touchLast[slot] = Vec2{float64(tx), float64(ty)}
		buf = append(buf, PointerSample{
			ID: slot, X: float64(tx), Y: float64(ty),
			Pressed: true, Button: MouseButtonLeft,
		})
	}

	// Touches that ended this frame report one final release.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !activeSlots[i] {
			last := in.touchLast[i]
			buf = append(buf, PointerSample{ID: i, X: last.X, Y: last.Y, Button: MouseButtonLeft})
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
	return buf
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *EbitenInput) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}
