package pasture

// SpatialRegistry maps string identifiers to on-screen rectangles. The scene
// publishes every body's bounds into it after the body is stepped, and games
// publish static targets (a crafting station, a trough) once. Proximity
// checks and pointer hit tests read from it instead of from rendered layout.
//
// Entries keep their registration order; a later entry is considered on top
// of an earlier one.
type SpatialRegistry struct {
	rects map[string]Rect
	order []string
}

// NewSpatialRegistry returns an empty registry.
func NewSpatialRegistry() *SpatialRegistry {
	return &SpatialRegistry{rects: make(map[string]Rect)}
}

// Publish sets the rectangle for id, registering it if new.
func (r *SpatialRegistry) Publish(id string, rect Rect) {
	if _, ok := r.rects[id]; !ok {
		r.order = append(r.order, id)
	}
	r.rects[id] = rect
}

// Remove drops id from the registry. Unknown ids are ignored.
func (r *SpatialRegistry) Remove(id string) {
	if _, ok := r.rects[id]; !ok {
		return
	}
	delete(r.rects, id)
	for i, v := range r.order {
		if v == id {
			copy(r.order[i:], r.order[i+1:])
			r.order[len(r.order)-1] = ""
			r.order = r.order[:len(r.order)-1]
			return
		}
	}
}

// Bounds returns the rectangle published for id.
func (r *SpatialRegistry) Bounds(id string) (Rect, bool) {
	rect, ok := r.rects[id]
	return rect, ok
}

// Center returns the center of the rectangle published for id.
func (r *SpatialRegistry) Center(id string) (Vec2, bool) {
	rect, ok := r.rects[id]
	if !ok {
		return Vec2{}, false
	}
	return rect.Center(), true
}

// Len returns the number of registered entries.
func (r *SpatialRegistry) Len() int { return len(r.order) }

// HitTest returns the topmost id whose rectangle contains (x, y) and for
// which accept returns true. A nil accept accepts everything.
func (r *SpatialRegistry) HitTest(x, y float64, accept func(id string) bool) (string, bool) {
	for i := len(r.order) - 1; i >= 0; i-- {
		id := r.order[i]
		if !r.rects[id].Contains(x, y) {
			continue
		}
		if accept == nil || accept(id) {
			return id, true
		}
	}
	return "", false
}
