package pasture

// ProximityRule configures which targets a body checks and what happens when
// it gets close to one. Each body carries its own rule: the bucket only looks
// at full cows and the feed bag only at hungry ones.
type ProximityRule struct {
	// Threshold is the center-to-center distance under which a target
	// counts as hit. Zero means use the body's CollisionDistance.
	Threshold float64
	// Targets returns the ids to check this frame. It is called every step,
	// so the list can follow game state.
	Targets func() []string
	// OnCollide is called at most once per target per episode.
	OnCollide func(targetID string, pos Vec2)
}

// Detector tracks which targets each source has already hit during its
// current episode.
type Detector struct {
	spatial  *SpatialRegistry
	collided map[string]map[string]struct{}
}

// NewDetector returns a detector that resolves target centers through
// spatial.
func NewDetector(spatial *SpatialRegistry) *Detector {
	return &Detector{
		spatial:  spatial,
		collided: make(map[string]map[string]struct{}),
	}
}

// Check compares pos against the current center of each target. Targets
// already hit by source this episode are skipped, as are targets with no
// published geometry (they are retried on the next call). For every target
// closer than threshold, the pair is marked and fn is called with the
// target id and pos. Check returns the number of new collisions.
func (d *Detector) Check(source string, pos Vec2, targets []string, threshold float64, fn func(targetID string, pos Vec2)) int {
	if len(targets) == 0 || threshold <= 0 {
		return 0
	}
	seen := d.collided[source]
	n := 0
	for _, id := range targets {
		if id == source {
			continue
		}
		if _, hit := seen[id]; hit {
			continue
		}
		c, ok := d.spatial.Center(id)
		if !ok {
			continue
		}
		if pos.Dist(c) >= threshold {
			continue
		}
		if seen == nil {
			seen = make(map[string]struct{})
			d.collided[source] = seen
		}
		seen[id] = struct{}{}
		n++
		if fn != nil {
			fn(id, pos)
		}
	}
	return n
}

// Collided reports whether source has hit target this episode.
func (d *Detector) Collided(source, target string) bool {
	_, ok := d.collided[source][target]
	return ok
}

// Reset clears the collided set of source, making every target eligible
// again.
func (d *Detector) Reset(source string) {
	delete(d.collided, source)
}

// Forget removes id both as a source and as a target of every source.
func (d *Detector) Forget(id string) {
	delete(d.collided, id)
	for _, set := range d.collided {
		delete(set, id)
	}
}
