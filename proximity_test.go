package pasture

import "testing"

func TestSpatialRegistry(t *testing.T) {
	r := NewSpatialRegistry()
	r.Publish("a", Rect{X: 0, Y: 0, Width: 100, Height: 100})
	r.Publish("b", Rect{X: 50, Y: 50, Width: 100, Height: 100})

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
	if c, ok := r.Center("b"); !ok || c != (Vec2{100, 100}) {
		t.Errorf("Center(b) = %v, %v", c, ok)
	}

	// Overlap: the later entry is on top.
	if id, ok := r.HitTest(75, 75, nil); !ok || id != "b" {
		t.Errorf("HitTest = %q, %v, want b", id, ok)
	}
	if id, _ := r.HitTest(75, 75, func(id string) bool { return id != "b" }); id != "a" {
		t.Errorf("filtered HitTest = %q, want a", id)
	}
	if _, ok := r.HitTest(500, 500, nil); ok {
		t.Error("expected no hit outside every rect")
	}

	// Republishing keeps the order.
	r.Publish("a", Rect{X: 60, Y: 60, Width: 10, Height: 10})
	if id, _ := r.HitTest(65, 65, nil); id != "b" {
		t.Errorf("HitTest after republish = %q, want b", id)
	}

	r.Remove("b")
	r.Remove("missing")
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
	if _, ok := r.Bounds("b"); ok {
		t.Error("b should be gone")
	}
}

func TestDetectorFiresOncePerPair(t *testing.T) {
	r := NewSpatialRegistry()
	r.Publish("cow1", RectAround(Vec2{100, 100}, 20, 20))
	r.Publish("cow2", RectAround(Vec2{300, 100}, 20, 20))
	d := NewDetector(r)

	var hits []string
	fn := func(id string, _ Vec2) { hits = append(hits, id) }
	targets := []string{"cow1", "cow2"}

	if n := d.Check("bucket", Vec2{110, 100}, targets, 50, fn); n != 1 {
		t.Fatalf("first check = %d, want 1", n)
	}
	if n := d.Check("bucket", Vec2{100, 100}, targets, 50, fn); n != 0 {
		t.Errorf("repeat check = %d, want 0", n)
	}
	if n := d.Check("bucket", Vec2{290, 100}, targets, 50, fn); n != 1 {
		t.Errorf("second target = %d, want 1", n)
	}
	if len(hits) != 2 || hits[0] != "cow1" || hits[1] != "cow2" {
		t.Errorf("hits = %v", hits)
	}
	if !d.Collided("bucket", "cow1") {
		t.Error("expected bucket/cow1 to be marked")
	}

	d.Reset("bucket")
	if d.Collided("bucket", "cow1") {
		t.Error("reset should clear the pair")
	}
	if n := d.Check("bucket", Vec2{100, 100}, targets, 50, fn); n != 1 {
		t.Errorf("after reset = %d, want 1", n)
	}
}

func TestDetectorThresholdIsStrict(t *testing.T) {
	r := NewSpatialRegistry()
	r.Publish("t", RectAround(Vec2{0, 0}, 2, 2))
	d := NewDetector(r)

	if n := d.Check("s", Vec2{50, 0}, []string{"t"}, 50, nil); n != 0 {
		t.Error("distance equal to threshold must not hit")
	}
	if n := d.Check("s", Vec2{49.9, 0}, []string{"t"}, 50, nil); n != 1 {
		t.Error("distance under threshold must hit")
	}
}

func TestDetectorSkipsSelfAndMissing(t *testing.T) {
	r := NewSpatialRegistry()
	r.Publish("s", RectAround(Vec2{0, 0}, 2, 2))
	d := NewDetector(r)

	if n := d.Check("s", Vec2{}, []string{"s", "ghost"}, 50, nil); n != 0 {
		t.Fatalf("check = %d, want 0", n)
	}
	if d.Collided("s", "ghost") {
		t.Error("missing target must not be marked")
	}

	// Once the target publishes geometry it is eligible.
	r.Publish("ghost", RectAround(Vec2{10, 0}, 2, 2))
	if n := d.Check("s", Vec2{}, []string{"ghost"}, 50, nil); n != 1 {
		t.Errorf("check after publish = %d, want 1", n)
	}
}

func TestDetectorForget(t *testing.T) {
	r := NewSpatialRegistry()
	r.Publish("a", RectAround(Vec2{}, 2, 2))
	r.Publish("b", RectAround(Vec2{}, 2, 2))
	d := NewDetector(r)
	d.Check("a", Vec2{}, []string{"b"}, 10, nil)
	d.Check("b", Vec2{}, []string{"a"}, 10, nil)

	d.Forget("a")
	if d.Collided("a", "b") || d.Collided("b", "a") {
		t.Error("forget should drop a as source and as target")
	}
}
