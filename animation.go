package pasture

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Body simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenAlpha)
// and call Update(dt) each frame. If the target body is removed from its
// scene, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Body
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target body has been removed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.removed {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that moves the body's position to
// (toX, toY) over the duration using the easing function.
func TweenPosition(b *Body, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: b}
	g.tweens[0] = gween.New(float32(b.Phys.Position.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(b.Phys.Position.Y), float32(toY), duration, fn)
	g.fields[0] = &b.Phys.Position.X
	g.fields[1] = &b.Phys.Position.Y
	return g
}

// TweenAlpha creates a TweenGroup that animates the body's alpha to the
// target value over the duration using the easing function.
func TweenAlpha(b *Body, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: b}
	g.tweens[0] = gween.New(float32(b.alpha), float32(to), duration, fn)
	g.fields[0] = &b.alpha
	return g
}

// TweenScale creates a TweenGroup that animates the body's base scale.
func TweenScale(b *Body, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: b}
	g.tweens[0] = gween.New(float32(b.baseScale), float32(to), duration, fn)
	g.fields[0] = &b.baseScale
	return g
}
