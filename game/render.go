package game

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/pasture"
	"github.com/phanxgames/pasture/farm"
)

// Background is the pasture's clear color.
var Background = color.RGBA{R: 0x6a, G: 0xa8, B: 0x4f, A: 0xff}

var (
	cowColors = map[farm.Color]color.RGBA{
		farm.ColorWhite:   {R: 0xf4, G: 0xf1, B: 0xea, A: 0xff},
		farm.ColorBrown:   {R: 0x8b, G: 0x5a, B: 0x2b, A: 0xff},
		farm.ColorBlack:   {R: 0x2a, G: 0x2a, B: 0x2e, A: 0xff},
		farm.ColorSpotted: {R: 0xc9, G: 0xb8, B: 0xa4, A: 0xff},
		farm.ColorGolden:  {R: 0xe8, G: 0xb9, B: 0x3c, A: 0xff},
	}
	stationColor = color.RGBA{R: 0x9c, G: 0x6b, B: 0x3e, A: 0xff}
	bucketColor  = color.RGBA{R: 0x9f, G: 0xa8, B: 0xb3, A: 0xff}
	feedColor    = color.RGBA{R: 0xd9, G: 0xc2, B: 0x7a, A: 0xff}
	itemColor    = color.RGBA{R: 0xff, G: 0xfb, B: 0xe6, A: 0xff}
	ropeColor    = color.RGBA{R: 0x4b, G: 0x3a, B: 0x26, A: 0xff}
	fullColor    = color.RGBA{R: 0x3f, G: 0x8c, B: 0xe0, A: 0xff}
)

// pixel is a lazily created 1x1 white image scaled into every shape.
var pixel *ebiten.Image

func whitePixel() *ebiten.Image {
	if pixel == nil {
		pixel = ebiten.NewImage(1, 1)
		pixel.Fill(color.White)
	}
	return pixel
}

// Draw renders the farm with flat shapes and a text HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	st := g.cfg.Station
	fillRect(screen, pasture.Vec2{X: st.X + st.Width/2, Y: st.Y + st.Height/2}, st.Width, st.Height, 0, 1, stationColor)

	now := g.Now()
	pointer := g.Scene.Pointer()
	for _, b := range g.Scene.Bodies() {
		if b.Mode() == pasture.ModeHeld {
			anchor := pointer
			if p, ok := g.Scene.PointerPosition(0); ok && g.Scene.PointerDown(0) {
				anchor = p
			}
			drawLine(screen, anchor, b.Position(), 2, ropeColor)
		}
		w, h := b.Config.Width*b.Scale(), b.Config.Height*b.Scale()
		clr := g.bodyColor(b)
		fillRect(screen, b.Position(), w, h, b.Rotation(), b.Alpha(), clr)

		if c, ok := g.state.Cow(b.ID); ok {
			f := farm.AdvanceCow(c, now, g.reducer.Rules.ProductionDuration).Fullness
			bar := pasture.Vec2{X: b.Position().X, Y: b.Position().Y - h/2 - 8}
			fillRect(screen, bar, w, 4, 0, 0.4, ropeColor)
			if f > 0 {
				left := bar.X - w/2 + w*f/2
				fillRect(screen, pasture.Vec2{X: left, Y: bar.Y}, w*f, 4, 0, 1, fullColor)
			}
		}
	}

	ebitenutil.DebugPrintAt(screen, g.hud(), 8, 8)
}

func (g *Game) bodyColor(b *pasture.Body) color.RGBA {
	switch b.ID {
	case BucketID:
		return bucketColor
	case FeedBagID:
		return feedColor
	}
	if c, ok := g.state.Cow(b.ID); ok {
		return cowColors[c.Color]
	}
	return itemColor
}

func (g *Game) hud() string {
	s := g.state
	var sb strings.Builder
	fmt.Fprintf(&sb, "Level %d  XP %d\n", s.Level(), s.XP)
	fmt.Fprintf(&sb, "Station: %s", g.selected)
	if items := g.tray.Items(); len(items) > 0 {
		sb.WriteString(" [")
		for i, it := range items {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s x%d", it, g.tray.Count(it))
		}
		sb.WriteString("]")
	}
	sb.WriteString("\n")
	for _, it := range s.Inventory.Items() {
		fmt.Fprintf(&sb, "%s: %d\n", it, s.Inventory.Count(it))
	}
	now := g.Now()
	for _, e := range s.Queue {
		fmt.Fprintf(&sb, "crafting %s: %.0fs\n", e.RecipeID, e.Remaining(now).Seconds())
	}
	return sb.String()
}

// fillRect draws a w x h rectangle centered on c, rotated by deg degrees.
func fillRect(dst *ebiten.Image, c pasture.Vec2, w, h, deg, alpha float64, clr color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(deg * math.Pi / 180)
	op.GeoM.Translate(c.X, c.Y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(whitePixel(), op)
}

func drawLine(dst *ebiten.Image, a, b pasture.Vec2, width float64, clr color.Color) {
	d := b.Sub(a)
	length := d.Len()
	if length == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, width)
	op.GeoM.Translate(0, -width/2)
	op.GeoM.Rotate(math.Atan2(d.Y, d.X))
	op.GeoM.Translate(a.X, a.Y)
	op.ColorScale.ScaleWithColor(clr)
	dst.DrawImage(whitePixel(), op)
}
