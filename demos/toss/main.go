// toss drags and throws crates on ropes. Throw a crate into the hay cart to
// score; every crate can score once per throw. Uses only the core package:
// bodies, proximity rules and the spatial registry, drawn as flat shapes.
package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/pasture"
)

const (
	screenW    = 1280
	screenH    = 720
	crateCount = 12

	// Flash animation
	flashFrames = 12
)

var (
	cart     = pasture.Rect{X: 980, Y: 560, Width: 220, Height: 110}
	cartClr  = color.RGBA{R: 0xc8, G: 0x9b, B: 0x3c, A: 0xff}
	ropeClr  = color.RGBA{R: 0x3b, G: 0x2b, B: 0x1a, A: 0xff}
	flashClr = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type crate struct {
	body       *pasture.Body
	clr        color.RGBA
	flashTimer int
}

func main() {
	scene := pasture.NewScene()
	scene.Spatial().Publish("cart", cart)

	crates := make([]*crate, crateCount)
	score := 0
	for i := range crates {
		cfg := pasture.DefaultItemConfig()
		size := 30 + rand.Float64()*30
		cfg.Width, cfg.Height = size, size
		cfg.Rope.Length = 40 + rand.Float64()*60
		cfg.Flight.Bounce = 0.3 + rand.Float64()*0.5

		rest := pasture.Vec2{
			X: 80 + rand.Float64()*700,
			Y: 120 + rand.Float64()*480,
		}
		c := &crate{
			body: pasture.NewBody(fmt.Sprintf("crate-%d", i), rest, cfg),
			clr: color.RGBA{
				R: uint8(80 + rand.IntN(175)),
				G: uint8(80 + rand.IntN(175)),
				B: uint8(80 + rand.IntN(175)),
				A: 0xff,
			},
		}
		c.body.Proximity = &pasture.ProximityRule{
			Threshold: cart.Width / 2,
			Targets:   func() []string { return []string{"cart"} },
			OnCollide: func(string, pasture.Vec2) {
				score++
				c.flashTimer = flashFrames
			},
		}
		if err := scene.AddBody(c.body); err != nil {
			log.Fatal(err)
		}
		crates[i] = c
	}

	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	rect := func(dst *ebiten.Image, c pasture.Vec2, w, h, deg, scale float64, clr color.Color) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(w*scale, h*scale)
		op.GeoM.Translate(-w*scale/2, -h*scale/2)
		op.GeoM.Rotate(deg * math.Pi / 180)
		op.GeoM.Translate(c.X, c.Y)
		op.ColorScale.ScaleWithColor(clr)
		dst.DrawImage(pixel, op)
	}

	if err := pasture.Run(scene, pasture.RunConfig{
		Title:      "Pasture Toss",
		Width:      screenW,
		Height:     screenH,
		Background: color.RGBA{R: 0x5d, G: 0x9c, B: 0x46, A: 0xff},
		Update: func() error {
			for _, c := range crates {
				if c.flashTimer > 0 {
					c.flashTimer--
				}
			}
			return nil
		},
		Draw: func(screen *ebiten.Image) {
			rect(screen, cart.Center(), cart.Width, cart.Height, 0, 1, cartClr)
			for _, c := range crates {
				b := c.body
				if b.Mode() == pasture.ModeHeld {
					a, p := scene.Pointer(), b.Position()
					d := p.Sub(a)
					mid := a.Add(d.Scale(0.5))
					rect(screen, mid, d.Len(), 2, math.Atan2(d.Y, d.X)*180/math.Pi, 1, ropeClr)
				}
				clr := c.clr
				if c.flashTimer > 0 {
					clr = flashClr
				}
				rect(screen, b.Position(), b.Config.Width, b.Config.Height, b.Rotation(), b.Scale(), clr)
			}
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", score), 8, 8)
		},
	}); err != nil {
		log.Fatal(err)
	}
}
