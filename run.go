package pasture

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Background fills the screen before Draw. Nil leaves it untouched.
	Background color.Color
	// Draw renders the scene. The core has no renderer of its own; bodies
	// expose Position, Rotation, Scale and Alpha for the caller to draw.
	Draw func(screen *ebiten.Image)
	// Update, if set, runs after Scene.Update each frame. A non-nil error
	// stops the game.
	Update func() error
}

// Run opens a window and drives scene from ebiten's game loop. Real pointer
// input is read through EbitenInput unless the scene already has an input
// source, and the viewport follows the window size.
func Run(scene *Scene, cfg RunConfig) error {
	if scene.input == nil {
		scene.SetInputSource(NewEbitenInput())
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		scene.SetViewport(Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)})
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(&gameShell{scene: scene, cfg: cfg})
}

// gameShell adapts a Scene to ebiten.Game.
type gameShell struct {
	scene *Scene
	cfg   RunConfig
}

func (g *gameShell) Update() error {
	g.scene.Update()
	if g.cfg.Update != nil {
		return g.cfg.Update()
	}
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	if g.cfg.Background != nil {
		screen.Fill(g.cfg.Background)
	}
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
}

func (g *gameShell) Layout(w, h int) (int, int) {
	g.scene.SetViewport(Rect{Width: float64(w), Height: float64(h)})
	return w, h
}
