package canvasview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig holds window options for Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Resizable lets the user resize the window; the layer bounds follow.
	Resizable bool
}

// Game adapts a Controller to ebiten.Game: it polls real input, drives the
// frame callback, applies the layer cursor and draws the space.
type Game struct {
	c       *Controller
	input   *EbitenInput
	showFPS bool
	cursor  ebiten.CursorShapeType
	// autoBounds is set when the controller had no bounds; Layout then keeps
	// the layer sized to the window.
	autoBounds bool

	fpsImage *ebiten.Image
	fpsAge   float64

	// OnUpdate runs after the controller's frame callback. Returning a non-nil
	// error stops the game loop.
	OnUpdate func() error
}

// NewGame wraps c for use with ebiten.RunGame.
func NewGame(c *Controller) *Game {
	return &Game{
		c:          c,
		input:      NewEbitenInput(),
		cursor:     -1,
		autoBounds: c.Bounds().Empty(),
	}
}

// ShowFPS toggles the FPS and TPS overlay.
func (g *Game) ShowFPS(on bool) {
	g.showFPS = on
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.input.Poll(g.c)
	g.c.Update()
	if cur := g.c.Cursor(); cur != g.cursor {
		ebiten.SetCursorShape(cur)
		g.cursor = cur
	}
	if g.showFPS {
		g.fpsAge += 1.0 / float64(ebiten.TPS())
	}
	if g.OnUpdate != nil {
		if err := g.OnUpdate(); err != nil {
			return err
		}
	}
	if r := g.c.testRunner; r != nil && r.Done() && len(g.c.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.c.Draw(screen)
	if g.showFPS {
		g.drawFPS(screen)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth, outsideHeight
	if mh := g.c.style.MinHeight; mh != nil && float64(h) < *mh {
		h = int(*mh)
	}
	if mw := g.c.style.MinWidth; mw != nil && float64(w) < *mw {
		w = int(*mw)
	}
	if g.autoBounds {
		g.c.SetBounds(Rect{Width: float64(w), Height: float64(h)})
	}
	return w, h
}

// drawFPS refreshes the overlay about twice a second.
func (g *Game) drawFPS(screen *ebiten.Image) {
	if g.fpsImage == nil {
		g.fpsImage = ebiten.NewImage(100, 32)
		g.fpsAge = 1
	}
	if g.fpsAge >= 0.5 {
		g.fpsAge = 0
		g.fpsImage.Clear()
		g.fpsImage.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(g.fpsImage, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(g.fpsImage, nil)
}

// Run opens a window and runs c until the window closes or an attached test
// runner finishes.
func Run(c *Controller, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	g := NewGame(c)
	g.ShowFPS(cfg.ShowFPS)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("canvasview: run: %w", err)
	}
	return nil
}
