package canvasview

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// layerState is the interaction layer stacked above the space: it receives
// input, shows the grab cursor and is switched out of hit testing while the
// controller hit tests the elements beneath it.
type layerState struct {
	hitTesting bool
	cursor     ebiten.CursorShapeType
}

// Style is a partial style update for the root container. Nil fields are
// left unchanged by Controller.Style.
type Style struct {
	Background *Color
	MinWidth   *float64
	MinHeight  *float64
}

// Controller is the viewport interaction controller: it owns the space
// transform, the element registry and the gesture state machine. It is not
// safe for concurrent use; drive it from the game loop goroutine.
type Controller struct {
	cfg      Config
	view     *viewport
	elements registry

	gesture   gestureTracker
	listeners listenerSet
	layer     layerState

	bounds Rect
	style  Style

	handlers    handlerRegistry
	sink        EventSink
	dispatching bool
	disposed    bool
	debug       bool

	injectQueue     []InputEvent
	testRunner      *TestRunner
	screenshotQueue []string

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	whitePixel *ebiten.Image
}

// NewController creates a controller. Invalid config fields fall back to
// their defaults with a logged warning.
func NewController(cfg Config) *Controller {
	cfg = cfg.normalized()
	bg := Color{}
	minH := 500.0
	return &Controller{
		cfg:           cfg,
		view:          newViewport(cfg),
		elements:      newRegistry(),
		layer:         layerState{hitTesting: true, cursor: cursorGrab},
		style:         Style{Background: &bg, MinHeight: &minH},
		ScreenshotDir: "screenshots",
	}
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Transform returns the committed transform.
func (c *Controller) Transform() ViewportTransform {
	return c.view.t
}

// VisualTransform returns the transform Draw renders this frame. It trails
// Transform by at most one frame, plus the transition when one is running.
func (c *Controller) VisualTransform() ViewportTransform {
	return c.view.visual
}

// Scale returns the committed zoom factor.
func (c *Controller) Scale() float64 {
	return c.view.t.Scale
}

// TransformWrites returns how many frame commits have written the transform.
func (c *Controller) TransformWrites() int {
	return c.view.writes
}

// State returns the current gesture state.
func (c *Controller) State() GestureState {
	return c.gesture.state
}

// ListenerCount returns the number of gesture listeners currently attached.
// It is zero whenever no gesture is in flight.
func (c *Controller) ListenerCount() int {
	return c.listeners.count()
}

// Cursor returns the cursor the interaction layer shows.
func (c *Controller) Cursor() ebiten.CursorShapeType {
	return c.layer.cursor
}

// HitTesting reports whether the interaction layer currently accepts input.
func (c *Controller) HitTesting() bool {
	return c.layer.hitTesting
}

// ScreenToWorld converts a screen point to world coordinates using the
// committed transform.
func (c *Controller) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	lx, ly := c.toLayer(sx, sy)
	return c.view.logical().ScreenToWorld(lx, ly)
}

// WorldToScreen converts a world point to screen coordinates using the
// committed transform.
func (c *Controller) WorldToScreen(wx, wy float64) (sx, sy float64) {
	lx, ly := c.view.logical().WorldToScreen(wx, wy)
	return lx + c.bounds.X, ly + c.bounds.Y
}

// ZoomAt rescales to scale about a screen anchor, keeping the world point
// under the anchor fixed.
func (c *Controller) ZoomAt(screenX, screenY, scale float64) {
	lx, ly := c.toLayer(screenX, screenY)
	c.view.zoomAt(lx, ly, scale, SourceMouse)
}

// PanBy pans by a screen-space delta through the sub-pixel accumulator.
func (c *Controller) PanBy(dx, dy float64) {
	c.view.pan(dx, dy, SourceMouse)
}

// SetTransform replaces the transform. The scale is clamped and quantized.
func (c *Controller) SetTransform(t ViewportTransform) {
	c.view.set(t, SourceMouse)
}

// Reset restores the identity transform.
func (c *Controller) Reset() {
	c.view.set(identityView, SourceMouse)
}

// SetBounds sets the screen rectangle of the interaction layer. Input
// coordinates are screen coordinates; the transform works in coordinates
// relative to the layer's top-left corner. An empty rectangle accepts input
// anywhere.
func (c *Controller) SetBounds(r Rect) {
	c.bounds = r
}

// Bounds returns the layer rectangle.
func (c *Controller) Bounds() Rect {
	return c.bounds
}

// Style merges the non-nil fields of s into the root container style.
func (c *Controller) Style(s Style) {
	if s.Background != nil {
		bg := *s.Background
		c.style.Background = &bg
	}
	if s.MinWidth != nil {
		w := *s.MinWidth
		c.style.MinWidth = &w
	}
	if s.MinHeight != nil {
		h := *s.MinHeight
		c.style.MinHeight = &h
	}
}

// CurrentStyle returns a copy of the root container style.
func (c *Controller) CurrentStyle() Style {
	return c.style
}

// SetDebugMode enables per-frame commit logging at debug level.
func (c *Controller) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// Update is the frame callback: it advances the test runner, feeds one
// injected event, and commits the transform at most once.
func (c *Controller) Update() {
	c.frame(float32(1.0 / float64(ebiten.TPS())))
}

func (c *Controller) frame(dt float32) {
	if c.disposed {
		return
	}
	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	c.processInjectedInput()

	writes := c.view.writes
	c.view.commit(dt)
	if c.debug && c.view.writes != writes {
		t := c.view.t
		Logger().Debug("canvasview: transform committed",
			"tx", t.TranslateX, "ty", t.TranslateY, "scale", t.Scale,
			"writes", c.view.writes, "state", c.gesture.state)
	}
}

// Dispose tears down any gesture in flight, unmounts every element and drops
// all callbacks. The controller ignores input afterwards.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.teardown()
	c.elements.clear()
	c.handlers = handlerRegistry{}
	c.sink = nil
	c.injectQueue = nil
	c.testRunner = nil
	c.disposed = true
}

// Disposed reports whether Dispose has been called.
func (c *Controller) Disposed() bool {
	return c.disposed
}

// toLayer converts screen coordinates to layer coordinates.
func (c *Controller) toLayer(sx, sy float64) (float64, float64) {
	return sx - c.bounds.X, sy - c.bounds.Y
}

// inLayer reports whether a screen point falls on the interaction layer.
func (c *Controller) inLayer(sx, sy float64) bool {
	if c.bounds.Empty() {
		return true
	}
	return c.bounds.Contains(sx, sy)
}
