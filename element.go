package canvasview

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is a custom hit area in an element's local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Element is a caller-owned piece of content placed inside the space. The
// controller owns its placement (X, Y) while it is registered; everything
// else belongs to the caller.
type Element struct {
	// X and Y are the world-space offset of the element's top-left corner.
	// Set them through Controller.Add and Controller.Move.
	X, Y float64
	// Width and Height give the element's extent in world units. An element
	// with no size and no HitShape is never hit.
	Width, Height float64

	// Interactive marks the element as a control (button, link). A pointer
	// going down on it is delivered as an immediate click and never starts
	// a pan.
	Interactive bool
	// Visible=false hides the element from drawing and hit testing.
	Visible bool
	// HitShape overrides the default Width x Height hit rectangle.
	HitShape HitShape

	// Image is the rendered content. Nil draws a solid Color rectangle.
	Image *ebiten.Image
	// Color fills a solid element and tints an Image. A zero Color leaves
	// an Image untinted.
	Color Color

	// OnClick fires when a click is synthesized on this element.
	OnClick func(ClickContext)

	// EntityID links the element to an ECS entity for EventSink bridging.
	EntityID uint32
	UserData any

	name    string
	mounted bool
}

// NewElement returns a visible element of the given size.
func NewElement(width, height float64) *Element {
	return &Element{
		Width:   width,
		Height:  height,
		Visible: true,
		Color:   ColorWhite,
	}
}

// Name returns the registry name, or "" when the element is not mounted.
func (e *Element) Name() string {
	return e.name
}

// Mounted reports whether the element is currently registered in a space.
func (e *Element) Mounted() bool {
	return e.mounted
}

// containsLocal tests whether a local point falls inside the hit region.
func (e *Element) containsLocal(lx, ly float64) bool {
	if e.HitShape != nil {
		return e.HitShape.Contains(lx, ly)
	}
	if e.Width <= 0 && e.Height <= 0 {
		return false
	}
	return lx >= 0 && lx <= e.Width && ly >= 0 && ly <= e.Height
}

// registry maps names to mounted elements and keeps painter order.
type registry struct {
	byName map[string]*Element
	order  []*Element
}

func newRegistry() registry {
	return registry{byName: make(map[string]*Element)}
}

// add mounts el under name at (x, y). An existing entry under name is
// replaced and unmounted.
func (r *registry) add(name string, el *Element, x, y float64) {
	if old, ok := r.byName[name]; ok {
		r.detach(old)
	}
	if el.mounted && r.byName[el.name] == el {
		r.detach(el)
	}
	el.name = name
	el.mounted = true
	el.X, el.Y = x, y
	r.byName[name] = el
	r.order = append(r.order, el)
}

func (r *registry) move(name string, x, y float64) bool {
	el, ok := r.byName[name]
	if !ok {
		return false
	}
	el.X, el.Y = x, y
	return true
}

func (r *registry) remove(name string) bool {
	el, ok := r.byName[name]
	if !ok {
		return false
	}
	r.detach(el)
	return true
}

// detach drops el from the map and the painter order.
func (r *registry) detach(el *Element) {
	delete(r.byName, el.name)
	for i, e := range r.order {
		if e == el {
			copy(r.order[i:], r.order[i+1:])
			r.order[len(r.order)-1] = nil
			r.order = r.order[:len(r.order)-1]
			break
		}
	}
	el.mounted = false
	el.name = ""
}

func (r *registry) clear() {
	for _, el := range r.order {
		el.mounted = false
		el.name = ""
	}
	r.order = r.order[:0]
	clear(r.byName)
}

// hitTest returns the topmost visible element containing the world point.
func (r *registry) hitTest(wx, wy float64) *Element {
	for i := len(r.order) - 1; i >= 0; i-- {
		el := r.order[i]
		if !el.Visible {
			continue
		}
		inv := invertAffine(translateAffine(el.X, el.Y))
		lx, ly := transformPoint(inv, wx, wy)
		if el.containsLocal(lx, ly) {
			return el
		}
	}
	return nil
}

// --- Mount API ---

// Add mounts el into the space under name at world position (x, y). The
// space's transform pans and zooms it with the canvas. Adding under a name
// already in use replaces the previous element (last write wins).
func (c *Controller) Add(name string, el *Element, x, y float64) {
	if el == nil {
		Logger().Warn("canvasview: Add with nil element", "name", name)
		return
	}
	if c.disposed {
		return
	}
	c.elements.add(name, el, x, y)
}

// Move repositions the named element without touching the global transform.
// Unknown names are ignored.
func (c *Controller) Move(name string, x, y float64) {
	c.elements.move(name, x, y)
}

// Remove unmounts the named element and drops it from the registry. Unknown
// names are ignored, so it is safe to call during teardown races.
func (c *Controller) Remove(name string) {
	c.elements.remove(name)
}

// Element returns the element registered under name, or nil.
func (c *Controller) Element(name string) *Element {
	return c.elements.byName[name]
}

// Len returns the number of mounted elements.
func (c *Controller) Len() int {
	return len(c.elements.order)
}

// Names returns the registered names in painter order.
func (c *Controller) Names() []string {
	names := make([]string, len(c.elements.order))
	for i, el := range c.elements.order {
		names[i] = el.name
	}
	return names
}

// ElementAt returns the topmost visible element under the screen point, or
// nil. This is the lookup the gesture machine uses on pointer down and release.
func (c *Controller) ElementAt(screenX, screenY float64) *Element {
	lx, ly := c.toLayer(screenX, screenY)
	wx, wy := c.view.logical().ScreenToWorld(lx, ly)
	return c.elements.hitTest(wx, wy)
}

// tint returns the color scale applied when drawing the element.
func (e *Element) tint() Color {
	if e.Image != nil && e.Color == (Color{}) {
		return ColorWhite
	}
	return e.Color
}
