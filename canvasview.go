package canvasview

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default element fill.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA for ebiten fills.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// GestureState is the phase of the gesture state machine. Exactly one is
// active at a time.
type GestureState uint8

const (
	GestureIdle     GestureState = iota // no pointer is tracked
	GestureArmed                        // pointer is down, movement below the drag threshold
	GestureDragging                     // single pointer pan in progress
	GesturePinching                     // two-finger pinch zoom in progress
)

func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "idle"
	case GestureArmed:
		return "armed"
	case GestureDragging:
		return "dragging"
	case GesturePinching:
		return "pinching"
	default:
		return "unknown"
	}
}

// InputKind identifies a raw input event fed to HandleInputEvent.
type InputKind uint8

const (
	InputMouseDown   InputKind = iota // mouse button pressed
	InputMouseMove                    // mouse moved
	InputMouseUp                      // mouse button released
	InputTouchStart                   // a finger touched down
	InputTouchMove                    // one or more fingers moved
	InputTouchEnd                     // a finger lifted
	InputTouchCancel                  // the platform aborted the touch sequence
	InputWheel                        // wheel scrolled
)

func (k InputKind) String() string {
	switch k {
	case InputMouseDown:
		return "mousedown"
	case InputMouseMove:
		return "mousemove"
	case InputMouseUp:
		return "mouseup"
	case InputTouchStart:
		return "touchstart"
	case InputTouchMove:
		return "touchmove"
	case InputTouchEnd:
		return "touchend"
	case InputTouchCancel:
		return "touchcancel"
	case InputWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button
)

// TouchPoint is one finger of a touch event in screen coordinates.
type TouchPoint struct {
	ID   int
	X, Y float64
}

// InputEvent is a raw pointer, touch, or wheel event in screen coordinates.
//
// For touch kinds, Touches lists the fingers still on the surface after the
// event and Changed lists the fingers this event is about (the lifted finger
// for InputTouchEnd). X and Y are used by mouse and wheel kinds.
type InputEvent struct {
	Kind    InputKind
	X, Y    float64
	Button  MouseButton
	DeltaY  float64 // wheel: positive scrolls down (zooms out)
	Touches []TouchPoint
	Changed []TouchPoint
}

// InputSource tells whether a gesture was started by mouse or touch.
type InputSource uint8

const (
	SourceMouse InputSource = iota
	SourceTouch
)

// EventType identifies a gesture event emitted by the controller.
type EventType uint8

const (
	EventClick      EventType = iota // synthesized click (pointer down or release)
	EventDragStart                   // movement crossed the drag threshold
	EventDrag                        // drag moved the canvas
	EventDragEnd                     // drag finished or was cancelled
	EventPinchStart                  // second finger joined
	EventPinch                       // pinch changed the transform
	EventPinchEnd                    // pinch session closed
	EventZoom                        // wheel zoom
	EventCancel                      // touchcancel tore the gesture down
)

// cursor shapes shown on the interaction layer.
const (
	cursorGrab     = ebiten.CursorShapeDefault
	cursorGrabbing = ebiten.CursorShapeMove
)
