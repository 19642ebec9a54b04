package canvasview

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// inputSnapshot is the raw device state sampled once per frame.
type inputSnapshot struct {
	cursorX, cursorY float64
	left             bool
	wheelY           float64 // ebiten convention: positive scrolls up
	touches          []TouchPoint
}

// EbitenInput samples Ebitengine's polled mouse, wheel and touch state every
// frame and turns the frame-to-frame differences into InputEvents.
type EbitenInput struct {
	prev     inputSnapshot
	touchIDs []ebiten.TouchID
}

// NewEbitenInput creates an input adapter.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// Poll samples the devices and feeds the resulting events to c in order.
func (in *EbitenInput) Poll(c *Controller) {
	cur := in.sample()
	for _, ev := range diffInput(in.prev, cur) {
		c.HandleInputEvent(ev)
	}
	in.prev = cur
}

func (in *EbitenInput) sample() inputSnapshot {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	snap := inputSnapshot{
		cursorX: float64(mx),
		cursorY: float64(my),
		left:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		wheelY:  wy,
	}
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	for _, id := range in.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		snap.touches = append(snap.touches, TouchPoint{ID: int(id), X: float64(tx), Y: float64(ty)})
	}
	return snap
}

// diffInput derives the events between two snapshots. Mouse events come
// first, then wheel, then touches as moves, lifts and landings in that order.
// Fingers are delivered one event at a time so touch counts change by one.
func diffInput(prev, cur inputSnapshot) []InputEvent {
	var out []InputEvent

	moved := cur.cursorX != prev.cursorX || cur.cursorY != prev.cursorY
	pressed := cur.left && !prev.left
	released := !cur.left && prev.left
	if moved && !pressed {
		out = append(out, InputEvent{Kind: InputMouseMove, X: cur.cursorX, Y: cur.cursorY})
	}
	if pressed {
		out = append(out, InputEvent{Kind: InputMouseDown, X: cur.cursorX, Y: cur.cursorY, Button: MouseButtonLeft})
	}
	if released {
		out = append(out, InputEvent{Kind: InputMouseUp, X: cur.cursorX, Y: cur.cursorY, Button: MouseButtonLeft})
	}

	if cur.wheelY != 0 {
		out = append(out, InputEvent{Kind: InputWheel, X: cur.cursorX, Y: cur.cursorY, DeltaY: -cur.wheelY})
	}

	prevByID := make(map[int]TouchPoint, len(prev.touches))
	for _, t := range prev.touches {
		prevByID[t.ID] = t
	}
	curByID := make(map[int]bool, len(cur.touches))
	var kept, started []TouchPoint
	touchMoved := false
	for _, t := range cur.touches {
		curByID[t.ID] = true
		p, ok := prevByID[t.ID]
		if !ok {
			started = append(started, t)
			continue
		}
		kept = append(kept, t)
		if p.X != t.X || p.Y != t.Y {
			touchMoved = true
		}
	}
	var ended []TouchPoint
	for _, t := range prev.touches {
		if !curByID[t.ID] {
			ended = append(ended, t)
		}
	}

	if touchMoved {
		out = append(out, InputEvent{Kind: InputTouchMove, Touches: cloneTouches(kept)})
	}
	live := append(cloneTouches(kept), ended...)
	for _, e := range ended {
		live = removeTouch(live, e.ID)
		out = append(out, InputEvent{Kind: InputTouchEnd, Touches: cloneTouches(live), Changed: []TouchPoint{e}})
	}
	if len(live) == 0 && len(started) >= 2 {
		// Fingers landing together open a pinch in one event rather than
		// arming a single-pointer gesture on the first of them.
		out = append(out, InputEvent{Kind: InputTouchStart, Touches: cloneTouches(started), Changed: cloneTouches(started)})
		return out
	}
	for _, s := range started {
		live = append(live, s)
		out = append(out, InputEvent{Kind: InputTouchStart, Touches: cloneTouches(live), Changed: []TouchPoint{s}})
	}
	return out
}

func cloneTouches(ts []TouchPoint) []TouchPoint {
	if len(ts) == 0 {
		return nil
	}
	return append([]TouchPoint(nil), ts...)
}

func removeTouch(ts []TouchPoint, id int) []TouchPoint {
	for i, t := range ts {
		if t.ID == id {
			return append(ts[:i], ts[i+1:]...)
		}
	}
	return ts
}
