package canvasview

// Touch IDs used by injected touch sequences.
const (
	injectTouchA = 1
	injectTouchB = 2
)

// InjectPress queues a left mouse press at the given screen coordinates.
// Queued events are fed to HandleInputEvent one per frame from Update.
func (c *Controller) InjectPress(x, y float64) {
	c.inject(InputEvent{Kind: InputMouseDown, X: x, Y: y, Button: MouseButtonLeft})
}

// InjectMove queues a mouse move. Use it between InjectPress and
// InjectRelease to simulate a drag.
func (c *Controller) InjectMove(x, y float64) {
	c.inject(InputEvent{Kind: InputMouseMove, X: x, Y: y, Button: MouseButtonLeft})
}

// InjectRelease queues a left mouse release.
func (c *Controller) InjectRelease(x, y float64) {
	c.inject(InputEvent{Kind: InputMouseUp, X: x, Y: y, Button: MouseButtonLeft})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (c *Controller) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 linearly
// interpolated moves, then a move and release at (toX, toY). Minimum frames
// is 3.
func (c *Controller) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event. Positive deltaY zooms out.
func (c *Controller) InjectWheel(x, y, deltaY float64) {
	c.inject(InputEvent{Kind: InputWheel, X: x, Y: y, DeltaY: deltaY})
}

// InjectPinch queues a horizontal two-finger pinch centered on (cx, cy):
// both fingers land fromDist apart, spread or close to toDist over frames-2
// moves, then lift one after the other. Minimum frames is 3.
func (c *Controller) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	pair := func(d float64) []TouchPoint {
		return []TouchPoint{
			{ID: injectTouchA, X: cx - d/2, Y: cy},
			{ID: injectTouchB, X: cx + d/2, Y: cy},
		}
	}
	c.inject(InputEvent{Kind: InputTouchStart, Touches: pair(fromDist), Changed: pair(fromDist)})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.inject(InputEvent{Kind: InputTouchMove, Touches: pair(fromDist + (toDist-fromDist)*t)})
	}
	end := pair(toDist)
	c.inject(InputEvent{Kind: InputTouchEnd, Touches: end[1:], Changed: end[:1]})
	c.inject(InputEvent{Kind: InputTouchEnd, Changed: end[1:]})
}

// InjectTouchCancel queues a touchcancel.
func (c *Controller) InjectTouchCancel() {
	c.inject(InputEvent{Kind: InputTouchCancel})
}

func (c *Controller) inject(ev InputEvent) {
	if c.disposed {
		return
	}
	c.injectQueue = append(c.injectQueue, ev)
}

// processInjectedInput pops one queued event and feeds it through the state
// machine. Returns true if an event was consumed.
func (c *Controller) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	ev := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue[len(c.injectQueue)-1] = InputEvent{}
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]
	c.HandleInputEvent(ev)
	return true
}

// PendingInjections returns the number of queued synthetic events.
func (c *Controller) PendingInjections() int {
	return len(c.injectQueue)
}
