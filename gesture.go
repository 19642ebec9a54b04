package canvasview

import "math"

// pinchSession is the reference frame of a pinch, captured when the second
// finger arrives. Every pinch update is solved against it rather than the
// previous frame.
type pinchSession struct {
	initialDistance float64
	initialScale    float64
	initial         ViewportTransform
	centerX         float64 // layer coordinates
	centerY         float64
}

// gestureTracker is the state of the gesture in flight.
type gestureTracker struct {
	state  GestureState
	source InputSource

	// down point in layer coordinates and in screen coordinates.
	downX, downY   float64
	startX, startY float64
	lastX, lastY   float64

	// anchor is the world point under the down point when dragging began.
	anchorX, anchorY float64

	// moved is set once the gesture reached Dragging or Pinching; it
	// suppresses the release click for the rest of the gesture.
	moved bool

	pinch pinchSession
}

// HandleInputEvent feeds one raw input event through the gesture state
// machine and reports whether the controller consumed it. Hosts must suppress
// the platform default action (page or window scrolling) for consumed wheel
// events.
//
// Events arriving while the controller is dispatching a callback are dropped,
// so a synthesized click can never be taken for a new pointer down.
func (c *Controller) HandleInputEvent(ev InputEvent) bool {
	if c.disposed {
		return false
	}
	if c.dispatching {
		Logger().Debug("canvasview: dropped re-entrant input", "kind", ev.Kind)
		return false
	}
	switch ev.Kind {
	case InputMouseDown:
		return c.handleMouseDown(ev)
	case InputMouseMove:
		if !c.listeners.has(listenMouseMove) {
			return false
		}
		if !finite(ev.X) || !finite(ev.Y) {
			Logger().Debug("canvasview: mouse move without coordinates", "x", ev.X, "y", ev.Y)
			return true
		}
		c.trackMove(ev.X, ev.Y)
		return true
	case InputMouseUp:
		if !c.listeners.has(listenMouseUp) || ev.Button != MouseButtonLeft {
			return false
		}
		c.release(SourceMouse, ev.X, ev.Y, true)
		return true
	case InputTouchStart:
		return c.handleTouchStart(ev)
	case InputTouchMove:
		return c.handleTouchMove(ev)
	case InputTouchEnd:
		return c.handleTouchEnd(ev)
	case InputTouchCancel:
		if !c.listeners.has(listenTouchCancel) {
			return false
		}
		c.cancelGesture()
		return true
	case InputWheel:
		return c.handleWheel(ev)
	}
	return false
}

func (c *Controller) handleMouseDown(ev InputEvent) bool {
	if ev.Button != MouseButtonLeft || !c.layer.hitTesting || !c.inLayer(ev.X, ev.Y) {
		return false
	}
	c.beginSingle(SourceMouse, ev.X, ev.Y)
	return true
}

func (c *Controller) handleTouchStart(ev InputEvent) bool {
	if !c.layer.hitTesting {
		return false
	}
	switch n := len(ev.Touches); {
	case n == 0:
		Logger().Warn("canvasview: touchstart without touches")
		return false
	case n >= 2:
		if c.gesture.state != GesturePinching {
			c.startPinch(ev.Touches[0], ev.Touches[1])
		}
		return true
	default:
		t := ev.Touches[0]
		if !c.inLayer(t.X, t.Y) {
			return false
		}
		c.beginSingle(SourceTouch, t.X, t.Y)
		return true
	}
}

func (c *Controller) handleTouchMove(ev InputEvent) bool {
	if !c.listeners.has(listenTouchMove) {
		return false
	}
	switch n := len(ev.Touches); {
	case n == 0:
		Logger().Debug("canvasview: touchmove without touches")
	case c.gesture.state == GesturePinching:
		if n >= 2 {
			c.updatePinch(ev.Touches[0], ev.Touches[1])
		}
	case n >= 2:
		// The second touchstart was missed; promote now.
		c.startPinch(ev.Touches[0], ev.Touches[1])
	default:
		c.trackMove(ev.Touches[0].X, ev.Touches[0].Y)
	}
	return true
}

func (c *Controller) handleTouchEnd(ev InputEvent) bool {
	if !c.listeners.has(listenTouchEnd) {
		return false
	}
	remaining := len(ev.Touches)
	g := &c.gesture
	switch g.state {
	case GesturePinching:
		if remaining >= 2 {
			return true
		}
		c.firePinch(EventPinchEnd, c.pinchContext(g.pinch.centerX, g.pinch.centerY, g.pinch.initialDistance))
		if remaining == 1 {
			// Continuation: re-arm from the remaining finger without
			// probing for controls under it.
			t := ev.Touches[0]
			c.armAt(SourceTouch, t.X, t.Y)
			c.layer.cursor = cursorGrab
			return true
		}
		c.teardown()
	case GestureArmed, GestureDragging:
		if remaining > 0 {
			return true
		}
		if len(ev.Changed) == 0 {
			c.release(SourceTouch, math.NaN(), math.NaN(), false)
			return true
		}
		t := ev.Changed[0]
		c.release(SourceTouch, t.X, t.Y, true)
	default:
		c.teardown()
	}
	return true
}

func (c *Controller) handleWheel(ev InputEvent) bool {
	if !c.layer.hitTesting || !c.inLayer(ev.X, ev.Y) {
		return false
	}
	if ev.DeltaY == 0 {
		return true
	}
	factor := c.cfg.ZoomValue
	if ev.DeltaY < 0 {
		factor = 1 / c.cfg.ZoomValue
	}
	lx, ly := c.toLayer(ev.X, ev.Y)
	prev := c.view.t.Scale
	if c.view.zoomAt(lx, ly, prev*factor, SourceMouse) {
		c.fireZoom(ZoomContext{AnchorX: ev.X, AnchorY: ev.Y, PrevScale: prev, Scale: c.view.t.Scale})
	}
	return true
}

// beginSingle handles the first contact of a single-pointer gesture. A
// contact on an Interactive element is delivered as an immediate click and
// the gesture is not armed.
func (c *Controller) beginSingle(src InputSource, sx, sy float64) {
	if c.gesture.state != GestureIdle {
		c.abortGesture()
	}
	if el := c.pick(sx, sy); el != nil && el.Interactive {
		c.fireClick(el, sx, sy, src, true)
		return
	}
	c.gesture.moved = false
	c.armAt(src, sx, sy)
	c.listeners.attach(listenersFor(src))
}

// armAt records the down point and enters Armed.
func (c *Controller) armAt(src InputSource, sx, sy float64) {
	g := &c.gesture
	g.state = GestureArmed
	g.source = src
	g.downX, g.downY = c.toLayer(sx, sy)
	g.startX, g.startY = sx, sy
	g.lastX, g.lastY = sx, sy
}

// trackMove handles a single-pointer move in Armed or Dragging.
func (c *Controller) trackMove(sx, sy float64) {
	g := &c.gesture
	switch g.state {
	case GestureArmed:
		lx, ly := c.toLayer(sx, sy)
		if math.Hypot(lx-g.downX, ly-g.downY) < c.cfg.DragThreshold {
			return
		}
		g.state = GestureDragging
		g.moved = true
		g.anchorX, g.anchorY = c.view.logical().ScreenToWorld(g.downX, g.downY)
		c.layer.cursor = cursorGrabbing
		c.fireDrag(EventDragStart, DragContext{
			ScreenX: sx, ScreenY: sy,
			StartX: g.startX, StartY: g.startY,
			Source: g.source,
		})
		// Replay the promoting move so it takes effect immediately.
		c.dragTo(sx, sy)
	case GestureDragging:
		c.dragTo(sx, sy)
	}
}

// dragTo pans so the drag anchor sits under the pointer.
func (c *Controller) dragTo(sx, sy float64) {
	g := &c.gesture
	lx, ly := c.toLayer(sx, sy)
	cur := c.view.logical()
	dx := lx - g.anchorX*cur.Scale - cur.TranslateX
	dy := ly - g.anchorY*cur.Scale - cur.TranslateY
	g.lastX, g.lastY = sx, sy
	if dx == 0 && dy == 0 {
		return
	}
	c.view.pan(dx, dy, g.source)
	c.fireDrag(EventDrag, DragContext{
		ScreenX: sx, ScreenY: sy,
		StartX: g.startX, StartY: g.startY,
		DeltaX: dx, DeltaY: dy,
		Source: g.source,
	})
}

// startPinch forces the gesture into Pinching, cancelling any single-pointer
// tracking, and opens a session at the midpoint of the two touches.
func (c *Controller) startPinch(t0, t1 TouchPoint) {
	g := &c.gesture
	if g.state == GestureDragging {
		c.fireDrag(EventDragEnd, c.dragEndContext())
	}
	c.listeners.detachAll()

	x0, y0 := c.toLayer(t0.X, t0.Y)
	x1, y1 := c.toLayer(t1.X, t1.Y)
	ref := c.view.logical()
	g.state = GesturePinching
	g.source = SourceTouch
	g.moved = true
	g.pinch = pinchSession{
		initialDistance: math.Hypot(x1-x0, y1-y0),
		initialScale:    ref.Scale,
		initial:         ref,
		centerX:         (x0 + x1) / 2,
		centerY:         (y0 + y1) / 2,
	}
	if g.pinch.initialDistance == 0 {
		Logger().Debug("canvasview: pinch started with coincident touches")
	}
	c.listeners.attach(touchListeners)
	c.layer.cursor = cursorGrabbing
	c.firePinch(EventPinchStart, c.pinchContext(g.pinch.centerX, g.pinch.centerY, g.pinch.initialDistance))
}

// updatePinch solves the transform from the session snapshot.
func (c *Controller) updatePinch(t0, t1 TouchPoint) {
	s := &c.gesture.pinch
	if s.initialDistance <= 0 {
		return
	}
	x0, y0 := c.toLayer(t0.X, t0.Y)
	x1, y1 := c.toLayer(t1.X, t1.Y)
	dist := math.Hypot(x1-x0, y1-y0)
	px, py := s.centerX, s.centerY
	if c.cfg.PinchPan {
		px, py = (x0+x1)/2, (y0+y1)/2
	}
	target := s.initialScale * dist / s.initialDistance
	if c.view.zoomFrom(s.initial, s.centerX, s.centerY, px, py, target, SourceTouch) {
		c.firePinch(EventPinch, c.pinchContext(px, py, dist))
	}
}

func (c *Controller) pinchContext(lx, ly, dist float64) PinchContext {
	return PinchContext{
		CenterX:      lx + c.bounds.X,
		CenterY:      ly + c.bounds.Y,
		Distance:     dist,
		InitialScale: c.gesture.pinch.initialScale,
		Scale:        c.view.t.Scale,
	}
}

func (c *Controller) dragEndContext() DragContext {
	g := &c.gesture
	return DragContext{
		ScreenX: g.lastX, ScreenY: g.lastY,
		StartX: g.startX, StartY: g.startY,
		Source: g.source,
	}
}

// release ends a single-pointer gesture. A click is synthesized at the
// release point unless the gesture ever dragged or pinched. Missing or
// non-finite coordinates skip the click but never the teardown.
func (c *Controller) release(src InputSource, sx, sy float64, ok bool) {
	g := &c.gesture
	click := !g.moved
	if g.state == GestureDragging {
		c.fireDrag(EventDragEnd, c.dragEndContext())
	}
	c.teardown()
	if !click {
		return
	}
	if !ok || !finite(sx) || !finite(sy) {
		Logger().Warn("canvasview: invalid release coordinates, click skipped", "x", sx, "y", sy)
		return
	}
	c.fireClick(c.pick(sx, sy), sx, sy, src, false)
}

// cancelGesture handles touchcancel: no click, full teardown.
func (c *Controller) cancelGesture() {
	from := c.gesture.state
	c.abortGesture()
	c.fireCancel(from)
}

// abortGesture closes whatever gesture is in flight without a click.
func (c *Controller) abortGesture() {
	g := &c.gesture
	switch g.state {
	case GestureDragging:
		c.fireDrag(EventDragEnd, c.dragEndContext())
	case GesturePinching:
		c.firePinch(EventPinchEnd, c.pinchContext(g.pinch.centerX, g.pinch.centerY, g.pinch.initialDistance))
	}
	c.teardown()
}

// teardown detaches every gesture listener and restores the layer. It runs
// on every exit path.
func (c *Controller) teardown() {
	c.listeners.detachAll()
	c.gesture = gestureTracker{}
	c.layer.cursor = cursorGrab
	c.layer.hitTesting = true
}

// pick returns the element under a screen point with the interaction
// layer's own hit testing switched off for the duration of the lookup. A
// panicking HitShape is logged and reads as the background.
func (c *Controller) pick(sx, sy float64) (el *Element) {
	c.layer.hitTesting = false
	defer func() {
		c.layer.hitTesting = true
		if r := recover(); r != nil {
			Logger().Error("canvasview: hit shape panicked", "x", sx, "y", sy, "panic", r)
			el = nil
		}
	}()
	return c.ElementAt(sx, sy)
}
