package canvasview

// ClickContext carries a synthesized click.
type ClickContext struct {
	// Element is the element under the click point, nil for the background.
	Element *Element
	Name    string
	ScreenX float64
	ScreenY float64
	WorldX  float64
	WorldY  float64
	Source  InputSource
	// Immediate is true for clicks delivered on pointer down to an
	// Interactive element, false for clicks delivered on release.
	Immediate bool
}

// DragContext carries single-pointer pan data.
type DragContext struct {
	ScreenX float64
	ScreenY float64
	StartX  float64
	StartY  float64
	// DeltaX and DeltaY are the screen-space pan requested by this event.
	DeltaX float64
	DeltaY float64
	Source InputSource
}

// PinchContext carries two-finger zoom data.
type PinchContext struct {
	CenterX      float64
	CenterY      float64
	Distance     float64
	InitialScale float64
	Scale        float64
}

// ZoomContext carries wheel zoom data.
type ZoomContext struct {
	AnchorX   float64
	AnchorY   float64
	PrevScale float64
	Scale     float64
}

// GestureEvent is the flattened form of every emitted event, forwarded to
// an EventSink.
type GestureEvent struct {
	Type     EventType
	Name     string
	EntityID uint32
	ScreenX  float64
	ScreenY  float64
	DeltaX   float64
	DeltaY   float64
	Scale    float64
	State    GestureState
}

// EventSink receives every gesture event, e.g. to bridge into an ECS.
type EventSink interface {
	EmitEvent(event GestureEvent)
}

type handler[T any] struct {
	id uint32
	fn func(T)
}

// removeHandler returns a new slice without id. The old backing array is left
// untouched so a dispatch already ranging over it is unaffected.
func removeHandler[T any](s []handler[T], id uint32) []handler[T] {
	for i := range s {
		if s[i].id == id {
			out := make([]handler[T], 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

type handlerRegistry struct {
	click      []handler[ClickContext]
	dragStart  []handler[DragContext]
	drag       []handler[DragContext]
	dragEnd    []handler[DragContext]
	pinchStart []handler[PinchContext]
	pinch      []handler[PinchContext]
	pinchEnd   []handler[PinchContext]
	zoom       []handler[ZoomContext]
	cancel     []handler[GestureState]
	nextID     uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters the callback. Removing twice is harmless.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id)
	case EventDragStart:
		h.reg.dragStart = removeHandler(h.reg.dragStart, h.id)
	case EventDrag:
		h.reg.drag = removeHandler(h.reg.drag, h.id)
	case EventDragEnd:
		h.reg.dragEnd = removeHandler(h.reg.dragEnd, h.id)
	case EventPinchStart:
		h.reg.pinchStart = removeHandler(h.reg.pinchStart, h.id)
	case EventPinch:
		h.reg.pinch = removeHandler(h.reg.pinch, h.id)
	case EventPinchEnd:
		h.reg.pinchEnd = removeHandler(h.reg.pinchEnd, h.id)
	case EventZoom:
		h.reg.zoom = removeHandler(h.reg.zoom, h.id)
	case EventCancel:
		h.reg.cancel = removeHandler(h.reg.cancel, h.id)
	}
}

func (r *handlerRegistry) handle(event EventType) CallbackHandle {
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

// OnClick registers a callback for every synthesized click, including
// background clicks where ctx.Element is nil.
func (c *Controller) OnClick(fn func(ClickContext)) CallbackHandle {
	c.handlers.nextID++
	c.handlers.click = append(c.handlers.click, handler[ClickContext]{c.handlers.nextID, fn})
	return c.handlers.handle(EventClick)
}

// OnDragStart registers a callback for the arm-to-drag promotion.
func (c *Controller) OnDragStart(fn func(DragContext)) CallbackHandle {
	c.handlers.nextID++
	c.handlers.dragStart = append(c.handlers.dragStart, handler[DragContext]{c.handlers.nextID, fn})
	return c.handlers.handle(EventDragStart)
}

// OnDrag registers a callback for each pan step of a drag.
func (c *Controller) OnDrag(fn func(DragContext)) CallbackHandle {
	c.handlers.nextID++
	c.handlers.drag = append(c.handlers.drag, handler[DragContext]{c.handlers.nextID, fn})
	return c.handlers.handle(EventDrag)
}

// OnDragEnd registers a callback for the end of a drag.
func (c *Controller) OnDragEnd(fn func(DragContext)) CallbackHandle {
	c.handlers.nextID++
	c.handlers.dragEnd = append(c.handlers.dragEnd, handler[DragContext]{c.handlers.nextID, fn})
	return c.handlers.handle(EventDragEnd)
}

// OnPinchStart registers a callback for the opening of a pinch session.
func (c *Controller) OnPinchStart(fn func(PinchContext)) CallbackHandle {
	c.handlers.nextID++
	c.handlers.pinchStart = append(c.handlers.pinchStart, handler[PinchContext]{c.handlers.nextID, fn})
	return c.handlers.handle(EventPinchStart)
}

// OnPinch registers a callback for pinch updates.
func (c *Controller) OnPinch(fn func(PinchContext)) CallbackHandle {
	c.handlers.nextID++
	c.handlers.pinch = append(c.handlers.pinch, handler[PinchContext]{c.handlers.nextID, fn})
	return c.handlers.handle(EventPinch)
}

// OnPinchEnd registers a callback for the close of a pinch session.
func (c *Controller) OnPinchEnd(fn func(PinchContext)) CallbackHandle {
	c.handlers.nextID++
	c.handlers.pinchEnd = append(c.handlers.pinchEnd, handler[PinchContext]{c.handlers.nextID, fn})
	return c.handlers.handle(EventPinchEnd)
}

// OnZoom registers a callback for wheel zoom.
func (c *Controller) OnZoom(fn func(ZoomContext)) CallbackHandle {
	c.handlers.nextID++
	c.handlers.zoom = append(c.handlers.zoom, handler[ZoomContext]{c.handlers.nextID, fn})
	return c.handlers.handle(EventZoom)
}

// OnCancel registers a callback for touchcancel. The argument is the state
// the gesture was in when it was cancelled.
func (c *Controller) OnCancel(fn func(GestureState)) CallbackHandle {
	c.handlers.nextID++
	c.handlers.cancel = append(c.handlers.cancel, handler[GestureState]{c.handlers.nextID, fn})
	return c.handlers.handle(EventCancel)
}

// SetEventSink sets the optional bridge that receives every gesture event.
func (c *Controller) SetEventSink(sink EventSink) {
	c.sink = sink
}

// --- Dispatch ---

// guarded runs a collaborator callback with input intake closed, so the
// callback cannot start a new gesture on this controller, and recovers any
// panic so the state machine is never left half torn down.
func (c *Controller) guarded(what string, fn func()) {
	prev := c.dispatching
	c.dispatching = true
	defer func() {
		c.dispatching = prev
		if r := recover(); r != nil {
			Logger().Error("canvasview: callback panicked", "callback", what, "panic", r)
		}
	}()
	fn()
}

func fire[T any](c *Controller, what string, hs []handler[T], ctx T) {
	for _, h := range hs {
		c.guarded(what, func() { h.fn(ctx) })
	}
}

func (c *Controller) emit(ev GestureEvent) {
	if c.sink == nil {
		return
	}
	ev.State = c.gesture.state
	c.guarded("sink", func() { c.sink.EmitEvent(ev) })
}

func (c *Controller) fireClick(el *Element, sx, sy float64, src InputSource, immediate bool) {
	lx, ly := c.toLayer(sx, sy)
	wx, wy := c.view.logical().ScreenToWorld(lx, ly)
	ctx := ClickContext{
		Element: el,
		ScreenX: sx, ScreenY: sy,
		WorldX: wx, WorldY: wy,
		Source:    src,
		Immediate: immediate,
	}
	var entityID uint32
	if el != nil {
		ctx.Name = el.name
		entityID = el.EntityID
	}
	fire(c, "click", c.handlers.click, ctx)
	if el != nil && el.OnClick != nil {
		c.guarded("element click", func() { el.OnClick(ctx) })
	}
	c.emit(GestureEvent{Type: EventClick, Name: ctx.Name, EntityID: entityID, ScreenX: sx, ScreenY: sy})
}

func (c *Controller) fireDrag(event EventType, ctx DragContext) {
	switch event {
	case EventDragStart:
		fire(c, "drag start", c.handlers.dragStart, ctx)
	case EventDrag:
		fire(c, "drag", c.handlers.drag, ctx)
	case EventDragEnd:
		fire(c, "drag end", c.handlers.dragEnd, ctx)
	}
	c.emit(GestureEvent{Type: event, ScreenX: ctx.ScreenX, ScreenY: ctx.ScreenY,
		DeltaX: ctx.DeltaX, DeltaY: ctx.DeltaY, Scale: c.view.t.Scale})
}

func (c *Controller) firePinch(event EventType, ctx PinchContext) {
	switch event {
	case EventPinchStart:
		fire(c, "pinch start", c.handlers.pinchStart, ctx)
	case EventPinch:
		fire(c, "pinch", c.handlers.pinch, ctx)
	case EventPinchEnd:
		fire(c, "pinch end", c.handlers.pinchEnd, ctx)
	}
	c.emit(GestureEvent{Type: event, ScreenX: ctx.CenterX, ScreenY: ctx.CenterY, Scale: ctx.Scale})
}

func (c *Controller) fireZoom(ctx ZoomContext) {
	fire(c, "zoom", c.handlers.zoom, ctx)
	c.emit(GestureEvent{Type: EventZoom, ScreenX: ctx.AnchorX, ScreenY: ctx.AnchorY, Scale: ctx.Scale})
}

func (c *Controller) fireCancel(from GestureState) {
	fire(c, "cancel", c.handlers.cancel, from)
	c.emit(GestureEvent{Type: EventCancel})
}
