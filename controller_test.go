package canvasview

import "testing"

func TestNewControllerDefaults(t *testing.T) {
	c := NewController(DefaultConfig())
	if c.Transform() != identityView || c.VisualTransform() != identityView {
		t.Errorf("transform = %+v, visual = %+v", c.Transform(), c.VisualTransform())
	}
	if c.State() != GestureIdle || c.ListenerCount() != 0 {
		t.Error("fresh controller has a gesture in flight")
	}
	if !c.HitTesting() || c.Cursor() != cursorGrab {
		t.Error("layer not in its resting state")
	}
	st := c.CurrentStyle()
	if st.MinHeight == nil || *st.MinHeight != 500 {
		t.Errorf("MinHeight = %v, want 500", st.MinHeight)
	}
	if st.Background == nil || st.Background.A != 0 {
		t.Errorf("Background = %v, want transparent", st.Background)
	}
}

func TestStyleMerges(t *testing.T) {
	c := NewController(DefaultConfig())
	w := 320.0
	c.Style(Style{MinWidth: &w})
	w = 1 // caller keeps ownership of its values

	bg := Color{R: 1, A: 1}
	c.Style(Style{Background: &bg})

	st := c.CurrentStyle()
	if st.MinWidth == nil || *st.MinWidth != 320 {
		t.Errorf("MinWidth = %v, want 320", st.MinWidth)
	}
	if st.MinHeight == nil || *st.MinHeight != 500 {
		t.Error("MinHeight lost by a partial update")
	}
	if *st.Background != bg {
		t.Errorf("Background = %v", *st.Background)
	}
}

func TestScreenWorldWithBounds(t *testing.T) {
	c := NewController(DefaultConfig())
	c.SetBounds(Rect{X: 100, Y: 50, Width: 400, Height: 300})
	c.SetTransform(ViewportTransform{TranslateX: 20, TranslateY: 10, Scale: 2})

	wx, wy := c.ScreenToWorld(140, 80)
	assertNear(t, "wx", wx, 10)
	assertNear(t, "wy", wy, 10)
	sx, sy := c.WorldToScreen(wx, wy)
	assertNear(t, "sx", sx, 140)
	assertNear(t, "sy", sy, 80)
}

func TestZoomAtAndPanBy(t *testing.T) {
	c := NewController(DefaultConfig())
	c.ZoomAt(100, 100, 1.5)
	wx, wy := c.ScreenToWorld(100, 100)
	assertNear(t, "wx", wx, 100)
	assertNear(t, "wy", wy, 100)

	before := c.Transform()
	c.PanBy(0.5, 0)
	if c.Transform() != before {
		t.Error("sub-threshold pan moved the committed transform")
	}
	c.PanBy(0.5, 0)
	assertNear(t, "tx", c.Transform().TranslateX, before.TranslateX+1)
}

func TestSetTransformClampsAndReset(t *testing.T) {
	c := NewController(DefaultConfig())
	c.SetTransform(ViewportTransform{TranslateX: 5, Scale: 9})
	assertNear(t, "scale", c.Scale(), 1.69)
	c.Reset()
	if c.Transform() != identityView {
		t.Errorf("Reset left %+v", c.Transform())
	}
}

func TestFrameWritesOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Transition = 0
	c := NewController(cfg)
	c.SetDebugMode(true)

	c.PanBy(10, 0)
	c.ZoomAt(0, 0, 1.2)
	c.PanBy(3, 3)
	c.frame(frameDT)
	c.frame(frameDT)
	if c.TransformWrites() != 1 {
		t.Errorf("writes = %d, want 1", c.TransformWrites())
	}
	if c.VisualTransform() != c.Transform() {
		t.Errorf("visual = %+v, want %+v", c.VisualTransform(), c.Transform())
	}
}

func TestUpdateUsesTPS(t *testing.T) {
	c := NewController(DefaultConfig())
	c.PanBy(4, 0)
	c.Update()
	if c.TransformWrites() != 1 {
		t.Errorf("writes = %d, want 1", c.TransformWrites())
	}
}

func TestDisposeStopsFrames(t *testing.T) {
	c := NewController(DefaultConfig())
	c.PanBy(4, 0)
	c.Dispose()
	c.frame(frameDT)
	if c.TransformWrites() != 0 {
		t.Error("disposed controller committed a write")
	}
}

func TestEventSinkReceivesState(t *testing.T) {
	c := newTestController()
	var got []GestureEvent
	c.SetEventSink(sinkFunc(func(ev GestureEvent) { got = append(got, ev) }))

	mouseDown(c, 10, 10)
	mouseMove(c, 60, 10)
	mouseUp(c, 60, 10)

	types := make([]EventType, len(got))
	for i, ev := range got {
		types[i] = ev.Type
	}
	want := []EventType{EventDragStart, EventDrag, EventDragEnd}
	if len(types) != len(want) {
		t.Fatalf("types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
	if got[1].State != GestureDragging || got[1].DeltaX != 50 {
		t.Errorf("drag event = %+v", got[1])
	}
}

type sinkFunc func(GestureEvent)

func (f sinkFunc) EmitEvent(ev GestureEvent) { f(ev) }
