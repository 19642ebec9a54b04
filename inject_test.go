package canvasview

import "testing"

func TestInjectClick(t *testing.T) {
	c := newTestController()
	el := NewElement(100, 100)
	c.Add("s", el, 0, 0)

	var clicked bool
	c.OnClick(func(ctx ClickContext) {
		clicked = true
		if ctx.Element != el {
			t.Error("expected element s")
		}
	})

	c.InjectClick(50, 50)
	if c.PendingInjections() != 2 {
		t.Fatalf("expected 2 queued events, got %d", c.PendingInjections())
	}

	// Frame 1: press
	c.frame(frameDT)
	if c.PendingInjections() != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", c.PendingInjections())
	}
	if clicked {
		t.Error("click should not fire on press frame")
	}

	// Frame 2: release
	c.frame(frameDT)
	if !clicked {
		t.Error("click should fire on release frame")
	}
}

func TestInjectDrag(t *testing.T) {
	c := newTestController()
	var events []string
	c.OnDragStart(func(DragContext) { events = append(events, "dragstart") })
	c.OnDrag(func(DragContext) { events = append(events, "drag") })
	c.OnDragEnd(func(DragContext) { events = append(events, "dragend") })

	c.InjectDrag(10, 10, 200, 200, 5)
	if c.PendingInjections() != 5 {
		t.Fatalf("expected 5 queued events, got %d", c.PendingInjections())
	}
	for i := 0; i < 5; i++ {
		c.frame(frameDT)
	}

	if len(events) < 3 {
		t.Fatalf("expected at least 3 events, got %v", events)
	}
	if events[0] != "dragstart" {
		t.Errorf("first event should be dragstart, got %s", events[0])
	}
	if events[len(events)-1] != "dragend" {
		t.Errorf("last event should be dragend, got %s", events[len(events)-1])
	}

	// Teardown keeps the sub-pixel remainder, so check the committed
	// translate to within one flush step.
	tr := c.Transform()
	if !approxEqual(tr.TranslateX, 190, 1.01) || !approxEqual(tr.TranslateY, 190, 1.01) {
		t.Errorf("translate = (%v, %v), want about (190, 190)", tr.TranslateX, tr.TranslateY)
	}
	wx, wy := c.ScreenToWorld(200, 200)
	if !approxEqual(wx, 10, 1e-6) || !approxEqual(wy, 10, 1e-6) {
		t.Errorf("pressed world point ended at (%v, %v), want (10, 10)", wx, wy)
	}
	assertIdle(t, c)
}

func TestInjectDragMinimumFrames(t *testing.T) {
	c := newTestController()
	c.InjectDrag(0, 0, 50, 0, 1)
	if c.PendingInjections() != 3 {
		t.Errorf("queued = %d, want 3", c.PendingInjections())
	}
}

func TestInjectPinch(t *testing.T) {
	c := newTestController()
	var starts, ends, clicks int
	c.OnPinchStart(func(PinchContext) { starts++ })
	c.OnPinchEnd(func(PinchContext) { ends++ })
	c.OnClick(func(ClickContext) { clicks++ })

	c.InjectPinch(400, 300, 100, 200, 6)
	if c.PendingInjections() != 7 {
		t.Fatalf("queued = %d, want 7", c.PendingInjections())
	}
	for i := 0; i < 7; i++ {
		c.frame(frameDT)
	}

	if starts != 1 || ends != 1 || clicks != 0 {
		t.Errorf("starts = %d, ends = %d, clicks = %d", starts, ends, clicks)
	}
	assertNear(t, "scale", c.Scale(), 1.69)
	wx, wy := c.ScreenToWorld(400, 300)
	if !approxEqual(wx, 400, 1e-9) || !approxEqual(wy, 300, 1e-9) {
		t.Errorf("pinch center moved to (%v, %v)", wx, wy)
	}
	assertIdle(t, c)
}

func TestInjectWheel(t *testing.T) {
	c := newTestController()
	c.InjectWheel(100, 100, -1)
	c.frame(frameDT)
	assertNear(t, "scale", c.Scale(), 1.11)
}

func TestInjectAfterDispose(t *testing.T) {
	c := newTestController()
	c.Dispose()
	c.InjectClick(10, 10)
	if c.PendingInjections() != 0 {
		t.Errorf("disposed controller queued %d events", c.PendingInjections())
	}
}
