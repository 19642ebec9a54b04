package ecs

import (
	"testing"

	"github.com/phanxgames/canvasview"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []canvasview.GestureEvent
	GestureEventType.Subscribe(world, func(w donburi.World, e canvasview.GestureEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(canvasview.GestureEvent{Type: canvasview.EventClick, Name: "table-4", EntityID: 42, ScreenX: 100, ScreenY: 200})
	sink.EmitEvent(canvasview.GestureEvent{Type: canvasview.EventPinch, Scale: 1.5})

	if len(received) != 0 {
		t.Fatalf("events delivered before processing: %d", len(received))
	}
	GestureEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != canvasview.EventClick || e.EntityID != 42 || e.Name != "table-4" {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != canvasview.EventPinch || e.Scale != 1.5 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_ControllerBridge(t *testing.T) {
	world := donburi.NewWorld()
	c := canvasview.NewController(canvasview.DefaultConfig())
	c.SetEventSink(NewDonburiSink(world))

	el := canvasview.NewElement(50, 50)
	el.EntityID = 7
	c.Add("seat", el, 0, 0)

	var got []canvasview.GestureEvent
	GestureEventType.Subscribe(world, func(w donburi.World, e canvasview.GestureEvent) {
		got = append(got, e)
	})

	c.HandleInputEvent(canvasview.InputEvent{Kind: canvasview.InputMouseDown, X: 10, Y: 10})
	c.HandleInputEvent(canvasview.InputEvent{Kind: canvasview.InputMouseUp, X: 10, Y: 10})
	events.ProcessAllEvents(world)

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Type != canvasview.EventClick || got[0].EntityID != 7 || got[0].Name != "seat" {
		t.Errorf("bridged click = %+v", got[0])
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	GestureEventType.Subscribe(world, func(w donburi.World, e canvasview.GestureEvent) { count1++ })
	GestureEventType.Subscribe(world, func(w donburi.World, e canvasview.GestureEvent) { count2++ })

	sink.EmitEvent(canvasview.GestureEvent{Type: canvasview.EventZoom})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
