package ecs

import (
	"github.com/phanxgames/canvasview"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for canvasview gesture events.
var GestureEventType = events.NewEventType[canvasview.GestureEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on GestureEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) canvasview.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event canvasview.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}
