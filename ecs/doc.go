// Package ecs provides ECS adapters for canvasview's gesture events.
//
// The primary adapter is [NewDonburiSink], which bridges canvasview gesture
// events (click, drag, pinch, zoom, cancel) into a [Donburi] world as typed
// events. Subscribe to [GestureEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	controller.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
