// Package canvasview is a pan-and-zoom viewport controller for [Ebitengine].
//
// A [Controller] owns an unbounded 2D space of caller-provided [Element]s and
// an interaction layer stacked above it. Mouse drag or one-finger drag pans,
// the wheel or a two-finger pinch zooms about the pointer, and a press that
// never turned into a pan is delivered as a click to the element underneath.
//
// # Quick start
//
//	c := canvasview.NewController(canvasview.DefaultConfig())
//	table := canvasview.NewElement(120, 80)
//	table.Color = canvasview.Color{R: 0.3, G: 0.7, B: 1, A: 1}
//	c.Add("table-1", table, 40, 60)
//	canvasview.Run(c, canvasview.RunConfig{Title: "Floor", Width: 800, Height: 600})
//
// For full control, implement [ebiten.Game] yourself, feed input with
// [EbitenInput.Poll] or [Controller.HandleInputEvent], and call
// [Controller.Update] and [Controller.Draw] each frame.
//
// # Transform
//
// The space is drawn through a single [ViewportTransform]: a screen point s
// and a world point w relate by s = w*Scale + Translate. The scale is clamped
// to [ZoomValue^ZoomRange[1], ZoomValue^ZoomRange[0]] and quantized to two
// decimals. Pan motion below [Config.Threshold] is buffered and applied once
// it adds up to a whole step. The transform is written at most once per
// frame, in Update; mouse and wheel writes are eased over
// [Config.Transition] with [gween], touch writes snap.
//
// # Gestures
//
// A single state machine tracks one gesture at a time: Idle, Armed (pointer
// down, not yet moved past [Config.DragThreshold]), Dragging and Pinching.
// Move, release and cancel listeners are attached only while a gesture is in
// flight and every exit path detaches them. Elements marked Interactive
// receive their click on pointer down and never start a pan.
//
// # Events
//
// Register callbacks with [Controller.OnClick], [Controller.OnDrag],
// [Controller.OnPinch], [Controller.OnZoom] and friends, or bridge every event
// into a [Donburi] world with the canvasview/ecs package.
//
// # Testing
//
// [Controller.InjectClick], [Controller.InjectDrag], [Controller.InjectWheel]
// and [Controller.InjectPinch] queue synthetic input consumed one event per
// frame. [LoadTestScript] sequences them with screenshots from JSON.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package canvasview
