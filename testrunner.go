package canvasview

import (
	"encoding/json"
	"fmt"
)

// testStep is a single action in a gesture script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	From   float64 `json:"from,omitempty"`
	To     float64 `json:"to,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true, "click": true, "drag": true, "wheel": true,
	"pinch": true, "cancel": true, "wait": true, "reset": true,
}

// TestRunner sequences injected gestures and screenshots across frames for
// automated visual testing. Attach it with SetTestRunner.
//
// Script format:
//
//	{"steps": [
//	  {"action": "drag", "fromX": 100, "fromY": 100, "toX": 300, "toY": 200, "frames": 10},
//	  {"action": "wheel", "x": 320, "y": 240, "deltaY": -1},
//	  {"action": "pinch", "x": 320, "y": 240, "from": 100, "to": 200, "frames": 8},
//	  {"action": "screenshot", "label": "after-pinch"}
//	]}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON gesture script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a runner. Its step runs at the start of every Update.
func (c *Controller) SetTestRunner(runner *TestRunner) {
	c.testRunner = runner
}

// Done reports whether every step has executed and its input drained.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(c *Controller) {
	if r.done {
		return
	}
	if len(c.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		c.Screenshot(st.Label)
	case "click":
		c.InjectClick(st.X, st.Y)
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		c.InjectWheel(st.X, st.Y, st.DeltaY)
	case "pinch":
		c.InjectPinch(st.X, st.Y, st.From, st.To, st.Frames)
	case "cancel":
		c.InjectTouchCancel()
	case "reset":
		c.Reset()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(c.injectQueue) == 0 {
		r.done = true
	}
}
