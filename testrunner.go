package pasture

import (
	"encoding/json"
	"fmt"
	"time"
)

// ScriptStep is a single action in a test script.
type ScriptStep struct {
	Action string  `json:"action"`
	ID     string  `json:"id,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
	// Ms is used by "advance" to move a ManualClock forward.
	Ms int64 `json:"ms,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []ScriptStep `json:"steps"`
}

// StepHandler runs a custom script action.
type StepHandler func(s *Scene, step ScriptStep) error

// TestRunner sequences injected input and clock changes across frames so a
// session can be replayed headlessly. Attach to a Scene via SetTestRunner.
//
// Built-in actions: press, move, hover, release, click, drag, wait,
// advance, activate, deactivate and viewport. Others are looked up in the
// handlers registered with Handle.
type TestRunner struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
	done      bool
	handlers  map[string]StepHandler
	err       error
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Handle registers fn for a custom action name.
func (r *TestRunner) Handle(action string, fn StepHandler) {
	if r.handlers == nil {
		r.handlers = make(map[string]StepHandler)
	}
	r.handlers[action] = fn
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before processInput each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Err returns the first error raised by a step. The runner stops at the
// first error.
func (r *TestRunner) Err() error {
	return r.err
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
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

	if err := r.run(s, st); err != nil {
		r.err = fmt.Errorf("step %d (%s): %w", r.cursor, st.Action, err)
		r.done = true
		return
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) run(s *Scene, st ScriptStep) error {
	switch st.Action {
	case "press":
		s.InjectPress(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "hover":
		s.InjectHover(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "advance":
		mc, ok := s.ticker.Clock.(*ManualClock)
		if !ok {
			return fmt.Errorf("advance needs a manual clock")
		}
		mc.Advance(time.Duration(st.Ms) * time.Millisecond)
	case "activate", "deactivate":
		if s.Body(st.ID) == nil {
			return fmt.Errorf("unknown body %q", st.ID)
		}
		s.Activate(st.ID, st.Action == "activate")
	case "viewport":
		s.SetViewport(Rect{X: st.X, Y: st.Y, Width: st.Width, Height: st.Height})
	default:
		fn, ok := r.handlers[st.Action]
		if !ok {
			return fmt.Errorf("unknown action %q", st.Action)
		}
		return fn(s, st)
	}
	return nil
}
