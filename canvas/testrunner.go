package canvas

import (
	"encoding/json"
	"fmt"

	"github.com/phanxgames/mazewalk"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	Repeat int     `json:"repeat,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, resizes and screenshots across
// frames for scripted play-throughs. Attach to a Scene via SetTestRunner.
//
// Actions:
//
//	key        press Key ("up", "down", "left", "right") Repeat times
//	swipe      drag from (fromX, fromY) to (toX, toY) over Frames frames
//	wait       idle for Frames frames
//	resize     resize to Width × Height at Scale
//	solve      press the keys of the shortest path to the goal
//	screenshot capture the next drawn frame as Label
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
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
	for i, st := range script.Steps {
		switch st.Action {
		case "key":
			if !mazewalk.ParseDirection(st.Key).Valid() {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		case "swipe", "wait", "resize", "solve", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. Its step method is
// called from Scene.Update before processInput each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	if s.pendingInjections() > 0 {
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
		s.Screenshot(st.Label)
	case "key":
		d := mazewalk.ParseDirection(st.Key)
		for i := 0; i < max(st.Repeat, 1); i++ {
			s.InjectKey(d)
		}
	case "swipe":
		s.InjectSwipe(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "resize":
		s.Resize(st.Width, st.Height, st.Scale)
	case "solve":
		if v, ok := s.eng.View(); ok {
			for _, d := range v.Maze.Path(v.Player, v.Goal) {
				s.InjectKey(d)
			}
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && s.pendingInjections() == 0 {
		r.done = true
	}
}
