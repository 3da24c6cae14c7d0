package canvas

import (
	"testing"

	"github.com/phanxgames/mazewalk"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "key", "key": "up", "repeat": 3},
			{"action": "swipe", "fromX": 100, "fromY": 100, "toX": 200, "toY": 100, "frames": 4},
			{"action": "wait", "frames": 3},
			{"action": "resize", "width": 375, "height": 667, "scale": 2},
			{"action": "solve"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(runner.steps))
	}
	if runner.steps[1].Key != "up" || runner.steps[1].Repeat != 3 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].ToX != 200 || runner.steps[2].Frames != 4 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[4].Width != 375 || runner.steps[4].Scale != 2 {
		t.Error("step 4 mismatch")
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := map[string]string{
		"invalid json":   `not json`,
		"no steps":       `{"steps": []}`,
		"unknown action": `{"steps": [{"action": "click"}]}`,
		"unknown key":    `{"steps": [{"action": "key", "key": "diagonal"}]}`,
	}
	for name, data := range tests {
		if _, err := LoadTestScript([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func runUntilDone(t *testing.T, s *testScene, runner *TestRunner, limit int) {
	t.Helper()
	s.SetTestRunner(runner)
	for i := 0; i < limit && !runner.Done(); i++ {
		if err := s.Update(); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if !runner.Done() {
		t.Fatalf("runner not done after %d frames", limit)
	}
}

func TestRunnerKeySteps(t *testing.T) {
	s := newTestScene(t)
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "key", "key": "left", "repeat": 2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runUntilDone(t, s, runner, 20)

	if len(s.moves) != 2 {
		t.Fatalf("moves = %d, want 2", len(s.moves))
	}
	for _, ev := range s.moves {
		if ev.Result.Dir != mazewalk.DirLeft {
			t.Errorf("dir = %v, want left", ev.Result.Dir)
		}
	}
}

func TestRunnerSolve(t *testing.T) {
	s := newTestScene(t)
	var solved int
	s.eng.OnSolve(func(mazewalk.SolveEvent) { solved++ })

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "solve"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runUntilDone(t, s, runner, 1000)

	v, _ := s.eng.View()
	if !v.Solved {
		t.Fatal("solve step should reach the goal")
	}
	if solved != 1 {
		t.Errorf("solve events = %d, want 1", solved)
	}
	for _, ev := range s.moves {
		if !ev.Result.Accepted() {
			t.Errorf("solve injected a rejected move: %+v", ev.Result)
		}
	}
}

func TestRunnerResize(t *testing.T) {
	s := newTestScene(t)
	before, _ := s.eng.View()

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "resize", "width": 375, "height": 667, "scale": 2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runUntilDone(t, s, runner, 10)

	after, _ := s.eng.View()
	if after.Session == before.Session {
		t.Error("resize step should regenerate the maze")
	}
	if s.scale != 2 || s.width != 375 || s.height != 667 {
		t.Errorf("scene viewport = %dx%d@%v", s.width, s.height, s.scale)
	}
}

func TestRunnerWaitAndScreenshot(t *testing.T) {
	s := newTestScene(t)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "after wait"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// frame 1 starts the wait, frames 2-3 count it down
	for i := 0; i < 3; i++ {
		runner.step(s.Scene)
	}
	if len(s.screenshotQueue) != 0 {
		t.Fatal("screenshot queued before the wait finished")
	}
	runner.step(s.Scene)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "after wait" {
		t.Fatalf("screenshot queue = %v", s.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done after its last step")
	}
}
