package canvas

import (
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/phanxgames/mazewalk"
)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testScene struct {
	*Scene
	clk   *testClock
	moves []mazewalk.MoveEvent
}

// newTestScene returns a scene over a seeded engine already resized to
// 960x640 at scale 1.
func newTestScene(t *testing.T) *testScene {
	t.Helper()
	logger, _ := test.NewNullLogger()
	logger.SetOutput(io.Discard)

	clk := &testClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	eng := mazewalk.NewEngine(mazewalk.Options{
		Rand:      rand.New(rand.NewPCG(7, 8)),
		Now:       clk.Now,
		Logger:    logger,
		Navigator: mazewalk.NavigatorFunc(func(string) {}),
	})
	ts := &testScene{clk: clk}
	ts.Scene = NewScene(eng, Config{
		SwipeThreshold:    mazewalk.DefaultSwipeThreshold,
		KeyRepeatDelay:    500 * time.Millisecond,
		KeyRepeatInterval: 80 * time.Millisecond,
		ScreenshotDir:     t.TempDir(),
	})
	eng.OnMove(func(ev mazewalk.MoveEvent) { ts.moves = append(ts.moves, ev) })
	ts.Resize(960, 640, 1)
	t.Cleanup(ts.Close)
	return ts
}

func TestNewSceneDefaults(t *testing.T) {
	logger, _ := test.NewNullLogger()
	eng := mazewalk.NewEngine(mazewalk.Options{Logger: logger})
	s := NewScene(eng, Config{Dark: true})
	if s.Engine() != eng {
		t.Fatal("engine not retained")
	}
	if s.log != logger {
		t.Error("scene should log through the engine logger")
	}
	if !s.Dark {
		t.Error("Dark should come from config")
	}
	if s.ScreenshotDir != defaultScreenshotDir {
		t.Errorf("ScreenshotDir = %q, want %q", s.ScreenshotDir, defaultScreenshotDir)
	}
}

func TestConfigFrom(t *testing.T) {
	c := mazewalk.DefaultConfig()
	c.Dark = true
	c.ShowFPS = true
	got := ConfigFrom(c)
	if !got.Dark || !got.ShowFPS {
		t.Errorf("flags not carried over: %+v", got)
	}
	if got.SwipeThreshold != c.SwipeThreshold || got.KeyRepeatDelay != c.KeyRepeatDelay {
		t.Errorf("input settings not carried over: %+v", got)
	}
}

func TestSceneResizeRegenerates(t *testing.T) {
	s := newTestScene(t)
	v, ok := s.eng.View()
	if !ok {
		t.Fatal("expected a session after resize")
	}
	if v.Layout.Cols != 13 || v.Layout.Rows != 9 {
		t.Fatalf("layout = %dx%d, want 13x9", v.Layout.Cols, v.Layout.Rows)
	}

	s.Resize(960, 640, 2)
	v2, _ := s.eng.View()
	if v2.Session != v.Session {
		t.Error("scale-only resize should keep the session")
	}

	s.Resize(375, 667, 2)
	v3, _ := s.eng.View()
	if v3.Session == v.Session {
		t.Error("size change should regenerate")
	}
	if v3.Layout.Cols != 9 || v3.Layout.Rows != 11 {
		t.Errorf("layout = %dx%d, want 9x11", v3.Layout.Cols, v3.Layout.Rows)
	}
}

func TestSceneUpdateTerminatesAfterClose(t *testing.T) {
	s := newTestScene(t)
	if err := s.Update(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Close()
	if err := s.Update(); err == nil {
		t.Error("expected termination after Close")
	}
}

func TestSceneUpdateFunc(t *testing.T) {
	s := newTestScene(t)
	calls := 0
	s.SetUpdateFunc(func() error {
		calls++
		return nil
	})
	for i := 0; i < 3; i++ {
		if err := s.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 3 {
		t.Errorf("update func called %d times, want 3", calls)
	}
	if s.frame != 3 {
		t.Errorf("frame = %d, want 3", s.frame)
	}
}
