package mazewalk

import (
	"io"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	calls []string
}

func (n *recordingNavigator) Navigate(dest string) {
	n.calls = append(n.calls, dest)
}

type engineFixture struct {
	eng     *Engine
	clk     *fakeClock
	nav     *recordingNavigator
	metrics *Metrics
	hook    *test.Hook
}

func newEngineFixture(t *testing.T, mutate ...func(*Options)) *engineFixture {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetOutput(io.Discard)

	f := &engineFixture{
		clk:     newFakeClock(),
		nav:     &recordingNavigator{},
		metrics: NewMetrics(prometheus.NewRegistry()),
		hook:    hook,
	}
	opts := Options{
		Rand:      seeded(11),
		Now:       f.clk.Now,
		Navigator: f.nav,
		Logger:    logger,
		Metrics:   f.metrics,
	}
	for _, m := range mutate {
		m(&opts)
	}
	f.eng = NewEngine(opts)
	return f
}

// solve walks the current session to its goal and returns the number of
// moves taken.
func (f *engineFixture) solve(t *testing.T) int {
	t.Helper()
	s := f.eng.Session()
	require.NotNil(t, s)
	path := s.Maze().Path(s.Player(), s.Goal())
	require.NotEmpty(t, path)
	for _, d := range path {
		f.clk.Advance(10 * time.Millisecond)
		f.eng.Tick()
		res := f.eng.Move(d)
		require.True(t, res.Accepted())
	}
	require.True(t, s.Solved())
	return len(path)
}

func TestEngineBeforeFirstResize(t *testing.T) {
	f := newEngineFixture(t)

	_, ok := f.eng.View()
	assert.False(t, ok)
	assert.Equal(t, RejectNoSession, f.eng.Move(DirUp).Reject)
	f.eng.Tick()
	assert.Nil(t, f.eng.Session())
}

func TestEngineResizeRegenerates(t *testing.T) {
	f := newEngineFixture(t)

	require.True(t, f.eng.Resize(960, 640, 2))
	v, ok := f.eng.View()
	require.True(t, ok)
	assert.Equal(t, Layout{Cols: 13, Rows: 9, CellSize: 71}, v.Layout)
	assert.Equal(t, Pos{0, 8}, v.Player)
	assert.Equal(t, Pos{6, 4}, v.Goal)
	assert.False(t, v.Moved)
	assert.Equal(t, DefaultFadeWindow, v.FadeWindow)
	first := v.Session

	// Same logical size: scale only.
	assert.False(t, f.eng.Resize(960, 640, 1))
	_, _, scale := f.eng.Viewport()
	assert.Equal(t, 1.0, scale)
	v, _ = f.eng.View()
	assert.Equal(t, first, v.Session)

	assert.True(t, f.eng.Resize(375, 667, 3))
	v, _ = f.eng.View()
	assert.NotEqual(t, first, v.Session)
	assert.Equal(t, Layout{Cols: 9, Rows: 11, CellSize: 41}, v.Layout)
	assert.Equal(t, Pos{0, 10}, v.Player)
	assert.Equal(t, 1, v.Trail.Len())

	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.sessions))
}

func TestEngineResizeGrid(t *testing.T) {
	f := newEngineFixture(t)

	require.True(t, f.eng.ResizeGrid(30, 20, 4))
	v, ok := f.eng.View()
	require.True(t, ok)
	assert.Equal(t, Layout{Cols: 15, Rows: 11, CellSize: 4}, v.Layout)
	first := v.Session

	assert.False(t, f.eng.ResizeGrid(30, 20, 4))
	v, _ = f.eng.View()
	assert.Equal(t, first, v.Session)

	// Even bounds are forced odd, tiny bounds clamp to the minimum grid.
	require.True(t, f.eng.ResizeGrid(10, 8, 4))
	v, _ = f.eng.View()
	assert.Equal(t, Layout{Cols: 9, Rows: 7, CellSize: 4}, v.Layout)

	require.True(t, f.eng.ResizeGrid(2, 2, 0))
	v, _ = f.eng.View()
	assert.Equal(t, Layout{Cols: 7, Rows: 5, CellSize: 1}, v.Layout)

	// Switching back to pixel sizing always regenerates.
	require.True(t, f.eng.Resize(2, 2, 1))
	v, _ = f.eng.View()
	assert.Equal(t, 7, v.Layout.Cols)
}

func TestEngineResizeDiscardsProgress(t *testing.T) {
	f := newEngineFixture(t)
	f.eng.Resize(960, 640, 1)
	f.solve(t)

	f.eng.Resize(800, 600, 1)
	v, _ := f.eng.View()
	assert.False(t, v.Solved)
	assert.Zero(t, f.eng.Session().Moves())
	assert.Zero(t, v.Flash)
	assert.NotEqual(t, RejectSolved, f.eng.Move(DirUp).Reject)
}

func TestEngineHintStaysHiddenAcrossSessions(t *testing.T) {
	f := newEngineFixture(t)
	f.eng.Resize(960, 640, 1)

	f.eng.Move(DirLeft)
	v, _ := f.eng.View()
	assert.False(t, v.Moved, "a rejected move keeps the hint")

	s := f.eng.Session()
	path := s.Maze().Path(s.Player(), s.Goal())
	require.True(t, f.eng.Move(path[0]).Accepted())
	v, _ = f.eng.View()
	assert.True(t, v.Moved)

	f.eng.Regenerate()
	v, _ = f.eng.View()
	assert.True(t, v.Moved)
	f.eng.Resize(800, 600, 1)
	v, _ = f.eng.View()
	assert.True(t, v.Moved)
}

func TestEngineMoveRejectsAndLogs(t *testing.T) {
	f := newEngineFixture(t)
	f.eng.Resize(960, 640, 1)

	res := f.eng.Move(DirLeft)
	assert.Equal(t, RejectWall, res.Reject)

	entry := f.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "move rejected", entry.Message)
	assert.Equal(t, "wall", entry.Data["reason"])
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.moves.WithLabelValues("wall")))

	res = f.eng.Move(DirNone)
	assert.Equal(t, RejectDirection, res.Reject)
}

func TestEngineWinNavigatesAfterDelay(t *testing.T) {
	f := newEngineFixture(t)
	f.eng.Resize(960, 640, 1)
	dest := f.eng.Session().Destination()
	moves := f.solve(t)

	v, _ := f.eng.View()
	assert.True(t, v.Solved)
	assert.True(t, v.Moved)
	assert.Equal(t, 1.0, v.Flash)
	assert.True(t, f.eng.TransitionPending())
	assert.Equal(t, RejectSolved, f.eng.Move(DirUp).Reject)

	f.clk.Advance(899 * time.Millisecond)
	f.eng.Tick()
	assert.Empty(t, f.nav.calls)
	v, _ = f.eng.View()
	assert.Less(t, v.Flash, 1.0)

	f.clk.Advance(time.Millisecond)
	f.eng.Tick()
	assert.Equal(t, []string{dest}, f.nav.calls)
	assert.False(t, f.eng.TransitionPending())

	f.clk.Advance(5 * time.Second)
	f.eng.Tick()
	assert.Len(t, f.nav.calls, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.solves))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.navigations))
	assert.Equal(t, float64(moves), testutil.ToFloat64(f.metrics.moves.WithLabelValues("accepted")))
}

func TestEngineCloseCancelsNavigation(t *testing.T) {
	f := newEngineFixture(t)
	f.eng.Resize(960, 640, 1)
	f.solve(t)

	f.clk.Advance(400 * time.Millisecond)
	f.eng.Tick()
	f.eng.Close()
	assert.True(t, f.eng.Closed())

	f.clk.Advance(time.Second)
	f.eng.Tick()
	assert.Empty(t, f.nav.calls)
	assert.False(t, f.eng.TransitionPending())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.canceled))

	_, ok := f.eng.View()
	assert.False(t, ok)
	assert.Equal(t, RejectNoSession, f.eng.Move(DirUp).Reject)
	assert.False(t, f.eng.Resize(100, 100, 1))

	// Closing twice is harmless.
	f.eng.Close()
}

func TestEngineNavigationSurvivesResize(t *testing.T) {
	f := newEngineFixture(t)
	f.eng.Resize(960, 640, 1)
	dest := f.eng.Session().Destination()
	f.solve(t)

	f.eng.Resize(1200, 800, 1)
	f.clk.Advance(DefaultTransitionDelay)
	f.eng.Tick()
	assert.Equal(t, []string{dest}, f.nav.calls)
}

func TestEngineNegativeDelayNavigatesNextTick(t *testing.T) {
	f := newEngineFixture(t, func(o *Options) { o.TransitionDelay = -1 })
	f.eng.Resize(960, 640, 1)
	f.solve(t)
	assert.Empty(t, f.nav.calls)

	f.eng.Tick()
	assert.Len(t, f.nav.calls, 1)
}

func TestEngineNavigatorMayRegenerate(t *testing.T) {
	var eng *Engine
	f := newEngineFixture(t, func(o *Options) {
		o.Navigator = NavigatorFunc(func(string) { eng.Regenerate() })
	})
	eng = f.eng
	eng.Resize(960, 640, 1)
	first := eng.Session().ID()
	f.solve(t)

	f.clk.Advance(DefaultTransitionDelay)
	eng.Tick()
	assert.NotEqual(t, first, eng.Session().ID())
	assert.False(t, eng.TransitionPending())
	v, _ := eng.View()
	assert.False(t, v.Solved)
}

func TestEngineDefaults(t *testing.T) {
	eng := NewEngine(Options{})
	opts := eng.Options()
	assert.Equal(t, DefaultLayoutConfig(), opts.Layout)
	assert.Equal(t, DefaultTransitionDelay, opts.TransitionDelay)
	assert.Equal(t, DefaultFlashDuration, opts.FlashDuration)
	assert.Equal(t, DefaultDestinations, opts.Destinations)
	assert.NotNil(t, opts.Rand)
	assert.NotNil(t, opts.Now)
	assert.NotNil(t, opts.Logger)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.sessionCreated()
	m.moveRequested(RejectWall)
	m.solved(time.Second)
	m.navigated()
	m.navigationCanceled()
}

func TestMetricsRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.sessionCreated()
	m.moveRequested(RejectNone)

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	// Unlabelled collectors are always exported; the vec only has "accepted".
	assert.Equal(t, 6, n)
}
