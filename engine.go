package mazewalk

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Options configures an Engine. Zero values fall back to the defaults.
type Options struct {
	Layout     LayoutConfig
	FadeWindow time.Duration
	// TransitionDelay is the wait between a win and the navigation. Zero
	// uses DefaultTransitionDelay; a negative delay navigates on the next
	// Tick.
	TransitionDelay time.Duration
	FlashDuration   time.Duration
	Destinations    []string

	// Navigator receives the destination TransitionDelay after a win.
	Navigator Navigator
	// Rand drives generation and destination picks. Nil uses math/rand/v2.
	Rand Rand
	// Now is the clock. Nil uses time.Now.
	Now func() time.Time

	Logger  *logrus.Logger
	Metrics *Metrics

	// Goal overrides the center goal for every session when non-nil.
	Goal *Pos
}

// DefaultOptions returns the options used for zero fields.
func DefaultOptions() Options {
	return Options{
		Layout:          DefaultLayoutConfig(),
		FadeWindow:      DefaultFadeWindow,
		TransitionDelay: DefaultTransitionDelay,
		FlashDuration:   DefaultFlashDuration,
		Destinations:    DefaultDestinations,
		Now:             time.Now,
		Logger:          logrus.StandardLogger(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Layout == (LayoutConfig{}) {
		o.Layout = d.Layout
	}
	if o.FadeWindow <= 0 {
		o.FadeWindow = d.FadeWindow
	}
	if o.TransitionDelay < 0 {
		o.TransitionDelay = 0
	} else if o.TransitionDelay == 0 {
		o.TransitionDelay = d.TransitionDelay
	}
	if o.FlashDuration <= 0 {
		o.FlashDuration = d.FlashDuration
	}
	if len(o.Destinations) == 0 {
		o.Destinations = d.Destinations
	}
	if o.Now == nil {
		o.Now = d.Now
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	o.Rand = orDefault(o.Rand)
	return o
}

// View is a read-only snapshot of everything a render loop needs for one
// frame. Maze and Trail point at live session data and MUST NOT be mutated.
type View struct {
	Session    uuid.UUID
	Maze       *Maze
	Layout     Layout
	Player     Pos
	Goal       Pos
	Trail      *Trail
	FadeWindow time.Duration
	Solved     bool
	// Moved is true once the player has made any accepted move on this
	// engine, in any session; frontends hide the usage hint after that.
	Moved bool
	// Flash is the win flash opacity in [0, 1].
	Flash float64
	Now   time.Time
}

// Engine owns the game state for one embedded maze: the current Session,
// the viewport it was fitted to, the win flash and the pending navigation.
//
// Input paths mutate state only through Move, resize paths only through
// Resize, and render paths only read View. The engine assumes all calls come
// from a single goroutine (the frontend's frame loop) and does no locking.
type Engine struct {
	opts Options
	log  *logrus.Logger

	session *Session
	width   int
	height  int
	scale   float64
	// grid is set by ResizeGrid: width and height are then the largest
	// column and row counts that fit, and cellChars the cell width.
	grid      bool
	cellChars int

	flash    flash
	pending  *Schedule
	moved    bool
	lastTick time.Time

	handlers handlerRegistry
	closed   bool
}

// NewEngine creates an engine with no session. The first Resize generates
// one; until then View reports false and Move rejects.
func NewEngine(opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{opts: opts, log: opts.Logger, scale: 1}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Resize reacts to a viewport change. A new logical size discards the
// current session entirely and generates a fresh one; an unchanged size only
// records the scale. It reports whether a new session was generated.
func (e *Engine) Resize(width, height int, scale float64) bool {
	if e.closed {
		return false
	}
	if scale <= 0 {
		scale = 1
	}
	e.scale = scale
	if e.session != nil && !e.grid && width == e.width && height == e.height {
		return false
	}
	e.width, e.height, e.grid = width, height, false
	e.regenerate()
	return true
}

// ResizeGrid is Resize for character-cell surfaces. maxCols × maxRows is the
// largest grid that fits; it is clamped and forced odd by FitGrid and each
// cell is cellChars wide. A change of either bound regenerates the session.
func (e *Engine) ResizeGrid(maxCols, maxRows, cellChars int) bool {
	if e.closed {
		return false
	}
	e.scale = 1
	cellChars = max(cellChars, 1)
	if e.session != nil && e.grid && maxCols == e.width && maxRows == e.height && cellChars == e.cellChars {
		return false
	}
	e.width, e.height, e.grid, e.cellChars = maxCols, maxRows, true, cellChars
	e.regenerate()
	return true
}

// fit computes the layout for the last viewport.
func (e *Engine) fit() Layout {
	if e.grid {
		cols, rows := e.opts.Layout.FitGrid(e.width, e.height)
		return Layout{Cols: cols, Rows: rows, CellSize: e.cellChars}
	}
	return e.opts.Layout.Fit(e.width, e.height)
}

// Regenerate discards the current session and builds a new one for the
// current viewport.
func (e *Engine) Regenerate() {
	if e.closed {
		return
	}
	e.regenerate()
}

func (e *Engine) regenerate() {
	now := e.opts.Now()
	layout := e.fit()
	e.session = NewSession(SessionOptions{
		Layout:       layout,
		Rand:         e.opts.Rand,
		Destinations: e.opts.Destinations,
		Now:          now,
		Goal:         e.opts.Goal,
	})
	e.flash.reset()
	e.opts.Metrics.sessionCreated()

	s := e.session
	e.log.WithFields(logrus.Fields{
		"session":     s.ID(),
		"cols":        layout.Cols,
		"rows":        layout.Rows,
		"cell_size":   layout.CellSize,
		"viewport":    [2]int{e.width, e.height},
		"destination": s.Destination(),
	}).Info("maze generated")

	e.fireReset(ResetEvent{Session: s.ID(), Layout: s.Layout(), Destination: s.Destination()})
}

// Move is the single entry point for directional input from every source.
// Illegal requests change nothing; the result says why.
func (e *Engine) Move(d Direction) MoveResult {
	if e.closed || e.session == nil {
		return MoveResult{Dir: d, Reject: RejectNoSession}
	}
	now := e.opts.Now()
	s := e.session
	res := s.Move(d, now)
	e.opts.Metrics.moveRequested(res.Reject)

	if res.Accepted() {
		e.moved = true
	} else {
		e.log.WithFields(logrus.Fields{
			"session": s.ID(),
			"dir":     d.String(),
			"at":      res.From,
			"reason":  res.Reject.String(),
		}).Debug("move rejected")
	}

	e.fireMove(MoveEvent{Session: s.ID(), Result: res, At: now})
	if res.Solved {
		e.solve(s, now)
	}
	return res
}

// solve starts the flash and schedules the navigation for session s.
func (e *Engine) solve(s *Session, now time.Time) {
	elapsed := s.SolveDuration()
	e.opts.Metrics.solved(elapsed)
	e.flash.start(e.opts.FlashDuration)

	id, dest := s.ID(), s.Destination()
	e.pending.Cancel()
	e.pending = NewSchedule(now.Add(e.opts.TransitionDelay), func() {
		e.navigate(id, dest)
	})

	e.log.WithFields(logrus.Fields{
		"session":     id,
		"moves":       s.Moves(),
		"elapsed":     elapsed.String(),
		"destination": dest,
	}).Info("maze solved")

	e.fireSolve(SolveEvent{Session: id, Destination: dest, Moves: s.Moves(), Elapsed: elapsed})
}

func (e *Engine) navigate(id uuid.UUID, dest string) {
	e.opts.Metrics.navigated()
	e.log.WithFields(logrus.Fields{
		"session":     id,
		"destination": dest,
	}).Info("navigating")
	e.fireNavigate(NavigateEvent{Session: id, Destination: dest})
	if e.opts.Navigator != nil {
		e.opts.Navigator.Navigate(dest)
	}
}

// Tick advances time-based effects: the flash tween and the pending
// navigation. Frontends call it once per frame before drawing.
func (e *Engine) Tick() {
	if e.closed {
		return
	}
	now := e.opts.Now()
	var dt time.Duration
	if !e.lastTick.IsZero() && now.After(e.lastTick) {
		dt = now.Sub(e.lastTick)
	}
	e.lastTick = now

	e.flash.update(float32(dt.Seconds()))

	if p := e.pending; p != nil && p.Poll(now) && e.pending == p {
		e.pending = nil
	}
}

// View returns the current frame snapshot. It reports false before the first
// session exists and after Close.
func (e *Engine) View() (View, bool) {
	if e.closed || e.session == nil {
		return View{}, false
	}
	s := e.session
	return View{
		Session:    s.ID(),
		Maze:       s.Maze(),
		Layout:     s.Layout(),
		Player:     s.Player(),
		Goal:       s.Goal(),
		Trail:      s.Trail(),
		FadeWindow: e.opts.FadeWindow,
		Solved:     s.Solved(),
		Moved:      e.moved,
		Flash:      e.flash.alpha,
		Now:        e.opts.Now(),
	}, true
}

// Session returns the current session, or nil.
func (e *Engine) Session() *Session {
	return e.session
}

// Viewport returns the last viewport passed to Resize.
func (e *Engine) Viewport() (width, height int, scale float64) {
	return e.width, e.height, e.scale
}

// TransitionPending reports whether a navigation is scheduled.
func (e *Engine) TransitionPending() bool {
	return e.pending.Pending()
}

// Close tears the engine down: a pending navigation is canceled and never
// fires, every handler is removed, and later calls become no-ops.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	if e.pending.Pending() {
		e.pending.Cancel()
		e.opts.Metrics.navigationCanceled()
		e.log.WithField("due", e.pending.Due()).Debug("pending navigation canceled")
	}
	e.pending = nil
	e.handlers.clear()
	e.flash.reset()
	e.session = nil
}

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool {
	return e.closed
}
