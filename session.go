package mazewalk

import (
	"time"

	"github.com/google/uuid"
)

// DefaultDestinations are the routes a solved maze can lead to.
var DefaultDestinations = []string{"/projects", "/blog", "/about", "/contact"}

// SessionOptions configures a new Session.
type SessionOptions struct {
	Layout       Layout
	Rand         Rand
	Destinations []string
	// Now stamps the initial trail entry.
	Now time.Time
	// Goal overrides the center goal cell when non-nil. Out-of-bounds
	// overrides are ignored.
	Goal *Pos
}

// Session is the state of one maze instance: the generated grid, the player,
// the goal, the trail and the solved flag. It is created whole and discarded
// whole; a resize builds a new Session rather than mutating this one.
type Session struct {
	id          uuid.UUID
	layout      Layout
	maze        *Maze
	start       Pos
	player      Pos
	goal        Pos
	trail       Trail
	solved      bool
	moves       int
	destination string
	createdAt   time.Time
	solvedAt    time.Time
}

// NewSession generates a maze for opts.Layout, clears its center, places the
// player in the bottom-left corner and picks a destination.
func NewSession(opts SessionOptions) *Session {
	rng := orDefault(opts.Rand)
	cols, rows := max(opts.Layout.Cols, 1), max(opts.Layout.Rows, 1)

	m := Generate(cols, rows, rng)
	ClearCenter(m)

	s := &Session{
		id:        uuid.New(),
		layout:    opts.Layout,
		maze:      m,
		start:     Pos{Col: 0, Row: rows - 1},
		goal:      m.Center(),
		createdAt: opts.Now,
	}
	s.layout.Cols, s.layout.Rows = cols, rows
	if opts.Goal != nil && m.InBounds(*opts.Goal) {
		s.goal = *opts.Goal
	}
	s.player = s.start
	s.trail.append(s.player, opts.Now)

	dests := opts.Destinations
	if len(dests) == 0 {
		dests = DefaultDestinations
	}
	s.destination = dests[rng.IntN(len(dests))]
	return s
}

// Move is the single mutation entry point for player input. Rejections are
// checked in order: solved, wall, bounds. An accepted move updates the
// player, appends a trail entry stamped now and checks for the goal.
func (s *Session) Move(d Direction, now time.Time) MoveResult {
	res := MoveResult{Dir: d, From: s.player, To: s.player}
	if s.solved {
		res.Reject = RejectSolved
		return res
	}
	to, rej := s.maze.Step(s.player, d)
	if rej != RejectNone {
		res.Reject = rej
		return res
	}

	s.player = to
	s.moves++
	s.trail.append(to, now)
	res.To = to

	if to == s.goal {
		s.solved = true
		s.solvedAt = now
		res.Solved = true
	}
	return res
}

// ID returns the unique identifier minted for this session.
func (s *Session) ID() uuid.UUID { return s.id }

// Layout returns the grid dimensions and cell size the session was built for.
func (s *Session) Layout() Layout { return s.layout }

// Maze returns the session's maze. Callers MUST NOT modify it.
func (s *Session) Maze() *Maze { return s.maze }

// Player returns the current player cell.
func (s *Session) Player() Pos { return s.player }

// Start returns the cell the player started in.
func (s *Session) Start() Pos { return s.start }

// Goal returns the goal cell.
func (s *Session) Goal() Pos { return s.goal }

// Trail returns the visited-cell history.
func (s *Session) Trail() *Trail { return &s.trail }

// Solved reports whether the goal has been reached.
func (s *Session) Solved() bool { return s.solved }

// Moves returns the number of accepted moves.
func (s *Session) Moves() int { return s.moves }

// Destination returns the route chosen when the session was created.
func (s *Session) Destination() string { return s.destination }

// CreatedAt returns the session creation time.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// SolveDuration returns the time from creation to the winning move, or zero
// while unsolved.
func (s *Session) SolveDuration() time.Duration {
	if !s.solved {
		return 0
	}
	return s.solvedAt.Sub(s.createdAt)
}
