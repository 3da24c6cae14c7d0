package mazewalk

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a kind of engine event.
type EventType uint8

const (
	EventMove     EventType = iota // fires for every move request, accepted or not
	EventReset                     // fires after a new session replaces the old one
	EventSolve                     // fires once when the goal is reached
	EventNavigate                  // fires right before the navigator is called
)

// MoveEvent carries the outcome of a move request.
type MoveEvent struct {
	Session uuid.UUID
	Result  MoveResult
	At      time.Time
}

// ResetEvent describes a freshly generated session.
type ResetEvent struct {
	Session     uuid.UUID
	Layout      Layout
	Destination string
}

// SolveEvent describes a win.
type SolveEvent struct {
	Session     uuid.UUID
	Destination string
	Moves       int
	Elapsed     time.Duration
}

// NavigateEvent describes the hand-off to the navigator.
type NavigateEvent struct {
	Session     uuid.UUID
	Destination string
}

type moveHandler struct {
	id uint32
	fn func(MoveEvent)
}

type resetHandler struct {
	id uint32
	fn func(ResetEvent)
}

type solveHandler struct {
	id uint32
	fn func(SolveEvent)
}

type navigateHandler struct {
	id uint32
	fn func(NavigateEvent)
}

type handlerRegistry struct {
	move     []moveHandler
	reset    []resetHandler
	solve    []solveHandler
	navigate []navigateHandler
	nextID   uint32
}

// clear drops every registered handler.
func (r *handlerRegistry) clear() {
	r.move = nil
	r.reset = nil
	r.solve = nil
	r.navigate = nil
}

// CallbackHandle allows removing a registered engine callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventMove:
		h.reg.move = removeHandler(h.reg.move, h.id, func(x moveHandler) uint32 { return x.id })
	case EventReset:
		h.reg.reset = removeHandler(h.reg.reset, h.id, func(x resetHandler) uint32 { return x.id })
	case EventSolve:
		h.reg.solve = removeHandler(h.reg.solve, h.id, func(x solveHandler) uint32 { return x.id })
	case EventNavigate:
		h.reg.navigate = removeHandler(h.reg.navigate, h.id, func(x navigateHandler) uint32 { return x.id })
	}
}

// removeHandler returns s without the handler id. The result never shares a
// backing array with s, so a fire loop ranging over s is unaffected.
func removeHandler[T any](s []T, id uint32, idOf func(T) uint32) []T {
	i := slices.IndexFunc(s, func(h T) bool { return idOf(h) == id })
	if i < 0 {
		return s
	}
	return slices.Delete(slices.Clone(s), i, i+1)
}

// OnMove registers a callback for every move request.
func (e *Engine) OnMove(fn func(MoveEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.move = append(e.handlers.move, moveHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventMove}
}

// OnReset registers a callback for session regeneration.
func (e *Engine) OnReset(fn func(ResetEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.reset = append(e.handlers.reset, resetHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventReset}
}

// OnSolve registers a callback for wins.
func (e *Engine) OnSolve(fn func(SolveEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.solve = append(e.handlers.solve, solveHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventSolve}
}

// OnNavigate registers a callback fired right before the navigator runs.
func (e *Engine) OnNavigate(fn func(NavigateEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.navigate = append(e.handlers.navigate, navigateHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventNavigate}
}

func (e *Engine) fireMove(ev MoveEvent) {
	for _, h := range e.handlers.move {
		h.fn(ev)
	}
}

func (e *Engine) fireReset(ev ResetEvent) {
	for _, h := range e.handlers.reset {
		h.fn(ev)
	}
}

func (e *Engine) fireSolve(ev SolveEvent) {
	for _, h := range e.handlers.solve {
		h.fn(ev)
	}
}

func (e *Engine) fireNavigate(ev NavigateEvent) {
	for _, h := range e.handlers.navigate {
		h.fn(ev)
	}
}
