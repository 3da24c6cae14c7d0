// Package term is a terminal frontend for mazewalk built on tcell. The maze
// is drawn as a character lattice, arrow keys and mouse drags move the
// player, and a short chime plays on a win when sound is enabled.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/phanxgames/mazewalk"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	eventBuffer   = 100
	// dragThreshold is the minimum mouse drag, in maze cells, that moves.
	dragThreshold = 1.0
)

// Options configures an App.
type Options struct {
	Dark   bool
	Sound  bool
	Logger *logrus.Logger
}

type dragState struct {
	down           bool
	startX, startY int
}

// App runs an engine in a terminal.
type App struct {
	screen tcell.Screen
	eng    *mazewalk.Engine
	log    *logrus.Logger

	dark   bool
	chime  *Chime
	drag   dragState
	frame  frame
	width  int
	height int

	solveHandle mazewalk.CallbackHandle
	closed      bool
}

// New opens the terminal and sizes the engine to it.
func New(eng *mazewalk.Engine, opts Options) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	return NewWithScreen(screen, eng, opts)
}

// NewWithScreen is New on a caller-supplied screen, e.g. a simulation
// screen in tests. The screen is initialised here and finalised by Close.
func NewWithScreen(screen tcell.Screen, eng *mazewalk.Engine, opts Options) (*App, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	if opts.Logger == nil {
		opts.Logger = eng.Options().Logger
	}
	a := &App{
		screen: screen,
		eng:    eng,
		log:    opts.Logger,
		dark:   opts.Dark,
	}

	if opts.Sound {
		a.chime = NewChime()
		if err := a.chime.Init(); err != nil {
			// Non-fatal, the maze works without sound.
			a.log.WithError(err).Warn("audio unavailable")
		}
	}
	a.solveHandle = eng.OnSolve(func(mazewalk.SolveEvent) { a.chime.Play() })

	a.handleResize(screen.Size())
	return a, nil
}

// Dark reports whether the dark palette is active.
func (a *App) Dark() bool {
	return a.dark
}

// Run drives the frame loop until ctx is done or the user quits. Input
// events arrive from a PollEvent pump goroutine and are handled on the loop
// goroutine together with ticks, so the engine sees a single caller.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, eventBuffer)
	done := make(chan struct{})
	defer close(done)
	go a.pump(events, done)

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.eng.Tick()
			a.Draw()
		}
	}
}

// pump forwards screen events until the screen is finalised or done closes.
func (a *App) pump(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// HandleEvent applies one tcell event. It returns false when the user asked
// to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.handleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		a.handleResize(ev.Size())
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyUp:
		a.eng.Move(mazewalk.DirUp)
	case tcell.KeyDown:
		a.eng.Move(mazewalk.DirDown)
	case tcell.KeyLeft:
		a.eng.Move(mazewalk.DirLeft)
	case tcell.KeyRight:
		a.eng.Move(mazewalk.DirRight)
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 't':
			a.dark = !a.dark
		case 'n':
			a.eng.Regenerate()
		}
	}
	return true
}

// handleMouse turns a left-button drag into one move along its dominant
// axis once it spans at least one maze cell.
func (a *App) handleMouse(x, y int, buttons tcell.ButtonMask) {
	pressed := buttons&tcell.Button1 != 0
	switch {
	case pressed && !a.drag.down:
		a.drag = dragState{down: true, startX: x, startY: y}
	case !pressed && a.drag.down:
		a.drag.down = false
		dx := float64(x-a.drag.startX) / CellWidth
		dy := float64(y-a.drag.startY) / CellHeight
		if d, ok := mazewalk.ClassifySwipe(dx, dy, dragThreshold); ok {
			a.eng.Move(d)
		}
	}
}

func (a *App) handleResize(width, height int) {
	a.width, a.height = width, height
	cols, rows := GridFor(width, height)
	if a.eng.ResizeGrid(cols, rows, CellWidth) {
		a.log.WithFields(logrus.Fields{"width": width, "height": height}).Debug("terminal resized")
	}
}

// render composes the current view into the frame buffer. It reports false
// when there is nothing to draw.
func (a *App) render() bool {
	v, ok := a.eng.View()
	if !ok {
		return false
	}
	compose(&a.frame, a.width, a.height, v, mazewalk.PaletteFor(a.dark))
	return true
}

// Draw renders the current view to the screen.
func (a *App) Draw() {
	if a.closed || !a.render() {
		return
	}
	for y := 0; y < a.frame.h; y++ {
		for x := 0; x < a.frame.w; x++ {
			g := a.frame.at(x, y)
			a.screen.SetContent(x, y, g.r, nil, g.style)
		}
	}
	a.screen.Show()
}

// Close tears down the engine, the audio device and the terminal.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.solveHandle.Remove()
	a.eng.Close()
	a.chime.Close()
	a.screen.Fini()
}
