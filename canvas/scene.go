package canvas

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/phanxgames/mazewalk"
)

const (
	defaultCommandCap    = 1024
	defaultScreenshotDir = "screenshots"
)

// Config configures a Scene. Zero durations disable key repeat and a zero
// SwipeThreshold uses mazewalk.DefaultSwipeThreshold.
type Config struct {
	Dark              bool
	SwipeThreshold    float64
	KeyRepeatDelay    time.Duration
	KeyRepeatInterval time.Duration
	ShowFPS           bool
	Debug             bool
	ScreenshotDir     string
	Logger            *logrus.Logger
}

// ConfigFrom picks the frontend settings out of the host configuration.
func ConfigFrom(c mazewalk.Config) Config {
	return Config{
		Dark:              c.Dark,
		SwipeThreshold:    c.SwipeThreshold,
		KeyRepeatDelay:    c.KeyRepeatDelay,
		KeyRepeatInterval: c.KeyRepeatInterval,
		ShowFPS:           c.ShowFPS,
		Debug:             c.Debug,
	}
}

// Scene draws an engine's maze with ebiten and feeds it keyboard, mouse and
// touch input. It implements the Update/Draw half of ebiten.Game; Run
// supplies Layout.
type Scene struct {
	eng *mazewalk.Engine
	log *logrus.Logger
	cfg Config

	// Dark selects the dark palette. The T key toggles it.
	Dark bool
	// ScreenshotDir receives PNGs queued with Screenshot.
	ScreenshotDir string

	debug bool
	frame uint64

	width, height int
	scale         float64

	updateFunc func() error

	// Render state
	commands   []RenderCommand
	textImg    *ebiten.Image
	textCached string
	fps        fpsOverlay

	// Input state
	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticPointerEvent
	keyQueue     []mazewalk.Direction

	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene creates a scene over eng.
func NewScene(eng *mazewalk.Engine, cfg Config) *Scene {
	if cfg.Logger == nil {
		cfg.Logger = eng.Options().Logger
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = defaultScreenshotDir
	}
	if cfg.SwipeThreshold <= 0 {
		cfg.SwipeThreshold = mazewalk.DefaultSwipeThreshold
	}
	return &Scene{
		eng:           eng,
		log:           cfg.Logger,
		cfg:           cfg,
		Dark:          cfg.Dark,
		ScreenshotDir: cfg.ScreenshotDir,
		debug:         cfg.Debug,
		scale:         1,
		commands:      make([]RenderCommand, 0, defaultCommandCap),
	}
}

// Engine returns the engine the scene drives.
func (s *Scene) Engine() *mazewalk.Engine {
	return s.eng
}

// SetUpdateFunc sets a callback run at the end of every Update. A non-nil
// error stops the game loop.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDebugMode enables or disables per-frame timing stats at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Resize forwards a logical viewport change to the engine. A changed size
// regenerates the maze.
func (s *Scene) Resize(width, height int, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.width, s.height, s.scale = width, height, scale
	s.eng.Resize(width, height, scale)
}

// Update processes input and advances the engine by one frame. It returns
// ebiten.Termination once the engine is closed.
func (s *Scene) Update() error {
	if s.eng.Closed() {
		return ebiten.Termination
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.eng.Tick()
	s.frame++
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Draw renders the current frame onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	pal := mazewalk.PaletteFor(s.Dark)
	screen.Fill(toNRGBA(pal.Background))

	v, ok := s.eng.View()
	if !ok {
		return
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	vp := NewViewport(s.width, s.height, s.scale, v.Layout)
	s.commands = emitCommands(s.commands[:0], v, vp, pal)

	if s.debug {
		stats.emitTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submit(screen, s.commands)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.drawCallCount = countDrawCalls(s.commands)
		s.debugLog(stats)
	}

	if s.cfg.ShowFPS {
		s.fps.draw(screen, s.scale)
	}
	s.flushScreenshots(screen)
}

// Close closes the engine and releases GPU images.
func (s *Scene) Close() {
	s.eng.Close()
	s.fps.dispose()
	if s.textImg != nil {
		s.textImg.Deallocate()
		s.textImg = nil
	}
}
