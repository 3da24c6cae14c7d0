package canvas

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Fullscreen opens the maze over the whole monitor.
	Fullscreen bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return g.scene.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout reports the logical size to the scene and renders at device
// resolution so lines stay crisp on high-DPI displays.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	g.scene.Resize(outsideWidth, outsideHeight, scale)
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}

// Run opens a window and blocks until it is closed, ESC is pressed or the
// scene's update func fails. The scene is closed on return.
func Run(scene *Scene, cfg RunConfig) error {
	defer scene.Close()

	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)

	return ebiten.RunGame(&game{scene: scene})
}
