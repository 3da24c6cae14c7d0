package canvas

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefreshTicks is how often the overlay text is redrawn.
const fpsRefreshTicks = 30

// fpsOverlay shows the current FPS and TPS in the top-left corner.
type fpsOverlay struct {
	img   *ebiten.Image
	ticks int
}

func (o *fpsOverlay) draw(dst *ebiten.Image, scale float64) {
	if o.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		o.img = ebiten.NewImage(100, 32)
		o.ticks = 0
	}
	if o.ticks%fpsRefreshTicks == 0 {
		o.img.Clear()
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	o.ticks++

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(scale, scale)
	dst.DrawImage(o.img, &op)
}

func (o *fpsOverlay) dispose() {
	if o.img != nil {
		o.img.Deallocate()
		o.img = nil
	}
}
