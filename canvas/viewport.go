package canvas

import "github.com/phanxgames/mazewalk"

// Viewport maps maze coordinates to screen pixels. The screen is measured
// in device pixels (logical size times the device scale factor) and the
// maze surface is centered in it.
type Viewport struct {
	// Screen is the whole drawable area in device pixels.
	Screen mazewalk.Rect
	// Surface is the maze extent, cols·cellSize × rows·cellSize scaled to
	// device pixels, centered in Screen.
	Surface mazewalk.Rect
	// Scale is the device scale factor.
	Scale float64
	// Cell is the side of one cell in device pixels.
	Cell float64
}

// NewViewport computes the viewport for a logical width × height window at
// the given scale showing a maze with layout l.
func NewViewport(width, height int, scale float64, l mazewalk.Layout) Viewport {
	if scale <= 0 {
		scale = 1
	}
	sw, sh := float64(width)*scale, float64(height)*scale
	lw, lh := l.Size()
	mw, mh := float64(lw)*scale, float64(lh)*scale
	return Viewport{
		Screen: mazewalk.Rect{Width: sw, Height: sh},
		Surface: mazewalk.Rect{
			X:      float64(int((sw - mw) / 2)),
			Y:      float64(int((sh - mh) / 2)),
			Width:  mw,
			Height: mh,
		},
		Scale: scale,
		Cell:  float64(l.CellSize) * scale,
	}
}

// Lattice returns the screen position of the grid corner at (col, row),
// where 0 ≤ col ≤ cols and 0 ≤ row ≤ rows.
func (v Viewport) Lattice(col, row int) (x, y float32) {
	return float32(v.Surface.X + float64(col)*v.Cell), float32(v.Surface.Y + float64(row)*v.Cell)
}

// CellCenter returns the screen position of the center of cell p.
func (v Viewport) CellCenter(p mazewalk.Pos) (x, y float32) {
	return float32(v.Surface.X + (float64(p.Col)+0.5)*v.Cell),
		float32(v.Surface.Y + (float64(p.Row)+0.5)*v.Cell)
}

// ScreenToCell returns the cell under screen point (sx, sy) and whether the
// point lies on the maze surface.
func (v Viewport) ScreenToCell(sx, sy float64) (mazewalk.Pos, bool) {
	if v.Cell <= 0 || !v.Surface.Contains(sx, sy) {
		return mazewalk.Pos{}, false
	}
	return mazewalk.Pos{
		Col: int((sx - v.Surface.X) / v.Cell),
		Row: int((sy - v.Surface.Y) / v.Cell),
	}, true
}
