package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/mazewalk"
)

// Lattice geometry. Each maze cell spans CellWidth columns and CellHeight
// rows of characters; a cols × rows maze occupies
// (CellWidth·cols+1) × (CellHeight·rows+1) characters.
const (
	CellWidth  = 4
	CellHeight = 2
	hintRows   = 1
)

const (
	runeDot    = '·'
	runeHWall  = '─'
	runeVWall  = '│'
	runeTrail  = '•'
	runePlayer = '●'
)

// GridFor returns the largest column and row counts whose lattice fits a
// width × height terminal with one line left for the hint.
func GridFor(width, height int) (cols, rows int) {
	return max((width-1)/CellWidth, 0), max((height-1-hintRows)/CellHeight, 0)
}

// LatticeSize returns the character extent of a layout.
func LatticeSize(l mazewalk.Layout) (w, h int) {
	return CellWidth*l.Cols + 1, CellHeight*l.Rows + 1
}

type glyph struct {
	r     rune
	style tcell.Style
}

// frame is an off-screen character buffer composed once per tick and then
// copied to the screen.
type frame struct {
	w, h  int
	cells []glyph
	// ox, oy is the lattice origin.
	ox, oy int
}

func (f *frame) reset(w, h int, st tcell.Style) {
	f.w, f.h = max(w, 0), max(h, 0)
	n := f.w * f.h
	if cap(f.cells) < n {
		f.cells = make([]glyph, n)
	}
	f.cells = f.cells[:n]
	for i := range f.cells {
		f.cells[i] = glyph{r: ' ', style: st}
	}
}

func (f *frame) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.w && y < f.h
}

func (f *frame) set(x, y int, r rune, st tcell.Style) {
	if f.inside(x, y) {
		f.cells[y*f.w+x] = glyph{r: r, style: st}
	}
}

// setBackground keeps the rune and foreground and replaces the background.
func (f *frame) setBackground(x, y int, bg tcell.Color) {
	if f.inside(x, y) {
		g := &f.cells[y*f.w+x]
		g.style = g.style.Background(bg)
	}
}

func (f *frame) at(x, y int) glyph {
	if !f.inside(x, y) {
		return glyph{}
	}
	return f.cells[y*f.w+x]
}

// center returns the character position of the center of cell p.
func (f *frame) center(p mazewalk.Pos) (x, y int) {
	return f.ox + CellWidth*p.Col + CellWidth/2, f.oy + CellHeight*p.Row + CellHeight/2
}

func rgb(c mazewalk.Color) tcell.Color {
	r, g, b, _ := c.RGBA255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// compose draws one frame of v into f, which is sized w × h. Translucent
// palette colors are composited over the background since a terminal cell
// has no alpha. Layering matches the canvas: dots, walls, trail, player
// glow and marker, hint, flash.
func compose(f *frame, w, h int, v mazewalk.View, pal mazewalk.Palette) {
	bg := pal.Background
	bgc := rgb(bg)
	base := tcell.StyleDefault.Background(bgc)
	fg := func(c mazewalk.Color) tcell.Style {
		return base.Foreground(rgb(c.Over(bg)))
	}
	f.reset(w, h, base)

	m := v.Maze
	lw, lh := LatticeSize(v.Layout)
	f.ox = max((w-lw)/2, 0)
	f.oy = max((h-hintRows-lh)/2, 0)

	dot := fg(pal.Dot)
	for r := 0; r <= m.Rows; r++ {
		for c := 0; c <= m.Cols; c++ {
			f.set(f.ox+CellWidth*c, f.oy+CellHeight*r, runeDot, dot)
		}
	}

	wall := fg(pal.Wall)
	hwall := func(x, y int) {
		for i := 1; i < CellWidth; i++ {
			f.set(x+i, y, runeHWall, wall)
		}
	}
	vwall := func(x, y int) {
		for i := 1; i < CellHeight; i++ {
			f.set(x, y+i, runeVWall, wall)
		}
	}
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			p := mazewalk.Pos{Col: c, Row: r}
			x, y := f.ox+CellWidth*c, f.oy+CellHeight*r
			if m.HasWall(p, mazewalk.DirUp) {
				hwall(x, y)
			}
			if m.HasWall(p, mazewalk.DirLeft) {
				vwall(x, y)
			}
			if c == m.Cols-1 && m.HasWall(p, mazewalk.DirRight) {
				vwall(x+CellWidth, y)
			}
			if r == m.Rows-1 && m.HasWall(p, mazewalk.DirDown) {
				hwall(x, y+CellHeight)
			}
		}
	}

	if v.Trail != nil {
		v.Trail.Each(v.Now, v.FadeWindow, func(e mazewalk.TrailEntry, fade float64) {
			x, y := f.center(e.Pos)
			f.set(x, y, runeTrail, fg(pal.Trail.Scale(fade)))
		})
	}

	if !v.Solved {
		x, y := f.center(v.Player)
		glow := rgb(pal.PlayerGlow.Over(bg))
		for dx := -1; dx <= 1; dx++ {
			f.setBackground(x+dx, y, glow)
		}
		f.set(x, y, runePlayer, base.Foreground(rgb(pal.Player.Over(bg))).Background(glow))
	}

	if !v.Moved {
		hint := []rune(mazewalk.HintText)
		y := f.oy + lh
		x := max((w-len(hint))/2, 0)
		st := fg(pal.Hint)
		for i, r := range hint {
			f.set(x+i, y, r, st)
		}
	}

	if v.Flash > 0 {
		flash := rgb(pal.Flash.Scale(v.Flash).Over(bg))
		for y := 0; y < f.h; y++ {
			for x := 0; x < f.w; x++ {
				f.setBackground(x, y, flash)
			}
		}
	}
}
