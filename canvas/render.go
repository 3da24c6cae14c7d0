package canvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/mazewalk"
)

// CommandType identifies the kind of a RenderCommand.
type CommandType uint8

const (
	CommandDot  CommandType = iota // filled circle at (X0, Y0)
	CommandLine                    // stroked segment (X0, Y0)-(X1, Y1)
	CommandGlow                    // radial halo fading from Color.A at the center to 0
	CommandRect                    // filled rectangle with corners (X0, Y0) and (X1, Y1)
	CommandText                    // debug-font text with its top-left at (X0, Y0)
)

// RenderCommand is a single draw operation in device pixels. The render
// loop first emits the whole frame as commands, then submits them.
type RenderCommand struct {
	Type           CommandType
	X0, Y0, X1, Y1 float32
	// Radius is the circle radius for dots and glows, and the stroke width
	// for lines.
	Radius float32
	// Scale magnifies text.
	Scale float32
	Color mazewalk.Color
	Text  string
}

const (
	dotRadius     = 1.0
	wallWidth     = 1.0
	trailRadius   = 0.15 // of a cell
	glowRadius    = 0.5
	playerRadius  = 0.18
	glowSteps     = 8
	debugGlyphW   = 6
	debugGlyphH   = 16
	hintBottom    = 24.0 // logical pixels between the hint and the window bottom
	hintBottomBig = 40.0
	hintBigWidth  = 768 // logical width from which hintBottomBig applies
)

// emitCommands appends the draw commands for one frame to buf. It only
// reads v and allocates nothing beyond buf growth.
//
// Order is back to front: grid dots, walls, trail, player glow and dot, the
// usage hint, and the win flash over everything.
func emitCommands(buf []RenderCommand, v mazewalk.View, vp Viewport, pal mazewalk.Palette) []RenderCommand {
	m := v.Maze
	cols, rows := m.Cols, m.Rows
	scale := float32(vp.Scale)
	cell := float32(vp.Cell)

	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			x, y := vp.Lattice(c, r)
			buf = append(buf, RenderCommand{Type: CommandDot, X0: x, Y0: y, Radius: dotRadius * scale, Color: pal.Dot})
		}
	}

	// Each shared edge is drawn once: top and left of every cell, plus the
	// right and bottom borders of the grid.
	wall := func(x0, y0, x1, y1 float32) {
		buf = append(buf, RenderCommand{Type: CommandLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Radius: wallWidth * scale, Color: pal.Wall})
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := mazewalk.Pos{Col: c, Row: r}
			x0, y0 := vp.Lattice(c, r)
			x1, y1 := vp.Lattice(c+1, r+1)
			if m.HasWall(p, mazewalk.DirUp) {
				wall(x0, y0, x1, y0)
			}
			if m.HasWall(p, mazewalk.DirLeft) {
				wall(x0, y0, x0, y1)
			}
			if c == cols-1 && m.HasWall(p, mazewalk.DirRight) {
				wall(x1, y0, x1, y1)
			}
			if r == rows-1 && m.HasWall(p, mazewalk.DirDown) {
				wall(x0, y1, x1, y1)
			}
		}
	}

	if v.Trail != nil {
		v.Trail.Each(v.Now, v.FadeWindow, func(e mazewalk.TrailEntry, fade float64) {
			x, y := vp.CellCenter(e.Pos)
			buf = append(buf, RenderCommand{Type: CommandDot, X0: x, Y0: y, Radius: cell * trailRadius, Color: pal.Trail.Scale(fade)})
		})
	}

	if !v.Solved {
		x, y := vp.CellCenter(v.Player)
		buf = append(buf,
			RenderCommand{Type: CommandGlow, X0: x, Y0: y, Radius: cell * glowRadius, Color: pal.PlayerGlow},
			RenderCommand{Type: CommandDot, X0: x, Y0: y, Radius: cell * playerRadius, Color: pal.Player},
		)
	}

	if !v.Moved {
		buf = append(buf, hintCommand(vp, pal))
	}

	if v.Flash > 0 {
		buf = append(buf, RenderCommand{
			Type: CommandRect,
			X1:   float32(vp.Screen.Width), Y1: float32(vp.Screen.Height),
			Color: pal.Flash.Scale(v.Flash),
		})
	}
	return buf
}

// hintCommand centers the usage hint horizontally near the window bottom.
func hintCommand(vp Viewport, pal mazewalk.Palette) RenderCommand {
	scale := vp.Scale
	bottom := hintBottom
	if vp.Screen.Width/scale >= hintBigWidth {
		bottom = hintBottomBig
	}
	w := float64(len(mazewalk.HintText)*debugGlyphW) * scale
	return RenderCommand{
		Type:  CommandText,
		X0:    float32((vp.Screen.Width - w) / 2),
		Y0:    float32(vp.Screen.Height - (bottom+debugGlyphH)*scale),
		Scale: float32(scale),
		Color: pal.Hint,
		Text:  mazewalk.HintText,
	}
}

// submit draws the emitted commands onto dst.
func (s *Scene) submit(dst *ebiten.Image, cmds []RenderCommand) {
	for i := range cmds {
		cmd := &cmds[i]
		switch cmd.Type {
		case CommandDot:
			vector.DrawFilledCircle(dst, cmd.X0, cmd.Y0, cmd.Radius, toNRGBA(cmd.Color), true)
		case CommandLine:
			vector.StrokeLine(dst, cmd.X0, cmd.Y0, cmd.X1, cmd.Y1, cmd.Radius, toNRGBA(cmd.Color), true)
		case CommandGlow:
			drawGlow(dst, cmd)
		case CommandRect:
			vector.DrawFilledRect(dst, cmd.X0, cmd.Y0, cmd.X1-cmd.X0, cmd.Y1-cmd.Y0, toNRGBA(cmd.Color), false)
		case CommandText:
			s.drawText(dst, cmd)
		}
	}
}

// drawGlow approximates a radial gradient with stacked translucent discs.
// The stack is glowSteps deep at the center and one disc deep at the rim.
func drawGlow(dst *ebiten.Image, cmd *RenderCommand) {
	step := cmd.Color.WithAlpha(cmd.Color.A / glowSteps)
	clr := toNRGBA(step)
	for i := 0; i < glowSteps; i++ {
		r := cmd.Radius * float32(glowSteps-i) / glowSteps
		vector.DrawFilledCircle(dst, cmd.X0, cmd.Y0, r, clr, true)
	}
}

// drawText renders debug-font text through a cached offscreen image so the
// text can be tinted and scaled.
func (s *Scene) drawText(dst *ebiten.Image, cmd *RenderCommand) {
	if s.textImg == nil || s.textCached != cmd.Text {
		if s.textImg != nil {
			s.textImg.Deallocate()
		}
		s.textImg = ebiten.NewImage(len(cmd.Text)*debugGlyphW, debugGlyphH)
		ebitenutil.DebugPrint(s.textImg, cmd.Text)
		s.textCached = cmd.Text
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(cmd.Scale), float64(cmd.Scale))
	op.GeoM.Translate(float64(cmd.X0), float64(cmd.Y0))
	op.ColorScale.ScaleWithColor(toNRGBA(cmd.Color))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(s.textImg, &op)
}

func toNRGBA(c mazewalk.Color) color.NRGBA {
	r, g, b, a := c.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
