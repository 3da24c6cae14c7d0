package mazewalk

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a frontend converts it for drawing.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is full-opacity white.
var ColorWhite = Color{1, 1, 1, 1}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Scale returns c with its alpha multiplied by f.
func (c Color) Scale(f float64) Color {
	c.A *= f
	return c
}

// Over composites c over an opaque background and returns the opaque result.
// Terminal frontends use it where the surface has no alpha channel.
func (c Color) Over(bg Color) Color {
	a := clamp01(c.A)
	return Color{
		R: c.R*a + bg.R*(1-a),
		G: c.G*a + bg.G*(1-a),
		B: c.B*a + bg.B*(1-a),
		A: 1,
	}
}

// RGBA255 returns the straight-alpha components scaled to [0, 255].
func (c Color) RGBA255() (r, g, b, a uint8) {
	return uint8(clamp01(c.R) * 255), uint8(clamp01(c.G) * 255),
		uint8(clamp01(c.B) * 255), uint8(clamp01(c.A) * 255)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// rgb255 builds a Color from 8-bit channel values and a [0, 1] alpha.
func rgb255(r, g, b uint8, a float64) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: a}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Pos is a grid coordinate. Col grows rightward, Row grows downward.
type Pos struct {
	Col, Row int
}

// Add returns p offset by one step in direction d.
func (p Pos) Add(d Direction) Pos {
	dc, dr := d.Delta()
	return Pos{Col: p.Col + dc, Row: p.Row + dr}
}

// Direction is a unit orthogonal move.
type Direction uint8

const (
	DirNone  Direction = iota // no movement; always rejected
	DirUp                     // row - 1
	DirDown                   // row + 1
	DirLeft                   // col - 1
	DirRight                  // col + 1
)

// Directions lists the four legal move directions.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the column and row offsets of d.
func (d Direction) Delta() (dcol, drow int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the direction pointing back the way d came.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return DirNone
}

// Valid reports whether d is one of the four move directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "none"
}

// ParseDirection maps "up", "down", "left" and "right" to a Direction.
// Anything else yields DirNone.
func ParseDirection(s string) Direction {
	switch s {
	case "up":
		return DirUp
	case "down":
		return DirDown
	case "left":
		return DirLeft
	case "right":
		return DirRight
	}
	return DirNone
}

// Wall is a bitmask of the four sides of a cell.
type Wall uint8

const (
	WallTop Wall = 1 << iota
	WallRight
	WallBottom
	WallLeft

	WallAll = WallTop | WallRight | WallBottom | WallLeft
)

// wallFor returns the wall bit on side d of a cell.
func wallFor(d Direction) Wall {
	switch d {
	case DirUp:
		return WallTop
	case DirDown:
		return WallBottom
	case DirLeft:
		return WallLeft
	case DirRight:
		return WallRight
	}
	return 0
}
