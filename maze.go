package mazewalk

import "slices"

// Cell is one grid unit. Walls holds the sides that are still closed;
// Visited is only meaningful while a Generator is running.
type Cell struct {
	Walls   Wall
	Visited bool
}

// Has reports whether the wall on side d is present.
func (c Cell) Has(d Direction) bool {
	w := wallFor(d)
	return w != 0 && c.Walls&w != 0
}

// Maze is a Cols × Rows grid of cells stored row-major.
//
// Walls are only ever removed through carve, which clears both sides of the
// shared edge in one call, so the two cells of an edge always agree.
type Maze struct {
	Cols, Rows int
	cells      []Cell
}

// NewMaze returns a grid with every wall closed. Dimensions below 1 are
// clamped to 1.
func NewMaze(cols, rows int) *Maze {
	cols = max(cols, 1)
	rows = max(rows, 1)
	m := &Maze{Cols: cols, Rows: rows, cells: make([]Cell, cols*rows)}
	for i := range m.cells {
		m.cells[i].Walls = WallAll
	}
	return m
}

// InBounds reports whether p lies inside [0, Cols) × [0, Rows).
func (m *Maze) InBounds(p Pos) bool {
	return p.Col >= 0 && p.Col < m.Cols && p.Row >= 0 && p.Row < m.Rows
}

func (m *Maze) index(p Pos) int {
	return p.Row*m.Cols + p.Col
}

// Cell returns the cell at p. Out-of-bounds positions return a fully
// walled cell.
func (m *Maze) Cell(p Pos) Cell {
	if !m.InBounds(p) {
		return Cell{Walls: WallAll}
	}
	return m.cells[m.index(p)]
}

// HasWall reports whether the wall on side d of p is present. Sides of
// out-of-bounds cells are always walled.
func (m *Maze) HasWall(p Pos, d Direction) bool {
	return m.Cell(p).Has(d)
}

// Center returns the geometric center cell (⌊Cols/2⌋, ⌊Rows/2⌋).
func (m *Maze) Center() Pos {
	return Pos{Col: m.Cols / 2, Row: m.Rows / 2}
}

// carve removes the wall between p and its neighbour in direction d on both
// sides. It returns false and changes nothing when the neighbour is out of
// bounds. Carving an already open edge is a no-op.
func (m *Maze) carve(p Pos, d Direction) bool {
	n := p.Add(d)
	if !d.Valid() || !m.InBounds(p) || !m.InBounds(n) {
		return false
	}
	m.cells[m.index(p)].Walls &^= wallFor(d)
	m.cells[m.index(n)].Walls &^= wallFor(d.Opposite())
	return true
}

// Step is the movement validator. It returns the cell reached by moving one
// step from `from` in direction d, or a non-zero Reject describing why the
// move is illegal. The wall check runs before the bounds check.
func (m *Maze) Step(from Pos, d Direction) (Pos, Reject) {
	if !d.Valid() {
		return from, RejectDirection
	}
	if m.HasWall(from, d) {
		return from, RejectWall
	}
	to := from.Add(d)
	if !m.InBounds(to) {
		return from, RejectBounds
	}
	return to, RejectNone
}

// OpenEdges counts the edges between adjacent cells whose shared wall is
// absent. Each edge is counted once.
func (m *Maze) OpenEdges() int {
	n := 0
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			c := m.cells[m.index(Pos{col, row})]
			if col+1 < m.Cols && c.Walls&WallRight == 0 {
				n++
			}
			if row+1 < m.Rows && c.Walls&WallBottom == 0 {
				n++
			}
		}
	}
	return n
}

// Reachable returns the number of cells reachable from start through open
// walls, start included.
func (m *Maze) Reachable(start Pos) int {
	if !m.InBounds(start) {
		return 0
	}
	seen := make([]bool, len(m.cells))
	queue := []Pos{start}
	seen[m.index(start)] = true
	count := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		count++
		for _, d := range Directions {
			n, rej := m.Step(p, d)
			if rej != RejectNone || seen[m.index(n)] {
				continue
			}
			seen[m.index(n)] = true
			queue = append(queue, n)
		}
	}
	return count
}

// Connected reports whether every cell is reachable from (0, 0).
func (m *Maze) Connected() bool {
	return m.Reachable(Pos{}) == len(m.cells)
}

// Clone returns a deep copy of m.
func (m *Maze) Clone() *Maze {
	c := &Maze{Cols: m.Cols, Rows: m.Rows, cells: make([]Cell, len(m.cells))}
	copy(c.cells, m.cells)
	return c
}

// SameWalls reports whether m and o have identical dimensions and walls.
// Visited flags are ignored.
func (m *Maze) SameWalls(o *Maze) bool {
	if m.Cols != o.Cols || m.Rows != o.Rows {
		return false
	}
	for i := range m.cells {
		if m.cells[i].Walls != o.cells[i].Walls {
			return false
		}
	}
	return true
}

// Path returns the directions of a shortest open route from a to b, or nil
// when either end is out of bounds or a == b.
func (m *Maze) Path(a, b Pos) []Direction {
	if !m.InBounds(a) || !m.InBounds(b) || a == b {
		return nil
	}
	prev := make([]int, len(m.cells))
	for i := range prev {
		prev[i] = -1
	}
	via := make([]Direction, len(m.cells))
	prev[m.index(a)] = m.index(a)

	queue := []Pos{a}
	for len(queue) > 0 && prev[m.index(b)] < 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			n, rej := m.Step(p, d)
			if rej != RejectNone || prev[m.index(n)] >= 0 {
				continue
			}
			prev[m.index(n)] = m.index(p)
			via[m.index(n)] = d
			queue = append(queue, n)
		}
	}
	if prev[m.index(b)] < 0 {
		return nil
	}

	var path []Direction
	for i := m.index(b); i != m.index(a); i = prev[i] {
		path = append(path, via[i])
	}
	slices.Reverse(path)
	return path
}
