package mazewalk

// Layout is the grid shape and cell size for a viewport.
type Layout struct {
	Cols, Rows int
	// CellSize is the side of one cell in logical pixels (canvas) or the
	// cell width in characters (terminal).
	CellSize int
}

// Size returns the pixel extent of the maze surface.
func (l Layout) Size() (w, h int) {
	return l.Cols * l.CellSize, l.Rows * l.CellSize
}

// LayoutConfig bounds the grid chosen for a viewport. The thresholds are
// tuning, not part of the maze contract: any bounds yield valid mazes.
type LayoutConfig struct {
	MinCols, MaxCols int
	MinRows, MaxRows int
	// The target cell size is width/CellDivisor clamped to
	// [MinCellSize, MaxCellSize].
	MinCellSize, MaxCellSize int
	CellDivisor              int
}

// DefaultLayoutConfig favours fewer, larger cells so the maze stays easy.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		MinCols: 7, MaxCols: 15,
		MinRows: 5, MaxRows: 11,
		MinCellSize: 40, MaxCellSize: 70,
		CellDivisor: 12,
	}
}

// normalized repairs inverted or non-positive bounds.
func (c LayoutConfig) normalized() LayoutConfig {
	c.MinCols = max(c.MinCols, 1)
	c.MaxCols = max(c.MaxCols, c.MinCols)
	c.MinRows = max(c.MinRows, 1)
	c.MaxRows = max(c.MaxRows, c.MinRows)
	c.MinCellSize = max(c.MinCellSize, 1)
	c.MaxCellSize = max(c.MaxCellSize, c.MinCellSize)
	c.CellDivisor = max(c.CellDivisor, 1)
	return c
}

// Fit computes the layout for a width × height viewport in logical pixels.
// Tiny or zero viewports clamp to the minimum grid with a cell size of at
// least 1 rather than failing.
func (c LayoutConfig) Fit(width, height int) Layout {
	c = c.normalized()
	width, height = max(width, 0), max(height, 0)

	target := clampInt(width/c.CellDivisor, c.MinCellSize, c.MaxCellSize)
	cols, rows := c.FitGrid(width/target, height/target)

	cell := min(width/cols, height/rows)
	return Layout{Cols: cols, Rows: rows, CellSize: max(cell, 1)}
}

// FitGrid clamps a raw column and row count to the configured bounds and
// forces both odd so a true center cell exists.
func (c LayoutConfig) FitGrid(cols, rows int) (int, int) {
	c = c.normalized()
	return forceOdd(clampInt(cols, c.MinCols, c.MaxCols)),
		forceOdd(clampInt(rows, c.MinRows, c.MaxRows))
}

func forceOdd(n int) int {
	if n%2 == 0 {
		n--
	}
	return max(n, 1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
