package mazewalk

// ClearCenter opens the 3×3 block of cells around m.Center(), clamped to the
// grid, by removing every wall shared by two cells inside the block. The
// block becomes an open pocket for a focal element drawn over the maze.
//
// Only walls are removed, so connectivity is preserved; cycles may appear.
// Calling it again on the same maze changes nothing.
func ClearCenter(m *Maze) {
	c := m.Center()
	minCol, maxCol := max(0, c.Col-1), min(m.Cols-1, c.Col+1)
	minRow, maxRow := max(0, c.Row-1), min(m.Rows-1, c.Row+1)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			p := Pos{Col: col, Row: row}
			if col < maxCol {
				m.carve(p, DirRight)
			}
			if row < maxRow {
				m.carve(p, DirDown)
			}
		}
	}
}
