package mazewalk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mazeSizes = [][2]int{
	{1, 1}, {1, 2}, {2, 1}, {1, 9}, {9, 1}, {2, 2}, {3, 3}, {7, 5}, {15, 11}, {4, 13},
}

func assertSymmetric(t *testing.T, m *Maze) {
	t.Helper()
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			p := Pos{col, row}
			for _, d := range Directions {
				n := p.Add(d)
				if !m.InBounds(n) {
					assert.True(t, m.HasWall(p, d), "outer wall %v of %v removed", d, p)
					continue
				}
				assert.Equal(t, m.HasWall(p, d), m.HasWall(n, d.Opposite()),
					"asymmetric edge %v %v", p, d)
			}
		}
	}
}

func TestGenerateSpanningTree(t *testing.T) {
	for _, size := range mazeSizes {
		for seed := uint64(1); seed <= 20; seed++ {
			cols, rows := size[0], size[1]
			t.Run(fmt.Sprintf("%dx%d/%d", cols, rows, seed), func(t *testing.T) {
				m := Generate(cols, rows, seeded(seed))
				require.Equal(t, cols, m.Cols)
				require.Equal(t, rows, m.Rows)
				assert.Equal(t, cols*rows-1, m.OpenEdges())
				assert.True(t, m.Connected())
				for i, c := range m.cells {
					assert.True(t, c.Visited, "cell %d not visited", i)
				}
				assertSymmetric(t, m)
			})
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(15, 11, seeded(42))
	b := Generate(15, 11, seeded(42))
	assert.True(t, a.SameWalls(b))
}

func TestGenerateExactLayout(t *testing.T) {
	// Always picking the first candidate (Up, Down, Left, Right order) walks
	// (0,0) -> (0,1) -> (1,1) -> (1,0).
	m := Generate(2, 2, zeroRand{})

	assert.Equal(t, WallTop|WallRight|WallLeft, m.Cell(Pos{0, 0}).Walls)
	assert.Equal(t, WallTop|WallRight|WallLeft, m.Cell(Pos{1, 0}).Walls)
	assert.Equal(t, WallBottom|WallLeft, m.Cell(Pos{0, 1}).Walls)
	assert.Equal(t, WallRight|WallBottom, m.Cell(Pos{1, 1}).Walls)
}

func TestGeneratorSteps(t *testing.T) {
	g := NewGenerator(3, 3, seeded(7))
	require.Equal(t, []Pos{{0, 0}}, g.Stack())

	steps := 0
	for g.Step() {
		steps++
		require.Less(t, steps, 100)
	}
	assert.True(t, g.Done())
	assert.Empty(t, g.Stack())
	assert.False(t, g.Step())
	assert.Equal(t, 8, g.Maze().OpenEdges())
}

func TestNewMazeClampsDimensions(t *testing.T) {
	m := NewMaze(0, -3)
	assert.Equal(t, 1, m.Cols)
	assert.Equal(t, 1, m.Rows)
	assert.Equal(t, WallAll, m.Cell(Pos{}).Walls)
}

func TestCellOutOfBounds(t *testing.T) {
	m := Generate(3, 3, seeded(1))
	assert.Equal(t, WallAll, m.Cell(Pos{-1, 0}).Walls)
	assert.True(t, m.HasWall(Pos{5, 5}, DirUp))
}

func TestCarveRefusesOutOfBounds(t *testing.T) {
	m := NewMaze(2, 2)
	assert.False(t, m.carve(Pos{0, 0}, DirLeft))
	assert.False(t, m.carve(Pos{0, 0}, DirNone))
	assert.Equal(t, WallAll, m.Cell(Pos{}).Walls)

	assert.True(t, m.carve(Pos{0, 0}, DirRight))
	assert.False(t, m.HasWall(Pos{0, 0}, DirRight))
	assert.False(t, m.HasWall(Pos{1, 0}, DirLeft))
}

func TestStepRejectOrder(t *testing.T) {
	m := NewMaze(2, 1)
	m.carve(Pos{0, 0}, DirRight)

	to, rej := m.Step(Pos{0, 0}, DirRight)
	assert.Equal(t, RejectNone, rej)
	assert.Equal(t, Pos{1, 0}, to)

	_, rej = m.Step(Pos{0, 0}, DirUp)
	assert.Equal(t, RejectWall, rej, "closed outer wall is reported as a wall")

	_, rej = m.Step(Pos{0, 0}, DirNone)
	assert.Equal(t, RejectDirection, rej)

	// An open side on the grid edge still cannot leave the grid.
	m.cells[0].Walls &^= WallTop
	to, rej = m.Step(Pos{0, 0}, DirUp)
	assert.Equal(t, RejectBounds, rej)
	assert.Equal(t, Pos{0, 0}, to)
}

func TestClearCenterOpensPocket(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		m := Generate(7, 5, seeded(seed))
		ClearCenter(m)

		c := m.Center()
		require.Equal(t, Pos{3, 2}, c)
		for row := c.Row - 1; row <= c.Row+1; row++ {
			for col := c.Col - 1; col <= c.Col+1; col++ {
				p := Pos{col, row}
				if col < c.Col+1 {
					assert.False(t, m.HasWall(p, DirRight), "%v right", p)
				}
				if row < c.Row+1 {
					assert.False(t, m.HasWall(p, DirDown), "%v down", p)
				}
			}
		}
		assert.True(t, m.Connected())
		assert.GreaterOrEqual(t, m.OpenEdges(), 7*5-1)
		assertSymmetric(t, m)
	}
}

func TestClearCenterIdempotent(t *testing.T) {
	m := Generate(9, 7, seeded(3))
	ClearCenter(m)
	once := m.Clone()
	ClearCenter(m)
	assert.True(t, m.SameWalls(once))
}

func TestClearCenterClampsAtEdges(t *testing.T) {
	tests := []struct {
		cols, rows int
		edges      int
	}{
		{1, 1, 0},
		{1, 2, 1},
		{2, 2, 4},
		{3, 3, 12},
		{1, 5, 2},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d", tt.cols, tt.rows), func(t *testing.T) {
			m := NewMaze(tt.cols, tt.rows)
			ClearCenter(m)
			// From a fully walled grid only the pocket's internal edges open.
			assert.Equal(t, tt.edges, m.OpenEdges())
			assertSymmetric(t, m)

			g := Generate(tt.cols, tt.rows, seeded(5))
			ClearCenter(g)
			assert.True(t, g.Connected())
		})
	}
}

func TestPathFollowsOpenEdges(t *testing.T) {
	m := Generate(15, 11, seeded(4))
	ClearCenter(m)
	start, goal := Pos{0, 10}, m.Center()

	path := m.Path(start, goal)
	require.NotEmpty(t, path)
	p := start
	for _, d := range path {
		var rej Reject
		p, rej = m.Step(p, d)
		require.Equal(t, RejectNone, rej)
	}
	assert.Equal(t, goal, p)

	assert.Nil(t, m.Path(goal, goal))
	assert.Nil(t, m.Path(Pos{-1, 0}, goal))
	assert.Nil(t, NewMaze(2, 2).Path(Pos{0, 0}, Pos{1, 1}), "no route through a closed grid")
}
