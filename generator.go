package mazewalk

import "math/rand/v2"

// Rand is the randomness source used by generation and destination picking.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// orDefault returns the package-level math/rand/v2 source when r is nil.
func orDefault(r Rand) Rand {
	if r == nil {
		return globalRand{}
	}
	return r
}

// Generator builds a perfect maze with a randomized depth-first search
// (recursive backtracker) over an explicit stack. Each call to Step performs
// one push or one pop, so callers can inspect or visualize the search.
type Generator struct {
	maze  *Maze
	rng   Rand
	stack []Pos

	// candidates is reused between steps.
	candidates []Direction
}

// NewGenerator prepares a generator for a cols × rows grid. The start cell
// (0, 0) is marked visited and pushed.
func NewGenerator(cols, rows int, rng Rand) *Generator {
	g := &Generator{
		maze:       NewMaze(cols, rows),
		rng:        orDefault(rng),
		candidates: make([]Direction, 0, 4),
	}
	g.stack = make([]Pos, 0, g.maze.Cols*g.maze.Rows)
	g.maze.cells[0].Visited = true
	g.stack = append(g.stack, Pos{})
	return g
}

// neighbourOrder is the order unvisited neighbours are collected in. The
// random pick indexes into this order, so changing it changes every seeded
// layout.
var neighbourOrder = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Step advances the search by one push or pop. It returns false once the
// stack is empty and the maze is complete.
func (g *Generator) Step() bool {
	if len(g.stack) == 0 {
		return false
	}
	top := g.stack[len(g.stack)-1]

	g.candidates = g.candidates[:0]
	for _, d := range neighbourOrder {
		n := top.Add(d)
		if g.maze.InBounds(n) && !g.maze.cells[g.maze.index(n)].Visited {
			g.candidates = append(g.candidates, d)
		}
	}

	if len(g.candidates) == 0 {
		g.stack = g.stack[:len(g.stack)-1]
		return len(g.stack) > 0
	}

	d := g.candidates[g.rng.IntN(len(g.candidates))]
	n := top.Add(d)
	g.maze.carve(top, d)
	g.maze.cells[g.maze.index(n)].Visited = true
	g.stack = append(g.stack, n)
	return true
}

// Done reports whether generation has finished.
func (g *Generator) Done() bool {
	return len(g.stack) == 0
}

// Stack returns the current search path from the start cell to the cell
// being extended. The returned slice MUST NOT be mutated.
func (g *Generator) Stack() []Pos {
	return g.stack
}

// Maze returns the maze under construction.
func (g *Generator) Maze() *Maze {
	return g.maze
}

// Generate builds a complete perfect maze: every cell visited, fully
// connected, and exactly cols·rows − 1 open edges.
func Generate(cols, rows int, rng Rand) *Maze {
	g := NewGenerator(cols, rows, rng)
	for g.Step() {
	}
	return g.maze
}
