package mazewalk

import "math"

// DefaultSwipeThreshold is the minimum displacement, in logical pixels, along
// the dominant axis for a drag to count as a swipe.
const DefaultSwipeThreshold = 20.0

// Reject explains why a move request changed nothing.
type Reject uint8

const (
	RejectNone      Reject = iota // move accepted
	RejectSolved                  // session already solved
	RejectWall                    // wall present on that side
	RejectBounds                  // target outside the grid
	RejectDirection               // not a unit orthogonal direction
	RejectNoSession               // no maze generated yet
)

func (r Reject) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectSolved:
		return "solved"
	case RejectWall:
		return "wall"
	case RejectBounds:
		return "bounds"
	case RejectDirection:
		return "direction"
	case RejectNoSession:
		return "no_session"
	}
	return "unknown"
}

// MoveResult describes the outcome of a move request.
type MoveResult struct {
	Dir      Direction
	From, To Pos
	Reject   Reject
	// Solved is true only on the accepted move that reached the goal.
	Solved bool
}

// Accepted reports whether the move changed the player position.
func (r MoveResult) Accepted() bool {
	return r.Reject == RejectNone
}

// ClassifySwipe turns a drag displacement into a direction. The dominant
// axis wins; exact diagonals resolve vertically. Gestures whose larger
// component is below threshold are ignored.
func ClassifySwipe(dx, dy, threshold float64) (Direction, bool) {
	ax, ay := math.Abs(dx), math.Abs(dy)
	if math.Max(ax, ay) < threshold || (ax == 0 && ay == 0) {
		return DirNone, false
	}
	if ax > ay {
		if dx > 0 {
			return DirRight, true
		}
		return DirLeft, true
	}
	if dy > 0 {
		return DirDown, true
	}
	return DirUp, true
}
