package analysis

import "reversi-local/board"

const (
	cornerHeld    = 100
	cornerArmHeld = 50
	openCornerX   = -100
)

// corner groups a corner with its two edge neighbours and the X-square
// diagonally inside it.
type corner struct {
	corner       board.Pos
	edgeA, edgeB board.Pos
	xSquare      board.Pos
}

var corners = [4]corner{
	{corner: board.Pos{Col: 0, Row: 0}, edgeA: board.Pos{Col: 1, Row: 0}, edgeB: board.Pos{Col: 0, Row: 1}, xSquare: board.Pos{Col: 1, Row: 1}},
	{corner: board.Pos{Col: 7, Row: 0}, edgeA: board.Pos{Col: 6, Row: 0}, edgeB: board.Pos{Col: 7, Row: 1}, xSquare: board.Pos{Col: 6, Row: 1}},
	{corner: board.Pos{Col: 0, Row: 7}, edgeA: board.Pos{Col: 1, Row: 7}, edgeB: board.Pos{Col: 0, Row: 6}, xSquare: board.Pos{Col: 1, Row: 6}},
	{corner: board.Pos{Col: 7, Row: 7}, edgeA: board.Pos{Col: 6, Row: 7}, edgeB: board.Pos{Col: 7, Row: 6}, xSquare: board.Pos{Col: 6, Row: 6}},
}

// Evaluate scores b from c's point of view. Below cutoff occupied cells it
// uses mobility plus corner stability; from cutoff on it is the plain disc
// difference.
func Evaluate(b *board.Board, c board.Color, cutoff int) int {
	opp := c.Opposite()
	if b.Occupied() >= cutoff {
		return b.Count(c) - b.Count(opp)
	}
	mobility := b.CountMoves(c) - b.CountMoves(opp)
	return mobility + cornerStability(b, c) - cornerStability(b, opp)
}

func cornerStability(b *board.Board, c board.Color) int {
	total := 0
	for _, k := range corners {
		total += k.score(b, c)
	}
	return total
}

func (k corner) score(b *board.Board, c board.Color) int {
	switch b.Get(k.corner) {
	case c:
		s := cornerHeld
		if b.Get(k.edgeA) == c {
			s += cornerArmHeld
		}
		if b.Get(k.edgeB) == c {
			s += cornerArmHeld
		}
		return s
	case board.Empty:
		if b.Get(k.xSquare) == c {
			return openCornerX
		}
	}
	return 0
}
