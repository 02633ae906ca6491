// Package analysis picks moves for the computer: a negamax search with
// alpha-beta pruning over cloned boards, and the static evaluator it
// bottoms out in.
package analysis

import "reversi-local/board"

// Infinity bounds every score. It sits far inside the int range so negating
// a sentinel can never overflow.
const Infinity = 1_000_000

// Params configures one search.
type Params struct {
	// Plies is the remaining search depth in single moves.
	Plies int
	// PhaseCutoff is the occupancy at which Evaluate switches to disc count.
	PhaseCutoff int
	// Order is the move enumeration order; nil means board.CornersFirst.
	Order *board.Order
}

// PliesForTurns converts a depth in turns (one move by each side) to plies.
func PliesForTurns(turns int) int {
	return 2 * turns
}

// Result is a chosen move and its score for the side that moves.
type Result struct {
	Move  board.Pos
	Score int
}

// FindBestMove searches for c's best move on b. It returns false when c has
// no legal move. A depth below one ply is searched as one ply. b is never
// modified.
func FindBestMove(b *board.Board, c board.Color, p Params, st *Stat) (Result, bool) {
	if p.Plies < 1 {
		p.Plies = 1
	}
	if p.Order == nil {
		p.Order = board.CornersFirst
	}
	s := searcher{cutoff: p.PhaseCutoff, order: p.Order, stat: st}
	move, score, ok := s.negamax(b, c, p.Plies, -Infinity, Infinity)
	if !ok {
		return Result{}, false
	}
	return Result{Move: move, Score: score}, true
}

// Negamax runs the pruned search with an explicit [alpha, beta] window and
// returns the best move (if any) and its score. Scores outside the window
// are bounds, not exact values.
func Negamax(b *board.Board, c board.Color, depth int, alpha, beta int, p Params, st *Stat) (board.Pos, int, bool) {
	order := p.Order
	if order == nil {
		order = board.CornersFirst
	}
	s := searcher{cutoff: p.PhaseCutoff, order: order, stat: st}
	return s.negamax(b, c, depth, alpha, beta)
}

type searcher struct {
	cutoff int
	order  *board.Order
	stat   *Stat
}

// negamax returns the value of b for c. The value for one side is the
// negation of the value for the other, so one routine serves both.
func (s *searcher) negamax(b *board.Board, c board.Color, depth, alpha, beta int) (board.Pos, int, bool) {
	if depth == 0 {
		return board.Pos{}, Evaluate(b, c, s.cutoff), false
	}

	var best board.Pos
	bestScore := -Infinity
	found := false

	for move := range b.MovesIn(s.order, c) {
		child := b.Clone()
		child.Place(move, c)
		s.stat.Visit()

		_, score, _ := s.negamax(child, c.Opposite(), depth-1, -beta, -alpha)
		score = -score

		if !found || score > bestScore {
			best, bestScore, found = move, score, true
		}
		if bestScore > alpha {
			alpha = bestScore
		}
		if alpha >= beta {
			break
		}
	}

	if !found {
		return board.Pos{}, Evaluate(b, c, s.cutoff), false
	}
	return best, bestScore, true
}

// Tally returns the disc counts as (black, white).
func Tally(b *board.Board) (int, int) {
	return b.Count(board.Black), b.Count(board.White)
}
