package board

import (
	"fmt"
	"iter"
)

const (
	Size     = 8
	NumCells = Size * Size
)

type direction struct{ dc, dr int }

// Directions for flanking scans
var directions = [8]direction{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Board is a value type: assigning or cloning it copies every cell, so a
// search branch can mutate its copy freely. The zero value is an empty board.
type Board struct {
	cells [NumCells]Color
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

// Start returns the standard opening position.
func Start() *Board {
	b := New()
	b.Set(Pos{3, 3}, Black)
	b.Set(Pos{4, 4}, Black)
	b.Set(Pos{3, 4}, White)
	b.Set(Pos{4, 3}, White)
	return b
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Get returns the color at p. It panics if p is off the board.
func (b *Board) Get(p Pos) Color {
	return b.cells[p.index()]
}

// Set stores c at p unconditionally. It panics if p is off the board.
func (b *Board) Set(p Pos, c Color) {
	b.cells[p.index()] = c
}

// GetAt addresses a cell by column letter ('a'..'h', any case) and row.
func (b *Board) GetAt(col rune, row int) Color {
	return b.Get(letterPos(col, row))
}

// SetAt stores c at the cell addressed by column letter and row.
func (b *Board) SetAt(col rune, row int, c Color) {
	b.Set(letterPos(col, row), c)
}

func letterPos(col rune, row int) Pos {
	i, ok := columnIndex(col)
	if !ok {
		panic(fmt.Sprintf("board: column %q out of range", col))
	}
	return NewPos(i, row)
}

// flanked returns how many opposing discs lie between p and the nearest c
// disc in direction d, or 0 when the run is not closed by a c disc.
func (b *Board) flanked(p Pos, c Color, d direction) int {
	opp := c.Opposite()
	n := 0
	q := p.step(d)
	for q.Valid() && b.Get(q) == opp {
		n++
		q = q.step(d)
	}
	if n == 0 || !q.Valid() || b.Get(q) != c {
		return 0
	}
	return n
}

// CanPlace reports whether c may legally play at p.
func (b *Board) CanPlace(p Pos, c Color) bool {
	if !c.IsDisc() || b.Get(p) != Empty {
		return false
	}
	for _, d := range directions {
		if b.flanked(p, c, d) > 0 {
			return true
		}
	}
	return false
}

// Place plays c at p, flips every flanked run and returns the number of
// discs flipped. Callers must check CanPlace first: placing on an occupied
// cell or where nothing flips panics.
func (b *Board) Place(p Pos, c Color) int {
	if b.Get(p) != Empty {
		panic(fmt.Sprintf("board: cannot place %s at %s: cell holds %s", c, p, b.Get(p)))
	}
	flipped := 0
	for _, d := range directions {
		n := b.flanked(p, c, d)
		q := p
		for i := 0; i < n; i++ {
			q = q.step(d)
			b.Set(q, c)
		}
		flipped += n
	}
	if flipped == 0 {
		panic(fmt.Sprintf("board: cannot place %s at %s: nothing to flip", c, p))
	}
	b.Set(p, c)
	return flipped
}

// Moves yields the legal moves for c in the default enumeration order.
func (b *Board) Moves(c Color) iter.Seq[Pos] {
	return b.MovesIn(CornersFirst, c)
}

// MovesIn yields the legal moves for c in the given order. The sequence can
// be ranged over any number of times; each pass rescans the board.
func (b *Board) MovesIn(order *Order, c Color) iter.Seq[Pos] {
	return func(yield func(Pos) bool) {
		for _, p := range order {
			if b.CanPlace(p, c) && !yield(p) {
				return
			}
		}
	}
}

// MoveList collects the legal moves for c in the default order.
func (b *Board) MoveList(c Color) []Pos {
	var moves []Pos
	for p := range b.Moves(c) {
		moves = append(moves, p)
	}
	return moves
}

// HasMoves reports whether c has at least one legal move.
func (b *Board) HasMoves(c Color) bool {
	for range b.Moves(c) {
		return true
	}
	return false
}

// CountMoves returns the number of legal moves for c.
func (b *Board) CountMoves(c Color) int {
	n := 0
	for range b.MovesIn(RowMajor, c) {
		n++
	}
	return n
}

// Count returns the number of cells holding c.
func (b *Board) Count(c Color) int {
	n := 0
	for _, cell := range b.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Occupied returns the number of cells holding a disc.
func (b *Board) Occupied() int {
	n := 0
	for _, cell := range b.cells {
		if cell.IsDisc() {
			n++
		}
	}
	return n
}
