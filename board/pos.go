package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadPosition is returned when a position cannot be parsed.
var ErrBadPosition = errors.New("bad position")

// Position text form:
// - Column: a-h (left to right), case-insensitive on input
// - Row: 0-7 (top to bottom), always one digit
// - Example: (2, 4) is "c4"

// Pos is a zero-based (column, row) cell address.
type Pos struct {
	Col int
	Row int
}

// NewPos returns the position at (col, row). It panics if the address is off
// the board.
func NewPos(col, row int) Pos {
	p := Pos{Col: col, Row: row}
	if !p.Valid() {
		panic(fmt.Sprintf("board: position (%d, %d) out of range", col, row))
	}
	return p
}

// Valid reports whether p lies on the board.
func (p Pos) Valid() bool {
	return p.Col >= 0 && p.Col < Size && p.Row >= 0 && p.Row < Size
}

func (p Pos) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
	}
	return fmt.Sprintf("%c%d", 'a'+rune(p.Col), p.Row)
}

// ParsePos converts "c4" (or "C4") to a position.
func ParsePos(s string) (Pos, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return Pos{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
	}
	col, ok := columnIndex(rune(s[0]))
	if !ok {
		return Pos{}, fmt.Errorf("%w: invalid column in %q", ErrBadPosition, s)
	}
	row := int(s[1] - '0')
	if row < 0 || row >= Size {
		return Pos{}, fmt.Errorf("%w: invalid row in %q", ErrBadPosition, s)
	}
	return Pos{Col: col, Row: row}, nil
}

// columnIndex maps 'a'..'h' (either case) to 0..7.
func columnIndex(letter rune) (int, bool) {
	if letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	col := int(letter - 'a')
	if col < 0 || col >= Size {
		return 0, false
	}
	return col, true
}

// index panics for off-board positions; Row*Size+Col would otherwise alias
// a real cell.
func (p Pos) index() int {
	if !p.Valid() {
		panic(fmt.Sprintf("board: position %s out of range", p))
	}
	return p.Row*Size + p.Col
}

func (p Pos) step(d direction) Pos {
	return Pos{Col: p.Col + d.dc, Row: p.Row + d.dr}
}
