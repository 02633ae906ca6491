// Package board implements the 8x8 reversi board: disc colors, positions,
// legality checks, flipping and move enumeration.
package board

import (
	"fmt"
	"strings"
)

// Color is the occupant of a single cell.
type Color uint8

const (
	Empty Color = iota
	Black
	White
	// Hint marks a legal move on a rendering copy. It never takes part in play.
	Hint
)

// IsDisc reports whether c is a placeable disc color.
func (c Color) IsDisc() bool {
	return c == Black || c == White
}

// Opposite returns the other disc color. It panics for non-disc values.
func (c Color) Opposite() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		panic(fmt.Sprintf("board: %s has no opposite color", c))
	}
}

func (c Color) String() string {
	switch c {
	case Empty:
		return "Empty"
	case Black:
		return "Black"
	case White:
		return "White"
	case Hint:
		return "Hint"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

// Short returns the one-character form used in board rendering.
func (c Color) Short() string {
	switch c {
	case Black:
		return "B"
	case White:
		return "W"
	case Hint:
		return "*"
	default:
		return " "
	}
}

// ParseColor accepts "b", "black", "w" or "white" in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	}
	return Empty, fmt.Errorf("invalid color: %q", s)
}
