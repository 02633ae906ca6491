package board

import "strings"

const (
	renderHeader    = "      A     B     C     D     E     F     G     H\n"
	renderSeparator = "   |-----|-----|-----|-----|-----|-----|-----|-----\n"
)

// String draws the board as an 8x8 text grid with a lettered header.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString(renderHeader)
	sb.WriteString(renderSeparator)
	for row := 0; row < Size; row++ {
		sb.WriteByte(byte('0' + row))
		sb.WriteString("  |")
		for col := 0; col < Size; col++ {
			sb.WriteString("  ")
			sb.WriteString(b.Get(Pos{Col: col, Row: row}).Short())
			sb.WriteString("  |")
		}
		sb.WriteString("\n")
		sb.WriteString(renderSeparator)
	}
	return sb.String()
}

// WithHints returns a copy with every legal move of c marked as Hint.
// The copy is for display only.
func (b *Board) WithHints(c Color) *Board {
	hinted := b.Clone()
	for p := range b.Moves(c) {
		hinted.Set(p, Hint)
	}
	return hinted
}
