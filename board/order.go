package board

import (
	"fmt"
	"sort"
	"strings"
)

// Order is a permutation of all 64 cells. It decides the order in which
// moves are enumerated; it never changes which moves are legal.
type Order [NumCells]Pos

var (
	// RowMajor visits a0, b0, ... h0, a1, ... h7.
	RowMajor = rowMajor()
	// CornersFirst front-loads corners and edges and leaves the squares
	// diagonally next to the corners for last, so alpha-beta cuts sooner.
	CornersFirst = cornersFirst()
)

func rowMajor() *Order {
	var o Order
	for i := range o {
		o[i] = Pos{Col: i % Size, Row: i / Size}
	}
	return &o
}

func cornersFirst() *Order {
	o := *rowMajor()
	sort.SliceStable(o[:], func(i, j int) bool {
		return orderRank(o[i]) < orderRank(o[j])
	})
	return &o
}

// orderRank groups cells: 0 corners, 1 edge cells touching a corner,
// 2 other edge cells, 3 interior, 4 X-squares.
func orderRank(p Pos) int {
	last := Size - 1
	edgeCol := p.Col == 0 || p.Col == last
	edgeRow := p.Row == 0 || p.Row == last
	nearCol := p.Col == 1 || p.Col == last-1
	nearRow := p.Row == 1 || p.Row == last-1
	switch {
	case edgeCol && edgeRow:
		return 0
	case (edgeCol && nearRow) || (edgeRow && nearCol):
		return 1
	case edgeCol || edgeRow:
		return 2
	case nearCol && nearRow:
		return 4
	default:
		return 3
	}
}

// ParseOrder maps a config name to an ordering.
func ParseOrder(name string) (*Order, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "corners":
		return CornersFirst, nil
	case "rowmajor":
		return RowMajor, nil
	}
	return nil, fmt.Errorf("unknown move ordering: %q", name)
}
