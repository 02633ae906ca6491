package analysis

import (
	"testing"

	"reversi-local/board"
)

const midgameCutoff = 54

func TestEvaluateIsPure(t *testing.T) {
	b := board.Start()
	b.Place(board.Pos{Col: 2, Row: 4}, board.Black)
	before := *b
	first := Evaluate(b, board.White, midgameCutoff)
	second := Evaluate(b, board.White, midgameCutoff)
	if first != second {
		t.Fatalf("Evaluate returned %d then %d", first, second)
	}
	if *b != before {
		t.Fatal("Evaluate modified the board")
	}
}

func TestEvaluateIsZeroSum(t *testing.T) {
	b := board.Start()
	b.Place(board.Pos{Col: 2, Row: 4}, board.Black)
	b.Place(board.Pos{Col: 2, Row: 5}, board.White)
	for _, cutoff := range []int{0, midgameCutoff} {
		black := Evaluate(b, board.Black, cutoff)
		white := Evaluate(b, board.White, cutoff)
		if black != -white {
			t.Errorf("cutoff %d: black %d, white %d, want negations", cutoff, black, white)
		}
	}
}

func TestEvaluateEndgameIsDiscDifference(t *testing.T) {
	b := board.Start()
	c := board.Black
	for i := 0; i < 12; i++ {
		if !b.HasMoves(c) {
			c = c.Opposite()
		}
		b.Place(b.MoveList(c)[0], c)
		c = c.Opposite()
	}
	cutoff := b.Occupied()
	for _, col := range []board.Color{board.Black, board.White} {
		want := b.Count(col) - b.Count(col.Opposite())
		if got := Evaluate(b, col, cutoff); got != want {
			t.Errorf("%s: Evaluate = %d, want %d", col, got, want)
		}
	}
}

func TestEvaluateFullBoard(t *testing.T) {
	b := board.New()
	for i, p := range board.RowMajor {
		if i%3 == 0 {
			b.Set(p, board.White)
		} else {
			b.Set(p, board.Black)
		}
	}
	want := b.Count(board.Black) - b.Count(board.White)
	if got := Evaluate(b, board.Black, 64); got != want {
		t.Fatalf("Evaluate = %d, want %d", got, want)
	}
}

func TestEvaluateMidgameMobility(t *testing.T) {
	// Start position: both sides have four moves, no corners.
	if got := Evaluate(board.Start(), board.Black, midgameCutoff); got != 0 {
		t.Fatalf("Evaluate(start) = %d, want 0", got)
	}
}

func TestCornerArmsScoreHigher(t *testing.T) {
	bare := board.New()
	bare.Set(board.Pos{Col: 0, Row: 0}, board.Black)
	bare.Set(board.Pos{Col: 4, Row: 4}, board.White)
	bare.Set(board.Pos{Col: 5, Row: 5}, board.Black)

	armed := bare.Clone()
	armed.Set(board.Pos{Col: 1, Row: 0}, board.Black)
	armed.Set(board.Pos{Col: 0, Row: 1}, board.Black)

	bareScore := Evaluate(bare, board.Black, midgameCutoff)
	armedScore := Evaluate(armed, board.Black, midgameCutoff)
	if armedScore <= bareScore {
		t.Fatalf("armed corner scored %d, bare corner %d", armedScore, bareScore)
	}
	if bareScore != 100 || armedScore != 200 {
		t.Errorf("scores = %d, %d; want 100, 200", bareScore, armedScore)
	}
}

func TestCornerScore(t *testing.T) {
	tests := []struct {
		name  string
		setup map[board.Pos]board.Color
		want  int
	}{
		{"empty", nil, 0},
		{"bare corner", map[board.Pos]board.Color{{Col: 7, Row: 7}: board.Black}, 100},
		{"one arm", map[board.Pos]board.Color{{Col: 7, Row: 7}: board.Black, {Col: 7, Row: 6}: board.Black}, 150},
		{"both arms", map[board.Pos]board.Color{{Col: 7, Row: 7}: board.Black, {Col: 7, Row: 6}: board.Black, {Col: 6, Row: 7}: board.Black}, 200},
		{"arm without corner", map[board.Pos]board.Color{{Col: 6, Row: 7}: board.Black}, 0},
		{"x-square open corner", map[board.Pos]board.Color{{Col: 6, Row: 6}: board.Black}, -100},
		{"x-square taken corner", map[board.Pos]board.Color{{Col: 6, Row: 6}: board.Black, {Col: 7, Row: 7}: board.White}, 0},
		{"opponent corner", map[board.Pos]board.Color{{Col: 7, Row: 7}: board.White, {Col: 6, Row: 7}: board.Black}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := board.New()
			for p, c := range tt.setup {
				b.Set(p, c)
			}
			if got := cornerStability(b, board.Black); got != tt.want {
				t.Errorf("cornerStability = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCornerStabilityCoversAllCorners(t *testing.T) {
	b := board.New()
	for _, k := range corners {
		b.Set(k.corner, board.White)
		b.Set(k.edgeA, board.White)
		b.Set(k.edgeB, board.White)
	}
	if got := cornerStability(b, board.White); got != 800 {
		t.Fatalf("cornerStability = %d, want 800", got)
	}
}
