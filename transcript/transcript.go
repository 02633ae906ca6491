// Package transcript records the moves of a reversi game and converts them
// to and from their compact text form.
package transcript

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"reversi-local/board"
)

// ErrBadTranscript is returned for unparsable or unplayable transcripts.
var ErrBadTranscript = errors.New("bad transcript")

// Transcript text form:
// - Each move is "c4" (mover implied) or "bc4"/"wc4" (mover tagged)
// - Tokens are concatenated; whitespace is ignored
// - Tags are needed because a side with no legal move is skipped, so
//   moves do not strictly alternate
// - Example: "bd2wc4bb5" or "d2c4b5"

// Entry is one move. Color is Empty for an untagged token until Replay
// resolves the mover.
type Entry struct {
	Color board.Color
	Pos   board.Pos
}

func (e Entry) String() string {
	switch e.Color {
	case board.Black:
		return "b" + e.Pos.String()
	case board.White:
		return "w" + e.Pos.String()
	default:
		return e.Pos.String()
	}
}

// Transcript is an append-only move history.
type Transcript struct {
	entries []Entry
}

// New returns an empty transcript.
func New() *Transcript {
	return &Transcript{}
}

// Add appends a move.
func (t *Transcript) Add(c board.Color, p board.Pos) {
	t.entries = append(t.entries, Entry{Color: c, Pos: p})
}

// Len returns the number of recorded moves.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the recorded moves.
func (t *Transcript) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Clone returns an independent copy.
func (t *Transcript) Clone() *Transcript {
	return &Transcript{entries: t.Entries()}
}

// Last returns the most recent move, if any.
func (t *Transcript) Last() (Entry, bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// UndoRound drops the latest move by c together with every move after it,
// and returns how many moves were removed. It removes nothing if c has not
// moved.
func (t *Transcript) UndoRound(c board.Color) int {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Color == c {
			n := len(t.entries) - i
			t.entries = t.entries[:i]
			return n
		}
	}
	return 0
}

// String encodes the transcript with every token tagged.
func (t *Transcript) String() string {
	var b strings.Builder
	for _, e := range t.entries {
		b.WriteString(e.String())
	}
	return b.String()
}

// Parse decodes a transcript. Tagged and untagged tokens may be mixed.
func Parse(s string) (*Transcript, error) {
	var compact []rune
	for _, r := range s {
		if !unicode.IsSpace(r) {
			compact = append(compact, r)
		}
	}

	t := New()
	for i := 0; i < len(compact); {
		color := board.Empty
		// A tag is 'b' or 'w' followed by a column letter; a bare 'b'
		// followed by a digit is column b.
		if i+2 < len(compact) && unicode.IsLetter(compact[i+1]) {
			switch unicode.ToLower(compact[i]) {
			case 'b':
				color = board.Black
			case 'w':
				color = board.White
			default:
				return nil, fmt.Errorf("%w: invalid mover tag %q at offset %d", ErrBadTranscript, compact[i], i)
			}
			i++
		}
		if i+2 > len(compact) {
			return nil, fmt.Errorf("%w: truncated move at offset %d", ErrBadTranscript, i)
		}
		p, err := board.ParsePos(string(compact[i : i+2]))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadTranscript, err)
		}
		t.entries = append(t.entries, Entry{Color: color, Pos: p})
		i += 2
	}
	return t, nil
}

// Replay plays every entry onto b, Black moving first. An untagged entry is
// made by the side to move; a side with no legal move is skipped. Untagged
// entries are resolved to their mover. Replay returns the side to move after
// the last entry. Every placement is checked, so an unplayable transcript
// returns an error and leaves b partially played.
func (t *Transcript) Replay(b *board.Board) (board.Color, error) {
	toMove := board.Black
	for i := range t.entries {
		e := &t.entries[i]
		if e.Color == board.Empty {
			if !b.HasMoves(toMove) {
				toMove = toMove.Opposite()
			}
			e.Color = toMove
		}
		if !b.CanPlace(e.Pos, e.Color) {
			return toMove, fmt.Errorf("%w: move %d (%s) is illegal", ErrBadTranscript, i+1, e)
		}
		b.Place(e.Pos, e.Color)
		toMove = e.Color.Opposite()
	}
	if !b.HasMoves(toMove) && b.HasMoves(toMove.Opposite()) {
		toMove = toMove.Opposite()
	}
	return toMove, nil
}
