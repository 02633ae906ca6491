// Package types contains shared data structures for reversi-local.
package types

import (
	"reversi-local/board"
	"reversi-local/transcript"
)

// Game phases.
const (
	PhasePlaying  = "playing"
	PhaseFinished = "finished"
)

// SearchInfo describes the most recent computer search.
type SearchInfo struct {
	Move      string  `json:"move"`
	Score     int     `json:"score"`
	Nodes     uint64  `json:"nodes"`
	ElapsedMs int64   `json:"elapsed_ms"`
	NodesPerS float64 `json:"nodes_per_second"`
}

// BoardState is a snapshot of a game. It owns its board copy, so callers
// may keep it after the engine moves on.
type BoardState struct {
	GameID       string             `json:"game_id"`
	MoveNumber   int                `json:"move_number"`
	PlayerToMove board.Color        `json:"player_to_move"`
	Phase        string             `json:"phase"`
	Board        board.Board        `json:"-"`
	Outcome      string             `json:"outcome"`
	LastMove     *board.Pos         `json:"last_move,omitempty"`
	Black        int                `json:"black"`
	White        int                `json:"white"`
	Legal        []board.Pos        `json:"legal"`
	Moves        []transcript.Entry `json:"-"`
	LastSearch   *SearchInfo        `json:"last_search,omitempty"`
}

// Finished returns true if the game is over.
func (s *BoardState) Finished() bool {
	return s.Phase == PhaseFinished
}

// IsLegal reports whether p is among the legal moves of the side to move.
func (s *BoardState) IsLegal(p board.Pos) bool {
	for _, m := range s.Legal {
		if m == p {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (s *BoardState) Clone() *BoardState {
	c := *s
	c.Legal = append([]board.Pos(nil), s.Legal...)
	c.Moves = append([]transcript.Entry(nil), s.Moves...)
	if s.LastMove != nil {
		m := *s.LastMove
		c.LastMove = &m
	}
	if s.LastSearch != nil {
		si := *s.LastSearch
		c.LastSearch = &si
	}
	return &c
}

// NewBoardState returns the snapshot of a fresh game.
func NewBoardState(gameID string) *BoardState {
	b := board.Start()
	return &BoardState{
		GameID:       gameID,
		PlayerToMove: board.Black,
		Phase:        PhasePlaying,
		Board:        *b,
		Black:        b.Count(board.Black),
		White:        b.Count(board.White),
		Legal:        b.MoveList(board.Black),
	}
}
