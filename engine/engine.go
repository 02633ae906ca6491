// Package engine defines the interface for game engines.
package engine

import (
	"reversi-local/board"
	"reversi-local/transcript"
	"reversi-local/types"
)

// GameEngine defines the interface for playing reversi against the computer.
type GameEngine interface {
	// Connect initializes the game and, if the computer moves first,
	// starts its move.
	Connect() error

	// GetBoardState returns a snapshot of the current game.
	GetBoardState() *types.BoardState

	// PlayMove plays the human's disc at p.
	// Returns an error if the game is over, it is not the human's turn, or
	// the move is illegal.
	PlayMove(p board.Pos) error

	// IsMyTurn returns true if it's the human player's turn.
	IsMyTurn() bool

	// GetPlayerColor returns the human player's color.
	GetPlayerColor() board.Color

	// OnMove registers a callback for when a move is played (by either player).
	// A pass is reported with passed set and p unused. state is passed
	// directly to avoid lock contention.
	OnMove(func(p board.Pos, color board.Color, passed bool, state *types.BoardState))

	// Undo takes back the human's last move and every computer reply to it.
	Undo() error

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(outcome string))

	// Transcript returns a copy of the moves played so far.
	Transcript() *transcript.Transcript

	// Close shuts down the engine.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	PlayerColor board.Color  // Human's color
	Depth       int          // Search depth in turns (one turn = two plies)
	PhaseCutoff int          // Occupied cells at which evaluation switches to disc count
	Order       *board.Order // Move enumeration order for the search
	Transcript  string       // Moves to replay before play starts
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		PlayerColor: board.Black, // Human plays black
		Depth:       3,
		PhaseCutoff: 54,
		Order:       board.CornersFirst,
	}
}
