// Package local implements engine.GameEngine in-process: it owns the
// authoritative board and answers the human with the analysis search.
package local

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reversi-local/analysis"
	"reversi-local/board"
	"reversi-local/engine"
	"reversi-local/transcript"
	"reversi-local/types"
)

var (
	ErrGameOver      = errors.New("game is over")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrIllegalMove   = errors.New("illegal move")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Option customizes an Engine.
type Option func(*Engine)

// WithSynchronousMoves makes the computer reply inside PlayMove and Connect
// instead of on its own goroutine.
func WithSynchronousMoves() Option {
	return func(e *Engine) { e.synchronous = true }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) { e.log = log }
}

// WithGameID overrides the generated game ID.
func WithGameID(id string) Option {
	return func(e *Engine) { e.gameID = id }
}

// event is a notification collected under the lock and delivered after it
// is released.
type event struct {
	pos    board.Pos
	color  board.Color
	passed bool
}

// Engine implements the GameEngine interface with an in-process search.
type Engine struct {
	config      engine.GameConfig
	params      analysis.Params
	gameID      string
	playerColor board.Color
	synchronous bool
	log         *zap.SugaredLogger

	board      *board.Board
	moves      *transcript.Transcript
	toMove     board.Color
	gameOver   bool
	closed     bool
	outcome    string
	lastMove   *board.Pos
	lastSearch *types.SearchInfo

	moveCallback func(p board.Pos, color board.Color, passed bool, state *types.BoardState)
	endCallback  func(outcome string)
	beforeSearch func() // test hook, called without the lock

	mu sync.Mutex
	wg sync.WaitGroup
}

var _ engine.GameEngine = (*Engine)(nil)

// New creates an engine with the given configuration.
func New(cfg engine.GameConfig, opts ...Option) *Engine {
	e := &Engine{
		config:      cfg,
		playerColor: cfg.PlayerColor,
		params: analysis.Params{
			Plies:       analysis.PliesForTurns(cfg.Depth),
			PhaseCutoff: cfg.PhaseCutoff,
			Order:       cfg.Order,
		},
		gameID: uuid.NewString(),
		log:    zap.NewNop().Sugar(),
		board:  board.Start(),
		moves:  transcript.New(),
		toMove: board.Black,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("game", e.gameID)
	return e
}

// GameID returns the identifier used in logs and snapshots.
func (e *Engine) GameID() string {
	return e.gameID
}

// Connect sets up the starting position, replays the configured transcript
// and lets the computer move if it is its turn.
func (e *Engine) Connect() error {
	if !e.playerColor.IsDisc() {
		return fmt.Errorf("invalid player color %s", e.playerColor)
	}

	e.mu.Lock()
	e.board = board.Start()
	e.moves = transcript.New()
	e.toMove = board.Black

	if e.config.Transcript != "" {
		t, err := transcript.Parse(e.config.Transcript)
		if err != nil {
			e.mu.Unlock()
			return fmt.Errorf("failed to load transcript: %w", err)
		}
		toMove, err := t.Replay(e.board)
		if err != nil {
			e.mu.Unlock()
			return fmt.Errorf("failed to replay transcript: %w", err)
		}
		e.moves = t
		e.toMove = toMove
		if last, ok := t.Last(); ok {
			p := last.Pos
			e.lastMove = &p
		}
	}

	e.log.Infow("game started",
		"player", e.playerColor.String(),
		"depth", e.config.Depth,
		"cutoff", e.params.PhaseCutoff,
		"replayed", e.moves.Len())

	ended := e.checkGameEnd()
	outcome := e.outcome
	e.mu.Unlock()

	if ended {
		if e.endCallback != nil {
			e.endCallback(outcome)
		}
		return nil
	}

	e.startComputer()
	return nil
}

// GetBoardState returns a snapshot of the current game.
func (e *Engine) GetBoardState() *types.BoardState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyBoardState()
}

// PlayMove plays the human's disc at p.
func (e *Engine) PlayMove(p board.Pos) error {
	e.mu.Lock()

	if e.gameOver || e.closed {
		e.mu.Unlock()
		return ErrGameOver
	}
	if e.toMove != e.playerColor {
		e.mu.Unlock()
		return ErrNotYourTurn
	}
	if !p.Valid() || !e.board.CanPlace(p, e.playerColor) {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrIllegalMove, p)
	}

	flipped := e.board.Place(p, e.playerColor)
	e.record(p, e.playerColor)
	e.log.Debugw("player move", "move", p.String(), "flipped", flipped)

	events := e.advance(e.playerColor)
	ended := e.gameOver
	outcome := e.outcome
	state := e.copyBoardState()
	e.mu.Unlock()

	// Notify outside the lock so callbacks may call back into the engine.
	e.notify(append([]event{{pos: p, color: e.playerColor}}, events...), state)
	if ended {
		if e.endCallback != nil {
			e.endCallback(outcome)
		}
		return nil
	}

	e.startComputer()
	return nil
}

func (e *Engine) startComputer() {
	if e.synchronous {
		e.computerMove()
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.computerMove()
	}()
}

// computerMove plays for the computer until it is the human's turn or the
// game ends. It loops because the human may have to pass. The search runs on
// a clone without holding the lock.
func (e *Engine) computerMove() {
	for {
		e.mu.Lock()
		if e.gameOver || e.closed || e.toMove == e.playerColor {
			e.mu.Unlock()
			return
		}
		color := e.toMove
		snapshot := e.board.Clone()
		e.mu.Unlock()

		if e.beforeSearch != nil {
			e.beforeSearch()
		}
		stat := analysis.NewStat()
		res, ok := analysis.FindBestMove(snapshot, color, e.params, stat)

		e.mu.Lock()
		// While the computer is to move the human can neither play nor undo,
		// so only Close can have changed the game.
		if e.closed || e.gameOver || e.toMove != color {
			e.mu.Unlock()
			return
		}
		if !ok {
			// advance never leaves a side without moves to move.
			e.mu.Unlock()
			e.log.Errorw("computer has no move", "color", color.String())
			return
		}

		e.board.Place(res.Move, color)
		e.record(res.Move, color)
		e.lastSearch = &types.SearchInfo{
			Move:      res.Move.String(),
			Score:     res.Score,
			Nodes:     stat.Nodes,
			ElapsedMs: stat.Elapsed().Milliseconds(),
			NodesPerS: stat.NodesPerSecond(),
		}
		e.log.Infow("computer move",
			"move", res.Move.String(),
			"score", res.Score,
			"nodes", stat.Nodes,
			"elapsed", stat.Elapsed().Round(time.Microsecond).String(),
			"nps", int64(stat.NodesPerSecond()))

		events := e.advance(color)
		ended := e.gameOver
		outcome := e.outcome
		state := e.copyBoardState()
		e.mu.Unlock()

		e.notify(append([]event{{pos: res.Move, color: color}}, events...), state)
		if ended {
			if e.endCallback != nil {
				e.endCallback(outcome)
			}
			return
		}
	}
}

// record appends a move to the transcript. Must be called while holding the lock.
func (e *Engine) record(p board.Pos, c board.Color) {
	e.moves.Add(c, p)
	e.lastMove = &p
}

// advance hands the turn over after mover has moved. The next side passes
// automatically if it has no legal move; if neither side can move the game
// ends. Must be called while holding the lock.
func (e *Engine) advance(mover board.Color) []event {
	next := mover.Opposite()
	if e.board.HasMoves(next) {
		e.toMove = next
		return nil
	}
	if e.checkGameEnd() {
		return nil
	}
	e.toMove = mover
	e.log.Infow("pass", "color", next.String())
	return []event{{color: next, passed: true}}
}

// checkGameEnd finishes the game when neither side can move. Must be called
// while holding the lock.
func (e *Engine) checkGameEnd() bool {
	if e.gameOver {
		return true
	}
	if e.board.HasMoves(board.Black) || e.board.HasMoves(board.White) {
		if !e.board.HasMoves(e.toMove) {
			e.toMove = e.toMove.Opposite()
		}
		return false
	}
	e.gameOver = true
	black, white := analysis.Tally(e.board)
	e.outcome = Outcome(black, white)
	e.log.Infow("game over", "outcome", e.outcome, "moves", e.moves.Len())
	return true
}

// Outcome formats a final score such as "Black wins 40-24" or "Draw 32-32".
func Outcome(black, white int) string {
	switch {
	case black > white:
		return fmt.Sprintf("Black wins %d-%d", black, white)
	case white > black:
		return fmt.Sprintf("White wins %d-%d", white, black)
	default:
		return fmt.Sprintf("Draw %d-%d", black, white)
	}
}

func (e *Engine) notify(events []event, state *types.BoardState) {
	if e.moveCallback == nil {
		return
	}
	for _, ev := range events {
		e.moveCallback(ev.pos, ev.color, ev.passed, state)
	}
}

// IsMyTurn returns true if it's the human player's turn.
func (e *Engine) IsMyTurn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toMove == e.playerColor && !e.gameOver
}

// GetPlayerColor returns the human player's color.
func (e *Engine) GetPlayerColor() board.Color {
	return e.playerColor
}

// OnMove registers a callback for when a move is played.
func (e *Engine) OnMove(callback func(p board.Pos, color board.Color, passed bool, state *types.BoardState)) {
	e.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (e *Engine) OnGameEnd(callback func(outcome string)) {
	e.endCallback = callback
}

// Undo takes back the human's latest move and every move after it, then
// rebuilds the board from the shortened transcript. It is allowed after the
// game has ended.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrGameOver
	}
	if !e.gameOver && e.toMove != e.playerColor {
		return ErrNotYourTurn
	}
	n := e.moves.UndoRound(e.playerColor)
	if n == 0 {
		return ErrNothingToUndo
	}

	b := board.Start()
	toMove, err := e.moves.Replay(b)
	if err != nil {
		// The transcript only ever holds moves this engine validated.
		panic(fmt.Sprintf("local: replay after undo: %v", err))
	}
	e.board = b
	e.toMove = toMove
	e.gameOver = false
	e.outcome = ""
	e.lastSearch = nil
	e.lastMove = nil
	if last, ok := e.moves.Last(); ok {
		p := last.Pos
		e.lastMove = &p
	}
	e.log.Infow("undo", "removed", n, "moves", e.moves.Len())
	return nil
}

// Transcript returns a copy of the moves played so far.
func (e *Engine) Transcript() *transcript.Transcript {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.moves.Clone()
}

// copyBoardState creates a snapshot of the current game.
// Must be called while holding the lock.
func (e *Engine) copyBoardState() *types.BoardState {
	black, white := analysis.Tally(e.board)
	state := &types.BoardState{
		GameID:       e.gameID,
		MoveNumber:   e.moves.Len(),
		PlayerToMove: e.toMove,
		Phase:        types.PhasePlaying,
		Board:        *e.board,
		Outcome:      e.outcome,
		Black:        black,
		White:        white,
		Moves:        e.moves.Entries(),
	}
	if e.gameOver {
		state.Phase = types.PhaseFinished
	} else {
		state.Legal = e.board.MoveList(e.toMove)
	}
	if e.lastMove != nil {
		p := *e.lastMove
		state.LastMove = &p
	}
	if e.lastSearch != nil {
		si := *e.lastSearch
		state.LastSearch = &si
	}
	return state
}

// Close stops the engine and waits for a running computer move to finish.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.wg.Wait()
	e.log.Sync()
}
