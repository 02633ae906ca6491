package local

import (
	"errors"
	"strings"
	"testing"
	"time"

	"reversi-local/board"
	"reversi-local/engine"
	"reversi-local/types"
)

// Nine moves ending in a Black wipeout, 13-0.
const wipeout = "be2wd2bc5wf3bg2wf2bc2wb6ba7"

// After these moves Black's g0 leaves White without a move.
const beforeWhitePass = "bc4wc5bf3wc3bd5wg3bb6wa7bg2we5bg4wh1bg1wf1be2wg5bh3wd1"

type moveRecord struct {
	pos    board.Pos
	color  board.Color
	passed bool
}

func newTestEngine(t *testing.T, cfg engine.GameConfig) (*Engine, *[]moveRecord, *[]string) {
	t.Helper()
	e := New(cfg, WithSynchronousMoves(), WithGameID("test"))
	var moves []moveRecord
	var outcomes []string
	e.OnMove(func(p board.Pos, c board.Color, passed bool, _ *types.BoardState) {
		moves = append(moves, moveRecord{p, c, passed})
	})
	e.OnGameEnd(func(outcome string) {
		outcomes = append(outcomes, outcome)
	})
	if err := e.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(e.Close)
	return e, &moves, &outcomes
}

func testConfig() engine.GameConfig {
	cfg := engine.DefaultConfig()
	cfg.Depth = 1
	return cfg
}

func mustPos(t *testing.T, s string) board.Pos {
	t.Helper()
	p, err := board.ParsePos(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestConnectAsBlack(t *testing.T) {
	e, moves, _ := newTestEngine(t, testConfig())
	if !e.IsMyTurn() {
		t.Fatal("Black should move first")
	}
	if len(*moves) != 0 {
		t.Fatalf("unexpected moves on connect: %v", *moves)
	}
	s := e.GetBoardState()
	if s.GameID != "test" {
		t.Errorf("GameID = %q, want %q", s.GameID, "test")
	}
	if s.Board != *board.Start() {
		t.Error("board is not the start position")
	}
	if len(s.Legal) != 4 {
		t.Errorf("legal moves = %d, want 4", len(s.Legal))
	}
}

func TestConnectAsWhiteComputerMovesFirst(t *testing.T) {
	cfg := testConfig()
	cfg.PlayerColor = board.White
	e, moves, _ := newTestEngine(t, cfg)
	if !e.IsMyTurn() {
		t.Fatal("expected White to move after the computer")
	}
	if len(*moves) != 1 || (*moves)[0].color != board.Black {
		t.Fatalf("moves = %v, want one Black move", *moves)
	}
	s := e.GetBoardState()
	if s.MoveNumber != 1 || s.LastSearch == nil {
		t.Errorf("MoveNumber = %d, LastSearch = %v", s.MoveNumber, s.LastSearch)
	}
	if s.LastMove == nil || *s.LastMove != (*moves)[0].pos {
		t.Errorf("LastMove = %v, want %v", s.LastMove, (*moves)[0].pos)
	}
}

func TestConnectRejectsBadTranscript(t *testing.T) {
	cfg := testConfig()
	cfg.Transcript = "a0"
	if err := New(cfg, WithSynchronousMoves()).Connect(); err == nil {
		t.Fatal("expected error for unplayable transcript")
	}
	cfg.Transcript = "zz"
	if err := New(cfg, WithSynchronousMoves()).Connect(); err == nil {
		t.Fatal("expected error for malformed transcript")
	}
}

func TestPlayMoveComputerReplies(t *testing.T) {
	e, moves, _ := newTestEngine(t, testConfig())
	if err := e.PlayMove(mustPos(t, "c4")); err != nil {
		t.Fatalf("PlayMove: %v", err)
	}
	if len(*moves) != 2 {
		t.Fatalf("moves = %v, want player and computer", *moves)
	}
	if (*moves)[0].color != board.Black || (*moves)[1].color != board.White {
		t.Errorf("move colors = %s, %s", (*moves)[0].color, (*moves)[1].color)
	}
	if !e.IsMyTurn() {
		t.Error("expected the human to move next")
	}
	s := e.GetBoardState()
	if s.MoveNumber != 2 {
		t.Errorf("MoveNumber = %d, want 2", s.MoveNumber)
	}
	if s.Black+s.White != 6 {
		t.Errorf("disc total = %d, want 6", s.Black+s.White)
	}
	if got := e.Transcript().String(); !strings.HasPrefix(got, "bc4w") || len(got) != 6 {
		t.Errorf("transcript = %q", got)
	}
}

func TestPlayMoveIllegal(t *testing.T) {
	e, moves, _ := newTestEngine(t, testConfig())
	before := e.GetBoardState()
	for _, p := range []board.Pos{{Col: 0, Row: 0}, {Col: 3, Row: 3}, {Col: 9, Row: 0}} {
		if err := e.PlayMove(p); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("PlayMove(%v) error = %v, want ErrIllegalMove", p, err)
		}
	}
	if e.GetBoardState().Board != before.Board {
		t.Error("illegal move changed the board")
	}
	if len(*moves) != 0 {
		t.Errorf("callbacks fired for illegal moves: %v", *moves)
	}
}

func TestPlayMoveNotYourTurn(t *testing.T) {
	cfg := testConfig()
	cfg.PlayerColor = board.White
	e := New(cfg, WithSynchronousMoves())
	// Not connected: Black is still to move.
	if err := e.PlayMove(mustPos(t, "c4")); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("error = %v, want ErrNotYourTurn", err)
	}
}

func TestGameEndsOnWipeout(t *testing.T) {
	cfg := testConfig()
	cfg.Transcript = wipeout[:len(wipeout)-3]
	e, _, outcomes := newTestEngine(t, cfg)
	if !e.IsMyTurn() {
		t.Fatal("expected Black to move")
	}
	if err := e.PlayMove(mustPos(t, "a7")); err != nil {
		t.Fatalf("PlayMove: %v", err)
	}
	if len(*outcomes) != 1 || (*outcomes)[0] != "Black wins 13-0" {
		t.Fatalf("outcomes = %v, want [Black wins 13-0]", *outcomes)
	}
	s := e.GetBoardState()
	if !s.Finished() || len(s.Legal) != 0 {
		t.Errorf("phase = %s, legal = %v", s.Phase, s.Legal)
	}
	if e.IsMyTurn() {
		t.Error("IsMyTurn after game over")
	}
	if err := e.PlayMove(mustPos(t, "a0")); !errors.Is(err, ErrGameOver) {
		t.Errorf("error = %v, want ErrGameOver", err)
	}
}

func TestConnectWithFinishedTranscript(t *testing.T) {
	cfg := testConfig()
	cfg.Transcript = wipeout
	e, _, outcomes := newTestEngine(t, cfg)
	if len(*outcomes) != 1 {
		t.Fatalf("outcomes = %v, want one", *outcomes)
	}
	if !e.GetBoardState().Finished() {
		t.Fatal("game should be finished")
	}
}

func TestAutomaticPass(t *testing.T) {
	cfg := testConfig()
	cfg.Transcript = beforeWhitePass
	e, moves, _ := newTestEngine(t, cfg)
	if err := e.PlayMove(mustPos(t, "g0")); err != nil {
		t.Fatalf("PlayMove: %v", err)
	}
	if len(*moves) != 2 {
		t.Fatalf("moves = %v, want move and pass", *moves)
	}
	if pass := (*moves)[1]; !pass.passed || pass.color != board.White {
		t.Errorf("second event = %+v, want White pass", pass)
	}
	if !e.IsMyTurn() {
		t.Error("Black should move again after White passes")
	}
	if s := e.GetBoardState(); s.PlayerToMove != board.Black {
		t.Errorf("PlayerToMove = %s, want Black", s.PlayerToMove)
	}
}

func TestUndo(t *testing.T) {
	e, _, _ := newTestEngine(t, testConfig())
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("Undo on new game = %v, want ErrNothingToUndo", err)
	}
	if err := e.PlayMove(mustPos(t, "c4")); err != nil {
		t.Fatal(err)
	}
	if err := e.PlayMove(e.GetBoardState().Legal[0]); err != nil {
		t.Fatal(err)
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	s := e.GetBoardState()
	if s.MoveNumber != 2 || !e.IsMyTurn() {
		t.Fatalf("after undo: MoveNumber = %d, my turn = %v", s.MoveNumber, e.IsMyTurn())
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("second Undo: %v", err)
	}
	s = e.GetBoardState()
	if s.Board != *board.Start() || s.MoveNumber != 0 || s.LastMove != nil {
		t.Fatal("second undo should restore the start position")
	}
}

func TestUndoAfterGameEnd(t *testing.T) {
	cfg := testConfig()
	cfg.Transcript = wipeout
	e, _, _ := newTestEngine(t, cfg)
	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	s := e.GetBoardState()
	if s.Finished() || !e.IsMyTurn() || s.MoveNumber != 8 {
		t.Fatalf("after undo: phase %s, my turn %v, move %d", s.Phase, e.IsMyTurn(), s.MoveNumber)
	}
}

func TestFullGameAgainstComputer(t *testing.T) {
	e, moves, outcomes := newTestEngine(t, testConfig())
	for i := 0; i < 64 && len(*outcomes) == 0; i++ {
		s := e.GetBoardState()
		if !e.IsMyTurn() {
			t.Fatalf("not my turn with game running at move %d", s.MoveNumber)
		}
		if err := e.PlayMove(s.Legal[len(s.Legal)-1]); err != nil {
			t.Fatalf("PlayMove: %v", err)
		}
	}
	if len(*outcomes) != 1 {
		t.Fatalf("game did not end: %v", *outcomes)
	}
	s := e.GetBoardState()
	if s.Black+s.White > board.NumCells {
		t.Errorf("disc total %d", s.Black+s.White)
	}
	if want := Outcome(s.Black, s.White); (*outcomes)[0] != want {
		t.Errorf("outcome = %q, want %q", (*outcomes)[0], want)
	}
	// Replaying the transcript must reproduce the final board.
	b := board.Start()
	if _, err := e.Transcript().Replay(b); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if *b != s.Board {
		t.Error("transcript does not reproduce the board")
	}
	played := 0
	for _, m := range *moves {
		if !m.passed {
			played++
		}
	}
	if played != s.MoveNumber {
		t.Errorf("callbacks reported %d moves, transcript has %d", played, s.MoveNumber)
	}
}

func TestAsynchronousComputerMove(t *testing.T) {
	e := New(testConfig())
	done := make(chan board.Color, 4)
	e.OnMove(func(_ board.Pos, c board.Color, _ bool, _ *types.BoardState) {
		done <- c
	})
	if err := e.Connect(); err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if err := e.PlayMove(mustPos(t, "c4")); err != nil {
		t.Fatal(err)
	}
	for _, want := range []board.Color{board.Black, board.White} {
		select {
		case c := <-done:
			if c != want {
				t.Fatalf("move by %s, want %s", c, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for the computer")
		}
	}
}

func TestStateReadableDuringSearch(t *testing.T) {
	cfg := testConfig()
	cfg.PlayerColor = board.White
	e := New(cfg)
	started := make(chan struct{})
	release := make(chan struct{})
	e.beforeSearch = func() {
		close(started)
		<-release
	}
	moved := make(chan struct{}, 1)
	e.OnMove(func(board.Pos, board.Color, bool, *types.BoardState) {
		moved <- struct{}{}
	})
	if err := e.Connect(); err != nil {
		t.Fatal(err)
	}

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("computer never started searching")
	}

	read := make(chan *types.BoardState)
	go func() { read <- e.GetBoardState() }()
	select {
	case s := <-read:
		if s.MoveNumber != 0 || e.IsMyTurn() {
			t.Errorf("MoveNumber = %d, my turn %v while the computer searches", s.MoveNumber, e.IsMyTurn())
		}
	case <-time.After(5 * time.Second):
		close(release)
		t.Fatal("GetBoardState blocked during the search")
	}

	closed := make(chan struct{})
	go func() {
		e.Close()
		close(closed)
	}()
	deadline := time.Now().Add(5 * time.Second)
	for {
		e.mu.Lock()
		done := e.closed
		e.mu.Unlock()
		if done || time.Now().After(deadline) {
			break
		}
		time.Sleep(time.Millisecond)
	}
	close(release)
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return after the search")
	}
	select {
	case <-moved:
		t.Error("computer moved after Close")
	default:
	}
	if n := e.Transcript().Len(); n != 0 {
		t.Errorf("transcript has %d moves after Close, want 0", n)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		black, white int
		want         string
	}{
		{40, 24, "Black wins 40-24"},
		{20, 44, "White wins 44-20"},
		{32, 32, "Draw 32-32"},
	}
	for _, tt := range tests {
		if got := Outcome(tt.black, tt.white); got != tt.want {
			t.Errorf("Outcome(%d, %d) = %q, want %q", tt.black, tt.white, got, tt.want)
		}
	}
}
