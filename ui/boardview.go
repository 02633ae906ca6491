// Package ui specifies custom controls for tview to assist in playing reversi in the terminal.
package ui

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"reversi-local/board"
	"reversi-local/config"
	"reversi-local/engine"
	"reversi-local/types"
)

// BoardUI draws the board and turns key presses into engine calls.
type BoardUI struct {
	Box        *tview.Box
	BoardState *types.BoardState
	hint       *tview.TextView
	cfg        *config.Config
	sel        *board.Pos
	passed     board.Color // side that passed most recently, or Empty
	message    string      // last error shown in the status bar
	showHints  bool
	focusMode  bool
	app        *tview.Application
	eng        engine.GameEngine
	styles     boardStyles
	infoPanel  *GameInfoPanel

	// seq orders engine notifications, which arrive on the engine's goroutine.
	seq     atomic.Uint64
	applied uint64

	// OnQuit is called for 'q' when nothing is selected.
	OnQuit        func()
	// OnFocusChange is called after 'f' toggles focus mode.
	OnFocusChange func(focus bool)
}

type boardStyles struct {
	board, boardAlt    tcell.Color
	black, white       tcell.Color
	hint               tcell.Color
	cursorFG, cursorBG tcell.Color
	lastPlayedBG       tcell.Color
}

// NewBoard creates the board widget. app may be nil in tests; updates are
// then applied immediately.
func NewBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *BoardUI {
	b := &BoardUI{
		Box:        tview.NewBox(),
		BoardState: types.NewBoardState(""),
		hint:       hint,
		app:        app,
	}
	b.SetConfig(c)
	b.Box.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		if b.BoardState == nil {
			return x, y, 1, 1
		}
		drawBoard(screen, x, y, b.BoardState, b.cfg, b.styles, b.sel, b.hintsVisible())
		return x, y, board.Size*2 + 4, board.Size + 2
	})
	return b
}

// SetConfig applies a theme.
func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = boardStyles{
		board:        tcell.PaletteColor(c.Theme.Colors.BoardColor),
		boardAlt:     tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),
		black:        tcell.PaletteColor(c.Theme.Colors.BlackColor),
		white:        tcell.PaletteColor(c.Theme.Colors.WhiteColor),
		hint:         tcell.PaletteColor(c.Theme.Colors.HintColor),
		cursorFG:     tcell.PaletteColor(c.Theme.Colors.CursorColorFG),
		cursorBG:     tcell.PaletteColor(c.Theme.Colors.CursorColorBG),
		lastPlayedBG: tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG),
	}
	g.cfg = c
	g.showHints = c.Theme.ShowHints
}

// SetDepth shows the search depth on the info panel.
func (g *BoardUI) SetDepth(turns int) {
	if g.infoPanel != nil {
		g.infoPanel.SetDepth(turns)
	}
}

// ConnectEngine connects the board to a game engine and starts the game.
func (g *BoardUI) ConnectEngine(e engine.GameEngine) error {
	g.eng = e
	g.passed = board.Empty
	g.message = ""
	g.ResetSelection()
	player := e.GetPlayerColor()

	e.OnMove(func(p board.Pos, color board.Color, passed bool, state *types.BoardState) {
		seq := g.seq.Add(1)
		g.update(func() {
			if g.eng != e {
				return
			}
			if passed {
				g.passed = color
			} else if color == player {
				g.passed = board.Empty
			}
			g.applyState(seq, state)
		})
	})

	e.OnGameEnd(func(outcome string) {
		g.update(func() {
			if g.eng != e {
				return
			}
			g.ResetSelection()
			g.refreshHint()
		})
	})

	// Subscribe before connecting so a computer opening is not missed.
	g.BoardState = types.NewBoardState("")
	g.applied = 0
	g.seq.Store(0)
	if err := e.Connect(); err != nil {
		return err
	}
	g.applyState(g.seq.Add(1), e.GetBoardState())
	return nil
}

// update runs f on the UI goroutine.
func (g *BoardUI) update(f func()) {
	if g.app == nil {
		f()
		return
	}
	// Engine callbacks may run on the UI goroutine itself.
	go g.app.QueueUpdateDraw(f)
}

// applyState installs a snapshot unless a newer one is already shown.
func (g *BoardUI) applyState(seq uint64, state *types.BoardState) {
	if seq < g.applied {
		return
	}
	g.applied = seq
	g.BoardState = state
	if state.Finished() {
		g.ResetSelection()
	}
	g.refreshHint()
}

// IsMyTurn reports whether the shown position waits for the human.
func (g *BoardUI) IsMyTurn() bool {
	return g.eng != nil && !g.BoardState.Finished() && g.BoardState.PlayerToMove == g.eng.GetPlayerColor()
}

// IsFinished returns true if the game is over.
func (g *BoardUI) IsFinished() bool {
	return g.BoardState.Finished()
}

func (g *BoardUI) hintsVisible() bool {
	return g.showHints && g.IsMyTurn()
}

// ToggleHints shows or hides the legal moves.
func (g *BoardUI) ToggleHints() bool {
	g.showHints = !g.showHints
	g.refreshHint()
	return g.showHints
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *BoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *BoardUI) IsFocusMode() bool {
	return g.focusMode
}

func (g *BoardUI) SelectedTile() *board.Pos {
	return g.sel
}

func (g *BoardUI) ResetSelection() {
	g.sel = nil
}

// MoveSelection moves the cursor by (h, v). The first call places it on the
// last move, or on the first legal move when there is none.
func (g *BoardUI) MoveSelection(h, v int) {
	if g.BoardState.Finished() {
		g.ResetSelection()
		return
	}
	if g.sel == nil {
		p := board.Pos{Col: 3, Row: 3}
		if g.BoardState.LastMove != nil {
			p = *g.BoardState.LastMove
		} else if len(g.BoardState.Legal) > 0 {
			p = g.BoardState.Legal[0]
		}
		g.sel = &p
		return
	}
	next := board.Pos{Col: g.sel.Col + h, Row: g.sel.Row + v}
	if !next.Valid() {
		return
	}
	g.sel = &next
}

// PlayMove plays the human's disc at p and reports failures in the status bar.
func (g *BoardUI) PlayMove(p board.Pos) {
	if g.eng == nil || g.IsFinished() {
		return
	}
	if !g.IsMyTurn() {
		g.message = "Wait for your turn"
		g.refreshHint()
		return
	}
	if err := g.eng.PlayMove(p); err != nil {
		g.message = fmt.Sprintf("Can't play %s: %s", p, err)
		g.refreshHint()
		return
	}
	g.message = ""
}

// Undo takes back the human's last move and the computer's replies.
func (g *BoardUI) Undo() {
	if g.eng == nil {
		return
	}
	if !g.IsMyTurn() && !g.IsFinished() {
		g.message = "Wait for your turn"
		g.refreshHint()
		return
	}
	if err := g.eng.Undo(); err != nil {
		g.message = fmt.Sprintf("Can't undo: %s", err)
		g.refreshHint()
		return
	}
	g.message = ""
	g.passed = board.Empty
	g.applyState(g.seq.Add(1), g.eng.GetBoardState())
}

// Close disconnects the engine. With an application running, the engine is
// closed in the background so a search in progress does not stall the UI;
// its late callbacks are ignored.
func (g *BoardUI) Close() {
	if g.eng == nil {
		return
	}
	e := g.eng
	g.eng = nil
	if g.app == nil {
		e.Close()
		return
	}
	go e.Close()
}

// HandleKey implements the game view's key bindings.
func (g *BoardUI) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		g.MoveSelection(0, -1)
	case tcell.KeyDown:
		g.MoveSelection(0, 1)
	case tcell.KeyLeft:
		g.MoveSelection(-1, 0)
	case tcell.KeyRight:
		g.MoveSelection(1, 0)
	case tcell.KeyEnter:
		if sel := g.SelectedTile(); sel != nil {
			g.PlayMove(*sel)
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			g.MoveSelection(-1, 0)
		case 'j':
			g.MoveSelection(0, 1)
		case 'k':
			g.MoveSelection(0, -1)
		case 'l':
			g.MoveSelection(1, 0)
		case 'u':
			g.Undo()
		case 'v':
			g.ToggleHints()
		case 'f':
			focus := g.ToggleFocusMode()
			if g.OnFocusChange != nil {
				g.OnFocusChange(focus)
			}
		case 'q':
			if g.SelectedTile() != nil {
				g.ResetSelection()
			} else if g.OnQuit != nil {
				g.OnQuit()
			}
			return nil
		}
	}
	return event
}

func (g *BoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetBoardState(g.BoardState)
	}
	if g.hint != nil {
		g.hint.SetText(g.statusText())
	}
}

func (g *BoardUI) statusText() string {
	if g.focusMode {
		return "  f to toggle"
	}

	var sb strings.Builder
	if g.IsFinished() {
		sb.WriteString("───────── Game Complete ─────────\n\n")
		fmt.Fprintf(&sb, "  Result: %s\n", g.BoardState.Outcome)
		sb.WriteString("\n  u · undo   q · return to menu")
		return sb.String()
	}

	if g.passed.IsDisc() {
		fmt.Fprintf(&sb, "  ○ %s passed\n", g.passed)
	}
	if g.message != "" {
		fmt.Fprintf(&sb, "  ! %s\n", g.message)
	}
	if g.IsMyTurn() {
		color := g.eng.GetPlayerColor()
		fmt.Fprintf(&sb, "  %s Your move (%s)\n", discGlyph(color), color)
	} else {
		sb.WriteString("  ◌ Thinking...\n")
	}
	sb.WriteString(`
  hjkl/↑↓←→ move   ⏎ play   u undo
  v hints   f focus   q quit`)
	return sb.String()
}

func discGlyph(c board.Color) string {
	if c == board.White {
		return "○"
	}
	return "●"
}

// drawBoard renders state with its top-left corner at (x, y): row digits in
// the first columns, two screen cells per board cell, column letters below.
func drawBoard(screen tcell.Screen, x, y int, state *types.BoardState, cfg *config.Config, st boardStyles, sel *board.Pos, hints bool) {
	left := x + 3
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			p := board.Pos{Col: col, Row: row}
			bg := st.board
			if (col+row)%2 == 1 {
				bg = st.boardAlt
			}
			r := cfg.Theme.Symbols.BoardSquare
			fg := st.cursorFG

			switch state.Board.Get(p) {
			case board.Black:
				r, fg = cfg.Theme.Symbols.BlackDisc, st.black
			case board.White:
				r, fg = cfg.Theme.Symbols.WhiteDisc, st.white
			default:
				if hints && state.IsLegal(p) {
					r, fg = cfg.Theme.Symbols.Hint, st.hint
				}
			}

			if sel != nil && *sel == p {
				if cfg.Theme.DrawCursorBackground {
					bg = st.cursorBG
				} else if state.Board.Get(p) == board.Empty {
					r = cfg.Theme.Symbols.Cursor
				}
			} else if state.LastMove != nil && *state.LastMove == p && cfg.Theme.DrawLastPlayedBackground {
				bg = st.lastPlayedBG
			}

			style := tcell.StyleDefault.Background(bg).Foreground(fg)
			screen.SetContent(left+col*2, y+row, r, nil, style)
			screen.SetContent(left+col*2+1, y+row, ' ', nil, style)
		}
	}
	drawCoordinates(screen, x, y, cfg, st, sel, state.LastMove)
}

func drawCoordinates(s tcell.Screen, x, y int, cfg *config.Config, st boardStyles, sel, last *board.Pos) {
	letter := 'A'
	if cfg.Theme.FullWidthLetters {
		letter = 'Ａ'
	}

	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(st.cursorBG)
	lpHighlight := tcell.StyleDefault.Background(st.lastPlayedBG)

	pick := func(selected, lastPlayed bool) tcell.Style {
		switch {
		case selected:
			return highlight
		case lastPlayed:
			return lpHighlight
		}
		return style
	}

	for col := 0; col < board.Size; col++ {
		cs := pick(sel != nil && sel.Col == col, last != nil && last.Col == col)
		s.SetContent(x+3+col*2, y+board.Size+1, letter+rune(col), nil, cs)
		s.SetContent(x+3+col*2+1, y+board.Size+1, ' ', nil, cs)
	}
	for row := 0; row < board.Size; row++ {
		rs := pick(sel != nil && sel.Row == row, last != nil && last.Row == row)
		s.SetContent(x+1, y+row, rune('0'+row), nil, rs)
	}
}
