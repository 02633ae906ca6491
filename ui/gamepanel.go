package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"reversi-local/board"
	"reversi-local/types"
)

const maxVisibleMoves = 12

// GameInfoPanel displays disc counts, search statistics and the move list
// alongside the board.
type GameInfoPanel struct {
	box        *tview.TextView
	boardState *types.BoardState
	depth      int
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoardState updates the panel with current board state.
func (p *GameInfoPanel) SetBoardState(state *types.BoardState) {
	p.boardState = state
	p.refresh()
}

// SetDepth sets the search depth shown in the panel.
func (p *GameInfoPanel) SetDepth(turns int) {
	p.depth = turns
	p.refresh()
}

func (p *GameInfoPanel) refresh() {
	p.box.SetText(p.text())
}

func (p *GameInfoPanel) text() string {
	s := p.boardState
	if s == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("[white::b]Game Info[-:-:-]\n")
	sb.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&sb, "[white]Black:[-:-:-] %d  [white]White:[-:-:-] %d\n", s.Black, s.White)
	fmt.Fprintf(&sb, "[white]Move:[-:-:-] %d\n", s.MoveNumber)
	if p.depth > 0 {
		fmt.Fprintf(&sb, "[white]Depth:[-:-:-] %d\n", p.depth)
	}
	if !s.Finished() {
		fmt.Fprintf(&sb, "[white]To move:[-:-:-] %s\n", s.PlayerToMove)
	}

	if si := s.LastSearch; si != nil {
		sb.WriteString("\n[white::b]Search[-:-:-]\n")
		sb.WriteString("[dimgray]──────────────────────[-:-:-]\n")
		fmt.Fprintf(&sb, "[white]Played:[-:-:-] %s (%+d)\n", si.Move, si.Score)
		fmt.Fprintf(&sb, "[white]Nodes:[-:-:-] %d\n", si.Nodes)
		fmt.Fprintf(&sb, "[white]Time:[-:-:-] %dms\n", si.ElapsedMs)
	}

	if len(s.Moves) > 0 {
		sb.WriteString("\n[white::b]Moves[-:-:-]\n")
		sb.WriteString("[dimgray]──────────────────────[-:-:-]\n")

		start := 0
		if len(s.Moves) > maxVisibleMoves {
			start = len(s.Moves) - maxVisibleMoves
		}
		for i := start; i < len(s.Moves); i++ {
			m := s.Moves[i]
			colorStr := "[white]B[-]"
			if m.Color == board.White {
				colorStr = "[dimgray]W[-]"
			}
			marker := " "
			if i == len(s.Moves)-1 {
				marker = "[white]>[-]"
			}
			fmt.Fprintf(&sb, "%s[dimgray]%3d.[-] %s %s\n", marker, i+1, colorStr, m.Pos)
		}
		if start > 0 {
			fmt.Fprintf(&sb, "[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	return sb.String()
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(b *BoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, b, hint)
	return gameFrame
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(form, maxWidth, 0, true)
	centered.AddItem(nil, 0, 1, false)

	return centered
}

// RebuildNormalLayout lays out the board, the info panel and the status bar.
func RebuildNormalLayout(gameFrame *tview.Flex, b *BoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	if b.infoPanel == nil {
		b.infoPanel = NewGameInfoPanel()
	}
	if b.BoardState != nil {
		b.infoPanel.SetBoardState(b.BoardState)
	}

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(b.Box, 0, 1, true)
	boardRow.AddItem(b.infoPanel.Box(), 26, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 6, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, b *BoardUI) {
	gameFrame.Clear()

	boardWidth := board.Size*2 + 4
	boardHeight := board.Size + 2

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(b.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}
