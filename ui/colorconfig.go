package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"reversi-local/board"
	"reversi-local/config"
	"reversi-local/types"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	selectedBoardColor int
	selectedHintColor  int
	editingHint        bool // true = editing hint color, false = editing board color
}

type paletteEntry struct {
	code int
	name string
}

// Felt-like board colors.
var boardColors = []paletteEntry{
	{22, "Dark Green"},
	{28, "Green"},
	{29, "Sea Green"},
	{34, "Bright Green"},
	{65, "Moss"},
	{71, "Fern"},
	{23, "Teal"},
	{24, "Dark Cyan"},
	{17, "Navy Blue"},
	{94, "Saddle Brown"},
	{136, "Dark Brown"},
	{236, "Charcoal"},
	{240, "Gray"},
}

// Hint colors, bright enough to read on a dark board.
var hintColors = []paletteEntry{
	{148, "Lime"},
	{226, "Yellow"},
	{214, "Orange"},
	{51, "Cyan"},
	{201, "Magenta"},
	{250, "Light Gray"},
	{196, "Red"},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:                cfg,
		onDone:             onDone,
		selectedBoardColor: cfg.Theme.Colors.BoardColor,
		selectedHintColor:  cfg.Theme.Colors.HintColor,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		entries := cc.entries()
		if index < 0 || index >= len(entries) {
			return
		}
		if cc.editingHint {
			cc.selectedHintColor = entries[index].code
		} else {
			cc.selectedBoardColor = entries[index].code
		}
	})

	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(cc.entries()) {
			return
		}
		if cc.editingHint {
			cc.cfg.Theme.Colors.HintColor = cc.selectedHintColor
			cc.cfg.Save()
			cc.editingHint = false
			cc.populateColorList()
			return
		}
		cc.cfg.Theme.Colors.BoardColor = cc.selectedBoardColor
		cc.cfg.Theme.Colors.BoardColorAlt = cc.selectedBoardColor
		cc.cfg.Save()
		onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) entries() []paletteEntry {
	if cc.editingHint {
		return hintColors
	}
	return boardColors
}

// populateColorList fills the list with the colors for the current mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	selected := cc.selectedBoardColor
	cc.colorList.SetTitle(" Select Board Color (Tab: switch to hints) ")
	if cc.editingHint {
		selected = cc.selectedHintColor
		cc.colorList.SetTitle(" Select Hint Color (Tab: switch to board) ")
	}

	for i, c := range cc.entries() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
		if c.code == selected {
			cc.colorList.SetCurrentItem(i)
		}
	}
}

// previewState is the start position after Black's first move, so the
// preview shows both disc colors, a last move and White's hints.
func previewState() *types.BoardState {
	s := types.NewBoardState("")
	b := board.Start()
	last := board.Pos{Col: 2, Row: 4}
	b.Place(last, board.Black)
	s.Board = *b
	s.LastMove = &last
	s.PlayerToMove = board.White
	s.Legal = b.MoveList(board.White)
	return s
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if width < board.Size*2+8 || height < board.Size+5 {
		return x, y, width, height
	}

	theme := *cc.cfg
	theme.Theme.Colors.BoardColor = cc.selectedBoardColor
	theme.Theme.Colors.BoardColorAlt = cc.selectedBoardColor
	theme.Theme.Colors.HintColor = cc.selectedHintColor

	preview := &BoardUI{}
	preview.SetConfig(&theme)
	drawBoard(screen, x+1, y+1, previewState(), &theme, preview.styles, nil, true)

	info := fmt.Sprintf("Board: %d  Hint: %d", cc.selectedBoardColor, cc.selectedHintColor)
	for i, ch := range info {
		if x+2+i < x+width-1 {
			screen.SetContent(x+2+i, y+board.Size+3, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between board color and hint color editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingHint = !cc.editingHint
	cc.populateColorList()
}
