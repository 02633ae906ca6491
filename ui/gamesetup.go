package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"reversi-local/board"
	"reversi-local/config"
	"reversi-local/engine"
)

var orderingNames = []string{"corners", "rowmajor"}

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(engine.GameConfig)
	onCancel func()
	onColors func()

	cfg         *config.Config
	playerColor board.Color
	depth       int
	cutoff      int
	ordering    string
}

// NewGameSetup creates a new game setup form seeded from cfg. Starting a
// game writes the chosen search settings and hint preference back to cfg.
func NewGameSetup(cfg *config.Config, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:     onStart,
		onCancel:    onCancel,
		onColors:    onColors,
		cfg:         cfg,
		playerColor: board.Black,
		depth:       cfg.Search.Depth,
		cutoff:      cfg.Search.PhaseCutoff,
		ordering:    cfg.Search.Ordering,
	}

	colors := []string{"Black (play first)", "White (play second)"}
	var depths []string
	for d := config.MinDepth; d <= config.MaxDepth; d++ {
		label := strconv.Itoa(d)
		switch d {
		case config.MinDepth:
			label += " (fastest)"
		case config.MaxDepth:
			label += " (strongest)"
		}
		depths = append(depths, label)
	}
	orderings := []string{"Corners first", "Row by row"}

	form := tview.NewForm()

	form.AddDropDown("Your Color", colors, 0, func(option string, index int) {
		setup.playerColor = board.Black
		if index == 1 {
			setup.playerColor = board.White
		}
	})

	form.AddDropDown("Search Depth", depths, clamp(setup.depth, config.MinDepth, config.MaxDepth)-config.MinDepth, func(option string, index int) {
		setup.depth = config.MinDepth + index
	})

	form.AddInputField("Endgame At", strconv.Itoa(setup.cutoff), 4, func(text string, lastChar rune) bool {
		return lastChar >= '0' && lastChar <= '9'
	}, func(text string) {
		if val, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			setup.cutoff = val
		}
	})

	form.AddDropDown("Move Ordering", orderings, orderingIndex(setup.ordering), func(option string, index int) {
		if index >= 0 && index < len(orderingNames) {
			setup.ordering = orderingNames[index]
		}
	})

	form.AddCheckbox("Show Hints", cfg.Theme.ShowHints, func(checked bool) {
		cfg.Theme.ShowHints = checked
	})

	form.AddButton("Start Game", func() {
		gameCfg, err := setup.GameConfig()
		if err != nil {
			form.SetTitle(fmt.Sprintf(" New Game: %s ", err))
			return
		}
		form.SetTitle(" New Game ")
		onStart(gameCfg)
	})

	form.AddButton("Board Color", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(tcell.ColorDarkCyan)
	form.SetButtonTextColor(tcell.ColorWhite)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(tcell.ColorGray)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// GameConfig validates the form values, stores them in the config and
// returns the game configuration they describe.
func (s *GameSetupUI) GameConfig() (engine.GameConfig, error) {
	search := config.SearchConfig{Depth: s.depth, PhaseCutoff: s.cutoff, Ordering: s.ordering}
	candidate := *s.cfg
	candidate.Search = search
	if err := candidate.Validate(); err != nil {
		return engine.GameConfig{}, err
	}
	s.cfg.Search = search
	return engine.GameConfig{
		PlayerColor: s.playerColor,
		Depth:       s.depth,
		PhaseCutoff: s.cutoff,
		Order:       s.cfg.Order(),
	}, nil
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}

func orderingIndex(name string) int {
	for i, n := range orderingNames {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
