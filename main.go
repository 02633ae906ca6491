// reversi-local is a terminal application to play reversi against a local
// alpha-beta search.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"reversi-local/board"
	"reversi-local/config"
	"reversi-local/engine"
	"reversi-local/engine/local"
	"reversi-local/logging"
	"reversi-local/transcript"
	"reversi-local/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagColor      = flag.String("color", "", "Player color (black or white)")
	flagDepth      = flag.Int("depth", 0, "Search depth in turns (1-6)")
	flagCutoff     = flag.Int("cutoff", -1, "Occupied cells at which the computer counts discs (0-64)")
	flagOrder      = flag.String("order", "", "Move ordering (corners or rowmajor)")
	flagTranscript = flag.String("transcript", "", "Moves to replay before play starts, e.g. bc4wc5")
	flagLoad       = flag.String("load", "", "Read the moves to replay from a transcript file")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagPlain      = flag.Bool("plain", false, "Play in a line-oriented text mode")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (fullscreen board)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var logger *zap.SugaredLogger

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("reversi-local %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	logger, err = logging.New(cfg.Log.Path, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	gameCfg, err := buildGameConfigFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}

	if *flagPlain {
		eng := local.New(gameCfg, local.WithSynchronousMoves(), local.WithLogger(logger))
		if err := runPlain(eng, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		return
	}

	quickStart := *flagQuickStart || *flagColor != "" || *flagDepth > 0 || *flagCutoff >= 0 ||
		*flagOrder != "" || *flagTranscript != "" || *flagLoad != "" || *flagFocus

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ● reversi ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoard(app, cfg, gameHint)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.OnQuit = func() {
		gameBoard.Close()
		rootPage.SwitchToPage("setup")
	}
	gameBoard.OnFocusChange = func(focus bool) {
		if focus {
			ui.BuildFocusLayout(gameFrame, gameBoard)
		} else {
			ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
		}
	}
	gameBoard.Box.SetInputCapture(gameBoard.HandleKey)

	// Game setup screen
	setupUI := ui.NewGameSetup(cfg,
		func(gameCfg engine.GameConfig) {
			gameBoard.SetConfig(cfg)
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, func() {
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	rootPage.AddPage("setup", setupUI.Form(), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(gameCfg)
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	err = app.SetRoot(rootPage, true).Run()
	gameBoard.Close()
	if err != nil {
		logger.Errorw("application stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	gameBoard.Close()
	gameBoard.SetDepth(gameCfg.Depth)

	eng := local.New(gameCfg, local.WithLogger(logger))
	if err := gameBoard.ConnectEngine(eng); err != nil {
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.RemovePage("error")
				rootPage.SwitchToPage("setup")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	rootPage.SwitchToPage("gameview")
}

// buildGameConfigFromFlags creates a GameConfig from the config file and
// command-line flags.
func buildGameConfigFromFlags() (engine.GameConfig, error) {
	gameCfg := engine.GameConfig{
		PlayerColor: board.Black,
		Depth:       cfg.Search.Depth,
		PhaseCutoff: cfg.Search.PhaseCutoff,
		Order:       cfg.Order(),
	}

	if *flagColor != "" {
		c, err := board.ParseColor(*flagColor)
		if err != nil {
			return gameCfg, err
		}
		gameCfg.PlayerColor = c
	}

	if *flagDepth != 0 {
		if *flagDepth < config.MinDepth || *flagDepth > config.MaxDepth {
			return gameCfg, fmt.Errorf("depth must be between %d and %d", config.MinDepth, config.MaxDepth)
		}
		gameCfg.Depth = *flagDepth
	}

	if *flagCutoff >= 0 {
		if *flagCutoff > board.NumCells {
			return gameCfg, fmt.Errorf("cutoff must be between 0 and %d", board.NumCells)
		}
		gameCfg.PhaseCutoff = *flagCutoff
	}

	if *flagOrder != "" {
		order, err := board.ParseOrder(*flagOrder)
		if err != nil {
			return gameCfg, err
		}
		gameCfg.Order = order
	}

	switch {
	case *flagTranscript != "" && *flagLoad != "":
		return gameCfg, fmt.Errorf("-transcript and -load are mutually exclusive")
	case *flagTranscript != "":
		gameCfg.Transcript = *flagTranscript
	case *flagLoad != "":
		header, t, err := transcript.Load(*flagLoad)
		if err != nil {
			return gameCfg, err
		}
		gameCfg.Transcript = t.String()
		logger.Infow("loaded transcript", "path", *flagLoad, "moves", t.Len(), "header", header)
	}

	return gameCfg, nil
}
