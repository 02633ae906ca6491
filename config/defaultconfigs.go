package config

import (
	"os"
	"path/filepath"
)

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground:     true,
		DrawLastPlayedBackground: true,
		FullWidthLetters:         false,
		ShowHints:                false,
		Colors: ConfigColors{
			BoardColor:        28,
			BoardColorAlt:     22,
			BlackColor:        232,
			WhiteColor:        255,
			HintColor:         148,
			CursorColorFG:     2,
			CursorColorBG:     4,
			LastPlayedColorBG: 94,
		},
		Symbols: ConfigSymbols{
			BlackDisc:   '●',
			WhiteDisc:   '●',
			BoardSquare: '·',
			Hint:        '∘',
			Cursor:      '+',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Search: SearchConfig{
			Depth:       3,
			PhaseCutoff: 54,
			Ordering:    "corners",
		},
		Log: LogConfig{
			Path:  filepath.Join(os.TempDir(), "reversi-local-debug.log"),
			Debug: false,
		},
	}
}
