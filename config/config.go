package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"reversi-local/board"
)

var (
	cfgFile   = "reversi-local/config.json"
	envPrefix = "REVERSI"
)

// Search depth limits, in turns.
const (
	MinDepth = 1
	MaxDepth = 6
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board" mapstructure:"board"`
	BoardColorAlt     int `json:"board_alt" mapstructure:"board_alt"`
	BlackColor        int `json:"black" mapstructure:"black"`
	WhiteColor        int `json:"white" mapstructure:"white"`
	HintColor         int `json:"hint" mapstructure:"hint"`
	CursorColorFG     int `json:"cursor_fg" mapstructure:"cursor_fg"`
	CursorColorBG     int `json:"cursor_bg" mapstructure:"cursor_bg"`
	LastPlayedColorBG int `json:"last_played_bg" mapstructure:"last_played_bg"`
}

type ConfigSymbols struct {
	BlackDisc   rune `json:"black" mapstructure:"black"`
	WhiteDisc   rune `json:"white" mapstructure:"white"`
	BoardSquare rune `json:"board" mapstructure:"board"`
	Hint        rune `json:"hint" mapstructure:"hint"`
	Cursor      rune `json:"cursor" mapstructure:"cursor"`
}

type Theme struct {
	DrawCursorBackground     bool          `json:"draw_cursor_bg" mapstructure:"draw_cursor_bg"`
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg" mapstructure:"draw_last_played_bg"`
	FullWidthLetters         bool          `json:"fullwidth_letters" mapstructure:"fullwidth_letters"`
	ShowHints                bool          `json:"show_hints" mapstructure:"show_hints"`
	Colors                   ConfigColors  `json:"colors" mapstructure:"colors"`
	Symbols                  ConfigSymbols `json:"symbols" mapstructure:"symbols"`
}

// SearchConfig holds the computer player's settings.
type SearchConfig struct {
	Depth       int    `json:"depth" mapstructure:"depth"`               // turns; one turn is two plies
	PhaseCutoff int    `json:"phase_cutoff" mapstructure:"phase_cutoff"` // occupied cells
	Ordering    string `json:"ordering" mapstructure:"ordering"`         // "corners" or "rowmajor"
}

// LogConfig controls the debug log. The terminal belongs to the UI, so logs
// always go to a file.
type LogConfig struct {
	Path  string `json:"path" mapstructure:"path"`
	Debug bool   `json:"debug" mapstructure:"debug"`
}

type Config struct {
	Theme  Theme        `json:"theme" mapstructure:"theme"`
	Search SearchConfig `json:"search" mapstructure:"search"`
	Log    LogConfig    `json:"log" mapstructure:"log"`
}

// InitConfig loads the config file from the XDG config directories, if one
// exists, and applies environment overrides.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		absPath = ""
	}
	return Load(absPath)
}

// Load reads the config at path on top of DefaultConfig. An empty path skips
// the file. REVERSI_* environment variables override file values, e.g.
// REVERSI_SEARCH_DEPTH or REVERSI_LOG_PATH.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	config := DefaultConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys must be known to viper for env overrides to reach Unmarshal.
	v.SetDefault("search.depth", DefaultConfig.Search.Depth)
	v.SetDefault("search.phase_cutoff", DefaultConfig.Search.PhaseCutoff)
	v.SetDefault("search.ordering", DefaultConfig.Search.Ordering)
	v.SetDefault("log.path", DefaultConfig.Log.Path)
	v.SetDefault("log.debug", DefaultConfig.Log.Debug)
	return v
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.BlackDisc, c.Theme.Symbols.WhiteDisc, c.Theme.Symbols.BoardSquare, c.Theme.Symbols.Hint} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if c.Search.Depth < MinDepth || c.Search.Depth > MaxDepth {
		return &InvalidConfig{fmt.Sprintf("search depth must be between %d and %d", MinDepth, MaxDepth)}
	}
	if c.Search.PhaseCutoff < 0 || c.Search.PhaseCutoff > board.NumCells {
		return &InvalidConfig{fmt.Sprintf("phase cutoff must be between 0 and %d", board.NumCells)}
	}
	if _, err := board.ParseOrder(c.Search.Ordering); err != nil {
		return &InvalidConfig{err.Error()}
	}
	return nil
}

// Order returns the configured move ordering.
func (c *Config) Order() *board.Order {
	o, err := board.ParseOrder(c.Search.Ordering)
	if err != nil {
		return board.CornersFirst
	}
	return o
}

func (c *Config) Save() {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		panic(err)
	}
	if err := saveCfgFile(absPath, c, 0664); err != nil {
		panic(err)
	}
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}
