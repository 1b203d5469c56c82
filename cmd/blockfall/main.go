// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall list              - List available variants
//	blockfall play [game]       - Play in the Bubble Tea UI (menu when no game given)
//	blockfall classic           - Play on the raw terminal, original style
//	blockfall serve             - Start SSH server for remote play
//	blockfall history           - Show recorded games
//
// Global flags:
//
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--tick <duration> - Override the tick interval (e.g. 300ms)
//	--config <path>   - Load game config from a YAML file
//	--db <path>       - Record finished games in a SQLite database
//	--debug           - Write per-tick traces to ~/.blockfall/debug.log
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/platform/term"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	// Global flags
	flagSeed   int64
	flagTick   time.Duration
	flagConfig string
	flagDBPath string
	flagPlayer string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - falling blocks in your terminal",
	Long: `Blockfall is a falling-block puzzle game played in the terminal.

Pieces fall one row per tick. Move them with A and D, drop with S,
pause with P, restart with R and leave with X. Filled rows stay on the
board; the game ends when a new piece has no room to appear.

Available commands:
  list     - Show the game variants
  play     - Play in the full-screen UI
  classic  - Play on the raw terminal
  serve    - Start SSH server for remote play
  history  - Show recorded games

Examples:
  blockfall play
  blockfall play tetris_classic --seed 42
  blockfall classic --tick 300ms
  blockfall serve --db ~/.blockfall/history.db
  blockfall history --db ~/.blockfall/history.db`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().DurationVar(&flagTick, "tick", 0, "Tick interval override (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (empty = no history)")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name for history records")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write per-tick debug traces to ~/.blockfall/debug.log")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(classicCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadGameConfig reads the YAML config and applies the global flag overrides.
func loadGameConfig() (config.TetrisConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagTick > 0 {
		cfg.TickInterval = flagTick
	}
	return cfg, nil
}

// runtimeConfig builds the platform config. Rules from the YAML file only
// override the variant presets when a file was given explicitly.
func runtimeConfig(cfg config.TetrisConfig) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.Size(os.Stdout); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	rc.TickInterval = cfg.TickInterval
	rc.Seed = flagSeed
	if flagConfig != "" {
		rules := cfg.Rules()
		rc.Rules = &rules
	}
	return rc
}

// openStore opens the history database when --db is set. Nil means no history.
func openStore(logger *log.Logger) *storage.Store {
	if flagDBPath == "" {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		return nil
	}
	return store
}

// newLogger returns a stderr logger for warnings. With --debug it writes
// debug traces to ~/.blockfall/debug.log instead, so they never land on the
// game screen. The returned func closes the log file.
func newLogger(prefix string) (*log.Logger, func()) {
	opts := log.Options{ReportTimestamp: true, Prefix: prefix}
	if !flagDebug {
		return log.NewWithOptions(os.Stderr, opts), func() {}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		dir := filepath.Join(home, ".blockfall")
		if err = os.MkdirAll(dir, 0o755); err == nil {
			var f *os.File
			f, err = os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err == nil {
				opts.Level = log.DebugLevel
				return log.NewWithOptions(f, opts), func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(os.Stderr, opts)
	logger.Warn("debug log unavailable", "error", err)
	return logger, func() {}
}
