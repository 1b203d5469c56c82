package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the full-screen UI",
	Long: `Start the full-screen Bubble Tea UI. Without a game argument a menu
lets you pick the variant or browse recorded games.

Controls:
  A / D      - Move left / right
  S          - Move down one row
  W          - Rotate (tetris only)
  Space      - Hard drop (tetris only)
  P          - Pause
  R          - Restart
  X          - Exit
  Esc        - Back to the menu
  Ctrl+S     - Save a screenshot to ~/.blockfall/screenshots

Examples:
  blockfall play
  blockfall play tetris
  blockfall play tetris_classic --tick 250ms
  blockfall play --config ./my-tetris.yaml --db ~/.blockfall/history.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown game %q (run 'blockfall list' to see variants)", gameID)
		}
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog := newLogger("blockfall")
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	player := tui.PlayerHandle(flagPlayer)
	logger.Debug("starting game", "game", gameID, "player", player, "tick", cfg.TickInterval)

	if err := tui.Run(store, runtimeConfig(cfg), player, gameID); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
