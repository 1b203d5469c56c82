package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/platform/term"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/storage"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

var flagVariant string

var classicCmd = &cobra.Command{
	Use:   "classic",
	Short: "Play on the raw terminal",
	Long: `Play without the full-screen UI: the terminal is switched to raw mode
and the board is redrawn as plain text every tick.

With the classic variant (the default) the game stops after "Game Over!".
Set features.exit_on_game_over to false in a config file to keep the
board up and restart with R instead.

Examples:
  blockfall classic
  blockfall classic --variant modern
  blockfall classic --seed 7 --tick 200ms`,
	Args: cobra.NoArgs,
	RunE: runClassic,
}

func init() {
	classicCmd.Flags().StringVar(&flagVariant, "variant", string(config.VariantClassic), "Rule preset: classic or modern")
}

func runClassic(cmd *cobra.Command, args []string) error {
	variant, err := config.ParseVariant(flagVariant)
	if err != nil {
		return err
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	if flagConfig == "" {
		config.ApplyVariant(&cfg, variant)
	}

	logger, closeLog := newLogger("blockfall")
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rules := cfg.Rules()

	game := tetris.New()
	if variant == config.VariantClassic {
		game = tetris.NewClassic()
	}
	game.Reset(core.RuntimeConfig{TickInterval: cfg.TickInterval, Seed: seed, Rules: &rules})
	player := tui.PlayerHandle(flagPlayer)

	record := func(st core.GameState, reason string) {
		if store == nil || st.Ticks == 0 {
			return
		}
		if _, err := store.SaveGame(storage.GameRecord{
			GameID:       game.ID(),
			Player:       player,
			PiecesLocked: st.Locked,
			Ticks:        st.Ticks,
			Seed:         seed,
			EndReason:    reason,
		}); err != nil {
			logger.Warn("could not record game", "error", err)
		}
	}

	tm, err := term.Open(os.Stdin)
	if err != nil {
		return err
	}
	defer tm.Restore()
	if !tm.Raw() {
		logger.Warn("stdin is not a terminal, keys are read as they arrive")
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keys := tetris.NewKeyPump(sigCtx, tm.Reader())
	ctx, cancel := keys.StopOnReadError(sigCtx)
	defer cancel()

	renderer := term.NewRenderer(os.Stdout, rules, cfg.EmptyGlyph())
	loop := tetris.Loop{
		Engine:         game.Engine(),
		Interval:       cfg.TickInterval,
		ExitOnGameOver: cfg.Features.ExitOnGameOver,
		OnRestart: func(st core.GameState) {
			reason := storage.EndRestart
			if st.GameOver {
				reason = storage.EndGameOver
			}
			record(st, reason)
		},
	}
	if flagDebug {
		loop.Logger = logger
	}

	result, runErr := loop.Run(ctx, term.WithInterrupts(keys), renderer)
	logger.Debug("loop stopped", "result", result, "error", runErr)

	final := game.State()
	reason := storage.EndExit
	if final.GameOver {
		reason = storage.EndGameOver
	}
	record(final, reason)

	switch result {
	case tetris.ResultQuit:
		renderer.Message("Exiting game...")
	case tetris.ResultGameOver:
		renderer.Message("Game Over!")
	}
	if store != nil {
		if best, err := store.BestGame(game.ID()); err == nil && best > 0 {
			renderer.Message(fmt.Sprintf("Best game: %d pieces", best))
		}
	}

	select {
	case <-keys.Done():
		if readErr := keys.Err(); readErr != nil {
			return fmt.Errorf("classic: read keys: %w", readErr)
		}
	default:
	}
	if runErr != nil && sigCtx.Err() == nil {
		return fmt.Errorf("classic: %w", runErr)
	}
	return nil
}
