package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/term"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagHistoryGame  string
	flagHistoryLimit int
	flagHistoryTUI   bool
	flagHistoryClear bool
	flagHistoryID    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded games",
	Long: `Show recent games and per-variant totals from the history database.
History is only kept when --db is given.

Examples:
  blockfall history --db ~/.blockfall/history.db
  blockfall history --db ~/.blockfall/history.db --game tetris_classic --limit 5
  blockfall history --db ~/.blockfall/history.db --tui
  blockfall history --db ~/.blockfall/history.db --id <record id>`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryGame, "game", "", "Only show this variant")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of recent games to show")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse history in the full-screen UI")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the history of --game")
	historyCmd.Flags().StringVar(&flagHistoryID, "id", "", "Show one recorded game")
}

func runHistory(_ *cobra.Command, _ []string) error {
	if flagDBPath == "" {
		return errors.New("history needs a database, pass --db <path>")
	}
	if flagHistoryGame != "" && !registry.Exists(flagHistoryGame) {
		return fmt.Errorf("unknown game %q", flagHistoryGame)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagHistoryID != "" {
		r, err := store.GameByID(flagHistoryID)
		if err != nil {
			return err
		}
		if r == nil {
			return fmt.Errorf("no game with id %q", flagHistoryID)
		}
		fmt.Printf("Game %s\n\n", r.ID)
		fmt.Printf("  Variant:  %s\n", r.GameID)
		fmt.Printf("  Player:   %s\n", r.Player)
		fmt.Printf("  Played:   %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("  Pieces:   %d\n", r.PiecesLocked)
		fmt.Printf("  Ticks:    %d\n", r.Ticks)
		fmt.Printf("  Seed:     %d\n", r.Seed)
		fmt.Printf("  Ended by: %s\n", r.EndReason)
		fmt.Println()
		fmt.Printf("Replay with: blockfall play %s --seed %d\n", r.GameID, r.Seed)
		return nil
	}

	if flagHistoryClear {
		if flagHistoryGame == "" {
			return errors.New("--clear needs --game")
		}
		if err := store.ClearGames(flagHistoryGame); err != nil {
			return err
		}
		fmt.Printf("History of %s cleared.\n", flagHistoryGame)
		return nil
	}

	if flagHistoryTUI {
		width, height := 80, 24
		if w, h, sizeErr := term.Size(os.Stdout); sizeErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height)
	}

	records, err := store.RecentGames(flagHistoryGame, flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	fmt.Println("Recent games:")
	fmt.Println()
	fmt.Printf("  %-16s  %-14s  %-18s  %6s  %6s  %-9s  %s\n", "When", "Variant", "Player", "Pieces", "Ticks", "End", "ID")
	for _, r := range records {
		fmt.Printf("  %-16s  %-14s  %-18s  %6d  %6d  %-9s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.GameID, r.Player, r.PiecesLocked, r.Ticks, r.EndReason, r.ID)
	}

	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Totals:")
	fmt.Println()
	for _, g := range registry.List() {
		st, ok := stats[g.ID]
		if !ok || (flagHistoryGame != "" && g.ID != flagHistoryGame) {
			continue
		}
		fmt.Printf("  %-14s  games %d  best %d  avg %.1f pieces  last %s\n",
			g.ID, st.GamesCount, st.BestPieces, st.AvgPieces, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

