package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game variants",
	Long:  `Shows every registered variant and its controls.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	fmt.Println("Available variants:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
		game, err := registry.Create(g.ID)
		if err != nil {
			return err
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, "", tetris.Caption(game.Rules()))
	}

	fmt.Println()
	fmt.Println("Run 'blockfall play <id>' to play a variant.")
	return nil
}
