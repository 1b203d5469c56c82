package config

import (
	_ "embed"

	"github.com/vovakirdan/blockfall/internal/core"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		TickInterval: core.DefaultTickInterval,
		Features: Features{
			Rotate:             true,
			HardDrop:           true,
			RestartClearsPause: true,
			ExitOnGameOver:     false,
		},
		Glyphs: Glyphs{
			Empty: " ",
		},
	}
}
