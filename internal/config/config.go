// Package config provides YAML-based game configuration loading and
// variant presets for blockfall.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Variant selects a preset command set.
type Variant string

const (
	VariantModern  Variant = "modern"
	VariantClassic Variant = "classic"
)

// ErrUnknownVariant is returned by ParseVariant for names it does not know.
var ErrUnknownVariant = errors.New("config: unknown variant")

// ParseVariant converts a CLI or YAML name into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantModern, VariantClassic:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("%w %q (want modern or classic)", ErrUnknownVariant, s)
	}
}

// TetrisConfig contains all configuration for the game.
type TetrisConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	Features     Features      `yaml:"features"`
	Glyphs       Glyphs        `yaml:"glyphs"`
}

// Features toggles optional commands and loop behavior.
type Features struct {
	Rotate             bool `yaml:"rotate"`
	HardDrop           bool `yaml:"hard_drop"`
	RestartClearsPause bool `yaml:"restart_clears_pause"`
	ExitOnGameOver     bool `yaml:"exit_on_game_over"` // classic runner only
}

// Glyphs configures how the board is drawn.
type Glyphs struct {
	Empty string `yaml:"empty"`
}

// Rules returns the engine rules selected by the feature flags.
func (c TetrisConfig) Rules() core.Rules {
	return core.Rules{
		Rotate:             c.Features.Rotate,
		HardDrop:           c.Features.HardDrop,
		RestartClearsPause: c.Features.RestartClearsPause,
	}
}

// EmptyGlyph returns the rune drawn for empty cells.
func (c TetrisConfig) EmptyGlyph() rune {
	r, _ := utf8.DecodeRuneInString(c.Glyphs.Empty)
	if r == utf8.RuneError {
		return ' '
	}
	return r
}

// Validate checks values the loop and renderer depend on.
func (c TetrisConfig) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("config: tick_interval must be positive, got %s", c.TickInterval)
	}
	if utf8.RuneCountInString(c.Glyphs.Empty) > 1 {
		return fmt.Errorf("config: glyphs.empty must be a single character, got %q", c.Glyphs.Empty)
	}
	return nil
}

// ApplyVariant modifies the config to match a variant preset.
// The modern preset enables rotate and hard drop and keeps the loop running
// after game over; the classic preset mirrors the original command set.
func ApplyVariant(cfg *TetrisConfig, v Variant) {
	switch v {
	case VariantClassic:
		cfg.Features.Rotate = false
		cfg.Features.HardDrop = false
		cfg.Features.ExitOnGameOver = true
	case VariantModern:
		cfg.Features.Rotate = true
		cfg.Features.HardDrop = true
		cfg.Features.ExitOnGameOver = false
	}
}
