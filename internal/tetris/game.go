package tetris

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Game adapts the engine to the platform's registry.Game interface.
type Game struct {
	classic bool
	rules   core.Rules
	engine  *Engine
}

// New creates a modern game with rotation and hard drop.
func New() *Game {
	return &Game{rules: ModernRules()}
}

// NewClassic creates a game with the original command set.
func NewClassic() *Game {
	return &Game{classic: true, rules: ClassicRules()}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
	registry.Register("tetris_classic", func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.classic {
		return "tetris_classic"
	}
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.classic {
		return "Blockfall (Classic)"
	}
	return "Blockfall"
}

// Reset starts a new game. cfg.Rules, when set, replaces the variant defaults.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.Rules != nil {
		g.rules = *cfg.Rules
	}
	if g.engine == nil {
		g.engine = NewEngine(cfg.Seed, g.rules)
		return
	}
	g.engine.SetRules(g.rules)
	g.engine.Reset(cfg.Seed)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	return g.engine.Step(in.Action())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.engine.State()
}

// Rules returns the rules in effect.
func (g *Game) Rules() core.Rules {
	return g.rules
}

// Engine exposes the underlying engine, for front-ends that drive it with
// their own loop. Nil before the first Reset.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Render draws the HUD, the bordered board and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	snap := g.engine.Snapshot()
	hud := fmt.Sprintf("%s  Pieces: %d  Ticks: %d", g.Title(), snap.Locked, snap.Ticks)
	dst.DrawTextCentered(0, hud)

	boxW, boxH := Width+2, Height+2
	if dst.Width() < boxW || dst.Height() < boxH+1 {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", boxW, boxH+1))
		return
	}

	area := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	box := area.Centered(boxW, boxH)
	dst.DrawBox(box, core.ColorGray)

	frame := snap.Frame(' ')
	for y := range frame {
		for x, c := range frame[y] {
			dst.SetCell(box.X+1+x, box.Y+1+y, c.Glyph, c.Color)
		}
	}

	switch snap.Status {
	case StatusGameOver:
		renderOverlay(dst, "Game Over!", "Press R to restart")
	case StatusPaused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(w, 5)

	dst.FillRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	drawCentered(dst, box, box.Y+1, line1)
	drawCentered(dst, box, box.Y+3, line2)
}

func drawCentered(dst *core.Screen, box core.Rect, y int, text string) {
	x := box.X + (box.W-len([]rune(text)))/2
	dst.DrawText(x, y, text)
}
