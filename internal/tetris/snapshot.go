package tetris

import (
	"strings"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Snapshot is a value copy of the engine state handed to renderers.
// Mutating it has no effect on the engine.
type Snapshot struct {
	Board  Board
	Active Piece
	Status Status
	Ticks  int
	Locked int
}

// FrameCell is one board position as it should be drawn.
type FrameCell struct {
	Glyph  rune
	Color  core.Color
	Filled bool // locked or covered by the active piece
	Active bool // covered by the active piece
}

// Frame is the Height×Width matrix a renderer draws.
type Frame [Height][Width]FrameCell

// Frame merges locked cells and the active piece. The active piece is drawn
// over locked cells; empty cells get the blank glyph.
func (s Snapshot) Frame(blank rune) Frame {
	var f Frame
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c := s.Board.At(x, y)
			switch {
			case s.Active.Occupies(x, y):
				f[y][x] = FrameCell{
					Glyph:  s.Active.Shape.Glyph(),
					Color:  s.Active.Shape.Color(),
					Filled: true,
					Active: true,
				}
			case c.Locked:
				f[y][x] = FrameCell{Glyph: c.Shape.Glyph(), Color: c.Shape.Color(), Filled: true}
			default:
				f[y][x] = FrameCell{Glyph: blank}
			}
		}
	}
	return f
}

// String renders the frame as plain rows joined by newlines.
func (f Frame) String() string {
	var b strings.Builder
	b.Grow((Width + 1) * Height)
	for y := range f {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := range f[y] {
			b.WriteRune(f[y][x].Glyph)
		}
	}
	return b.String()
}

// Binding describes one live command for captions and help.
type Binding struct {
	Key    rune
	Label  string // key as printed, e.g. "A" or "Space"
	Help   string
	Action core.Action
}

// Bindings returns the command set enabled by the rules, in caption order.
func Bindings(r core.Rules) []Binding {
	out := []Binding{
		{Key: 'a', Label: "A", Help: "Left", Action: core.ActionLeft},
		{Key: 'd', Label: "D", Help: "Right", Action: core.ActionRight},
		{Key: 's', Label: "S", Help: "Down", Action: core.ActionDown},
	}
	if r.Rotate {
		out = append(out, Binding{Key: 'w', Label: "W", Help: "Rotate", Action: core.ActionRotate})
	}
	if r.HardDrop {
		out = append(out, Binding{Key: ' ', Label: "Space", Help: "Drop", Action: core.ActionHardDrop})
	}
	return append(out,
		Binding{Key: 'p', Label: "P", Help: "Pause", Action: core.ActionPause},
		Binding{Key: 'r', Label: "R", Help: "Restart", Action: core.ActionRestart},
		Binding{Key: 'x', Label: "X", Help: "Exit", Action: core.ActionQuit},
	)
}

// Caption is the one-line command summary, e.g. "[A] Left  [D] Right ...".
func Caption(r core.Rules) string {
	bindings := Bindings(r)
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = "[" + b.Label + "] " + b.Help
	}
	return strings.Join(parts, "  ")
}
