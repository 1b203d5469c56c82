package term

import (
	"bytes"
	"io"
	"strings"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

const (
	clearScreen = "\033[H\033[J"
	newline     = "\r\n" // raw mode does not translate \n
)

// Renderer draws snapshots as plain text: the board between | walls, a
// dashed floor, the command caption and a status line.
type Renderer struct {
	w       io.Writer
	caption string
	blank   rune
	buf     bytes.Buffer
}

// NewRenderer creates a renderer writing to w. blank is drawn for empty cells.
func NewRenderer(w io.Writer, rules core.Rules, blank rune) *Renderer {
	return &Renderer{w: w, caption: tetris.Caption(rules), blank: blank}
}

// Render redraws the whole screen in a single write.
func (r *Renderer) Render(s tetris.Snapshot) error {
	r.buf.Reset()
	r.buf.WriteString(clearScreen)

	frame := s.Frame(r.blank)
	for y := range frame {
		r.buf.WriteByte('|')
		for _, c := range frame[y] {
			r.buf.WriteRune(c.Glyph)
		}
		r.buf.WriteByte('|')
		r.buf.WriteString(newline)
	}

	r.buf.WriteString(" " + strings.Repeat("-", tetris.Width) + " " + newline)
	r.buf.WriteString(r.caption + newline)

	switch s.Status {
	case tetris.StatusPaused:
		r.buf.WriteString("Game paused. Press P to continue." + newline)
	case tetris.StatusGameOver:
		r.buf.WriteString("Game Over! Press R to restart or X to exit." + newline)
	}

	_, err := r.w.Write(r.buf.Bytes())
	return err
}

// Message writes one line below the board.
func (r *Renderer) Message(text string) error {
	_, err := io.WriteString(r.w, text+newline)
	return err
}
