// Package term runs blockfall on a bare terminal: raw keyboard input and a
// plain-text renderer that redraws the whole board every tick.
package term

import (
	"fmt"
	"io"
	"os"

	xterm "golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/tetris"
)

// Terminal holds the input file and the mode to restore on exit.
type Terminal struct {
	in    *os.File
	state *xterm.State
}

// Open switches in to raw mode so single key presses arrive unbuffered and
// unechoed. Input that is not a terminal (a pipe in tests or scripts) is
// used as is.
func Open(in *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !xterm.IsTerminal(fd) {
		return &Terminal{in: in}, nil
	}
	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("term: make raw: %w", err)
	}
	return &Terminal{in: in, state: state}, nil
}

// Raw reports whether the terminal is in raw mode.
func (t *Terminal) Raw() bool {
	return t.state != nil
}

// Reader returns the key input stream.
func (t *Terminal) Reader() io.Reader {
	return t.in
}

// Restore puts the terminal back into the mode it had before Open.
// Safe to call more than once.
func (t *Terminal) Restore() error {
	if t.state == nil {
		return nil
	}
	err := xterm.Restore(int(t.in.Fd()), t.state)
	t.state = nil
	if err != nil {
		return fmt.Errorf("term: restore: %w", err)
	}
	return nil
}

// Size returns the size of the terminal behind f.
func Size(f *os.File) (width, height int, err error) {
	width, height, err = xterm.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("term: size: %w", err)
	}
	return width, height, nil
}

// Control bytes that raw mode delivers instead of signals.
const (
	keyCtrlC = 0x03
	keyCtrlD = 0x04
)

// interruptKeys turns ctrl+c and ctrl+d into the exit key, since raw mode
// no longer raises SIGINT for them.
type interruptKeys struct {
	src tetris.KeySource
}

// WithInterrupts wraps src so ctrl+c and ctrl+d exit the game.
func WithInterrupts(src tetris.KeySource) tetris.KeySource {
	return interruptKeys{src: src}
}

func (k interruptKeys) PendingKey() (rune, bool) {
	key, ok := k.src.PendingKey()
	if ok && (key == keyCtrlC || key == keyCtrlD) {
		return 'x', true
	}
	return key, ok
}
