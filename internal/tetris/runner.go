package tetris

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
)

// KeySource reports a key pressed since the last poll. It must not block.
type KeySource interface {
	PendingKey() (rune, bool)
}

// Renderer draws a snapshot after every tick.
type Renderer interface {
	Render(s Snapshot) error
}

// Result tells why a loop stopped.
type Result int

const (
	ResultQuit     Result = iota // exit command
	ResultGameOver               // game over with ExitOnGameOver set
	ResultCanceled               // context canceled
)

func (r Result) String() string {
	switch r {
	case ResultQuit:
		return "quit"
	case ResultGameOver:
		return "game_over"
	case ResultCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Loop drives an engine at a fixed interval.
type Loop struct {
	Engine   *Engine
	Interval time.Duration

	// ExitOnGameOver stops the loop after the game-over frame is rendered.
	// Otherwise the loop keeps ticking and only restart and exit do anything.
	ExitOnGameOver bool

	// Logger receives per-tick debug traces. Nil disables them.
	Logger *log.Logger

	// OnRestart, when set, receives the state of a game that a restart
	// command just discarded.
	OnRestart func(finished core.GameState)
}

// Run ticks until exit, game over (if configured), or ctx is canceled.
// Each tick drains at most one key from keys.
func (l *Loop) Run(ctx context.Context, keys KeySource, r Renderer) (Result, error) {
	interval := l.Interval
	if interval <= 0 {
		interval = core.DefaultTickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		action := core.ActionNone
		if key, ok := keys.PendingKey(); ok {
			action = core.ActionForKey(key)
		}

		prev := l.Engine.State()
		res := l.Engine.Step(action)
		if l.Logger != nil {
			st := res.State
			board := l.Engine.Board()
			l.Logger.Debug("tick", "action", action, "ticks", st.Ticks, "locked", st.Locked,
				"cells", board.LockedCount(), "full_rows", board.FullRows(),
				"paused", st.Paused, "game_over", st.GameOver)
		}
		if res.Quit {
			return ResultQuit, nil
		}
		if res.Restarted && l.OnRestart != nil {
			l.OnRestart(prev)
		}

		if err := r.Render(l.Engine.Snapshot()); err != nil {
			return ResultCanceled, fmt.Errorf("tetris: render: %w", err)
		}
		if res.State.GameOver && l.ExitOnGameOver {
			return ResultGameOver, nil
		}

		select {
		case <-ctx.Done():
			return ResultCanceled, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Mailbox is a single-slot key queue. Put never blocks: a newer key replaces
// an undrained older one. One producer, one consumer.
type Mailbox struct {
	slot chan rune
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{slot: make(chan rune, 1)}
}

// Put stores key, discarding any key not yet taken.
func (m *Mailbox) Put(key rune) {
	for {
		select {
		case m.slot <- key:
			return
		default:
		}
		select {
		case <-m.slot:
		default:
		}
	}
}

// PendingKey takes the stored key, if any.
func (m *Mailbox) PendingKey() (rune, bool) {
	select {
	case key := <-m.slot:
		return key, true
	default:
		return 0, false
	}
}

// KeyPump reads runes from a blocking reader on its own goroutine and posts
// them to a Mailbox, so the tick loop can poll without blocking.
type KeyPump struct {
	*Mailbox
	done chan struct{}
	err  error
}

// NewKeyPump starts reading from r. The goroutine stops at EOF, on a read
// error, or after ctx is canceled and the next read returns.
func NewKeyPump(ctx context.Context, r io.Reader) *KeyPump {
	p := &KeyPump{
		Mailbox: NewMailbox(),
		done:    make(chan struct{}),
	}
	go p.pump(ctx, bufio.NewReader(r))
	return p
}

func (p *KeyPump) pump(ctx context.Context, br *bufio.Reader) {
	defer close(p.done)
	for {
		key, _, err := br.ReadRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.err = err
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
		p.Put(key)
	}
}

// Done is closed when the reader goroutine has exited.
func (p *KeyPump) Done() <-chan struct{} {
	return p.done
}

// Err returns the read error that stopped the pump. Valid after Done is closed.
func (p *KeyPump) Err() error {
	return p.err
}

// StopOnReadError returns a context that is canceled when the pump stops on
// a read error, so a loop reading from it does not tick on with no way to
// exit. EOF leaves the context alone.
func (p *KeyPump) StopOnReadError(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		select {
		case <-p.done:
			if p.err != nil {
				cancel()
			}
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
