package tetris

import (
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Status is the engine's state machine position.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ModernRules enables rotation and hard drop.
func ModernRules() core.Rules {
	return core.Rules{Rotate: true, HardDrop: true, RestartClearsPause: true}
}

// ClassicRules is the original command set: move, soft drop, pause, restart, exit.
func ClassicRules() core.Rules {
	return core.Rules{RestartClearsPause: true}
}

// Engine owns one board and the active piece and advances them one tick at a time.
// It is not safe for concurrent use; a single tick loop drives it.
//
// Gravity does not run on the tick that places a fresh piece through restart
// or hard drop. A loop that always applied gravity after the command would
// show that piece one row lower on its first frame; here it starts at the
// spawn row.
type Engine struct {
	board    Board
	active   Piece
	rules    core.Rules
	rng      *rand.Rand
	gameOver bool
	paused   bool
	ticks    int
	locked   int
}

// NewEngine creates an engine with an empty board and a first piece drawn from seed.
func NewEngine(seed int64, rules core.Rules) *Engine {
	e := &Engine{rules: rules}
	e.Reset(seed)
	return e
}

// Reset reseeds the shape generator and starts a fresh game.
func (e *Engine) Reset(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
	e.paused = false
	e.restart()
}

// SetRules replaces the variant rules. Takes effect on the next tick.
func (e *Engine) SetRules(r core.Rules) {
	e.rules = r
}

// Rules returns the active variant rules.
func (e *Engine) Rules() core.Rules {
	return e.rules
}

// Step runs one tick: apply the action, then gravity. Gravity is skipped
// while paused or over, and on ticks where a restart or hard drop already
// placed a fresh piece, so that piece is shown at the spawn point first.
func (e *Engine) Step(a core.Action) core.StepResult {
	if a == core.ActionQuit {
		return core.StepResult{State: e.State(), Quit: true}
	}

	var res core.StepResult
	fresh := false

	switch a {
	case core.ActionRestart:
		e.restart()
		if e.rules.RestartClearsPause {
			e.paused = false
		}
		res.Restarted = true
		fresh = true
	case core.ActionPause:
		if !e.gameOver {
			e.paused = !e.paused
		}
	default:
		if e.gameOver || e.paused {
			break
		}
		fresh = e.apply(a)
	}

	if !e.gameOver {
		if !e.paused && !fresh {
			e.gravity()
		}
		e.ticks++
	}

	res.State = e.State()
	return res
}

// apply handles the movement commands. It reports whether a hard drop locked the piece.
func (e *Engine) apply(a core.Action) bool {
	switch a {
	case core.ActionLeft:
		e.Move(-1, 0)
	case core.ActionRight:
		e.Move(1, 0)
	case core.ActionDown:
		e.Move(0, 1)
	case core.ActionRotate:
		if e.rules.Rotate {
			e.Rotate()
		}
	case core.ActionHardDrop:
		if e.rules.HardDrop {
			e.HardDrop()
			return true
		}
	}
	return false
}

// Move shifts the active piece by one step if the board allows it.
func (e *Engine) Move(dx, dy int) bool {
	if !e.board.CanPlace(e.active, dx, dy) {
		return false
	}
	e.active.Anchor = e.active.Anchor.Add(dx, dy)
	return true
}

// Rotate commits the rotated grid without checking walls or locked cells.
func (e *Engine) Rotate() {
	e.active.Cells = e.active.Rotated()
}

// HardDrop moves the active piece down as far as it goes, then locks it.
func (e *Engine) HardDrop() {
	for e.Move(0, 1) {
	}
	e.lockAndSpawn()
}

// gravity moves the active piece down one row, or locks it where it is.
func (e *Engine) gravity() {
	if e.Move(0, 1) {
		return
	}
	e.lockAndSpawn()
}

func (e *Engine) lockAndSpawn() {
	e.board.Lock(e.active)
	e.locked++
	e.active = e.spawn()
	if !e.board.CanPlace(e.active, 0, 0) {
		e.gameOver = true
	}
}

func (e *Engine) spawn() Piece {
	return Spawn(Shape(e.rng.Intn(ShapeCount)))
}

// restart clears the board and spawns a fresh piece. The board is empty, so
// the new piece always fits.
func (e *Engine) restart() {
	e.board.Clear()
	e.active = e.spawn()
	e.gameOver = false
	e.ticks = 0
	e.locked = 0
}

// Status returns the current state machine position.
func (e *Engine) Status() Status {
	switch {
	case e.gameOver:
		return StatusGameOver
	case e.paused:
		return StatusPaused
	default:
		return StatusRunning
	}
}

// Active returns a copy of the falling piece.
func (e *Engine) Active() Piece {
	return e.active
}

// Board returns a copy of the board.
func (e *Engine) Board() Board {
	return e.board
}

// State summarises the game for the platform.
func (e *Engine) State() core.GameState {
	return core.GameState{
		Locked:   e.locked,
		Ticks:    e.ticks,
		GameOver: e.gameOver,
		Paused:   e.paused,
	}
}

// Snapshot returns a read-only copy of the board and active piece.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Board:  e.board,
		Active: e.active,
		Status: e.Status(),
		Ticks:  e.ticks,
		Locked: e.locked,
	}
}
