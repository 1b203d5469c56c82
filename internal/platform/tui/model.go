package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// Model is the Bubble Tea model for one running game.
type Model struct {
	game      registry.Game
	loop      int64
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	player    string
	keys      KeyMap
	help      help.Model
	pending   core.InputFrame // latest key since the last tick
	gameState core.GameState
	recorded  bool // current game already written to history
	quitting  bool
	toMenu    bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store may be nil, in which case no history is recorded.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	game.Reset(cfg)

	return Model{
		game:      game,
		loop:      nextLoop(),
		screen:    core.NewScreen(cfg.ScreenW, boardRows(cfg.ScreenH)),
		store:     store,
		config:    cfg,
		player:    player,
		keys:      NewKeyMap(game.Rules()),
		help:      help.New(),
		pending:   core.NewInputFrame(),
		gameState: game.State(),
	}
}

// boardRows leaves the last terminal row for the key help.
func boardRows(h int) int {
	return max(h-1, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.Interval(), m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, boardRows(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Game commands are parked in the
// pending frame until the next tick; a newer key replaces an older one.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.quit()
	case key.Matches(msg, m.keys.Screenshot):
		//nolint:errcheck // Best-effort save, game continues regardless
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Menu):
		m.record(storage.EndExit)
		m.toMenu = true
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		return m.quit()
	}
	m.pending.Set(action)
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.record(storage.EndExit)
	m.quitting = true
	return m, tea.Quit
}

// handleTick runs one simulation step with the pending action.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.toMenu {
		return m, nil
	}

	prev := m.gameState
	result := m.game.Step(m.pending)
	m.pending.Clear()

	if result.Restarted {
		if !m.recorded {
			m.recordState(storage.EndRestart, prev)
		}
		m.recorded = false
	}
	m.gameState = result.State

	if m.gameState.GameOver {
		m.record(storage.EndGameOver)
	}

	return m, tickCmd(m.config.Interval(), m.loop)
}

// record writes the current game to history once.
func (m *Model) record(reason string) {
	if m.recorded {
		return
	}
	m.recordState(reason, m.gameState)
	m.recorded = true
}

// recordState saves st as a finished game. Games that never ticked are skipped.
func (m *Model) recordState(reason string, st core.GameState) {
	if m.store == nil || st.Ticks == 0 {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveGame(storage.GameRecord{
		GameID:       m.game.ID(),
		Player:       m.player,
		PiecesLocked: st.Locked,
		Ticks:        st.Ticks,
		Seed:         m.config.Seed,
		EndReason:    reason,
	})
}

// saveScreenshot writes the current frame as plain text to
// ~/.blockfall/screenshots and returns the file path.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	dir := filepath.Join(home, ".blockfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(centerText(m.help.View(m.keys), m.config.ScreenW))
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the player asked to exit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.toMenu
}
