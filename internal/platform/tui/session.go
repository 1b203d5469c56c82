package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenHistory
)

// SessionModel manages the full session flow: menu -> game or history -> menu.
// It is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	id       string
	store    *storage.Store
	config   core.RuntimeConfig
	player   string
	screen   sessionScreen
	menu     MenuModel
	game     Model
	history  HistoryModel
	quitting bool
}

// NewSessionModel creates a session. A non-empty gameID skips the menu and
// starts that game right away.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, player, gameID string) (SessionModel, error) {
	m := SessionModel{
		id:     uuid.New().String(),
		store:  store,
		config: cfg,
		player: player,
		menu:   NewMenuModel(cfg),
	}
	if gameID == "" {
		return m, nil
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return m, err
	}
	m.startGame(game)
	return m, nil
}

// ID returns the session's unique identifier.
func (m SessionModel) ID() string {
	return m.id
}

func (m *SessionModel) startGame(game registry.Game) {
	m.game = NewModel(game, m.store, m.config, m.player)
	m.screen = screenGame
}

// Init starts the tick loop when the session opens on a game.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == screenGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsHistory():
		m.history = NewHistoryModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		return m, m.history.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			// Menu only lists registered games
			m.menu = NewMenuModel(m.config)
			return m, nil
		}
		m.startGame(game)
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(Model)

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.backToMenu()
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	m.history = next.(HistoryModel)

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		m.backToMenu()
		return m, nil
	}
	return m, cmd
}

func (m *SessionModel) backToMenu() {
	m.menu = NewMenuModel(m.config)
	m.screen = screenMenu
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}

// Run starts a local session. An empty gameID opens the variant menu.
func Run(store *storage.Store, cfg core.RuntimeConfig, player, gameID string) error {
	model, err := NewSessionModel(store, cfg, player, gameID)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
