package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// actionBinding pairs a key binding with the game action it triggers.
type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// KeyMap holds the game bindings enabled by a rule set plus the
// front-end keys. It implements help.KeyMap, so the help line always
// lists exactly the live command set.
type KeyMap struct {
	game       []actionBinding
	Screenshot key.Binding
	Menu       key.Binding
	ForceQuit  key.Binding
}

// NewKeyMap builds the bindings for rules. Keys are case-sensitive, as on
// the raw terminal.
func NewKeyMap(rules core.Rules) KeyMap {
	km := KeyMap{
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Menu: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
	for _, b := range tetris.Bindings(rules) {
		km.game = append(km.game, actionBinding{
			binding: key.NewBinding(
				key.WithKeys(string(b.Key)),
				key.WithHelp(strings.ToLower(b.Label), strings.ToLower(b.Help)),
			),
			action: b.Action,
		})
	}
	return km
}

// Action returns the game action bound to msg, or ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	for _, ab := range k.game {
		if key.Matches(msg, ab.binding) {
			return ab.action
		}
	}
	return core.ActionNone
}

// ShortHelp returns the game bindings in caption order.
func (k KeyMap) ShortHelp() []key.Binding {
	out := make([]key.Binding, len(k.game))
	for i, ab := range k.game {
		out[i] = ab.binding
	}
	return out
}

// FullHelp returns the game bindings followed by the front-end keys.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Screenshot, k.Menu, k.ForceQuit}}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionHistory
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "x":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab", "h":
		return MenuActionHistory
	}

	return MenuActionNone
}
