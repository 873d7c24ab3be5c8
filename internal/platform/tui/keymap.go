package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// RunKeyMap defines the key bindings used while a level is running.
// Movement, pause and back are pressed as on-screen controls, so every
// binding here resolves to a touch rather than a separate action.
type RunKeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Pause  key.Binding
	Back   key.Binding
	Retry  key.Binding
	Submit key.Binding
	Skip   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Pause, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Pause, k.Back},
		{k.Retry, k.Submit, k.Skip, k.Quit},
	}
}

// GameOverHelp is the subset shown on the game-over panel.
func (k RunKeyMap) GameOverHelp() []key.Binding {
	return []key.Binding{k.Retry, k.Back, k.Quit}
}

// DefaultRunKeyMap returns default key bindings.
func DefaultRunKeyMap() RunKeyMap {
	return RunKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "back"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save score"),
		),
		Skip: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "skip"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to run controls.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys RunKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultRunKeyMap()}
}

// Keys returns the bindings, for help rendering.
func (km *KeyMapper) Keys() RunKeyMap {
	return km.keys
}

// MapKey translates a key message to the on-screen control it presses.
// ok is false for keys that press no control.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (c core.Control, ok bool) {
	switch {
	case key.Matches(msg, km.keys.Left):
		return core.ControlLeft, true
	case key.Matches(msg, km.keys.Right):
		return core.ControlRight, true
	case key.Matches(msg, km.keys.Pause):
		return core.ControlPause, true
	case key.Matches(msg, km.keys.Back):
		return core.ControlBack, true
	}
	return 0, false
}

// IsQuit reports whether the key ends the program.
func (km *KeyMapper) IsQuit(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.keys.Quit)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
