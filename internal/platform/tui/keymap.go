package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/maze"
)

// KeyMap defines the viewer's key bindings. It implements help.KeyMap.
type KeyMap struct {
	North      key.Binding
	South      key.Binding
	West       key.Binding
	East       key.Binding
	Throw      key.Binding
	Save       key.Binding
	Reset      key.Binding
	Night      key.Binding
	Fog        key.Binding
	Flashlight key.Binding
	Music      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		North: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "north"),
		),
		South: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "south"),
		),
		West: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "west"),
		),
		East: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "east"),
		),
		Throw: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "throw"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s", "x"),
			key.WithHelp("x", "save"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new maze"),
		),
		Night: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "night"),
		),
		Fog: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fog"),
		),
		Flashlight: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "torch"),
		),
		Music: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "music"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "save & quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Throw, k.Save, k.Reset, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.North, k.South, k.West, k.East},
		{k.Throw, k.Save, k.Reset},
		{k.Night, k.Fog, k.Flashlight, k.Music},
		{k.Help, k.Quit},
	}
}

// Action translates a key message to a labyrinth action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.North):
		return core.ActionNorth
	case key.Matches(msg, k.South):
		return core.ActionSouth
	case key.Matches(msg, k.West):
		return core.ActionWest
	case key.Matches(msg, k.East):
		return core.ActionEast
	case key.Matches(msg, k.Throw):
		return core.ActionThrow
	case key.Matches(msg, k.Save):
		return core.ActionSave
	case key.Matches(msg, k.Reset):
		return core.ActionReset
	case key.Matches(msg, k.Night):
		return core.ActionToggleNight
	case key.Matches(msg, k.Fog):
		return core.ActionToggleFog
	case key.Matches(msg, k.Flashlight):
		return core.ActionToggleFlashlight
	case key.Matches(msg, k.Music):
		return core.ActionToggleMusic
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}

// directionOf maps a move action to a maze direction.
func directionOf(a core.Action) (maze.Direction, bool) {
	switch a {
	case core.ActionNorth:
		return maze.North, true
	case core.ActionEast:
		return maze.East, true
	case core.ActionSouth:
		return maze.South, true
	case core.ActionWest:
		return maze.West, true
	}
	return 0, false
}
