package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-labyrinth/internal/config"
)

// MenuChoice is what the start menu resolved to.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceContinue
	ChoiceNewMaze
	ChoiceScores
	ChoiceQuit
)

// MenuItem is one line of the start menu.
type MenuItem struct {
	Title  string
	Choice MenuChoice
	Preset config.SizePreset
}

// MenuKeyMap defines the key bindings for the start menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	keys     MenuKeyMap
	selected *MenuItem
}

// NewMenuModel creates the start menu. Continue is offered only when a
// saved game exists.
func NewMenuModel(hasSave bool, width, height int) MenuModel {
	var items []MenuItem
	if hasSave {
		items = append(items, MenuItem{Title: "Continue", Choice: ChoiceContinue})
	}
	for _, p := range config.Presets {
		side := p.Side()
		items = append(items, MenuItem{
			Title:  fmt.Sprintf("New maze: %s (%dx%d)", p, side, side),
			Choice: ChoiceNewMaze,
			Preset: p,
		})
	}
	items = append(items,
		MenuItem{Title: "Best runs", Choice: ChoiceScores},
		MenuItem{Title: "Quit", Choice: ChoiceQuit},
	)

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.selected = &MenuItem{Choice: ChoiceQuit}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.selected != nil {
		return ""
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(title.Render(centerText("  L A B Y R I N T H  ", m.width)))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen item, or nil while the menu is open.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// RunMenu runs the start menu and returns the chosen item.
func RunMenu(hasSave bool, width, height int) (MenuItem, error) {
	p := tea.NewProgram(NewMenuModel(hasSave, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return MenuItem{Choice: ChoiceQuit}, err
	}
	m, ok := final.(MenuModel)
	if !ok || m.Selected() == nil {
		return MenuItem{Choice: ChoiceQuit}, nil
	}
	return *m.Selected(), nil
}
