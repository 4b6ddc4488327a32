package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/maze"
	"github.com/vovakirdan/tui-labyrinth/internal/persist"
	"github.com/vovakirdan/tui-labyrinth/internal/session"
	"github.com/vovakirdan/tui-labyrinth/internal/world"
)

// throwRange is how many cells a thrown collectible travels at most.
const throwRange = 3

// statusTicks is how long a status message stays visible.
const statusTicks = 30

// Setup wires a board into a new generator and session and enters the
// world, restoring the stored snapshot when there is one.
func Setup(ctx context.Context, params world.Params, medium persist.Medium, genOpts []world.Option, opts ...session.Option) (*session.Session, *Board, error) {
	board := NewBoard()
	genOpts = append([]world.Option{world.WithGeometry(board), world.WithActors(board)}, genOpts...)
	gen, err := world.NewGenerator(params, genOpts...)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]session.Option{session.WithEnvironment(board)}, opts...)
	sess := session.New(gen, medium, opts...)
	if _, err := sess.Load(ctx); err != nil {
		return nil, nil, err
	}
	return sess, board, nil
}

// Model is the Bubble Tea model for playing one labyrinth session.
type Model struct {
	ctx     context.Context
	session *session.Session
	board   *Board
	screen  *core.Screen
	config  core.RuntimeConfig
	keys    KeyMap
	help    help.Model

	facing     maze.Direction
	ticks      int
	status     string
	statusLeft int
	banner     string
	err        error
	quitting   bool
}

// NewModel creates a viewer over a session whose generator draws on board.
func NewModel(ctx context.Context, sess *session.Session, board *Board, cfg core.RuntimeConfig) Model {
	w, h := board.Size()
	return Model{
		ctx:     ctx,
		session: sess,
		board:   board,
		screen:  core.NewScreen(w, h),
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		facing:  maze.North,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action.IsMove() {
		d, _ := directionOf(action)
		m.move(d)
		return m, nil
	}

	switch action {
	case core.ActionQuit:
		if err := m.session.Quit(m.ctx); err != nil {
			m.err = err
		}
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case core.ActionThrow:
		m.throw()
	case core.ActionSave:
		if err := m.session.Save(m.ctx); err != nil {
			m.setStatus("save failed: " + err.Error())
		} else {
			m.setStatus("game saved")
		}
	case core.ActionReset:
		m.reset("new maze")
	case core.ActionToggleNight:
		m.toggle(session.Night)
	case core.ActionToggleFog:
		m.toggle(session.Fog)
	case core.ActionToggleFlashlight:
		m.toggle(session.Flashlight)
	case core.ActionToggleMusic:
		m.toggle(session.Music)
	}
	return m, nil
}

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	m.ticks++
	if m.statusLeft > 0 {
		m.statusLeft--
		if m.statusLeft == 0 {
			m.status = ""
			m.banner = ""
		}
	}
	if m.config.EnemyEvery > 0 && m.ticks%m.config.EnemyEvery == 0 {
		m.stepEnemy()
	}
	return *m, tickCmd(m.config.TickRate)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusLeft = statusTicks
}

// move walks the player one cell. Walking into the door saves the game.
func (m *Model) move(d maze.Direction) {
	res := m.session.World()
	if res == nil {
		return
	}
	m.facing = d
	from := m.board.Cell(world.Player)
	if !res.Grid.CanMove(from, d) {
		if m.board.IsDoor(from, d) {
			if err := m.session.EnterDoor(m.ctx); err != nil {
				m.setStatus("door: save failed: " + err.Error())
				return
			}
			m.setStatus("you pass the door; game saved")
		}
		return
	}

	dx, dy := d.Delta()
	to := from.Add(dx, dy)
	m.board.Move(world.Player, to)
	ev, err := m.session.MovePlayer(maze.ToWorld(to, world.ActorElevation))
	if err != nil {
		m.setStatus(err.Error())
		return
	}
	m.react(ev)
}

func (m *Model) react(ev session.Event) {
	switch {
	case ev.Has(session.EventReachedWinZone):
		score := m.session.Score()
		if _, err := m.session.Advance(); err != nil {
			m.setStatus(err.Error())
			return
		}
		m.fitScreen()
		m.setStatus(fmt.Sprintf("escaped with %d points! a new maze awaits", score))
		m.banner = "ESCAPED!"
	case ev.Has(session.EventTouchedEnemy):
		m.reset("caught by the enemy")
	case ev.Has(session.EventPickedUp):
		m.setStatus("picked up the orb")
	}
}

// throw sends the held collectible up to throwRange cells ahead. Hitting the
// enemy scores a point and the orb reappears elsewhere.
func (m *Model) throw() {
	if !m.session.Holding() {
		m.setStatus("nothing to throw")
		return
	}
	res := m.session.World()
	enemy := m.board.Cell(world.Enemy)
	cell := m.board.Cell(world.Player)
	for i := 0; i < throwRange && res.Grid.CanMove(cell, m.facing); i++ {
		dx, dy := m.facing.Delta()
		cell = cell.Add(dx, dy)
		if cell == enemy {
			break
		}
	}

	if err := m.session.Throw(maze.ToWorld(cell, world.CollectibleElevation)); err != nil {
		m.setStatus(err.Error())
		return
	}
	if cell != enemy {
		m.setStatus("thrown")
		return
	}
	if _, err := m.session.HitEnemy(); err != nil {
		m.setStatus(err.Error())
		return
	}
	m.session.AddScore(1)
	m.setStatus("hit! +1")
}

func (m *Model) stepEnemy() {
	res := m.session.World()
	if res == nil {
		return
	}
	player := m.board.Cell(world.Player)
	next := nextStep(res.Grid, m.board.Cell(world.Enemy), player)
	m.board.Move(world.Enemy, next)
	m.session.SetPosition(world.Enemy, maze.ToWorld(next, world.ActorElevation))
	if next == player {
		m.reset("caught by the enemy")
	}
}

func (m *Model) reset(reason string) {
	if err := m.session.Reset(m.ctx); err != nil {
		m.setStatus("reset failed: " + err.Error())
		return
	}
	m.fitScreen()
	m.setStatus(fmt.Sprintf("%s: seed %d", reason, m.session.Seed()))
	m.banner = strings.ToUpper(reason)
}

func (m *Model) toggle(f session.Flag) {
	state := "off"
	if m.session.Toggle(f) {
		state = "on"
	}
	m.setStatus(fmt.Sprintf("%s %s", f, state))
}

func (m *Model) fitScreen() {
	w, h := m.board.Size()
	m.screen.Resize(w, h)
}

// Err returns the error from saving on quit, if any.
func (m Model) Err() error { return m.err }

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	env := m.session.Environment()
	theme := ThemeFor(env.IsNight)

	m.screen.Clear()
	m.board.Draw(m.screen, 0, 0)
	if m.session.Holding() {
		x, y := m.board.screenPos(m.board.Cell(world.Player))
		m.screen.Recolor(x+1, y, core.ColorCollectible)
	}
	if m.banner != "" {
		m.drawBanner()
	}

	var b strings.Builder
	b.WriteString(theme.style(core.ColorText).Bold(true).Render(m.header()))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen, theme))
	b.WriteString("\n")
	b.WriteString(theme.style(core.ColorText).Render(m.status))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

// drawBanner boxes the banner text in the middle of the board.
func (m Model) drawBanner() {
	w := core.Clamp(len(m.banner)+4, 0, m.screen.Width())
	y := core.Clamp(m.screen.Height()/2-1, 0, m.screen.Height())
	box := core.NewRect((m.screen.Width()-w)/2, y, w, 3)
	m.screen.DrawRect(box, ' ', core.ColorText)
	m.screen.DrawTextCentered(y+1, m.banner, core.ColorText)
}

func (m Model) header() string {
	env := m.session.Environment()
	flags := []string{}
	if env.IsNight {
		flags = append(flags, "night")
	}
	if env.IsFoggy {
		flags = append(flags, "fog")
	}
	if env.IsFlashlightOn {
		flags = append(flags, "torch")
	}
	if env.IsMusicPlaying {
		flags = append(flags, "♪")
	}
	held := ""
	if m.session.Holding() {
		held = "  holding orb"
	}
	return fmt.Sprintf("LABYRINTH  seed %d  score %d%s  [%s]  %s",
		m.session.Seed(), m.session.Score(), held, strings.Join(flags, " "), m.session.State())
}

// Run starts the Bubble Tea program on the local terminal.
func Run(ctx context.Context, sess *session.Session, board *Board, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(ctx, sess, board, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return fmt.Errorf("save on quit: %w", m.Err())
	}
	return nil
}
