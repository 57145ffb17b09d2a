package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// Options configures a game session.
type Options struct {
	Store        *storage.Store // Where runs are recorded; nil disables recording
	HoldWindowMs int            // How long a jump press counts as held
	Levels       string         // Segment library path, stored with the run
	ConfigPath   string         // Runner config path, stored with the run
	Replay       *storage.Run   // Play back this run instead of reading keys
	Logger       *log.Logger
	Embedded     bool // Back returns to a menu instead of quitting
}

// Model is the Bubble Tea model that hosts one game.
type Model struct {
	game   registry.Game
	screen *core.Screen
	opts   Options
	config core.RuntimeConfig // Game area; the footer is excluded
	width  int
	height int

	keys     KeyMap
	help     help.Model
	jump     *HoldTracker
	edges    core.InputFrame // One-shot actions for the next tick
	state    core.GameState
	trace    []byte
	restarts int

	gen        uint64 // Tick loop generation
	replayPos  int
	replayDone bool
	runID      int64
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
// cfg carries the full terminal size.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Replay != nil {
		r := opts.Replay
		cfg.Seed = r.Seed
		cfg.TickRate = r.TickRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := Model{
		game:   game,
		opts:   opts,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		jump:   NewHoldTracker(HoldWindowTicks(opts.HoldWindowMs, cfg.TickRate)),
		edges:  core.NewInputFrame(),
		gen:    nextTickGen(),
	}
	m.help.Width = cfg.ScreenW

	m.config = cfg
	m.config.ScreenH = max(1, cfg.ScreenH-m.footerHeight())
	if r := opts.Replay; r != nil && r.ScreenW > 0 && r.ScreenH > 0 {
		// The recorded camera drives the simulation; the terminal only
		// decides how much of it is drawn.
		m.config.ScreenW = r.ScreenW
		m.config.ScreenH = r.ScreenH
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.config.ScreenH)
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.finish()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.isReplay() || m.state.Paused || m.state.Fallen {
			m.backToMenu = true
			m.finish()
			if !m.opts.Embedded {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if m.isReplay() {
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionJump:
		m.jump.Press()
	case core.ActionNone, core.ActionQuit:
	default:
		m.edges.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.layout()
	return m, nil
}

// layout fits the game area between the top of the terminal and the footer.
func (m *Model) layout() {
	h := max(1, m.height-m.footerHeight())
	m.screen.Resize(m.width, h)

	if m.isReplay() {
		return
	}
	m.config.ScreenW = m.width
	m.config.ScreenH = h
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.width, h)
	} else if !m.state.Fallen {
		m.game.Reset(m.config)
	}
}

func (m Model) footerHeight() int {
	if m.help.ShowAll {
		return len(m.keys.FullHelp()[0])
	}
	return 1
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	var frame core.InputFrame
	if m.isReplay() {
		inputs := m.opts.Replay.Inputs
		if m.replayPos >= len(inputs) {
			m.replayDone = true
			return m, nil
		}
		frame = core.FrameFromMask(inputs[m.replayPos])
		m.replayPos++
	} else {
		frame = m.edges.Clone()
		if m.jump.Held() {
			frame.Set(core.ActionJump)
		}
		m.jump.Tick()
		m.edges.Clear()
		m.trace = append(m.trace, frame.Mask())
	}

	result := m.game.Step(frame)
	m.state = result.State
	if result.Restarted {
		m.restarts++
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// finish records the session once, when a store is available.
func (m *Model) finish() {
	if m.isReplay() || m.runID != 0 || m.opts.Store == nil || len(m.trace) == 0 {
		return
	}

	id, err := m.opts.Store.SaveRun(storage.Run{
		GameID:   m.game.ID(),
		Seed:     m.config.Seed,
		TickRate: m.config.TickRate,
		ScreenW:  m.config.ScreenW,
		ScreenH:  m.config.ScreenH,
		Levels:   m.opts.Levels,
		Config:   m.opts.ConfigPath,
		Inputs:   m.trace,
		Distance: m.state.Distance,
		Restarts: m.restarts,
	})
	if err != nil {
		if m.opts.Logger != nil {
			m.opts.Logger.Error("could not save run", "error", err)
		}
		return
	}
	m.runID = id
}

func (m Model) isReplay() bool {
	return m.opts.Replay != nil
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".runner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.width, m.height-m.footerHeight()) + "\n" + footerStyle.Render(m.footer())
}

func (m Model) footer() string {
	if !m.isReplay() {
		return m.help.View(m.keys)
	}

	status := fmt.Sprintf("replay #%d  tick %d/%d", m.opts.Replay.ID, m.replayPos, len(m.opts.Replay.Inputs))
	if m.replayDone {
		status += fmt.Sprintf("  done, distance %d  |  esc/q to leave", m.state.Distance)
	}
	return status
}

// RunID returns the ID of the recorded run, 0 if nothing was saved.
func (m Model) RunID() int64 {
	return m.runID
}

// State returns the last game state.
func (m Model) State() core.GameState {
	return m.state
}

// Trace returns the recorded input masks, one per tick.
func (m Model) Trace() []byte {
	return m.trace
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game and returns the
// final model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (Model, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if m, ok := final.(Model); ok {
		return m, nil
	}
	return model, nil
}
