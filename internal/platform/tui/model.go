package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/highscore"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

// maxQueuedTouches bounds the touch queue so a burst of clicks cannot keep
// steering long after the player stopped.
const maxQueuedTouches = 8

// topScoresMsg carries the result of a Top fetch.
type topScoresMsg struct {
	runID   string
	entries []highscore.Entry
	err     error
}

// submitMsg carries the result of a Submit.
type submitMsg struct {
	runID string
	err   error
}

// gameOver is the state of the game-over panel for one run.
type gameOver struct {
	active    bool
	fetched   bool
	offline   bool
	madeIt    bool
	top       []highscore.Entry
	name      textinput.Model
	nameErr   string
	saving    bool
	saved     bool
	skipped   bool
	submitErr error
}

// Model is the Bubble Tea model for running a level.
type Model struct {
	game      registry.Game
	pointer   registry.Pointer
	screen    *core.Screen
	scores    highscore.Service
	audio     runner.Audio
	logger    *log.Logger
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model

	inputFrame core.InputFrame
	touches    []core.Touch
	gameState  core.GameState
	runID      string
	over       gameOver

	quitting bool
	back     bool // player left the level for the menu
}

// Options configures a run model. Zero values are usable.
type Options struct {
	Scores highscore.Service
	Audio  runner.Audio
	Logger *log.Logger
}

// NewModel creates a new Bubble Tea model for the given level.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Scores == nil {
		opts.Scores = highscore.NewLocal(nil)
	}
	if opts.Audio == nil {
		opts.Audio = runner.Silent{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}

	pointer, _ := game.(registry.Pointer)
	game.Reset(cfg)

	return Model{
		game:       game,
		pointer:    pointer,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		scores:     opts.Scores,
		audio:      opts.Audio,
		logger:     opts.Logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		runID:      highscore.NewRunID(),
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

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case topScoresMsg:
		return m.handleTopScores(msg)

	case submitMsg:
		return m.handleSubmit(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.over.active {
		return m.handleGameOverKey(msg)
	}

	switch {
	case m.keyMapper.IsQuit(msg):
		m.quitting = true
		return m, tea.Quit
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if c, ok := m.keyMapper.MapKey(msg); ok && m.pointer != nil {
		m.queueTouch(m.pointer.ControlTouch(c))
	}
	return m, nil
}

// handleGameOverKey routes keys while the game-over panel is up. The name
// field has focus until the score is saved or skipped.
func (m Model) handleGameOverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()

	if m.over.name.Focused() {
		switch {
		case key.Matches(msg, keys.Submit):
			return m.submitName()
		case key.Matches(msg, keys.Skip):
			m.over.name.Blur()
			m.over.skipped = true
			return m, nil
		}
		var cmd tea.Cmd
		m.over.name, cmd = m.over.name.Update(msg)
		m.over.nameErr = ""
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Retry):
		m.audio.Play(runner.CueButton)
		m.restart()
		return m, nil
	case key.Matches(msg, keys.Back):
		m.audio.Play(runner.CueButton)
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse turns left clicks into touches.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.pointer == nil || m.over.active {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if t, ok := m.pointer.CellTouch(msg.X, msg.Y); ok {
		m.queueTouch(t)
	}
	return m, nil
}

func (m *Model) queueTouch(t core.Touch) {
	if len(m.touches) >= maxQueuedTouches {
		return
	}
	m.touches = append(m.touches, t)
}

// handleResize processes window resize events. The run keeps going; only
// the viewport mapping changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if r, ok := m.game.(interface{ Resize(cols, rows int) }); ok {
		r.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick processes simulation ticks. Each tick consumes at most one
// queued touch.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if len(m.touches) > 0 {
		t := m.touches[0]
		m.touches = m.touches[1:]
		m.inputFrame.Touch = &t
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.Exited {
		m.back = true
		return m, tea.Quit
	}

	var cmds []tea.Cmd
	if m.gameState.GameOver && !m.over.active {
		m.touches = nil
		cmds = append(cmds, m.enterGameOver())
	}

	cmds = append(cmds, tickCmd(m.config.TickRate))
	return m, tea.Batch(cmds...)
}

// enterGameOver opens the panel and asks for the level's table.
func (m *Model) enterGameOver() tea.Cmd {
	name := textinput.New()
	name.Placeholder = "your name"
	name.CharLimit = highscore.MaxNameLen
	name.Width = highscore.MaxNameLen + 1
	name.Prompt = "Name: "

	m.over = gameOver{active: true, name: name}
	return fetchTopCmd(m.scores, m.game.ID(), m.runID)
}

func (m Model) handleTopScores(msg topScoresMsg) (tea.Model, tea.Cmd) {
	if msg.runID != m.runID || !m.over.active {
		return m, nil
	}
	if m.over.saved {
		// Refresh after our own submit; the verdict is already shown.
		if msg.err == nil {
			m.over.top = msg.entries
		}
		return m, nil
	}
	m.over.fetched = true
	if msg.err != nil {
		m.over.offline = true
		if !errors.Is(msg.err, highscore.ErrUnavailable) {
			m.logger.Warn("cannot fetch top scores", "level", m.game.ID(), "error", msg.err)
		}
		return m, nil
	}

	m.over.top = msg.entries
	m.over.madeIt = highscore.Qualifies(m.gameState.Score, msg.entries)
	if m.over.madeIt {
		m.audio.Play(runner.CueMadeIt)
		return m, m.over.name.Focus()
	}
	m.audio.Play(runner.CueDidNotMakeIt)
	return m, nil
}

func (m Model) submitName() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.over.name.Value())
	if err := highscore.ValidateName(name); err != nil {
		m.over.nameErr = "Letters and digits only, 1-10 characters"
		return m, nil
	}
	m.over.name.Blur()
	m.over.saving = true
	e := highscore.Entry{
		RunID: m.runID,
		Level: m.game.ID(),
		Name:  name,
		Score: m.gameState.Score,
	}
	return m, submitCmd(m.scores, e)
}

func (m Model) handleSubmit(msg submitMsg) (tea.Model, tea.Cmd) {
	if msg.runID != m.runID {
		return m, nil
	}
	m.over.saving = false
	if msg.err != nil {
		m.over.submitErr = msg.err
		m.logger.Error("cannot save score", "level", m.game.ID(), "error", msg.err)
		return m, nil
	}
	m.over.saved = true
	return m, fetchTopCmd(m.scores, m.game.ID(), m.runID)
}

// restart begins a new run of the same level.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runID = highscore.NewRunID()
	m.over = gameOver{}
	m.touches = nil
	m.inputFrame.Clear()
}

func fetchTopCmd(svc highscore.Service, level, runID string) tea.Cmd {
	return func() tea.Msg {
		done := make(chan topScoresMsg, 1)
		svc.Top(level, highscore.TableSize, func(entries []highscore.Entry, err error) {
			done <- topScoresMsg{runID: runID, entries: entries, err: err}
		})
		return <-done
	}
}

func submitCmd(svc highscore.Service, e highscore.Entry) tea.Cmd {
	return func() tea.Msg {
		done := make(chan submitMsg, 1)
		svc.Submit(e, func(err error) {
			done <- submitMsg{runID: e.RunID, err: err}
		})
		return <-done
	}
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

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}
	if m.over.active {
		return lipgloss.Place(m.config.ScreenW, m.config.ScreenH,
			lipgloss.Center, lipgloss.Center, m.gameOverView())
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

var (
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 3)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func (m Model) gameOverView() string {
	var b strings.Builder

	b.WriteString(headingStyle.Render("GAME OVER"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s  score %d\n\n", m.game.Title(), m.gameState.Score))

	switch {
	case !m.over.fetched:
		b.WriteString(mutedStyle.Render("Loading scores..."))
	case m.over.offline:
		b.WriteString(badStyle.Render("No connection to the score table"))
	case m.over.madeIt && m.over.saving:
		b.WriteString(mutedStyle.Render("Saving..."))
	case m.over.madeIt && m.over.submitErr != nil:
		b.WriteString(badStyle.Render("Could not save your score"))
	case m.over.madeIt && !m.over.saved && !m.over.skipped:
		b.WriteString(goodStyle.Render("You made the top ten!"))
		b.WriteString("\n")
		b.WriteString(m.over.name.View())
		if m.over.nameErr != "" {
			b.WriteString("\n")
			b.WriteString(badStyle.Render(m.over.nameErr))
		}
	case m.over.madeIt:
		b.WriteString(goodStyle.Render("You made the top ten!"))
	default:
		b.WriteString(mutedStyle.Render("Not in the top ten this time"))
	}

	if len(m.over.top) > 0 {
		b.WriteString("\n\n")
		b.WriteString(renderTopTable(m.over.top, m.runID))
	}

	b.WriteString("\n\n")
	if m.over.name.Focused() {
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keyMapper.Keys().Submit, m.keyMapper.Keys().Skip}))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keyMapper.Keys().GameOverHelp()))
	}

	return panelStyle.Render(b.String())
}

// renderTopTable lists a level's best entries, highlighting this run's.
func renderTopTable(entries []highscore.Entry, runID string) string {
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		line := fmt.Sprintf("%2d. %-10s %8d", i+1, e.Name, e.Score)
		if e.RunID == runID {
			line = goodStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// GoingBack reports whether the player left for the menu.
func (m Model) GoingBack() bool {
	return m.back
}

// Run starts the Bubble Tea program for a level.
// It returns true when the player went back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (goBack bool, err error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		fm.logger.Info("run ended", "run", fm.Summary())
		return fm.GoingBack(), nil
	}
	return false, nil
}

// Summary describes the run for logs.
func (m Model) Summary() string {
	if s, ok := m.game.(registry.Summarizer); ok {
		return s.Summary()
	}
	return fmt.Sprintf("%s score=%d", m.game.ID(), m.gameState.Score)
}

// Quitting reports whether the player asked to leave the program.
func (m Model) Quitting() bool {
	return m.quitting
}
