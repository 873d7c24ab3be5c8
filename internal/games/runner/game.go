package runner

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

// Visual characters for rendering
const (
	GuideChar   = '┊'
	BorderChar  = '│'
	HeartFull   = '♥'
	HeartEmpty  = '♡'
	BodyChar    = '█'
	PauseLabel  = "II"
	ResumeLabel = "▶"
	BackLabel   = "◀"
)

// configPath stores the custom config path set via CLI
var configPath string

// audio is the sound collaborator for sessions created through the registry.
var audio Audio = Silent{}

// SetConfigPath sets the custom level config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetAudio sets the sound collaborator used by new sessions. nil mutes.
func SetAudio(a Audio) {
	if a == nil {
		a = Silent{}
	}
	audio = a
}

// Game adapts a level Session to the registry.Game interface and renders
// it into a terminal screen buffer.
type Game struct {
	id      string
	title   string
	runtime core.RuntimeConfig
	session *Session
}

// New creates a game for a level id. The session starts on Reset.
func New(id string) *Game {
	title := id
	if cfg, err := config.Default(id); err == nil {
		title = cfg.Title
	}
	return &Game{id: id, title: title}
}

// ID returns the level identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this level.
func (g *Game) Title() string {
	return g.title
}

// Session returns the current session, nil before Reset.
func (g *Game) Session() *Session {
	return g.session
}

// Reset starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(g.id, configPath)
	if err != nil {
		cfg, err = config.Default(g.id)
		if err != nil {
			panic(fmt.Sprintf("runner: no configuration for level %q: %v", g.id, err))
		}
	}
	g.title = cfg.Title

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.session = NewSession(cfg, Options{
		TickRate: runtime.TickRate,
		Seed:     seed,
		Audio:    audio,
	})
}

// Step advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session != nil {
		g.session.Step(in)
	}
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Level: g.id}
	}
	run := g.session.Run()
	st := g.session.State()
	return core.GameState{
		Score:    run.Score,
		Lives:    run.Lives,
		Level:    run.Level,
		GameOver: st == StateGameOver,
		Paused:   st == StatePaused,
		Exited:   st == StateExited,
	}
}

// Summary describes the current run for logs.
func (g *Game) Summary() string {
	if g.session == nil {
		return g.id
	}
	return g.session.Summary()
}

func (g *Game) viewport(cols, rows int) viewport {
	cfg := g.session.Config()
	return newViewport(cols, rows, cfg.View.Width, cfg.View.Height)
}

// CellTouch converts a screen cell into a view touch.
func (g *Game) CellTouch(col, row int) (core.Touch, bool) {
	if g.session == nil {
		return core.Touch{}, false
	}
	return g.viewport(g.runtime.ScreenW, g.runtime.ScreenH).touch(col, row)
}

// ControlTouch returns a touch that presses the given control.
func (g *Game) ControlTouch(c core.Control) core.Touch {
	cfg, err := config.Default(g.id)
	if g.session != nil {
		cfg, err = g.session.Config(), nil
	}
	if err != nil {
		return core.Touch{}
	}
	v := cfg.View
	mid := (v.Height - v.ReservedTopBand) / 2
	switch c {
	case core.ControlLeft:
		return core.Touch{X: v.LeftTouchMaxX / 2, Y: mid}
	case core.ControlRight:
		return core.Touch{X: (v.RightTouchMinX + v.Width) / 2, Y: mid}
	case core.ControlPause:
		return center(v.PauseButton)
	default:
		return center(v.BackButton)
	}
}

func center(b config.ButtonRect) core.Touch {
	return core.Touch{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Resize records new screen dimensions for touch mapping.
func (g *Game) Resize(cols, rows int) {
	g.runtime.ScreenW = cols
	g.runtime.ScreenH = rows
}

// Register every built-in level with the registry
func init() {
	for _, id := range config.LevelIDs() {
		registry.Register(id, func() registry.Game {
			return New(id)
		})
	}
}
