package runner

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// State is the session's lifecycle state.
type State int

const (
	StateCountdown State = iota
	StatePlaying
	StatePaused
	StateGameOver
	StateExited // back-to-menu was pressed
)

func (s State) String() string {
	switch s {
	case StateCountdown:
		return "countdown"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game-over"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Ended reports whether the session accepts no more frames.
func (s State) Ended() bool {
	return s == StateGameOver || s == StateExited
}

// Options carries the runtime collaborators of a session.
type Options struct {
	TickRate int
	Seed     int64
	Audio    Audio
}

// Session is one run of one level. It is single-threaded: Step and Draw must
// be called from the same goroutine.
type Session struct {
	cfg   config.LevelConfig
	types []CollectibleType
	opts  Options

	char  Character
	run   RunState
	state State
	frame int

	lanes     *LaneController
	scroller  *Scroller
	spawner   *Spawner
	resolver  *Resolver
	countdown *Countdown
	audio     Audio

	pause core.Box
	back  core.Box
}

// NewSession starts a session in the countdown state. It panics if cfg does
// not validate; loaders are expected to reject bad levels first.
func NewSession(cfg config.LevelConfig, opts Options) *Session {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("runner: %v", err))
	}
	if opts.Audio == nil {
		opts.Audio = Silent{}
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	types := TypesFromConfig(cfg.Collectibles)

	s := &Session{
		cfg:   cfg,
		types: types,
		opts:  opts,
		audio: opts.Audio,
		char: Character{
			X:      cfg.Lanes.Center,
			Y:      cfg.Player.StartY,
			W:      cfg.Player.Width,
			H:      cfg.Player.Height,
			SpeedX: cfg.Player.SpeedX,
			SpeedY: cfg.Speed.Initial,
		},
		run: RunState{
			ScoreText: "0",
			Lives:     cfg.Player.Lives,
			Level:     cfg.ID,
		},
		lanes:     NewLaneController(cfg.Lanes, cfg.View),
		scroller:  NewScroller(cfg),
		spawner:   NewSpawner(cfg, types, rng),
		resolver:  NewResolver(opts.Audio, cfg.Effect.Frames),
		countdown: NewCountdown(cfg.Countdown.Seconds, opts.TickRate),
		pause:     buttonBox(cfg.View.PauseButton),
		back:      buttonBox(cfg.View.BackButton),
	}
	s.spawner.Seed()
	if s.countdown.Done() {
		s.state = StatePlaying
	}
	return s
}

func buttonBox(b config.ButtonRect) core.Box {
	return core.NewBox(b.X, b.Y, b.W, b.H)
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Run returns a copy of the run bookkeeping.
func (s *Session) Run() RunState { return s.run }

// Character returns a copy of the character.
func (s *Session) Character() Character { return s.char }

// Active returns the live collectibles.
func (s *Session) Active() []ActiveCollectible { return s.spawner.Active() }

// Config returns the level configuration.
func (s *Session) Config() config.LevelConfig { return s.cfg }

// Frames returns the number of simulated frames.
func (s *Session) Frames() int { return s.frame }

// Step processes one frame of input. At most one touch is consumed.
func (s *Session) Step(in core.InputFrame) State {
	switch s.state {
	case StateCountdown:
		if s.countdown.Step(s.audio) {
			s.state = StatePlaying
		}
	case StatePlaying, StatePaused:
		// A control press uses up the frame's touch and does not steer.
		if in.Touch != nil && s.controls(in.Touch) {
			return s.state
		}
		if s.state == StatePlaying {
			s.advance(in.Touch)
		}
	}
	return s.state
}

// controls handles pause and back presses and reports whether the touch hit one.
func (s *Session) controls(t *core.Touch) bool {
	switch {
	case s.back.Contains(t.X, t.Y):
		s.audio.Play(CueButton)
		s.state = StateExited
		return true
	case s.pause.Contains(t.X, t.Y):
		s.audio.Play(CueButton)
		if s.state == StatePaused {
			s.state = StatePlaying
			s.run.Paused = false
		} else {
			s.state = StatePaused
			s.run.Paused = true
		}
		return true
	}
	return false
}

// advance runs one simulation frame:
// lanes, scroll, spawn, effect countdown, collisions, lives check.
func (s *Session) advance(touch *core.Touch) {
	s.frame++

	s.lanes.Update(&s.char, touch)

	if wrap, ok := s.scroller.Update(&s.char, &s.run); ok {
		s.spawner.Shift(wrap.Shift)
	}

	s.spawner.Update(&s.char, s.run.Loops)
	if s.run.EffectFrames > 0 {
		s.run.EffectFrames--
	}

	s.spawner.replace(s.resolver.Resolve(s.char.Box(), s.spawner.Active(), &s.run))

	if s.run.Lives == 0 {
		s.state = StateGameOver
	}
}

// DrawCall is one textured rectangle in draw space (world space minus the
// render offset). Subtract Frame.CameraY to get view coordinates.
type DrawCall struct {
	Texture   string
	Glyph     rune
	Frame     int // animation frame
	X, Y      float64
	W, H      float64
	Polarity  Polarity
	Character bool
}

// Frame is everything the display collaborator needs for one frame.
type Frame struct {
	Calls        []DrawCall
	CameraY      float64
	ViewW, ViewH float64
	Score        string
	Lives        int
	MaxLives     int
	State        State
	Countdown    string
	ShowControls bool
	Pause        core.Box
	Back         core.Box
	Slowed       bool
}

const animationFrames = 4

// Draw builds the draw list for the current frame. Items come first, the
// character last.
func (s *Session) Draw() Frame {
	off := s.scroller.Offset()
	active := s.spawner.Active()

	calls := make([]DrawCall, 0, len(active)+1)
	for _, a := range active {
		calls = append(calls, DrawCall{
			Texture:  a.Type.Texture,
			Glyph:    a.Type.Glyph,
			X:        a.Box.X,
			Y:        a.Box.Y - off,
			W:        a.Box.W,
			H:        a.Box.H,
			Polarity: a.Type.Polarity,
		})
	}
	calls = append(calls, DrawCall{
		Texture:   characterTexture(s.char.Facing),
		Frame:     (s.frame / 8) % animationFrames,
		X:         s.char.X,
		Y:         s.char.Y - off,
		W:         s.char.W,
		H:         s.char.H,
		Character: true,
	})

	return Frame{
		Calls:        calls,
		CameraY:      s.scroller.Camera(),
		ViewW:        s.cfg.View.Width,
		ViewH:        s.cfg.View.Height,
		Score:        s.run.ScoreText,
		Lives:        s.run.Lives,
		MaxLives:     s.cfg.Player.Lives,
		State:        s.state,
		Countdown:    s.countdown.Label(),
		ShowControls: s.state == StatePlaying || s.state == StatePaused,
		Pause:        s.pause,
		Back:         s.back,
		Slowed:       s.run.EffectFrames > 0,
	}
}

func characterTexture(f Facing) string {
	switch f {
	case FacingLeft:
		return "walk_left"
	case FacingRight:
		return "walk_right"
	default:
		return "walk_forward"
	}
}

// Summary is a one-line description of the run for the "run ended" log line.
func (s *Session) Summary() string {
	return s.run.Level + " score=" + s.run.ScoreText + " lives=" + strconv.Itoa(s.run.Lives) +
		" loops=" + strconv.Itoa(s.run.Loops) + " state=" + s.state.String()
}
