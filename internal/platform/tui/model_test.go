package tui

import (
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/highscore"
)

// stubGame is a level whose outcome the test controls.
type stubGame struct {
	score    int
	over     bool
	exited   bool
	resets   int
	received []*core.Touch
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.over = false
	g.received = nil
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	var t *core.Touch
	if in.Touch != nil {
		c := *in.Touch
		t = &c
	}
	g.received = append(g.received, t)
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(*core.Screen) {}

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.score, Lives: 1, Level: "stub", GameOver: g.over, Exited: g.exited}
}

func (g *stubGame) CellTouch(col, row int) (core.Touch, bool) {
	if col < 0 || row < 0 {
		return core.Touch{}, false
	}
	return core.Touch{X: float64(col), Y: float64(row)}, true
}

func (g *stubGame) ControlTouch(c core.Control) core.Touch {
	return core.Touch{X: float64(100 + c), Y: 1}
}

// fakeScores answers synchronously from a fixed table.
type fakeScores struct {
	top       []highscore.Entry
	topErr    error
	submitted []highscore.Entry
}

func (f *fakeScores) Submit(e highscore.Entry, cb func(error)) {
	if err := highscore.ValidateName(e.Name); err != nil {
		cb(err)
		return
	}
	f.submitted = append(f.submitted, e)
	cb(nil)
}

func (f *fakeScores) Top(_ string, _ int, cb func([]highscore.Entry, error)) {
	cb(f.top, f.topErr)
}

type cueRecorder struct {
	played []runner.Cue
}

func (r *cueRecorder) Play(c runner.Cue) { r.played = append(r.played, c) }
func (r *cueRecorder) Stop(runner.Cue)   {}

func newTestModel(t *testing.T, g *stubGame, scores highscore.Service, a runner.Audio) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	return NewModel(g, cfg, Options{Scores: scores, Audio: a, Logger: log.New(io.Discard)})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelKeysQueueOneTouchPerTick(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, &fakeScores{}, &cueRecorder{})

	m, _ = update(t, m, runes("a"))
	m, _ = update(t, m, runes("d"))
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, TickMsg{})
	}

	if len(g.received) != 3 {
		t.Fatalf("game stepped %d times, expected 3", len(g.received))
	}
	if g.received[0] == nil || g.received[0].X != float64(100+core.ControlLeft) {
		t.Errorf("first tick touch = %v, expected the left control", g.received[0])
	}
	if g.received[1] == nil || g.received[1].X != float64(100+core.ControlRight) {
		t.Errorf("second tick touch = %v, expected the right control", g.received[1])
	}
	if g.received[2] != nil {
		t.Errorf("third tick touch = %v, expected none", g.received[2])
	}
}

func TestModelTouchQueueIsBounded(t *testing.T) {
	m := newTestModel(t, &stubGame{}, &fakeScores{}, &cueRecorder{})
	for i := 0; i < maxQueuedTouches+5; i++ {
		m, _ = update(t, m, runes("a"))
	}
	if len(m.touches) != maxQueuedTouches {
		t.Errorf("queued %d touches, expected %d", len(m.touches), maxQueuedTouches)
	}
}

func TestModelMouseClick(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, &fakeScores{}, &cueRecorder{})

	m, _ = update(t, m, tea.MouseMsg{X: 12, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, TickMsg{})

	if len(m.touches) != 0 {
		t.Errorf("release should not queue a touch, %d left", len(m.touches))
	}
	if got := g.received[0]; got == nil || got.X != 12 || got.Y != 7 {
		t.Errorf("touch = %v, expected (12, 7)", got)
	}
}

func TestModelExitGoesBack(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, &fakeScores{}, &cueRecorder{})

	g.exited = true
	m, cmd := update(t, m, TickMsg{})
	if !m.GoingBack() {
		t.Error("an exited run should go back to the menu")
	}
	if cmd == nil {
		t.Error("expected a quit command")
	}
	if m.View() != "" {
		t.Error("view should be empty once leaving")
	}
}

func TestModelDefaultsToSilentAudio(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, Options{Logger: log.New(io.Discard)})
	if _, ok := m.audio.(runner.Silent); !ok {
		t.Errorf("default audio = %T, expected runner.Silent", m.audio)
	}
}

func TestModelSummary(t *testing.T) {
	g := &stubGame{score: 420}
	m := newTestModel(t, g, &fakeScores{}, &cueRecorder{})
	if got := m.Summary(); got != "stub score=420" {
		t.Errorf("Summary() = %q", got)
	}

	lg := runner.New("run1")
	m = NewModel(lg, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, Options{Logger: log.New(io.Discard)})
	if got, want := m.Summary(), lg.Summary(); got != want || got == "run1" {
		t.Errorf("Summary() = %q, expected the session summary %q", got, want)
	}
}

// finish drives a model into game over and delivers the top scores.
func finish(t *testing.T, m Model, g *stubGame) Model {
	t.Helper()
	g.over = true
	m, _ = update(t, m, TickMsg{})
	if !m.over.active {
		t.Fatal("game-over panel not opened")
	}
	msg := fetchTopCmd(m.scores, g.ID(), m.runID)()
	m, _ = update(t, m, msg)
	return m
}

func TestModelGameOverMadeIt(t *testing.T) {
	g := &stubGame{score: 500}
	scores := &fakeScores{}
	cues := &cueRecorder{}
	m := newTestModel(t, g, scores, cues)

	m = finish(t, m, g)
	if !m.over.madeIt || !m.over.name.Focused() {
		t.Fatal("an empty table should accept the score and ask for a name")
	}
	if len(cues.played) != 1 || cues.played[0] != runner.CueMadeIt {
		t.Errorf("cues = %v, expected one made-it cue", cues.played)
	}

	// An empty name is rejected without calling the service.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.over.nameErr == "" || len(scores.submitted) != 0 {
		t.Fatal("empty name should be rejected locally")
	}

	m, _ = update(t, m, runes("ann"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.over.saving {
		t.Fatal("enter with a valid name should submit")
	}
	m, _ = update(t, m, cmd())

	if !m.over.saved {
		t.Fatal("score should be saved")
	}
	if len(scores.submitted) != 1 {
		t.Fatalf("submitted %d entries, expected 1", len(scores.submitted))
	}
	e := scores.submitted[0]
	if e.Name != "ann" || e.Score != 500 || e.Level != "stub" || e.RunID != m.runID {
		t.Errorf("submitted %+v", e)
	}

	// The refresh after saving does not replay the cue or reopen the field.
	m, _ = update(t, m, fetchTopCmd(m.scores, g.ID(), m.runID)())
	if len(cues.played) != 1 || m.over.name.Focused() {
		t.Error("refresh after saving should not restart name entry")
	}
}

func TestModelGameOverDidNotMakeIt(t *testing.T) {
	top := make([]highscore.Entry, highscore.TableSize)
	for i := range top {
		top[i] = highscore.Entry{Name: "pro", Score: 10000 - i}
	}
	g := &stubGame{score: 5}
	cues := &cueRecorder{}
	m := newTestModel(t, g, &fakeScores{top: top}, cues)

	m = finish(t, m, g)
	if m.over.madeIt || m.over.name.Focused() {
		t.Error("a low score should not ask for a name")
	}
	if len(cues.played) != 1 || cues.played[0] != runner.CueDidNotMakeIt {
		t.Errorf("cues = %v, expected one did-not-make-it cue", cues.played)
	}
}

func TestModelGameOverOffline(t *testing.T) {
	g := &stubGame{score: 5}
	cues := &cueRecorder{}
	m := newTestModel(t, g, &fakeScores{topErr: errors.New("down")}, cues)

	m = finish(t, m, g)
	if !m.over.offline {
		t.Error("a failed fetch should show the no-connection notice")
	}
	if len(cues.played) != 0 {
		t.Errorf("cues = %v, expected none", cues.played)
	}
}

func TestModelRetryStartsNewRun(t *testing.T) {
	g := &stubGame{score: 5}
	m := newTestModel(t, g, &fakeScores{topErr: highscore.ErrUnavailable}, &cueRecorder{})
	first := m.runID

	m = finish(t, m, g)
	m, _ = update(t, m, runes("r"))

	if m.over.active {
		t.Error("retry should close the game-over panel")
	}
	if g.resets != 2 {
		t.Errorf("game reset %d times, expected 2", g.resets)
	}
	if m.runID == first {
		t.Error("retry should start a new run id")
	}
}

func TestModelSkipThenBack(t *testing.T) {
	g := &stubGame{score: 5}
	m := newTestModel(t, g, &fakeScores{}, &cueRecorder{})

	m = finish(t, m, g)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.over.skipped || m.over.name.Focused() {
		t.Fatal("esc should skip name entry")
	}
	m, _ = update(t, m, runes("b"))
	if !m.GoingBack() {
		t.Error("b after game over should go back")
	}
}
