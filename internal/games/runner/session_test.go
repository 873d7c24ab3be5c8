package runner

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

func touchOn(b config.ButtonRect) core.InputFrame {
	return core.TouchAt(b.X+b.W/2, b.Y+b.H/2)
}

func TestSessionCountdown(t *testing.T) {
	rec := &recorder{}
	s := NewSession(level(t, "run1"), Options{TickRate: 10, Seed: 1, Audio: rec})

	if s.State() != StateCountdown {
		t.Fatalf("state = %v, expected countdown", s.State())
	}

	labels := []string{}
	for i := 0; i < 40; i++ {
		if l := s.Draw().Countdown; len(labels) == 0 || labels[len(labels)-1] != l {
			labels = append(labels, l)
		}
		if i < 39 && s.Step(noInput()) != StateCountdown {
			t.Fatalf("frame %d: countdown ended early", i)
		}
	}
	if s.Step(noInput()) != StatePlaying {
		t.Fatalf("state = %v, expected playing after 40 frames", s.State())
	}

	want := []string{"3", "2", "1", "GO"}
	for i := range want {
		if i >= len(labels) || labels[i] != want[i] {
			t.Fatalf("labels = %v, expected %v", labels, want)
		}
	}
	if rec.count("play:countdown") != 3 || rec.count("play:go") != 1 {
		t.Errorf("audio calls = %v", rec.calls)
	}
	if s.Character().Y != 5 {
		t.Errorf("character moved during the countdown: y = %v", s.Character().Y)
	}
}

func TestSessionCountdownIgnoresControls(t *testing.T) {
	cfg := level(t, "run1")
	s := NewSession(cfg, Options{TickRate: 60, Seed: 1})
	if s.Step(touchOn(cfg.View.BackButton)) != StateCountdown {
		t.Errorf("back should not be accepted during the countdown")
	}
}

func TestSessionPause(t *testing.T) {
	rec := &recorder{}
	s := playingSession(t, "run1", 3, rec)
	pause := touchOn(s.Config().View.PauseButton)

	s.Step(noInput())
	y := s.Character().Y

	if s.Step(pause) != StatePaused || !s.Run().Paused {
		t.Fatalf("state = %v, expected paused", s.State())
	}
	for i := 0; i < 30; i++ {
		s.Step(core.TouchAt(20, 200))
	}
	if c := s.Character(); c.Y != y || c.X != 126 {
		t.Errorf("character moved while paused: %+v", c)
	}

	if s.Step(pause) != StatePlaying || s.Run().Paused {
		t.Fatalf("state = %v, expected playing again", s.State())
	}
	s.Step(noInput())
	if s.Character().Y <= y {
		t.Error("simulation should resume after unpausing")
	}
	if rec.count("play:button") != 2 {
		t.Errorf("button cue played %d times, expected 2", rec.count("play:button"))
	}
}

func TestSessionBack(t *testing.T) {
	for _, paused := range []bool{false, true} {
		s := playingSession(t, "run2", 4, nil)
		view := s.Config().View
		if paused {
			s.Step(touchOn(view.PauseButton))
		}
		if s.Step(touchOn(view.BackButton)) != StateExited {
			t.Fatalf("paused=%v: state = %v, expected exited", paused, s.State())
		}
		frames := s.Frames()
		s.Step(noInput())
		if s.Frames() != frames || s.State() != StateExited {
			t.Errorf("paused=%v: an exited session must not simulate", paused)
		}
	}
}

func TestSessionLastLifeEndsRun(t *testing.T) {
	s := playingSession(t, "run1", 5, nil)
	s.run.Lives = 1

	neg := &s.spawner.types[typeIndex(s.spawner, "bed")]
	c := s.Character()
	s.spawner.replace([]ActiveCollectible{{Type: neg, Box: core.NewBox(c.X, c.Y, 32, 32)}})

	if st := s.Step(noInput()); st != StateGameOver {
		t.Fatalf("state = %v, expected game over on the collision frame", st)
	}
	if s.Run().Lives != 0 {
		t.Errorf("lives = %d, expected 0", s.Run().Lives)
	}

	y := s.Character().Y
	s.Step(core.TouchAt(20, 200))
	if s.Character().Y != y {
		t.Error("a finished session must not simulate")
	}
}

func TestSessionScoreScenario(t *testing.T) {
	s := playingSession(t, "run2", 6, nil)
	s.run.Score = 1000
	s.run.ScoreText = "1000"

	football := &s.spawner.types[typeIndex(s.spawner, "football")]
	c := s.Character()
	s.spawner.replace([]ActiveCollectible{{Type: football, Box: core.NewBox(c.X, c.Y, 32, 32)}})

	s.Step(noInput())
	if r := s.Run(); r.Score != 1150 || r.ScoreText != "1150" {
		t.Errorf("score = %d %q, expected 1150", r.Score, r.ScoreText)
	}
	if f := s.Draw(); f.Score != "1150" {
		t.Errorf("drawn score = %q, expected 1150", f.Score)
	}
}

func TestSessionSpecialEffect(t *testing.T) {
	s := playingSession(t, "run1", 7, nil)

	// Reach full curve speed first.
	for i := 0; i < 100; i++ {
		s.spawner.replace(nil)
		s.Step(noInput())
	}

	special := &s.spawner.types[typeIndex(s.spawner, "special")]
	c := s.Character()
	s.spawner.replace([]ActiveCollectible{{Type: special, Box: core.NewBox(c.X, c.Y, 32, 32)}})
	s.Step(noInput())

	if s.Run().EffectFrames != 300 {
		t.Fatalf("effect frames = %d, expected 300", s.Run().EffectFrames)
	}
	v0 := s.Character().SpeedY

	for i := 1; i <= 300; i++ {
		s.spawner.replace(nil)
		s.Step(noInput())
		if got := s.Character().SpeedY; got != v0-2 {
			t.Fatalf("frame %d: speed = %v, expected %v", i, got, v0-2)
		}
		if s.Run().EffectFrames != 300-i {
			t.Fatalf("frame %d: effect frames = %d, expected %d", i, s.Run().EffectFrames, 300-i)
		}
		if !s.Draw().Slowed && i < 300 {
			t.Fatalf("frame %d: frame should report the slow-down", i)
		}
	}

	s.spawner.replace(nil)
	y := s.Character().Y
	s.Step(noInput())
	if got, want := s.Character().SpeedY, s.scroller.Curve(y); got != want {
		t.Errorf("speed = %v, expected the curve speed %v after the effect", got, want)
	}
	if s.Character().SpeedY != v0 {
		t.Errorf("speed = %v, expected %v restored", s.Character().SpeedY, v0)
	}
}

func TestSessionDeterministic(t *testing.T) {
	inputs := make([]core.InputFrame, 3000)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch i % 97 {
		case 0:
			inputs[i] = core.TouchAt(20, 200)
		case 50:
			inputs[i] = core.TouchAt(260, 200)
		}
	}

	run := func() (RunState, []ActiveCollectible, Character) {
		s := playingSession(t, "run3", 42, nil)
		for _, in := range inputs {
			if s.Step(in).Ended() {
				break
			}
		}
		return s.Run(), append([]ActiveCollectible(nil), s.Active()...), s.Character()
	}

	r1, a1, c1 := run()
	r2, a2, c2 := run()
	if r1 != r2 || c1 != c2 {
		t.Fatalf("runs diverged: %+v / %+v", r1, r2)
	}
	if len(a1) != len(a2) {
		t.Fatalf("active counts differ: %d vs %d", len(a1), len(a2))
	}
	for i := range a1 {
		if a1[i].Box != a2[i].Box || a1[i].Type.ID != a2[i].Type.ID {
			t.Errorf("item %d differs: %+v vs %+v", i, a1[i], a2[i])
		}
	}
}

func TestSessionLoopShiftsWorld(t *testing.T) {
	cfg := level(t, "run2")
	cfg.Countdown.Seconds = 0
	cfg.Loop = config.LoopConfig{Start: 0, Span: 400}
	s := NewSession(cfg, Options{Seed: 9})

	for s.Run().Loops == 0 {
		s.spawner.replace(nil)
		s.Step(noInput())
	}

	off := s.scroller.Offset()
	c := s.Character()
	if c.Y != s.scroller.Base()+off {
		t.Errorf("y = %v, expected base + excess %v", c.Y, s.scroller.Base()+off)
	}

	f := s.Draw()
	last := f.Calls[len(f.Calls)-1]
	if !last.Character {
		t.Fatal("the character should be drawn last")
	}
	if last.Y != c.Y-off {
		t.Errorf("character drawn at %v, expected %v", last.Y, c.Y-off)
	}
	if view := last.Y - f.CameraY; view != cfg.Player.StartY {
		t.Errorf("character view y = %v, expected %v", view, cfg.Player.StartY)
	}
}

func TestSessionInvalidConfigPanics(t *testing.T) {
	cfg := level(t, "run1")
	cfg.Loop.Span = 0

	defer func() {
		if recover() == nil {
			t.Error("NewSession should panic on an invalid level")
		}
	}()
	NewSession(cfg, Options{})
}

func TestSessionSummary(t *testing.T) {
	s := playingSession(t, "run2", 6, nil)
	s.run.Score = 1150
	s.run.ScoreText = "1150"
	s.run.Lives = 2

	want := "run2 score=1150 lives=2 loops=0 state=playing"
	if got := s.Summary(); got != want {
		t.Errorf("Summary() = %q, expected %q", got, want)
	}
}
