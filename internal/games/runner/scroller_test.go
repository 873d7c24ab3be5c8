package runner

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
)

// loopLevel returns run1 tuned for a short loop band and constant speed.
func loopLevel(t *testing.T, speed float64, mode string) config.LevelConfig {
	t.Helper()
	cfg := level(t, "run1")
	cfg.Loop = config.LoopConfig{Start: 100, Span: 50}
	cfg.Speed = config.SpeedConfig{Initial: speed, Mode: mode, LoopStep: 1}
	return cfg
}

func TestScrollerCurve(t *testing.T) {
	s := NewScroller(level(t, "run1"))

	tests := []struct {
		y, want float64
	}{
		{5, 1},
		{10, 1},
		{11, 2},
		{31, 3},
		{61, 4},
		{4806, 5},
		{9606, 6},
	}
	for _, tc := range tests {
		if got := s.Curve(tc.y); got != tc.want {
			t.Errorf("Curve(%v) = %v, expected %v", tc.y, got, tc.want)
		}
	}
}

func TestScrollerWrapIsExact(t *testing.T) {
	cfg := loopLevel(t, 7, config.ModeCurve)
	s := NewScroller(cfg)
	c := &Character{Y: cfg.Player.StartY}
	run := &RunState{}

	var wrap Wrap
	frames := 0
	for {
		frames++
		w, ok := s.Update(c, run)
		if ok {
			wrap = w
			break
		}
	}

	// 5 + 7*22 = 159 crosses the threshold 155 by 4.
	if frames != 22 {
		t.Errorf("wrapped after %d frames, expected 22", frames)
	}
	if wrap.Excess != 4 {
		t.Errorf("excess = %v, expected 4", wrap.Excess)
	}
	if c.Y != s.Base()+wrap.Excess {
		t.Errorf("y = %v, expected base %v + excess %v", c.Y, s.Base(), wrap.Excess)
	}
	if wrap.Shift != 46 || run.LoopProgress != 46 {
		t.Errorf("shift = %v progress = %v, expected 46", wrap.Shift, run.LoopProgress)
	}
	if s.Offset() != 4 || s.Camera() != 100 {
		t.Errorf("offset = %v camera = %v, expected 4 and 100", s.Offset(), s.Camera())
	}
	if run.Loops != 1 {
		t.Errorf("loops = %d, expected 1", run.Loops)
	}
}

func TestScrollerNoDrift(t *testing.T) {
	cfg := loopLevel(t, 0.37, config.ModeCurve)
	s := NewScroller(cfg)
	c := &Character{Y: cfg.Player.StartY}
	run := &RunState{}

	var travelled, excesses float64
	wraps := 0
	for i := 0; i < 20000; i++ {
		before := c.Y
		w, ok := s.Update(c, run)
		travelled += c.SpeedY
		if !ok {
			continue
		}
		wraps++
		excesses += w.Excess
		if w.Excess < 0 {
			t.Fatalf("wrap %d: negative excess %v", wraps, w.Excess)
		}
		if got := before + c.SpeedY - s.Threshold(); got != w.Excess {
			t.Fatalf("wrap %d: excess %v, expected %v", wraps, w.Excess, got)
		}
		if c.Y != s.Base()+w.Excess {
			t.Fatalf("wrap %d: y = %v, expected %v", wraps, c.Y, s.Base()+w.Excess)
		}
	}

	if wraps == 0 {
		t.Fatal("expected at least one wrap")
	}
	wantProgress := float64(wraps)*cfg.Loop.Span - excesses
	if math.Abs(run.LoopProgress-wantProgress) > 1e-6 {
		t.Errorf("loop progress drifted: %v, expected %v", run.LoopProgress, wantProgress)
	}
	// Every wrap removes span from y; progress records span minus the excess.
	world := c.Y - cfg.Player.StartY + run.LoopProgress + excesses
	if math.Abs(world-travelled) > 1e-6 {
		t.Errorf("world position drifted: %v, expected %v", world, travelled)
	}
}

func TestScrollerLoopEscalation(t *testing.T) {
	t.Run("curve mode raises the loop bonus", func(t *testing.T) {
		cfg := loopLevel(t, 7, config.ModeCurve)
		cfg.Speed.Stages = []config.SpeedStage{{AboveY: 0, Add: 0, LoopBonus: true}}
		s := NewScroller(cfg)
		c := &Character{Y: cfg.Player.StartY}
		run := &RunState{}

		for run.Loops == 0 {
			s.Update(c, run)
		}
		if s.LoopBonus() != 1 {
			t.Fatalf("loop bonus = %v, expected 1", s.LoopBonus())
		}
		s.Update(c, run)
		if c.SpeedY != 8 {
			t.Errorf("speed = %v, expected 8 with the bonus", c.SpeedY)
		}
	})

	t.Run("direct mode adds the step and freezes the curve", func(t *testing.T) {
		cfg := loopLevel(t, 7, config.ModeDirect)
		s := NewScroller(cfg)
		c := &Character{Y: cfg.Player.StartY}
		run := &RunState{}

		for run.Loops == 0 {
			s.Update(c, run)
		}
		if c.SpeedY != 8 {
			t.Fatalf("speed = %v, expected 8 after the first loop", c.SpeedY)
		}
		for i := 0; i < 3; i++ {
			s.Update(c, run)
		}
		if c.SpeedY != 8 {
			t.Errorf("speed = %v, expected the curve to stay frozen at 8", c.SpeedY)
		}
	})

	t.Run("no escalation while slowed", func(t *testing.T) {
		cfg := loopLevel(t, 7, config.ModeDirect)
		s := NewScroller(cfg)
		c := &Character{Y: cfg.Player.StartY, SpeedY: 7}
		run := &RunState{EffectFrames: 1000}

		for run.Loops == 0 {
			s.Update(c, run)
		}
		if c.SpeedY != 5 {
			t.Errorf("speed = %v, expected 7 - 2 without a loop step", c.SpeedY)
		}
	})
}

func TestScrollerEffectEdges(t *testing.T) {
	for _, mode := range []string{config.ModeCurve, config.ModeDirect} {
		t.Run(mode, func(t *testing.T) {
			cfg := level(t, "run1")
			cfg.Speed = config.SpeedConfig{Initial: 4, Mode: mode}
			s := NewScroller(cfg)
			c := &Character{Y: cfg.Player.StartY}
			run := &RunState{}

			s.Update(c, run)
			if c.SpeedY != 4 {
				t.Fatalf("speed = %v, expected 4", c.SpeedY)
			}

			run.EffectFrames = 300
			for i := 0; i < 300; i++ {
				s.Update(c, run)
				if c.SpeedY != 2 {
					t.Fatalf("frame %d: speed = %v, expected the delta applied once (2)", i, c.SpeedY)
				}
				run.EffectFrames--
			}

			s.Update(c, run)
			if c.SpeedY != 4 {
				t.Errorf("speed = %v, expected the delta restored once (4)", c.SpeedY)
			}
			s.Update(c, run)
			if c.SpeedY != 4 {
				t.Errorf("speed = %v, expected 4 to hold", c.SpeedY)
			}
		})
	}
}
