package runner

import "github.com/vovakirdan/tui-runner/internal/config"

// Wrap describes one loop wrap.
type Wrap struct {
	Excess float64 // overshoot past the loop threshold
	Shift  float64 // distance everything in world space moved down
}

// Scroller owns the vertical speed curve and the loop wrap that lets a finite
// band of world support unbounded travel.
type Scroller struct {
	speed  config.SpeedConfig
	loop   config.LoopConfig
	startY float64
	delta  float64 // effect slow-down

	bonus  float64 // accumulated per-loop bonus (curve mode)
	frozen bool    // curve no longer evaluated (direct mode after a loop)
	slowed bool    // effect delta currently applied
	camera float64 // camera bottom, in the same offset space as draws
	offset float64 // render offset: excess of the latest wrap
}

// NewScroller creates a scroller for a level.
func NewScroller(cfg config.LevelConfig) *Scroller {
	return &Scroller{
		speed:  cfg.Speed,
		loop:   cfg.Loop,
		startY: cfg.Player.StartY,
		delta:  cfg.Effect.SpeedDelta,
	}
}

// Base is the y a wrapped character returns to, before excess.
func (s *Scroller) Base() float64 {
	return s.loop.Start + s.startY
}

// Threshold is the y at which a wrap triggers.
func (s *Scroller) Threshold() float64 {
	return s.Base() + s.loop.Span
}

// Offset returns the render offset to subtract from world-space draws.
func (s *Scroller) Offset() float64 {
	return s.offset
}

// Camera returns the bottom of the visible band in draw space.
func (s *Scroller) Camera() float64 {
	return s.camera
}

// LoopBonus returns the accumulated per-loop bonus.
func (s *Scroller) LoopBonus() float64 {
	return s.bonus
}

// Curve evaluates the speed stages for a y position.
func (s *Scroller) Curve(y float64) float64 {
	v := s.speed.Initial
	for _, st := range s.speed.Stages {
		if y <= st.AboveY {
			break
		}
		if st.Set > 0 {
			v = st.Set
		}
		v += st.Add
		if st.LoopBonus {
			v += s.bonus
		}
	}
	return v
}

// Update sets this frame's speed, advances the character and wraps the world
// when the loop threshold is reached.
func (s *Scroller) Update(c *Character, run *RunState) (Wrap, bool) {
	if run.EffectFrames > 0 {
		if !s.slowed {
			c.SpeedY -= s.delta
			s.slowed = true
		}
	} else {
		if s.slowed {
			c.SpeedY += s.delta
			s.slowed = false
		}
		if !s.frozen {
			c.SpeedY = s.Curve(c.Y)
		}
	}

	c.Y += c.SpeedY
	s.camera += c.SpeedY

	threshold := s.Threshold()
	if c.Y < threshold {
		return Wrap{}, false
	}

	excess := c.Y - threshold
	shift := s.loop.Span - excess
	c.Y = s.Base() + excess
	s.camera = s.loop.Start
	s.offset = excess
	run.LoopProgress += shift
	run.Loops++

	if run.EffectFrames == 0 {
		if s.speed.Mode == config.ModeDirect {
			c.SpeedY += s.speed.LoopStep
		} else {
			s.bonus += s.speed.LoopStep
		}
	}
	if s.speed.Mode == config.ModeDirect {
		s.frozen = true
	}
	return Wrap{Excess: excess, Shift: shift}, true
}
