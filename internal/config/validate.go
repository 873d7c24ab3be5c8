package config

import (
	"errors"
	"fmt"
)

// ErrInvalidLevel is wrapped by every validation failure.
var ErrInvalidLevel = errors.New("invalid level config")

func invalid(id, format string, args ...any) error {
	return fmt.Errorf("config: level %q: %w: %s", id, ErrInvalidLevel, fmt.Sprintf(format, args...))
}

// Validate reports the first constraint the level violates.
func (c LevelConfig) Validate() error {
	if c.ID == "" {
		return invalid(c.ID, "missing id")
	}

	v := c.View
	if v.Width <= 0 || v.Height <= 0 {
		return invalid(c.ID, "view size must be positive")
	}
	if v.LeftTouchMaxX >= v.RightTouchMinX {
		return invalid(c.ID, "left touch zone must end before the right one starts")
	}
	if v.ReservedTopBand < 0 || v.ReservedTopBand >= v.Height {
		return invalid(c.ID, "reserved top band out of range")
	}

	l := c.Lanes
	if !(l.Left < l.Center && l.Center < l.Right) {
		return invalid(c.ID, "lanes must be ordered left < center < right")
	}

	p := c.Player
	if p.Width <= 0 || p.Height <= 0 {
		return invalid(c.ID, "player size must be positive")
	}
	if p.SpeedX <= 0 {
		return invalid(c.ID, "player speed_x must be positive")
	}
	if p.Lives <= 0 {
		return invalid(c.ID, "player lives must be positive")
	}

	if c.Loop.Span <= 0 {
		return invalid(c.ID, "loop span must be positive")
	}
	if c.Loop.Start < 0 {
		return invalid(c.ID, "loop start must not be negative")
	}

	if err := c.validateSpeed(); err != nil {
		return err
	}

	s := c.Spawn
	if s.XMin >= s.XMax {
		return invalid(c.ID, "spawn x range is empty")
	}
	if s.LaneSplit[0] >= s.LaneSplit[1] {
		return invalid(c.ID, "lane split thresholds must be ascending")
	}
	if s.ItemSize <= 0 {
		return invalid(c.ID, "item size must be positive")
	}

	if c.Effect.Frames < 0 || c.Effect.SpeedDelta < 0 {
		return invalid(c.ID, "effect values must not be negative")
	}
	if slowest := c.slowestSpecialSpeed(); c.Effect.Frames > 0 && c.Effect.SpeedDelta >= slowest {
		return invalid(c.ID, "effect speed_delta %v must stay below %v, the slowest speed once the special item can spawn",
			c.Effect.SpeedDelta, slowest)
	}
	if c.Countdown.Seconds < 0 {
		return invalid(c.ID, "countdown must not be negative")
	}

	return c.validateCollectibles()
}

func (c LevelConfig) validateSpeed() error {
	sp := c.Speed
	if sp.Initial <= 0 {
		return invalid(c.ID, "initial speed must be positive")
	}
	switch sp.Mode {
	case ModeCurve, ModeDirect:
	default:
		return invalid(c.ID, "unknown speed mode %q", sp.Mode)
	}
	if sp.LoopStep < 0 {
		return invalid(c.ID, "loop step must not be negative")
	}

	speed := sp.Initial
	for i, st := range sp.Stages {
		if i > 0 && st.AboveY <= sp.Stages[i-1].AboveY {
			return invalid(c.ID, "speed stage %d: thresholds must be strictly ascending", i)
		}
		if st.Add < 0 {
			return invalid(c.ID, "speed stage %d: add must not be negative", i)
		}
		next := speed
		if st.Set > 0 {
			next = st.Set
		}
		next += st.Add
		if next < speed {
			return invalid(c.ID, "speed stage %d: speed curve must not decrease", i)
		}
		speed = next
	}
	return nil
}

// stageSpeed evaluates the speed stages without loop bonuses. A stage applies
// when its threshold is below y, or equal to it when above is set.
func (c LevelConfig) stageSpeed(y float64, above bool) float64 {
	v := c.Speed.Initial
	for _, st := range c.Speed.Stages {
		if st.AboveY > y || (st.AboveY == y && !above) {
			break
		}
		if st.Set > 0 {
			v = st.Set
		}
		v += st.Add
	}
	return v
}

// slowestSpecialSpeed is the lowest vertical speed in force at any point where
// a special item can be picked up.
func (c LevelConfig) slowestSpecialSpeed() float64 {
	// After a wrap a curve level restarts at loop start; a direct level keeps
	// the speed it wrapped with.
	afterLoop := c.stageSpeed(c.Loop.Start, false)
	if c.Speed.Mode == ModeDirect {
		afterLoop = c.stageSpeed(c.Loop.Start+c.Loop.Span, false)
	}
	if c.Spawn.SpecialAfterLoop || c.Spawn.SpecialMinY >= c.Loop.Start+c.Loop.Span {
		return afterLoop
	}
	return min(afterLoop, c.stageSpeed(c.Spawn.SpecialMinY, true))
}

func (c LevelConfig) validateCollectibles() error {
	seen := make(map[string]bool, len(c.Collectibles))
	specials, others := 0, 0

	for _, it := range c.Collectibles {
		if it.ID == "" {
			return invalid(c.ID, "collectible without id")
		}
		if seen[it.ID] {
			return invalid(c.ID, "duplicate collectible %q", it.ID)
		}
		seen[it.ID] = true

		switch it.Polarity {
		case PolaritySpecial:
			specials++
		case PolarityPositive, PolarityNegative:
			others++
		default:
			return invalid(c.ID, "collectible %q: unknown polarity %q", it.ID, it.Polarity)
		}
		if it.FillerMin < 1 || it.FillerMin >= it.FillerMax {
			return invalid(c.ID, "collectible %q: filler range [%d, %d) is invalid", it.ID, it.FillerMin, it.FillerMax)
		}
		if it.Reward < 0 {
			return invalid(c.ID, "collectible %q: reward must not be negative", it.ID)
		}
	}

	if specials != 1 {
		return invalid(c.ID, "exactly one special collectible required, got %d", specials)
	}
	if others == 0 {
		return invalid(c.ID, "at least one non-special collectible required")
	}
	return nil
}
