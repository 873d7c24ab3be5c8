package runner

import "strconv"

// Countdown is the frame-counted "3, 2, 1, GO" before a run starts.
type Countdown struct {
	seconds  int
	perStep  int
	frame    int
	finished bool
}

// NewCountdown creates a countdown of the given seconds at tickRate frames
// per second. The last second shows GO.
func NewCountdown(seconds, tickRate int) *Countdown {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Countdown{
		seconds:  seconds,
		perStep:  tickRate,
		finished: seconds <= 0,
	}
}

// Done reports whether the countdown has completed.
func (c *Countdown) Done() bool {
	return c.finished
}

// Label returns the text currently shown, or "" once done.
func (c *Countdown) Label() string {
	if c.finished {
		return ""
	}
	remaining := c.seconds - 1 - c.frame/c.perStep
	if remaining <= 0 {
		return "GO"
	}
	return strconv.Itoa(remaining)
}

// Step advances one frame, playing a cue whenever a new label appears.
// It reports whether the countdown completed on this frame.
func (c *Countdown) Step(audio Audio) bool {
	if c.finished {
		return false
	}
	if c.frame%c.perStep == 0 {
		if c.Label() == "GO" {
			audio.Play(CueGo)
		} else {
			audio.Play(CueCountdown)
		}
	}
	c.frame++
	if c.frame >= c.seconds*c.perStep {
		c.finished = true
		return true
	}
	return false
}
