package runner

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

func level(t *testing.T, id string) config.LevelConfig {
	t.Helper()
	cfg, err := config.Default(id)
	if err != nil {
		t.Fatalf("config.Default(%q): %v", id, err)
	}
	return cfg
}

// recorder is an Audio that remembers every call in order.
type recorder struct {
	calls []string
}

func (r *recorder) Play(c Cue) { r.calls = append(r.calls, "play:"+c.String()) }
func (r *recorder) Stop(c Cue) { r.calls = append(r.calls, "stop:"+c.String()) }

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

func noInput() core.InputFrame {
	return core.NewInputFrame()
}

// playingSession returns a session past its countdown.
func playingSession(t *testing.T, id string, seed int64, audio Audio) *Session {
	t.Helper()
	cfg := level(t, id)
	cfg.Countdown.Seconds = 0
	s := NewSession(cfg, Options{TickRate: 60, Seed: seed, Audio: audio})
	if s.State() != StatePlaying {
		t.Fatalf("state = %v, expected playing", s.State())
	}
	return s
}
