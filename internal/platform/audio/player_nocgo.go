//go:build !cgo && !darwin && !windows && !js

package audio

import (
	"errors"

	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

// ErrNoDevice is returned by New in builds without cgo, where oto has no
// audio backend on this platform.
var ErrNoDevice = errors.New("audio: built without cgo, no device backend")

// Player is unavailable without cgo.
type Player struct{}

// New always fails in this build.
func New() (*Player, error) {
	return nil, ErrNoDevice
}

func (*Player) Play(runner.Cue) {}
func (*Player) Stop(runner.Cue) {}

// Close does nothing.
func (*Player) Close() {}
