// Package audio plays the run's sound cues through oto. Cues are synthesized
// on first use and cached.
package audio

import (
	"io"

	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

// Open returns a device-backed player, or runner.Silent when muted or when
// no device is available. The error is non-nil only in the latter case.
func Open(mute bool) (runner.Audio, error) {
	if mute {
		return runner.Silent{}, nil
	}
	p, err := New()
	if err != nil {
		return runner.Silent{}, err
	}
	return p, nil
}

type sampleReader struct {
	data []byte
	pos  int
}

func (r *sampleReader) Read(b []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(b, r.data[r.pos:])
	r.pos += n
	return n, nil
}
