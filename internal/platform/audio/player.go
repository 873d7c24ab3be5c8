//go:build cgo || darwin || windows || js

package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

// Player is a runner.Audio backed by an oto context.
type Player struct {
	ctx   *oto.Context
	ready chan struct{}

	mu      sync.Mutex
	cache   map[runner.Cue][]byte
	playing map[runner.Cue][]oto.Player
	volume  float64
}

// New opens the default audio device.
func New() (*Player, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open device: %w", err)
	}
	return &Player{
		ctx:     ctx,
		ready:   ready,
		cache:   make(map[runner.Cue][]byte),
		playing: make(map[runner.Cue][]oto.Player),
		volume:  0.6,
	}, nil
}

// Play starts a cue. It never blocks; cues requested before the device is
// ready are dropped.
func (p *Player) Play(c runner.Cue) {
	select {
	case <-p.ready:
	default:
		return
	}

	p.mu.Lock()
	data, ok := p.cache[c]
	if !ok {
		data = Generate(c)
		p.cache[c] = data
	}
	if len(data) == 0 {
		p.mu.Unlock()
		return
	}
	player := p.ctx.NewPlayer(&sampleReader{data: data})
	player.SetVolume(p.volume)
	p.playing[c] = append(p.playing[c], player)
	p.mu.Unlock()

	player.Play()
	go p.reap(c, player)
}

// Stop silences every playing instance of a cue.
func (p *Player) Stop(c runner.Cue) {
	p.mu.Lock()
	players := p.playing[c]
	delete(p.playing, c)
	p.mu.Unlock()

	for _, pl := range players {
		pl.Pause()
	}
}

// reap closes a player once it has finished or been paused.
func (p *Player) reap(c runner.Cue, player oto.Player) {
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	//nolint:errcheck // Best-effort close
	player.Close()

	p.mu.Lock()
	defer p.mu.Unlock()
	list := p.playing[c]
	for i, pl := range list {
		if pl == player {
			p.playing[c] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(p.playing[c]) == 0 {
		delete(p.playing, c)
	}
}

// Close stops all cues.
func (p *Player) Close() {
	p.mu.Lock()
	cues := make([]runner.Cue, 0, len(p.playing))
	for c := range p.playing {
		cues = append(cues, c)
	}
	p.mu.Unlock()

	for _, c := range cues {
		p.Stop(c)
	}
}
