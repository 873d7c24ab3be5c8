package runner

import "github.com/vovakirdan/tui-runner/internal/core"

// Resolver applies the outcome of every item the character touches.
type Resolver struct {
	audio        Audio
	effectFrames int
}

// NewResolver creates a resolver. effectFrames is the slow-down length a
// special pickup starts.
func NewResolver(audio Audio, effectFrames int) *Resolver {
	if audio == nil {
		audio = Silent{}
	}
	return &Resolver{audio: audio, effectFrames: effectFrames}
}

// Resolve consumes every item overlapping the character box and returns the
// items that remain. The input slice is reused.
func (r *Resolver) Resolve(char core.Box, items []ActiveCollectible, run *RunState) []ActiveCollectible {
	kept := items[:0]
	for _, it := range items {
		if !char.Overlaps(it.Box) {
			kept = append(kept, it)
			continue
		}
		r.apply(it.Type, run)
	}
	return kept
}

func (r *Resolver) apply(t *CollectibleType, run *RunState) {
	switch t.Polarity {
	case Positive:
		run.addScore(t.Reward)
		r.cue(CuePositive)
	case Negative:
		if run.Lives > 0 {
			run.Lives--
		}
		r.cue(CueNegative)
	case Special:
		run.EffectFrames = r.effectFrames
		r.cue(CueSpecial)
	}
}

// cue stops the other pickup categories before playing c.
func (r *Resolver) cue(c Cue) {
	for _, other := range [...]Cue{CuePositive, CueNegative, CueSpecial} {
		if other != c {
			r.audio.Stop(other)
		}
	}
	r.audio.Play(c)
}
