// Package runner implements the endless-runner run core: lane movement,
// collectible spawning, world scrolling with loop wrap, collision scoring
// and the session state machine that ties them together.
//
// The core is frame-stepped and deterministic for a given seed and input
// sequence. It never blocks and never returns errors while simulating.
package runner

import (
	"strconv"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Polarity classifies how a collectible affects the run.
type Polarity int

const (
	Positive Polarity = iota // adds its reward to the score
	Negative                 // costs a life
	Special                  // starts the slow-down effect
)

func (p Polarity) String() string {
	switch p {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case Special:
		return "special"
	default:
		return "unknown"
	}
}

func parsePolarity(s string) Polarity {
	switch s {
	case config.PolarityNegative:
		return Negative
	case config.PolaritySpecial:
		return Special
	default:
		return Positive
	}
}

// CollectibleType is the immutable descriptor of one collectible kind.
type CollectibleType struct {
	ID        string
	Reward    int
	Texture   string
	Glyph     rune
	FillerMin int
	FillerMax int
	Polarity  Polarity
}

// TypesFromConfig builds the collectible descriptors of a level.
func TypesFromConfig(items []config.CollectibleConfig) []CollectibleType {
	types := make([]CollectibleType, 0, len(items))
	for _, it := range items {
		glyph := '?'
		if it.Glyph != "" {
			glyph = []rune(it.Glyph)[0]
		} else if it.ID != "" {
			glyph = []rune(it.ID)[0]
		}
		types = append(types, CollectibleType{
			ID:        it.ID,
			Reward:    it.Reward,
			Texture:   it.Texture,
			Glyph:     glyph,
			FillerMin: it.FillerMin,
			FillerMax: it.FillerMax,
			Polarity:  parsePolarity(it.Polarity),
		})
	}
	return types
}

// ActiveCollectible is a spawned item in world space.
type ActiveCollectible struct {
	Type *CollectibleType
	Box  core.Box
}

// Lane is one of the three fixed horizontal positions.
type Lane int

const (
	LaneLeft Lane = iota
	LaneCenter
	LaneRight
)

func (l Lane) String() string {
	switch l {
	case LaneLeft:
		return "left"
	case LaneCenter:
		return "center"
	case LaneRight:
		return "right"
	default:
		return "unknown"
	}
}

// Facing is the animation mode mirrored from the lane state.
type Facing int

const (
	FacingForward Facing = iota
	FacingLeft
	FacingRight
)

// Character is the runner. X is lane-continuous, Y is world-vertical.
type Character struct {
	X, Y   float64
	W, H   float64
	SpeedX float64
	SpeedY float64
	Facing Facing
}

// Box returns the character's collision box.
func (c Character) Box() core.Box {
	return core.NewBox(c.X, c.Y, c.W, c.H)
}

// RunState is the mutable per-run bookkeeping owned by a Session.
type RunState struct {
	Score        int
	ScoreText    string
	Lives        int
	Paused       bool
	LoopProgress float64 // cumulative world offset removed by loop wraps
	Loops        int
	Level        string
	EffectFrames int
}

// addScore keeps the display string in sync with the score.
func (r *RunState) addScore(n int) {
	r.Score += n
	r.ScoreText = strconv.Itoa(r.Score)
}

// Cue identifies a sound the run asks its audio collaborator to play.
type Cue int

const (
	CuePositive Cue = iota
	CueNegative
	CueSpecial
	CueButton
	CueCountdown
	CueGo
	CueMadeIt
	CueDidNotMakeIt
)

func (c Cue) String() string {
	switch c {
	case CuePositive:
		return "positive"
	case CueNegative:
		return "negative"
	case CueSpecial:
		return "special"
	case CueButton:
		return "button"
	case CueCountdown:
		return "countdown"
	case CueGo:
		return "go"
	case CueMadeIt:
		return "made-it"
	case CueDidNotMakeIt:
		return "did-not-make-it"
	default:
		return "unknown"
	}
}

// Audio is the fire-and-forget sound collaborator.
type Audio interface {
	Play(c Cue)
	Stop(c Cue)
}

// Silent discards every cue. It is used for --mute, SSH sessions and when no
// audio device is available.
type Silent struct{}

func (Silent) Play(Cue) {}
func (Silent) Stop(Cue) {}
