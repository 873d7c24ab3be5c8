package audio

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	frameBytes   = 8 // two float32 channels
)

// Generate renders a cue as interleaved stereo float32 LE samples.
func Generate(c runner.Cue) []byte {
	switch c {
	case runner.CuePositive:
		return genPickup()
	case runner.CueNegative:
		return genHurt()
	case runner.CueSpecial:
		return genSpecial()
	case runner.CueButton:
		return genClick()
	case runner.CueCountdown:
		return genBeep(440, 0.12)
	case runner.CueGo:
		return genBeep(880, 0.3)
	case runner.CueMadeIt:
		return genFanfare()
	case runner.CueDidNotMakeIt:
		return genSigh()
	default:
		return nil
	}
}

// putStereo writes a [-1,1] sample to both channels of frame i.
func putStereo(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < ChannelCount; ch++ {
		o := i*frameBytes + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat is a gentle saturation curve that stays within [-1,1].
func softSat(x float64) float64 {
	if x > 1 {
		return 1 - 0.5/x
	}
	if x < -1 {
		return -1 + 0.5/(-x)
	}
	return x - x*x*x/3
}

// adsr returns an envelope at normalized progress p in [0,1].
// attack, decay and release are fractions of the total duration.
func adsr(p, attack, decay, sustain, release float64) float64 {
	switch {
	case p < attack:
		return p / attack
	case p < attack+decay:
		return 1 - (p-attack)/decay*(1-sustain)
	case p < 1-release:
		return sustain
	default:
		return sustain * (1 - (p-(1-release))/release)
	}
}

func fm(t, carrier, ratio, index float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * ratio * t)
	return math.Sin(2*math.Pi*carrier*t + index*mod)
}

func render(mix []float64) []byte {
	buf := make([]byte, len(mix)*frameBytes)
	for i, s := range mix {
		putStereo(buf, i, softSat(s))
	}
	return buf
}

func samples(seconds float64) int {
	return int(seconds * SampleRate)
}

// genPickup: short rising chirp.
func genPickup() []byte {
	n := samples(0.09)
	mix := make([]float64, n)
	for i := range mix {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0, 0.1)
		freq := 520 + 680*p
		mix[i] = fm(t, freq, 2, 3*env)*env*0.5 + math.Sin(2*math.Pi*freq*3*t)*env*0.06
	}
	return render(mix)
}

// genHurt: falling tone.
func genHurt() []byte {
	n := samples(0.16)
	mix := make([]float64, n)
	for i := range mix {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.015, 0.55, 0.1, 0.25)
		freq := 320 - 220*p
		mix[i] = fm(t, freq, 1.5, 2.8*(1-p))*env*0.52 + math.Sin(2*math.Pi*freq*2*t)*env*0.1
	}
	return render(mix)
}

// arpeggio overlaps notes that each ring until the end.
func arpeggio(notes []float64, step, tail, ratio float64) []byte {
	noteLen := samples(step)
	total := len(notes)*noteLen + samples(tail)
	mix := make([]float64, total)
	for k, freq := range notes {
		start := k * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			env := adsr(float64(j)/float64(dur), 0.004, 0.6, 0.05, 0.3)
			mix[start+j] += fm(t, freq, ratio, 5*env)*env*0.3 + math.Sin(2*math.Pi*freq*2*t)*env*0.08
		}
	}
	return render(mix)
}

func genSpecial() []byte {
	return arpeggio([]float64{523.25, 659.25, 783.99, 1046.5}, 0.075, 0.18, 2.756)
}

func genFanfare() []byte {
	return arpeggio([]float64{440, 554.37, 659.25, 880, 1108.73}, 0.09, 0.25, 3.5)
}

func genClick() []byte {
	n := samples(0.065)
	mix := make([]float64, n)
	for i := range mix {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0, 0.1)
		mix[i] = fm(t, 1400-700*p, 1, 0.6) * env * 0.38
	}
	return render(mix)
}

func genBeep(freq, seconds float64) []byte {
	n := samples(seconds)
	mix := make([]float64, n)
	for i := range mix {
		t := float64(i) / SampleRate
		env := adsr(float64(i)/float64(n), 0.02, 0.2, 0.7, 0.3)
		mix[i] = math.Sin(2*math.Pi*freq*t) * env * 0.4
	}
	return render(mix)
}

// genSigh: staggered descending minor chord.
func genSigh() []byte {
	n := samples(0.75)
	mix := make([]float64, n)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0},
		{261.63, 0.14},
		{220, 0.28},
	}
	for _, note := range notes {
		start := samples(note.onset)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			mix[i] += fm(t, freq, 2, 2*env)*env*0.32 + math.Sin(2*math.Pi*freq*0.5*t)*env*0.1
		}
	}
	return render(mix)
}
