package core

// Touch is a single pointer press in view coordinates.
// The view has its origin at the bottom-left corner and y grows upwards.
type Touch struct {
	X, Y float64
}

// InputFrame represents the input state during one simulation tick.
// It carries at most one touch; the platform queues extra touches for later frames.
type InputFrame struct {
	Touch *Touch
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// TouchAt creates an input frame holding a single touch.
func TouchAt(x, y float64) InputFrame {
	return InputFrame{Touch: &Touch{X: x, Y: y}}
}

// Clear drops the touch for the next frame.
func (f *InputFrame) Clear() {
	f.Touch = nil
}

// Control names an on-screen control the platform can press on the player's behalf.
type Control int

const (
	ControlLeft  Control = iota // left half of the play field
	ControlRight                // right half of the play field
	ControlPause                // pause button
	ControlBack                 // back-to-menu button
)
