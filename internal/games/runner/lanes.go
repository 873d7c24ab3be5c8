package runner

import (
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// laneState is either idle at a lane or a transition between adjacent lanes.
// carry requests that a transition arriving at center continues to the
// opposite extreme (the same-side double tap).
type laneState struct {
	moving bool
	from   Lane
	to     Lane
	carry  bool
}

// LaneController turns side touches into stepped horizontal movement across
// three lanes. Once no transition is in progress the character's x always
// equals one of the lane coordinates.
type LaneController struct {
	xs       [3]float64
	leftMax  float64
	rightMin float64
	bandY    float64 // touches at or above this y are reserved for controls
	lane     Lane    // resting lane while idle
	state    laneState
}

// NewLaneController creates a controller resting in the center lane.
func NewLaneController(lanes config.LanesConfig, view config.ViewConfig) *LaneController {
	return &LaneController{
		xs:       [3]float64{lanes.Left, lanes.Center, lanes.Right},
		leftMax:  view.LeftTouchMaxX,
		rightMin: view.RightTouchMinX,
		bandY:    view.Height - view.ReservedTopBand,
		lane:     LaneCenter,
	}
}

// X returns the coordinate of a lane.
func (lc *LaneController) X(l Lane) float64 {
	return lc.xs[l]
}

// Lane returns the resting lane and whether the controller is idle.
func (lc *LaneController) Lane() (Lane, bool) {
	return lc.lane, !lc.state.moving
}

// Moving reports whether a transition is in progress.
func (lc *LaneController) Moving() bool {
	return lc.state.moving
}

// side classifies a touch as -1 (left), +1 (right) or 0 (ignored).
func (lc *LaneController) side(t *core.Touch) int {
	if t == nil || t.Y >= lc.bandY {
		return 0
	}
	switch {
	case t.X <= lc.leftMax:
		return -1
	case t.X >= lc.rightMin:
		return 1
	}
	return 0
}

func dir(from, to Lane) int {
	if to > from {
		return 1
	}
	return -1
}

// Update applies this frame's touch and advances any transition by one step.
func (lc *LaneController) Update(c *Character, t *core.Touch) {
	if s := lc.side(t); s != 0 {
		lc.press(s)
	}
	if lc.state.moving {
		lc.step(c)
	}
	c.Facing = lc.facing()
}

func (lc *LaneController) press(side int) {
	st := lc.state
	if !st.moving {
		target := lc.lane + Lane(side)
		if target < LaneLeft || target > LaneRight {
			return
		}
		lc.state = laneState{moving: true, from: lc.lane, to: target}
		return
	}

	d := dir(st.from, st.to)
	switch {
	case side == -d:
		lc.state = laneState{moving: true, from: st.to, to: st.from}
	case st.from != LaneCenter:
		// Heading for center from an extreme: queue the far lane.
		lc.state.carry = true
	}
}

func (lc *LaneController) step(c *Character) {
	st := lc.state
	d := dir(st.from, st.to)
	target := lc.xs[st.to]

	c.X += float64(d) * c.SpeedX
	if (d > 0 && c.X < target) || (d < 0 && c.X > target) {
		return
	}

	c.X = target
	lc.lane = st.to
	if st.carry && st.to == LaneCenter {
		lc.state = laneState{moving: true, from: LaneCenter, to: LaneCenter + Lane(d)}
		return
	}
	lc.state = laneState{}
}

func (lc *LaneController) facing() Facing {
	if !lc.state.moving {
		return FacingForward
	}
	if dir(lc.state.from, lc.state.to) > 0 {
		return FacingRight
	}
	return FacingLeft
}
