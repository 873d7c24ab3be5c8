// Package config provides YAML-based level configuration loading and
// validation for the runner.
package config

// LevelConfig contains every tuned constant one run level needs.
// All positions and distances are world units (the logical 288x480 view).
type LevelConfig struct {
	ID           string              `yaml:"id"`
	Title        string              `yaml:"title"`
	View         ViewConfig          `yaml:"view"`
	Lanes        LanesConfig         `yaml:"lanes"`
	Player       PlayerConfig        `yaml:"player"`
	Speed        SpeedConfig         `yaml:"speed"`
	Loop         LoopConfig          `yaml:"loop"`
	Spawn        SpawnConfig         `yaml:"spawn"`
	Effect       EffectConfig        `yaml:"effect"`
	Countdown    CountdownConfig     `yaml:"countdown"`
	Collectibles []CollectibleConfig `yaml:"collectibles"`
}

// ViewConfig describes the logical view and its touch zones.
type ViewConfig struct {
	Width           float64    `yaml:"width"`
	Height          float64    `yaml:"height"`
	ReservedTopBand float64    `yaml:"reserved_top_band"` // ignored for lane movement
	LeftTouchMaxX   float64    `yaml:"left_touch_max_x"`
	RightTouchMinX  float64    `yaml:"right_touch_min_x"`
	PauseButton     ButtonRect `yaml:"pause_button"`
	BackButton      ButtonRect `yaml:"back_button"`
}

// ButtonRect is an on-screen control in view coordinates (bottom-left origin).
type ButtonRect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// LanesConfig holds the x coordinate of each lane.
type LanesConfig struct {
	Left   float64 `yaml:"left"`
	Center float64 `yaml:"center"`
	Right  float64 `yaml:"right"`
}

// PlayerConfig defines the character.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	StartY float64 `yaml:"start_y"`
	SpeedX float64 `yaml:"speed_x"`
	Lives  int     `yaml:"lives"`
}

// Speed escalation modes.
const (
	// ModeCurve re-evaluates the stage list every frame; loops raise the loop bonus.
	ModeCurve = "curve"
	// ModeDirect freezes the curve after the first loop; each loop adds LoopStep.
	ModeDirect = "direct"
)

// SpeedConfig defines the vertical speed progression.
type SpeedConfig struct {
	Initial  float64      `yaml:"initial"`
	Mode     string       `yaml:"mode"`
	LoopStep float64      `yaml:"loop_step"`
	Stages   []SpeedStage `yaml:"stages"`
}

// SpeedStage applies once the character's y is strictly above AboveY.
// A non-zero Set replaces the running speed, Add is added on top, and
// LoopBonus adds the accumulated per-loop bonus.
type SpeedStage struct {
	AboveY    float64 `yaml:"above_y"`
	Set       float64 `yaml:"set"`
	Add       float64 `yaml:"add"`
	LoopBonus bool    `yaml:"loop_bonus"`
}

// LoopConfig defines the world wrap band. Both values exclude the player's start y.
type LoopConfig struct {
	Start float64 `yaml:"start"`
	Span  float64 `yaml:"span"`
}

// SpawnConfig defines collectible placement.
type SpawnConfig struct {
	XMin             float64    `yaml:"x_min"`
	XMax             float64    `yaml:"x_max"`
	LaneSplit        [2]float64 `yaml:"lane_split"`
	ItemOffset       float64    `yaml:"item_offset"`
	ItemSize         float64    `yaml:"item_size"`
	SpecialAfterLoop bool       `yaml:"special_after_loop"`
	SpecialMinY      float64    `yaml:"special_min_y"`
}

// EffectConfig defines the special slow-down.
type EffectConfig struct {
	Frames     int     `yaml:"frames"`
	SpeedDelta float64 `yaml:"speed_delta"`
}

// CountdownConfig defines the pre-run countdown.
type CountdownConfig struct {
	Seconds int `yaml:"seconds"`
}

// Collectible polarities.
const (
	PolarityPositive = "positive"
	PolarityNegative = "negative"
	PolaritySpecial  = "special"
)

// CollectibleConfig describes one collectible kind.
type CollectibleConfig struct {
	ID        string `yaml:"id"`
	Texture   string `yaml:"texture"`
	Glyph     string `yaml:"glyph"`
	Polarity  string `yaml:"polarity"`
	Reward    int    `yaml:"reward"`
	FillerMin int    `yaml:"filler_min"`
	FillerMax int    `yaml:"filler_max"`
}
