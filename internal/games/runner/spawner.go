package runner

import (
	"math/rand"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Spawner keeps one filler countdown per collectible type and maintains the
// list of active items.
type Spawner struct {
	types   []CollectibleType
	fillers []int
	active  []ActiveCollectible
	cursor  float64 // y of the next spawn; advances with the character
	rng     *rand.Rand
	cfg     config.SpawnConfig
	lanes   [3]float64
	startY  float64
}

// NewSpawner creates a spawner with fresh fillers for every type.
// The cursor starts one view height above the character's trailing edge.
func NewSpawner(cfg config.LevelConfig, types []CollectibleType, rng *rand.Rand) *Spawner {
	sp := &Spawner{
		types:   types,
		fillers: make([]int, len(types)),
		active:  make([]ActiveCollectible, 0, 16),
		cursor:  cfg.View.Height,
		rng:     rng,
		cfg:     cfg.Spawn,
		lanes:   [3]float64{cfg.Lanes.Left, cfg.Lanes.Center, cfg.Lanes.Right},
		startY:  cfg.Player.StartY,
	}
	for i := range sp.types {
		sp.fillers[i] = sp.newFiller(&sp.types[i])
	}
	return sp
}

// Active returns the live items. The slice is owned by the spawner.
func (sp *Spawner) Active() []ActiveCollectible {
	return sp.active
}

// Cursor returns the y at which the next item will spawn.
func (sp *Spawner) Cursor() float64 {
	return sp.cursor
}

// Filler returns the remaining countdown of the i-th type.
func (sp *Spawner) Filler(i int) int {
	return sp.fillers[i]
}

func (sp *Spawner) newFiller(t *CollectibleType) int {
	return t.FillerMin + sp.rng.Intn(t.FillerMax-t.FillerMin)
}

// Seed force-spawns one uniformly chosen non-special item.
func (sp *Spawner) Seed() {
	candidates := make([]int, 0, len(sp.types))
	for i := range sp.types {
		if sp.types[i].Polarity != Special {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}
	t := &sp.types[candidates[sp.rng.Intn(len(candidates))]]
	sp.active = append(sp.active, ActiveCollectible{Type: t, Box: sp.place(t)})
}

// laneFor snaps a raw x into one of the lane slots.
func (sp *Spawner) laneFor(x float64) Lane {
	switch {
	case x <= sp.cfg.LaneSplit[0]:
		return LaneLeft
	case x < sp.cfg.LaneSplit[1]:
		return LaneCenter
	default:
		return LaneRight
	}
}

func (sp *Spawner) place(t *CollectibleType) core.Box {
	span := int(sp.cfg.XMax - sp.cfg.XMin)
	x := sp.cfg.XMin + float64(sp.rng.Intn(span+1))
	lane := sp.laneFor(x)
	size := sp.cfg.ItemSize
	return core.NewBox(sp.lanes[lane]+sp.cfg.ItemOffset, sp.cursor, size, size)
}

// trySpawn places a new item unless it would overlap a live one.
func (sp *Spawner) trySpawn(t *CollectibleType) bool {
	box := sp.place(t)
	for _, a := range sp.active {
		if box.Overlaps(a.Box) {
			return false
		}
	}
	sp.active = append(sp.active, ActiveCollectible{Type: t, Box: box})
	return true
}

// specialUnlocked reports whether the special type may spawn yet.
func (sp *Spawner) specialUnlocked(y float64, loops int) bool {
	if loops > 0 {
		return true
	}
	if sp.cfg.SpecialAfterLoop {
		return false
	}
	return y > sp.cfg.SpecialMinY
}

// Update advances the cursor, runs every filler once and retires items that
// fell below the trailing edge. It returns the number of items spawned.
func (sp *Spawner) Update(c *Character, loops int) int {
	sp.cursor += c.SpeedY

	spawned := 0
	for i := range sp.types {
		t := &sp.types[i]
		if t.Polarity == Special && !sp.specialUnlocked(c.Y, loops) {
			continue
		}
		sp.fillers[i]--
		if sp.fillers[i] > 0 {
			continue
		}
		// The filler resets even when the attempt is dropped.
		if sp.trySpawn(t) {
			spawned++
		}
		sp.fillers[i] = sp.newFiller(t)
	}

	sp.retire(c.Y - sp.startY)
	return spawned
}

func (sp *Spawner) retire(trailing float64) {
	kept := sp.active[:0]
	for _, a := range sp.active {
		if a.Box.Y <= trailing-a.Box.H {
			continue
		}
		kept = append(kept, a)
	}
	sp.active = kept
}

// Shift moves every item and the cursor down by d after a loop wrap.
func (sp *Spawner) Shift(d float64) {
	sp.cursor -= d
	for i := range sp.active {
		sp.active[i].Box.Y -= d
	}
}

// replace swaps in the list left after collision resolution.
func (sp *Spawner) replace(items []ActiveCollectible) {
	sp.active = items
}
