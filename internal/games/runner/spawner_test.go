package runner

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/core"
)

func newSpawner(t *testing.T, id string, seed int64) (*Spawner, *Character) {
	t.Helper()
	cfg := level(t, id)
	sp := NewSpawner(cfg, TypesFromConfig(cfg.Collectibles), rand.New(rand.NewSource(seed)))
	c := &Character{X: cfg.Lanes.Center, Y: cfg.Player.StartY, SpeedY: 1}
	return sp, c
}

// overlaps is an independent strict-AABB oracle.
func overlaps(a, b core.Box) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func typeIndex(sp *Spawner, id string) int {
	for i := range sp.types {
		if sp.types[i].ID == id {
			return i
		}
	}
	return -1
}

func hold(sp *Spawner) {
	for i := range sp.fillers {
		sp.fillers[i] = 1 << 20
	}
}

func TestSpawnerLaneSnapping(t *testing.T) {
	sp, _ := newSpawner(t, "run1", 1)

	tests := []struct {
		x    float64
		want Lane
	}{
		{64, LaneLeft},
		{117, LaneLeft},
		{118, LaneCenter},
		{170, LaneCenter},
		{171, LaneRight},
		{224, LaneRight},
	}
	for _, tc := range tests {
		if got := sp.laneFor(tc.x); got != tc.want {
			t.Errorf("laneFor(%v) = %v, expected %v", tc.x, got, tc.want)
		}
	}
}

func TestSpawnerPlacement(t *testing.T) {
	sp, _ := newSpawner(t, "run1", 3)
	allowed := map[float64]bool{74: true, 128: true, 180: true}
	seen := map[float64]bool{}

	for i := 0; i < 500; i++ {
		b := sp.place(&sp.types[0])
		if !allowed[b.X] {
			t.Fatalf("placed at x = %v, expected a lane slot", b.X)
		}
		if b.Y != sp.Cursor() || b.W != 32 || b.H != 32 {
			t.Fatalf("placed box %+v, expected 32x32 at the cursor", b)
		}
		seen[b.X] = true
	}
	if len(seen) != 3 {
		t.Errorf("placement used %d lanes, expected all 3", len(seen))
	}
}

func TestSpawnerFillerRange(t *testing.T) {
	sp, _ := newSpawner(t, "run2", 5)
	for i := range sp.types {
		ty := &sp.types[i]
		for n := 0; n < 2000; n++ {
			f := sp.newFiller(ty)
			if f < ty.FillerMin || f >= ty.FillerMax {
				t.Fatalf("%s filler %d outside [%d, %d)", ty.ID, f, ty.FillerMin, ty.FillerMax)
			}
		}
	}
}

func TestSpawnerSeed(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		sp, _ := newSpawner(t, "run1", seed)
		sp.Seed()
		if len(sp.Active()) != 1 {
			t.Fatalf("seed %d: %d active items, expected 1", seed, len(sp.Active()))
		}
		if sp.Active()[0].Type.Polarity == Special {
			t.Fatalf("seed %d: the initial item must not be the special one", seed)
		}
	}
}

func TestSpawnerNeverOverlaps(t *testing.T) {
	sp, c := newSpawner(t, "run3", 11)
	sp.Seed()
	rng := rand.New(rand.NewSource(99))

	for frame := 0; frame < 20000; frame++ {
		c.SpeedY = rng.Float64() * 3
		c.Y += c.SpeedY
		before := len(sp.Active())
		n := sp.Update(c, 1)

		active := sp.Active()
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				if overlaps(active[i].Box, active[j].Box) {
					t.Fatalf("frame %d: items %d and %d overlap: %+v %+v", frame, i, j, active[i].Box, active[j].Box)
				}
			}
		}
		if n > 0 && len(active) > before+n {
			t.Fatalf("frame %d: active grew by more than the spawn count", frame)
		}
	}
}

func TestSpawnerSpawnsOncePerFrame(t *testing.T) {
	sp, c := newSpawner(t, "run1", 21)
	hold(sp)
	i := typeIndex(sp, "porridge")
	sp.fillers[i] = 1

	if n := sp.Update(c, 0); n != 1 {
		t.Fatalf("spawned %d items, expected 1", n)
	}
	ty := &sp.types[i]
	if f := sp.Filler(i); f < ty.FillerMin || f >= ty.FillerMax {
		t.Fatalf("filler = %d, expected a fresh draw", f)
	}

	after := sp.Filler(i)
	if n := sp.Update(c, 0); n != 0 {
		t.Errorf("spawned %d items on the next frame, expected 0", n)
	}
	if sp.Filler(i) != after-1 {
		t.Errorf("filler = %d, expected %d", sp.Filler(i), after-1)
	}
}

func TestSpawnerDroppedAttemptResetsFiller(t *testing.T) {
	sp, c := newSpawner(t, "run1", 8)
	hold(sp)

	// Block every lane slot the next spawn could use.
	y := sp.Cursor() + c.SpeedY
	for _, x := range []float64{74, 128, 180} {
		sp.active = append(sp.active, ActiveCollectible{Type: &sp.types[0], Box: core.NewBox(x, y, 32, 32)})
	}

	i := typeIndex(sp, "bed")
	sp.fillers[i] = 1
	if n := sp.Update(c, 0); n != 0 {
		t.Fatalf("spawned %d items into blocked lanes", n)
	}
	if len(sp.Active()) != 3 {
		t.Errorf("%d active items, expected the 3 blockers", len(sp.Active()))
	}
	if f := sp.Filler(i); f < sp.types[i].FillerMin {
		t.Errorf("filler = %d, expected it reset after the dropped attempt", f)
	}
}

func TestSpawnerRetire(t *testing.T) {
	sp, c := newSpawner(t, "run1", 2)
	hold(sp)
	c.Y = 1000
	c.SpeedY = 0
	trailing := c.Y - 5

	keep := core.NewBox(74, trailing-31.5, 32, 32)
	edge := core.NewBox(128, trailing-32, 32, 32)
	gone := core.NewBox(180, trailing-100, 32, 32)
	for _, b := range []core.Box{keep, edge, gone} {
		sp.active = append(sp.active, ActiveCollectible{Type: &sp.types[0], Box: b})
	}

	sp.Update(c, 0)
	if len(sp.Active()) != 1 || sp.Active()[0].Box != keep {
		t.Errorf("active = %+v, expected only the item above the trailing edge", sp.Active())
	}
}

func TestSpawnerShift(t *testing.T) {
	sp, _ := newSpawner(t, "run1", 4)
	sp.Seed()
	y := sp.Active()[0].Box.Y
	cursor := sp.Cursor()

	sp.Shift(46)
	if sp.Active()[0].Box.Y != y-46 || sp.Cursor() != cursor-46 {
		t.Errorf("Shift(46) moved item to %v and cursor to %v", sp.Active()[0].Box.Y, sp.Cursor())
	}
}

func TestSpawnerSpecialUnlock(t *testing.T) {
	t.Run("after the first loop", func(t *testing.T) {
		sp, c := newSpawner(t, "run2", 6)
		hold(sp)
		i := typeIndex(sp, "special")
		sp.fillers[i] = 1

		if n := sp.Update(c, 0); n != 0 || sp.Filler(i) != 1 {
			t.Fatalf("special spawned or ticked before the first loop (n=%d filler=%d)", n, sp.Filler(i))
		}
		if n := sp.Update(c, 1); n != 1 {
			t.Errorf("special spawned %d items after a loop, expected 1", n)
		}
	})

	t.Run("past a height", func(t *testing.T) {
		sp, c := newSpawner(t, "run3", 6)
		hold(sp)
		i := typeIndex(sp, "special")
		sp.fillers[i] = 1

		c.Y = 11525
		if n := sp.Update(c, 0); n != 0 {
			t.Fatalf("special spawned at the threshold")
		}
		c.Y = 11526
		if n := sp.Update(c, 0); n != 1 {
			t.Errorf("special spawned %d items past the threshold, expected 1", n)
		}
	})
}
