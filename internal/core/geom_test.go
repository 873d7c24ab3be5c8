package core

import "testing"

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewBox(0, 0, 32, 32),
			b:        NewBox(16, 16, 32, 32),
			expected: true,
		},
		{
			name:     "touching edge is not an overlap",
			a:        NewBox(0, 0, 32, 32),
			b:        NewBox(32, 0, 32, 32),
			expected: false,
		},
		{
			name:     "touching top edge is not an overlap",
			a:        NewBox(0, 0, 32, 32),
			b:        NewBox(0, 32, 32, 32),
			expected: false,
		},
		{
			name:     "fractional overlap",
			a:        NewBox(126, 5.5, 36, 32),
			b:        NewBox(128, 37.25, 32, 32),
			expected: true,
		},
		{
			name:     "same lane, far apart",
			a:        NewBox(74, 480, 32, 32),
			b:        NewBox(74, 100, 32, 32),
			expected: false,
		},
		{
			name:     "neighbouring lanes",
			a:        NewBox(74, 200, 32, 32),
			b:        NewBox(128, 200, 32, 32),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxContains(t *testing.T) {
	b := NewBox(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 15, 15, true},
		{"bottom-left corner", 10, 10, true},
		{"top-right corner", 30, 25, true},
		{"outside left", 9.9, 15, false},
		{"outside top", 15, 25.1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestMax(t *testing.T) {
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Error("Max(3, 7) should be 7")
	}
}
