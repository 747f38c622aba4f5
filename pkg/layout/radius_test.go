package layout

import (
	"math"
	"testing"
)

func TestRingRadii(t *testing.T) {
	tests := []struct {
		name               string
		counts             map[int]int
		spacing, gap, base float64
		want               map[int]float64
	}{
		{
			name:    "gap dominates",
			counts:  map[int]int{1: 1, 2: 3},
			spacing: 80, gap: 100,
			want: map[int]float64{1: 100, 2: 200},
		},
		{
			name:    "crowded ring",
			counts:  map[int]int{1: 1, 2: 3, 3: 50},
			spacing: 80, gap: 100,
			want: map[int]float64{1: 100, 2: 200, 3: 50 * 80 / (2 * math.Pi)},
		},
		{
			name:    "base radius",
			counts:  map[int]int{1: 2, 2: 2},
			spacing: 10, gap: 50, base: 200,
			want: map[int]float64{1: 250, 2: 300},
		},
		{
			name:    "empty ring skipped",
			counts:  map[int]int{1: 2, 2: 0, 3: 1},
			spacing: 80, gap: 100,
			want: map[int]float64{1: 100, 3: 200},
		},
		{
			name:   "empty",
			counts: nil,
			gap:    100,
			want:   map[int]float64{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RingRadii(tt.counts, tt.spacing, tt.gap, tt.base)
			if len(got) != len(tt.want) {
				t.Fatalf("RingRadii() = %v, want %v", got, tt.want)
			}
			for d, want := range tt.want {
				if math.Abs(got[d]-want) > 1e-9 {
					t.Errorf("RingRadii()[%d] = %v, want %v", d, got[d], want)
				}
			}
		})
	}
}

func TestRingRadii_Invariants(t *testing.T) {
	counts := map[int]int{1: 3, 2: 40, 3: 7, 4: 120, 5: 1}
	const spacing, gap = 80.0, 100.0
	radii := RingRadii(counts, spacing, gap, 0)
	prev := 0.0
	for d := 1; d <= 5; d++ {
		r := radii[d]
		if r < prev+gap-1e-9 {
			t.Errorf("r(%d) = %v, want >= %v", d, r, prev+gap)
		}
		if arc := 2 * math.Pi * r / float64(counts[d]); arc < spacing-1e-9 {
			t.Errorf("ring %d arc = %v, want >= %v", d, arc, spacing)
		}
		prev = r
	}
}
