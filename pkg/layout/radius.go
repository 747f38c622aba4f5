package layout

import (
	"maps"
	"math"
	"slices"
)

// RingRadii computes one radius per non-empty ring:
//
//	r(d) = max(r(prev) + gap, count(d) · spacing / 2π)
//
// where prev is the previous non-empty ring and r(prev) starts at base.
// Rings with no headers get no radius. With gap > 0 the radii strictly
// increase with depth, and the arc between neighbours on a uniformly
// filled ring is at least spacing.
func RingRadii(counts map[int]int, spacing, gap, base float64) map[int]float64 {
	radii := make(map[int]float64, len(counts))
	prev := base
	for _, d := range slices.Sorted(maps.Keys(counts)) {
		n := counts[d]
		if n <= 0 {
			continue
		}
		r := math.Max(prev+gap, float64(n)*spacing/twoPi)
		radii[d] = r
		prev = r
	}
	return radii
}
