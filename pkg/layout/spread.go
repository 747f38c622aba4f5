package layout

import (
	"cmp"
	"math"
	"slices"
)

// SpreadAngles moves angles apart so that circularly adjacent entries are at
// least minGap radians apart, keeping their cyclic order. The result is
// indexed like the input and normalised to (-π, π].
//
// The circle is cut at its largest gap, angles are unwrapped into a line
// and a forward pass pushes each one to at least minGap past its
// predecessor. The pushed block is then shifted back so its mean matches
// the input mean, which leaves already well spaced input untouched.
//
// When n·minGap exceeds 2π, or the pushed block would overlap itself
// across the cut, the angles are placed uniformly around their circular
// mean instead. That fallback keeps the order but not the proximity.
func SpreadAngles(angles []float64, minGap float64) []float64 {
	n := len(angles)
	out := make([]float64, n)
	for i, a := range angles {
		out[i] = NormalizeAngle(a)
	}
	if n < 2 || minGap <= 0 {
		return out
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(out[a], out[b]) })

	if float64(n)*minGap > twoPi {
		return uniformSpread(out, order)
	}

	// The gap before order[k] is the widest; start the line there.
	cut, widest := 0, out[order[0]]+twoPi-out[order[n-1]]
	for k := 1; k < n; k++ {
		if gap := out[order[k]] - out[order[k-1]]; gap > widest {
			cut, widest = k, gap
		}
	}

	line := make([]float64, n)
	var before, after float64
	for j := range n {
		k := (cut + j) % n
		v := out[order[k]]
		if cut+j >= n {
			v += twoPi
		}
		before += v
		if j > 0 {
			v = math.Max(v, line[j-1]+minGap)
		}
		line[j] = v
		after += v
	}
	if line[n-1]-line[0] > twoPi-minGap {
		return uniformSpread(out, order)
	}

	shift := (before - after) / float64(n)
	for j := range n {
		out[order[(cut+j)%n]] = NormalizeAngle(line[j] + shift)
	}
	return out
}

// uniformSpread spaces angles 2π/n apart in the given order, centred on the
// circular mean of the input.
func uniformSpread(angles []float64, order []int) []float64 {
	n := len(order)
	mean := CircularMean(angles, nil)
	step := twoPi / float64(n)
	out := make([]float64, n)
	for j, idx := range order {
		out[idx] = NormalizeAngle(mean + step*(float64(j)-float64(n-1)/2))
	}
	return out
}

// MinAngularGap converts an arc spacing into an angle on a ring of the
// given radius. It returns 0 for a non-positive radius.
func MinAngularGap(spacing, radius float64) float64 {
	if radius <= 0 || spacing <= 0 {
		return 0
	}
	return spacing / radius
}
