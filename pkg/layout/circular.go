package layout

import "math"

const twoPi = 2 * math.Pi

// RootAngle is the fixed angle of [RootID]: the top of the circle.
const RootAngle = -math.Pi / 2

// NormalizeAngle maps a into (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a > math.Pi {
		a -= twoPi
	} else if a <= -math.Pi {
		a += twoPi
	}
	return a
}

// CircularDistance is the length of the shorter arc between a and b.
func CircularDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), twoPi)
	return math.Min(d, twoPi-d)
}

// CircularMean averages angles as unit vectors. Nil weights count every
// angle once. It returns 0 for no input or zero total weight.
func CircularMean(angles, weights []float64) float64 {
	if len(angles) == 0 {
		return 0
	}
	var x, y, total float64
	for i, a := range angles {
		w := weightAt(weights, i)
		x += w * math.Cos(a)
		y += w * math.Sin(a)
		total += w
	}
	if total == 0 {
		return 0
	}
	return math.Atan2(y/total, x/total)
}

// CircularMedian returns the input angle with the least weighted sum of
// circular distances to all inputs. Only input angles are candidates, and
// the first minimal candidate wins. It returns 0 for no input.
func CircularMedian(angles, weights []float64) float64 {
	if len(angles) == 0 {
		return 0
	}
	best, bestCost := angles[0], math.Inf(1)
	for _, cand := range angles {
		cost := 0.0
		for i, a := range angles {
			cost += weightAt(weights, i) * CircularDistance(cand, a)
		}
		if cost < bestCost {
			best, bestCost = cand, cost
		}
	}
	return best
}

func weightAt(weights []float64, i int) float64 {
	if weights == nil {
		return 1
	}
	return weights[i]
}
