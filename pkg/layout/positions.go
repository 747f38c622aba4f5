package layout

import "math"

// Position is the final placement of one header. Angle is kept next to the
// Cartesian coordinates for renderers that orient labels radially.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
	Depth  int     `json:"depth"`
}

// Positions converts angles to Cartesian coordinates on the ring radius of
// each header. Headers without a depth or radius are skipped. The root is
// added at the origin unless there is nothing to place.
func Positions(angles map[string]float64, depths *Depths, radii map[int]float64) map[string]Position {
	out := make(map[string]Position, len(angles)+1)
	if len(angles) > 0 {
		out[RootID] = Position{Angle: RootAngle}
	}
	for h, a := range angles {
		d, ok := depths.Depth(h)
		if !ok {
			continue
		}
		r, ok := radii[d]
		if !ok {
			continue
		}
		out[h] = Position{
			X:      r * math.Cos(a),
			Y:      r * math.Sin(a),
			Angle:  a,
			Radius: r,
			Depth:  d,
		}
	}
	return out
}
