package layout

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/includeviz/pkg/dag"
)

// Placer assigns an angle to every header on every ring.
//
// Implementations must return exactly one angle in (-π, π] for every header
// in Input.Depths and must terminate within their configured pass limits.
type Placer interface {
	Name() string
	Place(in *Input) *Placement
}

// Input is everything a [Placer] may consult. Placers treat it as
// read-only.
type Input struct {
	Edges      Edges
	Depths     *Depths
	Classified Classified
	Tree       *Tree
	Radii      map[int]float64

	MinNodeSpacing float64
	MaxRelaxPasses int
	MaxSwapPasses  int

	// Logger receives debug summaries of each phase. Nil disables logging.
	Logger *log.Logger
}

// Placement is the output of a [Placer].
type Placement struct {
	// Angles holds one angle per header. The root is not included; it is
	// always at [RootAngle].
	Angles map[string]float64

	// Rings holds the final angular order of each ring.
	Rings map[int][]string

	Crossings   int
	RelaxPasses int
	SwapPasses  int
	Swaps       int
}

// Placers lists the built-in strategies by name.
var Placers = map[string]Placer{
	MedianPlacer{}.Name(): MedianPlacer{},
	WedgePlacer{}.Name():  WedgePlacer{},
}

// PlacerNames returns the names of the built-in strategies, sorted.
func PlacerNames() []string {
	names := make([]string, 0, len(Placers))
	for n := range Placers {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func (in *Input) debug(msg string, keyvals ...any) {
	logDebug(in.Logger, msg, keyvals...)
}

// minGap is the smallest angle between neighbours on ring so that their
// arc distance is at least MinNodeSpacing.
func (in *Input) minGap(ring int) float64 {
	return MinAngularGap(in.MinNodeSpacing, in.Radii[ring])
}

type target struct {
	id    string
	angle float64
}

// spreadRing sorts targets by angle then name, enforces the minimum gap and
// writes the resulting angles. It returns the new ring order.
func spreadRing(targets []target, gap float64, angles map[string]float64) []string {
	slices.SortFunc(targets, func(a, b target) int {
		if c := cmp.Compare(a.angle, b.angle); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	raw := make([]float64, len(targets))
	for i, t := range targets {
		raw[i] = t.angle
	}
	spread := SpreadAngles(raw, gap)
	for i, t := range targets {
		targets[i].angle = spread[i]
		angles[t.id] = spread[i]
	}
	slices.SortFunc(targets, func(a, b target) int {
		if c := cmp.Compare(a.angle, b.angle); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	order := make([]string, len(targets))
	for i, t := range targets {
		order[i] = t.id
	}
	return order
}

// countCrossings counts crossings of the classified edges under rings.
func countCrossings(rings map[int][]string, classified Classified) int {
	return dag.CountCrossings(rings, classified.All())
}
