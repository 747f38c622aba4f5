// Package layout computes radial layouts of include graphs.
//
// # Overview
//
// A translation unit's include graph is drawn as concentric rings around a
// synthetic root ([RootID]). Ring d holds the headers whose shortest include
// chain from the root has d hops. The package assigns every reachable header
// an angle so that parent-child edges stay close to radial, edges between
// rings cross as little as possible and neighbours on a ring stay legibly
// apart.
//
// # Pipeline
//
// [Compute] runs the stages in order:
//
//  1. [AssignDepths]: multi-source BFS from the root's direct includes.
//  2. [Classify]: label each edge [EdgeTree], [EdgeBack], [EdgeSameLevel]
//     or [EdgeForwardSkip] by depth difference.
//  3. [BuildTree]: pick one primary parent per header, bridging headers
//     without a TREE parent to a shallower ring.
//  4. [RingRadii]: size rings so neighbours keep MinNodeSpacing of arc and
//     rings keep MinRingGap apart.
//  5. A [Placer] assigns angles. [MedianPlacer] is the default;
//     [WedgePlacer] is a simpler tree-wedge strategy.
//  6. [Positions] converts angles and radii to Cartesian coordinates.
//
// Each stage is exported so it can be run and tested on its own.
//
// # Angles
//
// All angles are radians in (-π, π]. The root sits at [RootAngle], the top
// of the circle in screen coordinates. [CircularMedian] is a discrete
// median: only input angles are candidates and the first minimal one wins.
//
// # Determinism
//
// Every stage sorts its inputs, so identical edges, seeds and options always
// produce identical angles. Nothing in this package is concurrent or does
// I/O.
package layout
