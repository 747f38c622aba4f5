// Package filter narrows an include graph to the headers of one project.
//
// [Apply] keeps headers whose path starts with one of the given prefixes.
// Headers outside the prefixes are dropped unless they sit on an include
// chain that leaves the project and comes back into it, for example
// app.h -> <vector> -> app_fwd.h. Such headers are kept as intermediate
// nodes so the layout still shows how the project headers connect, and each
// chain is reported as a warning.
//
// The pipeline assigns depths on the unfiltered graph first and then lays
// out only [Result.Visible] headers with [Result.Restrict] edges, so ring
// indices reflect the real include depth.
package filter
