// Package spline implements Akima spline interpolation tuned for material
// characteristic curves.
//
// Compared to a natural cubic spline, the Akima construction derives each
// knot slope from local secants only, which avoids the ringing that global
// constructions produce around sharp knees — exactly the shape a B-H
// characteristic has. Two features matter for iterative field solvers and
// are first-class here:
//
//   - Explicit boundary slopes: evaluation beyond the measured range
//     extrapolates linearly with caller-chosen slopes, so solver iterates
//     that overshoot the data stay on a bounded, predictable curve.
//   - Monotone clamp: an optional Fritsch-Carlson slope adjustment that
//     guarantees a monotonic interpolant for monotonic knot values without
//     moving any knot.
//
// The knot arrays (positions, values, slopes) are exported and can rebuild
// an identical spline via Restore, which is what the matfile and JSON
// codecs persist.
package spline
