// Package bhcurve fits evaluable relative permeability characteristics from
// soft-magnetic material measurements.
//
// A Curve is built once from one of four measurement forms — magnetization
// tables (H, B), polarization tables (H, J), or direct permeability samples
// over either axis — and then evaluated any number of times, from any
// goroutine, via PermeabilityAtField and PermeabilityAtFlux.
//
// # Stabilization
//
// Raw material data is rarely usable by a nonlinear field solver as-is:
// initial permeability rises before the knee, measurement noise reverses the
// descent, and naive extrapolation beyond the measured range diverges or
// goes negative. Construction therefore applies a fixed policy:
//
//   - points left of the permeability maximum are dropped (knee trim)
//   - remaining knot values are clamped to be non-increasing, right to left
//   - the interpolant slopes are limited so it cannot overshoot between knots
//   - left of the first knot the curve is flat
//   - right of the last knot it decays linearly toward µr=1 at a flux
//     density of 100 T, and never below min(1, last knot value)
//
// The resulting curve is finite, positive and non-increasing beyond the knee
// over the entire non-negative axis.
//
// # Axes
//
// Curves built from raw B-H tables answer both query axes from dedicated
// splines sharing the same knots. Curves built from direct permeability
// samples carry one spline; the conjugate axis is answered by solving
// B = µ0·µr·H with a bounded bisection, which converges because the curve
// is monotone and bounded below.
package bhcurve
