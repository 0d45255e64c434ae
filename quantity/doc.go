// Package quantity provides unit-carrying scalar values for the softmag
// model boundary.
//
// Each type stores its SI magnitude and offers constructors per accepted
// unit, so unit conversion happens exactly once, at the boundary. The
// numeric cores in bhcurve and ironloss consume bare SI magnitudes and stay
// free of unit logic.
//
//	h := quantity.Oersteds(12.5)     // normalized to A/m at construction
//	mu, err := curve.PermeabilityAtField(h)
//
// The types are plain float64 definitions: comparable, zero-cost, and safe
// to copy.
package quantity
