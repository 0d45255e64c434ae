package bhcurve

import (
	"fmt"
	"math"

	"github.com/arloliu/softmag/errs"
	"github.com/arloliu/softmag/quantity"
	"github.com/arloliu/softmag/spline"
)

// Axis identifies the independent variable of the measurement table a curve
// was built from.
type Axis uint8

const (
	// AxisField marks a curve built over the field strength H.
	AxisField Axis = 0x1
	// AxisFlux marks a curve built over the flux density B.
	AxisFlux Axis = 0x2
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisField:
		return "field_strength"
	case AxisFlux:
		return "flux_density"
	default:
		return "unknown"
	}
}

// Valid reports whether a is a known axis tag.
func (a Axis) Valid() bool {
	return a == AxisField || a == AxisFlux
}

// maxInversionIter bounds the bisection used for cross-axis queries when
// only one spline is available.
const maxInversionIter = 64

// Curve is an immutable relative permeability characteristic µr of a
// soft-magnetic material, evaluable from either the field strength H or the
// flux density B.
//
// Curves built from raw B-H tables (FromMagnetization, FromPolarization)
// carry a spline per axis and answer both queries directly. Curves built
// from direct permeability samples carry the native spline only; queries on
// the conjugate axis solve B = µ0·µr·H with a bounded bisection.
//
// The stored splines are stabilized for iterative solvers: permeability is
// non-increasing beyond the knee over the whole domain, extrapolation beyond
// the last knot decays linearly toward the vacuum asymptote, and evaluation
// is clamped below at the asymptote so it never returns a non-positive
// value. See the package documentation for the full stabilization policy.
//
// A Curve is safe for concurrent evaluation.
type Curve struct {
	axis       Axis
	fillFactor float64
	fromField  *spline.Spline // µr(H), nil when only flux-native data exists
	fromFlux   *spline.Spline // µr(B), nil when only field-native data exists
	floor      float64        // lower evaluation clamp, min(1, tail knot value)
}

// Restore rebuilds a Curve from previously exported state, without
// refitting. At least the spline matching the native axis must be present.
// This is the entry point for the matfile and JSON decoders.
func Restore(axis Axis, fillFactor, floor float64, fromField, fromFlux *spline.Spline) (*Curve, error) {
	if !axis.Valid() {
		return nil, fmt.Errorf("bhcurve: restore axis %d: %w", axis, errs.ErrInvalidRecord)
	}
	if fillFactor <= 0 || fillFactor > 1 {
		return nil, fmt.Errorf("bhcurve: restore fill factor %g: %w", fillFactor, errs.ErrFillFactor)
	}
	if !(floor > 0) || math.IsInf(floor, 0) {
		return nil, fmt.Errorf("bhcurve: restore floor %g: %w", floor, errs.ErrInvalidRecord)
	}
	if axis == AxisField && fromField == nil || axis == AxisFlux && fromFlux == nil {
		return nil, fmt.Errorf("bhcurve: restore without native %s spline: %w", axis, errs.ErrInvalidRecord)
	}

	return &Curve{
		axis:       axis,
		fillFactor: fillFactor,
		fromField:  fromField,
		fromFlux:   fromFlux,
		floor:      floor,
	}, nil
}

// Axis returns the independent variable of the source measurement table.
func (c *Curve) Axis() Axis { return c.axis }

// FillFactor returns the iron fill factor the curve was built with.
func (c *Curve) FillFactor() float64 { return c.fillFactor }

// Floor returns the lower evaluation clamp (the stabilized asymptote).
func (c *Curve) Floor() float64 { return c.floor }

// FieldSpline returns the µr(H) spline, or nil if the curve only carries
// flux-native data.
func (c *Curve) FieldSpline() *spline.Spline { return c.fromField }

// FluxSpline returns the µr(B) spline, or nil if the curve only carries
// field-native data.
func (c *Curve) FluxSpline() *spline.Spline { return c.fromFlux }

// PermeabilityAtField returns the relative permeability at the given field
// strength.
//
// The result is finite and positive for any finite non-negative input,
// including inputs far beyond the measured range. Negative or non-finite
// input fails with a range error.
func (c *Curve) PermeabilityAtField(h quantity.FieldStrength) (float64, error) {
	x := h.AmperesPerMeter()
	if err := checkQuery("field strength", x); err != nil {
		return 0, err
	}

	if c.fromField != nil {
		return c.clamp(c.fromField.Eval(x)), nil
	}

	return c.clamp(c.fromFlux.Eval(c.fluxAtField(x))), nil
}

// PermeabilityAtFlux returns the relative permeability at the given flux
// density.
//
// The result is finite and positive for any finite non-negative input,
// including inputs far beyond the measured range. Negative or non-finite
// input fails with a range error.
func (c *Curve) PermeabilityAtFlux(b quantity.FluxDensity) (float64, error) {
	x := b.Teslas()
	if err := checkQuery("flux density", x); err != nil {
		return 0, err
	}

	if c.fromFlux != nil {
		return c.clamp(c.fromFlux.Eval(x)), nil
	}

	return c.clamp(c.fromField.Eval(c.fieldAtFlux(x))), nil
}

// clamp applies the stabilized lower bound.
func (c *Curve) clamp(mu float64) float64 {
	if mu < c.floor {
		return c.floor
	}

	return mu
}

// fluxAtField solves B = µ0·µr(B)·H for B on the flux-native spline.
//
// µr(B) is non-increasing, so g(B) = B - µ0·µr(B)·H is strictly increasing
// and the root is unique. Since µr(B) <= µr(0), the root is bracketed by
// [0, µ0·µr(0)·H].
func (c *Curve) fluxAtField(h float64) float64 {
	if h == 0 {
		return 0
	}

	hi := quantity.VacuumPermeability * c.clamp(c.fromFlux.Eval(0)) * h
	if hi > math.MaxFloat64 {
		// The bracket overflowed; the largest finite value still lands in
		// the clamped tail, where the permeability equals the floor.
		hi = math.MaxFloat64
	}
	g := func(b float64) float64 {
		return b - quantity.VacuumPermeability*c.clamp(c.fromFlux.Eval(b))*h
	}

	return bisect(g, 0, hi)
}

// fieldAtFlux solves B = µ0·µr(H)·H for H on the field-native spline.
//
// µr(H) >= floor > 0 everywhere, so the root is bracketed by
// [0, B/(µ0·floor)].
func (c *Curve) fieldAtFlux(b float64) float64 {
	if b == 0 {
		return 0
	}

	hi := b / (quantity.VacuumPermeability * c.floor)
	if hi > math.MaxFloat64 {
		// The bracket overflowed; the largest finite value still lands in
		// the clamped tail, where the permeability equals the floor.
		hi = math.MaxFloat64
	}
	g := func(h float64) float64 {
		return quantity.VacuumPermeability*c.clamp(c.fromField.Eval(h))*h - b
	}

	return bisect(g, 0, hi)
}

// bisect runs a fixed number of bisection steps on g over [lo, hi], assuming
// g(lo) <= 0 <= g(hi).
func bisect(g func(float64) float64, lo, hi float64) float64 {
	for i := 0; i < maxInversionIter; i++ {
		mid := 0.5 * (lo + hi)
		if g(mid) < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return 0.5 * (lo + hi)
}

func checkQuery(what string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("bhcurve: %s %g: %w", what, v, errs.ErrNonFiniteInput)
	}
	if v < 0 {
		return fmt.Errorf("bhcurve: %s %g: %w", what, v, errs.ErrNegativeInput)
	}

	return nil
}
