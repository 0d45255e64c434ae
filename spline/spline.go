package spline

import (
	"fmt"
	"math"
	"sort"

	"github.com/arloliu/softmag/errs"
	"github.com/arloliu/softmag/internal/options"
)

// Spline is a cubic Hermite interpolant with Akima-style knot slopes and
// linear extrapolation beyond both domain ends.
//
// A Spline is immutable after construction and safe for concurrent
// evaluation. Its knot positions, knot values and knot slopes are exposed so
// the interpolant can be persisted and restored without refitting.
type Spline struct {
	xs []float64 // knot positions, strictly increasing
	ys []float64 // knot values
	ts []float64 // knot slopes (first derivative at each knot)

	leftSlope  float64 // extrapolation slope for x < xs[0]
	rightSlope float64 // extrapolation slope for x > xs[len(xs)-1]
}

// config carries construction settings applied by Options before fitting.
type config struct {
	leftSlope  float64
	rightSlope float64
	hasLeft    bool
	hasRight   bool
	monotone   bool
}

// Option configures spline construction.
type Option = options.Option[*config]

// WithLeftSlope fixes the linear extrapolation slope used left of the first
// knot. Without this option the fitted slope at the first knot is used.
func WithLeftSlope(m float64) Option {
	return options.NoError(func(c *config) {
		c.leftSlope = m
		c.hasLeft = true
	})
}

// WithRightSlope fixes the linear extrapolation slope used right of the last
// knot. Without this option the fitted slope at the last knot is used.
func WithRightSlope(m float64) Option {
	return options.NoError(func(c *config) {
		c.rightSlope = m
		c.hasRight = true
	})
}

// WithMonotoneClamp restricts the fitted knot slopes to the monotone region
// of each segment (Fritsch-Carlson criterion). For monotonic knot values the
// resulting interpolant is monotonic over the whole domain; knot values are
// never modified, so interpolation stays exact.
func WithMonotoneClamp() Option {
	return options.NoError(func(c *config) {
		c.monotone = true
	})
}

// New fits an Akima spline through the given knots.
//
// Parameters:
//   - xs: knot positions, strictly increasing, at least 2
//   - ys: knot values, same length as xs
//   - opts: optional boundary slope and monotonicity settings
//
// Returns:
//   - *Spline: the fitted interpolant
//   - error: ErrLengthMismatch, ErrTooFewPoints, ErrNonFiniteValue or
//     ErrUnsortedKnots on invalid input
func New(xs, ys []float64, opts ...Option) (*Spline, error) {
	var cfg config
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if len(xs) != len(ys) {
		return nil, fmt.Errorf("spline: %d knot positions, %d values: %w", len(xs), len(ys), errs.ErrLengthMismatch)
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("spline: %d knots: %w", len(xs), errs.ErrTooFewPoints)
	}
	for i := range xs {
		if !isFinite(xs[i]) || !isFinite(ys[i]) {
			return nil, fmt.Errorf("spline: knot %d (%g, %g): %w", i, xs[i], ys[i], errs.ErrNonFiniteValue)
		}
		if i > 0 && xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("spline: knot %d: x=%g after x=%g: %w", i, xs[i], xs[i-1], errs.ErrUnsortedKnots)
		}
	}

	s := &Spline{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
		ts: akimaSlopes(xs, ys),
	}
	if cfg.monotone {
		clampMonotone(s.xs, s.ys, s.ts)
	}

	s.leftSlope = s.ts[0]
	s.rightSlope = s.ts[len(s.ts)-1]
	if cfg.hasLeft {
		s.leftSlope = cfg.leftSlope
	}
	if cfg.hasRight {
		s.rightSlope = cfg.rightSlope
	}

	return s, nil
}

// Restore rebuilds a Spline from previously exported knot arrays and
// boundary slopes, without refitting. Evaluation of the restored spline is
// bit-identical to the original.
func Restore(xs, ys, slopes []float64, leftSlope, rightSlope float64) (*Spline, error) {
	if len(xs) != len(ys) || len(xs) != len(slopes) {
		return nil, fmt.Errorf("spline: restore with %d/%d/%d knot arrays: %w",
			len(xs), len(ys), len(slopes), errs.ErrLengthMismatch)
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("spline: restore with %d knots: %w", len(xs), errs.ErrTooFewPoints)
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("spline: restore knot %d: x=%g after x=%g: %w", i, xs[i], xs[i-1], errs.ErrUnsortedKnots)
		}
	}

	return &Spline{
		xs:         append([]float64(nil), xs...),
		ys:         append([]float64(nil), ys...),
		ts:         append([]float64(nil), slopes...),
		leftSlope:  leftSlope,
		rightSlope: rightSlope,
	}, nil
}

// Eval returns the interpolated value at x. Inputs beyond the knot range are
// extrapolated linearly with the boundary slopes.
func (s *Spline) Eval(x float64) float64 {
	n := len(s.xs)
	switch {
	case x <= s.xs[0]:
		return s.ys[0] + s.leftSlope*(x-s.xs[0])
	case x >= s.xs[n-1]:
		return s.ys[n-1] + s.rightSlope*(x-s.xs[n-1])
	}

	i := s.segment(x)
	h := s.xs[i+1] - s.xs[i]
	u := (x - s.xs[i]) / h

	// Cubic Hermite basis.
	u2 := u * u
	u3 := u2 * u
	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2

	return h00*s.ys[i] + h10*h*s.ts[i] + h01*s.ys[i+1] + h11*h*s.ts[i+1]
}

// Derivative returns the first derivative of the interpolant at x. Beyond
// the knot range it returns the constant boundary slope, which keeps
// Newton-type iterations bounded outside the measured domain.
func (s *Spline) Derivative(x float64) float64 {
	n := len(s.xs)
	switch {
	case x <= s.xs[0]:
		return s.leftSlope
	case x >= s.xs[n-1]:
		return s.rightSlope
	}

	i := s.segment(x)
	h := s.xs[i+1] - s.xs[i]
	u := (x - s.xs[i]) / h

	u2 := u * u
	d00 := (6*u2 - 6*u) / h
	d10 := 3*u2 - 4*u + 1
	d01 := (-6*u2 + 6*u) / h
	d11 := 3*u2 - 2*u

	return d00*s.ys[i] + d10*s.ts[i] + d01*s.ys[i+1] + d11*s.ts[i+1]
}

// Len returns the number of knots.
func (s *Spline) Len() int { return len(s.xs) }

// Domain returns the first and last knot positions.
func (s *Spline) Domain() (lo, hi float64) { return s.xs[0], s.xs[len(s.xs)-1] }

// Knots returns a copy of the knot positions.
func (s *Spline) Knots() []float64 { return append([]float64(nil), s.xs...) }

// Values returns a copy of the knot values.
func (s *Spline) Values() []float64 { return append([]float64(nil), s.ys...) }

// Slopes returns a copy of the knot slopes.
func (s *Spline) Slopes() []float64 { return append([]float64(nil), s.ts...) }

// BoundarySlopes returns the left and right extrapolation slopes.
func (s *Spline) BoundarySlopes() (left, right float64) { return s.leftSlope, s.rightSlope }

// segment returns the index i such that xs[i] < x < xs[i+1]. The caller
// guarantees x lies strictly inside the domain.
func (s *Spline) segment(x float64) int {
	i := sort.SearchFloat64s(s.xs, x) - 1
	if i < 0 {
		i = 0
	}
	if i > len(s.xs)-2 {
		i = len(s.xs) - 2
	}

	return i
}

// akimaSlopes computes the Akima knot slopes for the given knots.
//
// Secants are extended by two virtual slopes on each side (the classic Akima
// quadratic extension), which also covers the small-n cases down to two
// knots, where the interpolant degenerates to the connecting line.
func akimaSlopes(xs, ys []float64) []float64 {
	n := len(xs)
	ts := make([]float64, n)

	if n == 2 {
		m := (ys[1] - ys[0]) / (xs[1] - xs[0])
		ts[0], ts[1] = m, m

		return ts
	}

	// me holds the extended secants: me[j] corresponds to m[j-2].
	me := make([]float64, n+3)
	for i := 0; i < n-1; i++ {
		me[i+2] = (ys[i+1] - ys[i]) / (xs[i+1] - xs[i])
	}
	me[1] = 2*me[2] - me[3]
	me[0] = 2*me[1] - me[2]
	me[n+1] = 2*me[n] - me[n-1]
	me[n+2] = 2*me[n+1] - me[n]

	for i := 0; i < n; i++ {
		w1 := math.Abs(me[i+3] - me[i+2])
		w2 := math.Abs(me[i+1] - me[i])
		if w1+w2 == 0 {
			// Locally linear data: fall back to the average of the two
			// adjacent secants.
			ts[i] = (me[i+1] + me[i+2]) / 2
			continue
		}
		ts[i] = (w1*me[i+1] + w2*me[i+2]) / (w1 + w2)
	}

	return ts
}

// clampMonotone adjusts knot slopes into the Fritsch-Carlson monotone region
// of every segment: slopes with the wrong sign are zeroed, and slope pairs
// outside the circle α²+β² ≤ 9 are scaled onto it. Scaling only ever reduces
// slope magnitudes, so a single forward pass cannot invalidate an earlier
// segment.
func clampMonotone(xs, ys, ts []float64) {
	for i := 0; i < len(xs)-1; i++ {
		d := (ys[i+1] - ys[i]) / (xs[i+1] - xs[i])
		if d == 0 {
			ts[i] = 0
			ts[i+1] = 0
			continue
		}

		alpha := ts[i] / d
		if alpha < 0 {
			ts[i] = 0
			alpha = 0
		}
		beta := ts[i+1] / d
		if beta < 0 {
			ts[i+1] = 0
			beta = 0
		}

		if r2 := alpha*alpha + beta*beta; r2 > 9 {
			tau := 3 / math.Sqrt(r2)
			ts[i] = tau * alpha * d
			ts[i+1] = tau * beta * d
		}
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
