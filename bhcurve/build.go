package bhcurve

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/softmag/errs"
	"github.com/arloliu/softmag/internal/options"
	"github.com/arloliu/softmag/quantity"
	"github.com/arloliu/softmag/spline"
)

const (
	// defaultResampleStep is the field strength grid used to thin dense raw
	// B-H tables before fitting, in A/m.
	defaultResampleStep = 10.0
	// defaultResampleTol is the relative permeability change below which a
	// resampled point is dropped as redundant.
	defaultResampleTol = 0.02

	// asymptoteFlux is the flux density at which the extrapolated tail of a
	// descending curve reaches the vacuum line, in tesla. Far beyond any
	// physical saturation, it only fixes the decay rate of the tail.
	asymptoteFlux = 100.0

	// dedupRelTol is the relative spacing below which two abscissae count as
	// the same measurement point.
	dedupRelTol = 1e-9
)

type config struct {
	fillFactor  float64
	resample    bool
	resampleTol float64
}

// Option configures curve construction.
type Option = options.Option[*config]

func newConfig() *config {
	return &config{
		fillFactor:  1.0,
		resample:    true,
		resampleTol: defaultResampleTol,
	}
}

// WithFillFactor sets the iron fill factor of a laminated or composite core.
// The curve then describes the area-weighted mixture of iron and air at
// equal field strength. The factor must lie in (0, 1]; the default is 1
// (solid material).
func WithFillFactor(f float64) Option {
	return options.New(func(cfg *config) error {
		if math.IsNaN(f) || f <= 0 || f > 1 {
			return fmt.Errorf("bhcurve: fill factor %g: %w", f, errs.ErrFillFactor)
		}
		cfg.fillFactor = f

		return nil
	})
}

// WithResampleTolerance sets the relative permeability change that keeps a
// point when thinning raw B-H tables. The default is 0.02.
func WithResampleTolerance(tol float64) Option {
	return options.New(func(cfg *config) error {
		if math.IsNaN(tol) || tol <= 0 {
			return fmt.Errorf("bhcurve: resample tolerance %g: %w", tol, errs.ErrInvalidData)
		}
		cfg.resampleTol = tol

		return nil
	})
}

// WithoutResampling keeps the raw measurement grid of FromMagnetization and
// FromPolarization instead of thinning it on a uniform field grid.
func WithoutResampling() Option {
	return options.NoError(func(cfg *config) {
		cfg.resample = false
	})
}

// FromMagnetization builds a permeability curve from a measured
// magnetization table of paired field strengths and flux densities.
//
// The table is sorted, deduplicated and, when dense enough, thinned on a
// uniform field grid before fitting. Points left of the permeability maximum
// are dropped and the remaining knots are clamped to be non-increasing, so
// the curve is safe to drive from a nonlinear solver.
//
// Parameters:
//   - field: measured field strengths, non-negative
//   - flux: measured flux densities at the same indices, non-negative
//   - opts: optional settings, e.g. WithFillFactor
//
// Returns:
//   - *Curve: the fitted curve, evaluable on both axes
//   - error: a data error describing the first rejected input
func FromMagnetization(field []quantity.FieldStrength, flux []quantity.FluxDensity, opts ...Option) (*Curve, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	h := make([]float64, len(field))
	for i, v := range field {
		h[i] = v.AmperesPerMeter()
	}
	b := make([]float64, len(flux))
	for i, v := range flux {
		b[i] = v.Teslas()
	}

	return buildFromTable(h, b, cfg)
}

// FromPolarization builds a permeability curve from a measured polarization
// table. The magnetic polarization J excludes the vacuum share of the flux;
// J = B - µ0·H, so the table is converted to flux densities and handled like
// a magnetization table.
func FromPolarization(field []quantity.FieldStrength, polarization []quantity.FluxDensity, opts ...Option) (*Curve, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	h := make([]float64, len(field))
	for i, v := range field {
		h[i] = v.AmperesPerMeter()
	}
	b := make([]float64, len(polarization))
	for i, v := range polarization {
		b[i] = v.Teslas()
	}
	if len(h) == len(b) {
		for i := range b {
			b[i] += quantity.VacuumPermeability * h[i]
		}
	}

	return buildFromTable(h, b, cfg)
}

// FromPermeabilityAtField builds a curve from direct relative permeability
// samples over the field strength. Queries on the flux axis are answered by
// inverting B = µ0·µr(H)·H numerically.
func FromPermeabilityAtField(field []quantity.FieldStrength, mu []float64, opts ...Option) (*Curve, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	x := make([]float64, len(field))
	for i, v := range field {
		x[i] = v.AmperesPerMeter()
	}

	return buildFromPermeability(AxisField, x, mu, cfg)
}

// FromPermeabilityAtFlux builds a curve from direct relative permeability
// samples over the flux density. Queries on the field axis are answered by
// inverting B = µ0·µr(B)·H numerically.
func FromPermeabilityAtFlux(flux []quantity.FluxDensity, mu []float64, opts ...Option) (*Curve, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	x := make([]float64, len(flux))
	for i, v := range flux {
		x[i] = v.Teslas()
	}

	return buildFromPermeability(AxisFlux, x, mu, cfg)
}

// buildFromTable runs the full pipeline for raw (H, B) tables and produces a
// curve carrying both the field-native and flux-native splines.
func buildFromTable(h, b []float64, cfg *config) (*Curve, error) {
	h, b, err := prepareSamples(h, b)
	if err != nil {
		return nil, err
	}

	if cfg.resample && h[len(h)-1] >= 3*defaultResampleStep {
		h, b, err = resampleTable(h, b, cfg.resampleTol)
		if err != nil {
			return nil, err
		}
	}

	// Permeability knots exist only where H > 0; the fill factor mixes the
	// iron flux with the vacuum flux of the non-iron share at equal field.
	hk := make([]float64, 0, len(h))
	bk := make([]float64, 0, len(h))
	mk := make([]float64, 0, len(h))
	for i := range h {
		if h[i] == 0 {
			continue
		}
		bred := cfg.fillFactor*b[i] + (1-cfg.fillFactor)*quantity.VacuumPermeability*h[i]
		mu := bred / (quantity.VacuumPermeability * h[i])
		if mu <= 0 {
			return nil, fmt.Errorf("bhcurve: permeability %g at H=%g A/m: %w", mu, h[i], errs.ErrNegativeMeasurement)
		}
		hk = append(hk, h[i])
		bk = append(bk, bred)
		mk = append(mk, mu)
	}
	if len(hk) < 2 {
		return nil, fmt.Errorf("bhcurve: %d usable points with H > 0: %w", len(hk), errs.ErrTooFewPoints)
	}

	knee := kneeIndex(mk)
	hk, bk, mk = hk[knee:], bk[knee:], mk[knee:]
	if len(hk) < 2 {
		return nil, fmt.Errorf("bhcurve: permeability still rising at the last measurement: %w", errs.ErrNotMonotonic)
	}
	clampNonIncreasing(mk)

	if !strictlyIncreasing(bk) {
		return nil, fmt.Errorf("bhcurve: flux densities not increasing with field strength: %w", errs.ErrNotMonotonic)
	}

	fromField, err := buildStabilizedSpline(AxisField, hk, mk)
	if err != nil {
		return nil, err
	}
	fromFlux, err := buildStabilizedSpline(AxisFlux, bk, mk)
	if err != nil {
		return nil, err
	}

	return &Curve{
		axis:       AxisField,
		fillFactor: cfg.fillFactor,
		fromField:  fromField,
		fromFlux:   fromFlux,
		floor:      math.Min(1, mk[len(mk)-1]),
	}, nil
}

// buildFromPermeability runs the pipeline for direct µr samples and produces
// a curve carrying the native spline only.
func buildFromPermeability(axis Axis, x, mu []float64, cfg *config) (*Curve, error) {
	x, mu, err := prepareSamples(x, mu)
	if err != nil {
		return nil, err
	}
	for i, m := range mu {
		if m <= 0 {
			return nil, fmt.Errorf("bhcurve: permeability %g at sample %d: %w", m, i, errs.ErrNegativeMeasurement)
		}
	}

	mk := make([]float64, len(mu))
	for i, m := range mu {
		mk[i] = cfg.fillFactor*m + (1 - cfg.fillFactor)
	}

	knee := kneeIndex(mk)
	x, mk = x[knee:], mk[knee:]
	if len(x) < 2 {
		return nil, fmt.Errorf("bhcurve: permeability still rising at the last measurement: %w", errs.ErrNotMonotonic)
	}
	clampNonIncreasing(mk)

	native, err := buildStabilizedSpline(axis, x, mk)
	if err != nil {
		return nil, err
	}

	c := &Curve{
		axis:       axis,
		fillFactor: cfg.fillFactor,
		floor:      math.Min(1, mk[len(mk)-1]),
	}
	if axis == AxisField {
		c.fromField = native
	} else {
		c.fromFlux = native
	}

	return c, nil
}

// buildStabilizedSpline fits the monotone permeability spline with the
// stabilized extrapolation slopes: flat on the left, and on the right a
// linear decay toward µr=1 at the vacuum asymptote when the tail is still
// above it, flat otherwise.
func buildStabilizedSpline(axis Axis, xs, mus []float64) (*spline.Spline, error) {
	last := len(xs) - 1
	muLast := mus[last]

	rightSlope := 0.0
	if muLast > 1 {
		asym := asymptoteFlux
		if axis == AxisField {
			asym = asymptoteFlux / quantity.VacuumPermeability
		}
		if xs[last] < asym {
			rightSlope = (1 - muLast) / (asym - xs[last])
		}
	}

	return spline.New(xs, mus,
		spline.WithLeftSlope(0),
		spline.WithRightSlope(rightSlope),
		spline.WithMonotoneClamp(),
	)
}

// prepareSamples validates, sorts and deduplicates paired samples.
func prepareSamples(x, y []float64) ([]float64, []float64, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("bhcurve: %d abscissae vs %d ordinates: %w", len(x), len(y), errs.ErrLengthMismatch)
	}
	if len(x) < 2 {
		return nil, nil, fmt.Errorf("bhcurve: %d points: %w", len(x), errs.ErrTooFewPoints)
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return nil, nil, fmt.Errorf("bhcurve: point %d (%g, %g): %w", i, x[i], y[i], errs.ErrNonFiniteValue)
		}
		if x[i] < 0 || y[i] < 0 {
			return nil, nil, fmt.Errorf("bhcurve: point %d (%g, %g): %w", i, x[i], y[i], errs.ErrNegativeMeasurement)
		}
	}

	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for _, i := range idx {
		if n := len(xs); n > 0 && sameAbscissa(xs[n-1], x[i]) {
			if !sameOrdinate(ys[n-1], y[i]) {
				return nil, nil, fmt.Errorf("bhcurve: duplicate abscissa %g with values %g and %g: %w",
					x[i], ys[n-1], y[i], errs.ErrConflictingPoint)
			}

			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return nil, nil, fmt.Errorf("bhcurve: %d distinct points: %w", len(xs), errs.ErrTooFewPoints)
	}

	return xs, ys, nil
}

func sameAbscissa(a, b float64) bool {
	return math.Abs(a-b) <= dedupRelTol*math.Max(math.Abs(a), math.Abs(b))
}

func sameOrdinate(a, b float64) bool {
	if a == b {
		return true
	}

	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

// kneeIndex locates the permeability maximum. Points left of it belong to
// the rising initial branch; keeping them would make the fitted curve
// non-monotone.
func kneeIndex(mu []float64) int {
	return floats.MaxIdx(mu)
}

// clampNonIncreasing sweeps right to left and lifts every knot below its
// right neighbor, removing measurement noise that reverses the descent.
func clampNonIncreasing(mu []float64) {
	for i := len(mu) - 2; i >= 0; i-- {
		if mu[i] < mu[i+1] {
			mu[i] = mu[i+1]
		}
	}
}

func strictlyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return false
		}
	}

	return true
}

// resampleTable thins a dense raw B-H table on a uniform field grid, keeping
// a grid point only when the permeability changed by more than tol relative
// to the previously kept point. The interpolant over the raw table uses the
// vacuum permeability as boundary slope, matching the physical behavior of
// B(H) outside the measured range.
func resampleTable(h, b []float64, tol float64) ([]float64, []float64, error) {
	raw, err := spline.New(h, b,
		spline.WithLeftSlope(quantity.VacuumPermeability),
		spline.WithRightSlope(quantity.VacuumPermeability),
		spline.WithMonotoneClamp(),
	)
	if err != nil {
		return nil, nil, err
	}

	maxH := h[len(h)-1]
	hs := []float64{0, defaultResampleStep}
	bs := []float64{0, raw.Eval(defaultResampleStep)}
	for x := 2 * defaultResampleStep; x < maxH; x += defaultResampleStep {
		n := len(hs)
		muPrev := bs[n-1] / hs[n-1]
		bx := raw.Eval(x)
		if muPrev <= 0 || math.Abs(muPrev-bx/x)/muPrev > tol {
			hs = append(hs, x)
			bs = append(bs, bx)
		}
	}
	// The saturated tail changes slowly and would otherwise be dropped
	// entirely; the last raw point anchors it.
	if hs[len(hs)-1] < maxH {
		hs = append(hs, maxH)
		bs = append(bs, b[len(b)-1])
	}

	return hs, bs, nil
}
