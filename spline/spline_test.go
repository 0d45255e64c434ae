package spline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/softmag/errs"
)

func TestNewTwoKnotsIsLinear(t *testing.T) {
	s, err := New([]float64{0, 2}, []float64{1, 5})
	require.NoError(t, err)

	require.InDelta(t, 1.0, s.Eval(0), 1e-15)
	require.InDelta(t, 3.0, s.Eval(1), 1e-12)
	require.InDelta(t, 5.0, s.Eval(2), 1e-15)
	require.InDelta(t, 2.0, s.Derivative(1), 1e-12)

	// Default extrapolation continues the line.
	require.InDelta(t, 7.0, s.Eval(3), 1e-12)
	require.InDelta(t, -1.0, s.Eval(-1), 1e-12)
}

func TestNewInterpolatesKnots(t *testing.T) {
	xs := []float64{0, 1, 2, 3.5, 5, 8}
	ys := []float64{1, 0.9, 0.5, 0.3, 0.05, 0.01}

	s, err := New(xs, ys)
	require.NoError(t, err)

	for i := range xs {
		require.InDelta(t, ys[i], s.Eval(xs[i]), 1e-12, "knot %d", i)
	}
}

func TestMonotoneClampKeepsKnots(t *testing.T) {
	xs := []float64{0, 1, 2, 5}
	ys := []float64{1, 0.9, 0.5, 0.05}

	s, err := New(xs, ys, WithMonotoneClamp())
	require.NoError(t, err)

	// Clamping adjusts slopes only; interpolation stays exact.
	for i := range xs {
		require.InDelta(t, ys[i], s.Eval(xs[i]), 1e-12, "knot %d", i)
	}
}

func TestMonotoneClampNonIncreasing(t *testing.T) {
	xs := []float64{0, 1, 2, 5, 10, 30}
	ys := []float64{1000, 950, 400, 80, 10, 1.2}

	s, err := New(xs, ys, WithMonotoneClamp(), WithLeftSlope(0), WithRightSlope(-0.001))
	require.NoError(t, err)

	prev := math.Inf(1)
	for x := -5.0; x <= 300; x += 0.05 {
		v := s.Eval(x)
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "x=%g", x)
		require.LessOrEqual(t, v, prev+1e-9, "x=%g", x)
		prev = v
	}
}

func TestMonotoneClampIncreasingData(t *testing.T) {
	// The clamp handles increasing data as well; a raw B-H table is one.
	xs := []float64{0, 10, 50, 200, 1000}
	ys := []float64{0, 0.4, 1.1, 1.5, 1.7}

	s, err := New(xs, ys, WithMonotoneClamp())
	require.NoError(t, err)

	prev := math.Inf(-1)
	for x := 0.0; x <= 1000; x += 0.5 {
		v := s.Eval(x)
		require.GreaterOrEqual(t, v, prev-1e-9, "x=%g", x)
		prev = v
	}
}

func TestBoundarySlopes(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{5, 4, 2}

	s, err := New(xs, ys, WithLeftSlope(0), WithRightSlope(-0.5))
	require.NoError(t, err)

	left, right := s.BoundarySlopes()
	require.Equal(t, 0.0, left)
	require.Equal(t, -0.5, right)

	require.InDelta(t, 5.0, s.Eval(-10), 1e-15)
	require.InDelta(t, 2.0-0.5*8, s.Eval(10), 1e-12)
	require.Equal(t, 0.0, s.Derivative(-1))
	require.Equal(t, -0.5, s.Derivative(3))
}

func TestRestoreRoundTrip(t *testing.T) {
	xs := []float64{0, 1, 2, 5, 9}
	ys := []float64{1, 0.9, 0.5, 0.05, 0.02}

	s, err := New(xs, ys, WithMonotoneClamp(), WithRightSlope(-0.001))
	require.NoError(t, err)

	left, right := s.BoundarySlopes()
	r, err := Restore(s.Knots(), s.Values(), s.Slopes(), left, right)
	require.NoError(t, err)

	for x := -2.0; x <= 20; x += 0.173 {
		require.Equal(t, s.Eval(x), r.Eval(x), "x=%g", x)
		require.Equal(t, s.Derivative(x), r.Derivative(x), "x=%g", x)
	}
}

func TestNewInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		want error
	}{
		{"length mismatch", []float64{0, 1}, []float64{1}, errs.ErrLengthMismatch},
		{"single knot", []float64{0}, []float64{1}, errs.ErrTooFewPoints},
		{"empty", nil, nil, errs.ErrTooFewPoints},
		{"nan value", []float64{0, 1}, []float64{1, math.NaN()}, errs.ErrNonFiniteValue},
		{"inf position", []float64{0, math.Inf(1)}, []float64{1, 2}, errs.ErrNonFiniteValue},
		{"unsorted", []float64{1, 0}, []float64{1, 2}, errs.ErrUnsortedKnots},
		{"duplicate x", []float64{1, 1}, []float64{1, 2}, errs.ErrUnsortedKnots},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.xs, tt.ys)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, errs.ErrInvalidData)
		})
	}
}

func TestRestoreInvalidInput(t *testing.T) {
	_, err := Restore([]float64{0, 1}, []float64{1, 2}, []float64{1}, 0, 0)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	_, err = Restore([]float64{1, 0}, []float64{1, 2}, []float64{1, 1}, 0, 0)
	require.ErrorIs(t, err, errs.ErrUnsortedKnots)
}

func BenchmarkEval(b *testing.B) {
	xs := make([]float64, 300)
	ys := make([]float64, 300)
	for i := range xs {
		xs[i] = float64(i) * 10
		ys[i] = 5000 / (1 + float64(i))
	}
	s, err := New(xs, ys, WithMonotoneClamp())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Eval(float64(i%3200) + 0.5)
	}
}
