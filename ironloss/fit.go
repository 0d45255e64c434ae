package ironloss

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/softmag/errs"
	"github.com/arloliu/softmag/quantity"
)

// maxFitCondition is the condition number above which the two basis columns
// count as collinear and the fit is rejected as singular.
const maxFitCondition = 1e12

// Measurement is one loss measurement triple: the specific loss observed at
// a frequency and a sinusoidal flux density amplitude.
type Measurement struct {
	Frequency   quantity.Frequency
	FluxDensity quantity.FluxDensity
	Loss        quantity.SpecificLoss
}

// FluxLossPoint is one point of a fixed-frequency loss characteristic.
type FluxLossPoint struct {
	FluxDensity quantity.FluxDensity
	Loss        quantity.SpecificLoss
}

// Characteristic is a measured loss curve at a single frequency, the form
// loss data sheets usually tabulate.
type Characteristic struct {
	Frequency quantity.Frequency
	Points    []FluxLossPoint
}

// Fit derives the loss coefficients from measurements by ordinary least
// squares. The loss law is linear in (kh, kec), so the fit is a QR solve
// over the two basis columns
//
//	φh = (f/50)·(B/1.5)²   and   φe = ((f/50)·(B/1.5))².
//
// When the unconstrained solution drives a coefficient negative, which
// happens for data the quadratic law cannot represent, that coefficient is
// clamped to zero and the other refitted, keeping the model physical. The
// returned model carries R² and RMSE of the final coefficients against the
// measurements.
//
// Parameters:
//   - measurements: at least two triples with finite non-negative values
//
// Returns:
//   - *Model: the fitted model
//   - error: a data error for rejected input, or a fit error when the basis
//     columns are collinear
func Fit(measurements []Measurement) (*Model, error) {
	n := len(measurements)
	if n < 2 {
		return nil, fmt.Errorf("ironloss: %d measurements: %w", n, errs.ErrTooFewMeasurements)
	}

	phiH := make([]float64, n)
	phiE := make([]float64, n)
	loss := make([]float64, n)
	for i, meas := range measurements {
		f := meas.Frequency.Hertz()
		b := meas.FluxDensity.Teslas()
		p := meas.Loss.WattsPerKilogram()

		for _, v := range []float64{f, b, p} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("ironloss: measurement %d (%g Hz, %g T, %g W/kg): %w",
					i, f, b, p, errs.ErrNonFiniteValue)
			}
		}
		if f < 0 || b < 0 || p < 0 {
			return nil, fmt.Errorf("ironloss: measurement %d (%g Hz, %g T, %g W/kg): %w",
				i, f, b, p, errs.ErrNegativeMeasurement)
		}

		fn := f / ReferenceFrequency
		bn := b / ReferenceFluxDensity
		phiH[i] = fn * bn * bn
		phiE[i] = fn * bn * fn * bn
		loss[i] = p
	}

	kh, kec, err := solveCoefficients(phiH, phiE, loss)
	if err != nil {
		return nil, err
	}

	rsquared, rmse := fitDiagnostics(phiH, phiE, loss, kh, kec)

	return &Model{kh: kh, kec: kec, rsquared: rsquared, rmse: rmse}, nil
}

// FitCharacteristics flattens fixed-frequency loss curves into a single
// measurement set and fits it. At least two points overall are required.
func FitCharacteristics(chars []Characteristic) (*Model, error) {
	var measurements []Measurement
	for _, ch := range chars {
		for _, pt := range ch.Points {
			measurements = append(measurements, Measurement{
				Frequency:   ch.Frequency,
				FluxDensity: pt.FluxDensity,
				Loss:        pt.Loss,
			})
		}
	}

	return Fit(measurements)
}

// solveCoefficients runs the unconstrained QR solve and the non-negativity
// fallback.
func solveCoefficients(phiH, phiE, loss []float64) (kh, kec float64, err error) {
	n := len(loss)

	a := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		a.Set(i, 0, phiH[i])
		a.Set(i, 1, phiE[i])
	}
	rhs := mat.NewVecDense(n, loss)

	var qr mat.QR
	qr.Factorize(a)
	if qr.Cond() > maxFitCondition {
		return 0, 0, fmt.Errorf("ironloss: basis columns collinear: %w", errs.ErrSingularSystem)
	}

	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, rhs); err != nil {
		return 0, 0, fmt.Errorf("ironloss: %w: %s", errs.ErrSingularSystem, err)
	}
	kh, kec = coef.AtVec(0), coef.AtVec(1)

	switch {
	case kh >= 0 && kec >= 0:
		return kh, kec, nil
	case kh < 0 && kec < 0:
		return 0, 0, fmt.Errorf("ironloss: unconstrained fit gives kh=%g, kec=%g: %w",
			kh, kec, errs.ErrNegativeCoefficients)
	case kh < 0:
		kec, err = fitSingle(phiE, loss)

		return 0, kec, err
	default:
		kh, err = fitSingle(phiH, loss)

		return kh, 0, err
	}
}

// fitSingle solves the one-coefficient least-squares problem k·φ ≈ p. With
// non-negative basis and loss values, the solution is non-negative.
func fitSingle(phi, loss []float64) (float64, error) {
	var num, den float64
	for i := range phi {
		num += phi[i] * loss[i]
		den += phi[i] * phi[i]
	}
	if den == 0 {
		return 0, fmt.Errorf("ironloss: basis column all zero: %w", errs.ErrSingularSystem)
	}

	return num / den, nil
}

func fitDiagnostics(phiH, phiE, loss []float64, kh, kec float64) (rsquared, rmse float64) {
	n := len(loss)

	var mean float64
	for _, p := range loss {
		mean += p
	}
	mean /= float64(n)

	var ssRes, ssTot float64
	for i := range loss {
		res := loss[i] - (kh*phiH[i] + kec*phiE[i])
		ssRes += res * res
		dev := loss[i] - mean
		ssTot += dev * dev
	}

	rmse = math.Sqrt(ssRes / float64(n))
	if ssTot > 0 {
		rsquared = 1 - ssRes/ssTot
	} else if ssRes == 0 {
		rsquared = 1
	}

	return rsquared, rmse
}
