package ironloss

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/arloliu/softmag/errs"
	"github.com/arloliu/softmag/quantity"
)

const (
	// ReferenceFrequency is the normalization frequency of the loss law, in
	// hertz. Coefficients are specific losses at this frequency and at
	// ReferenceFluxDensity, matching the convention used in loss data sheets.
	ReferenceFrequency = 50.0
	// ReferenceFluxDensity is the normalization flux density amplitude of
	// the loss law, in tesla.
	ReferenceFluxDensity = 1.5
)

// Model is an immutable two-coefficient iron loss law for sinusoidal flux:
//
//	p = kh·(f/50)·(B/1.5)² + kec·((f/50)·(B/1.5))²
//
// kh scales the static hysteresis share and kec the dynamic eddy-current
// share. Both are specific losses at the reference point (50 Hz, 1.5 T) and
// are non-negative, so predicted loss is non-negative for any physical
// input.
//
// A Model is safe for concurrent evaluation.
type Model struct {
	kh       float64 // hysteresis coefficient, W/kg at the reference point
	kec      float64 // eddy-current coefficient, W/kg at the reference point
	rsquared float64
	rmse     float64
}

// New creates a loss model from known coefficients, e.g. taken from a
// material data sheet. Fit diagnostics are zero; use Fit to derive
// coefficients from measurements.
func New(kh, kec quantity.SpecificLoss) (*Model, error) {
	return Restore(kh.WattsPerKilogram(), kec.WattsPerKilogram(), 0, 0)
}

// Restore rebuilds a model from previously exported state, without
// refitting.
func Restore(kh, kec, rsquared, rmse float64) (*Model, error) {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"hysteresis coefficient", kh},
		{"eddy-current coefficient", kec},
	} {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return nil, fmt.Errorf("ironloss: %s %g: %w", c.name, c.value, errs.ErrNonFiniteValue)
		}
		if c.value < 0 {
			return nil, fmt.Errorf("ironloss: %s %g: %w", c.name, c.value, errs.ErrNegativeCoefficients)
		}
	}

	return &Model{kh: kh, kec: kec, rsquared: rsquared, rmse: rmse}, nil
}

// HysteresisCoefficient returns kh as a specific loss at the reference
// point.
func (m *Model) HysteresisCoefficient() quantity.SpecificLoss {
	return quantity.WattsPerKilogram(m.kh)
}

// EddyCurrentCoefficient returns kec as a specific loss at the reference
// point.
func (m *Model) EddyCurrentCoefficient() quantity.SpecificLoss {
	return quantity.WattsPerKilogram(m.kec)
}

// RSquared returns the coefficient of determination of the fit the model
// came from, or zero for models built from known coefficients.
func (m *Model) RSquared() float64 { return m.rsquared }

// RMSE returns the root-mean-square residual of the fit in W/kg, or zero
// for models built from known coefficients.
func (m *Model) RMSE() float64 { return m.rmse }

// Loss predicts the specific loss at the given frequency and flux density
// amplitude. It never fails for finite non-negative input; negative or
// non-finite input yields a range error.
func (m *Model) Loss(f quantity.Frequency, b quantity.FluxDensity) (quantity.SpecificLoss, error) {
	fn := f.Hertz() / ReferenceFrequency
	bn := b.Teslas() / ReferenceFluxDensity

	for _, c := range []struct {
		name  string
		value float64
	}{
		{"frequency", f.Hertz()},
		{"flux density", b.Teslas()},
	} {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return 0, fmt.Errorf("ironloss: %s %g: %w", c.name, c.value, errs.ErrNonFiniteInput)
		}
		if c.value < 0 {
			return 0, fmt.Errorf("ironloss: %s %g: %w", c.name, c.value, errs.ErrNegativeInput)
		}
	}

	fb := fn * bn

	return quantity.WattsPerKilogram(m.kh*fn*bn*bn + m.kec*fb*fb), nil
}

type modelJSON struct {
	Kh       float64 `json:"kh"`
	Kec      float64 `json:"kec"`
	RSquared float64 `json:"r_squared"`
	RMSE     float64 `json:"rmse"`
}

// MarshalJSON exports the model coefficients and fit diagnostics. The output
// round-trips through UnmarshalJSON without refitting.
func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(modelJSON{Kh: m.kh, Kec: m.kec, RSquared: m.rsquared, RMSE: m.rmse})
}

// UnmarshalJSON restores a model exported by MarshalJSON.
func (m *Model) UnmarshalJSON(data []byte) error {
	var mj modelJSON
	if err := json.Unmarshal(data, &mj); err != nil {
		return fmt.Errorf("ironloss: %w: %s", errs.ErrInvalidRecord, err)
	}

	restored, err := Restore(mj.Kh, mj.Kec, mj.RSquared, mj.RMSE)
	if err != nil {
		return err
	}
	*m = *restored

	return nil
}
