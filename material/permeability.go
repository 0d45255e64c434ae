package material

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/arloliu/softmag/bhcurve"
	"github.com/arloliu/softmag/errs"
	"github.com/arloliu/softmag/quantity"
)

type permeabilityKind uint8

const (
	permeabilityConstant permeabilityKind = iota
	permeabilityCurve
)

// Permeability is a material's relative permeability model: either a
// constant value or a fitted curve. The zero value behaves like vacuum
// (µr = 1).
type Permeability struct {
	kind     permeabilityKind
	constant float64
	curve    *bhcurve.Curve
}

// ConstantPermeability returns a field-independent permeability model, used
// for air gaps, magnets and linear approximations.
func ConstantPermeability(mu float64) (Permeability, error) {
	if math.IsNaN(mu) || math.IsInf(mu, 0) {
		return Permeability{}, fmt.Errorf("material: permeability %g: %w", mu, errs.ErrNonFiniteValue)
	}
	if mu <= 0 {
		return Permeability{}, fmt.Errorf("material: permeability %g: %w", mu, errs.ErrNegativeMeasurement)
	}

	return Permeability{kind: permeabilityConstant, constant: mu}, nil
}

// CurvePermeability returns a field-dependent permeability model backed by
// a fitted curve.
func CurvePermeability(c *bhcurve.Curve) Permeability {
	return Permeability{kind: permeabilityCurve, curve: c}
}

// IsCurve reports whether the model is field-dependent.
func (p Permeability) IsCurve() bool { return p.kind == permeabilityCurve }

// Curve returns the backing curve, or nil for constant models.
func (p Permeability) Curve() *bhcurve.Curve { return p.curve }

// AtField evaluates the relative permeability at a field strength. Constant
// models apply the same input validation as curves, so swapping models does
// not change the error contract.
func (p Permeability) AtField(h quantity.FieldStrength) (float64, error) {
	if p.kind == permeabilityCurve {
		return p.curve.PermeabilityAtField(h)
	}

	if err := checkScalar("field strength", h.AmperesPerMeter()); err != nil {
		return 0, err
	}

	return p.constantValue(), nil
}

// AtFlux evaluates the relative permeability at a flux density.
func (p Permeability) AtFlux(b quantity.FluxDensity) (float64, error) {
	if p.kind == permeabilityCurve {
		return p.curve.PermeabilityAtFlux(b)
	}

	if err := checkScalar("flux density", b.Teslas()); err != nil {
		return 0, err
	}

	return p.constantValue(), nil
}

// constantValue maps the zero value to vacuum.
func (p Permeability) constantValue() float64 {
	if p.constant == 0 {
		return 1
	}

	return p.constant
}

type permeabilityJSON struct {
	Kind  string         `json:"kind"`
	Value float64        `json:"value,omitempty"`
	Curve *bhcurve.Curve `json:"curve,omitempty"`
}

// MarshalJSON encodes the model as a tagged record.
func (p Permeability) MarshalJSON() ([]byte, error) {
	if p.kind == permeabilityCurve {
		return json.Marshal(permeabilityJSON{Kind: "curve", Curve: p.curve})
	}

	return json.Marshal(permeabilityJSON{Kind: "constant", Value: p.constantValue()})
}

// UnmarshalJSON decodes a tagged record produced by MarshalJSON.
func (p *Permeability) UnmarshalJSON(data []byte) error {
	var pj permeabilityJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return fmt.Errorf("material: %w: %s", errs.ErrInvalidRecord, err)
	}

	switch pj.Kind {
	case "constant":
		restored, err := ConstantPermeability(pj.Value)
		if err != nil {
			return err
		}
		*p = restored
	case "curve":
		if pj.Curve == nil {
			return fmt.Errorf("material: curve permeability without curve: %w", errs.ErrInvalidRecord)
		}
		*p = CurvePermeability(pj.Curve)
	default:
		return fmt.Errorf("material: permeability kind %q: %w", pj.Kind, errs.ErrInvalidRecord)
	}

	return nil
}

func checkScalar(what string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("material: %s %g: %w", what, v, errs.ErrNonFiniteInput)
	}
	if v < 0 {
		return fmt.Errorf("material: %s %g: %w", what, v, errs.ErrNegativeInput)
	}

	return nil
}
