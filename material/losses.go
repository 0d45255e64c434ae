package material

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/arloliu/softmag/errs"
	"github.com/arloliu/softmag/ironloss"
	"github.com/arloliu/softmag/quantity"
)

type lossesKind uint8

const (
	lossesConstant lossesKind = iota
	lossesJordan
)

// Losses is a material's iron loss model: either a constant specific loss
// or a fitted Jordan model. The zero value is lossless.
type Losses struct {
	kind     lossesKind
	constant quantity.SpecificLoss
	model    *ironloss.Model
}

// ConstantLosses returns a frequency- and flux-independent loss model.
func ConstantLosses(p quantity.SpecificLoss) (Losses, error) {
	v := p.WattsPerKilogram()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Losses{}, fmt.Errorf("material: specific loss %g: %w", v, errs.ErrNonFiniteValue)
	}
	if v < 0 {
		return Losses{}, fmt.Errorf("material: specific loss %g: %w", v, errs.ErrNegativeMeasurement)
	}

	return Losses{kind: lossesConstant, constant: p}, nil
}

// JordanLosses returns a loss model backed by a fitted Jordan model.
func JordanLosses(m *ironloss.Model) Losses {
	return Losses{kind: lossesJordan, model: m}
}

// IsJordan reports whether the model is frequency- and flux-dependent.
func (l Losses) IsJordan() bool { return l.kind == lossesJordan }

// Model returns the backing Jordan model, or nil for constant models.
func (l Losses) Model() *ironloss.Model { return l.model }

// At evaluates the specific loss at a frequency and flux density amplitude.
// Constant models apply the same input validation as Jordan models.
func (l Losses) At(f quantity.Frequency, b quantity.FluxDensity) (quantity.SpecificLoss, error) {
	if l.kind == lossesJordan {
		return l.model.Loss(f, b)
	}

	if err := checkScalar("frequency", f.Hertz()); err != nil {
		return 0, err
	}
	if err := checkScalar("flux density", b.Teslas()); err != nil {
		return 0, err
	}

	return l.constant, nil
}

type lossesJSON struct {
	Kind  string          `json:"kind"`
	Value float64         `json:"value,omitempty"`
	Model *ironloss.Model `json:"model,omitempty"`
}

// MarshalJSON encodes the model as a tagged record.
func (l Losses) MarshalJSON() ([]byte, error) {
	if l.kind == lossesJordan {
		return json.Marshal(lossesJSON{Kind: "jordan", Model: l.model})
	}

	return json.Marshal(lossesJSON{Kind: "constant", Value: l.constant.WattsPerKilogram()})
}

// UnmarshalJSON decodes a tagged record produced by MarshalJSON.
func (l *Losses) UnmarshalJSON(data []byte) error {
	var lj lossesJSON
	if err := json.Unmarshal(data, &lj); err != nil {
		return fmt.Errorf("material: %w: %s", errs.ErrInvalidRecord, err)
	}

	switch lj.Kind {
	case "constant":
		restored, err := ConstantLosses(quantity.WattsPerKilogram(lj.Value))
		if err != nil {
			return err
		}
		*l = restored
	case "jordan":
		if lj.Model == nil {
			return fmt.Errorf("material: jordan losses without model: %w", errs.ErrInvalidRecord)
		}
		*l = JordanLosses(lj.Model)
	default:
		return fmt.Errorf("material: losses kind %q: %w", lj.Kind, errs.ErrInvalidRecord)
	}

	return nil
}
