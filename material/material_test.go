package material

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/softmag/bhcurve"
	"github.com/arloliu/softmag/errs"
	"github.com/arloliu/softmag/ironloss"
	"github.com/arloliu/softmag/quantity"
)

func testCurve(t *testing.T) *bhcurve.Curve {
	t.Helper()

	c, err := bhcurve.FromPermeabilityAtField(
		[]quantity.FieldStrength{
			quantity.AmperesPerMeter(100),
			quantity.AmperesPerMeter(1000),
			quantity.AmperesPerMeter(10000),
		},
		[]float64{8000, 3000, 200},
	)
	require.NoError(t, err)

	return c
}

func testModel(t *testing.T) *ironloss.Model {
	t.Helper()

	m, err := ironloss.New(quantity.WattsPerKilogram(1.5), quantity.WattsPerKilogram(0.9))
	require.NoError(t, err)

	return m
}

func TestNewDefaultsToVacuum(t *testing.T) {
	m, err := New("air")
	require.NoError(t, err)
	require.Equal(t, "air", m.Name())

	mu, err := m.Permeability().AtField(quantity.AmperesPerMeter(500))
	require.NoError(t, err)
	require.InDelta(t, 1.0, mu, 1e-15)

	mu, err = m.Permeability().AtFlux(quantity.Teslas(1.2))
	require.NoError(t, err)
	require.InDelta(t, 1.0, mu, 1e-15)

	p, err := m.Losses().At(quantity.Hertz(50), quantity.Teslas(1.5))
	require.NoError(t, err)
	require.Zero(t, p.WattsPerKilogram())

	require.Zero(t, m.Density().KilogramsPerCubicMeter())

	_, err = New("")
	require.ErrorIs(t, err, errs.ErrInvalidRecord)
}

func TestMaterialWithModels(t *testing.T) {
	curve := testCurve(t)
	model := testModel(t)

	m, err := New("M400-50A",
		WithPermeability(CurvePermeability(curve)),
		WithLosses(JordanLosses(model)),
		WithDensity(quantity.GramsPerCubicCentimeter(7.7)),
		WithResistivity(quantity.MicroohmCentimeters(42)),
		WithThermalConductivity(quantity.WattsPerMeterKelvin(28)),
	)
	require.NoError(t, err)

	want, err := curve.PermeabilityAtField(quantity.AmperesPerMeter(500))
	require.NoError(t, err)
	got, err := m.Permeability().AtField(quantity.AmperesPerMeter(500))
	require.NoError(t, err)
	require.Equal(t, want, got)

	wantLoss, err := model.Loss(quantity.Hertz(50), quantity.Teslas(1.0))
	require.NoError(t, err)
	gotLoss, err := m.Losses().At(quantity.Hertz(50), quantity.Teslas(1.0))
	require.NoError(t, err)
	require.Equal(t, wantLoss, gotLoss)

	require.InDelta(t, 7700, m.Density().KilogramsPerCubicMeter(), 1e-9)
	require.InDelta(t, 4.2e-7, m.Resistivity().OhmMeters(), 1e-15)
	require.InDelta(t, 28, m.ThermalConductivity().WattsPerMeterKelvin(), 1e-15)
}

func TestConstantModelsValidateInput(t *testing.T) {
	p, err := ConstantPermeability(1200)
	require.NoError(t, err)

	_, err = p.AtField(quantity.AmperesPerMeter(-1))
	require.ErrorIs(t, err, errs.ErrNegativeInput)

	l, err := ConstantLosses(quantity.WattsPerKilogram(2.5))
	require.NoError(t, err)

	_, err = l.At(quantity.Hertz(math.NaN()), quantity.Teslas(1))
	require.ErrorIs(t, err, errs.ErrNonFiniteInput)

	got, err := l.At(quantity.Hertz(50), quantity.Teslas(1))
	require.NoError(t, err)
	require.Equal(t, quantity.WattsPerKilogram(2.5), got)

	_, err = ConstantPermeability(-5)
	require.ErrorIs(t, err, errs.ErrNegativeMeasurement)

	_, err = ConstantLosses(quantity.WattsPerKilogram(math.Inf(1)))
	require.ErrorIs(t, err, errs.ErrNonFiniteValue)
}

func TestMaterialJSONRoundTrip(t *testing.T) {
	orig, err := New("M400-50A",
		WithPermeability(CurvePermeability(testCurve(t))),
		WithLosses(JordanLosses(testModel(t))),
		WithDensity(quantity.KilogramsPerCubicMeter(7700)),
	)
	require.NoError(t, err)

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var restored Material
	require.NoError(t, json.Unmarshal(data, &restored))
	require.Equal(t, orig.Name(), restored.Name())
	require.True(t, restored.Permeability().IsCurve())
	require.True(t, restored.Losses().IsJordan())
	require.Equal(t, orig.Density(), restored.Density())

	for _, h := range []float64{0, 200, 5000, 1e6} {
		want, err := orig.Permeability().AtField(quantity.AmperesPerMeter(h))
		require.NoError(t, err)
		got, err := restored.Permeability().AtField(quantity.AmperesPerMeter(h))
		require.NoError(t, err)
		require.Equal(t, want, got, "H=%g A/m", h)
	}

	want, err := orig.Losses().At(quantity.Hertz(100), quantity.Teslas(1.2))
	require.NoError(t, err)
	got, err := restored.Losses().At(quantity.Hertz(100), quantity.Teslas(1.2))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestMaterialJSONConstantVariants(t *testing.T) {
	perm, err := ConstantPermeability(4000)
	require.NoError(t, err)
	loss, err := ConstantLosses(quantity.WattsPerKilogram(1.1))
	require.NoError(t, err)

	orig, err := New("linear-steel", WithPermeability(perm), WithLosses(loss))
	require.NoError(t, err)

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var restored Material
	require.NoError(t, json.Unmarshal(data, &restored))
	require.False(t, restored.Permeability().IsCurve())
	require.False(t, restored.Losses().IsJordan())

	mu, err := restored.Permeability().AtFlux(quantity.Teslas(1.0))
	require.NoError(t, err)
	require.InDelta(t, 4000, mu, 1e-15)
}

func TestMaterialJSONInvalid(t *testing.T) {
	var m Material
	require.ErrorIs(t, json.Unmarshal([]byte(`{"name":""}`), &m), errs.ErrInvalidRecord)
	require.ErrorIs(t, json.Unmarshal([]byte(`{"name":"x","permeability":{"kind":"bogus"}}`), &m), errs.ErrInvalidRecord)
	require.ErrorIs(t, json.Unmarshal([]byte(`{"name":"x","losses":{"kind":"jordan"}}`), &m), errs.ErrInvalidRecord)
}
