package quantity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVacuumPermeability(t *testing.T) {
	require.InEpsilon(t, 1.2566370614e-6, VacuumPermeability, 1e-9)
}

func TestFieldStrengthConversions(t *testing.T) {
	require.InDelta(t, 350, AmperesPerMeter(350).AmperesPerMeter(), 1e-15)
	require.InDelta(t, 3500, KiloamperesPerMeter(3.5).AmperesPerMeter(), 1e-12)
	// 1 Oe = 1000/(4π) A/m ≈ 79.577 A/m
	require.InEpsilon(t, 79.5774715459, Oersteds(1).AmperesPerMeter(), 1e-9)
}

func TestFluxDensityConversions(t *testing.T) {
	require.InDelta(t, 1.5, Teslas(1.5).Teslas(), 1e-15)
	require.InDelta(t, 0.35, Milliteslas(350).Teslas(), 1e-15)
	require.InEpsilon(t, 1.0, Gauss(10000).Teslas(), 1e-12)
}

func TestFrequencyAndLossConversions(t *testing.T) {
	require.InDelta(t, 50, Hertz(50).Hertz(), 1e-15)
	require.InDelta(t, 2500, Kilohertz(2.5).Hertz(), 1e-12)
	require.InDelta(t, 1.7, WattsPerKilogram(1.7).WattsPerKilogram(), 1e-15)
	require.InDelta(t, 0.0017, MilliwattsPerKilogram(1.7).WattsPerKilogram(), 1e-15)
}

func TestMaterialPropertyConversions(t *testing.T) {
	require.InDelta(t, 7700, GramsPerCubicCentimeter(7.7).KilogramsPerCubicMeter(), 1e-9)
	require.InDelta(t, 4.2e-7, MicroohmCentimeters(42).OhmMeters(), 1e-20)
	require.InDelta(t, 28, WattsPerMeterKelvin(28).WattsPerMeterKelvin(), 1e-15)
}

func TestConversionsPreserveSpecialValues(t *testing.T) {
	// The quantity layer normalizes units but never filters values;
	// validation happens at the model boundaries.
	require.True(t, math.IsNaN(Teslas(math.NaN()).Teslas()))
	require.True(t, math.IsInf(AmperesPerMeter(math.Inf(1)).AmperesPerMeter(), 1))
}
