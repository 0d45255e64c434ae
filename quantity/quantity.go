package quantity

import "math"

// VacuumPermeability is the SI magnitude of µ0 in H/m (4π·1e-7).
//
// This is the pre-2019 ampere definition; the redefined constant deviates by
// less than the float64 representation error of the measurement uncertainty.
const VacuumPermeability = 4.0 * math.Pi * 1e-7

// oerstedToAmperePerMeter converts the CGS field strength unit: 1 Oe equals
// 1000/(4π) A/m.
const oerstedToAmperePerMeter = 1000.0 / (4.0 * math.Pi)

// FieldStrength is a magnetic field strength H, stored in A/m.
type FieldStrength float64

// AmperesPerMeter returns a FieldStrength from a value in A/m.
func AmperesPerMeter(v float64) FieldStrength { return FieldStrength(v) }

// KiloamperesPerMeter returns a FieldStrength from a value in kA/m.
func KiloamperesPerMeter(v float64) FieldStrength { return FieldStrength(v * 1e3) }

// Oersteds returns a FieldStrength from a value in Oe.
func Oersteds(v float64) FieldStrength { return FieldStrength(v * oerstedToAmperePerMeter) }

// AmperesPerMeter returns the SI magnitude in A/m.
func (h FieldStrength) AmperesPerMeter() float64 { return float64(h) }

// FluxDensity is a magnetic flux density B (or polarization J), stored in T.
type FluxDensity float64

// Teslas returns a FluxDensity from a value in T.
func Teslas(v float64) FluxDensity { return FluxDensity(v) }

// Milliteslas returns a FluxDensity from a value in mT.
func Milliteslas(v float64) FluxDensity { return FluxDensity(v * 1e-3) }

// Gauss returns a FluxDensity from a value in G.
func Gauss(v float64) FluxDensity { return FluxDensity(v * 1e-4) }

// Teslas returns the SI magnitude in T.
func (b FluxDensity) Teslas() float64 { return float64(b) }

// Frequency is stored in Hz.
type Frequency float64

// Hertz returns a Frequency from a value in Hz.
func Hertz(v float64) Frequency { return Frequency(v) }

// Kilohertz returns a Frequency from a value in kHz.
func Kilohertz(v float64) Frequency { return Frequency(v * 1e3) }

// Hertz returns the SI magnitude in Hz.
func (f Frequency) Hertz() float64 { return float64(f) }

// SpecificLoss is a mass-specific power loss, stored in W/kg.
type SpecificLoss float64

// WattsPerKilogram returns a SpecificLoss from a value in W/kg.
func WattsPerKilogram(v float64) SpecificLoss { return SpecificLoss(v) }

// MilliwattsPerKilogram returns a SpecificLoss from a value in mW/kg.
func MilliwattsPerKilogram(v float64) SpecificLoss { return SpecificLoss(v * 1e-3) }

// WattsPerKilogram returns the SI magnitude in W/kg.
func (p SpecificLoss) WattsPerKilogram() float64 { return float64(p) }

// Density is a mass density, stored in kg/m³.
type Density float64

// KilogramsPerCubicMeter returns a Density from a value in kg/m³.
func KilogramsPerCubicMeter(v float64) Density { return Density(v) }

// GramsPerCubicCentimeter returns a Density from a value in g/cm³.
func GramsPerCubicCentimeter(v float64) Density { return Density(v * 1e3) }

// KilogramsPerCubicMeter returns the SI magnitude in kg/m³.
func (d Density) KilogramsPerCubicMeter() float64 { return float64(d) }

// Resistivity is an electrical resistivity, stored in Ω·m.
type Resistivity float64

// OhmMeters returns a Resistivity from a value in Ω·m.
func OhmMeters(v float64) Resistivity { return Resistivity(v) }

// MicroohmCentimeters returns a Resistivity from a value in µΩ·cm.
func MicroohmCentimeters(v float64) Resistivity { return Resistivity(v * 1e-8) }

// OhmMeters returns the SI magnitude in Ω·m.
func (r Resistivity) OhmMeters() float64 { return float64(r) }

// ThermalConductivity is a thermal conductivity, stored in W/(m·K).
type ThermalConductivity float64

// WattsPerMeterKelvin returns a ThermalConductivity from a value in W/(m·K).
func WattsPerMeterKelvin(v float64) ThermalConductivity { return ThermalConductivity(v) }

// WattsPerMeterKelvin returns the SI magnitude in W/(m·K).
func (k ThermalConductivity) WattsPerMeterKelvin() float64 { return float64(k) }
