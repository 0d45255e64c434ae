package material

import (
	"encoding/json"
	"fmt"

	"github.com/arloliu/softmag/errs"
	"github.com/arloliu/softmag/internal/options"
	"github.com/arloliu/softmag/quantity"
)

// Material bundles the models and scalar properties of one material under a
// name. It is immutable after construction and safe for concurrent use.
//
// A Material created by New alone behaves like vacuum: µr = 1 everywhere,
// no losses, zero density, resistivity and thermal conductivity.
type Material struct {
	name                string
	permeability        Permeability
	losses              Losses
	density             quantity.Density
	resistivity         quantity.Resistivity
	thermalConductivity quantity.ThermalConductivity
}

// Option configures material construction.
type Option = options.Option[*Material]

// WithPermeability sets the relative permeability model.
func WithPermeability(p Permeability) Option {
	return options.NoError(func(m *Material) {
		m.permeability = p
	})
}

// WithLosses sets the iron loss model.
func WithLosses(l Losses) Option {
	return options.NoError(func(m *Material) {
		m.losses = l
	})
}

// WithDensity sets the mass density.
func WithDensity(d quantity.Density) Option {
	return options.NoError(func(m *Material) {
		m.density = d
	})
}

// WithResistivity sets the electrical resistivity.
func WithResistivity(r quantity.Resistivity) Option {
	return options.NoError(func(m *Material) {
		m.resistivity = r
	})
}

// WithThermalConductivity sets the thermal conductivity.
func WithThermalConductivity(k quantity.ThermalConductivity) Option {
	return options.NoError(func(m *Material) {
		m.thermalConductivity = k
	})
}

// New creates a material with the given name and vacuum-like defaults,
// overridden by the options.
func New(name string, opts ...Option) (*Material, error) {
	if name == "" {
		return nil, fmt.Errorf("material: empty name: %w", errs.ErrInvalidRecord)
	}

	m := &Material{name: name}
	if err := options.Apply(m, opts...); err != nil {
		return nil, err
	}

	return m, nil
}

// Name returns the material name.
func (m *Material) Name() string { return m.name }

// Permeability returns the relative permeability model.
func (m *Material) Permeability() Permeability { return m.permeability }

// Losses returns the iron loss model.
func (m *Material) Losses() Losses { return m.losses }

// Density returns the mass density.
func (m *Material) Density() quantity.Density { return m.density }

// Resistivity returns the electrical resistivity.
func (m *Material) Resistivity() quantity.Resistivity { return m.resistivity }

// ThermalConductivity returns the thermal conductivity.
func (m *Material) ThermalConductivity() quantity.ThermalConductivity {
	return m.thermalConductivity
}

type materialJSON struct {
	Name                string       `json:"name"`
	Permeability        Permeability `json:"permeability"`
	Losses              Losses       `json:"losses"`
	Density             float64      `json:"density"`
	Resistivity         float64      `json:"resistivity"`
	ThermalConductivity float64      `json:"thermal_conductivity"`
}

// MarshalJSON encodes the material with all scalar properties in SI
// magnitudes. The output round-trips through UnmarshalJSON.
func (m *Material) MarshalJSON() ([]byte, error) {
	return json.Marshal(materialJSON{
		Name:                m.name,
		Permeability:        m.permeability,
		Losses:              m.losses,
		Density:             m.density.KilogramsPerCubicMeter(),
		Resistivity:         m.resistivity.OhmMeters(),
		ThermalConductivity: m.thermalConductivity.WattsPerMeterKelvin(),
	})
}

// UnmarshalJSON restores a material encoded by MarshalJSON.
func (m *Material) UnmarshalJSON(data []byte) error {
	var mj materialJSON
	if err := json.Unmarshal(data, &mj); err != nil {
		return fmt.Errorf("material: %w: %s", errs.ErrInvalidRecord, err)
	}
	if mj.Name == "" {
		return fmt.Errorf("material: empty name: %w", errs.ErrInvalidRecord)
	}

	*m = Material{
		name:                mj.Name,
		permeability:        mj.Permeability,
		losses:              mj.Losses,
		density:             quantity.KilogramsPerCubicMeter(mj.Density),
		resistivity:         quantity.OhmMeters(mj.Resistivity),
		thermalConductivity: quantity.WattsPerMeterKelvin(mj.ThermalConductivity),
	}

	return nil
}
