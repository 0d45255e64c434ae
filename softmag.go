// Package softmag models the nonlinear magnetic behavior of soft-magnetic
// materials (e.g., electrical steel) for electromagnetic field and circuit
// solvers, particularly iterative nonlinear solvers for electric motor
// simulation.
//
// # Core Features
//
//   - Stabilized relative permeability curves fitted from measured B-H,
//     polarization or direct permeability tables, evaluable from both the
//     field strength and the flux density axis (bhcurve package)
//   - Jordan iron loss model fitted to measured loss triples by least
//     squares, with non-negative coefficients and fit diagnostics
//     (ironloss package)
//   - Material aggregate bundling permeability, losses and scalar
//     properties under a name (material package)
//   - Binary material library container with hash-based O(1) name lookup,
//     optional compression (None, Zstd, S2, LZ4) and whole-file checksum
//     (matfile package)
//   - Unit-carrying scalar types normalizing to SI magnitudes at the API
//     boundary (quantity package)
//
// # Basic Usage
//
// Fitting and evaluating a permeability curve:
//
//	import "github.com/arloliu/softmag"
//
//	curve, _ := softmag.CurveFromMagnetization(field, flux)
//	mu, _ := curve.PermeabilityAtField(quantity.AmperesPerMeter(350))
//
// Fitting a loss model and packing a material library:
//
//	model, _ := softmag.FitLosses(measurements)
//	steel, _ := softmag.NewMaterial("M400-50A",
//	    material.WithPermeability(material.CurvePermeability(curve)),
//	    material.WithLosses(material.JordanLosses(model)),
//	    material.WithDensity(quantity.GramsPerCubicCentimeter(7.7)),
//	)
//	data, _ := softmag.EncodeLibrary([]*material.Material{steel},
//	    matfile.WithCompression(format.CompressionZstd),
//	)
//
//	decoder, _ := softmag.DecodeLibrary(data)
//	steel, _ = decoder.Material("M400-50A")
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the domain
// packages, simplifying the most common use cases. For advanced usage and
// fine-grained control, use the bhcurve, ironloss, material and matfile
// packages directly.
package softmag

import (
	"github.com/arloliu/softmag/bhcurve"
	"github.com/arloliu/softmag/ironloss"
	"github.com/arloliu/softmag/material"
	"github.com/arloliu/softmag/matfile"
	"github.com/arloliu/softmag/quantity"
)

// CurveFromMagnetization builds a permeability curve from a measured (H, B)
// magnetization table. See bhcurve.FromMagnetization.
func CurveFromMagnetization(field []quantity.FieldStrength, flux []quantity.FluxDensity, opts ...bhcurve.Option) (*bhcurve.Curve, error) {
	return bhcurve.FromMagnetization(field, flux, opts...)
}

// CurveFromPolarization builds a permeability curve from a measured (H, J)
// polarization table. See bhcurve.FromPolarization.
func CurveFromPolarization(field []quantity.FieldStrength, polarization []quantity.FluxDensity, opts ...bhcurve.Option) (*bhcurve.Curve, error) {
	return bhcurve.FromPolarization(field, polarization, opts...)
}

// CurveFromPermeabilityAtField builds a permeability curve from direct
// relative permeability samples over the field strength. See
// bhcurve.FromPermeabilityAtField.
func CurveFromPermeabilityAtField(field []quantity.FieldStrength, mu []float64, opts ...bhcurve.Option) (*bhcurve.Curve, error) {
	return bhcurve.FromPermeabilityAtField(field, mu, opts...)
}

// CurveFromPermeabilityAtFlux builds a permeability curve from direct
// relative permeability samples over the flux density. See
// bhcurve.FromPermeabilityAtFlux.
func CurveFromPermeabilityAtFlux(flux []quantity.FluxDensity, mu []float64, opts ...bhcurve.Option) (*bhcurve.Curve, error) {
	return bhcurve.FromPermeabilityAtFlux(flux, mu, opts...)
}

// FitLosses fits the Jordan loss model to measured loss triples. See
// ironloss.Fit.
func FitLosses(measurements []ironloss.Measurement) (*ironloss.Model, error) {
	return ironloss.Fit(measurements)
}

// FitLossCharacteristics fits the Jordan loss model to per-frequency loss
// curves. See ironloss.FitCharacteristics.
func FitLossCharacteristics(chars []ironloss.Characteristic) (*ironloss.Model, error) {
	return ironloss.FitCharacteristics(chars)
}

// NewMaterial creates a material with vacuum-like defaults, overridden by
// the options. See material.New.
func NewMaterial(name string, opts ...material.Option) (*material.Material, error) {
	return material.New(name, opts...)
}

// EncodeLibrary packs materials into a binary material library file.
func EncodeLibrary(materials []*material.Material, opts ...matfile.Option) ([]byte, error) {
	encoder, err := matfile.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}
	for _, m := range materials {
		if err := encoder.Add(m); err != nil {
			return nil, err
		}
	}

	return encoder.Finish()
}

// DecodeLibrary validates a binary material library file and returns a
// decoder for name lookups.
func DecodeLibrary(data []byte) (*matfile.Decoder, error) {
	return matfile.NewDecoder(data)
}
