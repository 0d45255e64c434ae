// Package material aggregates the models and scalar properties of one
// material under a name.
//
// A Material bundles a relative permeability model (constant or fitted
// curve), an iron loss model (constant or fitted Jordan model), mass
// density, electrical resistivity and thermal conductivity. The tagged
// model types Permeability and Losses let the two forms be swapped without
// changing call sites, and their zero values behave like vacuum and
// lossless material, so a bare New(name) is already usable.
//
// Materials marshal to JSON for interchange and are packed into binary
// libraries by the matfile package.
package material
