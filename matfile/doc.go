// Package matfile packs material libraries into a compact binary container
// for distribution alongside solver models.
//
// A material file holds any number of named materials. The Encoder collects
// materials and produces the complete file as one byte slice; the Decoder
// validates a file once and then serves O(1) name lookups. The package does
// no I/O itself, callers own file handles and transports.
//
// The container layout is defined by the section package: a fixed 24-byte
// header, a fixed-size index keyed by xxHash64 of the material name, a
// payload of per-material JSON records (optionally compressed as a whole,
// see the compress package), and a trailing whole-file xxHash64 checksum.
// Records keep the JSON encoding of the material package, so the binary
// container adds integrity and fast lookup without a second record schema.
//
//	data, _ := encoder.Finish()
//	decoder, _ := matfile.NewDecoder(data)
//	m, _ := decoder.Material("M400-50A")
package matfile
