// Package compress provides compression codecs for material file payloads.
//
// Compression is applied to the concatenated material records of a file as
// a whole, selected by a format.CompressionType flag in the file header:
//
//   - None: no compression (fastest, largest)
//   - Zstd: best compression ratio, moderate speed
//   - S2: balanced compression and speed
//   - LZ4: fast decompression, moderate compression
//
// Material records are float64-heavy JSON, which typically compresses 3-5x
// with Zstd and 2-3x with S2 or LZ4. For libraries of a handful of
// materials the None codec is perfectly reasonable; Zstd pays off for large
// shipped libraries.
//
// All codecs implement the Codec interface and are safe for concurrent use.
// The Zstd codec has a cgo variant behind the zstdcgo build tag; the
// default is the pure-Go implementation.
package compress
