package compress

// ZstdCompressor compresses payloads with Zstandard, the best-ratio codec.
// Suited to archival material libraries that are written once and shipped.
//
// Two implementations exist behind build tags: the default pure-Go encoder
// from klauspost/compress, and a cgo binding to libzstd (build tag zstdcgo)
// for workloads where encode throughput matters.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
