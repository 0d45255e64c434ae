package compress

// NoOpCompressor bypasses data without compression. Useful for small
// material libraries where codec overhead outweighs the size savings, and as
// a baseline in benchmarks.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor that bypasses
// data.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is, without processing or copying.
//
// The returned slice shares the same underlying memory as the input, so the
// input must not be modified while the result is in use.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without processing or copying.
//
// The returned slice shares the same underlying memory as the input, so the
// input must not be modified while the result is in use.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
