package section

import (
	"github.com/arloliu/softmag/errs"
)

// Header is the fixed-size section at the start of a material file.
type Header struct {
	// MaterialCount is the number of materials stored in the file.
	MaterialCount uint32 // byte offset 4-7
	// IndexOffset is the byte offset to the start of the index section.
	IndexOffset uint32 // byte offset 8-11
	// PayloadOffset is the byte offset to the start of the (possibly
	// compressed) payload section. It records the offset after the index
	// section.
	PayloadOffset uint32 // byte offset 12-15
	// PayloadSize is the byte length of the payload section as stored,
	// after compression.
	PayloadSize uint32 // byte offset 16-19
	// UncompressedSize is the byte length of the payload after
	// decompression, letting decoders preallocate exactly.
	UncompressedSize uint32 // byte offset 20-23

	// Flag is the packed field for the magic number, endianness and
	// compression.
	Flag Flag // byte offset 0-3
}

// NewHeader creates a Header with default flags. The material count,
// payload offsets and sizes are set when the encoder finishes.
func NewHeader() *Header {
	return &Header{
		Flag:        NewFlag(),
		IndexOffset: IndexOffsetOffset,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 24 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 24 bytes, or flag
//     validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The options word itself is always little-endian; it carries the
	// endianness of everything else.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.CompressionType = data[2]
	h.Flag.Reserved = data[3]

	engine := h.Flag.GetEndianEngine()
	h.MaterialCount = engine.Uint32(data[4:8])
	h.IndexOffset = engine.Uint32(data[8:12])
	h.PayloadOffset = engine.Uint32(data[12:16])
	h.PayloadSize = engine.Uint32(data[16:20])
	h.UncompressedSize = engine.Uint32(data[20:24])

	return h.Flag.Validate()
}

// Bytes serializes the Header into a byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()
	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.CompressionType
	b[3] = h.Flag.Reserved
	engine.PutUint32(b[4:8], h.MaterialCount)
	engine.PutUint32(b[8:12], h.IndexOffset)
	engine.PutUint32(b[12:16], h.PayloadOffset)
	engine.PutUint32(b[16:20], h.PayloadSize)
	engine.PutUint32(b[20:24], h.UncompressedSize)

	return b
}

// ParseHeader parses a Header from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice containing at least the 24 header bytes
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
