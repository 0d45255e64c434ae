package section

const (
	// Bit masks for the header options word
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0)
	ReservedBitsMask = 0x000E // Mask for reserved bits (bits 1-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicMaterialV1Opt is the version 1 magic number of the material
	// library file format (bits 4-15 of the options word).
	MagicMaterialV1Opt = 0x5A10
)

// Offsets and section sizes in the material file
const (
	HeaderSize        = 24         // fixed header size in bytes
	IndexEntrySize    = 16         // fixed index entry size in bytes
	IndexOffsetOffset = HeaderSize // byte offset where the index section starts
	ChecksumSize      = 8          // trailing xxHash64 checksum size in bytes
)
