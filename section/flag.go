package section

import (
	"github.com/arloliu/softmag/endian"
	"github.com/arloliu/softmag/errs"
	"github.com/arloliu/softmag/format"
)

// Flag is the packed leading word of the material file header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 1-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are the magic number identifying the material file format:
	//   - 0x5A10: material library format v1
	Options uint16

	// CompressionType is an enum indicating the compression applied to the
	// payload section.
	CompressionType uint8

	// Reserved must be zero.
	Reserved uint8
}

// NewFlag creates a Flag with default settings: v1 magic, little-endian,
// uncompressed payload.
func NewFlag() Flag {
	flag := Flag{
		Options:         MagicMaterialV1Opt,
		CompressionType: uint8(format.CompressionNone),
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the file data is little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the file data is big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Compression returns the payload compression type.
func (f Flag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression sets the payload compression type.
func (f *Flag) SetCompression(compression format.CompressionType) {
	f.CompressionType = uint8(compression)
}

// GetEndianEngine returns the endian engine matching the endianness flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// Validate checks the magic number and the compression flag.
func (f Flag) Validate() error {
	if f.GetMagicNumber() != MagicMaterialV1Opt {
		return errs.ErrInvalidMagicNumber
	}
	if !f.Compression().Valid() {
		return errs.ErrInvalidCompression
	}

	return nil
}
