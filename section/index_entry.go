package section

import (
	"github.com/arloliu/softmag/endian"
	"github.com/arloliu/softmag/errs"
)

// IndexEntry locates one material record inside the payload section.
type IndexEntry struct {
	// NameHash is the xxHash64 of the material name, the lookup key.
	NameHash uint64 // byte offset 0-7
	// Offset is the byte offset of the record inside the decompressed
	// payload section.
	Offset uint32 // byte offset 8-11
	// Length is the byte length of the record.
	Length uint32 // byte offset 12-15
}

// AppendBytes appends the 16-byte wire form of the entry to buf.
func (e IndexEntry) AppendBytes(buf []byte, engine endian.EndianEngine) []byte {
	buf = engine.AppendUint64(buf, e.NameHash)
	buf = engine.AppendUint32(buf, e.Offset)
	buf = engine.AppendUint32(buf, e.Length)

	return buf
}

// ParseIndexEntry parses one index entry from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the entry (must be at least 16 bytes)
//   - engine: Endian engine from the file header flag
//
// Returns:
//   - IndexEntry: Parsed entry
//   - error: ErrTruncatedFile if data is shorter than 16 bytes
func ParseIndexEntry(data []byte, engine endian.EndianEngine) (IndexEntry, error) {
	if len(data) < IndexEntrySize {
		return IndexEntry{}, errs.ErrTruncatedFile
	}

	return IndexEntry{
		NameHash: engine.Uint64(data[0:8]),
		Offset:   engine.Uint32(data[8:12]),
		Length:   engine.Uint32(data[12:16]),
	}, nil
}
