package matfile

import (
	"encoding/json"
	"fmt"

	"github.com/arloliu/softmag/compress"
	"github.com/arloliu/softmag/errs"
	"github.com/arloliu/softmag/format"
	"github.com/arloliu/softmag/internal/hash"
	"github.com/arloliu/softmag/material"
	"github.com/arloliu/softmag/section"
)

// Decoder reads a material library file produced by Encoder. The whole file
// is validated once at construction (magic number, structural bounds,
// checksum); lookups afterwards cannot fail structurally.
//
// A Decoder is immutable after construction and safe for concurrent use.
type Decoder struct {
	header  section.Header
	entries []section.IndexEntry
	byHash  map[uint64]section.IndexEntry
	payload []byte
}

// NewDecoder parses and validates a material library file.
//
// Parameters:
//   - data: complete file bytes, header through trailing checksum
//
// Returns:
//   - *Decoder: ready for name lookups
//   - error: a data error classifying the first structural defect found
func NewDecoder(data []byte) (*Decoder, error) {
	if len(data) < section.HeaderSize+section.ChecksumSize {
		return nil, fmt.Errorf("matfile: %d bytes: %w", len(data), errs.ErrInvalidHeaderSize)
	}

	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("matfile: %w", err)
	}
	engine := header.Flag.GetEndianEngine()

	// Checksum covers everything before it. Verifying before any structural
	// interpretation keeps corruption reports unambiguous.
	body := data[:len(data)-section.ChecksumSize]
	stored := engine.Uint64(data[len(data)-section.ChecksumSize:])
	if computed := hash.Sum(body); computed != stored {
		return nil, fmt.Errorf("matfile: stored %016x, computed %016x: %w",
			stored, computed, errs.ErrChecksumMismatch)
	}

	indexSize := int(header.MaterialCount) * section.IndexEntrySize
	if int(header.IndexOffset) != section.HeaderSize ||
		int(header.PayloadOffset) != section.HeaderSize+indexSize ||
		int(header.PayloadOffset)+int(header.PayloadSize) != len(body) {
		return nil, fmt.Errorf("matfile: inconsistent section offsets: %w", errs.ErrTruncatedFile)
	}

	codec, err := compress.GetCodec(header.Flag.Compression())
	if err != nil {
		return nil, fmt.Errorf("matfile: %w", err)
	}
	payload, err := codec.Decompress(body[header.PayloadOffset:])
	if err != nil {
		return nil, fmt.Errorf("matfile: decompress payload: %w", err)
	}
	if len(payload) != int(header.UncompressedSize) {
		return nil, fmt.Errorf("matfile: payload %d bytes, header says %d: %w",
			len(payload), header.UncompressedSize, errs.ErrInvalidRecord)
	}

	entries := make([]section.IndexEntry, 0, header.MaterialCount)
	byHash := make(map[uint64]section.IndexEntry, header.MaterialCount)
	for i := 0; i < int(header.MaterialCount); i++ {
		entry, err := section.ParseIndexEntry(body[section.HeaderSize+i*section.IndexEntrySize:], engine)
		if err != nil {
			return nil, fmt.Errorf("matfile: index entry %d: %w", i, err)
		}
		if int(entry.Offset)+int(entry.Length) > len(payload) {
			return nil, fmt.Errorf("matfile: index entry %d beyond payload: %w", i, errs.ErrTruncatedFile)
		}
		entries = append(entries, entry)
		byHash[entry.NameHash] = entry
	}

	return &Decoder{
		header:  header,
		entries: entries,
		byHash:  byHash,
		payload: payload,
	}, nil
}

// MaterialCount returns the number of materials in the file.
func (d *Decoder) MaterialCount() int {
	return len(d.entries)
}

// Compression returns the payload compression type of the file.
func (d *Decoder) Compression() format.CompressionType {
	return d.header.Flag.Compression()
}

// Material looks up one material by name. The lookup is by name hash; the
// decoded record's name is compared against the requested one, so a hash
// collision with a different name reports not-found rather than returning
// the wrong material.
func (d *Decoder) Material(name string) (*material.Material, error) {
	entry, ok := d.byHash[hash.ID(name)]
	if !ok {
		return nil, fmt.Errorf("matfile: %q: %w", name, errs.ErrMaterialNotFound)
	}

	m, err := d.decodeRecord(entry)
	if err != nil {
		return nil, err
	}
	if m.Name() != name {
		return nil, fmt.Errorf("matfile: %q: %w", name, errs.ErrMaterialNotFound)
	}

	return m, nil
}

// Materials decodes all materials in file order.
func (d *Decoder) Materials() ([]*material.Material, error) {
	out := make([]*material.Material, 0, len(d.entries))
	for _, entry := range d.entries {
		m, err := d.decodeRecord(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}

func (d *Decoder) decodeRecord(entry section.IndexEntry) (*material.Material, error) {
	record := d.payload[entry.Offset : entry.Offset+entry.Length]

	var m material.Material
	if err := json.Unmarshal(record, &m); err != nil {
		return nil, fmt.Errorf("matfile: %w: %s", errs.ErrInvalidRecord, err)
	}

	return &m, nil
}
