package matfile

import (
	"encoding/json"
	"fmt"

	"github.com/arloliu/softmag/compress"
	"github.com/arloliu/softmag/endian"
	"github.com/arloliu/softmag/errs"
	"github.com/arloliu/softmag/format"
	"github.com/arloliu/softmag/internal/hash"
	"github.com/arloliu/softmag/internal/options"
	"github.com/arloliu/softmag/internal/pool"
	"github.com/arloliu/softmag/material"
	"github.com/arloliu/softmag/section"
)

// Encoder assembles a material library file. Materials are added one at a
// time and the complete file is produced by Finish.
//
// An Encoder is single-use and not safe for concurrent use.
type Encoder struct {
	header   *section.Header
	entries  []section.IndexEntry
	names    map[uint64]string
	payload  *pool.ByteBuffer
	finished bool
}

// Option configures an Encoder.
type Option = options.Option[*Encoder]

// WithCompression selects the payload compression codec. The default is no
// compression.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(e *Encoder) error {
		if !compression.Valid() {
			return fmt.Errorf("matfile: compression %d: %w", compression, errs.ErrInvalidCompression)
		}
		e.header.Flag.SetCompression(compression)

		return nil
	})
}

// WithBigEndian writes all multi-byte fields big-endian, for producers that
// interoperate with big-endian consumers. The default is little-endian.
func WithBigEndian() Option {
	return options.NoError(func(e *Encoder) {
		e.header.Flag.WithBigEndian()
	})
}

// WithNativeEndian writes all multi-byte fields in the host's byte order,
// avoiding byte swapping when the file is consumed on the producing host.
// The endianness flag in the header keeps the file portable either way.
func WithNativeEndian() Option {
	return options.NoError(func(e *Encoder) {
		if endian.IsNativeBigEndian() {
			e.header.Flag.WithBigEndian()
		} else {
			e.header.Flag.WithLittleEndian()
		}
	})
}

// NewEncoder creates an Encoder for one material library file.
func NewEncoder(opts ...Option) (*Encoder, error) {
	e := &Encoder{
		header:  section.NewHeader(),
		names:   make(map[uint64]string),
		payload: pool.GetPayloadBuffer(),
	}
	if err := options.Apply(e, opts...); err != nil {
		pool.PutPayloadBuffer(e.payload)

		return nil, err
	}

	return e, nil
}

// Add appends one material record to the library. Names must be unique
// within a file; a second material with the same name (or a name whose hash
// collides) is rejected.
func (e *Encoder) Add(m *material.Material) error {
	if e.finished {
		return fmt.Errorf("matfile: add after finish: %w", errs.ErrInvalidRecord)
	}

	nameHash := hash.ID(m.Name())
	if existing, ok := e.names[nameHash]; ok {
		return fmt.Errorf("matfile: %q collides with %q: %w", m.Name(), existing, errs.ErrDuplicateMaterial)
	}

	record, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("matfile: encode %q: %w", m.Name(), err)
	}

	offset := e.payload.Len()
	e.payload.Grow(len(record))
	_, _ = e.payload.Write(record)

	e.names[nameHash] = m.Name()
	e.entries = append(e.entries, section.IndexEntry{
		NameHash: nameHash,
		Offset:   uint32(offset),
		Length:   uint32(len(record)),
	})
	e.header.MaterialCount = uint32(len(e.entries))

	return nil
}

// Finish compresses the payload, writes the header, index and trailing
// checksum, and returns the complete file. The encoder cannot be reused
// afterwards.
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, fmt.Errorf("matfile: finish called twice: %w", errs.ErrInvalidRecord)
	}
	if len(e.entries) == 0 {
		return nil, fmt.Errorf("matfile: %w", errs.ErrNoMaterialsAdded)
	}
	e.finished = true
	defer func() {
		pool.PutPayloadBuffer(e.payload)
		e.payload = nil
	}()

	codec, err := compress.GetCodec(e.header.Flag.Compression())
	if err != nil {
		return nil, fmt.Errorf("matfile: %w", err)
	}
	compressed, err := codec.Compress(e.payload.Bytes())
	if err != nil {
		return nil, fmt.Errorf("matfile: compress payload: %w", err)
	}

	indexSize := len(e.entries) * section.IndexEntrySize
	e.header.PayloadOffset = uint32(section.HeaderSize + indexSize)
	e.header.PayloadSize = uint32(len(compressed))
	e.header.UncompressedSize = uint32(e.payload.Len())

	engine := e.header.Flag.GetEndianEngine()
	buf := make([]byte, 0, section.HeaderSize+indexSize+len(compressed)+section.ChecksumSize)
	buf = append(buf, e.header.Bytes()...)
	for _, entry := range e.entries {
		buf = entry.AppendBytes(buf, engine)
	}
	buf = append(buf, compressed...)
	buf = engine.AppendUint64(buf, hash.Sum(buf))

	return buf, nil
}
