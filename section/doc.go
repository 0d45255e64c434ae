// Package section defines the low-level binary structures and constants of
// the material file format.
//
// It handles binary serialization and deserialization of the file header,
// its packed flag word and the index entries, ensuring a consistent
// byte-level representation across platforms. The matfile package composes
// these pieces into complete files.
//
// # File structure
//
// A material file consists of fixed-size sections followed by the payload:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (24 bytes, fixed)                                │
//	│  - Flag (4 bytes): magic, endianness, compression       │
//	│  - MaterialCount (4 bytes)                              │
//	│  - IndexOffset, PayloadOffset (8 bytes)                 │
//	│  - PayloadSize, UncompressedSize (8 bytes)              │
//	├─────────────────────────────────────────────────────────┤
//	│ Index (N × 16 bytes, fixed per entry)                   │
//	│  - One entry per material                               │
//	│  - Name hash, record offset, record length              │
//	├─────────────────────────────────────────────────────────┤
//	│ Payload (variable, optionally compressed)               │
//	│  - One record per material                              │
//	├─────────────────────────────────────────────────────────┤
//	│ Checksum (8 bytes): xxHash64 of all preceding bytes     │
//	└─────────────────────────────────────────────────────────┘
//
// Record offsets in the index address the payload after decompression, so
// lookup cost is independent of the codec once the payload is decompressed.
package section
