// Package hash provides the name hashing used by material file indexes.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given material name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Sum computes the xxHash64 of raw bytes, used for whole-file checksums.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
