// Package compression implements the block codec this writer supports:
// none, and Snappy. Each data, index, and metaindex block is stored with
// a 1-byte compression type indicator in the block trailer that follows
// the (possibly compressed) payload; the trailer's checksum covers it.
//
// The wider RocksDB compression family (Zlib, LZ4, Zstd, ...) is out of
// scope: this writer's compressibility heuristic is only ever evaluated
// against Snappy, so Type only carries the two codecs a TableBuilder can
// actually select.
package compression

import (
	"fmt"

	"github.com/golang/snappy"
)

// Type identifies a block compression codec.
type Type uint8

const (
	// NoCompression stores the block payload unmodified.
	NoCompression Type = 0x0

	// SnappyCompression uses Google's Snappy block format.
	SnappyCompression Type = 0x1
)

// String returns the human-readable name of t.
func (t Type) String() string {
	switch t {
	case NoCompression:
		return "NoCompression"
	case SnappyCompression:
		return "Snappy"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// IsSupported reports whether t is a codec this package can compress and
// decompress.
func (t Type) IsSupported() bool {
	switch t {
	case NoCompression, SnappyCompression:
		return true
	default:
		return false
	}
}

// Compress encodes data using t. NoCompression returns data unchanged;
// the caller owns the result either way.
func Compress(t Type, data []byte) ([]byte, error) {
	switch t {
	case NoCompression:
		return data, nil
	case SnappyCompression:
		return snappy.Encode(nil, data), nil
	default:
		return nil, fmt.Errorf("compression: unsupported type: %s", t)
	}
}

// Decompress reverses Compress for the same t.
func Decompress(t Type, data []byte) ([]byte, error) {
	switch t {
	case NoCompression:
		return data, nil
	case SnappyCompression:
		return snappy.Decode(nil, data)
	default:
		return nil, fmt.Errorf("compression: unsupported type: %s", t)
	}
}
