package block

import "github.com/kvsstable/sstable/internal/encoding"

// Handle locates a block's payload within the file: a byte offset and a
// size, excluding the 5-byte trailer. It is serialized inside the index,
// metaindex, and footer as two varint64s.
type Handle struct {
	Offset uint64
	Size   uint64
}

// MaxEncodedLength is the largest a Handle can encode to: two varint64s,
// each up to 10 bytes.
const MaxEncodedLength = 2 * encoding.MaxVarint64Length

// EncodeTo appends the varint64 encoding of h to dst and returns the
// extended slice.
func (h Handle) EncodeTo(dst []byte) []byte {
	dst = encoding.AppendVarint64(dst, h.Offset)
	dst = encoding.AppendVarint64(dst, h.Size)
	return dst
}

// EncodedLength returns the number of bytes h.EncodeTo would append.
func (h Handle) EncodedLength() int {
	return encoding.VarintLength64(h.Offset) + encoding.VarintLength64(h.Size)
}
