package block

import "encoding/binary"

// MagicNumber is the fixed 8-byte constant that closes every file this
// writer produces. It is bit-compatible with the original LevelDB
// on-disk format (leveldb's kTableMagicNumber), which the sstable
// layout in this package implements a writer-only subset of.
const MagicNumber uint64 = 0xdb4775248b80fb57

// magicNumberLength is the size, in bytes, of the trailing magic number.
const magicNumberLength = 8

// EncodedLength is the fixed size of an encoded Footer: two block
// handles' worth of space (40 bytes, zero-padded if the handles encode
// shorter) plus the 8-byte magic number.
const EncodedLength = 2*MaxEncodedLength + magicNumberLength

// Footer is the fixed-size record at the very end of the file. Its
// position relative to end-of-file is the sole recovery anchor a reader
// needs: seek to file_size - EncodedLength and decode.
type Footer struct {
	MetaindexHandle Handle
	IndexHandle     Handle
}

// EncodeTo returns the EncodedLength-byte encoding of f:
//
//	encode(metaindex_handle) || encode(index_handle) || zero-padding || magic
func (f Footer) EncodeTo() []byte {
	buf := make([]byte, EncodedLength)

	n := 0
	n += copy(buf[n:], f.MetaindexHandle.EncodeTo(nil))
	n += copy(buf[n:], f.IndexHandle.EncodeTo(nil))
	// buf[n:EncodedLength-magicNumberLength] is already zero (make zeroes).

	binary.LittleEndian.PutUint64(buf[EncodedLength-magicNumberLength:], MagicNumber)
	return buf
}
