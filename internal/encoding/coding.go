// Package encoding provides the binary encoding primitives the sstable
// writer needs: little-endian fixed-width integers and LEB128-style
// variable-length integers. These are part of the on-disk wire format and
// must be implemented to the bit.
//
// Reference: RocksDB v10.7.5 util/coding.h, util/coding.cc
package encoding

import "encoding/binary"

// MaxVarint32Length is the maximum number of bytes a varint32 can occupy.
const MaxVarint32Length = 5

// MaxVarint64Length is the maximum number of bytes a varint64 can occupy.
const MaxVarint64Length = 10

// AppendFixed32 appends a little-endian uint32 to dst and returns the extended slice.
func AppendFixed32(dst []byte, value uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, value)
}

// AppendFixed64 appends a little-endian uint64 to dst and returns the extended slice.
func AppendFixed64(dst []byte, value uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, value)
}

// EncodeVarint32 encodes value as a varint into dst, returning the number of
// bytes written. REQUIRES: dst has at least MaxVarint32Length bytes.
func EncodeVarint32(dst []byte, value uint32) int {
	const B = 128
	i := 0
	for value >= B {
		dst[i] = byte(value&(B-1)) | B
		value >>= 7
		i++
	}
	dst[i] = byte(value)
	return i + 1
}

// AppendVarint32 appends value to dst as a varint32 and returns the extended slice.
func AppendVarint32(dst []byte, value uint32) []byte {
	var buf [MaxVarint32Length]byte
	n := EncodeVarint32(buf[:], value)
	return append(dst, buf[:n]...)
}

// EncodeVarint64 encodes value as a varint into dst, returning the number of
// bytes written. REQUIRES: dst has at least MaxVarint64Length bytes.
func EncodeVarint64(dst []byte, value uint64) int {
	const B = 128
	i := 0
	for value >= B {
		dst[i] = byte(value&(B-1)) | B
		value >>= 7
		i++
	}
	dst[i] = byte(value)
	return i + 1
}

// AppendVarint64 appends value to dst as a varint64 and returns the extended slice.
func AppendVarint64(dst []byte, value uint64) []byte {
	var buf [MaxVarint64Length]byte
	n := EncodeVarint64(buf[:], value)
	return append(dst, buf[:n]...)
}

// VarintLength64 returns the number of bytes needed to encode v as a varint.
func VarintLength64(v uint64) int {
	length := 1
	for v >= 128 {
		v >>= 7
		length++
	}
	return length
}
