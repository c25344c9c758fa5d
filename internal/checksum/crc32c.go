// Package checksum provides the CRC32C (Castagnoli) checksum with the
// masking scheme the sstable block trailer requires.
//
// Reference: RocksDB v10.7.5
//   - util/crc32c.h
//   - util/crc32c.cc
package checksum

import (
	"hash/crc32"
)

// crc32cTable is the Castagnoli polynomial table used for CRC32C.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// maskDelta is the constant added during masking.
// From RocksDB: static const uint32_t kMaskDelta = 0xa282ead8ul;
const maskDelta = 0xa282ead8

// Value computes the CRC32C checksum of data.
func Value(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// Extend computes the CRC32C of concat(A, data) where initCRC is the CRC32C of A.
func Extend(initCRC uint32, data []byte) uint32 {
	return crc32.Update(initCRC, crc32cTable, data)
}

// Mask returns a masked representation of crc.
//
// Motivation: it is problematic to compute the CRC of a string that
// contains embedded CRCs. Therefore CRCs stored somewhere (e.g., in
// files) should be masked before being stored.
func Mask(crc uint32) uint32 {
	// Rotate right by 15 bits and add a constant.
	return ((crc >> 15) | (crc << 17)) + maskDelta
}

// Unmask returns the crc whose masked representation is maskedCRC.
func Unmask(maskedCRC uint32) uint32 {
	rot := maskedCRC - maskDelta
	return (rot >> 17) | (rot << 15)
}

// MaskedValue computes the CRC32C and masks it in one call.
func MaskedValue(data []byte) uint32 {
	return Mask(Value(data))
}

// BlockChecksum computes the masked CRC32C covering a block's payload
// plus its trailing compression-type byte, so a reader can validate
// both in one pass.
func BlockChecksum(payload []byte, compressionType byte) uint32 {
	crc := Value(payload)
	crc = Extend(crc, []byte{compressionType})
	return Mask(crc)
}
