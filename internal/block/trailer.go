package block

import "github.com/kvsstable/sstable/internal/checksum"

// TrailerSize is the size, in bytes, of the trailer following every
// block payload written to the file: a 1-byte compression type plus a
// 4-byte little-endian masked CRC32C.
const TrailerSize = 5

// MakeTrailer builds the 5-byte trailer for a block whose on-disk
// payload is payload and whose compression type byte is compressionType.
// The checksum covers the payload plus the compression-type byte so a
// reader can validate both in one pass.
func MakeTrailer(payload []byte, compressionType byte) [TrailerSize]byte {
	var trailer [TrailerSize]byte
	trailer[0] = compressionType
	crc := checksum.BlockChecksum(payload, compressionType)
	trailer[1] = byte(crc)
	trailer[2] = byte(crc >> 8)
	trailer[3] = byte(crc >> 16)
	trailer[4] = byte(crc >> 24)
	return trailer
}
