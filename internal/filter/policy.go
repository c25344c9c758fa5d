// Package filter implements the sharded filter-block builder and the
// classic LevelDB-style Bloom filter policy used to populate it.
//
// Reference: LevelDB table/filter_block.{h,cc}, util/bloom.cc
package filter

import "github.com/zeebo/xxh3"

// Policy produces opaque filter payloads for a batch of keys. A table's
// filter policy name is persisted in the metaindex block, so changing it
// invalidates tables written with a different policy.
type Policy interface {
	// Name identifies the policy. Persisted as part of the metaindex key
	// "filter." + Name(); must be stable across the policy's lifetime.
	Name() string

	// CreateFilter appends an opaque filter payload covering keys to dst
	// and returns the extended slice.
	CreateFilter(keys [][]byte, dst []byte) []byte
}

// BloomPolicy is a classic (non-cache-line-sharded) Bloom filter, the
// same bit-setting scheme as LevelDB's util/bloom.cc: one hash computed
// per key, then double hashing (Kirsch-Mitzenmacher) to derive the
// k probe positions.
type BloomPolicy struct {
	bitsPerKey int
	k          int // number of hash probes
}

// NewBloomPolicy returns a BloomPolicy targeting bitsPerKey bits of
// filter data per added key. 10 bits/key gives roughly a 1% false
// positive rate.
func NewBloomPolicy(bitsPerKey int) *BloomPolicy {
	if bitsPerKey < 1 {
		bitsPerKey = 1
	}
	k := int(float64(bitsPerKey) * 0.69) // ln(2)
	if k < 1 {
		k = 1
	}
	if k > 30 {
		k = 30
	}
	return &BloomPolicy{bitsPerKey: bitsPerKey, k: k}
}

// Name returns "rocksdb.BuiltinBloomFilter", the policy name persisted in
// the metaindex key of tables written with this policy.
func (p *BloomPolicy) Name() string {
	return "rocksdb.BuiltinBloomFilter"
}

// CreateFilter builds a single Bloom filter shard covering keys and
// appends it (bit array followed by a 1-byte probe count) to dst.
func (p *BloomPolicy) CreateFilter(keys [][]byte, dst []byte) []byte {
	bits := len(keys) * p.bitsPerKey
	if bits < 64 {
		bits = 64
	}
	bytes := (bits + 7) / 8
	bits = bytes * 8

	base := len(dst)
	dst = append(dst, make([]byte, bytes+1)...)
	array := dst[base : base+bytes]
	dst[base+bytes] = byte(p.k)

	for _, key := range keys {
		h := bloomHash(key)
		delta := (h >> 17) | (h << 15) // rotate right 17 bits
		for range p.k {
			bitpos := h % uint32(bits)
			array[bitpos/8] |= 1 << (bitpos % 8)
			h += delta
		}
	}
	return dst
}

// bloomHash computes the per-key hash used to derive probe positions.
// LevelDB uses a Murmur-style hash here; this implementation uses XXH3,
// a real dependency already pulled in for the wider sstable ecosystem,
// seeded the way LevelDB seeds its hash (0xbc9f1d34) for parity with the
// two-hash double-hashing scheme.
func bloomHash(key []byte) uint32 {
	return uint32(xxh3.HashSeed(key, 0xbc9f1d34))
}
