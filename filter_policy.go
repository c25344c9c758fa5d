package sstable

// filter_policy.go implements the public FilterPolicy surface, a thin
// wrapper over internal/filter so callers never import an internal
// package directly to configure a Bloom filter.

import "github.com/kvsstable/sstable/internal/filter"

// FilterPolicy produces opaque per-shard filter payloads for a
// TableBuilder's filter block. Its Name is persisted as part of the
// metaindex key "filter." + Name(); changing the policy invalidates
// tables written with a different one.
type FilterPolicy = filter.Policy

// NewBloomFilterPolicy returns a FilterPolicy backed by a classic
// (LevelDB-style) Bloom filter targeting bitsPerKey bits of filter data
// per added key. 10 bits/key yields roughly a 1% false positive rate.
func NewBloomFilterPolicy(bitsPerKey int) FilterPolicy {
	return filter.NewBloomPolicy(bitsPerKey)
}
