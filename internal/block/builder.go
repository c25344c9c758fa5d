// Package block implements the prefix-compressed block format shared by
// data blocks, the index block, and the metaindex block, plus the block
// handle and footer encodings that tie them together on disk.
//
// Reference: RocksDB v10.7.5
//   - table/block_based/block_builder.h
//   - table/block_based/block_builder.cc
//   - table/format.h / table/format.cc
package block

import (
	"github.com/kvsstable/sstable/internal/arena"
	"github.com/kvsstable/sstable/internal/encoding"
)

// Builder accumulates sorted key/value pairs into a prefix-compressed
// block with a restart-point trailer.
//
// When we store a key, we drop the prefix shared with the previous key.
// This shrinks the space requirement significantly for locally-sorted
// keys. Every restartInterval keys we skip the compression and store the
// full key instead; these are "restart points" and let a reader binary
// search the block without decoding every preceding entry.
//
// Entry format:
//
//	shared:     varint32  // bytes shared with the preceding key
//	non_shared: varint32  // len(key) - shared
//	value_len:  varint32
//	key_delta:  char[non_shared]
//	value:      char[value_len]
//
// Block format:
//
//	entry_1 entry_2 ... entry_N
//	restart_1 restart_2 ... restart_M  (uint32 LE, byte offsets into buffer)
//	M                                  (uint32 LE)
type Builder struct {
	buffer          []byte
	restarts        []uint32
	counter         int
	restartInterval int
	lastKey         []byte
	finished        bool
	arena           *arena.Arena
}

// NewBuilder creates a Builder with the given restart interval. An
// interval of 1 disables prefix compression (every entry is a restart);
// a typical data-block interval is 16, and index/metaindex blocks use 1.
func NewBuilder(restartInterval int) *Builder {
	if restartInterval < 1 {
		restartInterval = 1
	}
	return &Builder{
		buffer:          make([]byte, 0, 4096),
		restartInterval: restartInterval,
		restarts:        []uint32{0},
		arena:           arena.New(),
	}
}

// Reset clears the builder so it can be reused for the next block.
func (b *Builder) Reset() {
	b.buffer = b.buffer[:0]
	b.restarts = b.restarts[:1]
	b.restarts[0] = 0
	b.counter = 0
	b.lastKey = nil
	b.finished = false
	b.arena = arena.New()
}

// Add adds a key/value pair to the block.
//
// REQUIRES: Finish has not been called since the last Reset.
// REQUIRES: the buffer is empty, or key is strictly greater than the
// previously added key under the caller's comparator.
func (b *Builder) Add(key, value []byte) {
	if b.finished {
		panic("block: Add called after Finish")
	}
	if b.counter > b.restartInterval {
		panic("block: restart counter exceeded restart interval")
	}

	shared := 0
	if b.counter < b.restartInterval {
		shared = sharedPrefixLength(b.lastKey, key)
	} else {
		b.restarts = append(b.restarts, uint32(len(b.buffer)))
		b.counter = 0
	}

	unshared := len(key) - shared

	b.buffer = encoding.AppendVarint32(b.buffer, uint32(shared))
	b.buffer = encoding.AppendVarint32(b.buffer, uint32(unshared))
	b.buffer = encoding.AppendVarint32(b.buffer, uint32(len(value)))
	b.buffer = append(b.buffer, key[shared:]...)
	b.buffer = append(b.buffer, value...)

	b.lastKey = b.arena.CopyBytes(key)
	b.counter++
}

// CurrentSizeEstimate returns the exact size the finished block will
// occupy: the entries written so far, plus one uint32 per restart point,
// plus the trailing restart count. C5 uses this to decide when to flush.
func (b *Builder) CurrentSizeEstimate() int {
	return len(b.buffer) + len(b.restarts)*4 + 4
}

// Empty reports whether no entries have been added since the last Reset.
func (b *Builder) Empty() bool {
	return len(b.buffer) == 0
}

// Finish appends the restart array and its count, marks the builder
// finished, and returns the completed block payload. The returned slice
// aliases the builder's internal buffer and is valid until Reset.
func (b *Builder) Finish() []byte {
	for _, restart := range b.restarts {
		b.buffer = encoding.AppendFixed32(b.buffer, restart)
	}
	b.buffer = encoding.AppendFixed32(b.buffer, uint32(len(b.restarts)))
	b.finished = true
	return b.buffer
}

// sharedPrefixLength returns the length of the common prefix of a and b.
func sharedPrefixLength(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
