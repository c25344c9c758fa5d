package filter

import "encoding/binary"

// FilterBase is the number of data-section bytes each filter shard
// covers; a new shard begins every FilterBase bytes of data blocks.
const FilterBase = 2048

// FilterBaseLg is log2(FilterBase), persisted in the trailing byte of
// Finish's output so a reader can recover FilterBase.
const FilterBaseLg = 11

// Builder accumulates keys into filter shards indexed by data-block
// byte offset, not by key count, so a reader can locate the filter
// covering a given block from that block's offset alone.
type Builder struct {
	policy Policy

	keys   []byte   // concatenation of all keys buffered for the current shard
	starts []int    // starts[i] is the offset into keys where key i begins
	result []byte   // encoded filters emitted so far
	shards []uint32 // byte offset into result where each shard begins

	tmpKeys [][]byte // scratch reused by generateFilter
}

// NewBuilder creates a Builder using policy to materialize each shard.
func NewBuilder(policy Policy) *Builder {
	return &Builder{policy: policy}
}

// StartBlock informs the builder that a new data block begins at
// blockOffset within the file's data section. Shard boundaries at or
// before blockOffset are finalized, possibly producing empty shard
// entries when a single data block spans more than one filter shard.
func (b *Builder) StartBlock(blockOffset uint64) {
	filterIndex := blockOffset / FilterBase
	for filterIndex > uint64(len(b.shards)) {
		b.generateFilter()
	}
}

// AddKey buffers key for inclusion in the filter shard currently being
// accumulated. Must be called after the corresponding StartBlock.
func (b *Builder) AddKey(key []byte) {
	b.starts = append(b.starts, len(b.keys))
	b.keys = append(b.keys, key...)
}

// Finish flushes any buffered keys into a final shard and returns the
// complete filter block payload: concatenated shard bytes, a trailing
// array of shard offsets, and a 1-byte FilterBaseLg footer.
func (b *Builder) Finish() []byte {
	if len(b.starts) > 0 {
		b.generateFilter()
	}

	arrayOffset := len(b.result)
	for _, offset := range b.shards {
		b.result = binary.LittleEndian.AppendUint32(b.result, offset)
	}
	b.result = binary.LittleEndian.AppendUint32(b.result, uint32(arrayOffset))
	b.result = append(b.result, FilterBaseLg)
	return b.result
}

// generateFilter materializes one shard from the currently buffered
// keys (if any) and resets the buffers for the next shard.
func (b *Builder) generateFilter() {
	if len(b.starts) == 0 {
		b.shards = append(b.shards, uint32(len(b.result)))
		return
	}

	b.starts = append(b.starts, len(b.keys)) // trailing sentinel
	b.tmpKeys = b.tmpKeys[:0]
	for i := range len(b.starts) - 1 {
		b.tmpKeys = append(b.tmpKeys, b.keys[b.starts[i]:b.starts[i+1]])
	}

	b.shards = append(b.shards, uint32(len(b.result)))
	b.result = b.policy.CreateFilter(b.tmpKeys, b.result)

	b.keys = b.keys[:0]
	b.starts = b.starts[:0]
}
