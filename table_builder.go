package sstable

// table_builder.go implements the SSTable writer: the orchestrator that
// streams added entries through the block builder and filter builder,
// flushes data blocks, and emits the metaindex, index, and footer that
// make the file self-describing.
//
// Reference: LevelDB table/table_builder.cc, table/format.h

import (
	"github.com/kvsstable/sstable/internal/block"
	"github.com/kvsstable/sstable/internal/compression"
	"github.com/kvsstable/sstable/internal/filter"
	"github.com/kvsstable/sstable/internal/logging"
	"github.com/kvsstable/sstable/internal/mempool"
	"github.com/kvsstable/sstable/internal/status"
	"github.com/kvsstable/sstable/internal/vfs"
)

// TableBuilder builds a single SST file from a strictly increasing
// sequence of key/value pairs. A TableBuilder is single-threaded: every
// method completes synchronously on the caller's goroutine.
type TableBuilder struct {
	options Options
	file    vfs.WritableFile
	logger  Logger

	dataBlock  *block.Builder
	indexBlock *block.Builder

	filterPolicy  FilterPolicy
	filterBuilder *filter.Builder

	pendingIndexEntry bool
	pendingHandle     block.Handle
	lastKey           []byte

	// handleScratch holds the varint64-pair encoding of a block.Handle
	// just before it is copied into an index/metaindex entry. Pooled
	// since a table with many data blocks encodes one of these per flush.
	handleScratch []byte

	numEntries uint64
	offset     uint64

	closed bool
	status status.Status
}

// NewTableBuilder creates a TableBuilder that writes to file using opts.
// Zero-value fields of opts are replaced with their defaults.
func NewTableBuilder(opts Options, file vfs.WritableFile) *TableBuilder {
	opts = opts.withDefaults()

	tb := &TableBuilder{
		options:       opts,
		file:          file,
		logger:        opts.Logger,
		dataBlock:     block.NewBuilder(opts.BlockRestartInterval),
		indexBlock:    block.NewBuilder(1),
		handleScratch: mempool.GlobalPool.Get(block.MaxEncodedLength),
	}

	if opts.FilterPolicy != nil {
		tb.filterPolicy = opts.FilterPolicy
		tb.filterBuilder = filter.NewBuilder(opts.FilterPolicy)
	}

	return tb
}

// Add adds key/value to the table. Keys must be added in strictly
// increasing order under the configured comparator; violating this, or
// calling Add after Finish or Abandon, panics, since these are caller
// bugs rather than runtime failures. A sink I/O failure instead sticks
// to the builder's status and is returned from every subsequent call.
func (tb *TableBuilder) Add(key, value []byte) error {
	if tb.closed {
		panic("sstable: Add called on a closed TableBuilder")
	}
	if !tb.status.Ok() {
		return tb.status.AsError()
	}
	if tb.numEntries > 0 && tb.options.Comparator.Compare(key, tb.lastKey) <= 0 {
		panic("sstable: keys must be added in strictly increasing order")
	}

	if tb.pendingIndexEntry {
		sep := tb.options.Comparator.FindShortestSeparator(tb.lastKey, key)
		tb.handleScratch = tb.pendingHandle.EncodeTo(tb.handleScratch[:0])
		tb.indexBlock.Add(sep, tb.handleScratch)
		tb.pendingIndexEntry = false
	}

	if tb.filterBuilder != nil {
		tb.filterBuilder.AddKey(key)
	}

	tb.lastKey = append(tb.lastKey[:0], key...)
	tb.numEntries++
	tb.dataBlock.Add(key, value)

	if tb.dataBlock.CurrentSizeEstimate() >= tb.options.BlockSize {
		tb.flush()
	}

	return tb.status.AsError()
}

// flush writes the current data block, if non-empty, and records it as
// a pending index entry. It is a no-op once the builder's status has
// already gone bad.
func (tb *TableBuilder) flush() {
	if tb.dataBlock.Empty() || !tb.status.Ok() {
		return
	}
	if tb.pendingIndexEntry {
		panic("sstable: flush called with an unresolved pending index entry")
	}

	handle, err := tb.writeBlock(tb.dataBlock)
	if err != nil {
		tb.status = status.IOErrorf("sstable: flush data block: %v", err)
		return
	}
	tb.pendingHandle = handle
	tb.pendingIndexEntry = true

	if err := tb.file.Sync(); err != nil {
		tb.status = status.IOErrorf("sstable: sync after data block: %v", err)
		return
	}

	if tb.filterBuilder != nil {
		tb.filterBuilder.StartBlock(tb.offset)
	}

	tb.logger.Debugf("%sflushed data block at offset %d, size %d", logging.NSTable, handle.Offset, handle.Size)
}

// writeBlock finishes b, applies the compressibility heuristic, writes
// the resulting payload and trailer, and resets b for reuse.
func (tb *TableBuilder) writeBlock(b *block.Builder) (block.Handle, error) {
	raw := b.Finish()
	payload := raw
	effectiveType := byte(compression.NoCompression)

	if tb.options.Compression == compression.SnappyCompression {
		compressed, err := compression.Compress(compression.SnappyCompression, raw)
		if err == nil && len(compressed) < len(raw)-len(raw)/8 {
			payload = compressed
			effectiveType = byte(compression.SnappyCompression)
		}
	}

	handle, err := tb.writeRawBlock(payload, effectiveType)
	b.Reset()
	return handle, err
}

// writeRawBlock appends payload and its trailer to the file, advancing
// offset only on full success. On any append error, offset is left
// unchanged and the caller is responsible for sticking the status.
func (tb *TableBuilder) writeRawBlock(payload []byte, compressionType byte) (block.Handle, error) {
	handle := block.Handle{Offset: tb.offset, Size: uint64(len(payload))}

	if err := tb.file.Append(payload); err != nil {
		return block.Handle{}, err
	}

	trailer := block.MakeTrailer(payload, compressionType)
	if err := tb.file.Append(trailer[:]); err != nil {
		return block.Handle{}, err
	}

	tb.offset += uint64(len(payload)) + block.TrailerSize
	return handle, nil
}

// ChangeOptions replaces the builder's options mid-build. Rejected with
// an InvalidArgument status if the new comparator's name differs from
// the current one, since already-written entries were ordered and
// separator-encoded under the old comparator. The data block is
// recreated with the new restart interval; callers should only change
// options while the data block is empty (immediately after construction
// or immediately after a flush).
func (tb *TableBuilder) ChangeOptions(opts Options) error {
	if opts.Comparator == nil {
		opts.Comparator = tb.options.Comparator
	}
	if opts.Comparator.Name() != tb.options.Comparator.Name() {
		return status.InvalidArgumentf(
			"sstable: ChangeOptions comparator %q does not match current comparator %q",
			opts.Comparator.Name(), tb.options.Comparator.Name(),
		).AsError()
	}

	opts = opts.withDefaults()
	tb.options = opts
	tb.dataBlock = block.NewBuilder(opts.BlockRestartInterval)
	tb.logger = opts.Logger
	return nil
}

// Finish flushes any pending data, writes the filter block (if
// configured), the metaindex block, the index block, and the footer,
// then marks the builder closed. After Finish returns, the TableBuilder
// must not be used again.
func (tb *TableBuilder) Finish() error {
	tb.flush()
	tb.closed = true
	if !tb.status.Ok() {
		return tb.status.AsError()
	}

	var filterHandle block.Handle
	haveFilter := false
	if tb.filterBuilder != nil {
		payload := tb.filterBuilder.Finish()
		h, err := tb.writeRawBlock(payload, byte(compression.NoCompression))
		if err != nil {
			tb.status = status.IOErrorf("sstable: write filter block: %v", err)
			return tb.status.AsError()
		}
		filterHandle = h
		haveFilter = true
	}

	metaindexBlock := block.NewBuilder(1)
	if haveFilter {
		tb.handleScratch = filterHandle.EncodeTo(tb.handleScratch[:0])
		metaindexBlock.Add([]byte("filter."+tb.filterPolicy.Name()), tb.handleScratch)
	}
	metaindexHandle, err := tb.writeBlock(metaindexBlock)
	if err != nil {
		tb.status = status.IOErrorf("sstable: write metaindex block: %v", err)
		return tb.status.AsError()
	}

	if tb.pendingIndexEntry {
		succ := tb.options.Comparator.FindShortSuccessor(tb.lastKey)
		tb.handleScratch = tb.pendingHandle.EncodeTo(tb.handleScratch[:0])
		tb.indexBlock.Add(succ, tb.handleScratch)
		tb.pendingIndexEntry = false
	}
	indexHandle, err := tb.writeBlock(tb.indexBlock)
	if err != nil {
		tb.status = status.IOErrorf("sstable: write index block: %v", err)
		return tb.status.AsError()
	}

	footer := block.Footer{MetaindexHandle: metaindexHandle, IndexHandle: indexHandle}
	if err := tb.file.Append(footer.EncodeTo()); err != nil {
		tb.status = status.IOErrorf("sstable: write footer: %v", err)
		return tb.status.AsError()
	}
	tb.offset += uint64(block.EncodedLength)

	mempool.GlobalPool.Put(tb.handleScratch)
	tb.logger.Infof("%sfinished table: %d entries, %d bytes", logging.NSTable, tb.numEntries, tb.offset)
	return nil
}

// Abandon marks the builder closed without writing any further bytes.
// The caller is responsible for discarding the partial file.
func (tb *TableBuilder) Abandon() {
	tb.closed = true
	mempool.GlobalPool.Put(tb.handleScratch)
}

// NumEntries returns the number of entries added so far.
func (tb *TableBuilder) NumEntries() uint64 {
	return tb.numEntries
}

// FileSize returns the number of bytes written to the file sink so far.
func (tb *TableBuilder) FileSize() uint64 {
	return tb.offset
}

// Status returns the sticky error from the first failed file-sink
// operation, or nil if none has occurred.
func (tb *TableBuilder) Status() error {
	return tb.status.AsError()
}
