/*
Package sstable implements the immutable sorted-table (SSTable) writer of
an LSM-tree key/value storage engine.

A TableBuilder consumes a strictly increasing sequence of key/value pairs
and emits a single self-describing file: prefix-compressed data blocks, an
optional filter block (typically a Bloom filter), a metaindex block, an
index block, and a fixed-size footer whose position relative to
end-of-file is the sole recovery anchor a reader needs.

# Usage

	opts := sstable.DefaultOptions()
	f, err := sstable.DefaultFS().Create(path)
	b := sstable.NewTableBuilder(opts, f)
	for _, kv := range sortedPairs {
		if err := b.Add(kv.Key, kv.Value); err != nil {
			...
		}
	}
	if err := b.Finish(); err != nil {
		...
	}

# Concurrency

A TableBuilder is single-threaded: every operation completes synchronously
on the caller's goroutine, and it performs no internal parallelism.
Distinct TableBuilder instances may write distinct files concurrently.

# Compatibility

The on-disk layout (varint framing, restart-point arrays, sharded Bloom
filter positioning, masked-CRC32C block trailers, and the 48-byte footer)
is bit-compatible with the original LevelDB SST format.

Reference: LevelDB table/table_builder.cc, table/format.h
*/
package sstable
