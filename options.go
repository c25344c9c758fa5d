package sstable

// options.go implements TableBuilder configuration.

import (
	"github.com/kvsstable/sstable/internal/compression"
	"github.com/kvsstable/sstable/internal/logging"
)

// Logger is an alias for the logging.Logger interface, allowing callers
// to pass their own logger implementation.
type Logger = logging.Logger

// CompressionType selects the data-block compression codec.
type CompressionType = compression.Type

// Compression type constants.
const (
	CompressionNone   = compression.NoCompression
	CompressionSnappy = compression.SnappyCompression
)

// Options configures a TableBuilder.
type Options struct {
	// Comparator defines the total ordering Add's input must arrive in.
	// If nil, DefaultComparator() is used.
	Comparator Comparator

	// FilterPolicy builds the optional filter block. Nil disables the
	// filter block entirely.
	FilterPolicy FilterPolicy

	// Compression is the codec attempted for data, index, and metaindex
	// blocks. The filter block is never compressed. Only CompressionNone
	// and CompressionSnappy change behavior: Snappy output is kept only
	// when it saves more than 12.5% over the raw block; anything else
	// falls back to storing the block uncompressed.
	// Default: CompressionNone.
	Compression CompressionType

	// BlockSize is the target uncompressed size, in bytes, of a data
	// block before it is flushed. A soft threshold: the block that
	// crosses it is still flushed in full. Default: 4096.
	BlockSize int

	// BlockRestartInterval is the number of entries between restart
	// points in a data block. The index and metaindex blocks always use
	// a restart interval of 1, regardless of this value. Default: 16.
	BlockRestartInterval int

	// Logger receives diagnostic messages. If nil, a WARN-level logger
	// writing to stderr is used.
	Logger Logger
}

// DefaultOptions returns an Options with the writer's default settings:
// bytewise comparator, no filter, no compression, 4KiB data blocks, and
// a restart interval of 16.
func DefaultOptions() Options {
	return Options{
		Comparator:           DefaultComparator(),
		FilterPolicy:         nil,
		Compression:          CompressionNone,
		BlockSize:            4096,
		BlockRestartInterval: 16,
		Logger:               logging.Discard,
	}
}

// withDefaults returns a copy of o with zero-value fields replaced by
// their defaults, so a caller-constructed Options{} that skipped
// DefaultOptions still behaves sensibly.
func (o Options) withDefaults() Options {
	if o.Comparator == nil {
		o.Comparator = DefaultComparator()
	}
	if o.BlockSize <= 0 {
		o.BlockSize = 4096
	}
	if o.BlockRestartInterval <= 0 {
		o.BlockRestartInterval = 16
	}
	o.Logger = logging.OrDefault(o.Logger)
	return o
}
