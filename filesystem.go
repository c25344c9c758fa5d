package sstable

// filesystem.go re-exports the writer-only file-sink abstraction so
// callers never need to import an internal package just to open the
// file a TableBuilder writes to.

import "github.com/kvsstable/sstable/internal/vfs"

// FS creates the writable files a TableBuilder writes to.
type FS = vfs.FS

// WritableFile is an append-only byte sink with an explicit flush and a
// running size.
type WritableFile = vfs.WritableFile

// DefaultFS returns the OS filesystem.
func DefaultFS() FS {
	return vfs.Default()
}
